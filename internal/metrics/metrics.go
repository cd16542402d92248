package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	once sync.Once

	slotsGenerated = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "salon",
			Name:      "slots_generated_total",
			Help:      "Count of slots persisted by the day generator.",
		},
	)

	bookingCreated = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "salon",
			Name:      "booking_created_total",
			Help:      "Count of bookings created by initial status.",
		},
		[]string{"status"},
	)

	bookingTransition = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "salon",
			Name:      "booking_transition_total",
			Help:      "Count of booking status changes by target status.",
		},
		[]string{"to"},
	)

	paymentReconciled = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "salon",
			Name:      "payment_reconciled_total",
			Help:      "Count of payment reconciliations by resulting status.",
		},
		[]string{"status"},
	)

	extensionChecks = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "salon",
			Name:      "extension_checks_total",
			Help:      "Count of slot extension checks by result.",
		},
		[]string{"result"},
	)
)

// Register registers metrics (idempotent).
func Register() {
	once.Do(func() {
		prometheus.MustRegister(
			slotsGenerated,
			bookingCreated,
			bookingTransition,
			paymentReconciled,
			extensionChecks,
		)
	})
}

func AddSlotsGenerated(n int) {
	slotsGenerated.Add(float64(n))
}

func IncBookingCreated(status string) {
	bookingCreated.WithLabelValues(status).Inc()
}

func IncBookingTransition(to string) {
	bookingTransition.WithLabelValues(to).Inc()
}

func IncPaymentReconciled(status string) {
	paymentReconciled.WithLabelValues(status).Inc()
}

func IncExtensionCheck(result string) {
	extensionChecks.WithLabelValues(result).Inc()
}
