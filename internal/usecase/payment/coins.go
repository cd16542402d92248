package payment

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/BruksfildServices01/salon-booking/internal/audit"
	domain "github.com/BruksfildServices01/salon-booking/internal/domain/booking"
	"github.com/BruksfildServices01/salon-booking/internal/domain/payment"
	"github.com/BruksfildServices01/salon-booking/internal/httperr"
	"github.com/BruksfildServices01/salon-booking/internal/metrics"
	"github.com/BruksfildServices01/salon-booking/internal/models"
)

// PayWithCoins settles a booking from the customer's coin balance. The
// debit, payment and booking confirmation happen in one write.
type PayWithCoins struct {
	bookings  domain.BookingRepository
	payments  payment.Repository
	coinValue int64
	currency  string
	audit     *audit.Dispatcher
	log       zerolog.Logger
}

func NewPayWithCoins(
	bookings domain.BookingRepository,
	payments payment.Repository,
	coinValue int64,
	currency string,
	audit *audit.Dispatcher,
	log zerolog.Logger,
) *PayWithCoins {
	return &PayWithCoins{
		bookings:  bookings,
		payments:  payments,
		coinValue: coinValue,
		currency:  currency,
		audit:     audit,
		log:       log,
	}
}

func (uc *PayWithCoins) Execute(
	ctx context.Context,
	session domain.Session,
	bookingID uint,
) (*Result, error) {

	b, err := payableBooking(ctx, uc.bookings, session, bookingID)
	if err != nil {
		return nil, err
	}

	p := &models.Payment{
		PaymentID: uuid.NewString(),
		UserID:    session.UserID,
		BookingID: b.ID,
		Method:    string(payment.MethodCoins),
		Amount:    b.Amount,
		Currency:  uc.currency,
		Status:    string(payment.StatusPending),
		Provider:  string(payment.MethodCoins),
		CoinsUsed: payment.CoinsFor(b.Amount, uc.coinValue),
	}
	if err := uc.payments.CreatePayment(ctx, p); err != nil {
		return nil, err
	}

	confirmed, err := uc.payments.SettleWithCoins(ctx, p)
	if err != nil {
		code := httperr.CodeOf(err)
		if code == "" {
			code = "coin_settlement_failed"
		}
		if mErr := uc.payments.MarkFailed(ctx, p.PaymentID, code); mErr != nil {
			uc.log.Error().Err(mErr).Str("payment_id", p.PaymentID).Msg("mark failed")
		}
		return nil, err
	}

	metrics.IncPaymentReconciled(string(payment.StatusCompleted))
	uc.log.Info().
		Str("payment_id", p.PaymentID).
		Uint("booking_id", b.ID).
		Int("coins", p.CoinsUsed).
		Msg("booking paid with coins")

	uc.audit.Dispatch(audit.Event{
		MerchantID: b.MerchantID,
		UserID:     audit.Uint(session.UserID),
		ActorRole:  session.Role,
		Action:     "payment_completed",
		Entity:     "booking",
		EntityID:   audit.Uint(b.ID),
		Metadata:   map[string]any{"payment_id": p.PaymentID, "coins": p.CoinsUsed},
	})

	return &Result{Payment: p, Booking: confirmed}, nil
}
