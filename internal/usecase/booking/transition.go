package booking

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/BruksfildServices01/salon-booking/internal/audit"
	domain "github.com/BruksfildServices01/salon-booking/internal/domain/booking"
	"github.com/BruksfildServices01/salon-booking/internal/metrics"
	"github.com/BruksfildServices01/salon-booking/internal/models"
)

// TransitionBooking moves a booking along the merchant's status edges.
// Cancelling frees the slot and restoring takes it back.
type TransitionBooking struct {
	bookings domain.BookingRepository
	audit    *audit.Dispatcher
	log      zerolog.Logger
}

func NewTransitionBooking(
	bookings domain.BookingRepository,
	audit *audit.Dispatcher,
	log zerolog.Logger,
) *TransitionBooking {
	return &TransitionBooking{
		bookings: bookings,
		audit:    audit,
		log:      log,
	}
}

func (uc *TransitionBooking) Execute(
	ctx context.Context,
	session domain.Session,
	bookingID uint,
	target string,
) (*models.Booking, error) {

	to, err := domain.ParseStatus(target)
	if err != nil {
		return nil, err
	}

	b, err := uc.bookings.GetBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if err := session.RequireMerchant(b.MerchantID); err != nil {
		return nil, err
	}

	from := domain.Status(b.Status)
	if err := domain.CanTransition(from, to); err != nil {
		return nil, err
	}

	updated, err := uc.bookings.ApplyTransition(ctx, b.ID, from, to)
	if err != nil {
		return nil, err
	}

	metrics.IncBookingTransition(string(to))
	uc.log.Info().
		Uint("booking_id", b.ID).
		Str("from", string(from)).
		Str("to", string(to)).
		Msg("booking status changed")

	uc.audit.Dispatch(audit.Event{
		MerchantID: b.MerchantID,
		UserID:     audit.Uint(session.UserID),
		ActorRole:  session.Role,
		Action:     "booking_" + string(to),
		Entity:     "booking",
		EntityID:   audit.Uint(b.ID),
		Metadata:   map[string]any{"from": string(from), "to": string(to)},
	})

	return updated, nil
}
