package payment

import (
	"context"
	"fmt"

	domain "github.com/BruksfildServices01/salon-booking/internal/domain/booking"
	"github.com/BruksfildServices01/salon-booking/internal/httperr"
	"github.com/BruksfildServices01/salon-booking/internal/models"
)

// Result is what checkout and reconciliation report back.
type Result struct {
	Payment     *models.Payment `json:"payment"`
	Booking     *models.Booking `json:"booking,omitempty"`
	CheckoutURL string          `json:"checkout_url,omitempty"`
}

// payableBooking loads a booking the caller owns that still awaits payment.
func payableBooking(
	ctx context.Context,
	bookings domain.BookingRepository,
	session domain.Session,
	bookingID uint,
) (*models.Booking, error) {

	b, err := bookings.GetBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if b.UserID != session.UserID {
		return nil, httperr.ErrForbidden("forbidden")
	}
	if b.Status != string(domain.StatusPending) {
		return nil, httperr.ErrConflict("booking_not_payable")
	}
	if b.Amount <= 0 {
		return nil, httperr.ErrValidation("invalid_amount")
	}
	return b, nil
}

func describe(b *models.Booking) string {
	return fmt.Sprintf("%s %s %s", b.ServiceName, b.Date, b.StartTime)
}
