package booking

import (
	"context"

	domain "github.com/BruksfildServices01/salon-booking/internal/domain/booking"
	"github.com/BruksfildServices01/salon-booking/internal/httperr"
	"github.com/BruksfildServices01/salon-booking/internal/models"
)

type ListBookings struct {
	bookings domain.BookingRepository
}

func NewListBookings(bookings domain.BookingRepository) *ListBookings {
	return &ListBookings{bookings: bookings}
}

// ForCustomer returns the caller's own bookings, newest first.
func (uc *ListBookings) ForCustomer(
	ctx context.Context,
	session domain.Session,
) ([]models.Booking, error) {
	if !session.Authenticated() {
		return nil, httperr.ErrForbidden("forbidden")
	}
	return uc.bookings.ListByUser(ctx, session.UserID)
}

// ForMerchant returns the bookings of the caller's merchant, optionally
// limited to one date.
func (uc *ListBookings) ForMerchant(
	ctx context.Context,
	session domain.Session,
	date string,
) ([]models.Booking, error) {

	if err := session.RequireMerchant(session.MerchantID); err != nil {
		return nil, err
	}
	if date != "" {
		if _, err := domain.ParseDate(date); err != nil {
			return nil, err
		}
	}
	return uc.bookings.ListByMerchant(ctx, session.MerchantID, date)
}

// Get returns one booking to its customer or its merchant.
func (uc *ListBookings) Get(
	ctx context.Context,
	session domain.Session,
	id uint,
) (*models.Booking, error) {

	b, err := uc.bookings.GetBooking(ctx, id)
	if err != nil {
		return nil, err
	}
	if b.UserID == session.UserID {
		return b, nil
	}
	if err := session.RequireMerchant(b.MerchantID); err != nil {
		return nil, err
	}
	return b, nil
}
