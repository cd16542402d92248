package booking

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/BruksfildServices01/salon-booking/internal/audit"
	domain "github.com/BruksfildServices01/salon-booking/internal/domain/booking"
	"github.com/BruksfildServices01/salon-booking/internal/domain/payment"
	"github.com/BruksfildServices01/salon-booking/internal/httperr"
	"github.com/BruksfildServices01/salon-booking/internal/metrics"
	"github.com/BruksfildServices01/salon-booking/internal/models"
	"github.com/BruksfildServices01/salon-booking/internal/validators"
)

// ======================================================
// INPUT
// ======================================================

type CreateInput struct {
	SlotID uint `json:"slot_id" validate:"required"`

	// Either a catalogue service or a free-form name and price.
	ServiceID   uint   `json:"service_id"`
	ServiceName string `json:"service_name" validate:"required_without=ServiceID,max=100"`
	Amount      int64  `json:"amount" validate:"gte=0"`

	Notes     string `json:"notes" validate:"max=255"`
	PaymentID string `json:"payment_id"`
}

// ======================================================
// USE CASE
// ======================================================

type CreateBooking struct {
	slots     domain.SlotRepository
	bookings  domain.BookingRepository
	merchants domain.MerchantRepository
	payments  payment.Repository
	audit     *audit.Dispatcher
	log       zerolog.Logger
}

func NewCreateBooking(
	slots domain.SlotRepository,
	bookings domain.BookingRepository,
	merchants domain.MerchantRepository,
	payments payment.Repository,
	audit *audit.Dispatcher,
	log zerolog.Logger,
) *CreateBooking {
	return &CreateBooking{
		slots:     slots,
		bookings:  bookings,
		merchants: merchants,
		payments:  payments,
		audit:     audit,
		log:       log,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *CreateBooking) Execute(
	ctx context.Context,
	session domain.Session,
	in CreateInput,
) (*models.Booking, error) {

	if !session.Authenticated() {
		return nil, httperr.ErrForbidden("forbidden")
	}
	if err := validators.Struct(in); err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// Slot
	// --------------------------------------------------
	slot, err := uc.slots.GetSlot(ctx, in.SlotID)
	if err != nil {
		return nil, err
	}
	if slot.IsBooked || slot.AbsorbedBy != 0 {
		return nil, httperr.ErrConflict("slot_already_booked")
	}

	// --------------------------------------------------
	// Merchant
	// --------------------------------------------------
	merchant, err := uc.merchants.GetMerchant(ctx, slot.MerchantID)
	if err != nil {
		return nil, err
	}
	if merchant.Status != string(domain.MerchantApproved) {
		return nil, httperr.ErrConflict("merchant_not_active")
	}

	// --------------------------------------------------
	// Service
	// --------------------------------------------------
	name, amount := in.ServiceName, in.Amount
	if in.ServiceID != 0 {
		svc, err := uc.merchants.GetService(ctx, merchant.ID, in.ServiceID)
		if err != nil {
			return nil, err
		}
		if !svc.Active {
			return nil, httperr.ErrConflict("service_inactive")
		}
		name, amount = svc.Name, svc.Price
	}

	// --------------------------------------------------
	// Settled payment, if any. CreateForSlot links it in the booking's
	// transaction.
	// --------------------------------------------------
	var paid *models.Payment
	if in.PaymentID != "" {
		p, err := uc.payments.GetPayment(ctx, in.PaymentID)
		if err != nil {
			return nil, err
		}
		if p.UserID != session.UserID ||
			p.BookingID != 0 ||
			p.Status != string(payment.StatusCompleted) ||
			p.Amount < amount {
			return nil, httperr.ErrValidation("invalid_payment")
		}
		paid = p
	}

	// --------------------------------------------------
	// Write
	// --------------------------------------------------
	b := &models.Booking{
		UserID:      session.UserID,
		MerchantID:  merchant.ID,
		WorkerID:    slot.WorkerID,
		SlotID:      slot.ID,
		ServiceName: name,
		Amount:      amount,
		Date:        slot.Date,
		StartTime:   slot.StartTime,
		Status:      string(domain.InitialStatus(paid != nil)),
		Notes:       in.Notes,
	}
	if paid != nil {
		b.PaymentID = paid.PaymentID
	}

	if err := uc.bookings.CreateForSlot(ctx, b); err != nil {
		return nil, err
	}

	metrics.IncBookingCreated(b.Status)
	uc.log.Info().
		Uint("booking_id", b.ID).
		Uint("slot_id", b.SlotID).
		Str("status", b.Status).
		Msg("booking created")

	uc.audit.Dispatch(audit.Event{
		MerchantID: b.MerchantID,
		UserID:     audit.Uint(session.UserID),
		ActorRole:  session.Role,
		Action:     "booking_created",
		Entity:     "booking",
		EntityID:   audit.Uint(b.ID),
		Metadata:   map[string]any{"slot_id": b.SlotID, "status": b.Status},
	})

	return b, nil
}
