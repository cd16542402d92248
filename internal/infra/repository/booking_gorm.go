package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/BruksfildServices01/salon-booking/internal/domain/booking"
	"github.com/BruksfildServices01/salon-booking/internal/domain/payment"
	"github.com/BruksfildServices01/salon-booking/internal/httperr"
	"github.com/BruksfildServices01/salon-booking/internal/models"
)

type BookingGormRepository struct {
	db *gorm.DB
}

func NewBookingGormRepository(db *gorm.DB) *BookingGormRepository {
	return &BookingGormRepository{db: db}
}

// claimSlot flips is_booked only when the slot is still free and not
// absorbed by an extended sibling.
func claimSlot(tx *gorm.DB, slotID uint, busyCode string) error {
	res := tx.Model(&models.Slot{}).
		Where("id = ? AND is_booked = ? AND absorbed_by = ?", slotID, false, 0).
		Update("is_booked", true)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 1 {
		return nil
	}

	var count int64
	if err := tx.Model(&models.Slot{}).Where("id = ?", slotID).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return httperr.ErrNotFound("slot_not_found")
	}
	return httperr.ErrConflict(busyCode)
}

// --------------------------------------------------
// Create
// --------------------------------------------------

func (r *BookingGormRepository) CreateForSlot(
	ctx context.Context,
	b *models.Booking,
) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := claimSlot(tx, b.SlotID, "slot_already_booked"); err != nil {
			return err
		}
		if err := tx.Create(b).Error; err != nil {
			return err
		}
		if b.PaymentID == "" {
			return nil
		}

		res := tx.Model(&models.Payment{}).
			Where("payment_id = ? AND booking_id = ? AND status = ?",
				b.PaymentID, 0, string(payment.StatusCompleted)).
			Update("booking_id", b.ID)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected != 1 {
			return httperr.ErrConflict("payment_already_used")
		}
		return nil
	})
}

// --------------------------------------------------
// Read
// --------------------------------------------------

func (r *BookingGormRepository) GetBooking(
	ctx context.Context,
	id uint,
) (*models.Booking, error) {

	var b models.Booking
	if err := r.db.WithContext(ctx).First(&b, id).Error; err != nil {
		return nil, notFound(err, "booking_not_found")
	}
	return &b, nil
}

func (r *BookingGormRepository) ListByUser(
	ctx context.Context,
	userID uint,
) ([]models.Booking, error) {

	var out []models.Booking
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("date DESC, start_time DESC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *BookingGormRepository) ListByMerchant(
	ctx context.Context,
	merchantID uint,
	date string,
) ([]models.Booking, error) {

	q := r.db.WithContext(ctx).Where("merchant_id = ?", merchantID)
	if date != "" {
		q = q.Where("date = ?", date)
	}

	var out []models.Booking
	if err := q.Order("date ASC, start_time ASC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// --------------------------------------------------
// Status transitions
// --------------------------------------------------

func (r *BookingGormRepository) ApplyTransition(
	ctx context.Context,
	id uint,
	from domain.Status,
	to domain.Status,
) (*models.Booking, error) {

	var out models.Booking

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var b models.Booking
		if err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&b, id).Error; err != nil {
			return notFound(err, "booking_not_found")
		}

		if b.Status != string(from) {
			return httperr.ErrConflict("status_changed")
		}

		switch {
		case to == domain.StatusCancelled:
			if err := tx.Model(&models.Slot{}).
				Where("id = ?", b.SlotID).
				Update("is_booked", false).Error; err != nil {
				return err
			}
			now := time.Now()
			b.CancelledAt = &now

		case from == domain.StatusCancelled:
			if err := claimSlot(tx, b.SlotID, "slot_taken"); err != nil {
				return err
			}
			b.CancelledAt = nil
		}

		b.Status = string(to)
		if err := tx.Save(&b).Error; err != nil {
			return err
		}

		out = b
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &out, nil
}

// --------------------------------------------------
// Aggregates
// --------------------------------------------------

func (r *BookingGormRepository) CountByStatus(
	ctx context.Context,
	merchantID uint,
	date string,
) (map[string]int64, error) {

	q := r.db.WithContext(ctx).
		Model(&models.Booking{}).
		Where("merchant_id = ?", merchantID)
	if date != "" {
		q = q.Where("date = ?", date)
	}

	var rows []struct {
		Status string
		Total  int64
	}
	if err := q.
		Select("status, COUNT(*) AS total").
		Group("status").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	out := make(map[string]int64, len(rows))
	for _, row := range rows {
		out[row.Status] = row.Total
	}
	return out, nil
}

func (r *BookingGormRepository) CountUniqueCustomers(
	ctx context.Context,
	merchantID uint,
) (int64, error) {

	var n int64
	err := r.db.WithContext(ctx).
		Model(&models.Booking{}).
		Where("merchant_id = ?", merchantID).
		Distinct("user_id").
		Count(&n).Error
	return n, err
}

func (r *BookingGormRepository) CountAll(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&models.Booking{}).Count(&n).Error
	return n, err
}

// Compile-time check
var _ domain.BookingRepository = (*BookingGormRepository)(nil)
