package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/BruksfildServices01/salon-booking/internal/domain/booking"
	"github.com/BruksfildServices01/salon-booking/internal/httperr"
	"github.com/BruksfildServices01/salon-booking/internal/models"
)

type SlotGormRepository struct {
	db *gorm.DB
}

func NewSlotGormRepository(db *gorm.DB) *SlotGormRepository {
	return &SlotGormRepository{db: db}
}

func (r *SlotGormRepository) lane(
	ctx context.Context,
	merchantID uint,
	workerID uint,
	date string,
) *gorm.DB {
	return r.db.WithContext(ctx).
		Where("merchant_id = ? AND worker_id = ? AND date = ?", merchantID, workerID, date)
}

func (r *SlotGormRepository) ListForDay(
	ctx context.Context,
	merchantID uint,
	workerID uint,
	date string,
) ([]models.Slot, error) {

	var slots []models.Slot
	if err := r.lane(ctx, merchantID, workerID, date).
		Order("start_time ASC").
		Find(&slots).Error; err != nil {
		return nil, err
	}
	return slots, nil
}

func (r *SlotGormRepository) ListAvailable(
	ctx context.Context,
	merchantID uint,
	workerID uint,
	date string,
) ([]models.Slot, error) {

	var slots []models.Slot
	if err := r.lane(ctx, merchantID, workerID, date).
		Where("is_booked = ? AND absorbed_by = ?", false, 0).
		Order("start_time ASC").
		Find(&slots).Error; err != nil {
		return nil, err
	}
	return slots, nil
}

func (r *SlotGormRepository) CreateBatch(
	ctx context.Context,
	slots []models.Slot,
) error {

	if len(slots) == 0 {
		return nil
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.CreateInBatches(&slots, len(slots)).Error
	})
	if IsUniqueViolation(err) {
		return httperr.ErrConflict("slots_exist")
	}
	return err
}

func (r *SlotGormRepository) GetSlot(
	ctx context.Context,
	id uint,
) (*models.Slot, error) {

	var s models.Slot
	if err := r.db.WithContext(ctx).First(&s, id).Error; err != nil {
		return nil, notFound(err, "slot_not_found")
	}
	return &s, nil
}

func (r *SlotGormRepository) ListSiblings(
	ctx context.Context,
	slot *models.Slot,
) ([]models.Slot, error) {

	var slots []models.Slot
	if err := r.lane(ctx, slot.MerchantID, slot.WorkerID, slot.Date).
		Where("id <> ?", slot.ID).
		Order("start_time ASC").
		Find(&slots).Error; err != nil {
		return nil, err
	}
	return slots, nil
}

func (r *SlotGormRepository) Extend(
	ctx context.Context,
	slotID uint,
	newEnd string,
	duration int,
	absorb []uint,
) (*models.Slot, error) {

	var out models.Slot

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var s models.Slot
		if err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&s, slotID).Error; err != nil {
			return notFound(err, "slot_not_found")
		}

		if len(absorb) > 0 {
			res := tx.Model(&models.Slot{}).
				Where("id IN ? AND is_booked = ? AND absorbed_by = ?", absorb, false, 0).
				Update("absorbed_by", s.ID)
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected != int64(len(absorb)) {
				return httperr.ErrConflict("extension_conflict")
			}
		}

		s.EndTime = newEnd
		s.ServiceDuration = duration
		if err := tx.Save(&s).Error; err != nil {
			return err
		}

		out = s
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &out, nil
}

func (r *SlotGormRepository) CountForDay(
	ctx context.Context,
	merchantID uint,
	date string,
) (int64, int64, error) {

	var total, booked int64

	base := func() *gorm.DB {
		return r.db.WithContext(ctx).
			Model(&models.Slot{}).
			Where("merchant_id = ? AND date = ? AND absorbed_by = ?", merchantID, date, 0)
	}

	if err := base().Count(&total).Error; err != nil {
		return 0, 0, err
	}
	if err := base().Where("is_booked = ?", true).Count(&booked).Error; err != nil {
		return 0, 0, err
	}

	return total, booked, nil
}

// Compile-time check
var _ domain.SlotRepository = (*SlotGormRepository)(nil)
