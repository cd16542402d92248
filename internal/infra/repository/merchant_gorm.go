package repository

import (
	"context"

	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/salon-booking/internal/domain/booking"
	"github.com/BruksfildServices01/salon-booking/internal/httperr"
	"github.com/BruksfildServices01/salon-booking/internal/models"
)

type MerchantGormRepository struct {
	db *gorm.DB
}

func NewMerchantGormRepository(db *gorm.DB) *MerchantGormRepository {
	return &MerchantGormRepository{db: db}
}

// --------------------------------------------------
// Merchant
// --------------------------------------------------

func (r *MerchantGormRepository) GetMerchant(
	ctx context.Context,
	id uint,
) (*models.Merchant, error) {

	var m models.Merchant
	if err := r.db.WithContext(ctx).First(&m, id).Error; err != nil {
		return nil, notFound(err, "merchant_not_found")
	}
	return &m, nil
}

func (r *MerchantGormRepository) GetMerchantBySlug(
	ctx context.Context,
	slug string,
) (*models.Merchant, error) {

	var m models.Merchant
	if err := r.db.WithContext(ctx).
		Where("slug = ?", slug).
		First(&m).Error; err != nil {
		return nil, notFound(err, "merchant_not_found")
	}
	return &m, nil
}

func (r *MerchantGormRepository) ListMerchants(
	ctx context.Context,
	status string,
) ([]models.Merchant, error) {

	q := r.db.WithContext(ctx).Model(&models.Merchant{})
	if status != "" {
		q = q.Where("status = ?", status)
	}

	var out []models.Merchant
	if err := q.Order("id ASC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *MerchantGormRepository) CreateMerchant(
	ctx context.Context,
	m *models.Merchant,
) error {
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		if IsUniqueViolation(err) {
			return httperr.ErrConflict("slug_already_exists")
		}
		return err
	}
	return nil
}

func (r *MerchantGormRepository) CreateForOwner(
	ctx context.Context,
	m *models.Merchant,
) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := NewMerchantGormRepository(tx).CreateMerchant(ctx, m); err != nil {
			return err
		}
		return NewUserGormRepository(tx).AttachMerchant(ctx, m.OwnerID, m.ID)
	})
}

func (r *MerchantGormRepository) UpdateMerchant(
	ctx context.Context,
	m *models.Merchant,
) error {
	return r.db.WithContext(ctx).Save(m).Error
}

func (r *MerchantGormRepository) CountMerchantsByStatus(
	ctx context.Context,
) (map[string]int64, error) {

	var rows []struct {
		Status string
		Total  int64
	}
	if err := r.db.WithContext(ctx).
		Model(&models.Merchant{}).
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

// --------------------------------------------------
// Service catalogue
// --------------------------------------------------

func (r *MerchantGormRepository) GetService(
	ctx context.Context,
	merchantID uint,
	serviceID uint,
) (*models.Service, error) {

	var s models.Service
	if err := r.db.WithContext(ctx).
		Where("id = ? AND merchant_id = ?", serviceID, merchantID).
		First(&s).Error; err != nil {
		return nil, notFound(err, "service_not_found")
	}
	return &s, nil
}

func (r *MerchantGormRepository) ListServices(
	ctx context.Context,
	merchantID uint,
	activeOnly bool,
) ([]models.Service, error) {

	q := r.db.WithContext(ctx).Where("merchant_id = ?", merchantID)
	if activeOnly {
		q = q.Where("active = ?", true)
	}

	var out []models.Service
	if err := q.Order("id ASC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *MerchantGormRepository) CreateService(
	ctx context.Context,
	s *models.Service,
) error {
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *MerchantGormRepository) UpdateService(
	ctx context.Context,
	s *models.Service,
) error {
	return r.db.WithContext(ctx).Save(s).Error
}

// Compile-time check
var _ domain.MerchantRepository = (*MerchantGormRepository)(nil)
