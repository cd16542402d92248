package repository

import (
	"context"

	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/salon-booking/internal/domain/booking"
	"github.com/BruksfildServices01/salon-booking/internal/models"
)

type WorkerGormRepository struct {
	db *gorm.DB
}

func NewWorkerGormRepository(db *gorm.DB) *WorkerGormRepository {
	return &WorkerGormRepository{db: db}
}

func (r *WorkerGormRepository) GetWorker(
	ctx context.Context,
	merchantID uint,
	workerID uint,
) (*models.Worker, error) {

	var w models.Worker
	if err := r.db.WithContext(ctx).
		Where("id = ? AND merchant_id = ?", workerID, merchantID).
		First(&w).Error; err != nil {
		return nil, notFound(err, "worker_not_found")
	}
	return &w, nil
}

func (r *WorkerGormRepository) ListWorkers(
	ctx context.Context,
	merchantID uint,
) ([]models.Worker, error) {

	var out []models.Worker
	if err := r.db.WithContext(ctx).
		Where("merchant_id = ?", merchantID).
		Order("id ASC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *WorkerGormRepository) CreateWorker(ctx context.Context, w *models.Worker) error {
	return r.db.WithContext(ctx).Create(w).Error
}

func (r *WorkerGormRepository) UpdateWorker(ctx context.Context, w *models.Worker) error {
	return r.db.WithContext(ctx).Save(w).Error
}

var _ domain.WorkerRepository = (*WorkerGormRepository)(nil)
