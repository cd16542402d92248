package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/BruksfildServices01/salon-booking/internal/domain/booking"
	"github.com/BruksfildServices01/salon-booking/internal/domain/payment"
	"github.com/BruksfildServices01/salon-booking/internal/httperr"
	"github.com/BruksfildServices01/salon-booking/internal/models"
)

type PaymentGormRepository struct {
	db *gorm.DB
}

func NewPaymentGormRepository(db *gorm.DB) *PaymentGormRepository {
	return &PaymentGormRepository{db: db}
}

func (r *PaymentGormRepository) CreatePayment(ctx context.Context, p *models.Payment) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *PaymentGormRepository) GetPayment(
	ctx context.Context,
	paymentID string,
) (*models.Payment, error) {

	var p models.Payment
	if err := r.db.WithContext(ctx).
		Where("payment_id = ?", paymentID).
		First(&p).Error; err != nil {
		return nil, notFound(err, "payment_not_found")
	}
	return &p, nil
}

func (r *PaymentGormRepository) GetPaymentByProviderID(
	ctx context.Context,
	providerPaymentID string,
) (*models.Payment, error) {

	var p models.Payment
	if err := r.db.WithContext(ctx).
		Where("provider_payment_id = ?", providerPaymentID).
		First(&p).Error; err != nil {
		return nil, notFound(err, "payment_not_found")
	}
	return &p, nil
}

func (r *PaymentGormRepository) UpdatePayment(ctx context.Context, p *models.Payment) error {
	return r.db.WithContext(ctx).Save(p).Error
}

func (r *PaymentGormRepository) MarkFailed(
	ctx context.Context,
	paymentID string,
	reason string,
) error {
	return r.db.WithContext(ctx).
		Model(&models.Payment{}).
		Where("payment_id = ? AND status = ?", paymentID, string(payment.StatusPending)).
		Updates(map[string]any{
			"status":         string(payment.StatusFailed),
			"failure_reason": reason,
		}).Error
}

// --------------------------------------------------
// Settlement
// --------------------------------------------------

func (r *PaymentGormRepository) Complete(
	ctx context.Context,
	paymentID string,
	providerPaymentID string,
) (*models.Payment, *models.Booking, error) {

	var (
		outP      models.Payment
		outB      models.Booking
		cancelled bool
	)

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var p models.Payment
		if err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("payment_id = ?", paymentID).
			First(&p).Error; err != nil {
			return notFound(err, "payment_not_found")
		}

		var b models.Booking
		if err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&b, p.BookingID).Error; err != nil {
			return notFound(err, "booking_not_found")
		}

		if p.Status == string(payment.StatusCompleted) {
			outP, outB = p, b
			return nil
		}

		p.Status = string(payment.StatusCompleted)
		p.FailureReason = ""
		if providerPaymentID != "" {
			p.ProviderPaymentID = providerPaymentID
		}
		if err := tx.Save(&p).Error; err != nil {
			return err
		}

		if b.Status == string(domain.StatusCancelled) {
			cancelled = true
		} else {
			b.Status = string(domain.StatusConfirmed)
			b.PaymentID = p.PaymentID
			if err := tx.Save(&b).Error; err != nil {
				return err
			}
		}

		outP, outB = p, b
		return nil
	})
	if err != nil {
		return nil, nil, err
	}

	if cancelled {
		return &outP, &outB, httperr.ErrConflict("booking_cancelled")
	}
	return &outP, &outB, nil
}

func (r *PaymentGormRepository) SettleWithCoins(
	ctx context.Context,
	p *models.Payment,
) (*models.Booking, error) {

	var outB models.Booking

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.User{}).
			Where("id = ? AND coins >= ?", p.UserID, p.CoinsUsed).
			Update("coins", gorm.Expr("coins - ?", p.CoinsUsed))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			var count int64
			if err := tx.Model(&models.User{}).Where("id = ?", p.UserID).Count(&count).Error; err != nil {
				return err
			}
			if count == 0 {
				return httperr.ErrNotFound("user_not_found")
			}
			return httperr.ErrPayment("insufficient_coins")
		}

		var b models.Booking
		if err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&b, p.BookingID).Error; err != nil {
			return notFound(err, "booking_not_found")
		}
		if b.Status == string(domain.StatusCancelled) {
			return httperr.ErrConflict("booking_cancelled")
		}

		p.Status = string(payment.StatusCompleted)
		if err := tx.Save(p).Error; err != nil {
			return err
		}

		b.Status = string(domain.StatusConfirmed)
		b.PaymentID = p.PaymentID
		if err := tx.Save(&b).Error; err != nil {
			return err
		}

		outB = b
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &outB, nil
}

// Compile-time check
var _ payment.Repository = (*PaymentGormRepository)(nil)
