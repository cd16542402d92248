package payment

import (
	"context"

	"github.com/BruksfildServices01/salon-booking/internal/models"
)

type Repository interface {
	CreatePayment(ctx context.Context, p *models.Payment) error
	GetPayment(ctx context.Context, paymentID string) (*models.Payment, error)
	GetPaymentByProviderID(ctx context.Context, providerPaymentID string) (*models.Payment, error)
	UpdatePayment(ctx context.Context, p *models.Payment) error

	// MarkFailed fails a payment that is still pending.
	MarkFailed(ctx context.Context, paymentID, reason string) error

	// Complete marks the payment completed and confirms its booking with the
	// payment id attached, in one transaction. A cancelled booking is left
	// alone and reported as conflict "booking_cancelled".
	Complete(ctx context.Context, paymentID, providerPaymentID string) (*models.Payment, *models.Booking, error)

	// SettleWithCoins debits p.CoinsUsed from the user only if the balance
	// covers it, then completes the payment and confirms the booking. All or
	// nothing; a short balance is "insufficient_coins".
	SettleWithCoins(ctx context.Context, p *models.Payment) (*models.Booking, error)
}
