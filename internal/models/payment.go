package models

import "time"

type Payment struct {
	ID uint `gorm:"primaryKey" json:"-"`

	// public identifier, also sent to the provider as external reference
	PaymentID string `gorm:"size:64;uniqueIndex;not null" json:"payment_id"`
	UserID    uint   `gorm:"index;not null" json:"user_id"`
	BookingID uint   `gorm:"index;not null" json:"booking_id"`

	Method   string `gorm:"size:20;not null" json:"method"`
	Amount   int64  `json:"amount"`
	Currency string `gorm:"size:3" json:"currency"`
	Status   string `gorm:"size:20;default:'pending';index" json:"status"`

	Provider          string `gorm:"size:30" json:"provider"`
	OrderID           string `gorm:"size:128" json:"order_id"`
	ProviderPaymentID string `gorm:"size:64;index" json:"provider_payment_id"`
	CoinsUsed         int    `json:"coins_used"`
	FailureReason     string `gorm:"size:255" json:"failure_reason"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
