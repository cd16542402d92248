package models

import "time"

type Booking struct {
	ID uint `gorm:"primaryKey" json:"id"`

	UserID     uint `gorm:"index;not null" json:"user_id"`
	MerchantID uint `gorm:"index;not null" json:"merchant_id"`
	WorkerID   uint `json:"worker_id"`
	SlotID     uint `gorm:"index;not null" json:"slot_id"`

	ServiceName string `gorm:"size:100;not null" json:"service_name"`
	Amount      int64  `json:"amount"`

	Date      string `gorm:"size:10;index" json:"date"`
	StartTime string `gorm:"size:5" json:"start_time"`

	Status    string `gorm:"size:20;default:'pending';index" json:"status"`
	PaymentID string `gorm:"size:64" json:"payment_id"`
	Notes     string `gorm:"size:255" json:"notes"`

	CancelledAt *time.Time `json:"cancelled_at"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}
