package models

import "time"

type Service struct {
	ID         uint `gorm:"primaryKey" json:"id"`
	MerchantID uint `gorm:"index;not null" json:"merchant_id"`

	Name        string `gorm:"size:100;not null" json:"name"`
	Description string `gorm:"size:255" json:"description"`
	DurationMin int    `json:"duration_min"`
	// minor currency units
	Price  int64 `json:"price"`
	Active bool  `gorm:"default:true" json:"active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
