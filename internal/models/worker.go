package models

import "time"

type Worker struct {
	ID         uint `gorm:"primaryKey" json:"id"`
	MerchantID uint `gorm:"index;not null" json:"merchant_id"`

	Name      string `gorm:"size:100;not null" json:"name"`
	Specialty string `gorm:"size:100" json:"specialty"`
	IsActive  bool   `gorm:"default:true" json:"is_active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
