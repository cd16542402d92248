package models

import "time"

type Merchant struct {
	ID      uint `gorm:"primaryKey" json:"id"`
	OwnerID uint `gorm:"index" json:"owner_id"`

	Name        string `gorm:"size:100;not null" json:"name"`
	Slug        string `gorm:"size:100;uniqueIndex;not null" json:"slug"`
	Phone       string `gorm:"size:20" json:"phone"`
	Address     string `gorm:"size:255" json:"address"`
	Description string `gorm:"type:text" json:"description"`
	Timezone    string `gorm:"size:64" json:"timezone"`

	CoverImageKey string `gorm:"size:255" json:"cover_image_key"`

	// pending | approved | rejected, changed only by admin review
	Status     string     `gorm:"size:20;default:'pending';index" json:"status"`
	ReviewNote string     `gorm:"size:255" json:"review_note"`
	ReviewedAt *time.Time `json:"reviewed_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
