package models

import "time"

// Slot is one fixed window on a merchant's day. WorkerID 0 means the slot
// is not scoped to a worker.
//
// AbsorbedBy is set when another slot of the lane was extended over this
// one. An absorbed slot is never offered or claimed on its own.
type Slot struct {
	ID uint `gorm:"primaryKey" json:"id"`

	MerchantID uint   `gorm:"not null;uniqueIndex:idx_slot_unique,priority:1" json:"merchant_id"`
	WorkerID   uint   `gorm:"not null;default:0;uniqueIndex:idx_slot_unique,priority:2" json:"worker_id"`
	Date       string `gorm:"size:10;not null;uniqueIndex:idx_slot_unique,priority:3" json:"date"`
	StartTime  string `gorm:"size:5;not null;uniqueIndex:idx_slot_unique,priority:4" json:"start_time"`
	EndTime    string `gorm:"size:5;not null" json:"end_time"`

	IsBooked        bool `gorm:"not null;default:false;index" json:"is_booked"`
	ServiceDuration int  `json:"service_duration"`
	AbsorbedBy      uint `gorm:"not null;default:0;index" json:"absorbed_by,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
