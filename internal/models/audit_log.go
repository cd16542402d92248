package models

import "time"

// AuditLog is one entry of a merchant's trail. ActorRole records the role
// the actor held when acting, "provider" for payment notifications.
type AuditLog struct {
	ID uint `gorm:"primaryKey" json:"id"`

	MerchantID uint   `gorm:"not null;index:idx_audit_merchant_created,priority:1" json:"merchant_id"`
	UserID     *uint  `json:"user_id"`
	ActorRole  string `gorm:"size:20" json:"actor_role"`
	Action     string `gorm:"size:50;not null;index" json:"action"`

	Entity   string `gorm:"size:50" json:"entity"`
	EntityID *uint  `json:"entity_id"`
	Metadata string `gorm:"type:text" json:"metadata,omitempty"`

	CreatedAt time.Time `gorm:"index:idx_audit_merchant_created,priority:2" json:"created_at"`
}
