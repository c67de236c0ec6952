package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Notification types emitted by the core flows.
const (
	NotificationShareRequested = "share_requested"
	NotificationShareApproved  = "share_approved"
	NotificationShareRejected  = "share_rejected"
	NotificationBusinessReview = "business_review"
)

// Notification is a persisted fire-and-forget message for a user. Payload
// carries flow-specific extras (share counts, amounts) as JSON.
type Notification struct {
	ID              uuid.UUID      `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	UserID          uuid.UUID      `gorm:"column:user_id;type:uuid;not null;index" json:"user_id"`
	Type            string         `gorm:"column:type;type:varchar(40);not null" json:"type"`
	Title           string         `gorm:"column:title;not null" json:"title"`
	Message         string         `gorm:"column:message;type:text" json:"message"`
	RelatedEntityID *uuid.UUID     `gorm:"column:related_entity_id;type:uuid" json:"related_entity_id,omitempty"`
	Payload         datatypes.JSON `gorm:"column:payload;type:json" json:"payload,omitempty"`
	Read            bool           `gorm:"column:read;not null;default:false" json:"read"`
	CreatedAt       time.Time      `gorm:"column:created_at" json:"created_at"`
	UpdatedAt       time.Time      `gorm:"column:updated_at" json:"updated_at"`
}

func (Notification) TableName() string {
	return "notifications"
}

func (n *Notification) BeforeCreate(tx *gorm.DB) error {
	if n.ID == uuid.Nil {
		n.ID = uuid.New()
	}
	return nil
}
