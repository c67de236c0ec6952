package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	ShareRequestStatusPending  = "pending"
	ShareRequestStatusApproved = "approved"
	ShareRequestStatusRejected = "rejected"
)

// ShareRequest is an investor's ask for shares in a public business.
// ShareValue is snapshotted from the business at creation; TotalAmount is
// RequestedShares x ShareValue and is never recomputed afterwards, even if
// the business later reprices.
type ShareRequest struct {
	ID              uuid.UUID       `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	BusinessID      uuid.UUID       `gorm:"column:business_id;type:uuid;not null;index" json:"business_id"`
	InvestorID      uuid.UUID       `gorm:"column:investor_id;type:uuid;not null;index" json:"investor_id"`
	RequestedShares int64           `gorm:"column:requested_shares;not null" json:"requested_shares"`
	ApprovedShares  *int64          `gorm:"column:approved_shares" json:"approved_shares,omitempty"`
	ShareValue      decimal.Decimal `gorm:"column:share_value;type:decimal(18,2);not null" json:"share_value"`
	TotalAmount     decimal.Decimal `gorm:"column:total_amount;type:decimal(18,2);not null" json:"total_amount"`
	Status          string          `gorm:"column:status;type:varchar(20);not null;default:'pending'" json:"status"`
	RejectionReason *string         `gorm:"column:rejection_reason" json:"rejection_reason,omitempty"`
	CreatedAt       time.Time       `gorm:"column:created_at" json:"created_at"`
	UpdatedAt       time.Time       `gorm:"column:updated_at" json:"updated_at"`
}

func (ShareRequest) TableName() string {
	return "share_requests"
}

func (r *ShareRequest) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}
