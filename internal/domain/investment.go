package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	InvestmentStatusPending  = "pending"
	InvestmentStatusApproved = "approved"
	InvestmentStatusRejected = "rejected"
)

// Investment records an approved purchase of shares. It is created as a side
// effect of share-request approval (already approved), never directly by an
// investor in that flow.
type Investment struct {
	ID             uuid.UUID       `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	BusinessID     uuid.UUID       `gorm:"column:business_id;type:uuid;not null;index" json:"business_id"`
	InvestorID     uuid.UUID       `gorm:"column:investor_id;type:uuid;not null;index" json:"investor_id"`
	ShareRequestID *uuid.UUID      `gorm:"column:share_request_id;type:uuid" json:"share_request_id,omitempty"`
	Shares         int64           `gorm:"column:shares;not null" json:"shares"`
	Amount         decimal.Decimal `gorm:"column:amount;type:decimal(18,2);not null" json:"amount"`
	Status         string          `gorm:"column:status;type:varchar(20);not null;default:'pending'" json:"status"`
	CreatedAt      time.Time       `gorm:"column:created_at" json:"created_at"`
	UpdatedAt      time.Time       `gorm:"column:updated_at" json:"updated_at"`
}

func (Investment) TableName() string {
	return "investments"
}

func (i *Investment) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}
