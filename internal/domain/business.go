package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Business lifecycle statuses. A submission moves pending -> in_review ->
// approved/rejected; a public offering is active until closed by an admin.
const (
	BusinessStatusPending  = "pending"
	BusinessStatusInReview = "in_review"
	BusinessStatusApproved = "approved"
	BusinessStatusRejected = "rejected"
	BusinessStatusActive   = "active"
)

// Business kinds: an entrepreneur submission versus a published offering.
const (
	BusinessKindSubmission = "submission"
	BusinessKindPublic     = "public"
)

// Business is a share-issuing entity. Submissions carry no share inventory;
// a public business holds total_shares/remaining_shares and is what investors
// request shares against.
type Business struct {
	ID                     uuid.UUID       `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	OwnerID                *uuid.UUID      `gorm:"column:owner_id;type:uuid" json:"owner_id"`
	Name                   string          `gorm:"column:name;not null" json:"name"`
	Description            string          `gorm:"column:description;type:text" json:"description"`
	Category               string          `gorm:"column:category" json:"category"`
	Kind                   string          `gorm:"column:kind;type:varchar(20);not null;default:'submission'" json:"kind"`
	Status                 string          `gorm:"column:status;type:varchar(20);not null;default:'pending'" json:"status"`
	TotalShares            int64           `gorm:"column:total_shares;not null;default:0" json:"total_shares"`
	RemainingShares        int64           `gorm:"column:remaining_shares;not null;default:0" json:"remaining_shares"`
	ShareValue             decimal.Decimal `gorm:"column:share_value;type:decimal(18,2);not null;default:0" json:"share_value"`
	MinSharesPerRequest    int64           `gorm:"column:min_shares_per_request;not null;default:1" json:"min_shares_per_request"`
	RejectionReason        *string         `gorm:"column:rejection_reason" json:"rejection_reason,omitempty"`
	ApprovedFromSubmission *uuid.UUID      `gorm:"column:approved_from_submission;type:uuid" json:"approved_from_submission,omitempty"`
	CreatedAt              time.Time       `gorm:"column:created_at" json:"created_at"`
	UpdatedAt              time.Time       `gorm:"column:updated_at" json:"updated_at"`
}

func (Business) TableName() string {
	return "businesses"
}

func (b *Business) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}
