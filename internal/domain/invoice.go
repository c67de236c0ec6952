package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	InvoiceStatusPending = "pending"
	InvoiceStatusPaid    = "paid"
	InvoiceStatusOverdue = "overdue"
)

// Invoice recurrence frequencies. Unlike expenses, a recurring invoice never
// spawns successor rows: paying it advances NextDueDate in place.
const (
	InvoiceFrequencyWeekly    = "weekly"
	InvoiceFrequencyMonthly   = "monthly"
	InvoiceFrequencyQuarterly = "quarterly"
	InvoiceFrequencyYearly    = "yearly"
)

// Invoice is a vendor-facing obligation with its own simpler recurrence.
type Invoice struct {
	ID            uuid.UUID       `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	Vendor        string          `gorm:"column:vendor;not null" json:"vendor"`
	Number        string          `gorm:"column:number" json:"number"`
	Description   string          `gorm:"column:description;type:text" json:"description"`
	Amount        decimal.Decimal `gorm:"column:amount;type:decimal(18,2);not null" json:"amount"`
	Status        string          `gorm:"column:status;type:varchar(20);not null;default:'pending'" json:"status"`
	Recurring     bool            `gorm:"column:recurring;not null;default:false" json:"recurring"`
	Frequency     *string         `gorm:"column:frequency;type:varchar(10)" json:"frequency,omitempty"`
	NextDueDate   time.Time       `gorm:"column:next_due_date;not null;index" json:"next_due_date"`
	LastPaidDate  *time.Time      `gorm:"column:last_paid_date" json:"last_paid_date,omitempty"`
	CreatedAt     time.Time       `gorm:"column:created_at" json:"created_at"`
	UpdatedAt     time.Time       `gorm:"column:updated_at" json:"updated_at"`
}

func (Invoice) TableName() string {
	return "invoices"
}

func (i *Invoice) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}
