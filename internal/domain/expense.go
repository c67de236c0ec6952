package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	ExpenseKindOneTime   = "one_time"
	ExpenseKindRecursive = "recursive"
)

const (
	ExpenseStatusActive  = "active"
	ExpenseStatusPaid    = "paid"
	ExpenseStatusPending = "pending"
	ExpenseStatusOverdue = "overdue"
	ExpenseStatusStopped = "stopped"
)

const (
	ExpensePriorityHigh   = "high"
	ExpensePriorityMedium = "medium"
	ExpensePriorityLow    = "low"
)

// Recurrence frequencies for recursive expenses. FrequencyDays uses
// FrequencyValue as the number of days per cycle; the rest are calendar units.
const (
	FrequencyDays    = "days"
	FrequencyMonth   = "month"
	FrequencyQuarter = "quarter"
	FrequencyHalf    = "half"
	FrequencyYear    = "year"
)

// Expense is a company obligation. One-time expenses start active and are
// simply paid. Recursive expenses start pending and roll forward: paying one
// (or the hourly sweep catching a due one) spawns exactly one successor with
// the due date advanced by a period. ParentID always points at the origin of
// the chain, never at the immediate predecessor.
type Expense struct {
	ID             uuid.UUID       `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	Name           string          `gorm:"column:name;not null" json:"name"`
	Category       string          `gorm:"column:category" json:"category"`
	Amount         decimal.Decimal `gorm:"column:amount;type:decimal(18,2);not null" json:"amount"`
	Kind           string          `gorm:"column:kind;type:varchar(20);not null" json:"kind"`
	Priority       string          `gorm:"column:priority;type:varchar(10);not null;default:'medium'" json:"priority"`
	Status         string          `gorm:"column:status;type:varchar(20);not null" json:"status"`
	DueDate        time.Time       `gorm:"column:due_date;not null;index" json:"due_date"`
	PaidDate       *time.Time      `gorm:"column:paid_date" json:"paid_date,omitempty"`
	PaymentMethod  *string         `gorm:"column:payment_method" json:"payment_method,omitempty"`
	Frequency      *string         `gorm:"column:frequency;type:varchar(10)" json:"frequency,omitempty"`
	FrequencyValue *int            `gorm:"column:frequency_value" json:"frequency_value,omitempty"`
	ParentID       *uuid.UUID      `gorm:"column:parent_id;type:uuid;index" json:"parent_id,omitempty"`
	IsActive       *bool           `gorm:"column:is_active" json:"is_active,omitempty"`
	CreatedAt      time.Time       `gorm:"column:created_at" json:"created_at"`
	UpdatedAt      time.Time       `gorm:"column:updated_at" json:"updated_at"`
}

func (Expense) TableName() string {
	return "expenses"
}

func (e *Expense) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}

// OriginID is the id that successors of this expense carry as ParentID:
// the origin of the chain when this row is itself a successor, otherwise
// this row's own id.
func (e *Expense) OriginID() uuid.UUID {
	if e.ParentID != nil {
		return *e.ParentID
	}
	return e.ID
}

// Recurring reports whether this expense participates in successor generation.
func (e *Expense) Recurring() bool {
	return e.Kind == ExpenseKindRecursive && e.IsActive != nil && *e.IsActive
}
