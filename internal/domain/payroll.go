package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	PayrollStatusPending = "pending"
	PayrollStatusPaid    = "paid"
)

// Payroll is one employee's pay for one period. NetAmount is always
// salary - deductions - taxes and is recomputed whenever any of the three
// inputs change.
type Payroll struct {
	ID         uuid.UUID       `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	EmployeeID uuid.UUID       `gorm:"column:employee_id;type:uuid;not null;index" json:"employee_id"`
	Period     string          `gorm:"column:period;not null" json:"period"`
	Salary     decimal.Decimal `gorm:"column:salary;type:decimal(18,2);not null" json:"salary"`
	Deductions decimal.Decimal `gorm:"column:deductions;type:decimal(18,2);not null;default:0" json:"deductions"`
	Taxes      decimal.Decimal `gorm:"column:taxes;type:decimal(18,2);not null;default:0" json:"taxes"`
	NetAmount  decimal.Decimal `gorm:"column:net_amount;type:decimal(18,2);not null" json:"net_amount"`
	Status     string          `gorm:"column:status;type:varchar(20);not null;default:'pending'" json:"status"`
	PaidDate   *time.Time      `gorm:"column:paid_date" json:"paid_date,omitempty"`
	CreatedAt  time.Time       `gorm:"column:created_at" json:"created_at"`
	UpdatedAt  time.Time       `gorm:"column:updated_at" json:"updated_at"`
}

func (Payroll) TableName() string {
	return "payrolls"
}

func (p *Payroll) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// Net computes salary - deductions - taxes.
func (p *Payroll) Net() decimal.Decimal {
	return p.Salary.Sub(p.Deductions).Sub(p.Taxes)
}
