package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Employee is an office-management record; payroll rows hang off it.
type Employee struct {
	ID        uuid.UUID       `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	FullName  string          `gorm:"column:full_name;not null" json:"full_name"`
	Email     string          `gorm:"column:email;uniqueIndex" json:"email"`
	Role      string          `gorm:"column:role" json:"role"`
	Salary    decimal.Decimal `gorm:"column:salary;type:decimal(18,2);not null;default:0" json:"salary"`
	HiredAt   *time.Time      `gorm:"column:hired_at" json:"hired_at,omitempty"`
	Active    bool            `gorm:"column:active;not null;default:true" json:"active"`
	CreatedAt time.Time       `gorm:"column:created_at" json:"created_at"`
	UpdatedAt time.Time       `gorm:"column:updated_at" json:"updated_at"`
}

func (Employee) TableName() string {
	return "employees"
}

func (e *Employee) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}
