package payroll

import (
	"context"
	"time"

	"github.com/cdy-agency/api-sky-solutions/internal/domain"
	"github.com/cdy-agency/api-sky-solutions/internal/pkg/apperr"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var (
	ErrNotFound         = apperr.NotFoundf("Payroll record not found")
	ErrEmployeeNotFound = apperr.NotFoundf("Employee not found")
)

// Service manages payroll rows. net_amount is derived, never stored from
// input: it is recomputed whenever salary, deductions or taxes change.
type Service struct {
	DB *gorm.DB
}

type CreateInput struct {
	EmployeeID uuid.UUID
	Period     string
	Salary     *decimal.Decimal // defaults to the employee's current salary
	Deductions decimal.Decimal
	Taxes      decimal.Decimal
}

func (s *Service) Create(ctx context.Context, in CreateInput) (*domain.Payroll, error) {
	if in.Period == "" {
		return nil, apperr.Validationf("period is required")
	}

	var p *domain.Payroll
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var emp domain.Employee
		if err := tx.Where("id = ?", in.EmployeeID).First(&emp).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return ErrEmployeeNotFound
			}
			return err
		}
		salary := emp.Salary
		if in.Salary != nil {
			salary = *in.Salary
		}
		p = &domain.Payroll{
			EmployeeID: in.EmployeeID,
			Period:     in.Period,
			Salary:     salary,
			Deductions: in.Deductions,
			Taxes:      in.Taxes,
			Status:     domain.PayrollStatusPending,
		}
		p.NetAmount = p.Net()
		return tx.Create(p).Error
	})
	if err != nil {
		return nil, err
	}
	return p, nil
}

type UpdateInput struct {
	Salary     *decimal.Decimal
	Deductions *decimal.Decimal
	Taxes      *decimal.Decimal
}

func (s *Service) Update(ctx context.Context, id uuid.UUID, in UpdateInput) (*domain.Payroll, error) {
	var p domain.Payroll
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ?", id).First(&p).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return ErrNotFound
			}
			return err
		}
		if in.Salary != nil {
			p.Salary = *in.Salary
		}
		if in.Deductions != nil {
			p.Deductions = *in.Deductions
		}
		if in.Taxes != nil {
			p.Taxes = *in.Taxes
		}
		p.NetAmount = p.Net()
		return tx.Save(&p).Error
	})
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *Service) MarkPaid(ctx context.Context, id uuid.UUID, paidDate *time.Time) (*domain.Payroll, error) {
	when := time.Now()
	if paidDate != nil {
		when = *paidDate
	}
	var p domain.Payroll
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ?", id).First(&p).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return ErrNotFound
			}
			return err
		}
		if p.Status == domain.PayrollStatusPaid {
			return apperr.Statef("Payroll record has already been paid")
		}
		p.Status = domain.PayrollStatusPaid
		p.PaidDate = &when
		return tx.Save(&p).Error
	})
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *Service) List(ctx context.Context, employeeID *uuid.UUID, period string) ([]domain.Payroll, error) {
	q := s.DB.WithContext(ctx).Order("created_at DESC")
	if employeeID != nil {
		q = q.Where("employee_id = ?", *employeeID)
	}
	if period != "" {
		q = q.Where("period = ?", period)
	}
	var out []domain.Payroll
	if err := q.Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}
