package employees

import (
	"context"
	"time"

	"github.com/cdy-agency/api-sky-solutions/internal/domain"
	"github.com/cdy-agency/api-sky-solutions/internal/pkg/apperr"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var ErrNotFound = apperr.NotFoundf("Employee not found")

type Service struct {
	DB *gorm.DB
}

type CreateInput struct {
	FullName string
	Email    string
	Role     string
	Salary   decimal.Decimal
	HiredAt  *time.Time
}

func (s *Service) Create(ctx context.Context, in CreateInput) (*domain.Employee, error) {
	if in.FullName == "" {
		return nil, apperr.Validationf("full_name is required")
	}
	if in.Salary.IsNegative() {
		return nil, apperr.Validationf("salary cannot be negative")
	}
	e := &domain.Employee{
		FullName: in.FullName,
		Email:    in.Email,
		Role:     in.Role,
		Salary:   in.Salary,
		HiredAt:  in.HiredAt,
		Active:   true,
	}
	if err := s.DB.WithContext(ctx).Create(e).Error; err != nil {
		return nil, err
	}
	return e, nil
}

type UpdateInput struct {
	FullName *string
	Email    *string
	Role     *string
	Salary   *decimal.Decimal
	Active   *bool
}

func (s *Service) Update(ctx context.Context, id uuid.UUID, in UpdateInput) (*domain.Employee, error) {
	var e domain.Employee
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ?", id).First(&e).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return ErrNotFound
			}
			return err
		}
		if in.FullName != nil {
			e.FullName = *in.FullName
		}
		if in.Email != nil {
			e.Email = *in.Email
		}
		if in.Role != nil {
			e.Role = *in.Role
		}
		if in.Salary != nil {
			if in.Salary.IsNegative() {
				return apperr.Validationf("salary cannot be negative")
			}
			e.Salary = *in.Salary
		}
		if in.Active != nil {
			e.Active = *in.Active
		}
		return tx.Save(&e).Error
	})
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*domain.Employee, error) {
	var e domain.Employee
	if err := s.DB.WithContext(ctx).Where("id = ?", id).First(&e).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &e, nil
}

func (s *Service) List(ctx context.Context, activeOnly bool) ([]domain.Employee, error) {
	q := s.DB.WithContext(ctx).Order("full_name ASC")
	if activeOnly {
		q = q.Where("active = ?", true)
	}
	var out []domain.Employee
	if err := q.Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}
