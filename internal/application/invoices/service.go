package invoices

import (
	"context"
	"time"

	"github.com/cdy-agency/api-sky-solutions/internal/domain"
	"github.com/cdy-agency/api-sky-solutions/internal/pkg/apperr"
	"github.com/cdy-agency/api-sky-solutions/internal/pkg/query"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var ErrNotFound = apperr.NotFoundf("Invoice not found")

// Service manages vendor invoices. Recurring invoices never spawn successor
// rows: paying one advances next_due_date in place and resets it to pending.
type Service struct {
	DB *gorm.DB
}

// nextDueDate advances an invoice due date by one period.
func nextDueDate(current time.Time, frequency string) time.Time {
	switch frequency {
	case domain.InvoiceFrequencyWeekly:
		return current.AddDate(0, 0, 7)
	case domain.InvoiceFrequencyQuarterly:
		return current.AddDate(0, 3, 0)
	case domain.InvoiceFrequencyYearly:
		return current.AddDate(1, 0, 0)
	default:
		return current.AddDate(0, 1, 0)
	}
}

// CreateInput holds the invoice attribute set.
type CreateInput struct {
	Vendor      string
	Number      string
	Description string
	Amount      decimal.Decimal
	Recurring   bool
	Frequency   *string
	DueDate     time.Time
}

func (s *Service) Create(ctx context.Context, in CreateInput) (*domain.Invoice, error) {
	if in.Vendor == "" {
		return nil, apperr.Validationf("vendor is required")
	}
	if !in.Amount.IsPositive() {
		return nil, apperr.Validationf("amount must be positive")
	}
	if in.Recurring {
		if in.Frequency == nil {
			return nil, apperr.Validationf("a recurring invoice requires a frequency")
		}
		switch *in.Frequency {
		case domain.InvoiceFrequencyWeekly, domain.InvoiceFrequencyMonthly,
			domain.InvoiceFrequencyQuarterly, domain.InvoiceFrequencyYearly:
		default:
			return nil, apperr.Validationf("frequency must be weekly, monthly, quarterly or yearly")
		}
	}
	inv := &domain.Invoice{
		Vendor:      in.Vendor,
		Number:      in.Number,
		Description: in.Description,
		Amount:      in.Amount,
		Status:      domain.InvoiceStatusPending,
		Recurring:   in.Recurring,
		Frequency:   in.Frequency,
		NextDueDate: in.DueDate,
	}
	if err := s.DB.WithContext(ctx).Create(inv).Error; err != nil {
		return nil, err
	}
	return inv, nil
}

// UpdateInput holds the editable invoice fields.
type UpdateInput struct {
	Vendor      *string
	Number      *string
	Description *string
	Amount      *decimal.Decimal
	DueDate     *time.Time
}

func (s *Service) Update(ctx context.Context, id uuid.UUID, in UpdateInput) (*domain.Invoice, error) {
	var inv domain.Invoice
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ?", id).First(&inv).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return ErrNotFound
			}
			return err
		}
		if in.Vendor != nil {
			inv.Vendor = *in.Vendor
		}
		if in.Number != nil {
			inv.Number = *in.Number
		}
		if in.Description != nil {
			inv.Description = *in.Description
		}
		if in.Amount != nil {
			if !in.Amount.IsPositive() {
				return apperr.Validationf("amount must be positive")
			}
			inv.Amount = *in.Amount
		}
		if in.DueDate != nil {
			inv.NextDueDate = *in.DueDate
		}
		return tx.Save(&inv).Error
	})
	if err != nil {
		return nil, err
	}
	return &inv, nil
}

// MarkPaid settles an invoice. A recurring invoice rolls forward: its
// next_due_date advances by one period and the status returns to pending.
// A one-off invoice stays paid.
func (s *Service) MarkPaid(ctx context.Context, id uuid.UUID, paidDate *time.Time) (*domain.Invoice, error) {
	when := time.Now()
	if paidDate != nil {
		when = *paidDate
	}
	var inv domain.Invoice
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ?", id).First(&inv).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return ErrNotFound
			}
			return err
		}
		if inv.Status == domain.InvoiceStatusPaid {
			return apperr.Statef("Invoice has already been paid")
		}
		inv.LastPaidDate = &when
		if inv.Recurring && inv.Frequency != nil {
			inv.NextDueDate = nextDueDate(inv.NextDueDate, *inv.Frequency)
			inv.Status = domain.InvoiceStatusPending
		} else {
			inv.Status = domain.InvoiceStatusPaid
		}
		return tx.Save(&inv).Error
	})
	if err != nil {
		return nil, err
	}
	return &inv, nil
}

// SweepOverdue flips unpaid invoices whose due date has passed to overdue.
// Idempotent; driven by the same hourly scheduler as the expense sweep.
func (s *Service) SweepOverdue(ctx context.Context, now time.Time) error {
	return s.DB.WithContext(ctx).Model(&domain.Invoice{}).
		Where("status = ? AND next_due_date < ?", domain.InvoiceStatusPending, now).
		UpdateColumn("status", domain.InvoiceStatusOverdue).Error
}

// List returns invoices matching the filter.
func (s *Service) List(ctx context.Context, opts query.Options) ([]domain.Invoice, error) {
	var out []domain.Invoice
	if err := s.DB.WithContext(ctx).Scopes(opts.Scope("next_due_date")).Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}
