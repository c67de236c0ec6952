package expenses

import (
	"context"
	"time"

	"github.com/cdy-agency/api-sky-solutions/internal/domain"
	"github.com/cdy-agency/api-sky-solutions/internal/pkg/apperr"
	"github.com/cdy-agency/api-sky-solutions/internal/pkg/query"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var (
	ErrNotFound     = apperr.NotFoundf("Expense not found")
	ErrAlreadyPaid  = apperr.Statef("Expense has already been paid")
	ErrNotRecursive = apperr.Statef("Expense is not recursive")
)

// Service is the expense recurrence engine. Recursive expenses roll forward
// through an idempotent ensure-successor primitive shared by the explicit
// mark-paid path and the periodic sweep, so a race between the two cannot
// double-create a successor.
type Service struct {
	DB *gorm.DB
}

// CreateInput holds the expense attribute set.
type CreateInput struct {
	Name           string
	Category       string
	Amount         decimal.Decimal
	Kind           string
	Priority       string
	DueDate        time.Time
	Frequency      *string
	FrequencyValue *int
}

// Create initializes an expense. One-time expenses start active and never
// carry frequency/parent/is_active; recursive expenses start pending with
// is_active true and require a valid frequency.
func (s *Service) Create(ctx context.Context, in CreateInput) (*domain.Expense, error) {
	if in.Name == "" {
		return nil, apperr.Validationf("name is required")
	}
	if !in.Amount.IsPositive() {
		return nil, apperr.Validationf("amount must be positive")
	}
	if in.Priority == "" {
		in.Priority = domain.ExpensePriorityMedium
	}

	e := &domain.Expense{
		Name:     in.Name,
		Category: in.Category,
		Amount:   in.Amount,
		Kind:     in.Kind,
		Priority: in.Priority,
		DueDate:  in.DueDate,
	}

	switch in.Kind {
	case domain.ExpenseKindOneTime:
		e.Status = domain.ExpenseStatusActive
	case domain.ExpenseKindRecursive:
		if in.Frequency == nil || !ValidFrequency(*in.Frequency) {
			return nil, apperr.Validationf("a recursive expense requires a valid frequency")
		}
		if *in.Frequency == domain.FrequencyDays && (in.FrequencyValue == nil || *in.FrequencyValue < 1) {
			return nil, apperr.Validationf("frequency_value must be a positive number of days")
		}
		active := true
		e.Status = domain.ExpenseStatusPending
		e.Frequency = in.Frequency
		e.FrequencyValue = in.FrequencyValue
		e.IsActive = &active
	default:
		return nil, apperr.Validationf("kind must be one_time or recursive")
	}

	if err := s.DB.WithContext(ctx).Create(e).Error; err != nil {
		return nil, err
	}
	return e, nil
}

// UpdateInput holds the editable expense fields. Nil means leave unchanged.
type UpdateInput struct {
	Name     *string
	Category *string
	Amount   *decimal.Decimal
	Priority *string
	DueDate  *time.Time
}

func (s *Service) Update(ctx context.Context, id uuid.UUID, in UpdateInput) (*domain.Expense, error) {
	var e domain.Expense
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ?", id).First(&e).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return ErrNotFound
			}
			return err
		}
		if in.Name != nil {
			e.Name = *in.Name
		}
		if in.Category != nil {
			e.Category = *in.Category
		}
		if in.Amount != nil {
			if !in.Amount.IsPositive() {
				return apperr.Validationf("amount must be positive")
			}
			e.Amount = *in.Amount
		}
		if in.Priority != nil {
			e.Priority = *in.Priority
		}
		if in.DueDate != nil {
			e.DueDate = *in.DueDate
		}
		return tx.Save(&e).Error
	})
	if err != nil {
		return nil, err
	}
	return &e, nil
}

// ToggleActive pauses or resumes successor generation for a recursive
// expense without deleting its history.
func (s *Service) ToggleActive(ctx context.Context, id uuid.UUID, active bool) (*domain.Expense, error) {
	var e domain.Expense
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ?", id).First(&e).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return ErrNotFound
			}
			return err
		}
		if e.Kind != domain.ExpenseKindRecursive {
			return ErrNotRecursive
		}
		e.IsActive = &active
		if !active {
			e.Status = domain.ExpenseStatusStopped
		} else if e.Status == domain.ExpenseStatusStopped {
			e.Status = domain.ExpenseStatusPending
		}
		return tx.Save(&e).Error
	})
	if err != nil {
		return nil, err
	}
	return &e, nil
}

// MarkPaid settles an expense. Recursive expenses that are still active get
// a successor through ensureSuccessor, which is a no-op when a later pending
// successor already exists (e.g. created by the sweep).
func (s *Service) MarkPaid(ctx context.Context, id uuid.UUID, paidDate *time.Time, paymentMethod string) (*domain.Expense, error) {
	when := time.Now()
	if paidDate != nil {
		when = *paidDate
	}

	var e domain.Expense
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ?", id).First(&e).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return ErrNotFound
			}
			return err
		}
		if e.Status == domain.ExpenseStatusPaid {
			return ErrAlreadyPaid
		}
		e.Status = domain.ExpenseStatusPaid
		e.PaidDate = &when
		if paymentMethod != "" {
			e.PaymentMethod = &paymentMethod
		}
		if err := tx.Save(&e).Error; err != nil {
			return err
		}
		if e.Recurring() {
			return s.ensureSuccessor(tx, &e)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &e, nil
}

// ensureSuccessor creates the next occurrence for e unless a later pending
// one already exists for the same origin. Successors always point their
// parent_id at the chain origin, never at the immediate predecessor.
func (s *Service) ensureSuccessor(tx *gorm.DB, e *domain.Expense) error {
	if e.Frequency == nil {
		return nil
	}
	origin := e.OriginID()

	var existing int64
	if err := tx.Model(&domain.Expense{}).
		Where("parent_id = ? AND due_date > ? AND status = ?", origin, e.DueDate, domain.ExpenseStatusPending).
		Count(&existing).Error; err != nil {
		return err
	}
	if existing > 0 {
		return nil
	}

	freqValue := 0
	if e.FrequencyValue != nil {
		freqValue = *e.FrequencyValue
	}
	active := true
	successor := &domain.Expense{
		Name:           e.Name,
		Category:       e.Category,
		Amount:         e.Amount,
		Kind:           domain.ExpenseKindRecursive,
		Priority:       e.Priority,
		Status:         domain.ExpenseStatusPending,
		DueDate:        NextDueDate(e.DueDate, *e.Frequency, freqValue),
		Frequency:      e.Frequency,
		FrequencyValue: e.FrequencyValue,
		ParentID:       &origin,
		IsActive:       &active,
	}
	return tx.Create(successor).Error
}

// Sweep is the idempotent periodic pass. For every active recursive expense
// that is due (pending or overdue), it ensures the next occurrence exists and
// flips overdue status where the due date has passed. Re-running it with no
// intervening state change creates nothing new. Per-expense failures are
// logged and do not stop the pass.
func (s *Service) Sweep(ctx context.Context, now time.Time) error {
	var due []domain.Expense
	if err := s.DB.WithContext(ctx).
		Where("kind = ? AND is_active = ? AND status IN ? AND due_date <= ?",
			domain.ExpenseKindRecursive, true,
			[]string{domain.ExpenseStatusPending, domain.ExpenseStatusOverdue}, now).
		Find(&due).Error; err != nil {
		return err
	}

	for i := range due {
		e := due[i]
		err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			if err := s.ensureSuccessor(tx, &e); err != nil {
				return err
			}
			if e.Status == domain.ExpenseStatusPending && e.DueDate.Before(now) {
				e.Status = domain.ExpenseStatusOverdue
				return tx.Save(&e).Error
			}
			return nil
		})
		if err != nil {
			log.Error().Err(err).Str("expense_id", e.ID.String()).Msg("Recurrence sweep failed for expense")
		}
	}
	return nil
}

// Get returns one expense by id.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*domain.Expense, error) {
	var e domain.Expense
	if err := s.DB.WithContext(ctx).Where("id = ?", id).First(&e).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &e, nil
}

// List returns expenses matching the filter.
func (s *Service) List(ctx context.Context, opts query.Options) ([]domain.Expense, error) {
	var out []domain.Expense
	if err := s.DB.WithContext(ctx).Scopes(opts.Scope("due_date")).Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}
