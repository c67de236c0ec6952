package businesses

import (
	"context"

	"github.com/cdy-agency/api-sky-solutions/internal/application/notifications"
	"github.com/cdy-agency/api-sky-solutions/internal/domain"
	"github.com/cdy-agency/api-sky-solutions/internal/pkg/apperr"
	"github.com/cdy-agency/api-sky-solutions/internal/pkg/query"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var (
	ErrNotFound       = apperr.NotFoundf("Business not found")
	ErrNotSubmission  = apperr.Statef("Business is not a submission")
	ErrAlreadyDecided = apperr.Statef("Submission has already been decided")
)

// Notifier receives fire-and-forget notifications from the review flow.
type Notifier interface {
	Notify(ctx context.Context, in notifications.Input)
}

type Service struct {
	DB       *gorm.DB
	Notifier Notifier
}

// SubmitInput is an entrepreneur's business proposal.
type SubmitInput struct {
	OwnerID     uuid.UUID
	Name        string
	Description string
	Category    string
}

// Submit creates a submission (kind=submission, status=pending). Submissions
// carry no share inventory; that is set when an admin publishes them.
func (s *Service) Submit(ctx context.Context, in SubmitInput) (*domain.Business, error) {
	if in.Name == "" {
		return nil, apperr.Validationf("name is required")
	}
	biz := &domain.Business{
		OwnerID:     &in.OwnerID,
		Name:        in.Name,
		Description: in.Description,
		Category:    in.Category,
		Kind:        domain.BusinessKindSubmission,
		Status:      domain.BusinessStatusPending,
	}
	if err := s.DB.WithContext(ctx).Create(biz).Error; err != nil {
		return nil, err
	}
	return biz, nil
}

// StartReview moves a pending submission to in_review.
func (s *Service) StartReview(ctx context.Context, id uuid.UUID) (*domain.Business, error) {
	var biz domain.Business
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ?", id).First(&biz).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return ErrNotFound
			}
			return err
		}
		if biz.Kind != domain.BusinessKindSubmission {
			return ErrNotSubmission
		}
		if biz.Status != domain.BusinessStatusPending {
			return ErrAlreadyDecided
		}
		biz.Status = domain.BusinessStatusInReview
		return tx.Save(&biz).Error
	})
	if err != nil {
		return nil, err
	}
	if s.Notifier != nil && biz.OwnerID != nil {
		s.Notifier.Notify(ctx, notifications.Input{
			UserID:          *biz.OwnerID,
			Type:            domain.NotificationBusinessReview,
			Title:           "Submission in review",
			Message:         biz.Name + " is being reviewed",
			RelatedEntityID: &biz.ID,
		})
	}
	return &biz, nil
}

// PublishInput carries the offering terms an admin sets when approving a
// submission.
type PublishInput struct {
	TotalShares         int64
	ShareValue          decimal.Decimal
	MinSharesPerRequest int64
}

// ApproveSubmission approves a submission and publishes it as a fresh public
// business with the given offering terms. The submission row is marked
// approved; the new public row starts active with remaining = total.
func (s *Service) ApproveSubmission(ctx context.Context, id uuid.UUID, in PublishInput) (*domain.Business, error) {
	if in.TotalShares < 1 {
		return nil, apperr.Validationf("total_shares must be a positive integer")
	}
	if !in.ShareValue.IsPositive() {
		return nil, apperr.Validationf("share_value must be positive")
	}
	if in.MinSharesPerRequest < 1 {
		in.MinSharesPerRequest = 1
	}

	var pub *domain.Business
	var sub domain.Business
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ?", id).First(&sub).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return ErrNotFound
			}
			return err
		}
		if sub.Kind != domain.BusinessKindSubmission {
			return ErrNotSubmission
		}
		if sub.Status != domain.BusinessStatusPending && sub.Status != domain.BusinessStatusInReview {
			return ErrAlreadyDecided
		}

		sub.Status = domain.BusinessStatusApproved
		if err := tx.Save(&sub).Error; err != nil {
			return err
		}

		pub = &domain.Business{
			OwnerID:                sub.OwnerID,
			Name:                   sub.Name,
			Description:            sub.Description,
			Category:               sub.Category,
			Kind:                   domain.BusinessKindPublic,
			Status:                 domain.BusinessStatusActive,
			TotalShares:            in.TotalShares,
			RemainingShares:        in.TotalShares,
			ShareValue:             in.ShareValue,
			MinSharesPerRequest:    in.MinSharesPerRequest,
			ApprovedFromSubmission: &sub.ID,
		}
		return tx.Create(pub).Error
	})
	if err != nil {
		return nil, err
	}
	if s.Notifier != nil && sub.OwnerID != nil {
		s.Notifier.Notify(ctx, notifications.Input{
			UserID:          *sub.OwnerID,
			Type:            domain.NotificationBusinessReview,
			Title:           "Submission approved",
			Message:         sub.Name + " is now open for investment",
			RelatedEntityID: &pub.ID,
		})
	}
	return pub, nil
}

// RejectSubmission rejects a submission with a reason.
func (s *Service) RejectSubmission(ctx context.Context, id uuid.UUID, reason string) (*domain.Business, error) {
	var biz domain.Business
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ?", id).First(&biz).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return ErrNotFound
			}
			return err
		}
		if biz.Kind != domain.BusinessKindSubmission {
			return ErrNotSubmission
		}
		if biz.Status != domain.BusinessStatusPending && biz.Status != domain.BusinessStatusInReview {
			return ErrAlreadyDecided
		}
		biz.Status = domain.BusinessStatusRejected
		biz.RejectionReason = &reason
		return tx.Save(&biz).Error
	})
	if err != nil {
		return nil, err
	}
	if s.Notifier != nil && biz.OwnerID != nil {
		s.Notifier.Notify(ctx, notifications.Input{
			UserID:          *biz.OwnerID,
			Type:            domain.NotificationBusinessReview,
			Title:           "Submission rejected",
			Message:         reason,
			RelatedEntityID: &biz.ID,
		})
	}
	return &biz, nil
}

// CreateInput is a direct admin creation of a public business.
type CreateInput struct {
	OwnerID             *uuid.UUID
	Name                string
	Description         string
	Category            string
	TotalShares         int64
	ShareValue          decimal.Decimal
	MinSharesPerRequest int64
}

// Create makes a public business directly, skipping the submission flow.
func (s *Service) Create(ctx context.Context, in CreateInput) (*domain.Business, error) {
	if in.Name == "" {
		return nil, apperr.Validationf("name is required")
	}
	if in.TotalShares < 1 {
		return nil, apperr.Validationf("total_shares must be a positive integer")
	}
	if !in.ShareValue.IsPositive() {
		return nil, apperr.Validationf("share_value must be positive")
	}
	if in.MinSharesPerRequest < 1 {
		in.MinSharesPerRequest = 1
	}
	biz := &domain.Business{
		OwnerID:             in.OwnerID,
		Name:                in.Name,
		Description:         in.Description,
		Category:            in.Category,
		Kind:                domain.BusinessKindPublic,
		Status:              domain.BusinessStatusActive,
		TotalShares:         in.TotalShares,
		RemainingShares:     in.TotalShares,
		ShareValue:          in.ShareValue,
		MinSharesPerRequest: in.MinSharesPerRequest,
	}
	if err := s.DB.WithContext(ctx).Create(biz).Error; err != nil {
		return nil, err
	}
	return biz, nil
}

// UpdateInput holds the editable fields of a public business. Nil means
// leave unchanged.
type UpdateInput struct {
	Name                *string
	Description         *string
	Category            *string
	Status              *string
	TotalShares         *int64
	ShareValue          *decimal.Decimal
	MinSharesPerRequest *int64
}

// Update edits a business. Editing total_shares after requests were approved
// is an approximation: remaining_shares is rescaled by
// floor(remaining * new/old), it does not reconcile shares already sold.
func (s *Service) Update(ctx context.Context, id uuid.UUID, in UpdateInput) (*domain.Business, error) {
	var biz domain.Business
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ?", id).First(&biz).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return ErrNotFound
			}
			return err
		}
		if in.Name != nil {
			biz.Name = *in.Name
		}
		if in.Description != nil {
			biz.Description = *in.Description
		}
		if in.Category != nil {
			biz.Category = *in.Category
		}
		if in.Status != nil {
			biz.Status = *in.Status
		}
		if in.ShareValue != nil {
			if !in.ShareValue.IsPositive() {
				return apperr.Validationf("share_value must be positive")
			}
			biz.ShareValue = *in.ShareValue
		}
		if in.MinSharesPerRequest != nil {
			if *in.MinSharesPerRequest < 1 {
				return apperr.Validationf("min_shares_per_request must be at least 1")
			}
			biz.MinSharesPerRequest = *in.MinSharesPerRequest
		}
		if in.TotalShares != nil {
			if *in.TotalShares < 0 {
				return apperr.Validationf("total_shares cannot be negative")
			}
			if biz.TotalShares > 0 && *in.TotalShares != biz.TotalShares {
				// Proportional rescale, floor division. Approximate on purpose.
				biz.RemainingShares = biz.RemainingShares * *in.TotalShares / biz.TotalShares
			} else if biz.TotalShares == 0 {
				biz.RemainingShares = *in.TotalShares
			}
			biz.TotalShares = *in.TotalShares
			if biz.RemainingShares > biz.TotalShares {
				biz.RemainingShares = biz.TotalShares
			}
		}
		return tx.Save(&biz).Error
	})
	if err != nil {
		return nil, err
	}
	return &biz, nil
}

// Get returns one business by id.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*domain.Business, error) {
	var biz domain.Business
	if err := s.DB.WithContext(ctx).Where("id = ?", id).First(&biz).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &biz, nil
}

// List returns businesses matching the filter.
func (s *Service) List(ctx context.Context, opts query.Options) ([]domain.Business, error) {
	var out []domain.Business
	if err := s.DB.WithContext(ctx).Scopes(opts.Scope("created_at")).Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}
