package shares

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

// Notifier receives fire-and-forget notifications from the share flows.
type Notifier interface {
	Notify(ctx context.Context, in notifications.Input)
}

// Service is the share-allocation engine: it validates and executes share
// requests and approvals against a business's share inventory. Approval is the
// only path that mutates remaining_shares, and does so through a conditional
// decrement so concurrent approvals can never over-allocate.
type Service struct {
	DB       *gorm.DB
	Notifier Notifier
}

// RequestShares creates a pending share request. It does NOT reserve
// inventory: the remaining-shares check here is advisory, and is re-run
// authoritatively at approval time.
func (s *Service) RequestShares(ctx context.Context, businessID, investorID uuid.UUID, requestedShares int64) (*domain.ShareRequest, error) {
	if requestedShares < 1 {
		return nil, apperr.Validationf("requested_shares must be a positive integer")
	}

	var req *domain.ShareRequest
	var biz domain.Business

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ?", businessID).First(&biz).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return ErrBusinessNotFound
			}
			return err
		}
		if biz.Kind != domain.BusinessKindPublic || biz.Status != domain.BusinessStatusActive {
			return ErrBusinessNotOpen
		}
		if requestedShares < biz.MinSharesPerRequest {
			return apperr.Validationf("requested_shares is below the business minimum of %d", biz.MinSharesPerRequest)
		}

		var pending int64
		if err := tx.Model(&domain.ShareRequest{}).
			Where("business_id = ? AND investor_id = ? AND status = ?", businessID, investorID, domain.ShareRequestStatusPending).
			Count(&pending).Error; err != nil {
			return err
		}
		if pending > 0 {
			return ErrDuplicatePending
		}

		if requestedShares > biz.RemainingShares {
			return ErrInsufficientShares
		}

		req = &domain.ShareRequest{
			BusinessID:      businessID,
			InvestorID:      investorID,
			RequestedShares: requestedShares,
			ShareValue:      biz.ShareValue,
			TotalAmount:     biz.ShareValue.Mul(decimal.NewFromInt(requestedShares)),
			Status:          domain.ShareRequestStatusPending,
		}
		return tx.Create(req).Error
	})
	if err != nil {
		return nil, err
	}

	if s.Notifier != nil && biz.OwnerID != nil {
		s.Notifier.Notify(ctx, notifications.Input{
			UserID:          *biz.OwnerID,
			Type:            domain.NotificationShareRequested,
			Title:           "New share request",
			Message:         "An investor has requested shares in " + biz.Name,
			RelatedEntityID: &req.ID,
			Payload: map[string]interface{}{
				"requested_shares": req.RequestedShares,
				"total_amount":     req.TotalAmount,
			},
		})
	}
	return req, nil
}

// ApproveShareRequest approves a pending request, decrements the business's
// remaining shares and creates an approved Investment, all in one transaction.
// approvedShares defaults to the requested count when nil and may be lower
// but never higher. The decrement is a store-level conditional update
// (remaining_shares >= approved), so a concurrent approval that would push
// the inventory negative fails with a capacity error and no mutation.
func (s *Service) ApproveShareRequest(ctx context.Context, requestID uuid.UUID, approvedShares *int64) (*domain.ShareRequest, *domain.Investment, error) {
	var req domain.ShareRequest
	var biz domain.Business
	var inv *domain.Investment

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ?", requestID).First(&req).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return ErrShareRequestNotFound
			}
			return err
		}
		if req.Status != domain.ShareRequestStatusPending {
			return ErrRequestDecided
		}

		shares := req.RequestedShares
		if approvedShares != nil {
			shares = *approvedShares
		}
		if shares < 1 {
			return apperr.Validationf("approved_shares must be a positive integer")
		}
		if shares > req.RequestedShares {
			return apperr.Validationf("approved_shares cannot exceed the requested %d", req.RequestedShares)
		}

		if err := tx.Where("id = ?", req.BusinessID).First(&biz).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return ErrBusinessNotFound
			}
			return err
		}

		// Authoritative capacity check: conditional decrement, not
		// read-modify-write. RowsAffected 0 means another approval got
		// there first.
		res := tx.Model(&domain.Business{}).
			Where("id = ? AND remaining_shares >= ?", biz.ID, shares).
			UpdateColumn("remaining_shares", gorm.Expr("remaining_shares - ?", shares))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrInsufficientShares
		}
		biz.RemainingShares -= shares

		req.Status = domain.ShareRequestStatusApproved
		req.ApprovedShares = &shares
		if err := tx.Save(&req).Error; err != nil {
			return err
		}

		inv = &domain.Investment{
			BusinessID:     req.BusinessID,
			InvestorID:     req.InvestorID,
			ShareRequestID: &req.ID,
			Shares:         shares,
			Amount:         req.ShareValue.Mul(decimal.NewFromInt(shares)),
			Status:         domain.InvestmentStatusApproved,
		}
		return tx.Create(inv).Error
	})
	if err != nil {
		return nil, nil, err
	}

	if s.Notifier != nil {
		s.Notifier.Notify(ctx, notifications.Input{
			UserID:          req.InvestorID,
			Type:            domain.NotificationShareApproved,
			Title:           "Share request approved",
			Message:         "Your share request for " + biz.Name + " was approved",
			RelatedEntityID: &req.ID,
			Payload: map[string]interface{}{
				"approved_shares": *req.ApprovedShares,
				"amount":          inv.Amount,
			},
		})
		if biz.OwnerID != nil {
			s.Notifier.Notify(ctx, notifications.Input{
				UserID:          *biz.OwnerID,
				Type:            domain.NotificationShareApproved,
				Title:           "Shares allocated",
				Message:         "Shares were allocated to an investor in " + biz.Name,
				RelatedEntityID: &req.ID,
			})
		}
	}
	return &req, inv, nil
}

// RejectShareRequest rejects a pending request with a reason. Rejection never
// touches inventory. Any transition from a non-pending status is refused.
func (s *Service) RejectShareRequest(ctx context.Context, requestID uuid.UUID, reason string) (*domain.ShareRequest, error) {
	var req domain.ShareRequest

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ?", requestID).First(&req).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return ErrShareRequestNotFound
			}
			return err
		}
		if req.Status != domain.ShareRequestStatusPending {
			return ErrRequestDecided
		}
		req.Status = domain.ShareRequestStatusRejected
		req.RejectionReason = &reason
		return tx.Save(&req).Error
	})
	if err != nil {
		return nil, err
	}

	if s.Notifier != nil {
		s.Notifier.Notify(ctx, notifications.Input{
			UserID:          req.InvestorID,
			Type:            domain.NotificationShareRejected,
			Title:           "Share request rejected",
			Message:         reason,
			RelatedEntityID: &req.ID,
		})
	}
	return &req, nil
}

// GetRequest returns one share request by id.
func (s *Service) GetRequest(ctx context.Context, id uuid.UUID) (*domain.ShareRequest, error) {
	var req domain.ShareRequest
	if err := s.DB.WithContext(ctx).Where("id = ?", id).First(&req).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrShareRequestNotFound
		}
		return nil, err
	}
	return &req, nil
}

// ListRequests returns share requests matching the filter, optionally scoped
// to a business or investor.
func (s *Service) ListRequests(ctx context.Context, businessID, investorID *uuid.UUID, opts query.Options) ([]domain.ShareRequest, error) {
	q := s.DB.WithContext(ctx).Scopes(opts.Scope("created_at"))
	if businessID != nil {
		q = q.Where("business_id = ?", *businessID)
	}
	if investorID != nil {
		q = q.Where("investor_id = ?", *investorID)
	}
	var out []domain.ShareRequest
	if err := q.Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// ListInvestments returns investments, optionally scoped to an investor.
func (s *Service) ListInvestments(ctx context.Context, investorID *uuid.UUID) ([]domain.Investment, error) {
	q := s.DB.WithContext(ctx).Order("created_at DESC")
	if investorID != nil {
		q = q.Where("investor_id = ?", *investorID)
	}
	var out []domain.Investment
	if err := q.Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}
