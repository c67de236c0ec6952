package notifications

import (
	"context"
	"encoding/json"

	"github.com/cdy-agency/api-sky-solutions/internal/domain"
	"github.com/cdy-agency/api-sky-solutions/internal/pkg/apperr"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Channel is the Redis pub/sub channel the front end subscribes to for live
// notification delivery.
const Channel = "notifications"

// Service persists notifications and publishes them to Redis. Rdb is optional;
// without it notifications are persisted only.
type Service struct {
	DB  *gorm.DB
	Rdb *redis.Client
}

// Input is the (user, type, title, message, related-entity) tuple the core
// flows emit.
type Input struct {
	UserID          uuid.UUID
	Type            string
	Title           string
	Message         string
	RelatedEntityID *uuid.UUID
	Payload         map[string]interface{}
}

// Notify persists the notification and best-effort publishes it. It never
// returns an error: a failed delivery must not roll back the mutation that
// triggered it, so failures are logged and swallowed.
func (s *Service) Notify(ctx context.Context, in Input) {
	n := &domain.Notification{
		UserID:          in.UserID,
		Type:            in.Type,
		Title:           in.Title,
		Message:         in.Message,
		RelatedEntityID: in.RelatedEntityID,
	}
	if in.Payload != nil {
		if b, err := json.Marshal(in.Payload); err == nil {
			n.Payload = datatypes.JSON(b)
		}
	}
	if err := s.DB.WithContext(ctx).Create(n).Error; err != nil {
		log.Error().Err(err).Str("type", in.Type).Str("user_id", in.UserID.String()).Msg("Failed to persist notification")
		return
	}
	if s.Rdb != nil {
		b, _ := json.Marshal(n)
		if err := s.Rdb.Publish(ctx, Channel, b).Err(); err != nil {
			log.Warn().Err(err).Str("notification_id", n.ID.String()).Msg("Failed to publish notification")
		}
	}
}

// ListForUser returns a user's notifications, newest first.
func (s *Service) ListForUser(ctx context.Context, userID uuid.UUID, unreadOnly bool) ([]domain.Notification, error) {
	q := s.DB.WithContext(ctx).Where("user_id = ?", userID)
	if unreadOnly {
		q = q.Where("read = ?", false)
	}
	var out []domain.Notification
	if err := q.Order("created_at DESC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// MarkRead flags a notification as read.
func (s *Service) MarkRead(ctx context.Context, id uuid.UUID) (*domain.Notification, error) {
	var n domain.Notification
	if err := s.DB.WithContext(ctx).Where("id = ?", id).First(&n).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperr.NotFoundf("Notification not found")
		}
		return nil, err
	}
	n.Read = true
	if err := s.DB.WithContext(ctx).Save(&n).Error; err != nil {
		return nil, err
	}
	return &n, nil
}
