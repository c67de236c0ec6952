package notifications

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/cdy-agency/api-sky-solutions/internal/domain"
	"github.com/cdy-agency/api-sky-solutions/internal/pkg/apperr"

	"github.com/alicebob/miniredis/v2"
	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupNotifyTest(t *testing.T) (*Service, *gorm.DB, *redis.Client) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&domain.Notification{}))

	mr, err := miniredis.Run()
	require.NoError(t, err)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() {
		rdb.Close()
		mr.Close()
	})
	return &Service{DB: db, Rdb: rdb}, db, rdb
}

func TestNotify_PersistsAndPublishes(t *testing.T) {
	svc, db, rdb := setupNotifyTest(t)
	ctx := context.Background()

	sub := rdb.Subscribe(ctx, Channel)
	t.Cleanup(func() { sub.Close() })
	_, err := sub.Receive(ctx) // wait for subscription confirmation
	require.NoError(t, err)

	userID := uuid.New()
	related := uuid.New()
	svc.Notify(ctx, Input{
		UserID:          userID,
		Type:            domain.NotificationShareRequested,
		Title:           "New share request",
		Message:         "An investor requested 30 shares",
		RelatedEntityID: &related,
		Payload:         map[string]interface{}{"shares": 30},
	})

	var n domain.Notification
	require.NoError(t, db.First(&n, "user_id = ?", userID).Error)
	assert.Equal(t, "New share request", n.Title)
	assert.False(t, n.Read)
	require.NotNil(t, n.RelatedEntityID)
	assert.Equal(t, related, *n.RelatedEntityID)

	select {
	case msg := <-sub.Channel():
		var got domain.Notification
		require.NoError(t, json.Unmarshal([]byte(msg.Payload), &got))
		assert.Equal(t, n.ID, got.ID)
		assert.Equal(t, userID, got.UserID)
	case <-time.After(2 * time.Second):
		t.Fatal("expected a published notification")
	}
}

func TestNotify_NoRedisStillPersists(t *testing.T) {
	svc, db, _ := setupNotifyTest(t)
	svc.Rdb = nil

	userID := uuid.New()
	svc.Notify(context.Background(), Input{
		UserID: userID, Type: domain.NotificationShareApproved,
		Title: "Request approved", Message: "Your share request was approved",
	})

	var count int64
	require.NoError(t, db.Model(&domain.Notification{}).Where("user_id = ?", userID).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestListForUser_UnreadFilter(t *testing.T) {
	svc, _, _ := setupNotifyTest(t)
	ctx := context.Background()
	userID := uuid.New()

	svc.Notify(ctx, Input{UserID: userID, Type: domain.NotificationShareRequested, Title: "A", Message: "a"})
	svc.Notify(ctx, Input{UserID: userID, Type: domain.NotificationShareRequested, Title: "B", Message: "b"})
	svc.Notify(ctx, Input{UserID: uuid.New(), Type: domain.NotificationShareRequested, Title: "C", Message: "c"})

	all, err := svc.ListForUser(ctx, userID, false)
	require.NoError(t, err)
	require.Len(t, all, 2)

	_, err = svc.MarkRead(ctx, all[0].ID)
	require.NoError(t, err)

	unread, err := svc.ListForUser(ctx, userID, true)
	require.NoError(t, err)
	assert.Len(t, unread, 1)
}

func TestMarkRead_NotFound(t *testing.T) {
	svc, _, _ := setupNotifyTest(t)
	_, err := svc.MarkRead(context.Background(), uuid.New())
	assert.True(t, apperr.IsKind(err, apperr.KindNotFound))
}
