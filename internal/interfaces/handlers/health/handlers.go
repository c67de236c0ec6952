package health

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
)

// Pinger abstracts the DB connection check.
type Pinger interface {
	Ping() error
}

type Handlers struct {
	DB  Pinger
	Rdb *redis.Client
}

// JSON GET /health/json — reports connectivity of the store and Redis.
func (h *Handlers) JSON(c *fiber.Ctx) error {
	dbStatus := "not configured"
	if h.DB != nil {
		if err := h.DB.Ping(); err != nil {
			dbStatus = "down: " + err.Error()
		} else {
			dbStatus = "ok"
		}
	}
	redisStatus := "not configured"
	if h.Rdb != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := h.Rdb.Ping(ctx).Err(); err != nil {
			redisStatus = "down: " + err.Error()
		} else {
			redisStatus = "ok"
		}
	}
	return c.JSON(fiber.Map{
		"status":   "ok",
		"database": dbStatus,
		"redis":    redisStatus,
		"time":     time.Now().UTC(),
	})
}
