package notifications

import (
	notifsvc "github.com/cdy-agency/api-sky-solutions/internal/application/notifications"
	"github.com/cdy-agency/api-sky-solutions/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type Handlers struct {
	Service *notifsvc.Service
}

// List GET /api/v1/notifications?user_id=...&unread_only=true
func (h *Handlers) List(c *fiber.Ctx) error {
	userID, err := uuid.Parse(c.Query("user_id"))
	if err != nil {
		return response.Error(c, "Invalid UUID format for user_id", 400, nil)
	}
	out, err := h.Service.ListForUser(c.Context(), userID, c.QueryBool("unread_only"))
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, "Notifications fetched", out, fiber.Map{"count": len(out)})
}

// MarkRead PATCH /api/v1/notifications/:id/read
func (h *Handlers) MarkRead(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return response.Error(c, "Invalid UUID format for notification id", 400, nil)
	}
	n, err := h.Service.MarkRead(c.Context(), id)
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, "Notification marked read", n, nil)
}
