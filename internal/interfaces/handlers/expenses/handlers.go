package expenses

import (
	"time"

	expsvc "github.com/cdy-agency/api-sky-solutions/internal/application/expenses"
	"github.com/cdy-agency/api-sky-solutions/internal/pkg/query"
	"github.com/cdy-agency/api-sky-solutions/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Handlers struct {
	Service *expsvc.Service
}

// Create POST /api/v1/expenses
func (h *Handlers) Create(c *fiber.Ctx) error {
	var body struct {
		Name           string          `json:"name"`
		Category       string          `json:"category"`
		Amount         decimal.Decimal `json:"amount"`
		Kind           string          `json:"kind"`
		Priority       string          `json:"priority"`
		DueDate        time.Time       `json:"due_date"`
		Frequency      *string         `json:"frequency"`
		FrequencyValue *int            `json:"frequency_value"`
	}
	if err := c.BodyParser(&body); err != nil {
		return response.Error(c, "Missing required fields", 400, nil)
	}
	e, err := h.Service.Create(c.Context(), expsvc.CreateInput{
		Name:           body.Name,
		Category:       body.Category,
		Amount:         body.Amount,
		Kind:           body.Kind,
		Priority:       body.Priority,
		DueDate:        body.DueDate,
		Frequency:      body.Frequency,
		FrequencyValue: body.FrequencyValue,
	})
	if err != nil {
		return response.FromError(c, err)
	}
	return response.SuccessCreated(c, "Expense created", e, nil)
}

// Update PUT /api/v1/expenses/:id
func (h *Handlers) Update(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return response.Error(c, "Invalid UUID format for expense id", 400, nil)
	}
	var body struct {
		Name     *string          `json:"name"`
		Category *string          `json:"category"`
		Amount   *decimal.Decimal `json:"amount"`
		Priority *string          `json:"priority"`
		DueDate  *time.Time       `json:"due_date"`
	}
	if err := c.BodyParser(&body); err != nil {
		return response.Error(c, "Missing required fields", 400, nil)
	}
	e, err := h.Service.Update(c.Context(), id, expsvc.UpdateInput{
		Name:     body.Name,
		Category: body.Category,
		Amount:   body.Amount,
		Priority: body.Priority,
		DueDate:  body.DueDate,
	})
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, "Expense updated", e, nil)
}

// MarkPaid PATCH /api/v1/expenses/:id/paid
func (h *Handlers) MarkPaid(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return response.Error(c, "Invalid UUID format for expense id", 400, nil)
	}
	var body struct {
		PaidDate      *time.Time `json:"paid_date"`
		PaymentMethod string     `json:"payment_method"`
	}
	_ = c.BodyParser(&body)

	e, err := h.Service.MarkPaid(c.Context(), id, body.PaidDate, body.PaymentMethod)
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, "Expense marked paid", e, nil)
}

// ToggleActive PATCH /api/v1/expenses/:id/active
func (h *Handlers) ToggleActive(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return response.Error(c, "Invalid UUID format for expense id", 400, nil)
	}
	var body struct {
		IsActive *bool `json:"is_active"`
	}
	if err := c.BodyParser(&body); err != nil || body.IsActive == nil {
		return response.Error(c, "is_active is required", 400, nil)
	}
	e, err := h.Service.ToggleActive(c.Context(), id, *body.IsActive)
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, "Expense updated", e, nil)
}

// Get GET /api/v1/expenses/:id
func (h *Handlers) Get(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return response.Error(c, "Invalid UUID format for expense id", 400, nil)
	}
	e, err := h.Service.Get(c.Context(), id)
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, "Expense fetched", e, nil)
}

// List GET /api/v1/expenses
func (h *Handlers) List(c *fiber.Ctx) error {
	opts := query.Options{
		Status:   c.Query("status"),
		Kind:     c.Query("kind"),
		Priority: c.Query("priority"),
		Limit:    c.QueryInt("limit"),
		Offset:   c.QueryInt("offset"),
		OrderBy:  "due_date ASC",
	}
	out, err := h.Service.List(c.Context(), opts)
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, "Expenses fetched", out, fiber.Map{"count": len(out)})
}
