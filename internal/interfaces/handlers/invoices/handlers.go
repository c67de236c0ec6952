package invoices

import (
	"time"

	invsvc "github.com/cdy-agency/api-sky-solutions/internal/application/invoices"
	"github.com/cdy-agency/api-sky-solutions/internal/pkg/query"
	"github.com/cdy-agency/api-sky-solutions/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Handlers struct {
	Service *invsvc.Service
}

// Create POST /api/v1/invoices
func (h *Handlers) Create(c *fiber.Ctx) error {
	var body struct {
		Vendor      string          `json:"vendor"`
		Number      string          `json:"number"`
		Description string          `json:"description"`
		Amount      decimal.Decimal `json:"amount"`
		Recurring   bool            `json:"recurring"`
		Frequency   *string         `json:"frequency"`
		DueDate     time.Time       `json:"due_date"`
	}
	if err := c.BodyParser(&body); err != nil {
		return response.Error(c, "Missing required fields", 400, nil)
	}
	inv, err := h.Service.Create(c.Context(), invsvc.CreateInput{
		Vendor:      body.Vendor,
		Number:      body.Number,
		Description: body.Description,
		Amount:      body.Amount,
		Recurring:   body.Recurring,
		Frequency:   body.Frequency,
		DueDate:     body.DueDate,
	})
	if err != nil {
		return response.FromError(c, err)
	}
	return response.SuccessCreated(c, "Invoice created", inv, nil)
}

// Update PUT /api/v1/invoices/:id
func (h *Handlers) Update(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return response.Error(c, "Invalid UUID format for invoice id", 400, nil)
	}
	var body struct {
		Vendor      *string          `json:"vendor"`
		Number      *string          `json:"number"`
		Description *string          `json:"description"`
		Amount      *decimal.Decimal `json:"amount"`
		DueDate     *time.Time       `json:"due_date"`
	}
	if err := c.BodyParser(&body); err != nil {
		return response.Error(c, "Missing required fields", 400, nil)
	}
	inv, err := h.Service.Update(c.Context(), id, invsvc.UpdateInput{
		Vendor:      body.Vendor,
		Number:      body.Number,
		Description: body.Description,
		Amount:      body.Amount,
		DueDate:     body.DueDate,
	})
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, "Invoice updated", inv, nil)
}

// MarkPaid PATCH /api/v1/invoices/:id/paid
func (h *Handlers) MarkPaid(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return response.Error(c, "Invalid UUID format for invoice id", 400, nil)
	}
	var body struct {
		PaidDate *time.Time `json:"paid_date"`
	}
	_ = c.BodyParser(&body)

	inv, err := h.Service.MarkPaid(c.Context(), id, body.PaidDate)
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, "Invoice marked paid", inv, nil)
}

// List GET /api/v1/invoices
func (h *Handlers) List(c *fiber.Ctx) error {
	opts := query.Options{
		Status:  c.Query("status"),
		Limit:   c.QueryInt("limit"),
		Offset:  c.QueryInt("offset"),
		OrderBy: "next_due_date ASC",
	}
	out, err := h.Service.List(c.Context(), opts)
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, "Invoices fetched", out, fiber.Map{"count": len(out)})
}
