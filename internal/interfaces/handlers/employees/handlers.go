package employees

import (
	"time"

	empsvc "github.com/cdy-agency/api-sky-solutions/internal/application/employees"
	"github.com/cdy-agency/api-sky-solutions/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Handlers struct {
	Service *empsvc.Service
}

// Create POST /api/v1/employees
func (h *Handlers) Create(c *fiber.Ctx) error {
	var body struct {
		FullName string          `json:"full_name"`
		Email    string          `json:"email"`
		Role     string          `json:"role"`
		Salary   decimal.Decimal `json:"salary"`
		HiredAt  *time.Time      `json:"hired_at"`
	}
	if err := c.BodyParser(&body); err != nil {
		return response.Error(c, "Missing required fields", 400, nil)
	}
	e, err := h.Service.Create(c.Context(), empsvc.CreateInput{
		FullName: body.FullName,
		Email:    body.Email,
		Role:     body.Role,
		Salary:   body.Salary,
		HiredAt:  body.HiredAt,
	})
	if err != nil {
		return response.FromError(c, err)
	}
	return response.SuccessCreated(c, "Employee created", e, nil)
}

// Update PUT /api/v1/employees/:id
func (h *Handlers) Update(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return response.Error(c, "Invalid UUID format for employee id", 400, nil)
	}
	var body struct {
		FullName *string          `json:"full_name"`
		Email    *string          `json:"email"`
		Role     *string          `json:"role"`
		Salary   *decimal.Decimal `json:"salary"`
		Active   *bool            `json:"active"`
	}
	if err := c.BodyParser(&body); err != nil {
		return response.Error(c, "Missing required fields", 400, nil)
	}
	e, err := h.Service.Update(c.Context(), id, empsvc.UpdateInput{
		FullName: body.FullName,
		Email:    body.Email,
		Role:     body.Role,
		Salary:   body.Salary,
		Active:   body.Active,
	})
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, "Employee updated", e, nil)
}

// Get GET /api/v1/employees/:id
func (h *Handlers) Get(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return response.Error(c, "Invalid UUID format for employee id", 400, nil)
	}
	e, err := h.Service.Get(c.Context(), id)
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, "Employee fetched", e, nil)
}

// List GET /api/v1/employees
func (h *Handlers) List(c *fiber.Ctx) error {
	out, err := h.Service.List(c.Context(), c.QueryBool("active_only"))
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, "Employees fetched", out, fiber.Map{"count": len(out)})
}
