package payroll

import (
	"time"

	paysvc "github.com/cdy-agency/api-sky-solutions/internal/application/payroll"
	"github.com/cdy-agency/api-sky-solutions/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Handlers struct {
	Service *paysvc.Service
}

// Create POST /api/v1/payrolls
func (h *Handlers) Create(c *fiber.Ctx) error {
	var body struct {
		EmployeeID string           `json:"employee_id"`
		Period     string           `json:"period"`
		Salary     *decimal.Decimal `json:"salary"`
		Deductions decimal.Decimal  `json:"deductions"`
		Taxes      decimal.Decimal  `json:"taxes"`
	}
	if err := c.BodyParser(&body); err != nil {
		return response.Error(c, "Missing required fields", 400, nil)
	}
	employeeID, err := uuid.Parse(body.EmployeeID)
	if err != nil {
		return response.Error(c, "Invalid UUID format for employee_id", 400, nil)
	}
	p, err := h.Service.Create(c.Context(), paysvc.CreateInput{
		EmployeeID: employeeID,
		Period:     body.Period,
		Salary:     body.Salary,
		Deductions: body.Deductions,
		Taxes:      body.Taxes,
	})
	if err != nil {
		return response.FromError(c, err)
	}
	return response.SuccessCreated(c, "Payroll record created", p, nil)
}

// Update PUT /api/v1/payrolls/:id
func (h *Handlers) Update(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return response.Error(c, "Invalid UUID format for payroll id", 400, nil)
	}
	var body struct {
		Salary     *decimal.Decimal `json:"salary"`
		Deductions *decimal.Decimal `json:"deductions"`
		Taxes      *decimal.Decimal `json:"taxes"`
	}
	if err := c.BodyParser(&body); err != nil {
		return response.Error(c, "Missing required fields", 400, nil)
	}
	p, err := h.Service.Update(c.Context(), id, paysvc.UpdateInput{
		Salary:     body.Salary,
		Deductions: body.Deductions,
		Taxes:      body.Taxes,
	})
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, "Payroll record updated", p, nil)
}

// MarkPaid PATCH /api/v1/payrolls/:id/paid
func (h *Handlers) MarkPaid(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return response.Error(c, "Invalid UUID format for payroll id", 400, nil)
	}
	var body struct {
		PaidDate *time.Time `json:"paid_date"`
	}
	_ = c.BodyParser(&body)

	p, err := h.Service.MarkPaid(c.Context(), id, body.PaidDate)
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, "Payroll record marked paid", p, nil)
}

// List GET /api/v1/payrolls
func (h *Handlers) List(c *fiber.Ctx) error {
	var employeeID *uuid.UUID
	if v := c.Query("employee_id"); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			return response.Error(c, "Invalid UUID format for employee_id", 400, nil)
		}
		employeeID = &id
	}
	out, err := h.Service.List(c.Context(), employeeID, c.Query("period"))
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, "Payroll records fetched", out, fiber.Map{"count": len(out)})
}
