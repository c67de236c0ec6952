package businesses

import (
	bizsvc "github.com/cdy-agency/api-sky-solutions/internal/application/businesses"
	"github.com/cdy-agency/api-sky-solutions/internal/pkg/query"
	"github.com/cdy-agency/api-sky-solutions/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Handlers struct {
	Service *bizsvc.Service
}

// Submit POST /api/v1/businesses/submissions
func (h *Handlers) Submit(c *fiber.Ctx) error {
	var body struct {
		OwnerID     string `json:"owner_id"`
		Name        string `json:"name"`
		Description string `json:"description"`
		Category    string `json:"category"`
	}
	if err := c.BodyParser(&body); err != nil {
		return response.Error(c, "Missing required fields", 400, nil)
	}
	ownerID, err := uuid.Parse(body.OwnerID)
	if err != nil {
		return response.Error(c, "Invalid UUID format for owner_id", 400, nil)
	}
	biz, err := h.Service.Submit(c.Context(), bizsvc.SubmitInput{
		OwnerID:     ownerID,
		Name:        body.Name,
		Description: body.Description,
		Category:    body.Category,
	})
	if err != nil {
		return response.FromError(c, err)
	}
	return response.SuccessCreated(c, "Submission created", biz, nil)
}

// StartReview PUT /api/v1/businesses/submissions/:id/review
func (h *Handlers) StartReview(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return response.Error(c, "Invalid UUID format for submission id", 400, nil)
	}
	biz, err := h.Service.StartReview(c.Context(), id)
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, "Submission moved to review", biz, nil)
}

// ApproveSubmission PUT /api/v1/businesses/submissions/:id/approve
func (h *Handlers) ApproveSubmission(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return response.Error(c, "Invalid UUID format for submission id", 400, nil)
	}
	var body struct {
		TotalShares         int64           `json:"total_shares"`
		ShareValue          decimal.Decimal `json:"share_value"`
		MinSharesPerRequest int64           `json:"min_shares_per_request"`
	}
	if err := c.BodyParser(&body); err != nil {
		return response.Error(c, "Missing required fields", 400, nil)
	}
	pub, err := h.Service.ApproveSubmission(c.Context(), id, bizsvc.PublishInput{
		TotalShares:         body.TotalShares,
		ShareValue:          body.ShareValue,
		MinSharesPerRequest: body.MinSharesPerRequest,
	})
	if err != nil {
		return response.FromError(c, err)
	}
	return response.SuccessCreated(c, "Submission approved and published", pub, nil)
}

// RejectSubmission PUT /api/v1/businesses/submissions/:id/reject
func (h *Handlers) RejectSubmission(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return response.Error(c, "Invalid UUID format for submission id", 400, nil)
	}
	var body struct {
		Reason string `json:"reason"`
	}
	if err := c.BodyParser(&body); err != nil || body.Reason == "" {
		return response.Error(c, "A rejection reason is required", 400, nil)
	}
	biz, err := h.Service.RejectSubmission(c.Context(), id, body.Reason)
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, "Submission rejected", biz, nil)
}

// Create POST /api/v1/businesses
func (h *Handlers) Create(c *fiber.Ctx) error {
	var body struct {
		OwnerID             string          `json:"owner_id"`
		Name                string          `json:"name"`
		Description         string          `json:"description"`
		Category            string          `json:"category"`
		TotalShares         int64           `json:"total_shares"`
		ShareValue          decimal.Decimal `json:"share_value"`
		MinSharesPerRequest int64           `json:"min_shares_per_request"`
	}
	if err := c.BodyParser(&body); err != nil {
		return response.Error(c, "Missing required fields", 400, nil)
	}
	var ownerID *uuid.UUID
	if body.OwnerID != "" {
		id, err := uuid.Parse(body.OwnerID)
		if err != nil {
			return response.Error(c, "Invalid UUID format for owner_id", 400, nil)
		}
		ownerID = &id
	}
	biz, err := h.Service.Create(c.Context(), bizsvc.CreateInput{
		OwnerID:             ownerID,
		Name:                body.Name,
		Description:         body.Description,
		Category:            body.Category,
		TotalShares:         body.TotalShares,
		ShareValue:          body.ShareValue,
		MinSharesPerRequest: body.MinSharesPerRequest,
	})
	if err != nil {
		return response.FromError(c, err)
	}
	return response.SuccessCreated(c, "Business created", biz, nil)
}

// Update PUT /api/v1/businesses/:id
func (h *Handlers) Update(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return response.Error(c, "Invalid UUID format for business id", 400, nil)
	}
	var body struct {
		Name                *string          `json:"name"`
		Description         *string          `json:"description"`
		Category            *string          `json:"category"`
		Status              *string          `json:"status"`
		TotalShares         *int64           `json:"total_shares"`
		ShareValue          *decimal.Decimal `json:"share_value"`
		MinSharesPerRequest *int64           `json:"min_shares_per_request"`
	}
	if err := c.BodyParser(&body); err != nil {
		return response.Error(c, "Missing required fields", 400, nil)
	}
	biz, err := h.Service.Update(c.Context(), id, bizsvc.UpdateInput{
		Name:                body.Name,
		Description:         body.Description,
		Category:            body.Category,
		Status:              body.Status,
		TotalShares:         body.TotalShares,
		ShareValue:          body.ShareValue,
		MinSharesPerRequest: body.MinSharesPerRequest,
	})
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, "Business updated", biz, nil)
}

// Get GET /api/v1/businesses/:id
func (h *Handlers) Get(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return response.Error(c, "Invalid UUID format for business id", 400, nil)
	}
	biz, err := h.Service.Get(c.Context(), id)
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, "Business fetched", biz, nil)
}

// List GET /api/v1/businesses
func (h *Handlers) List(c *fiber.Ctx) error {
	opts := query.Options{
		Status: c.Query("status"),
		Kind:   c.Query("kind"),
		Limit:  c.QueryInt("limit"),
		Offset: c.QueryInt("offset"),
	}
	out, err := h.Service.List(c.Context(), opts)
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, "Businesses fetched", out, fiber.Map{"count": len(out)})
}
