package shares

import (
	"math"

	sharesvc "github.com/cdy-agency/api-sky-solutions/internal/application/shares"
	"github.com/cdy-agency/api-sky-solutions/internal/domain"
	"github.com/cdy-agency/api-sky-solutions/internal/pkg/query"
	"github.com/cdy-agency/api-sky-solutions/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/paymentintent"
)

type Handlers struct {
	Service       *sharesvc.Service
	StripeCreator PaymentIntentCreator
}

// PaymentIntentCreator abstracts Stripe PaymentIntent creation for testability.
type PaymentIntentCreator interface {
	Create(amountCents int64, currency string, metadata map[string]string) (*PaymentIntentResult, error)
}

type PaymentIntentResult struct {
	ID           string `json:"id"`
	ClientSecret string `json:"client_secret"`
}

// RealStripeCreator uses the Stripe Go SDK to create PaymentIntents.
type RealStripeCreator struct {
	SecretKey string
}

func (r *RealStripeCreator) Create(amountCents int64, currency string, metadata map[string]string) (*PaymentIntentResult, error) {
	if r.SecretKey == "" {
		return nil, fiber.NewError(501, "Stripe integration pending")
	}
	stripe.Key = r.SecretKey
	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(amountCents),
		Currency: stripe.String(currency),
		Metadata: metadata,
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled: stripe.Bool(true),
		},
	}
	pi, err := paymentintent.New(params)
	if err != nil {
		return nil, err
	}
	return &PaymentIntentResult{ID: pi.ID, ClientSecret: pi.ClientSecret}, nil
}

// RequestShares POST /api/v1/shares/request
func (h *Handlers) RequestShares(c *fiber.Ctx) error {
	var body struct {
		BusinessID      string `json:"business_id"`
		InvestorID      string `json:"investor_id"`
		RequestedShares int64  `json:"requested_shares"`
	}
	if err := c.BodyParser(&body); err != nil {
		return response.Error(c, "Missing required fields", 400, nil)
	}
	if body.BusinessID == "" || body.InvestorID == "" {
		return response.Error(c, "Missing required fields", 400, nil)
	}
	businessID, err := uuid.Parse(body.BusinessID)
	if err != nil {
		return response.Error(c, "Invalid UUID format for business_id", 400, nil)
	}
	investorID, err := uuid.Parse(body.InvestorID)
	if err != nil {
		return response.Error(c, "Invalid UUID format for investor_id", 400, nil)
	}

	req, err := h.Service.RequestShares(c.Context(), businessID, investorID, body.RequestedShares)
	if err != nil {
		return response.FromError(c, err)
	}
	return response.SuccessCreated(c, "Share request created", req, nil)
}

// ApproveShareRequest PUT /api/v1/shares/:id/approve
func (h *Handlers) ApproveShareRequest(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return response.Error(c, "Invalid UUID format for share request id", 400, nil)
	}
	var body struct {
		ApprovedShares *int64 `json:"approved_shares"`
	}
	// Body is optional: omitting approved_shares approves the requested count.
	_ = c.BodyParser(&body)

	req, inv, err := h.Service.ApproveShareRequest(c.Context(), id, body.ApprovedShares)
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, "Share request approved", fiber.Map{
		"share_request": req,
		"investment":    inv,
	}, nil)
}

// RejectShareRequest PUT /api/v1/shares/:id/reject
func (h *Handlers) RejectShareRequest(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return response.Error(c, "Invalid UUID format for share request id", 400, nil)
	}
	var body struct {
		Reason string `json:"reason"`
	}
	if err := c.BodyParser(&body); err != nil || body.Reason == "" {
		return response.Error(c, "A rejection reason is required", 400, nil)
	}

	req, err := h.Service.RejectShareRequest(c.Context(), id, body.Reason)
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, "Share request rejected", req, nil)
}

// Pay POST /api/v1/shares/:id/pay — creates a Stripe PaymentIntent for an
// approved request's total amount. Settlement is handled by the front end.
func (h *Handlers) Pay(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return response.Error(c, "Invalid UUID format for share request id", 400, nil)
	}
	target, err := h.Service.GetRequest(c.Context(), id)
	if err != nil {
		return response.FromError(c, err)
	}
	if target.Status != domain.ShareRequestStatusApproved {
		return response.Error(c, "Only an approved share request can be paid", 422, nil)
	}
	if h.StripeCreator == nil {
		return response.Error(c, "Stripe not configured", 500, nil)
	}

	amount, _ := target.TotalAmount.Float64()
	amountCents := int64(math.Round(amount * 100))
	pi, err := h.StripeCreator.Create(amountCents, "usd", map[string]string{
		"share_request_id": target.ID.String(),
		"investor_id":      target.InvestorID.String(),
	})
	if err != nil {
		code := 500
		if e, ok := err.(*fiber.Error); ok {
			code = e.Code
		}
		return response.Error(c, err.Error(), code, nil)
	}
	return response.Success(c, "Payment intent created", fiber.Map{
		"payment_intent_id": pi.ID,
		"client_secret":     pi.ClientSecret,
	}, nil)
}

// ListRequests GET /api/v1/shares/requests
func (h *Handlers) ListRequests(c *fiber.Ctx) error {
	var businessID, investorID *uuid.UUID
	if v := c.Query("business_id"); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			return response.Error(c, "Invalid UUID format for business_id", 400, nil)
		}
		businessID = &id
	}
	if v := c.Query("investor_id"); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			return response.Error(c, "Invalid UUID format for investor_id", 400, nil)
		}
		investorID = &id
	}
	opts := query.Options{
		Status: c.Query("status"),
		Limit:  c.QueryInt("limit"),
		Offset: c.QueryInt("offset"),
	}
	reqs, err := h.Service.ListRequests(c.Context(), businessID, investorID, opts)
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, "Share requests fetched", reqs, fiber.Map{"count": len(reqs)})
}

// ListInvestments GET /api/v1/shares/investments
func (h *Handlers) ListInvestments(c *fiber.Ctx) error {
	var investorID *uuid.UUID
	if v := c.Query("investor_id"); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			return response.Error(c, "Invalid UUID format for investor_id", 400, nil)
		}
		investorID = &id
	}
	invs, err := h.Service.ListInvestments(c.Context(), investorID)
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, "Investments fetched", invs, fiber.Map{"count": len(invs)})
}
