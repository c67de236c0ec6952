package shares

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http/httptest"
	"testing"

	sharesvc "github.com/cdy-agency/api-sky-solutions/internal/application/shares"
	"github.com/cdy-agency/api-sky-solutions/internal/domain"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeStripe struct {
	lastAmount   int64
	lastCurrency string
	lastMeta     map[string]string
	err          error
}

func (f *fakeStripe) Create(amountCents int64, currency string, metadata map[string]string) (*PaymentIntentResult, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.lastAmount = amountCents
	f.lastCurrency = currency
	f.lastMeta = metadata
	return &PaymentIntentResult{ID: "pi_test_123", ClientSecret: "pi_test_123_secret"}, nil
}

func setupSharesTest(t *testing.T) (*fiber.App, *Handlers, *gorm.DB, *fakeStripe) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&domain.Business{}, &domain.ShareRequest{}, &domain.Investment{}))

	fs := &fakeStripe{}
	h := &Handlers{
		Service:       &sharesvc.Service{DB: db},
		StripeCreator: fs,
	}
	app := fiber.New()
	app.Post("/shares/request", h.RequestShares)
	app.Put("/shares/:id/approve", h.ApproveShareRequest)
	app.Put("/shares/:id/reject", h.RejectShareRequest)
	app.Post("/shares/:id/pay", h.Pay)
	app.Get("/shares/requests", h.ListRequests)
	app.Get("/shares/investments", h.ListInvestments)
	return app, h, db, fs
}

func seedOpenBusiness(t *testing.T, db *gorm.DB, total int64, value string) *domain.Business {
	t.Helper()
	owner := uuid.New()
	biz := &domain.Business{
		OwnerID:             &owner,
		Name:                "Open Co",
		Kind:                domain.BusinessKindPublic,
		Status:              domain.BusinessStatusActive,
		TotalShares:         total,
		RemainingShares:     total,
		ShareValue:          decimal.RequireFromString(value),
		MinSharesPerRequest: 1,
	}
	require.NoError(t, db.Create(biz).Error)
	return biz
}

func doJSON(t *testing.T, app *fiber.App, method, target string, payload interface{}) (int, map[string]interface{}) {
	t.Helper()
	var body io.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, target, body)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var out map[string]interface{}
	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &out))
	}
	return resp.StatusCode, out
}

func TestRequestShares_Created(t *testing.T) {
	app, _, db, _ := setupSharesTest(t)
	biz := seedOpenBusiness(t, db, 100, "10")

	status, out := doJSON(t, app, "POST", "/shares/request", map[string]interface{}{
		"business_id":      biz.ID.String(),
		"investor_id":      uuid.New().String(),
		"requested_shares": 30,
	})
	require.Equal(t, fiber.StatusCreated, status)

	data := out["data"].(map[string]interface{})
	assert.Equal(t, string(domain.ShareRequestStatusPending), data["status"])
	assert.Equal(t, "300", fmt.Sprintf("%v", data["total_amount"]))
}

func TestRequestShares_InvalidUUID(t *testing.T) {
	app, _, _, _ := setupSharesTest(t)
	status, _ := doJSON(t, app, "POST", "/shares/request", map[string]interface{}{
		"business_id":      "not-a-uuid",
		"investor_id":      uuid.New().String(),
		"requested_shares": 5,
	})
	assert.Equal(t, fiber.StatusBadRequest, status)
}

func TestRequestShares_UnknownBusiness(t *testing.T) {
	app, _, _, _ := setupSharesTest(t)
	status, _ := doJSON(t, app, "POST", "/shares/request", map[string]interface{}{
		"business_id":      uuid.New().String(),
		"investor_id":      uuid.New().String(),
		"requested_shares": 5,
	})
	assert.Equal(t, fiber.StatusNotFound, status)
}

func TestApproveFlow(t *testing.T) {
	app, h, db, _ := setupSharesTest(t)
	biz := seedOpenBusiness(t, db, 100, "10")

	req, err := h.Service.RequestShares(context.Background(), biz.ID, uuid.New(), 30)
	require.NoError(t, err)

	status, out := doJSON(t, app, "PUT", "/shares/"+req.ID.String()+"/approve",
		map[string]interface{}{"approved_shares": 20})
	require.Equal(t, fiber.StatusOK, status)

	data := out["data"].(map[string]interface{})
	sr := data["share_request"].(map[string]interface{})
	assert.Equal(t, string(domain.ShareRequestStatusApproved), sr["status"])

	var fresh domain.Business
	require.NoError(t, db.First(&fresh, "id = ?", biz.ID).Error)
	assert.Equal(t, int64(80), fresh.RemainingShares)

	// Approving again is a state conflict, not a second decrement.
	status, _ = doJSON(t, app, "PUT", "/shares/"+req.ID.String()+"/approve", nil)
	assert.Equal(t, fiber.StatusUnprocessableEntity, status)
	require.NoError(t, db.First(&fresh, "id = ?", biz.ID).Error)
	assert.Equal(t, int64(80), fresh.RemainingShares)
}

func TestReject_RequiresReason(t *testing.T) {
	app, h, db, _ := setupSharesTest(t)
	biz := seedOpenBusiness(t, db, 100, "10")
	req, err := h.Service.RequestShares(context.Background(), biz.ID, uuid.New(), 5)
	require.NoError(t, err)

	status, _ := doJSON(t, app, "PUT", "/shares/"+req.ID.String()+"/reject", map[string]interface{}{})
	assert.Equal(t, fiber.StatusBadRequest, status)

	status, out := doJSON(t, app, "PUT", "/shares/"+req.ID.String()+"/reject",
		map[string]interface{}{"reason": "Over-subscribed"})
	require.Equal(t, fiber.StatusOK, status)
	data := out["data"].(map[string]interface{})
	assert.Equal(t, string(domain.ShareRequestStatusRejected), data["status"])
}

func TestPay_ApprovedRequest(t *testing.T) {
	app, h, db, fs := setupSharesTest(t)
	biz := seedOpenBusiness(t, db, 100, "12.50")

	req, err := h.Service.RequestShares(context.Background(), biz.ID, uuid.New(), 4)
	require.NoError(t, err)
	_, _, err = h.Service.ApproveShareRequest(context.Background(), req.ID, nil)
	require.NoError(t, err)

	status, out := doJSON(t, app, "POST", "/shares/"+req.ID.String()+"/pay", nil)
	require.Equal(t, fiber.StatusOK, status)

	data := out["data"].(map[string]interface{})
	assert.Equal(t, "pi_test_123", data["payment_intent_id"])
	assert.Equal(t, "pi_test_123_secret", data["client_secret"])
	// 4 shares at 12.50 = 50.00 = 5000 cents.
	assert.Equal(t, int64(5000), fs.lastAmount)
	assert.Equal(t, "usd", fs.lastCurrency)
	assert.Equal(t, req.ID.String(), fs.lastMeta["share_request_id"])
}

func TestPay_PendingRequestRefused(t *testing.T) {
	app, h, db, _ := setupSharesTest(t)
	biz := seedOpenBusiness(t, db, 100, "10")
	req, err := h.Service.RequestShares(context.Background(), biz.ID, uuid.New(), 4)
	require.NoError(t, err)

	status, _ := doJSON(t, app, "POST", "/shares/"+req.ID.String()+"/pay", nil)
	assert.Equal(t, fiber.StatusUnprocessableEntity, status)
}

func TestListRequests_FilterByBusiness(t *testing.T) {
	app, h, db, _ := setupSharesTest(t)
	bizA := seedOpenBusiness(t, db, 100, "10")
	bizB := seedOpenBusiness(t, db, 100, "10")
	_, err := h.Service.RequestShares(context.Background(), bizA.ID, uuid.New(), 5)
	require.NoError(t, err)
	_, err = h.Service.RequestShares(context.Background(), bizB.ID, uuid.New(), 5)
	require.NoError(t, err)

	status, out := doJSON(t, app, "GET", "/shares/requests?business_id="+bizA.ID.String(), nil)
	require.Equal(t, fiber.StatusOK, status)
	data := out["data"].([]interface{})
	assert.Len(t, data, 1)

	status, _ = doJSON(t, app, "GET", "/shares/requests?business_id=nope", nil)
	assert.Equal(t, fiber.StatusBadRequest, status)
}

func TestListInvestments(t *testing.T) {
	app, h, db, _ := setupSharesTest(t)
	biz := seedOpenBusiness(t, db, 100, "10")
	investor := uuid.New()
	req, err := h.Service.RequestShares(context.Background(), biz.ID, investor, 5)
	require.NoError(t, err)
	_, _, err = h.Service.ApproveShareRequest(context.Background(), req.ID, nil)
	require.NoError(t, err)

	status, out := doJSON(t, app, "GET", "/shares/investments?investor_id="+investor.String(), nil)
	require.Equal(t, fiber.StatusOK, status)
	data := out["data"].([]interface{})
	require.Len(t, data, 1)
	inv := data[0].(map[string]interface{})
	assert.Equal(t, investor.String(), inv["investor_id"])
}
