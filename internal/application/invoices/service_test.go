package invoices

import (
	"context"
	"testing"
	"time"

	"github.com/cdy-agency/api-sky-solutions/internal/domain"
	"github.com/cdy-agency/api-sky-solutions/internal/pkg/apperr"
	"github.com/cdy-agency/api-sky-solutions/internal/pkg/query"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupInvoiceTest(t *testing.T) (*Service, *gorm.DB) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&domain.Invoice{}))
	return &Service{DB: db}, db
}

func strPtr(s string) *string { return &s }

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestCreate_RecurringRequiresFrequency(t *testing.T) {
	svc, _ := setupInvoiceTest(t)

	_, err := svc.Create(context.Background(), CreateInput{
		Vendor: "CloudCo", Amount: decimal.RequireFromString("40"),
		Recurring: true, DueDate: date(2024, time.March, 1),
	})
	assert.True(t, apperr.IsKind(err, apperr.KindValidation))

	_, err = svc.Create(context.Background(), CreateInput{
		Vendor: "CloudCo", Amount: decimal.RequireFromString("40"),
		Recurring: true, Frequency: strPtr("biweekly"), DueDate: date(2024, time.March, 1),
	})
	assert.True(t, apperr.IsKind(err, apperr.KindValidation))
}

func TestMarkPaid_RecurringAdvancesInPlace(t *testing.T) {
	svc, db := setupInvoiceTest(t)
	inv, err := svc.Create(context.Background(), CreateInput{
		Vendor: "CloudCo", Amount: decimal.RequireFromString("40"),
		Recurring: true, Frequency: strPtr(domain.InvoiceFrequencyMonthly),
		DueDate: date(2024, time.March, 1),
	})
	require.NoError(t, err)

	paidAt := date(2024, time.March, 3)
	out, err := svc.MarkPaid(context.Background(), inv.ID, &paidAt)
	require.NoError(t, err)

	// Same row rolls forward: no successor record, pending again at the
	// next period.
	assert.Equal(t, domain.InvoiceStatusPending, out.Status)
	assert.True(t, out.NextDueDate.Equal(date(2024, time.April, 1)))
	require.NotNil(t, out.LastPaidDate)
	assert.True(t, out.LastPaidDate.Equal(paidAt))

	var count int64
	require.NoError(t, db.Model(&domain.Invoice{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestMarkPaid_OneOffStaysPaid(t *testing.T) {
	svc, _ := setupInvoiceTest(t)
	inv, err := svc.Create(context.Background(), CreateInput{
		Vendor: "Print shop", Amount: decimal.RequireFromString("120"),
		DueDate: date(2024, time.March, 1),
	})
	require.NoError(t, err)

	out, err := svc.MarkPaid(context.Background(), inv.ID, nil)
	require.NoError(t, err)
	assert.Equal(t, domain.InvoiceStatusPaid, out.Status)

	_, err = svc.MarkPaid(context.Background(), inv.ID, nil)
	assert.True(t, apperr.IsKind(err, apperr.KindState))
}

func TestMarkPaid_WeeklyAdvance(t *testing.T) {
	svc, _ := setupInvoiceTest(t)
	inv, err := svc.Create(context.Background(), CreateInput{
		Vendor: "Cleaners", Amount: decimal.RequireFromString("80"),
		Recurring: true, Frequency: strPtr(domain.InvoiceFrequencyWeekly),
		DueDate: date(2024, time.March, 4),
	})
	require.NoError(t, err)

	out, err := svc.MarkPaid(context.Background(), inv.ID, nil)
	require.NoError(t, err)
	assert.True(t, out.NextDueDate.Equal(date(2024, time.March, 11)))
}

func TestSweepOverdue(t *testing.T) {
	svc, db := setupInvoiceTest(t)
	due, err := svc.Create(context.Background(), CreateInput{
		Vendor: "CloudCo", Amount: decimal.RequireFromString("40"),
		DueDate: date(2024, time.March, 1),
	})
	require.NoError(t, err)
	notDue, err := svc.Create(context.Background(), CreateInput{
		Vendor: "Later Inc", Amount: decimal.RequireFromString("10"),
		DueDate: date(2024, time.June, 1),
	})
	require.NoError(t, err)

	require.NoError(t, svc.SweepOverdue(context.Background(), date(2024, time.March, 10)))
	// Re-running changes nothing further.
	require.NoError(t, svc.SweepOverdue(context.Background(), date(2024, time.March, 10)))

	var a, b domain.Invoice
	require.NoError(t, db.First(&a, "id = ?", due.ID).Error)
	require.NoError(t, db.First(&b, "id = ?", notDue.ID).Error)
	assert.Equal(t, domain.InvoiceStatusOverdue, a.Status)
	assert.Equal(t, domain.InvoiceStatusPending, b.Status)
}

func TestList_FilterByStatus(t *testing.T) {
	svc, _ := setupInvoiceTest(t)
	_, err := svc.Create(context.Background(), CreateInput{
		Vendor: "A", Amount: decimal.RequireFromString("1"), DueDate: date(2024, time.March, 1),
	})
	require.NoError(t, err)
	inv, err := svc.Create(context.Background(), CreateInput{
		Vendor: "B", Amount: decimal.RequireFromString("2"), DueDate: date(2024, time.March, 2),
	})
	require.NoError(t, err)
	_, err = svc.MarkPaid(context.Background(), inv.ID, nil)
	require.NoError(t, err)

	paid, err := svc.List(context.Background(), query.Options{Status: domain.InvoiceStatusPaid})
	require.NoError(t, err)
	assert.Len(t, paid, 1)
	assert.Equal(t, "B", paid[0].Vendor)
}
