package payroll

import (
	"context"
	"testing"

	"github.com/cdy-agency/api-sky-solutions/internal/domain"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupPayrollTest(t *testing.T) (*Service, *gorm.DB, *domain.Employee) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&domain.Employee{}, &domain.Payroll{}))

	emp := &domain.Employee{
		FullName: "Amina Diallo",
		Email:    "amina@example.com",
		Role:     "accountant",
		Salary:   decimal.RequireFromString("3000"),
		Active:   true,
	}
	require.NoError(t, db.Create(emp).Error)
	return &Service{DB: db}, db, emp
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestCreate_NetIsDerived(t *testing.T) {
	svc, _, emp := setupPayrollTest(t)

	p, err := svc.Create(context.Background(), CreateInput{
		EmployeeID: emp.ID,
		Period:     "2024-03",
		Deductions: dec("200"),
		Taxes:      dec("450"),
	})
	require.NoError(t, err)
	// Salary defaults from the employee record.
	assert.True(t, p.Salary.Equal(dec("3000")))
	assert.True(t, p.NetAmount.Equal(dec("2350")))
	assert.Equal(t, domain.PayrollStatusPending, p.Status)
}

func TestCreate_UnknownEmployee(t *testing.T) {
	svc, _, _ := setupPayrollTest(t)
	_, err := svc.Create(context.Background(), CreateInput{
		EmployeeID: uuid.New(),
		Period:     "2024-03",
	})
	assert.ErrorIs(t, err, ErrEmployeeNotFound)
}

func TestUpdate_RecomputesNet(t *testing.T) {
	svc, _, emp := setupPayrollTest(t)
	p, err := svc.Create(context.Background(), CreateInput{
		EmployeeID: emp.ID,
		Period:     "2024-03",
		Deductions: dec("200"),
		Taxes:      dec("450"),
	})
	require.NoError(t, err)

	newSalary := dec("3200")
	newTaxes := dec("500")
	out, err := svc.Update(context.Background(), p.ID, UpdateInput{
		Salary: &newSalary,
		Taxes:  &newTaxes,
	})
	require.NoError(t, err)
	assert.True(t, out.NetAmount.Equal(dec("2500")), "3200 - 200 - 500")
}

func TestMarkPaid(t *testing.T) {
	svc, _, emp := setupPayrollTest(t)
	p, err := svc.Create(context.Background(), CreateInput{
		EmployeeID: emp.ID,
		Period:     "2024-03",
	})
	require.NoError(t, err)

	out, err := svc.MarkPaid(context.Background(), p.ID, nil)
	require.NoError(t, err)
	assert.Equal(t, domain.PayrollStatusPaid, out.Status)
	assert.NotNil(t, out.PaidDate)

	_, err = svc.MarkPaid(context.Background(), p.ID, nil)
	assert.Error(t, err)
}

func TestList_ByEmployeeAndPeriod(t *testing.T) {
	svc, db, emp := setupPayrollTest(t)
	other := &domain.Employee{FullName: "Ben Okafor", Email: "ben@example.com", Salary: dec("2500"), Active: true}
	require.NoError(t, db.Create(other).Error)

	for _, in := range []CreateInput{
		{EmployeeID: emp.ID, Period: "2024-03"},
		{EmployeeID: emp.ID, Period: "2024-04"},
		{EmployeeID: other.ID, Period: "2024-03"},
	} {
		_, err := svc.Create(context.Background(), in)
		require.NoError(t, err)
	}

	mine, err := svc.List(context.Background(), &emp.ID, "")
	require.NoError(t, err)
	assert.Len(t, mine, 2)

	march, err := svc.List(context.Background(), nil, "2024-03")
	require.NoError(t, err)
	assert.Len(t, march, 2)
}
