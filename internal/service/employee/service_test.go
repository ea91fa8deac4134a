package employee

import (
	"context"
	"testing"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/attendance-backend-go/internal/fixtures"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newService(seed ...employee.Employee) (*EmployeeServiceImpl, *fixtures.EmployeeRepository, *fixtures.Transactor) {
	repo := fixtures.NewEmployeeRepository(seed...)
	tx := &fixtures.Transactor{}
	return NewEmployeeService(tx, repo).(*EmployeeServiceImpl), repo, tx
}

func TestCreateEmployee(t *testing.T) {
	ctx := context.Background()

	t.Run("applies defaults", func(t *testing.T) {
		svc, _, _ := newService()

		resp, err := svc.CreateEmployee(ctx, employee.CreateEmployeeRequest{
			FullName:       "  Ravi Kumar ",
			JoiningDate:    "2024-02-01",
			EmploymentType: "daily",
			WorkRate:       decimal.RequireFromString("650.5"),
			Phone:          fixtures.StrPtr("98765-43210"),
		})
		require.NoError(t, err)

		assert.Equal(t, "Ravi Kumar", resp.FullName)
		assert.Equal(t, "650.50", resp.WorkRate)
		assert.Equal(t, 12, resp.AllowedLeaves)
		assert.Equal(t, 0, resp.TakenLeaves)
		assert.Equal(t, "active", resp.Status)
		assert.Equal(t, "calendar", resp.MonthCalculationType)
		assert.Equal(t, "2024-02-01", resp.JoiningDate)
		require.NotNil(t, resp.Phone)
		assert.Equal(t, "9876543210", *resp.Phone)
	})

	t.Run("missing required fields", func(t *testing.T) {
		svc, repo, _ := newService()

		_, err := svc.CreateEmployee(ctx, employee.CreateEmployeeRequest{
			WorkRate:       decimal.NewFromInt(-1),
			EmploymentType: "monthly",
		})

		var verrs validator.ValidationErrors
		require.ErrorAs(t, err, &verrs)
		fields := verrs.ToMap()
		assert.Contains(t, fields, "full_name")
		assert.Contains(t, fields, "joining_date")
		assert.Contains(t, fields, "employment_type")
		assert.Contains(t, fields, "work_rate")
		assert.Zero(t, repo.Len())
	})

	t.Run("duplicate phone", func(t *testing.T) {
		existing := fixtures.Employee("Asha")
		existing.Phone = fixtures.StrPtr("9876543210")
		svc, repo, _ := newService(existing)

		_, err := svc.CreateEmployee(ctx, employee.CreateEmployeeRequest{
			FullName:       "Other",
			JoiningDate:    "2024-02-01",
			EmploymentType: "hourly",
			Phone:          fixtures.StrPtr("9876543210"),
		})
		assert.ErrorIs(t, err, employee.ErrPhoneExists)
		assert.Equal(t, 1, repo.Len())
	})
}

func TestListEmployees(t *testing.T) {
	active := fixtures.Employee("Active")
	inactive := fixtures.Employee("Inactive")
	inactive.Status = employee.StatusInactive
	svc, _, _ := newService(active, inactive)

	all, err := svc.ListEmployees(context.Background(), employee.EmployeeFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 2)

	filtered, err := svc.ListEmployees(context.Background(), employee.EmployeeFilter{Status: fixtures.StrPtr("inactive")})
	require.NoError(t, err)
	require.Len(t, filtered, 1)
	assert.Equal(t, inactive.ID, filtered[0].ID)

	_, err = svc.ListEmployees(context.Background(), employee.EmployeeFilter{Status: fixtures.StrPtr("retired")})
	var verrs validator.ValidationErrors
	assert.ErrorAs(t, err, &verrs)
}

func TestGetEmployee(t *testing.T) {
	emp := fixtures.Employee("Asha")
	svc, _, _ := newService(emp)

	resp, err := svc.GetEmployee(context.Background(), emp.ID)
	require.NoError(t, err)
	assert.Equal(t, "Asha", resp.FullName)

	_, err = svc.GetEmployee(context.Background(), "not-a-uuid")
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)

	_, err = svc.GetEmployee(context.Background(), fixtures.Employee("ghost").ID)
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
}

func TestVerifyPhone(t *testing.T) {
	emp := fixtures.Employee("Asha")
	emp.Phone = fixtures.StrPtr("9876543210")
	svc, _, _ := newService(emp)

	resp, err := svc.VerifyPhone(context.Background(), "98765 43210")
	require.NoError(t, err)
	assert.Equal(t, employee.VerifyPhoneResponse{ID: emp.ID, FullName: "Asha", Status: "active"}, resp)

	_, err = svc.VerifyPhone(context.Background(), "1111111111")
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)

	_, err = svc.VerifyPhone(context.Background(), "abc")
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
}

func TestUpdateEmployee(t *testing.T) {
	emp := fixtures.Employee("Asha")
	svc, repo, _ := newService(emp)

	rate := decimal.RequireFromString("700")
	resp, err := svc.UpdateEmployee(context.Background(), emp.ID, employee.UpdateEmployeeRequest{
		Department:           fixtures.StrPtr("Packing"),
		WorkRate:             &rate,
		MonthCalculationType: fixtures.StrPtr("fixed_26"),
	})
	require.NoError(t, err)
	assert.Equal(t, "700.00", resp.WorkRate)
	assert.Equal(t, "fixed_26", resp.MonthCalculationType)
	assert.Equal(t, "Asha", resp.FullName)

	stored, _ := repo.Get(emp.ID)
	require.NotNil(t, stored.Department)
	assert.Equal(t, "Packing", *stored.Department)

	t.Run("empty body returns current record", func(t *testing.T) {
		resp, err := svc.UpdateEmployee(context.Background(), emp.ID, employee.UpdateEmployeeRequest{})
		require.NoError(t, err)
		assert.Equal(t, "700.00", resp.WorkRate)
	})

	t.Run("missing employee", func(t *testing.T) {
		_, err := svc.UpdateEmployee(context.Background(), fixtures.Employee("ghost").ID, employee.UpdateEmployeeRequest{
			Department: fixtures.StrPtr("Packing"),
		})
		assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
	})

	t.Run("invalid status", func(t *testing.T) {
		_, err := svc.UpdateEmployee(context.Background(), emp.ID, employee.UpdateEmployeeRequest{Status: fixtures.StrPtr("gone")})
		var verrs validator.ValidationErrors
		assert.ErrorAs(t, err, &verrs)
	})
}

func TestDeleteEmployee(t *testing.T) {
	emp := fixtures.Employee("Asha")
	svc, repo, tx := newService(emp)

	require.NoError(t, svc.DeleteEmployee(context.Background(), emp.ID))
	assert.Equal(t, 1, tx.Calls)
	assert.Zero(t, repo.Len())

	assert.ErrorIs(t, svc.DeleteEmployee(context.Background(), emp.ID), employee.ErrEmployeeNotFound)
}
