package payroll

import (
	"bytes"
	"context"
	"testing"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/payroll"
	"github.com/cmlabs-hris/attendance-backend-go/internal/fixtures"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/validator"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

type periodKey struct {
	employeeID  string
	month, year int
}

// fakePayrollRepo keeps approved and paid periods frozen like the SQL upsert does.
type fakePayrollRepo struct {
	present map[string]int
	records map[periodKey]payroll.PayrollRecord
}

func newFakePayrollRepo() *fakePayrollRepo {
	return &fakePayrollRepo{present: map[string]int{}, records: map[periodKey]payroll.PayrollRecord{}}
}

func (f *fakePayrollRepo) CountPresentDays(context.Context, int, int) (map[string]int, error) {
	return f.present, nil
}

func (f *fakePayrollRepo) UpsertDraft(_ context.Context, record payroll.PayrollRecord) (payroll.PayrollRecord, error) {
	key := periodKey{record.EmployeeID, record.Month, record.Year}
	if existing, ok := f.records[key]; ok {
		if existing.Status != payroll.PayrollStatusDraft {
			return existing, nil
		}
		record.ID = existing.ID
	} else {
		record.ID = uuid.NewString()
	}
	record.Status = payroll.PayrollStatusDraft
	f.records[key] = record
	return record, nil
}

func (f *fakePayrollRepo) find(id string) (periodKey, payroll.PayrollRecord, bool) {
	for k, r := range f.records {
		if r.ID == id {
			return k, r, true
		}
	}
	return periodKey{}, payroll.PayrollRecord{}, false
}

func (f *fakePayrollRepo) GetByID(_ context.Context, id string) (payroll.PayrollRecord, error) {
	_, r, ok := f.find(id)
	if !ok {
		return payroll.PayrollRecord{}, payroll.ErrPayrollRecordNotFound
	}
	return r, nil
}

func (f *fakePayrollRepo) UpdateStatus(_ context.Context, id string, status payroll.PayrollStatus) (payroll.PayrollRecord, error) {
	k, r, ok := f.find(id)
	if !ok {
		return payroll.PayrollRecord{}, payroll.ErrPayrollRecordNotFound
	}
	r.Status = status
	f.records[k] = r
	return r, nil
}

func (f *fakePayrollRepo) List(_ context.Context, filter payroll.PayrollFilter) ([]payroll.PayrollRecord, error) {
	var out []payroll.PayrollRecord
	for k, r := range f.records {
		if filter.Month != nil && k.month != *filter.Month {
			continue
		}
		if filter.Year != nil && k.year != *filter.Year {
			continue
		}
		out = append(out, r)
	}
	return out, nil
}

func newService(t *testing.T, employees ...employee.Employee) (*PayrollServiceImpl, *fakePayrollRepo, *fixtures.Transactor) {
	t.Helper()
	repo := newFakePayrollRepo()
	tx := &fixtures.Transactor{}
	return NewPayrollService(tx, repo, fixtures.NewEmployeeRepository(employees...)).(*PayrollServiceImpl), repo, tx
}

func TestCalculatePayroll(t *testing.T) {
	calendar := fixtures.Employee("Calendar")
	calendar.WorkRate = decimal.NewFromInt(30000)

	fixed := fixtures.Employee("Fixed")
	fixed.WorkRate = decimal.NewFromInt(26000)
	fixed.MonthCalculationType = employee.MonthCalculationFixed26

	idle := fixtures.Employee("Idle")

	svc, repo, tx := newService(t, calendar, fixed, idle)
	repo.present[calendar.ID] = 20
	repo.present[fixed.ID] = 13

	results, err := svc.CalculatePayroll(context.Background(), payroll.PeriodRequest{Month: 3, Year: 2024})
	require.NoError(t, err)
	require.Len(t, results, 3)
	assert.Equal(t, 1, tx.Calls)

	byEmployee := map[string]payroll.PayrollResponse{}
	for _, r := range results {
		byEmployee[r.EmployeeID] = r
	}

	got := byEmployee[calendar.ID]
	assert.Equal(t, "20000.00", got.GrossSalary)
	assert.Equal(t, "20000.00", got.NetPayable)
	assert.Equal(t, 20, got.PresentDays)
	assert.Equal(t, 30, got.TotalDays)
	assert.Equal(t, "draft", got.Status)
	assert.Equal(t, "Calendar", *got.EmployeeName)

	got = byEmployee[fixed.ID]
	assert.Equal(t, "13000.00", got.GrossSalary)
	assert.Equal(t, 26, got.TotalDays)

	got = byEmployee[idle.ID]
	assert.Equal(t, "0.00", got.GrossSalary)
	assert.Equal(t, 0, got.PresentDays)
}

func TestCalculatePayrollKeepsApprovedRecords(t *testing.T) {
	emp := fixtures.Employee("Asha")
	emp.WorkRate = decimal.NewFromInt(30000)
	svc, repo, _ := newService(t, emp)
	repo.present[emp.ID] = 20

	first, err := svc.CalculatePayroll(context.Background(), payroll.PeriodRequest{Month: 3, Year: 2024})
	require.NoError(t, err)
	require.Len(t, first, 1)

	_, err = svc.UpdateStatus(context.Background(), first[0].ID, payroll.UpdateStatusRequest{Status: "approved"})
	require.NoError(t, err)

	repo.present[emp.ID] = 25
	second, err := svc.CalculatePayroll(context.Background(), payroll.PeriodRequest{Month: 3, Year: 2024})
	require.NoError(t, err)
	require.Len(t, second, 1)
	assert.Equal(t, first[0].ID, second[0].ID)
	assert.Equal(t, "approved", second[0].Status)
	assert.Equal(t, "20000.00", second[0].GrossSalary)

	t.Run("drafts are recalculated", func(t *testing.T) {
		april, err := svc.CalculatePayroll(context.Background(), payroll.PeriodRequest{Month: 4, Year: 2024})
		require.NoError(t, err)
		assert.Equal(t, "25000.00", april[0].GrossSalary)

		repo.present[emp.ID] = 10
		april, err = svc.CalculatePayroll(context.Background(), payroll.PeriodRequest{Month: 4, Year: 2024})
		require.NoError(t, err)
		assert.Equal(t, "10000.00", april[0].GrossSalary)
	})
}

func TestCalculatePayrollInvalidPeriod(t *testing.T) {
	svc, _, tx := newService(t)

	for _, p := range []payroll.PeriodRequest{{Month: 0, Year: 2024}, {Month: 13, Year: 2024}, {Month: 1, Year: 1999}} {
		_, err := svc.CalculatePayroll(context.Background(), p)
		var verrs validator.ValidationErrors
		assert.ErrorAs(t, err, &verrs, "%+v", p)
	}
	assert.Zero(t, tx.Calls)
}

func TestParsePeriod(t *testing.T) {
	p, err := payroll.ParsePeriod("3", "2024")
	require.NoError(t, err)
	assert.Equal(t, payroll.PeriodRequest{Month: 3, Year: 2024}, p)

	_, err = payroll.ParsePeriod("march", "2024")
	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Contains(t, verrs.ToMap(), "month")
}

func TestUpdateStatusTransitions(t *testing.T) {
	emp := fixtures.Employee("Asha")
	svc, _, _ := newService(t, emp)
	records, err := svc.CalculatePayroll(context.Background(), payroll.PeriodRequest{Month: 3, Year: 2024})
	require.NoError(t, err)
	id := records[0].ID

	_, err = svc.UpdateStatus(context.Background(), id, payroll.UpdateStatusRequest{Status: "paid"})
	assert.ErrorIs(t, err, payroll.ErrInvalidTransition)

	approved, err := svc.UpdateStatus(context.Background(), id, payroll.UpdateStatusRequest{Status: "approved"})
	require.NoError(t, err)
	assert.Equal(t, "approved", approved.Status)

	_, err = svc.UpdateStatus(context.Background(), id, payroll.UpdateStatusRequest{Status: "approved"})
	assert.ErrorIs(t, err, payroll.ErrInvalidTransition)

	paid, err := svc.UpdateStatus(context.Background(), id, payroll.UpdateStatusRequest{Status: "paid"})
	require.NoError(t, err)
	assert.Equal(t, "paid", paid.Status)

	_, err = svc.UpdateStatus(context.Background(), id, payroll.UpdateStatusRequest{Status: "draft"})
	var verrs validator.ValidationErrors
	assert.ErrorAs(t, err, &verrs)

	_, err = svc.UpdateStatus(context.Background(), uuid.NewString(), payroll.UpdateStatusRequest{Status: "approved"})
	assert.ErrorIs(t, err, payroll.ErrPayrollRecordNotFound)
}

func TestListAndExportPayroll(t *testing.T) {
	emp := fixtures.Employee("Asha")
	svc, repo, _ := newService(t, emp)
	repo.present[emp.ID] = 20

	_, err := svc.CalculatePayroll(context.Background(), payroll.PeriodRequest{Month: 3, Year: 2024})
	require.NoError(t, err)

	month, year := 3, 2024
	list, err := svc.ListPayroll(context.Background(), payroll.PayrollFilter{Month: &month, Year: &year})
	require.NoError(t, err)
	assert.Len(t, list, 1)

	other := 4
	list, err = svc.ListPayroll(context.Background(), payroll.PayrollFilter{Month: &other, Year: &year})
	require.NoError(t, err)
	assert.Empty(t, list)

	name, content, err := svc.ExportPayroll(context.Background(), payroll.PeriodRequest{Month: 3, Year: 2024})
	require.NoError(t, err)
	assert.Equal(t, "payroll-2024-03.xlsx", name)

	f, err := excelize.OpenReader(bytes.NewReader(content))
	require.NoError(t, err)
	defer f.Close()
	rows, err := f.GetRows("Payroll")
	require.NoError(t, err)
	assert.Len(t, rows, 3)
}

func TestGrossSalary(t *testing.T) {
	tests := []struct {
		rate      string
		totalDays int
		present   int
		want      string
	}{
		{"30000", 30, 20, "20000.00"},
		{"26000", 26, 26, "26000.00"},
		{"10000", 30, 1, "333.33"},
		{"10000", 26, 0, "0.00"},
		{"10000", 0, 5, "0.00"},
	}
	for _, tt := range tests {
		got := payroll.GrossSalary(decimal.RequireFromString(tt.rate), tt.totalDays, tt.present)
		assert.Equal(t, tt.want, got.StringFixed(2), "%+v", tt)
	}
}
