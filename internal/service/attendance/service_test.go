package attendance

import (
	"context"
	"sort"
	"testing"
	"time"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/auth"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/attendance-backend-go/internal/fixtures"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/validator"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeAttendanceRepo mirrors the UNIQUE(employee_id, date) guard of the attendances table.
type fakeAttendanceRepo struct {
	records   map[string]attendance.Attendance
	employees *fixtures.EmployeeRepository
}

func (f *fakeAttendanceRepo) Create(_ context.Context, record attendance.Attendance) (attendance.Attendance, error) {
	for _, r := range f.records {
		if r.EmployeeID == record.EmployeeID && r.Date.Equal(record.Date) {
			return attendance.Attendance{}, attendance.ErrAlreadyClockedIn
		}
	}
	record.ID = uuid.NewString()
	record.CreatedAt = record.SignIn
	f.records[record.ID] = record
	return record, nil
}

func (f *fakeAttendanceRepo) GetOpenForUpdate(_ context.Context, employeeID string, date time.Time) (attendance.Attendance, error) {
	for _, r := range f.records {
		if r.EmployeeID == employeeID && r.Date.Equal(date) && r.IsOpen() {
			return r, nil
		}
	}
	return attendance.Attendance{}, attendance.ErrNoActiveSession
}

func (f *fakeAttendanceRepo) Close(_ context.Context, id string, signOut time.Time, totalHours decimal.Decimal) (attendance.Attendance, error) {
	r, ok := f.records[id]
	if !ok || !r.IsOpen() {
		return attendance.Attendance{}, attendance.ErrNoActiveSession
	}
	r.SignOut = &signOut
	r.TotalHours = &totalHours
	f.records[id] = r
	return r, nil
}

func (f *fakeAttendanceRepo) UpdateStatus(_ context.Context, id string, status attendance.Status) (attendance.Attendance, error) {
	r, ok := f.records[id]
	if !ok {
		return attendance.Attendance{}, attendance.ErrAttendanceNotFound
	}
	r.Status = status
	f.records[id] = r
	return r, nil
}

func (f *fakeAttendanceRepo) List(_ context.Context, filter attendance.AttendanceFilter) ([]attendance.AttendanceWithEmployee, error) {
	var out []attendance.AttendanceWithEmployee
	for _, r := range f.records {
		if filter.EmployeeID != nil && r.EmployeeID != *filter.EmployeeID {
			continue
		}
		if filter.Status != nil && string(r.Status) != *filter.Status {
			continue
		}
		emp, _ := f.employees.Get(r.EmployeeID)
		out = append(out, attendance.AttendanceWithEmployee{Attendance: r, EmployeeName: emp.FullName, Department: emp.Department})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].SignIn.After(out[j].SignIn) })
	return out, nil
}

type fixture struct {
	svc     *AttendanceServiceImpl
	repo    *fakeAttendanceRepo
	tx      *fixtures.Transactor
	emp     employee.Employee
	current time.Time
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	loc, err := time.LoadLocation("Asia/Kolkata")
	require.NoError(t, err)

	emp := fixtures.Employee("Asha")
	emp.Department = fixtures.StrPtr("Packing")
	employees := fixtures.NewEmployeeRepository(emp)

	f := &fixture{
		repo:    &fakeAttendanceRepo{records: map[string]attendance.Attendance{}, employees: employees},
		tx:      &fixtures.Transactor{},
		emp:     emp,
		current: time.Date(2024, 3, 1, 9, 0, 0, 0, loc),
	}
	f.svc = NewAttendanceService(f.tx, f.repo, employees, loc).(*AttendanceServiceImpl)
	f.svc.now = func() time.Time { return f.current }
	return f
}

func (f *fixture) employeeCtx() context.Context {
	return auth.WithPrincipal(context.Background(), auth.Principal{Role: auth.RoleEmployee, EmployeeID: f.emp.ID})
}

func ownerCtx() context.Context {
	return auth.WithPrincipal(context.Background(), auth.Principal{Role: auth.RoleOwner, AdminID: "admin-1"})
}

func TestClockInClockOut(t *testing.T) {
	f := newFixture(t)
	ctx := f.employeeCtx()

	in, err := f.svc.ClockIn(ctx, attendance.ClockRequest{})
	require.NoError(t, err)
	assert.Equal(t, "present", in.Status)
	assert.Equal(t, "2024-03-01", in.Date)
	assert.Nil(t, in.SignOut)
	assert.Nil(t, in.TotalHours)

	f.current = f.current.Add(8*time.Hour + 30*time.Minute)
	out, err := f.svc.ClockOut(ctx, attendance.ClockRequest{})
	require.NoError(t, err)
	require.NotNil(t, out.TotalHours)
	assert.Equal(t, "8.50", *out.TotalHours)
	assert.NotNil(t, out.SignOut)
	assert.Equal(t, 1, f.tx.Calls)

	t.Run("second clock-out finds no session", func(t *testing.T) {
		_, err := f.svc.ClockOut(ctx, attendance.ClockRequest{})
		assert.ErrorIs(t, err, attendance.ErrNoActiveSession)
	})

	t.Run("second clock-in on the same day is rejected", func(t *testing.T) {
		_, err := f.svc.ClockIn(ctx, attendance.ClockRequest{})
		assert.ErrorIs(t, err, attendance.ErrAlreadyClockedIn)
	})
}

func TestClockInUsesConfiguredTimezone(t *testing.T) {
	f := newFixture(t)
	// 20:00 UTC is already the next day in Asia/Kolkata.
	f.current = time.Date(2024, 3, 1, 20, 0, 0, 0, time.UTC)

	resp, err := f.svc.ClockIn(f.employeeCtx(), attendance.ClockRequest{})
	require.NoError(t, err)
	assert.Equal(t, "2024-03-02", resp.Date)
}

func TestClockOutWithoutClockIn(t *testing.T) {
	f := newFixture(t)
	_, err := f.svc.ClockOut(f.employeeCtx(), attendance.ClockRequest{})
	assert.ErrorIs(t, err, attendance.ErrNoActiveSession)
}

func TestClockInCallerResolution(t *testing.T) {
	t.Run("owner must name the employee", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.svc.ClockIn(ownerCtx(), attendance.ClockRequest{})
		assert.ErrorIs(t, err, attendance.ErrEmployeeIDRequired)

		resp, err := f.svc.ClockIn(ownerCtx(), attendance.ClockRequest{EmployeeID: f.emp.ID})
		require.NoError(t, err)
		assert.Equal(t, f.emp.ID, resp.EmployeeID)
	})

	t.Run("employee cannot clock in someone else", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.svc.ClockIn(f.employeeCtx(), attendance.ClockRequest{EmployeeID: uuid.NewString()})
		assert.ErrorIs(t, err, auth.ErrAccessDenied)
	})

	t.Run("unknown employee", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.svc.ClockIn(ownerCtx(), attendance.ClockRequest{EmployeeID: uuid.NewString()})
		assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
	})

	t.Run("malformed employee id", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.svc.ClockIn(ownerCtx(), attendance.ClockRequest{EmployeeID: "42"})
		var verrs validator.ValidationErrors
		assert.ErrorAs(t, err, &verrs)
	})

	t.Run("no principal", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.svc.ClockIn(context.Background(), attendance.ClockRequest{})
		assert.ErrorIs(t, err, auth.ErrNoToken)
	})
}

func TestListAndUpdateStatus(t *testing.T) {
	f := newFixture(t)
	in, err := f.svc.ClockIn(f.employeeCtx(), attendance.ClockRequest{})
	require.NoError(t, err)

	updated, err := f.svc.UpdateStatus(ownerCtx(), in.ID, attendance.UpdateStatusRequest{Status: "late"})
	require.NoError(t, err)
	assert.Equal(t, "late", updated.Status)

	_, err = f.svc.UpdateStatus(ownerCtx(), in.ID, attendance.UpdateStatusRequest{Status: "sleeping"})
	var verrs validator.ValidationErrors
	assert.ErrorAs(t, err, &verrs)

	_, err = f.svc.UpdateStatus(ownerCtx(), uuid.NewString(), attendance.UpdateStatusRequest{Status: "late"})
	assert.ErrorIs(t, err, attendance.ErrAttendanceNotFound)

	late := "late"
	list, err := f.svc.ListAttendance(ownerCtx(), attendance.AttendanceFilter{Status: &late})
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.NotNil(t, list[0].EmployeeName)
	assert.Equal(t, "Asha", *list[0].EmployeeName)
	assert.Equal(t, "Packing", *list[0].Department)

	mine, err := f.svc.ListByEmployee(f.employeeCtx(), f.emp.ID)
	require.NoError(t, err)
	assert.Len(t, mine, 1)

	t.Run("end before start", func(t *testing.T) {
		start, end := "2024-03-10", "2024-03-01"
		_, err := f.svc.ListAttendance(ownerCtx(), attendance.AttendanceFilter{StartDate: &start, EndDate: &end})
		var verrs validator.ValidationErrors
		require.ErrorAs(t, err, &verrs)
		assert.Contains(t, verrs.ToMap(), "end_date")
	})
}

func TestWorkedHours(t *testing.T) {
	base := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	tests := []struct {
		name string
		out  time.Time
		want string
	}{
		{"eight and a half hours", base.Add(8*time.Hour + 30*time.Minute), "8.50"},
		{"twenty minutes", base.Add(20 * time.Minute), "0.33"},
		{"same instant", base, "0.00"},
		{"clock skew", base.Add(-time.Minute), "0.00"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, attendance.WorkedHours(base, tt.out).StringFixed(2))
		})
	}
}
