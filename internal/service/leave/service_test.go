package leave

import (
	"context"
	"testing"
	"time"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/auth"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/leave"
	"github.com/cmlabs-hris/attendance-backend-go/internal/fixtures"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/validator"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeLeaveRepo struct {
	requests map[string]leave.LeaveRequest
}

func (f *fakeLeaveRepo) Create(_ context.Context, req leave.LeaveRequest) (leave.LeaveRequest, error) {
	req.ID = uuid.NewString()
	f.requests[req.ID] = req
	return req, nil
}

func (f *fakeLeaveRepo) GetByIDForUpdate(_ context.Context, id string) (leave.LeaveRequest, error) {
	r, ok := f.requests[id]
	if !ok {
		return leave.LeaveRequest{}, leave.ErrLeaveRequestNotFound
	}
	return r, nil
}

func (f *fakeLeaveRepo) UpdateStatus(_ context.Context, id string, status leave.Status) (leave.LeaveRequest, error) {
	r, ok := f.requests[id]
	if !ok {
		return leave.LeaveRequest{}, leave.ErrLeaveRequestNotFound
	}
	r.Status = status
	f.requests[id] = r
	return r, nil
}

func (f *fakeLeaveRepo) List(_ context.Context, filter leave.LeaveFilter) ([]leave.LeaveRequestWithEmployee, error) {
	var out []leave.LeaveRequestWithEmployee
	for _, r := range f.requests {
		if filter.Status != nil && string(r.Status) != *filter.Status {
			continue
		}
		if filter.EmployeeID != nil && r.EmployeeID != *filter.EmployeeID {
			continue
		}
		out = append(out, leave.LeaveRequestWithEmployee{LeaveRequest: r, EmployeeName: "Asha"})
	}
	return out, nil
}

func (f *fakeLeaveRepo) HasApprovedFrom(_ context.Context, employeeID string, day time.Time) (bool, error) {
	for _, r := range f.requests {
		if r.EmployeeID == employeeID && r.Status == leave.StatusApproved && !r.EndDate.Before(day) {
			return true, nil
		}
	}
	return false, nil
}

type fixture struct {
	svc       *LeaveServiceImpl
	repo      *fakeLeaveRepo
	employees *fixtures.EmployeeRepository
	tx        *fixtures.Transactor
	emp       employee.Employee
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	emp := fixtures.Employee("Asha")
	f := &fixture{
		repo:      &fakeLeaveRepo{requests: map[string]leave.LeaveRequest{}},
		employees: fixtures.NewEmployeeRepository(emp),
		tx:        &fixtures.Transactor{},
		emp:       emp,
	}
	f.svc = NewLeaveService(f.tx, f.repo, f.employees, time.UTC).(*LeaveServiceImpl)
	f.svc.now = func() time.Time { return time.Date(2024, 3, 6, 0, 5, 0, 0, time.UTC) }
	return f
}

func (f *fixture) employeeCtx() context.Context {
	return auth.WithPrincipal(context.Background(), auth.Principal{Role: auth.RoleEmployee, EmployeeID: f.emp.ID})
}

func ownerCtx() context.Context {
	return auth.WithPrincipal(context.Background(), auth.Principal{Role: auth.RoleOwner})
}

func TestSubmitLeave(t *testing.T) {
	f := newFixture(t)

	resp, err := f.svc.SubmitLeave(f.employeeCtx(), leave.SubmitLeaveRequest{
		LeaveType: "planned",
		StartDate: "2024-03-01",
		EndDate:   "2024-03-03",
		Reason:    fixtures.StrPtr("  family trip "),
	})
	require.NoError(t, err)
	assert.Equal(t, "pending", resp.Status)
	assert.Equal(t, 3, resp.Days)
	assert.Equal(t, f.emp.ID, resp.EmployeeID)
	assert.Equal(t, "family trip", *resp.Reason)

	t.Run("end date before start date", func(t *testing.T) {
		_, err := f.svc.SubmitLeave(f.employeeCtx(), leave.SubmitLeaveRequest{
			LeaveType: "medical",
			StartDate: "2024-03-10",
			EndDate:   "2024-03-01",
		})
		assert.ErrorIs(t, err, leave.ErrInvalidDateRange)
	})

	t.Run("unknown leave type and bad date", func(t *testing.T) {
		_, err := f.svc.SubmitLeave(f.employeeCtx(), leave.SubmitLeaveRequest{
			LeaveType: "vacation",
			StartDate: "03/01/2024",
			EndDate:   "2024-03-01",
		})
		var verrs validator.ValidationErrors
		require.ErrorAs(t, err, &verrs)
		assert.Contains(t, verrs.ToMap(), "leave_type")
		assert.Contains(t, verrs.ToMap(), "start_date")
	})

	t.Run("owner must name the employee", func(t *testing.T) {
		_, err := f.svc.SubmitLeave(ownerCtx(), leave.SubmitLeaveRequest{
			LeaveType: "happy",
			StartDate: "2024-03-01",
			EndDate:   "2024-03-01",
		})
		var verrs validator.ValidationErrors
		require.ErrorAs(t, err, &verrs)
		assert.Contains(t, verrs.ToMap(), "employee_id")
	})
}

func TestResolveLeave(t *testing.T) {
	f := newFixture(t)
	submitted, err := f.svc.SubmitLeave(f.employeeCtx(), leave.SubmitLeaveRequest{
		LeaveType: "planned",
		StartDate: "2024-03-01",
		EndDate:   "2024-03-03",
	})
	require.NoError(t, err)

	resolved, err := f.svc.ResolveLeave(ownerCtx(), submitted.ID, leave.ResolveLeaveRequest{Status: "approved"})
	require.NoError(t, err)
	assert.Equal(t, "approved", resolved.Status)

	emp, _ := f.employees.Get(f.emp.ID)
	assert.Equal(t, employee.StatusOnLeave, emp.Status)
	assert.Equal(t, 3, emp.TakenLeaves)

	t.Run("re-approving reapplies status without double counting", func(t *testing.T) {
		require.NoError(t, f.employees.UpdateStatus(context.Background(), f.emp.ID, employee.StatusActive))

		_, err := f.svc.ResolveLeave(ownerCtx(), submitted.ID, leave.ResolveLeaveRequest{Status: "approved"})
		require.NoError(t, err)

		emp, _ := f.employees.Get(f.emp.ID)
		assert.Equal(t, employee.StatusOnLeave, emp.Status)
		assert.Equal(t, 3, emp.TakenLeaves)
	})

	t.Run("rejecting an approved request gives the days back", func(t *testing.T) {
		_, err := f.svc.ResolveLeave(ownerCtx(), submitted.ID, leave.ResolveLeaveRequest{Status: "rejected"})
		require.NoError(t, err)

		emp, _ := f.employees.Get(f.emp.ID)
		assert.Equal(t, 0, emp.TakenLeaves)
		assert.Equal(t, employee.StatusActive, emp.Status)
	})

	t.Run("unknown request", func(t *testing.T) {
		_, err := f.svc.ResolveLeave(ownerCtx(), uuid.NewString(), leave.ResolveLeaveRequest{Status: "approved"})
		assert.ErrorIs(t, err, leave.ErrLeaveRequestNotFound)
	})

	t.Run("pending is not a resolution", func(t *testing.T) {
		_, err := f.svc.ResolveLeave(ownerCtx(), submitted.ID, leave.ResolveLeaveRequest{Status: "pending"})
		var verrs validator.ValidationErrors
		assert.ErrorAs(t, err, &verrs)
	})

	assert.Equal(t, 4, f.tx.Calls)
}

func TestListLeaves(t *testing.T) {
	f := newFixture(t)
	for _, dates := range [][2]string{{"2024-03-01", "2024-03-01"}, {"2024-04-01", "2024-04-02"}} {
		_, err := f.svc.SubmitLeave(f.employeeCtx(), leave.SubmitLeaveRequest{LeaveType: "happy", StartDate: dates[0], EndDate: dates[1]})
		require.NoError(t, err)
	}

	pending := "pending"
	list, err := f.svc.ListLeaves(ownerCtx(), leave.LeaveFilter{Status: &pending})
	require.NoError(t, err)
	assert.Len(t, list, 2)
	assert.Equal(t, "Asha", *list[0].EmployeeName)

	mine, err := f.svc.ListByEmployee(f.employeeCtx(), f.emp.ID)
	require.NoError(t, err)
	assert.Len(t, mine, 2)

	_, err = f.svc.ListByEmployee(f.employeeCtx(), "nope")
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
}

func TestResolveLeave_RejectKeepsOtherApprovedLeave(t *testing.T) {
	f := newFixture(t)
	var ids []string
	for _, dates := range [][2]string{{"2024-03-10", "2024-03-12"}, {"2024-04-01", "2024-04-02"}} {
		submitted, err := f.svc.SubmitLeave(f.employeeCtx(), leave.SubmitLeaveRequest{LeaveType: "planned", StartDate: dates[0], EndDate: dates[1]})
		require.NoError(t, err)
		_, err = f.svc.ResolveLeave(ownerCtx(), submitted.ID, leave.ResolveLeaveRequest{Status: "approved"})
		require.NoError(t, err)
		ids = append(ids, submitted.ID)
	}

	_, err := f.svc.ResolveLeave(ownerCtx(), ids[0], leave.ResolveLeaveRequest{Status: "rejected"})
	require.NoError(t, err)
	emp, _ := f.employees.Get(f.emp.ID)
	assert.Equal(t, employee.StatusOnLeave, emp.Status)
	assert.Equal(t, 2, emp.TakenLeaves)

	_, err = f.svc.ResolveLeave(ownerCtx(), ids[1], leave.ResolveLeaveRequest{Status: "rejected"})
	require.NoError(t, err)
	emp, _ = f.employees.Get(f.emp.ID)
	assert.Equal(t, employee.StatusActive, emp.Status)
}

func TestSyncLeaveStatuses(t *testing.T) {
	f := newFixture(t)
	starting := fixtures.Employee("Starting")
	away := fixtures.Employee("Away")
	away.Status = employee.StatusOnLeave
	back := fixtures.Employee("Back")
	back.Status = employee.StatusOnLeave
	manual := fixtures.Employee("Manual")
	manual.Status = employee.StatusOnLeave
	for _, e := range []employee.Employee{starting, away, back, manual} {
		_, err := f.employees.Create(context.Background(), e)
		require.NoError(t, err)
	}
	f.employees.LeaveCovers = func(id string, _ time.Time) bool { return id == starting.ID || id == away.ID }
	f.employees.LeaveEnded = func(id string, _ time.Time) bool { return id == back.ID }

	n, err := f.svc.SyncLeaveStatuses(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	want := map[string]employee.Status{
		starting.ID: employee.StatusOnLeave,
		away.ID:     employee.StatusOnLeave,
		back.ID:     employee.StatusActive,
		manual.ID:   employee.StatusOnLeave,
		f.emp.ID:    employee.StatusActive,
	}
	for id, status := range want {
		stored, _ := f.employees.Get(id)
		assert.Equal(t, status, stored.Status, stored.FullName)
	}

	require.Len(t, f.employees.SyncedDays, 1)
	assert.Equal(t, time.Date(2024, 3, 6, 0, 0, 0, 0, time.UTC), f.employees.SyncedDays[0])
	assert.Equal(t, 1, f.tx.Calls)
}

func TestTakenLeavesDelta(t *testing.T) {
	tests := []struct {
		from, to leave.Status
		want     int
	}{
		{leave.StatusPending, leave.StatusApproved, 4},
		{leave.StatusRejected, leave.StatusApproved, 4},
		{leave.StatusApproved, leave.StatusApproved, 0},
		{leave.StatusApproved, leave.StatusRejected, -4},
		{leave.StatusPending, leave.StatusRejected, 0},
	}
	for _, tt := range tests {
		t.Run(string(tt.from)+"->"+string(tt.to), func(t *testing.T) {
			assert.Equal(t, tt.want, leave.TakenLeavesDelta(tt.from, tt.to, 4))
		})
	}
}
