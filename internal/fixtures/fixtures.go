// Package fixtures holds in-memory doubles and sample records shared by service tests.
package fixtures

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/validator"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

func StrPtr(s string) *string { return &s }
func IntPtr(i int) *int       { return &i }

// Transactor runs callbacks inline and counts them.
type Transactor struct {
	Calls int
}

func (t *Transactor) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	t.Calls++
	return fn(ctx)
}

// Employee returns an active daily-rated employee with a fresh v7 ID.
func Employee(name string) employee.Employee {
	id, _ := uuid.NewV7()
	return employee.Employee{
		ID:                   id.String(),
		FullName:             name,
		JoiningDate:          time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		EmploymentType:       employee.EmploymentTypeDaily,
		WorkRate:             decimal.NewFromInt(30000),
		MonthCalculationType: employee.MonthCalculationCalendar,
		AllowedLeaves:        employee.DefaultAllowedLeaves,
		Status:               employee.StatusActive,
		CreatedAt:            time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		UpdatedAt:            time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

// EmployeeRepository is an in-memory employee.EmployeeRepository enforcing the
// phone and email uniqueness of the employees table.
type EmployeeRepository struct {
	mu        sync.Mutex
	employees map[string]employee.Employee
	seq       int

	// SyncedDays records the day passed to each SyncLeaveStatus call.
	SyncedDays []time.Time
	// LeaveCovers reports whether an approved leave of id covers day.
	LeaveCovers func(id string, day time.Time) bool
	// LeaveEnded reports whether the latest approved leave of id ended before day.
	LeaveEnded func(id string, day time.Time) bool
}

func NewEmployeeRepository(seed ...employee.Employee) *EmployeeRepository {
	r := &EmployeeRepository{employees: make(map[string]employee.Employee)}
	for _, e := range seed {
		r.employees[e.ID] = e
	}
	return r
}

// Get returns the stored row without going through the interface.
func (r *EmployeeRepository) Get(id string) (employee.Employee, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.employees[id]
	return e, ok
}

func (r *EmployeeRepository) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.employees)
}

func (r *EmployeeRepository) conflict(e employee.Employee) error {
	for _, other := range r.employees {
		if other.ID == e.ID {
			continue
		}
		if e.Phone != nil && other.Phone != nil && *e.Phone == *other.Phone {
			return employee.ErrPhoneExists
		}
		if e.Email != nil && other.Email != nil && strings.EqualFold(*e.Email, *other.Email) {
			return employee.ErrEmailExists
		}
	}
	return nil
}

func (r *EmployeeRepository) Create(_ context.Context, e employee.Employee) (employee.Employee, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if e.ID == "" {
		id, _ := uuid.NewV7()
		e.ID = id.String()
	}
	if err := r.conflict(e); err != nil {
		return employee.Employee{}, err
	}
	r.seq++
	e.CreatedAt = time.Date(2024, 1, 1, 0, 0, r.seq, 0, time.UTC)
	e.UpdatedAt = e.CreatedAt
	r.employees[e.ID] = e
	return e, nil
}

func (r *EmployeeRepository) GetByID(_ context.Context, id string) (employee.Employee, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.employees[id]
	if !ok {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return e, nil
}

func (r *EmployeeRepository) GetByPhone(_ context.Context, phone string) (employee.Employee, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, e := range r.employees {
		if e.Phone != nil && *e.Phone == phone {
			return e, nil
		}
	}
	return employee.Employee{}, employee.ErrEmployeeNotFound
}

func (r *EmployeeRepository) GetByEmail(_ context.Context, email string) (employee.Employee, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, e := range r.employees {
		if e.Email != nil && strings.EqualFold(*e.Email, email) {
			return e, nil
		}
	}
	return employee.Employee{}, employee.ErrEmployeeNotFound
}

func (r *EmployeeRepository) List(_ context.Context, filter employee.EmployeeFilter) ([]employee.Employee, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []employee.Employee
	for _, e := range r.employees {
		if filter.Status != nil && string(e.Status) != *filter.Status {
			continue
		}
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *EmployeeRepository) Update(_ context.Context, id string, req employee.UpdateEmployeeRequest) (employee.Employee, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.employees[id]
	if !ok {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	if req.FullName != nil {
		e.FullName = *req.FullName
	}
	if req.DOB != nil {
		dob, err := validator.ParseDate(*req.DOB)
		if err != nil {
			return employee.Employee{}, fmt.Errorf("bad dob: %w", err)
		}
		e.DOB = &dob
	}
	if req.JoiningDate != nil {
		joined, err := validator.ParseDate(*req.JoiningDate)
		if err != nil {
			return employee.Employee{}, fmt.Errorf("bad joining date: %w", err)
		}
		e.JoiningDate = joined
	}
	if req.EmploymentType != nil {
		e.EmploymentType = employee.EmploymentType(*req.EmploymentType)
	}
	if req.WorkRate != nil {
		e.WorkRate = req.WorkRate.Round(2)
	}
	if req.Position != nil {
		e.Position = req.Position
	}
	if req.Department != nil {
		e.Department = req.Department
	}
	if req.Shift != nil {
		shift := employee.Shift(*req.Shift)
		e.Shift = &shift
	}
	if req.Phone != nil {
		e.Phone = req.Phone
	}
	if req.Email != nil {
		e.Email = req.Email
	}
	if req.MonthCalculationType != nil {
		e.MonthCalculationType = employee.MonthCalculationType(*req.MonthCalculationType)
	}
	if req.PFEnabled != nil {
		e.PFEnabled = *req.PFEnabled
	}
	if req.ESIEnabled != nil {
		e.ESIEnabled = *req.ESIEnabled
	}
	if req.TDSEnabled != nil {
		e.TDSEnabled = *req.TDSEnabled
	}
	if req.AllowedLeaves != nil {
		e.AllowedLeaves = *req.AllowedLeaves
	}
	if req.TakenLeaves != nil {
		e.TakenLeaves = *req.TakenLeaves
	}
	if req.Status != nil {
		e.Status = employee.Status(*req.Status)
	}
	if err := r.conflict(e); err != nil {
		return employee.Employee{}, err
	}
	r.employees[id] = e
	return e, nil
}

func (r *EmployeeRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.employees[id]; !ok {
		return employee.ErrEmployeeNotFound
	}
	delete(r.employees, id)
	return nil
}

func (r *EmployeeRepository) UpdateStatus(_ context.Context, id string, status employee.Status) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.employees[id]
	if !ok {
		return employee.ErrEmployeeNotFound
	}
	e.Status = status
	r.employees[id] = e
	return nil
}

func (r *EmployeeRepository) AdjustTakenLeaves(_ context.Context, id string, delta int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.employees[id]
	if !ok {
		return employee.ErrEmployeeNotFound
	}
	e.TakenLeaves = max(e.TakenLeaves+delta, 0)
	r.employees[id] = e
	return nil
}

func (r *EmployeeRepository) SyncLeaveStatus(_ context.Context, day time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.SyncedDays = append(r.SyncedDays, day)
	var n int64
	for id, e := range r.employees {
		switch {
		case e.Status == employee.StatusActive && r.LeaveCovers != nil && r.LeaveCovers(id, day):
			e.Status = employee.StatusOnLeave
		case e.Status == employee.StatusOnLeave && r.LeaveEnded != nil && r.LeaveEnded(id, day):
			e.Status = employee.StatusActive
		default:
			continue
		}
		r.employees[id] = e
		n++
	}
	return n, nil
}
