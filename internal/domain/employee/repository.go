package employee

import (
	"context"
	"time"
)

type EmployeeRepository interface {
	Create(ctx context.Context, newEmployee Employee) (Employee, error)
	GetByID(ctx context.Context, id string) (Employee, error)
	GetByPhone(ctx context.Context, phone string) (Employee, error)
	GetByEmail(ctx context.Context, email string) (Employee, error)
	List(ctx context.Context, filter EmployeeFilter) ([]Employee, error)
	Update(ctx context.Context, id string, req UpdateEmployeeRequest) (Employee, error)
	// Delete removes the employee and all rows that reference it. Call inside a transaction.
	Delete(ctx context.Context, id string) error
	UpdateStatus(ctx context.Context, id string, status Status) error
	AdjustTakenLeaves(ctx context.Context, id string, delta int) error
	// SyncLeaveStatus marks active employees with an approved leave covering day as on-leave and
	// returns on-leave employees whose latest approved leave ended before day to active.
	// Employees without any approved leave are left alone. Returns the number of rows changed.
	SyncLeaveStatus(ctx context.Context, day time.Time) (int64, error)
}
