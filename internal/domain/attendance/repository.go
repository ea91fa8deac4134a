package attendance

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

type AttendanceRepository interface {
	// Create inserts an open record. Returns ErrAlreadyClockedIn if the employee has any record for that date.
	Create(ctx context.Context, record Attendance) (Attendance, error)
	// GetOpenForUpdate locks the open record of employeeID on date. Returns ErrNoActiveSession if there is none.
	GetOpenForUpdate(ctx context.Context, employeeID string, date time.Time) (Attendance, error)
	Close(ctx context.Context, id string, signOut time.Time, totalHours decimal.Decimal) (Attendance, error)
	UpdateStatus(ctx context.Context, id string, status Status) (Attendance, error)
	List(ctx context.Context, filter AttendanceFilter) ([]AttendanceWithEmployee, error)
}
