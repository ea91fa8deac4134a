package breaks

import (
	"context"
	"time"
)

type BreakRepository interface {
	// Create inserts an open break. Returns ErrAlreadyOnBreak when one is already open for that date.
	Create(ctx context.Context, record BreakRecord) (BreakRecord, error)
	GetOpenForUpdate(ctx context.Context, employeeID string, date time.Time) (BreakRecord, error)
	Close(ctx context.Context, id string, endTime time.Time, durationMinutes int) (BreakRecord, error)
	List(ctx context.Context, filter BreakFilter) ([]BreakWithEmployee, error)
}
