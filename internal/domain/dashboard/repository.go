package dashboard

import (
	"context"
	"time"
)

// DashboardRepository holds independent count queries; each may run on its own connection.
type DashboardRepository interface {
	CountEmployees(ctx context.Context) (int64, error)
	CountEmployeesByStatus(ctx context.Context, status string) (int64, error)
	CountAttendanceByStatus(ctx context.Context, date time.Time, status string) (int64, error)
	CountLeavesByStatus(ctx context.Context, status string) (int64, error)
	CountPendingMembers(ctx context.Context) (int64, error)
}
