package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/dashboard"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/database"
)

type dashboardRepositoryImpl struct {
	db *database.DB
}

func NewDashboardRepository(db *database.DB) dashboard.DashboardRepository {
	return &dashboardRepositoryImpl{db: db}
}

func (r *dashboardRepositoryImpl) count(ctx context.Context, what string, query string, args ...interface{}) (int64, error) {
	q := GetQuerier(ctx, r.db)

	var n int64
	if err := q.QueryRow(ctx, query, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count %s: %w", what, err)
	}
	return n, nil
}

// CountEmployees implements dashboard.DashboardRepository.
func (r *dashboardRepositoryImpl) CountEmployees(ctx context.Context) (int64, error) {
	return r.count(ctx, "employees", `SELECT COUNT(*) FROM employees`)
}

// CountEmployeesByStatus implements dashboard.DashboardRepository.
func (r *dashboardRepositoryImpl) CountEmployeesByStatus(ctx context.Context, status string) (int64, error) {
	return r.count(ctx, status+" employees", `SELECT COUNT(*) FROM employees WHERE status = $1`, status)
}

// CountAttendanceByStatus implements dashboard.DashboardRepository.
func (r *dashboardRepositoryImpl) CountAttendanceByStatus(ctx context.Context, date time.Time, status string) (int64, error) {
	return r.count(ctx, status+" attendance", `SELECT COUNT(*) FROM attendances WHERE date = $1 AND status = $2`, date, status)
}

// CountLeavesByStatus implements dashboard.DashboardRepository.
func (r *dashboardRepositoryImpl) CountLeavesByStatus(ctx context.Context, status string) (int64, error) {
	return r.count(ctx, status+" leaves", `SELECT COUNT(*) FROM leave_requests WHERE status = $1`, status)
}

// CountPendingMembers implements dashboard.DashboardRepository.
func (r *dashboardRepositoryImpl) CountPendingMembers(ctx context.Context) (int64, error) {
	return r.count(ctx, "pending members", `SELECT COUNT(*) FROM new_members WHERE status = 'pending'`)
}
