package dashboard

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/dashboard"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeDashboardRepo struct {
	employees    int64
	byStatus     map[string]int64
	attendance   map[string]int64
	leaves       map[string]int64
	members      int64
	mu           sync.Mutex
	attendanceOn time.Time
	err          error
}

func (f *fakeDashboardRepo) CountEmployees(context.Context) (int64, error) {
	return f.employees, nil
}

func (f *fakeDashboardRepo) CountEmployeesByStatus(_ context.Context, status string) (int64, error) {
	return f.byStatus[status], nil
}

func (f *fakeDashboardRepo) CountAttendanceByStatus(_ context.Context, date time.Time, status string) (int64, error) {
	f.mu.Lock()
	f.attendanceOn = date
	f.mu.Unlock()
	return f.attendance[status], nil
}

func (f *fakeDashboardRepo) CountLeavesByStatus(_ context.Context, status string) (int64, error) {
	return f.leaves[status], nil
}

func (f *fakeDashboardRepo) CountPendingMembers(context.Context) (int64, error) {
	return f.members, f.err
}

var _ dashboard.DashboardRepository = (*fakeDashboardRepo)(nil)

func newService(repo *fakeDashboardRepo) *DashboardServiceImpl {
	loc, _ := time.LoadLocation("Asia/Kolkata")
	svc := NewDashboardService(repo, loc).(*DashboardServiceImpl)
	svc.now = func() time.Time { return time.Date(2024, 3, 1, 19, 0, 0, 0, time.UTC) }
	return svc
}

func TestGetStats(t *testing.T) {
	repo := &fakeDashboardRepo{
		employees:  12,
		byStatus:   map[string]int64{"active": 10, "on-leave": 1},
		attendance: map[string]int64{"present": 6, "late": 2},
		leaves:     map[string]int64{"pending": 3},
		members:    4,
	}

	stats, err := newService(repo).GetStats(context.Background())
	require.NoError(t, err)

	assert.Equal(t, dashboard.StatsResponse{
		TotalEmployees:  12,
		ActiveEmployees: 10,
		PresentToday:    6,
		LateToday:       2,
		OnLeaveToday:    1,
		AbsentToday:     1,
		PendingLeaves:   3,
		PendingMembers:  4,
		Date:            "2024-03-02",
	}, stats)
	assert.Equal(t, time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC), repo.attendanceOn)
}

func TestGetStatsAbsentCanGoNegative(t *testing.T) {
	repo := &fakeDashboardRepo{
		byStatus:   map[string]int64{"active": 2, "on-leave": 1},
		attendance: map[string]int64{"present": 3},
	}

	stats, err := newService(repo).GetStats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(-2), stats.AbsentToday)
}

func TestGetStatsPropagatesErrors(t *testing.T) {
	boom := errors.New("connection refused")
	repo := &fakeDashboardRepo{err: boom}

	_, err := newService(repo).GetStats(context.Background())
	assert.ErrorIs(t, err, boom)
}
