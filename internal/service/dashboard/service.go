package dashboard

import (
	"context"
	"time"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/dashboard"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/utils"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/validator"
	"golang.org/x/sync/errgroup"
)

type DashboardServiceImpl struct {
	dashboard.DashboardRepository
	loc *time.Location
	now func() time.Time
}

func NewDashboardService(repo dashboard.DashboardRepository, loc *time.Location) dashboard.DashboardService {
	return &DashboardServiceImpl{
		DashboardRepository: repo,
		loc:                 loc,
		now:                 time.Now,
	}
}

// GetStats runs the counts on separate pool connections and fails on the first error.
func (s *DashboardServiceImpl) GetStats(ctx context.Context) (dashboard.StatsResponse, error) {
	today := utils.DateIn(s.now(), s.loc)

	var stats dashboard.StatsResponse
	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() (err error) {
		stats.TotalEmployees, err = s.CountEmployees(gCtx)
		return err
	})
	g.Go(func() (err error) {
		stats.ActiveEmployees, err = s.CountEmployeesByStatus(gCtx, "active")
		return err
	})
	g.Go(func() (err error) {
		stats.OnLeaveToday, err = s.CountEmployeesByStatus(gCtx, "on-leave")
		return err
	})
	g.Go(func() (err error) {
		stats.PresentToday, err = s.CountAttendanceByStatus(gCtx, today, "present")
		return err
	})
	g.Go(func() (err error) {
		stats.LateToday, err = s.CountAttendanceByStatus(gCtx, today, "late")
		return err
	})
	g.Go(func() (err error) {
		stats.PendingLeaves, err = s.CountLeavesByStatus(gCtx, "pending")
		return err
	})
	g.Go(func() (err error) {
		stats.PendingMembers, err = s.CountPendingMembers(gCtx)
		return err
	})

	if err := g.Wait(); err != nil {
		return dashboard.StatsResponse{}, err
	}

	// Not floored: attendance rows of inactive employees can push this below zero.
	stats.AbsentToday = stats.ActiveEmployees - stats.PresentToday - stats.LateToday - stats.OnLeaveToday
	stats.Date = today.Format(validator.DateLayout)
	return stats, nil
}
