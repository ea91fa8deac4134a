package dashboard

import "context"

type DashboardService interface {
	// GetStats runs the count queries concurrently and derives absentToday.
	GetStats(ctx context.Context) (StatsResponse, error)
}
