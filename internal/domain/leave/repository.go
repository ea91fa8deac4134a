package leave

import (
	"context"
	"time"
)

type LeaveRequestRepository interface {
	Create(ctx context.Context, req LeaveRequest) (LeaveRequest, error)
	GetByIDForUpdate(ctx context.Context, id string) (LeaveRequest, error)
	UpdateStatus(ctx context.Context, id string, status Status) (LeaveRequest, error)
	List(ctx context.Context, filter LeaveFilter) ([]LeaveRequestWithEmployee, error)
	// HasApprovedFrom reports whether employeeID has an approved leave ending on or after day.
	HasApprovedFrom(ctx context.Context, employeeID string, day time.Time) (bool, error)
}
