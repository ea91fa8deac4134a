package leave

import "context"

type LeaveService interface {
	SubmitLeave(ctx context.Context, req SubmitLeaveRequest) (LeaveResponse, error)
	ListLeaves(ctx context.Context, filter LeaveFilter) ([]LeaveResponse, error)
	ListByEmployee(ctx context.Context, employeeID string) ([]LeaveResponse, error)
	ResolveLeave(ctx context.Context, id string, req ResolveLeaveRequest) (LeaveResponse, error)
	// SyncLeaveStatuses is run daily by the scheduler so employee status follows approved leaves.
	SyncLeaveStatuses(ctx context.Context) (int64, error)
}
