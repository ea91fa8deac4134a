package cron

import (
	"context"
	"log/slog"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/leave"
)

// LeaveJobs keeps employee status in line with approved leave: on-leave while one
// covers today, active again once the last one has ended.
type LeaveJobs struct {
	leaveService leave.LeaveService
}

func NewLeaveJobs(leaveService leave.LeaveService) *LeaveJobs {
	return &LeaveJobs{leaveService: leaveService}
}

func (j *LeaveJobs) RegisterJobs(scheduler *Scheduler, spec string) error {
	return scheduler.AddJob("sync_leave_status", spec, j.SyncLeaveStatus)
}

func (j *LeaveJobs) SyncLeaveStatus(ctx context.Context) error {
	n, err := j.leaveService.SyncLeaveStatuses(ctx)
	if err != nil {
		return err
	}
	if n > 0 {
		slog.Info("Cron: employee leave status updated", "count", n)
	}
	return nil
}
