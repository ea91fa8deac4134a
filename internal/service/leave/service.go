package leave

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/auth"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/leave"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/utils"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/validator"
)

type LeaveServiceImpl struct {
	tx           database.Transactor
	leaveRepo    leave.LeaveRequestRepository
	employeeRepo employee.EmployeeRepository
	loc          *time.Location
	now          func() time.Time
}

func NewLeaveService(
	tx database.Transactor,
	leaveRepo leave.LeaveRequestRepository,
	employeeRepo employee.EmployeeRepository,
	loc *time.Location,
) leave.LeaveService {
	return &LeaveServiceImpl{
		tx:           tx,
		leaveRepo:    leaveRepo,
		employeeRepo: employeeRepo,
		loc:          loc,
		now:          time.Now,
	}
}

// SubmitLeave implements leave.LeaveService.
func (s *LeaveServiceImpl) SubmitLeave(ctx context.Context, req leave.SubmitLeaveRequest) (leave.LeaveResponse, error) {
	if err := req.Validate(); err != nil {
		return leave.LeaveResponse{}, err
	}

	employeeID, err := auth.ResolveEmployeeID(ctx, req.EmployeeID)
	if err != nil {
		return leave.LeaveResponse{}, err
	}
	if employeeID == "" {
		var errs validator.ValidationErrors
		errs.Add("employee_id", "is required")
		return leave.LeaveResponse{}, errs
	}
	if _, err := s.employeeRepo.GetByID(ctx, employeeID); err != nil {
		return leave.LeaveResponse{}, err
	}

	start, _ := validator.ParseDate(req.StartDate)
	end, _ := validator.ParseDate(req.EndDate)
	created, err := s.leaveRepo.Create(ctx, leave.LeaveRequest{
		EmployeeID: employeeID,
		LeaveType:  leave.LeaveType(req.LeaveType),
		StartDate:  start,
		EndDate:    end,
		Reason:     req.Reason,
		Status:     leave.StatusPending,
	})
	if err != nil {
		return leave.LeaveResponse{}, err
	}

	slog.Info("leave request submitted", "leave_id", created.ID, "employee_id", employeeID, "days", created.Days())
	return leave.NewLeaveResponse(created), nil
}

// ListLeaves implements leave.LeaveService.
func (s *LeaveServiceImpl) ListLeaves(ctx context.Context, filter leave.LeaveFilter) ([]leave.LeaveResponse, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	requests, err := s.leaveRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list leave requests: %w", err)
	}

	responses := make([]leave.LeaveResponse, 0, len(requests))
	for _, r := range requests {
		responses = append(responses, leave.NewLeaveWithEmployeeResponse(r))
	}
	return responses, nil
}

// ListByEmployee implements leave.LeaveService.
func (s *LeaveServiceImpl) ListByEmployee(ctx context.Context, employeeID string) ([]leave.LeaveResponse, error) {
	if !validator.IsValidUUID(employeeID) {
		return nil, employee.ErrEmployeeNotFound
	}
	return s.ListLeaves(ctx, leave.LeaveFilter{EmployeeID: &employeeID})
}

// ResolveLeave approves or rejects a request. Approval marks the employee on-leave
// and taken_leaves follows the approved state of the request. Rejecting the last
// approved leave that has not ended returns an on-leave employee to active.
func (s *LeaveServiceImpl) ResolveLeave(ctx context.Context, id string, req leave.ResolveLeaveRequest) (leave.LeaveResponse, error) {
	if !validator.IsValidUUID(id) {
		return leave.LeaveResponse{}, leave.ErrLeaveRequestNotFound
	}
	if err := req.Validate(); err != nil {
		return leave.LeaveResponse{}, err
	}
	target := leave.Status(req.Status)

	var resolved leave.LeaveRequest
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		current, err := s.leaveRepo.GetByIDForUpdate(ctx, id)
		if err != nil {
			return err
		}

		resolved, err = s.leaveRepo.UpdateStatus(ctx, id, target)
		if err != nil {
			return err
		}

		if target == leave.StatusApproved {
			if err := s.employeeRepo.UpdateStatus(ctx, current.EmployeeID, employee.StatusOnLeave); err != nil {
				return err
			}
		}
		if current.Status == leave.StatusApproved && target == leave.StatusRejected {
			if err := s.returnIfNoLeaveLeft(ctx, current.EmployeeID); err != nil {
				return err
			}
		}

		if delta := leave.TakenLeavesDelta(current.Status, target, current.Days()); delta != 0 {
			if err := s.employeeRepo.AdjustTakenLeaves(ctx, current.EmployeeID, delta); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return leave.LeaveResponse{}, err
	}

	slog.Info("leave request resolved", "leave_id", id, "status", target)
	return leave.NewLeaveResponse(resolved), nil
}

func (s *LeaveServiceImpl) returnIfNoLeaveLeft(ctx context.Context, employeeID string) error {
	remaining, err := s.leaveRepo.HasApprovedFrom(ctx, employeeID, utils.DateIn(s.now(), s.loc))
	if err != nil || remaining {
		return err
	}
	emp, err := s.employeeRepo.GetByID(ctx, employeeID)
	if err != nil {
		return err
	}
	if emp.Status != employee.StatusOnLeave {
		return nil
	}
	return s.employeeRepo.UpdateStatus(ctx, employeeID, employee.StatusActive)
}

// SyncLeaveStatuses implements leave.LeaveService.
func (s *LeaveServiceImpl) SyncLeaveStatuses(ctx context.Context) (int64, error) {
	today := utils.DateIn(s.now(), s.loc)

	var n int64
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		var err error
		n, err = s.employeeRepo.SyncLeaveStatus(ctx, today)
		return err
	})
	if err != nil {
		return 0, fmt.Errorf("failed to sync leave statuses: %w", err)
	}
	return n, nil
}
