package attendance

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/auth"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/utils"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/validator"
)

type AttendanceServiceImpl struct {
	tx             database.Transactor
	attendanceRepo attendance.AttendanceRepository
	employeeRepo   employee.EmployeeRepository
	loc            *time.Location
	now            func() time.Time
}

// NewAttendanceService builds the tracker. loc decides which calendar day "today" is.
func NewAttendanceService(
	tx database.Transactor,
	attendanceRepo attendance.AttendanceRepository,
	employeeRepo employee.EmployeeRepository,
	loc *time.Location,
) attendance.AttendanceService {
	return &AttendanceServiceImpl{
		tx:             tx,
		attendanceRepo: attendanceRepo,
		employeeRepo:   employeeRepo,
		loc:            loc,
		now:            time.Now,
	}
}

// resolveEmployee returns the employee a clock request applies to and checks it exists.
func (s *AttendanceServiceImpl) resolveEmployee(ctx context.Context, req attendance.ClockRequest) (string, error) {
	if err := req.Validate(); err != nil {
		return "", err
	}
	employeeID, err := auth.ResolveEmployeeID(ctx, req.EmployeeID)
	if err != nil {
		return "", err
	}
	if employeeID == "" {
		return "", attendance.ErrEmployeeIDRequired
	}
	if _, err := s.employeeRepo.GetByID(ctx, employeeID); err != nil {
		return "", err
	}
	return employeeID, nil
}

// ClockIn implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) ClockIn(ctx context.Context, req attendance.ClockRequest) (attendance.AttendanceResponse, error) {
	employeeID, err := s.resolveEmployee(ctx, req)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	now := s.now()
	record, err := s.attendanceRepo.Create(ctx, attendance.Attendance{
		EmployeeID: employeeID,
		Date:       utils.DateIn(now, s.loc),
		SignIn:     now,
		Status:     attendance.StatusPresent,
	})
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	slog.Info("employee clocked in", "employee_id", employeeID, "attendance_id", record.ID)
	return attendance.NewAttendanceResponse(record), nil
}

// ClockOut implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) ClockOut(ctx context.Context, req attendance.ClockRequest) (attendance.AttendanceResponse, error) {
	employeeID, err := s.resolveEmployee(ctx, req)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	var closed attendance.Attendance
	err = s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		now := s.now()
		open, err := s.attendanceRepo.GetOpenForUpdate(ctx, employeeID, utils.DateIn(now, s.loc))
		if err != nil {
			return err
		}

		closed, err = s.attendanceRepo.Close(ctx, open.ID, now, attendance.WorkedHours(open.SignIn, now))
		return err
	})
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	slog.Info("employee clocked out", "employee_id", employeeID, "attendance_id", closed.ID)
	return attendance.NewAttendanceResponse(closed), nil
}

// ListAttendance implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) ListAttendance(ctx context.Context, filter attendance.AttendanceFilter) ([]attendance.AttendanceResponse, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	records, err := s.attendanceRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance: %w", err)
	}

	responses := make([]attendance.AttendanceResponse, 0, len(records))
	for _, r := range records {
		responses = append(responses, attendance.NewAttendanceWithEmployeeResponse(r))
	}
	return responses, nil
}

// ListByEmployee implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) ListByEmployee(ctx context.Context, employeeID string) ([]attendance.AttendanceResponse, error) {
	if !validator.IsValidUUID(employeeID) {
		return nil, employee.ErrEmployeeNotFound
	}
	return s.ListAttendance(ctx, attendance.AttendanceFilter{EmployeeID: &employeeID})
}

// UpdateStatus implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) UpdateStatus(ctx context.Context, id string, req attendance.UpdateStatusRequest) (attendance.AttendanceResponse, error) {
	if !validator.IsValidUUID(id) {
		return attendance.AttendanceResponse{}, attendance.ErrAttendanceNotFound
	}
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	updated, err := s.attendanceRepo.UpdateStatus(ctx, id, attendance.Status(req.Status))
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}
	return attendance.NewAttendanceResponse(updated), nil
}
