package breaks

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/auth"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/breaks"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/utils"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/validator"
)

type BreakServiceImpl struct {
	tx           database.Transactor
	breakRepo    breaks.BreakRepository
	employeeRepo employee.EmployeeRepository
	loc          *time.Location
	now          func() time.Time
}

func NewBreakService(
	tx database.Transactor,
	breakRepo breaks.BreakRepository,
	employeeRepo employee.EmployeeRepository,
	loc *time.Location,
) breaks.BreakService {
	return &BreakServiceImpl{
		tx:           tx,
		breakRepo:    breakRepo,
		employeeRepo: employeeRepo,
		loc:          loc,
		now:          time.Now,
	}
}

func (s *BreakServiceImpl) resolveEmployee(ctx context.Context, requested string) (string, error) {
	employeeID, err := auth.ResolveEmployeeID(ctx, requested)
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

// StartBreak implements breaks.BreakService.
func (s *BreakServiceImpl) StartBreak(ctx context.Context, req breaks.StartBreakRequest) (breaks.BreakResponse, error) {
	if err := req.Validate(); err != nil {
		return breaks.BreakResponse{}, err
	}
	employeeID, err := s.resolveEmployee(ctx, req.EmployeeID)
	if err != nil {
		return breaks.BreakResponse{}, err
	}

	now := s.now()
	record, err := s.breakRepo.Create(ctx, breaks.BreakRecord{
		EmployeeID: employeeID,
		Date:       utils.DateIn(now, s.loc),
		StartTime:  now,
		Type:       req.Type,
	})
	if err != nil {
		return breaks.BreakResponse{}, err
	}

	slog.Info("break started", "employee_id", employeeID, "break_id", record.ID, "type", record.Type)
	return breaks.NewBreakResponse(record), nil
}

// EndBreak implements breaks.BreakService.
func (s *BreakServiceImpl) EndBreak(ctx context.Context, req breaks.EndBreakRequest) (breaks.BreakResponse, error) {
	if err := req.Validate(); err != nil {
		return breaks.BreakResponse{}, err
	}
	employeeID, err := s.resolveEmployee(ctx, req.EmployeeID)
	if err != nil {
		return breaks.BreakResponse{}, err
	}

	var closed breaks.BreakRecord
	err = s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		now := s.now()
		open, err := s.breakRepo.GetOpenForUpdate(ctx, employeeID, utils.DateIn(now, s.loc))
		if err != nil {
			return err
		}
		closed, err = s.breakRepo.Close(ctx, open.ID, now, breaks.DurationMinutes(open.StartTime, now))
		return err
	})
	if err != nil {
		return breaks.BreakResponse{}, err
	}

	slog.Info("break ended", "employee_id", employeeID, "break_id", closed.ID)
	return breaks.NewBreakResponse(closed), nil
}

// ListBreaks implements breaks.BreakService.
func (s *BreakServiceImpl) ListBreaks(ctx context.Context, filter breaks.BreakFilter) ([]breaks.BreakResponse, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	records, err := s.breakRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list breaks: %w", err)
	}

	responses := make([]breaks.BreakResponse, 0, len(records))
	for _, r := range records {
		responses = append(responses, breaks.NewBreakWithEmployeeResponse(r))
	}
	return responses, nil
}

// ListByEmployee implements breaks.BreakService.
func (s *BreakServiceImpl) ListByEmployee(ctx context.Context, employeeID string) ([]breaks.BreakResponse, error) {
	if !validator.IsValidUUID(employeeID) {
		return nil, employee.ErrEmployeeNotFound
	}
	return s.ListBreaks(ctx, breaks.BreakFilter{EmployeeID: &employeeID})
}
