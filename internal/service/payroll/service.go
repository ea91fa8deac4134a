package payroll

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/payroll"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/export"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/validator"
)

type PayrollServiceImpl struct {
	tx           database.Transactor
	payrollRepo  payroll.PayrollRepository
	employeeRepo employee.EmployeeRepository
}

func NewPayrollService(
	tx database.Transactor,
	payrollRepo payroll.PayrollRepository,
	employeeRepo employee.EmployeeRepository,
) payroll.PayrollService {
	return &PayrollServiceImpl{
		tx:           tx,
		payrollRepo:  payrollRepo,
		employeeRepo: employeeRepo,
	}
}

// CalculatePayroll computes a draft for every employee in one transaction.
// Periods already approved or paid keep their stored figures.
func (s *PayrollServiceImpl) CalculatePayroll(ctx context.Context, period payroll.PeriodRequest) ([]payroll.PayrollResponse, error) {
	if err := period.Validate(); err != nil {
		return nil, err
	}

	var records []payroll.PayrollRecord
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		employees, err := s.employeeRepo.List(ctx, employee.EmployeeFilter{})
		if err != nil {
			return fmt.Errorf("failed to get employees: %w", err)
		}

		presentDays, err := s.payrollRepo.CountPresentDays(ctx, period.Month, period.Year)
		if err != nil {
			return fmt.Errorf("failed to count present days: %w", err)
		}

		records = make([]payroll.PayrollRecord, 0, len(employees))
		for _, emp := range employees {
			totalDays := emp.MonthCalculationType.TotalDays()
			present := presentDays[emp.ID]
			gross := payroll.GrossSalary(emp.WorkRate, totalDays, present)

			saved, err := s.payrollRepo.UpsertDraft(ctx, payroll.PayrollRecord{
				EmployeeID:  emp.ID,
				Month:       period.Month,
				Year:        period.Year,
				PresentDays: present,
				TotalDays:   totalDays,
				GrossSalary: gross,
				NetPayable:  gross,
				Status:      payroll.PayrollStatusDraft,
			})
			if err != nil {
				return fmt.Errorf("failed to save payroll for employee %s: %w", emp.ID, err)
			}

			name := emp.FullName
			saved.EmployeeName = &name
			saved.Department = emp.Department
			saved.Position = emp.Position
			records = append(records, saved)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	slog.Info("payroll calculated", "month", period.Month, "year", period.Year, "records", len(records))
	return toResponses(records), nil
}

// ListPayroll implements payroll.PayrollService.
func (s *PayrollServiceImpl) ListPayroll(ctx context.Context, filter payroll.PayrollFilter) ([]payroll.PayrollResponse, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	records, err := s.payrollRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list payroll records: %w", err)
	}
	return toResponses(records), nil
}

// UpdateStatus implements payroll.PayrollService.
func (s *PayrollServiceImpl) UpdateStatus(ctx context.Context, id string, req payroll.UpdateStatusRequest) (payroll.PayrollResponse, error) {
	if !validator.IsValidUUID(id) {
		return payroll.PayrollResponse{}, payroll.ErrPayrollRecordNotFound
	}
	if err := req.Validate(); err != nil {
		return payroll.PayrollResponse{}, err
	}
	next := payroll.PayrollStatus(req.Status)

	var updated payroll.PayrollRecord
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		current, err := s.payrollRepo.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if !current.Status.CanTransitionTo(next) {
			return payroll.ErrInvalidTransition
		}
		updated, err = s.payrollRepo.UpdateStatus(ctx, id, next)
		return err
	})
	if err != nil {
		return payroll.PayrollResponse{}, err
	}

	slog.Info("payroll status updated", "payroll_id", id, "status", next)
	return payroll.NewPayrollResponse(updated), nil
}

// ExportPayroll implements payroll.PayrollService.
func (s *PayrollServiceImpl) ExportPayroll(ctx context.Context, period payroll.PeriodRequest) (string, []byte, error) {
	if err := period.Validate(); err != nil {
		return "", nil, err
	}

	records, err := s.payrollRepo.List(ctx, payroll.PayrollFilter{Month: &period.Month, Year: &period.Year})
	if err != nil {
		return "", nil, fmt.Errorf("failed to list payroll records: %w", err)
	}

	content, err := export.PayrollWorkbook(records, period.Month, period.Year)
	if err != nil {
		return "", nil, fmt.Errorf("failed to build payroll workbook: %w", err)
	}
	return export.PayrollFilename(period.Month, period.Year), content, nil
}

func toResponses(records []payroll.PayrollRecord) []payroll.PayrollResponse {
	responses := make([]payroll.PayrollResponse, 0, len(records))
	for _, r := range records {
		responses = append(responses, payroll.NewPayrollResponse(r))
	}
	return responses
}
