package postgresql

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/validator"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const employeeColumns = `id, full_name, dob, joining_date, employment_type, work_rate, position, department,
	shift, phone, email, month_calculation_type, pf_enabled, esi_enabled, tds_enabled,
	allowed_leaves, taken_leaves, status, created_at, updated_at`

type employeeRepositoryImpl struct {
	db *database.DB
}

func NewEmployeeRepository(db *database.DB) employee.EmployeeRepository {
	return &employeeRepositoryImpl{db: db}
}

func scanEmployee(row pgx.Row) (employee.Employee, error) {
	var emp employee.Employee
	err := row.Scan(
		&emp.ID, &emp.FullName, &emp.DOB, &emp.JoiningDate, &emp.EmploymentType, &emp.WorkRate,
		&emp.Position, &emp.Department, &emp.Shift, &emp.Phone, &emp.Email,
		&emp.MonthCalculationType, &emp.PFEnabled, &emp.ESIEnabled, &emp.TDSEnabled,
		&emp.AllowedLeaves, &emp.TakenLeaves, &emp.Status, &emp.CreatedAt, &emp.UpdatedAt,
	)
	return emp, err
}

// mapEmployeeWriteError translates unique violations on phone/email.
func mapEmployeeWriteError(err error) error {
	constraint, ok := uniqueViolationOn(err)
	if !ok {
		return err
	}
	switch constraint {
	case "employees_email_key":
		return employee.ErrEmailExists
	default:
		return employee.ErrPhoneExists
	}
}

// Create implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) Create(ctx context.Context, newEmployee employee.Employee) (employee.Employee, error) {
	q := GetQuerier(ctx, e.db)

	id, err := uuid.NewV7()
	if err != nil {
		return employee.Employee{}, fmt.Errorf("generate employee id: %w", err)
	}

	query := `
		INSERT INTO employees (
			id, full_name, dob, joining_date, employment_type, work_rate, position, department,
			shift, phone, email, month_calculation_type, pf_enabled, esi_enabled, tds_enabled,
			allowed_leaves, taken_leaves, status
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8,
			$9, $10, $11, $12, $13, $14, $15,
			$16, $17, $18
		)
		RETURNING ` + employeeColumns

	created, err := scanEmployee(q.QueryRow(ctx, query,
		id.String(), newEmployee.FullName, newEmployee.DOB, newEmployee.JoiningDate, newEmployee.EmploymentType,
		newEmployee.WorkRate, newEmployee.Position, newEmployee.Department,
		newEmployee.Shift, newEmployee.Phone, newEmployee.Email, newEmployee.MonthCalculationType,
		newEmployee.PFEnabled, newEmployee.ESIEnabled, newEmployee.TDSEnabled,
		newEmployee.AllowedLeaves, newEmployee.TakenLeaves, newEmployee.Status,
	))
	if err != nil {
		return employee.Employee{}, mapEmployeeWriteError(err)
	}
	return created, nil
}

// GetByID implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	return e.getOne(ctx, `SELECT `+employeeColumns+` FROM employees WHERE id = $1`, id)
}

// GetByPhone implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) GetByPhone(ctx context.Context, phone string) (employee.Employee, error) {
	return e.getOne(ctx, `SELECT `+employeeColumns+` FROM employees WHERE phone = $1`, phone)
}

// GetByEmail implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) GetByEmail(ctx context.Context, email string) (employee.Employee, error) {
	return e.getOne(ctx, `SELECT `+employeeColumns+` FROM employees WHERE LOWER(email) = LOWER($1)`, email)
}

func (e *employeeRepositoryImpl) getOne(ctx context.Context, query string, arg interface{}) (employee.Employee, error) {
	q := GetQuerier(ctx, e.db)

	found, err := scanEmployee(q.QueryRow(ctx, query, arg))
	if err != nil {
		if isNoRows(err) {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, fmt.Errorf("failed to get employee: %w", err)
	}
	return found, nil
}

// List implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) List(ctx context.Context, filter employee.EmployeeFilter) ([]employee.Employee, error) {
	q := GetQuerier(ctx, e.db)

	query := `SELECT ` + employeeColumns + ` FROM employees`
	args := []interface{}{}
	if filter.Status != nil {
		query += ` WHERE status = $1`
		args = append(args, *filter.Status)
	}
	query += ` ORDER BY created_at DESC`

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}
	defer rows.Close()

	employees := make([]employee.Employee, 0)
	for rows.Next() {
		emp, err := scanEmployee(rows)
		if err != nil {
			return nil, err
		}
		employees = append(employees, emp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return employees, nil
}

// Update implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) Update(ctx context.Context, id string, req employee.UpdateEmployeeRequest) (employee.Employee, error) {
	q := GetQuerier(ctx, e.db)

	updates := make(map[string]interface{})

	if req.FullName != nil && *req.FullName != "" {
		updates["full_name"] = *req.FullName
	}
	if req.DOB != nil {
		if *req.DOB == "" {
			updates["dob"] = nil
		} else {
			parsedDOB, _ := validator.ParseDate(*req.DOB)
			updates["dob"] = parsedDOB
		}
	}
	if req.JoiningDate != nil && *req.JoiningDate != "" {
		parsedJoiningDate, _ := validator.ParseDate(*req.JoiningDate)
		updates["joining_date"] = parsedJoiningDate
	}
	if req.EmploymentType != nil && *req.EmploymentType != "" {
		updates["employment_type"] = *req.EmploymentType
	}
	if req.WorkRate != nil {
		updates["work_rate"] = req.WorkRate.Round(2)
	}
	if req.Position != nil {
		updates["position"] = nullIfEmpty(*req.Position)
	}
	if req.Department != nil {
		updates["department"] = nullIfEmpty(*req.Department)
	}
	if req.Shift != nil {
		updates["shift"] = nullIfEmpty(*req.Shift)
	}
	if req.Phone != nil {
		updates["phone"] = nullIfEmpty(*req.Phone)
	}
	if req.Email != nil {
		updates["email"] = nullIfEmpty(*req.Email)
	}
	if req.MonthCalculationType != nil && *req.MonthCalculationType != "" {
		updates["month_calculation_type"] = *req.MonthCalculationType
	}
	if req.PFEnabled != nil {
		updates["pf_enabled"] = *req.PFEnabled
	}
	if req.ESIEnabled != nil {
		updates["esi_enabled"] = *req.ESIEnabled
	}
	if req.TDSEnabled != nil {
		updates["tds_enabled"] = *req.TDSEnabled
	}
	if req.AllowedLeaves != nil {
		updates["allowed_leaves"] = *req.AllowedLeaves
	}
	if req.TakenLeaves != nil {
		updates["taken_leaves"] = *req.TakenLeaves
	}
	if req.Status != nil && *req.Status != "" {
		updates["status"] = *req.Status
	}

	if len(updates) == 0 {
		return e.GetByID(ctx, id)
	}
	updates["updated_at"] = time.Now()

	setClauses := make([]string, 0, len(updates))
	args := make([]interface{}, 0, len(updates)+1)
	i := 1
	for col, val := range updates {
		setClauses = append(setClauses, fmt.Sprintf("%s = $%d", col, i))
		args = append(args, val)
		i++
	}

	sql := fmt.Sprintf("UPDATE employees SET %s WHERE id = $%d RETURNING %s", strings.Join(setClauses, ", "), i, employeeColumns)
	args = append(args, id)

	updated, err := scanEmployee(q.QueryRow(ctx, sql, args...))
	if err != nil {
		if isNoRows(err) {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		if _, ok := uniqueViolationOn(err); ok {
			return employee.Employee{}, mapEmployeeWriteError(err)
		}
		return employee.Employee{}, fmt.Errorf("failed to update employee with id %s: %w", id, err)
	}
	return updated, nil
}

// Delete implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, e.db)

	dependents := []string{"employee_otps", "attendances", "break_records", "leave_requests", "payroll_records"}
	for _, table := range dependents {
		if _, err := q.Exec(ctx, fmt.Sprintf("DELETE FROM %s WHERE employee_id = $1", table), id); err != nil {
			return fmt.Errorf("failed to delete %s of employee %s: %w", table, id, err)
		}
	}

	tag, err := q.Exec(ctx, `DELETE FROM employees WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete employee with id %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return employee.ErrEmployeeNotFound
	}
	return nil
}

// UpdateStatus implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) UpdateStatus(ctx context.Context, id string, status employee.Status) error {
	q := GetQuerier(ctx, e.db)

	tag, err := q.Exec(ctx, `UPDATE employees SET status = $1, updated_at = NOW() WHERE id = $2`, status, id)
	if err != nil {
		return fmt.Errorf("failed to update status of employee %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return employee.ErrEmployeeNotFound
	}
	return nil
}

// AdjustTakenLeaves implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) AdjustTakenLeaves(ctx context.Context, id string, delta int) error {
	if delta == 0 {
		return nil
	}
	q := GetQuerier(ctx, e.db)

	tag, err := q.Exec(ctx, `
		UPDATE employees
		SET taken_leaves = GREATEST(taken_leaves + $1, 0), updated_at = NOW()
		WHERE id = $2
	`, delta, id)
	if err != nil {
		return fmt.Errorf("failed to adjust taken leaves of employee %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return employee.ErrEmployeeNotFound
	}
	return nil
}

// SyncLeaveStatus implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) SyncLeaveStatus(ctx context.Context, day time.Time) (int64, error) {
	q := GetQuerier(ctx, e.db)

	started, err := q.Exec(ctx, `
		UPDATE employees e
		SET status = 'on-leave', updated_at = NOW()
		WHERE e.status = 'active'
		  AND EXISTS (
			SELECT 1 FROM leave_requests lr
			WHERE lr.employee_id = e.id
			  AND lr.status = 'approved'
			  AND lr.start_date <= $1
			  AND lr.end_date >= $1
		  )
	`, day)
	if err != nil {
		return 0, fmt.Errorf("failed to mark employees on leave: %w", err)
	}

	// MAX is NULL without approved leave, so manual on-leave statuses are kept.
	returned, err := q.Exec(ctx, `
		UPDATE employees e
		SET status = 'active', updated_at = NOW()
		WHERE e.status = 'on-leave'
		  AND (
			SELECT MAX(lr.end_date) FROM leave_requests lr
			WHERE lr.employee_id = e.id AND lr.status = 'approved'
		  ) < $1
	`, day)
	if err != nil {
		return 0, fmt.Errorf("failed to reactivate employees returned from leave: %w", err)
	}
	return started.RowsAffected() + returned.RowsAffected(), nil
}

func nullIfEmpty(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}
