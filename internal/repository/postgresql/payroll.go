package postgresql

import (
	"context"
	"fmt"
	"strings"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/payroll"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/utils"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const payrollColumns = `id, employee_id, month, year, present_days, total_days, gross_salary, net_payable, status, created_at, updated_at`

type payrollRepository struct {
	db *database.DB
}

func NewPayrollRepository(db *database.DB) payroll.PayrollRepository {
	return &payrollRepository{db: db}
}

func scanPayrollRecord(row pgx.Row) (payroll.PayrollRecord, error) {
	var rec payroll.PayrollRecord
	err := row.Scan(
		&rec.ID, &rec.EmployeeID, &rec.Month, &rec.Year, &rec.PresentDays, &rec.TotalDays,
		&rec.GrossSalary, &rec.NetPayable, &rec.Status, &rec.CreatedAt, &rec.UpdatedAt,
	)
	return rec, err
}

// CountPresentDays implements payroll.PayrollRepository.
func (r *payrollRepository) CountPresentDays(ctx context.Context, month, year int) (map[string]int, error) {
	q := GetQuerier(ctx, r.db)

	start, end := utils.MonthRange(month, year)
	rows, err := q.Query(ctx, `
		SELECT employee_id, COUNT(*)
		FROM attendances
		WHERE date >= $1 AND date < $2 AND status IN ('present', 'late')
		GROUP BY employee_id
	`, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to count present days: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var employeeID string
		var days int
		if err := rows.Scan(&employeeID, &days); err != nil {
			return nil, err
		}
		counts[employeeID] = days
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return counts, nil
}

// UpsertDraft implements payroll.PayrollRepository.
func (r *payrollRepository) UpsertDraft(ctx context.Context, record payroll.PayrollRecord) (payroll.PayrollRecord, error) {
	q := GetQuerier(ctx, r.db)

	id, err := uuid.NewV7()
	if err != nil {
		return payroll.PayrollRecord{}, fmt.Errorf("generate payroll id: %w", err)
	}

	query := `
		INSERT INTO payroll_records (
			id, employee_id, month, year, present_days, total_days, gross_salary, net_payable, status
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, 'draft')
		ON CONFLICT (employee_id, month, year) DO UPDATE
		SET present_days = EXCLUDED.present_days,
			total_days = EXCLUDED.total_days,
			gross_salary = EXCLUDED.gross_salary,
			net_payable = EXCLUDED.net_payable,
			updated_at = NOW()
		WHERE payroll_records.status = 'draft'
		RETURNING ` + payrollColumns

	saved, err := scanPayrollRecord(q.QueryRow(ctx, query,
		id.String(), record.EmployeeID, record.Month, record.Year, record.PresentDays, record.TotalDays,
		record.GrossSalary, record.NetPayable,
	))
	if err == nil {
		return saved, nil
	}
	if !isNoRows(err) {
		return payroll.PayrollRecord{}, fmt.Errorf("failed to upsert payroll record: %w", err)
	}

	// The period is already approved or paid; report what is stored.
	stored, err := scanPayrollRecord(q.QueryRow(ctx, `
		SELECT `+payrollColumns+`
		FROM payroll_records
		WHERE employee_id = $1 AND month = $2 AND year = $3
	`, record.EmployeeID, record.Month, record.Year))
	if err != nil {
		return payroll.PayrollRecord{}, fmt.Errorf("failed to read locked payroll record: %w", err)
	}
	return stored, nil
}

// GetByID implements payroll.PayrollRepository.
func (r *payrollRepository) GetByID(ctx context.Context, id string) (payroll.PayrollRecord, error) {
	q := GetQuerier(ctx, r.db)

	rec, err := scanPayrollRecord(q.QueryRow(ctx, `SELECT `+payrollColumns+` FROM payroll_records WHERE id = $1`, id))
	if err != nil {
		if isNoRows(err) {
			return payroll.PayrollRecord{}, payroll.ErrPayrollRecordNotFound
		}
		return payroll.PayrollRecord{}, fmt.Errorf("failed to get payroll record: %w", err)
	}
	return rec, nil
}

// UpdateStatus implements payroll.PayrollRepository.
func (r *payrollRepository) UpdateStatus(ctx context.Context, id string, status payroll.PayrollStatus) (payroll.PayrollRecord, error) {
	q := GetQuerier(ctx, r.db)

	rec, err := scanPayrollRecord(q.QueryRow(ctx, `
		UPDATE payroll_records
		SET status = $1, updated_at = NOW()
		WHERE id = $2
		RETURNING `+payrollColumns, status, id))
	if err != nil {
		if isNoRows(err) {
			return payroll.PayrollRecord{}, payroll.ErrPayrollRecordNotFound
		}
		return payroll.PayrollRecord{}, fmt.Errorf("failed to update payroll status: %w", err)
	}
	return rec, nil
}

// List implements payroll.PayrollRepository.
func (r *payrollRepository) List(ctx context.Context, filter payroll.PayrollFilter) ([]payroll.PayrollRecord, error) {
	q := GetQuerier(ctx, r.db)

	var conditions []string
	var args []interface{}
	if filter.Month != nil {
		args = append(args, *filter.Month)
		conditions = append(conditions, fmt.Sprintf("pr.month = $%d", len(args)))
	}
	if filter.Year != nil {
		args = append(args, *filter.Year)
		conditions = append(conditions, fmt.Sprintf("pr.year = $%d", len(args)))
	}
	if filter.EmployeeID != nil {
		args = append(args, *filter.EmployeeID)
		conditions = append(conditions, fmt.Sprintf("pr.employee_id = $%d", len(args)))
	}
	if filter.Status != nil {
		args = append(args, *filter.Status)
		conditions = append(conditions, fmt.Sprintf("pr.status = $%d", len(args)))
	}

	query := `
		SELECT pr.id, pr.employee_id, pr.month, pr.year, pr.present_days, pr.total_days,
			pr.gross_salary, pr.net_payable, pr.status, pr.created_at, pr.updated_at,
			e.full_name, e.department, e.position
		FROM payroll_records pr
		JOIN employees e ON e.id = pr.employee_id`
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY pr.year DESC, pr.month DESC, e.full_name ASC"

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list payroll records: %w", err)
	}
	defer rows.Close()

	records := make([]payroll.PayrollRecord, 0)
	for rows.Next() {
		var rec payroll.PayrollRecord
		if err := rows.Scan(
			&rec.ID, &rec.EmployeeID, &rec.Month, &rec.Year, &rec.PresentDays, &rec.TotalDays,
			&rec.GrossSalary, &rec.NetPayable, &rec.Status, &rec.CreatedAt, &rec.UpdatedAt,
			&rec.EmployeeName, &rec.Department, &rec.Position,
		); err != nil {
			return nil, err
		}
		records = append(records, rec)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return records, nil
}
