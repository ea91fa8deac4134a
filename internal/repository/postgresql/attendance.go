package postgresql

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/database"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

const attendanceColumns = `id, employee_id, date, sign_in, sign_out, status, total_hours, created_at`

type attendanceRepositoryImpl struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) attendance.AttendanceRepository {
	return &attendanceRepositoryImpl{db: db}
}

func scanAttendance(row pgx.Row) (attendance.Attendance, error) {
	var a attendance.Attendance
	err := row.Scan(&a.ID, &a.EmployeeID, &a.Date, &a.SignIn, &a.SignOut, &a.Status, &a.TotalHours, &a.CreatedAt)
	return a, err
}

// Create implements attendance.AttendanceRepository.
// The UNIQUE (employee_id, date) constraint makes the existence check and the insert one atomic step.
func (r *attendanceRepositoryImpl) Create(ctx context.Context, record attendance.Attendance) (attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	id, err := uuid.NewV7()
	if err != nil {
		return attendance.Attendance{}, fmt.Errorf("generate attendance id: %w", err)
	}

	query := `
		INSERT INTO attendances (id, employee_id, date, sign_in, status)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (employee_id, date) DO NOTHING
		RETURNING ` + attendanceColumns

	created, err := scanAttendance(q.QueryRow(ctx, query, id.String(), record.EmployeeID, record.Date, record.SignIn, record.Status))
	if err != nil {
		if isNoRows(err) {
			return attendance.Attendance{}, attendance.ErrAlreadyClockedIn
		}
		if isForeignKeyViolation(err) {
			return attendance.Attendance{}, employee.ErrEmployeeNotFound
		}
		return attendance.Attendance{}, fmt.Errorf("failed to create attendance: %w", err)
	}
	return created, nil
}

// GetOpenForUpdate implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) GetOpenForUpdate(ctx context.Context, employeeID string, date time.Time) (attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + attendanceColumns + `
		FROM attendances
		WHERE employee_id = $1 AND date = $2 AND sign_out IS NULL
		FOR UPDATE`

	found, err := scanAttendance(q.QueryRow(ctx, query, employeeID, date))
	if err != nil {
		if isNoRows(err) {
			return attendance.Attendance{}, attendance.ErrNoActiveSession
		}
		return attendance.Attendance{}, fmt.Errorf("failed to get open attendance: %w", err)
	}
	return found, nil
}

// Close implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) Close(ctx context.Context, id string, signOut time.Time, totalHours decimal.Decimal) (attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE attendances
		SET sign_out = $1, total_hours = $2
		WHERE id = $3 AND sign_out IS NULL
		RETURNING ` + attendanceColumns

	closed, err := scanAttendance(q.QueryRow(ctx, query, signOut, totalHours, id))
	if err != nil {
		if isNoRows(err) {
			return attendance.Attendance{}, attendance.ErrNoActiveSession
		}
		return attendance.Attendance{}, fmt.Errorf("failed to close attendance %s: %w", id, err)
	}
	return closed, nil
}

// UpdateStatus implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) UpdateStatus(ctx context.Context, id string, status attendance.Status) (attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	query := `UPDATE attendances SET status = $1 WHERE id = $2 RETURNING ` + attendanceColumns

	updated, err := scanAttendance(q.QueryRow(ctx, query, status, id))
	if err != nil {
		if isNoRows(err) {
			return attendance.Attendance{}, attendance.ErrAttendanceNotFound
		}
		return attendance.Attendance{}, fmt.Errorf("failed to update attendance status: %w", err)
	}
	return updated, nil
}

// List implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) List(ctx context.Context, filter attendance.AttendanceFilter) ([]attendance.AttendanceWithEmployee, error) {
	q := GetQuerier(ctx, r.db)

	var conditions []string
	var args []interface{}
	add := func(cond string, val interface{}) {
		args = append(args, val)
		conditions = append(conditions, fmt.Sprintf(cond, len(args)))
	}

	if filter.Date != nil {
		add("a.date = $%d", *filter.Date)
	}
	if filter.StartDate != nil {
		add("a.date >= $%d", *filter.StartDate)
	}
	if filter.EndDate != nil {
		add("a.date <= $%d", *filter.EndDate)
	}
	if filter.EmployeeID != nil {
		add("a.employee_id = $%d", *filter.EmployeeID)
	}
	if filter.Status != nil {
		add("a.status = $%d", *filter.Status)
	}

	query := `
		SELECT a.id, a.employee_id, a.date, a.sign_in, a.sign_out, a.status, a.total_hours, a.created_at,
			e.full_name, e.position, e.department
		FROM attendances a
		JOIN employees e ON e.id = a.employee_id`
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY a.date DESC, a.sign_in DESC"

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance: %w", err)
	}
	defer rows.Close()

	records := make([]attendance.AttendanceWithEmployee, 0)
	for rows.Next() {
		var rec attendance.AttendanceWithEmployee
		if err := rows.Scan(
			&rec.ID, &rec.EmployeeID, &rec.Date, &rec.SignIn, &rec.SignOut, &rec.Status, &rec.TotalHours, &rec.CreatedAt,
			&rec.EmployeeName, &rec.Position, &rec.Department,
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
