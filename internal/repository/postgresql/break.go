package postgresql

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/breaks"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/database"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const breakColumns = `id, employee_id, date, start_time, end_time, duration_minutes, type, created_at`

type breakRepositoryImpl struct {
	db *database.DB
}

func NewBreakRepository(db *database.DB) breaks.BreakRepository {
	return &breakRepositoryImpl{db: db}
}

func scanBreak(row pgx.Row) (breaks.BreakRecord, error) {
	var b breaks.BreakRecord
	err := row.Scan(&b.ID, &b.EmployeeID, &b.Date, &b.StartTime, &b.EndTime, &b.DurationMinutes, &b.Type, &b.CreatedAt)
	return b, err
}

// Create implements breaks.BreakRepository.
// The partial unique index on (employee_id, date) WHERE end_time IS NULL rejects a second open break.
func (r *breakRepositoryImpl) Create(ctx context.Context, record breaks.BreakRecord) (breaks.BreakRecord, error) {
	q := GetQuerier(ctx, r.db)

	id, err := uuid.NewV7()
	if err != nil {
		return breaks.BreakRecord{}, fmt.Errorf("generate break id: %w", err)
	}

	query := `
		INSERT INTO break_records (id, employee_id, date, start_time, type)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING ` + breakColumns

	created, err := scanBreak(q.QueryRow(ctx, query, id.String(), record.EmployeeID, record.Date, record.StartTime, record.Type))
	if err != nil {
		if _, ok := uniqueViolationOn(err); ok {
			return breaks.BreakRecord{}, breaks.ErrAlreadyOnBreak
		}
		if isForeignKeyViolation(err) {
			return breaks.BreakRecord{}, employee.ErrEmployeeNotFound
		}
		return breaks.BreakRecord{}, fmt.Errorf("failed to start break: %w", err)
	}
	return created, nil
}

// GetOpenForUpdate implements breaks.BreakRepository.
func (r *breakRepositoryImpl) GetOpenForUpdate(ctx context.Context, employeeID string, date time.Time) (breaks.BreakRecord, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + breakColumns + `
		FROM break_records
		WHERE employee_id = $1 AND date = $2 AND end_time IS NULL
		FOR UPDATE`

	found, err := scanBreak(q.QueryRow(ctx, query, employeeID, date))
	if err != nil {
		if isNoRows(err) {
			return breaks.BreakRecord{}, breaks.ErrNoActiveBreak
		}
		return breaks.BreakRecord{}, fmt.Errorf("failed to get open break: %w", err)
	}
	return found, nil
}

// Close implements breaks.BreakRepository.
func (r *breakRepositoryImpl) Close(ctx context.Context, id string, endTime time.Time, durationMinutes int) (breaks.BreakRecord, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE break_records
		SET end_time = $1, duration_minutes = $2
		WHERE id = $3 AND end_time IS NULL
		RETURNING ` + breakColumns

	closed, err := scanBreak(q.QueryRow(ctx, query, endTime, durationMinutes, id))
	if err != nil {
		if isNoRows(err) {
			return breaks.BreakRecord{}, breaks.ErrNoActiveBreak
		}
		return breaks.BreakRecord{}, fmt.Errorf("failed to end break %s: %w", id, err)
	}
	return closed, nil
}

// List implements breaks.BreakRepository.
func (r *breakRepositoryImpl) List(ctx context.Context, filter breaks.BreakFilter) ([]breaks.BreakWithEmployee, error) {
	q := GetQuerier(ctx, r.db)

	var conditions []string
	var args []interface{}
	if filter.Date != nil {
		args = append(args, *filter.Date)
		conditions = append(conditions, fmt.Sprintf("b.date = $%d", len(args)))
	}
	if filter.EmployeeID != nil {
		args = append(args, *filter.EmployeeID)
		conditions = append(conditions, fmt.Sprintf("b.employee_id = $%d", len(args)))
	}

	query := `
		SELECT b.id, b.employee_id, b.date, b.start_time, b.end_time, b.duration_minutes, b.type, b.created_at,
			e.full_name
		FROM break_records b
		JOIN employees e ON e.id = b.employee_id`
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY b.start_time DESC"

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list breaks: %w", err)
	}
	defer rows.Close()

	records := make([]breaks.BreakWithEmployee, 0)
	for rows.Next() {
		var rec breaks.BreakWithEmployee
		if err := rows.Scan(
			&rec.ID, &rec.EmployeeID, &rec.Date, &rec.StartTime, &rec.EndTime, &rec.DurationMinutes, &rec.Type, &rec.CreatedAt,
			&rec.EmployeeName,
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
