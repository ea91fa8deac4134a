package postgresql

import (
	"context"
	"fmt"
	"strings"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/holiday"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/validator"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const holidayColumns = `id, name, date, description, created_at`

type holidayRepositoryImpl struct {
	db *database.DB
}

func NewHolidayRepository(db *database.DB) holiday.HolidayRepository {
	return &holidayRepositoryImpl{db: db}
}

func scanHoliday(row pgx.Row) (holiday.Holiday, error) {
	var h holiday.Holiday
	err := row.Scan(&h.ID, &h.Name, &h.Date, &h.Description, &h.CreatedAt)
	return h, err
}

// Create implements holiday.HolidayRepository.
func (r *holidayRepositoryImpl) Create(ctx context.Context, h holiday.Holiday) (holiday.Holiday, error) {
	q := GetQuerier(ctx, r.db)

	id, err := uuid.NewV7()
	if err != nil {
		return holiday.Holiday{}, fmt.Errorf("generate holiday id: %w", err)
	}

	created, err := scanHoliday(q.QueryRow(ctx, `
		INSERT INTO holidays (id, name, date, description)
		VALUES ($1, $2, $3, $4)
		RETURNING `+holidayColumns, id.String(), h.Name, h.Date, h.Description))
	if err != nil {
		return holiday.Holiday{}, fmt.Errorf("failed to create holiday: %w", err)
	}
	return created, nil
}

// Update implements holiday.HolidayRepository.
func (r *holidayRepositoryImpl) Update(ctx context.Context, id string, req holiday.UpdateHolidayRequest) (holiday.Holiday, error) {
	q := GetQuerier(ctx, r.db)

	var setClauses []string
	var args []interface{}
	if req.Name != nil {
		args = append(args, *req.Name)
		setClauses = append(setClauses, fmt.Sprintf("name = $%d", len(args)))
	}
	if req.Date != nil {
		date, _ := validator.ParseDate(*req.Date)
		args = append(args, date)
		setClauses = append(setClauses, fmt.Sprintf("date = $%d", len(args)))
	}
	if req.Description != nil {
		args = append(args, nullIfEmpty(*req.Description))
		setClauses = append(setClauses, fmt.Sprintf("description = $%d", len(args)))
	}
	if len(setClauses) == 0 {
		return holiday.Holiday{}, fmt.Errorf("no fields to update")
	}

	args = append(args, id)
	query := fmt.Sprintf("UPDATE holidays SET %s WHERE id = $%d RETURNING %s", strings.Join(setClauses, ", "), len(args), holidayColumns)

	updated, err := scanHoliday(q.QueryRow(ctx, query, args...))
	if err != nil {
		if isNoRows(err) {
			return holiday.Holiday{}, holiday.ErrHolidayNotFound
		}
		return holiday.Holiday{}, fmt.Errorf("failed to update holiday: %w", err)
	}
	return updated, nil
}

// Delete implements holiday.HolidayRepository.
func (r *holidayRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM holidays WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete holiday: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return holiday.ErrHolidayNotFound
	}
	return nil
}

// List implements holiday.HolidayRepository.
func (r *holidayRepositoryImpl) List(ctx context.Context, filter holiday.HolidayFilter) ([]holiday.Holiday, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + holidayColumns + ` FROM holidays`
	var args []interface{}
	if filter.Year != nil {
		query += ` WHERE EXTRACT(YEAR FROM date) = $1`
		args = append(args, *filter.Year)
	}
	query += ` ORDER BY date ASC`

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list holidays: %w", err)
	}
	defer rows.Close()

	holidays := make([]holiday.Holiday, 0)
	for rows.Next() {
		h, err := scanHoliday(rows)
		if err != nil {
			return nil, err
		}
		holidays = append(holidays, h)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return holidays, nil
}
