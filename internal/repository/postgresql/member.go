package postgresql

import (
	"context"
	"fmt"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/member"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/database"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const memberColumns = `id, name, number, status, created_at`

type memberRepositoryImpl struct {
	db *database.DB
}

func NewMemberRepository(db *database.DB) member.MemberRepository {
	return &memberRepositoryImpl{db: db}
}

func scanMember(row pgx.Row) (member.NewMember, error) {
	var m member.NewMember
	err := row.Scan(&m.ID, &m.Name, &m.Number, &m.Status, &m.CreatedAt)
	return m, err
}

// Create implements member.MemberRepository.
func (r *memberRepositoryImpl) Create(ctx context.Context, m member.NewMember) (member.NewMember, error) {
	q := GetQuerier(ctx, r.db)

	id, err := uuid.NewV7()
	if err != nil {
		return member.NewMember{}, fmt.Errorf("generate member id: %w", err)
	}

	created, err := scanMember(q.QueryRow(ctx, `
		INSERT INTO new_members (id, name, number, status)
		VALUES ($1, $2, $3, $4)
		RETURNING `+memberColumns, id.String(), m.Name, m.Number, m.Status))
	if err != nil {
		return member.NewMember{}, fmt.Errorf("failed to create member: %w", err)
	}
	return created, nil
}

// GetByIDForUpdate implements member.MemberRepository.
func (r *memberRepositoryImpl) GetByIDForUpdate(ctx context.Context, id string) (member.NewMember, error) {
	q := GetQuerier(ctx, r.db)

	found, err := scanMember(q.QueryRow(ctx, `SELECT `+memberColumns+` FROM new_members WHERE id = $1 FOR UPDATE`, id))
	if err != nil {
		if isNoRows(err) {
			return member.NewMember{}, member.ErrMemberNotFound
		}
		return member.NewMember{}, fmt.Errorf("failed to get member: %w", err)
	}
	return found, nil
}

// List implements member.MemberRepository.
func (r *memberRepositoryImpl) List(ctx context.Context) ([]member.NewMember, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, `SELECT `+memberColumns+` FROM new_members ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list members: %w", err)
	}
	defer rows.Close()

	members := make([]member.NewMember, 0)
	for rows.Next() {
		m, err := scanMember(rows)
		if err != nil {
			return nil, err
		}
		members = append(members, m)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return members, nil
}

// Delete implements member.MemberRepository.
func (r *memberRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM new_members WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete member: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return member.ErrMemberNotFound
	}
	return nil
}
