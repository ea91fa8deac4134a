package postgresql

import (
	"context"
	"fmt"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/auth"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/database"
	"github.com/google/uuid"
)

type adminRepositoryImpl struct {
	db *database.DB
}

func NewAdminRepository(db *database.DB) auth.AdminRepository {
	return &adminRepositoryImpl{db: db}
}

// Create implements auth.AdminRepository.
func (a *adminRepositoryImpl) Create(ctx context.Context, admin auth.Admin) (auth.Admin, error) {
	q := GetQuerier(ctx, a.db)

	id, err := uuid.NewV7()
	if err != nil {
		return auth.Admin{}, fmt.Errorf("generate admin id: %w", err)
	}

	var created auth.Admin
	err = q.QueryRow(ctx, `
		INSERT INTO admins (id, email, password_hash)
		VALUES ($1, $2, $3)
		RETURNING id, email, password_hash, created_at
	`, id.String(), admin.Email, admin.PasswordHash).Scan(&created.ID, &created.Email, &created.PasswordHash, &created.CreatedAt)
	if err != nil {
		if _, ok := uniqueViolationOn(err); ok {
			return auth.Admin{}, auth.ErrEmailExists
		}
		return auth.Admin{}, fmt.Errorf("failed to create admin: %w", err)
	}
	return created, nil
}

// GetByEmail implements auth.AdminRepository.
func (a *adminRepositoryImpl) GetByEmail(ctx context.Context, email string) (auth.Admin, error) {
	q := GetQuerier(ctx, a.db)

	var found auth.Admin
	err := q.QueryRow(ctx, `
		SELECT id, email, password_hash, created_at
		FROM admins
		WHERE email = $1
	`, email).Scan(&found.ID, &found.Email, &found.PasswordHash, &found.CreatedAt)
	if err != nil {
		if isNoRows(err) {
			return auth.Admin{}, auth.ErrAdminNotFound
		}
		return auth.Admin{}, fmt.Errorf("failed to get admin by email: %w", err)
	}
	return found, nil
}

// Count implements auth.AdminRepository.
func (a *adminRepositoryImpl) Count(ctx context.Context) (int64, error) {
	q := GetQuerier(ctx, a.db)

	var count int64
	if err := q.QueryRow(ctx, `SELECT COUNT(*) FROM admins`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count admins: %w", err)
	}
	return count, nil
}
