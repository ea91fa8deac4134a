package postgresql

import (
	"context"
	"fmt"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/auth"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/database"
)

type otpRepositoryImpl struct {
	db *database.DB
}

func NewOTPRepository(db *database.DB) auth.OTPRepository {
	return &otpRepositoryImpl{db: db}
}

// Upsert implements auth.OTPRepository.
func (o *otpRepositoryImpl) Upsert(ctx context.Context, otp auth.OTP) error {
	q := GetQuerier(ctx, o.db)

	_, err := q.Exec(ctx, `
		INSERT INTO employee_otps (identifier, employee_id, code_hash, expires_at, attempts)
		VALUES ($1, $2, $3, $4, 0)
		ON CONFLICT (identifier) DO UPDATE
		SET employee_id = EXCLUDED.employee_id,
			code_hash = EXCLUDED.code_hash,
			expires_at = EXCLUDED.expires_at,
			attempts = 0,
			created_at = NOW()
	`, otp.Identifier, otp.EmployeeID, otp.CodeHash, otp.ExpiresAt)
	if err != nil {
		return fmt.Errorf("failed to store otp: %w", err)
	}
	return nil
}

// GetByIdentifier implements auth.OTPRepository.
func (o *otpRepositoryImpl) GetByIdentifier(ctx context.Context, identifier string) (auth.OTP, error) {
	q := GetQuerier(ctx, o.db)

	var otp auth.OTP
	err := q.QueryRow(ctx, `
		SELECT identifier, employee_id, code_hash, expires_at, attempts, created_at
		FROM employee_otps
		WHERE identifier = $1
	`, identifier).Scan(&otp.Identifier, &otp.EmployeeID, &otp.CodeHash, &otp.ExpiresAt, &otp.Attempts, &otp.CreatedAt)
	if err != nil {
		if isNoRows(err) {
			return auth.OTP{}, auth.ErrOTPNotFound
		}
		return auth.OTP{}, fmt.Errorf("failed to get otp: %w", err)
	}
	return otp, nil
}

// IncrementAttempts implements auth.OTPRepository.
func (o *otpRepositoryImpl) IncrementAttempts(ctx context.Context, identifier string) (int, error) {
	q := GetQuerier(ctx, o.db)

	var attempts int
	err := q.QueryRow(ctx, `
		UPDATE employee_otps SET attempts = attempts + 1
		WHERE identifier = $1
		RETURNING attempts
	`, identifier).Scan(&attempts)
	if err != nil {
		if isNoRows(err) {
			return 0, auth.ErrOTPNotFound
		}
		return 0, fmt.Errorf("failed to increment otp attempts: %w", err)
	}
	return attempts, nil
}

// Delete implements auth.OTPRepository.
func (o *otpRepositoryImpl) Delete(ctx context.Context, identifier string) error {
	q := GetQuerier(ctx, o.db)

	if _, err := q.Exec(ctx, `DELETE FROM employee_otps WHERE identifier = $1`, identifier); err != nil {
		return fmt.Errorf("failed to delete otp: %w", err)
	}
	return nil
}
