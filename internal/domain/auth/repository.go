package auth

import "context"

type AdminRepository interface {
	Create(ctx context.Context, admin Admin) (Admin, error)
	GetByEmail(ctx context.Context, email string) (Admin, error)
	Count(ctx context.Context) (int64, error)
}

type OTPRepository interface {
	// Upsert replaces any pending code for the identifier and resets attempts.
	Upsert(ctx context.Context, otp OTP) error
	GetByIdentifier(ctx context.Context, identifier string) (OTP, error)
	// IncrementAttempts returns the attempt count after the increment.
	IncrementAttempts(ctx context.Context, identifier string) (int, error)
	Delete(ctx context.Context, identifier string) error
}
