package auth

import "context"

type AuthService interface {
	// Register creates an owner account. The first account may be created anonymously;
	// later ones require an owner principal in ctx.
	Register(ctx context.Context, req RegisterRequest) (RegisterResponse, error)
	Login(ctx context.Context, req LoginRequest) (TokenResponse, error)
	SendOTP(ctx context.Context, req SendOTPRequest) (SendOTPResponse, error)
	VerifyOTP(ctx context.Context, req VerifyOTPRequest) (VerifyOTPResponse, error)
}
