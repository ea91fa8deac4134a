package auth

import "errors"

var (
	ErrInvalidCredentials  = errors.New("Invalid email or password")
	ErrInvalidOTP          = errors.New("invalid or expired OTP")
	ErrInvalidToken        = errors.New("Unauthorized: Invalid Token")
	ErrTokenExpired        = errors.New("token has expired")
	ErrNoToken             = errors.New("No token provided")
	ErrOwnerAccessRequired = errors.New("owner access required")
	ErrAccessDenied        = errors.New("access denied for this employee")
	ErrEmailExists         = errors.New("email already registered")
	ErrAdminNotFound       = errors.New("admin not found")
	ErrOTPNotFound         = errors.New("otp not found")
)
