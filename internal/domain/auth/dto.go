package auth

import (
	"strings"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/validator"
)

type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email,max=254"`
	Password string `json:"password" validate:"required,min=8,max=72"`
}

func (r *RegisterRequest) Validate() error {
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
	return validator.Check(r).Err()
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

func (r *LoginRequest) Validate() error {
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
	return validator.Check(r).Err()
}

// SendOTPRequest accepts the identifier under "identifier", "email" or "phone".
type SendOTPRequest struct {
	Identifier string `json:"identifier"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
}

func (r *SendOTPRequest) Validate() error {
	r.Identifier = normalizeIdentifier(r.Identifier, r.Email, r.Phone)
	var errs validator.ValidationErrors
	if r.Identifier == "" {
		errs.Add("identifier", "email or phone is required")
	} else if !IsEmailIdentifier(r.Identifier) && !validator.IsValidPhoneNumber(r.Identifier) {
		errs.Add("identifier", "must be a valid email address or phone number")
	}
	return errs.Err()
}

type VerifyOTPRequest struct {
	Identifier string `json:"identifier"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
	OTP        string `json:"otp"`
}

func (r *VerifyOTPRequest) Validate() error {
	r.Identifier = normalizeIdentifier(r.Identifier, r.Email, r.Phone)
	r.OTP = strings.TrimSpace(r.OTP)
	var errs validator.ValidationErrors
	if r.Identifier == "" {
		errs.Add("identifier", "email or phone is required")
	}
	if r.OTP == "" {
		errs.Add("otp", "is required")
	}
	return errs.Err()
}

func normalizeIdentifier(candidates ...string) string {
	for _, c := range candidates {
		c = strings.TrimSpace(c)
		if c == "" {
			continue
		}
		if IsEmailIdentifier(c) {
			return strings.ToLower(c)
		}
		return validator.NormalizePhone(c)
	}
	return ""
}

func IsEmailIdentifier(identifier string) bool {
	return strings.Contains(identifier, "@")
}

type RegisterResponse struct {
	AdminID string `json:"adminId"`
	Email   string `json:"email"`
}

type TokenResponse struct {
	Token     string `json:"token"`
	ExpiresAt int64  `json:"expires_at"`
}

type SendOTPResponse struct {
	Channel   string `json:"channel"`
	ExpiresAt int64  `json:"expires_at"`
}

type VerifyOTPResponse struct {
	Token     string                    `json:"token"`
	ExpiresAt int64                     `json:"expires_at"`
	User      employee.EmployeeResponse `json:"user"`
}
