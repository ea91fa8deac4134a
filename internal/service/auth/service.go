package auth

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"math/big"
	"time"

	"github.com/cmlabs-hris/attendance-backend-go/internal/config"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/auth"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/email"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/jwt"
	"golang.org/x/crypto/bcrypt"
)

const otpDigits = 6

type AuthServiceImpl struct {
	adminRepo    auth.AdminRepository
	otpRepo      auth.OTPRepository
	employeeRepo employee.EmployeeRepository
	jwtService   jwt.Service
	emailService email.EmailService
	otpConfig    config.OTPConfig
	now          func() time.Time
	generateCode func() (string, error)
}

func NewAuthService(
	adminRepo auth.AdminRepository,
	otpRepo auth.OTPRepository,
	employeeRepo employee.EmployeeRepository,
	jwtService jwt.Service,
	emailService email.EmailService,
	otpConfig config.OTPConfig,
) auth.AuthService {
	return &AuthServiceImpl{
		adminRepo:    adminRepo,
		otpRepo:      otpRepo,
		employeeRepo: employeeRepo,
		jwtService:   jwtService,
		emailService: emailService,
		otpConfig:    otpConfig,
		now:          time.Now,
		generateCode: randomCode,
	}
}

func (a *AuthServiceImpl) hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

// Register implements auth.AuthService.
func (a *AuthServiceImpl) Register(ctx context.Context, req auth.RegisterRequest) (auth.RegisterResponse, error) {
	if err := req.Validate(); err != nil {
		return auth.RegisterResponse{}, err
	}

	count, err := a.adminRepo.Count(ctx)
	if err != nil {
		return auth.RegisterResponse{}, err
	}
	if count > 0 {
		p, ok := auth.PrincipalFrom(ctx)
		if !ok {
			return auth.RegisterResponse{}, auth.ErrNoToken
		}
		if !p.IsOwner() {
			return auth.RegisterResponse{}, auth.ErrOwnerAccessRequired
		}
	}

	hash, err := a.hashPassword(req.Password)
	if err != nil {
		return auth.RegisterResponse{}, err
	}

	admin, err := a.adminRepo.Create(ctx, auth.Admin{Email: req.Email, PasswordHash: hash})
	if err != nil {
		return auth.RegisterResponse{}, err
	}

	slog.Info("owner account created", "admin_id", admin.ID)
	return auth.RegisterResponse{AdminID: admin.ID, Email: admin.Email}, nil
}

// Login implements auth.AuthService.
func (a *AuthServiceImpl) Login(ctx context.Context, req auth.LoginRequest) (auth.TokenResponse, error) {
	if err := req.Validate(); err != nil {
		return auth.TokenResponse{}, err
	}

	admin, err := a.adminRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, auth.ErrAdminNotFound) {
			return auth.TokenResponse{}, auth.ErrInvalidCredentials
		}
		return auth.TokenResponse{}, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(req.Password)); err != nil {
		return auth.TokenResponse{}, auth.ErrInvalidCredentials
	}

	token, expiresAt, err := a.jwtService.GenerateOwnerToken(admin.ID, admin.Email)
	if err != nil {
		return auth.TokenResponse{}, fmt.Errorf("failed to generate token: %w", err)
	}

	return auth.TokenResponse{Token: token, ExpiresAt: expiresAt}, nil
}

// SendOTP implements auth.AuthService.
func (a *AuthServiceImpl) SendOTP(ctx context.Context, req auth.SendOTPRequest) (auth.SendOTPResponse, error) {
	if err := req.Validate(); err != nil {
		return auth.SendOTPResponse{}, err
	}

	emp, err := a.employeeByIdentifier(ctx, req.Identifier)
	if err != nil {
		return auth.SendOTPResponse{}, err
	}

	code := a.otpConfig.MockCode
	if !a.otpConfig.MockMode {
		if code, err = a.generateCode(); err != nil {
			return auth.SendOTPResponse{}, fmt.Errorf("failed to generate otp: %w", err)
		}
	}

	expiresAt := a.now().Add(a.otpConfig.TTL)
	if err := a.otpRepo.Upsert(ctx, auth.OTP{
		Identifier: req.Identifier,
		EmployeeID: emp.ID,
		CodeHash:   hashCode(code),
		ExpiresAt:  expiresAt,
	}); err != nil {
		return auth.SendOTPResponse{}, err
	}

	channel := "phone"
	if auth.IsEmailIdentifier(req.Identifier) {
		channel = "email"
		if err := a.emailService.SendOTP(ctx, req.Identifier, emp.FullName, code, expiresAt); err != nil {
			return auth.SendOTPResponse{}, fmt.Errorf("failed to send email: %w", err)
		}
	} else {
		slog.Info("otp issued for phone identifier, no SMS provider configured", "employee_id", emp.ID)
	}

	return auth.SendOTPResponse{Channel: channel, ExpiresAt: expiresAt.Unix()}, nil
}

// VerifyOTP implements auth.AuthService.
func (a *AuthServiceImpl) VerifyOTP(ctx context.Context, req auth.VerifyOTPRequest) (auth.VerifyOTPResponse, error) {
	if err := req.Validate(); err != nil {
		return auth.VerifyOTPResponse{}, err
	}

	if a.otpConfig.MockMode && req.OTP == a.otpConfig.MockCode {
		emp, err := a.employeeByIdentifier(ctx, req.Identifier)
		if err != nil {
			return auth.VerifyOTPResponse{}, err
		}
		if err := a.otpRepo.Delete(ctx, req.Identifier); err != nil {
			return auth.VerifyOTPResponse{}, err
		}
		return a.issueEmployeeSession(emp)
	}

	otp, err := a.otpRepo.GetByIdentifier(ctx, req.Identifier)
	if err != nil {
		if errors.Is(err, auth.ErrOTPNotFound) {
			return auth.VerifyOTPResponse{}, auth.ErrInvalidOTP
		}
		return auth.VerifyOTPResponse{}, err
	}

	if otp.Expired(a.now()) || otp.Attempts >= a.otpConfig.MaxAttempts {
		if err := a.otpRepo.Delete(ctx, req.Identifier); err != nil {
			return auth.VerifyOTPResponse{}, err
		}
		return auth.VerifyOTPResponse{}, auth.ErrInvalidOTP
	}

	if subtle.ConstantTimeCompare([]byte(hashCode(req.OTP)), []byte(otp.CodeHash)) != 1 {
		attempts, err := a.otpRepo.IncrementAttempts(ctx, req.Identifier)
		if err != nil && !errors.Is(err, auth.ErrOTPNotFound) {
			return auth.VerifyOTPResponse{}, err
		}
		if attempts >= a.otpConfig.MaxAttempts {
			slog.Warn("otp burned after too many attempts", "employee_id", otp.EmployeeID)
			if err := a.otpRepo.Delete(ctx, req.Identifier); err != nil {
				return auth.VerifyOTPResponse{}, err
			}
		}
		return auth.VerifyOTPResponse{}, auth.ErrInvalidOTP
	}

	if err := a.otpRepo.Delete(ctx, req.Identifier); err != nil {
		return auth.VerifyOTPResponse{}, err
	}

	emp, err := a.employeeRepo.GetByID(ctx, otp.EmployeeID)
	if err != nil {
		return auth.VerifyOTPResponse{}, err
	}
	return a.issueEmployeeSession(emp)
}

func (a *AuthServiceImpl) issueEmployeeSession(emp employee.Employee) (auth.VerifyOTPResponse, error) {
	token, expiresAt, err := a.jwtService.GenerateEmployeeToken(emp.ID)
	if err != nil {
		return auth.VerifyOTPResponse{}, fmt.Errorf("failed to generate token: %w", err)
	}
	return auth.VerifyOTPResponse{
		Token:     token,
		ExpiresAt: expiresAt,
		User:      employee.NewEmployeeResponse(emp),
	}, nil
}

func (a *AuthServiceImpl) employeeByIdentifier(ctx context.Context, identifier string) (employee.Employee, error) {
	if auth.IsEmailIdentifier(identifier) {
		return a.employeeRepo.GetByEmail(ctx, identifier)
	}
	return a.employeeRepo.GetByPhone(ctx, identifier)
}

func hashCode(code string) string {
	sum := sha256.Sum256([]byte(code))
	return hex.EncodeToString(sum[:])
}

func randomCode() (string, error) {
	limit := big.NewInt(1)
	for i := 0; i < otpDigits; i++ {
		limit.Mul(limit, big.NewInt(10))
	}
	n, err := rand.Int(rand.Reader, limit)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%0*d", otpDigits, n.Int64()), nil
}
