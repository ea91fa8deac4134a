package jwt

import (
	"context"
	"errors"
	"time"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/auth"
	"github.com/go-chi/jwtauth/v5"
	"github.com/lestrrat-go/jwx/v2/jwt"
)

const tokenTypeAccess = "access"

type Service interface {
	GenerateOwnerToken(adminID string, email string) (token string, expiresAt int64, err error)
	GenerateEmployeeToken(employeeID string) (token string, expiresAt int64, err error)
	JWTAuth() *jwtauth.JWTAuth
}

type JWTService struct {
	ownerExpiration    time.Duration
	employeeExpiration time.Duration
	tokenAuth          *jwtauth.JWTAuth
	now                func() time.Time
}

func NewJWTService(secretKey string, ownerExpiration, employeeExpiration time.Duration) *JWTService {
	return &JWTService{
		ownerExpiration:    ownerExpiration,
		employeeExpiration: employeeExpiration,
		tokenAuth:          jwtauth.New("HS256", []byte(secretKey), nil, jwt.WithAcceptableSkew(30*time.Second)),
		now:                time.Now,
	}
}

func (j *JWTService) JWTAuth() *jwtauth.JWTAuth {
	return j.tokenAuth
}

func (j *JWTService) GenerateOwnerToken(adminID string, email string) (token string, expiresAt int64, err error) {
	expiresAt = j.now().Add(j.ownerExpiration).Unix()
	_, token, err = j.tokenAuth.Encode(map[string]interface{}{
		"sub":      adminID,
		"admin_id": adminID,
		"email":    email,
		"role":     string(auth.RoleOwner),
		"type":     tokenTypeAccess,
		"exp":      expiresAt,
	})
	return token, expiresAt, err
}

func (j *JWTService) GenerateEmployeeToken(employeeID string) (token string, expiresAt int64, err error) {
	expiresAt = j.now().Add(j.employeeExpiration).Unix()
	_, token, err = j.tokenAuth.Encode(map[string]interface{}{
		"sub":         employeeID,
		"employee_id": employeeID,
		"role":        string(auth.RoleEmployee),
		"type":        tokenTypeAccess,
		"exp":         expiresAt,
	})
	return token, expiresAt, err
}

// PrincipalFromClaims converts verified token claims into a Principal.
func PrincipalFromClaims(claims map[string]interface{}) (auth.Principal, error) {
	if tokenType, _ := claims["type"].(string); tokenType != tokenTypeAccess {
		return auth.Principal{}, auth.ErrInvalidToken
	}

	role, _ := claims["role"].(string)
	p := auth.Principal{Role: auth.Role(role)}
	p.Subject, _ = claims["sub"].(string)
	p.AdminID, _ = claims["admin_id"].(string)
	p.EmployeeID, _ = claims["employee_id"].(string)

	switch p.Role {
	case auth.RoleOwner:
		if p.AdminID == "" {
			return auth.Principal{}, auth.ErrInvalidToken
		}
	case auth.RoleEmployee:
		if p.EmployeeID == "" {
			return auth.Principal{}, auth.ErrInvalidToken
		}
	default:
		return auth.Principal{}, auth.ErrInvalidToken
	}
	return p, nil
}

// PrincipalFromContext reads the principal placed in ctx by jwtauth.Verifier.
// Returns auth.ErrNoToken when the request carried no token.
func PrincipalFromContext(ctx context.Context) (auth.Principal, error) {
	token, claims, err := jwtauth.FromContext(ctx)
	switch {
	case errors.Is(err, jwtauth.ErrNoTokenFound):
		return auth.Principal{}, auth.ErrNoToken
	case errors.Is(err, jwtauth.ErrExpired):
		return auth.Principal{}, auth.ErrTokenExpired
	case err != nil:
		return auth.Principal{}, auth.ErrInvalidToken
	case token == nil:
		return auth.Principal{}, auth.ErrNoToken
	}
	return PrincipalFromClaims(claims)
}
