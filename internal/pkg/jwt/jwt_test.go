package jwt

import (
	"context"
	"testing"
	"time"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/auth"
	"github.com/go-chi/jwtauth/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-key-for-jwt"

func TestGenerateOwnerToken(t *testing.T) {
	svc := NewJWTService(testSecret, 12*time.Hour, 720*time.Hour)
	fixed := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return fixed }

	token, expiresAt, err := svc.GenerateOwnerToken("admin-1", "owner@example.com")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, fixed.Add(12*time.Hour).Unix(), expiresAt)

	_, err = jwtauth.VerifyToken(svc.JWTAuth(), token)
	require.Error(t, err, "token minted in the past must be expired")
	assert.ErrorIs(t, err, jwtauth.ErrExpired)
}

func TestGenerateEmployeeToken_RoundTrip(t *testing.T) {
	svc := NewJWTService(testSecret, 12*time.Hour, 720*time.Hour)

	token, expiresAt, err := svc.GenerateEmployeeToken("emp-1")
	require.NoError(t, err)
	assert.Greater(t, expiresAt, time.Now().Add(719*time.Hour).Unix())

	decoded, err := jwtauth.VerifyToken(svc.JWTAuth(), token)
	require.NoError(t, err)

	claims, err := decoded.AsMap(context.Background())
	require.NoError(t, err)

	p, err := PrincipalFromClaims(claims)
	require.NoError(t, err)
	assert.Equal(t, auth.RoleEmployee, p.Role)
	assert.Equal(t, "emp-1", p.EmployeeID)
	assert.True(t, p.CanAccessEmployee("emp-1"))
	assert.False(t, p.CanAccessEmployee("emp-2"))
}

func TestPrincipalFromClaims(t *testing.T) {
	cases := []struct {
		name    string
		claims  map[string]interface{}
		wantErr bool
		owner   bool
	}{
		{"owner", map[string]interface{}{"type": "access", "role": "owner", "admin_id": "a"}, false, true},
		{"employee", map[string]interface{}{"type": "access", "role": "employee", "employee_id": "e"}, false, false},
		{"wrong type", map[string]interface{}{"type": "refresh", "role": "owner", "admin_id": "a"}, true, false},
		{"unknown role", map[string]interface{}{"type": "access", "role": "manager"}, true, false},
		{"owner without id", map[string]interface{}{"type": "access", "role": "owner"}, true, false},
		{"employee without id", map[string]interface{}{"type": "access", "role": "employee"}, true, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p, err := PrincipalFromClaims(tc.claims)
			if tc.wantErr {
				assert.ErrorIs(t, err, auth.ErrInvalidToken)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.owner, p.IsOwner())
		})
	}
}

func TestPrincipalFromContext_NoToken(t *testing.T) {
	_, err := PrincipalFromContext(context.Background())
	assert.ErrorIs(t, err, auth.ErrNoToken)
}
