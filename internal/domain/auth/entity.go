package auth

import "time"

type Role string

const (
	RoleOwner    Role = "owner"
	RoleEmployee Role = "employee"
)

type Admin struct {
	ID           string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}

// OTP is a pending one-time login code. Only the SHA-256 hash of the code is stored.
type OTP struct {
	Identifier string
	EmployeeID string
	CodeHash   string
	ExpiresAt  time.Time
	Attempts   int
	CreatedAt  time.Time
}

func (o OTP) Expired(now time.Time) bool {
	return !now.Before(o.ExpiresAt)
}

// Principal is the authenticated caller extracted from token claims.
type Principal struct {
	Subject    string
	Role       Role
	AdminID    string
	EmployeeID string
}

func (p Principal) IsOwner() bool {
	return p.Role == RoleOwner
}

// CanAccessEmployee reports whether the caller may act on behalf of employeeID.
func (p Principal) CanAccessEmployee(employeeID string) bool {
	if p.IsOwner() {
		return true
	}
	return p.Role == RoleEmployee && p.EmployeeID != "" && p.EmployeeID == employeeID
}
