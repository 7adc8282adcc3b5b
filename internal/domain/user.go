// Package domain contains core business types and rules for the IgnisGuard
// fire-safety asset inspection tracker.
package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Role classifies what a principal may do. Stored role strings are free-form
// legacy data ("Admin", "INSPECTOR", ...) so comparisons must always go
// through NormalizeRole.
type Role string

const (
	RoleAdmin     Role = "admin"
	RoleInspector Role = "inspector"
)

// NormalizeRole folds a stored role string to a canonical Role. Role
// comparison is case-insensitive everywhere; unknown values normalize to
// RoleInspector, the least privileged role.
func NormalizeRole(s string) Role {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "admin":
		return RoleAdmin
	default:
		return RoleInspector
	}
}

// User represents an account able to authenticate against the service.
type User struct {
	ID           uuid.UUID
	Name         string
	Email        string
	PasswordHash string
	Role         string // raw stored value; normalize before comparing
	Active       bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// IsAdmin reports whether the user's role normalizes to admin.
func (u *User) IsAdmin() bool {
	return NormalizeRole(u.Role) == RoleAdmin
}

// Principal is the authenticated identity threaded through every core
// operation. The core never reads ambient session state; callers must pass
// the principal explicitly.
type Principal struct {
	ID   uuid.UUID
	Name string
	Role Role
}

// PrincipalFor builds a Principal from a stored user.
func PrincipalFor(u *User) Principal {
	return Principal{
		ID:   u.ID,
		Name: u.Name,
		Role: NormalizeRole(u.Role),
	}
}

// IsAdmin reports whether the principal carries the admin role.
func (p Principal) IsAdmin() bool {
	return p.Role == RoleAdmin
}
