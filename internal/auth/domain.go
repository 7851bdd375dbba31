package auth

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Permission represents the coarse role of an account in the system.
type Permission string

const (
	PermissionGuest Permission = "guest"
	PermissionStaff Permission = "staff"
	PermissionAdmin Permission = "admin"
)

// IsGuest reports whether the permission denies all mutating operations.
func (p Permission) IsGuest() bool {
	return p == PermissionGuest
}

// IsAdmin reports whether the permission grants account management.
func (p Permission) IsAdmin() bool {
	return p == PermissionAdmin
}

func ParsePermission(s string) (Permission, error) {
	switch Permission(s) {
	case PermissionGuest, PermissionStaff, PermissionAdmin:
		return Permission(s), nil
	}

	return "", fmt.Errorf("unknown permission %q", s)
}

// Profile holds the optional display fields of an account.
type Profile struct {
	FirstName string
	LastName  string
}

// Account represents a registered principal.
type Account struct {
	Profile

	ID           uuid.UUID
	Username     string
	PasswordHash []byte
	Permission   Permission
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// PermissionEntry is the projection returned by the admin permission listing.
type PermissionEntry struct {
	ID         uuid.UUID
	Username   string
	Permission Permission
}
