package domain

import "time"

// Role enumerates actor roles, ordered from most to least privileged.
type Role string

const (
	RoleSuperAdmin Role = "SUPER_ADMIN"
	RoleAdmin      Role = "ADMIN"
	RoleManager    Role = "MANAGER"
	RoleUser       Role = "USER"
)

// Valid reports whether the role is one of the known four.
func (r Role) Valid() bool {
	switch r {
	case RoleSuperAdmin, RoleAdmin, RoleManager, RoleUser:
		return true
	}
	return false
}

// IsHOD reports whether the role belongs to the head-of-department tier.
// HOD actors hold a unique position label within their department.
func (r Role) IsHOD() bool {
	return r == RoleSuperAdmin || r == RoleAdmin
}

// User is an authenticated actor. Every user belongs to exactly one
// organization and one department of that organization; email is unique per
// organization among active rows.
type User struct {
	ID             string
	OrganizationID string
	DepartmentID   string
	FirstName      string
	LastName       string
	Email          string
	PasswordHash   string
	Role           Role
	Position       string
	CreatedAt      time.Time
	UpdatedAt      time.Time
	Tombstone
}

// FullName joins first and last name for display.
func (u *User) FullName() string {
	if u.LastName == "" {
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}
