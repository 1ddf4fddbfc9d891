package domain

import "time"

// Role enumerates account roles as reported by the upstream API.
type Role string

const (
	RoleTenant Role = "tenant"
	RoleOwner  Role = "owner"
	RoleAdmin  Role = "admin"

	// RoleUser is a legacy alias for tenant still present in older
	// upstream records; it is counted as a tenant everywhere.
	RoleUser Role = "user"
)

// User is the account model as consumed from the upstream API. Every field
// beyond ID may be absent; consumers must tolerate zero values.
type User struct {
	ID              string     `json:"id"`
	Firstname       string     `json:"firstname"`
	Lastname        string     `json:"lastname"`
	Email           string     `json:"email"`
	Phone           string     `json:"phone"`
	Role            Role       `json:"role"`
	CreatedAt       *time.Time `json:"createdAt,omitempty"`
	IsActive        *bool      `json:"isActive,omitempty"`
	IsEmailVerified *bool      `json:"isEmailVerified,omitempty"`
}

// IsOwner reports whether the account is a PG owner.
func (u User) IsOwner() bool {
	return u.Role == RoleOwner
}

// IsTenant reports whether the account is a tenant, including records
// carrying the legacy "user" role string.
func (u User) IsTenant() bool {
	return u.Role == RoleTenant || u.Role == RoleUser
}

// FullName joins first and last name for display.
func (u User) FullName() string {
	switch {
	case u.Firstname == "":
		return u.Lastname
	case u.Lastname == "":
		return u.Firstname
	default:
		return u.Firstname + " " + u.Lastname
	}
}
