package domain

import "time"

// Role classifies what a user account is for. Roles are stored and returned
// but not enforced by the auth layer; role-based gating is future work.
type Role string

const (
	RoleAdmin    Role = "ADMIN"
	RoleHR       Role = "HR"
	RoleManager  Role = "MANAGER"
	RoleEmployee Role = "EMPLOYEE"
)

// Roles lists the closed role enumeration in display order.
var Roles = []Role{RoleAdmin, RoleHR, RoleManager, RoleEmployee}

// Valid reports whether the role belongs to the enumeration.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleHR, RoleManager, RoleEmployee:
		return true
	}
	return false
}

// User represents a login-capable account.
type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	Role         Role
	Active       bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
	Employee     *EmployeeSummary
}

// EmployeeSummary is the linked employee projection embedded in user reads.
type EmployeeSummary struct {
	ID       string `json:"id"`
	FullName string `json:"fullName"`
	Position string `json:"position"`
}

// PublicUser is the client-facing projection of a User. It carries no
// password hash field at all, so no serialization path can leak one.
type PublicUser struct {
	ID        string           `json:"id"`
	Name      string           `json:"name"`
	Email     string           `json:"email"`
	Role      Role             `json:"role"`
	Active    bool             `json:"active"`
	CreatedAt time.Time        `json:"createdAt"`
	UpdatedAt time.Time        `json:"updatedAt"`
	Employee  *EmployeeSummary `json:"employee,omitempty"`
}

// Public strips credentials from the account. Every user ever written to a
// response body goes through this projection, never conditionally.
func (u *User) Public() PublicUser {
	return PublicUser{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Role:      u.Role,
		Active:    u.Active,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
		Employee:  u.Employee,
	}
}
