package user

import "time"

type Role string

const (
	RoleAdmin    Role = "admin"    // Manages employees, holidays, and overrides
	RoleEmployee Role = "employee" // Regular employee
)

type User struct {
	ID              string
	Email           string
	EmployeeCode    string
	Name            string
	PasswordHash    *string
	Role            Role
	OAuthProvider   *string
	OAuthProviderID *string
	IsActive        bool
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// IsAdmin checks if the user has admin privileges
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
