package user

import "context"

// EmployeeService defines admin-facing employee account management.
type EmployeeService interface {
	// Create provisions an account with a generated employee code and
	// temporary password, and emails the credentials.
	Create(ctx context.Context, req CreateEmployeeRequest) (UserResponse, error)

	// List returns all active employees.
	List(ctx context.Context) ([]UserResponse, error)

	// Deactivate disables an account and revokes its refresh tokens.
	Deactivate(ctx context.Context, id string) error
}
