package user

import "context"

// UserRepository defines data access methods for users.
type UserRepository interface {
	Create(ctx context.Context, u User) (User, error)
	Update(ctx context.Context, u User) error
	GetByID(ctx context.Context, id string) (User, error)
	GetByEmail(ctx context.Context, email string) (User, error)
	GetByEmployeeCode(ctx context.Context, code string) (User, error)
	GetByOAuth(ctx context.Context, provider, providerID string) (User, error)
	ListActive(ctx context.Context) ([]User, error)
	// CountCreatedInYear backs employee-code sequence generation.
	CountCreatedInYear(ctx context.Context, year int) (int, error)
}
