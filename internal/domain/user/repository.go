package user

import (
	"context"
)

// UserRepository defines data access for the employee directory.
type UserRepository interface {
	// Create inserts a new user
	Create(ctx context.Context, u User) (User, error)

	// GetByID retrieves a user by primary key
	GetByID(ctx context.Context, id string) (User, error)

	// GetByEmail retrieves a user by email address
	GetByEmail(ctx context.Context, email string) (User, error)

	// GetByIDOrCode resolves a user by primary key or employee code,
	// whichever matches. Managers address employees by either form.
	GetByIDOrCode(ctx context.Context, idOrCode string) (User, error)

	// ListEmployees retrieves all users with the employee role, optionally
	// filtered by department. Hire dates ride along for headcount
	// reconstruction.
	ListEmployees(ctx context.Context, department string) ([]User, error)

	// CountByCodePrefix counts users whose employee code starts with
	// prefix, used when generating the next EMP/MGR code.
	CountByCodePrefix(ctx context.Context, prefix string) (int64, error)
}
