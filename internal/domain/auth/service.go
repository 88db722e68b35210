package auth

import (
	"context"

	"github.com/attendly/attendance-backend-go/internal/domain/user"
)

type AuthService interface {
	// Register creates an account, assigns it the next employee code for
	// its role and returns a signed token.
	Register(ctx context.Context, req RegisterRequest) (AuthResponse, error)

	// Login checks credentials and returns a signed token.
	Login(ctx context.Context, req LoginRequest) (AuthResponse, error)

	// Me returns the profile behind an authenticated user ID.
	Me(ctx context.Context, userID string) (user.Profile, error)
}
