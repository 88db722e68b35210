package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/attendly/attendance-backend-go/internal/domain/auth"
	"github.com/attendly/attendance-backend-go/internal/domain/user"
	"github.com/attendly/attendance-backend-go/internal/pkg/jwt"
	"golang.org/x/crypto/bcrypt"
)

// codeRetries bounds the race window when two registrations compute the
// same next employee code; the unique constraint rejects the loser and
// we recount.
const codeRetries = 3

type AuthServiceImpl struct {
	user.UserRepository
	jwt.Service
}

func NewAuthService(userRepository user.UserRepository, jwtService jwt.Service) auth.AuthService {
	return &AuthServiceImpl{
		UserRepository: userRepository,
		Service:        jwtService,
	}
}

func (a *AuthServiceImpl) hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func codePrefix(role user.Role) string {
	if role == user.RoleManager {
		return "MGR"
	}
	return "EMP"
}

// Register implements auth.AuthService.
func (a *AuthServiceImpl) Register(ctx context.Context, req auth.RegisterRequest) (auth.AuthResponse, error) {
	req.Normalize()
	if err := req.Validate(); err != nil {
		return auth.AuthResponse{}, err
	}

	existing, err := a.UserRepository.GetByEmail(ctx, req.Email)
	if err != nil && !errors.Is(err, user.ErrUserNotFound) {
		return auth.AuthResponse{}, fmt.Errorf("failed to get user by email: %w", err)
	}
	if existing.ID != "" {
		return auth.AuthResponse{}, user.ErrEmailExists
	}

	hashed, err := a.hashPassword(req.Password)
	if err != nil {
		return auth.AuthResponse{}, fmt.Errorf("failed to hash password: %w", err)
	}

	role := user.Role(req.Role)
	prefix := codePrefix(role)

	var created user.User
	for attempt := 0; attempt < codeRetries; attempt++ {
		count, err := a.UserRepository.CountByCodePrefix(ctx, prefix)
		if err != nil {
			return auth.AuthResponse{}, fmt.Errorf("failed to count employee codes: %w", err)
		}

		created, err = a.UserRepository.Create(ctx, user.User{
			Name:         req.Name,
			Email:        req.Email,
			PasswordHash: hashed,
			Role:         role,
			EmployeeCode: fmt.Sprintf("%s%03d", prefix, count+1),
			Department:   req.Department,
		})
		if err == nil {
			break
		}
		if errors.Is(err, user.ErrEmployeeCodeExists) && attempt < codeRetries-1 {
			continue
		}
		return auth.AuthResponse{}, err
	}

	return a.respond(created)
}

// Login implements auth.AuthService.
func (a *AuthServiceImpl) Login(ctx context.Context, req auth.LoginRequest) (auth.AuthResponse, error) {
	if err := req.Validate(); err != nil {
		return auth.AuthResponse{}, err
	}

	userData, err := a.UserRepository.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return auth.AuthResponse{}, auth.ErrInvalidCredentials
		}
		return auth.AuthResponse{}, fmt.Errorf("failed to get user by email: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(userData.PasswordHash), []byte(req.Password)); err != nil {
		return auth.AuthResponse{}, auth.ErrInvalidCredentials
	}

	return a.respond(userData)
}

// Me implements auth.AuthService.
func (a *AuthServiceImpl) Me(ctx context.Context, userID string) (user.Profile, error) {
	userData, err := a.UserRepository.GetByID(ctx, userID)
	if err != nil {
		return user.Profile{}, err
	}
	return userData.Profile(), nil
}

func (a *AuthServiceImpl) respond(u user.User) (auth.AuthResponse, error) {
	token, expiresAt, err := a.Service.GenerateAccessToken(u.ID, u.Email, u.Role)
	if err != nil {
		return auth.AuthResponse{}, fmt.Errorf("failed to create access token: %w", err)
	}
	return auth.AuthResponse{
		Token:     token,
		ExpiresAt: expiresAt,
		User:      u.Profile(),
	}, nil
}
