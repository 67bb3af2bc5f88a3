package services

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"m365-dashboard/internal/core/domain"
	ports "m365-dashboard/internal/core/ports/output"
)

// UserService manages dashboard accounts.
type UserService struct {
	users ports.UserRepository
}

func NewUserService(users ports.UserRepository) *UserService {
	return &UserService{users: users}
}

// EnsureAdmin creates a superuser with the given credentials unless an
// account with that username already exists. Returns whether a new account
// was created, so callers can report "already exists" without treating it as
// a failure.
func (s *UserService) EnsureAdmin(ctx context.Context, username, email, password string) (bool, error) {
	if username == "" {
		return false, domain.ErrMissingUsername
	}
	if password == "" {
		return false, domain.ErrMissingPassword
	}

	_, err := s.users.GetByUsername(ctx, username)
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, domain.ErrUserNotFound) {
		return false, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return false, err
	}

	now := time.Now()
	user := &domain.User{
		ID:           uuid.New(),
		CreatedAt:    now,
		UpdatedAt:    now,
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
		IsSuperuser:  true,
	}
	if err := s.users.Create(ctx, user); err != nil {
		// Lost a race against a concurrent seed; the account exists.
		if errors.Is(err, domain.ErrUserAlreadyExists) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}
