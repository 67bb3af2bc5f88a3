package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"m365-dashboard/internal/core/domain"
	ports "m365-dashboard/internal/core/ports/output"
)

type userRepo struct {
	db *sql.DB
}

// NewUserRepository creates the sqlite-backed user repository.
func NewUserRepository(db *sql.DB) ports.UserRepository {
	return &userRepo{db: db}
}

func (r *userRepo) Create(ctx context.Context, user *domain.User) error {
	query := `
		INSERT INTO users (id, created_at, updated_at, username, email, password_hash, is_superuser)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`
	_, err := r.db.ExecContext(ctx, query,
		user.ID.String(),
		user.CreatedAt,
		user.UpdatedAt,
		user.Username,
		user.Email,
		user.PasswordHash,
		user.IsSuperuser,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrUserAlreadyExists
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

func (r *userRepo) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	query := `
		SELECT id, created_at, updated_at, username, email, password_hash, is_superuser
		FROM users
		WHERE username = ?
	`
	var user domain.User
	var id string
	err := r.db.QueryRowContext(ctx, query, username).Scan(
		&id,
		&user.CreatedAt,
		&user.UpdatedAt,
		&user.Username,
		&user.Email,
		&user.PasswordHash,
		&user.IsSuperuser,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("get user by username: %w", err)
	}
	if err := user.ID.UnmarshalText([]byte(id)); err != nil {
		return nil, fmt.Errorf("parse user id: %w", err)
	}
	return &user, nil
}

func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}
