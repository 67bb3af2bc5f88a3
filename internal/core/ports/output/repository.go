package output

import (
	"context"

	"m365-dashboard/internal/core/domain"
)

// TenantConfigRepository persists the singleton Microsoft 365 configuration.
type TenantConfigRepository interface {
	// Get returns the configuration, or domain.ErrConfigNotFound when none
	// has been saved yet.
	Get(ctx context.Context) (*domain.TenantConfig, error)
	// Save inserts the configuration or updates the existing row in place.
	Save(ctx context.Context, cfg *domain.TenantConfig) error
}

// UserRepository persists dashboard accounts.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
}
