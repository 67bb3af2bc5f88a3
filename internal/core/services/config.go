package services

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"m365-dashboard/internal/adapters/secondary/msauth"
	"m365-dashboard/internal/core/domain"
	ports "m365-dashboard/internal/core/ports/output"
)

// ConfigService manages the singleton Microsoft 365 configuration.
type ConfigService struct {
	repo   ports.TenantConfigRepository
	tokens ports.TokenSource
}

func NewConfigService(repo ports.TenantConfigRepository, tokens ports.TokenSource) *ConfigService {
	return &ConfigService{repo: repo, tokens: tokens}
}

func (s *ConfigService) Get(ctx context.Context) (*domain.TenantConfig, error) {
	return s.repo.Get(ctx)
}

// SaveConfigParams carries the editable configuration fields. An empty
// ClientSecret keeps the previously saved secret.
type SaveConfigParams struct {
	TenantID           string
	ClientID           string
	ClientSecret       string
	SharePointHostname string
	TimesheetSitePath  string
	TimesheetListName  string
}

func (s *ConfigService) Save(ctx context.Context, params SaveConfigParams) (*domain.TenantConfig, error) {
	if params.TenantID == "" {
		return nil, domain.ErrMissingTenant
	}
	if params.ClientID == "" {
		return nil, domain.ErrMissingClient
	}

	now := time.Now()
	cfg, err := s.repo.Get(ctx)
	switch {
	case err == nil:
		if params.ClientSecret != "" {
			cfg.ClientSecret = params.ClientSecret
		}
	case errors.Is(err, domain.ErrConfigNotFound):
		if params.ClientSecret == "" {
			return nil, domain.ErrMissingSecret
		}
		cfg = &domain.TenantConfig{
			ID:           uuid.New(),
			CreatedAt:    now,
			ClientSecret: params.ClientSecret,
		}
	default:
		return nil, err
	}

	cfg.UpdatedAt = now
	cfg.TenantID = params.TenantID
	cfg.ClientID = params.ClientID
	cfg.SharePointHostname = params.SharePointHostname
	cfg.TimesheetSitePath = params.TimesheetSitePath
	cfg.TimesheetListName = params.TimesheetListName
	if cfg.TimesheetListName == "" {
		cfg.TimesheetListName = domain.DefaultTimesheetListName
	}

	if err := s.repo.Save(ctx, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// TestConnection acquires a Graph token with the saved credentials. A nil
// return means the credentials work; failures surface the identity
// platform's diagnostic fields via domain.TokenError.
func (s *ConfigService) TestConnection(ctx context.Context) error {
	cfg, err := s.repo.Get(ctx)
	if err != nil {
		return err
	}
	_, err = s.tokens.Acquire(ctx, cfg.Credentials(), msauth.GraphScope)
	return err
}
