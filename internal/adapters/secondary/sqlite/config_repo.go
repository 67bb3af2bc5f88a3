package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"m365-dashboard/internal/core/domain"
	ports "m365-dashboard/internal/core/ports/output"
)

type tenantConfigRepo struct {
	db *sql.DB
}

// NewTenantConfigRepository creates the sqlite-backed configuration repository.
func NewTenantConfigRepository(db *sql.DB) ports.TenantConfigRepository {
	return &tenantConfigRepo{db: db}
}

func (r *tenantConfigRepo) Get(ctx context.Context) (*domain.TenantConfig, error) {
	query := `
		SELECT id, created_at, updated_at, tenant_id, client_id, client_secret,
		       sharepoint_hostname, timesheet_site_path, timesheet_list_name
		FROM m365_config
		ORDER BY created_at
		LIMIT 1
	`
	var cfg domain.TenantConfig
	var id string
	err := r.db.QueryRowContext(ctx, query).Scan(
		&id,
		&cfg.CreatedAt,
		&cfg.UpdatedAt,
		&cfg.TenantID,
		&cfg.ClientID,
		&cfg.ClientSecret,
		&cfg.SharePointHostname,
		&cfg.TimesheetSitePath,
		&cfg.TimesheetListName,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrConfigNotFound
		}
		return nil, fmt.Errorf("get m365_config: %w", err)
	}
	if err := cfg.ID.UnmarshalText([]byte(id)); err != nil {
		return nil, fmt.Errorf("parse m365_config id: %w", err)
	}
	return &cfg, nil
}

func (r *tenantConfigRepo) Save(ctx context.Context, cfg *domain.TenantConfig) error {
	query := `
		INSERT INTO m365_config (id, created_at, updated_at, tenant_id, client_id, client_secret,
		                         sharepoint_hostname, timesheet_site_path, timesheet_list_name)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			updated_at = excluded.updated_at,
			tenant_id = excluded.tenant_id,
			client_id = excluded.client_id,
			client_secret = excluded.client_secret,
			sharepoint_hostname = excluded.sharepoint_hostname,
			timesheet_site_path = excluded.timesheet_site_path,
			timesheet_list_name = excluded.timesheet_list_name
	`
	_, err := r.db.ExecContext(ctx, query,
		cfg.ID.String(),
		cfg.CreatedAt,
		cfg.UpdatedAt,
		cfg.TenantID,
		cfg.ClientID,
		cfg.ClientSecret,
		cfg.SharePointHostname,
		cfg.TimesheetSitePath,
		cfg.TimesheetListName,
	)
	if err != nil {
		return fmt.Errorf("save m365_config: %w", err)
	}
	return nil
}
