package dto

import (
	"time"

	"m365-dashboard/internal/core/domain"
)

// SaveConfigRequest carries the editable Microsoft 365 settings. An empty
// client_secret keeps the stored one.
type SaveConfigRequest struct {
	TenantID           string `json:"tenant_id" binding:"required"`
	ClientID           string `json:"client_id" binding:"required"`
	ClientSecret       string `json:"client_secret"`
	SharePointHostname string `json:"sharepoint_hostname"`
	TimesheetSitePath  string `json:"timesheet_site_path"`
	TimesheetListName  string `json:"timesheet_list_name"`
}

// ConfigResponse mirrors the stored configuration. The secret itself is
// never returned, only whether one is set.
type ConfigResponse struct {
	TenantID           string    `json:"tenant_id"`
	ClientID           string    `json:"client_id"`
	HasClientSecret    bool      `json:"has_client_secret"`
	SharePointHostname string    `json:"sharepoint_hostname,omitempty"`
	TimesheetSitePath  string    `json:"timesheet_site_path,omitempty"`
	TimesheetListName  string    `json:"timesheet_list_name"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

// TestConnectionResponse reports a credential check result.
type TestConnectionResponse struct {
	OK     bool   `json:"ok"`
	Detail string `json:"detail,omitempty"`
}

// ToConfigResponse converts a domain TenantConfig to its response DTO.
func ToConfigResponse(cfg *domain.TenantConfig) ConfigResponse {
	return ConfigResponse{
		TenantID:           cfg.TenantID,
		ClientID:           cfg.ClientID,
		HasClientSecret:    cfg.ClientSecret != "",
		SharePointHostname: cfg.SharePointHostname,
		TimesheetSitePath:  cfg.TimesheetSitePath,
		TimesheetListName:  cfg.ListName(),
		CreatedAt:          cfg.CreatedAt,
		UpdatedAt:          cfg.UpdatedAt,
	}
}
