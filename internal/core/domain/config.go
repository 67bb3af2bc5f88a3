package domain

import (
	"time"

	"github.com/google/uuid"
)

// TenantConfig is the singleton Microsoft 365 configuration record. At most
// one row exists; the dashboard reads whichever row was saved last.
type TenantConfig struct {
	ID                 uuid.UUID
	CreatedAt          time.Time
	UpdatedAt          time.Time
	TenantID           string
	ClientID           string
	ClientSecret       string
	SharePointHostname string
	TimesheetSitePath  string
	TimesheetListName  string
}

// DefaultTimesheetListName is used when no list name has been configured.
const DefaultTimesheetListName = "timesheet"

// ListName returns the configured timesheet list display name or the default.
func (c *TenantConfig) ListName() string {
	if c.TimesheetListName == "" {
		return DefaultTimesheetListName
	}
	return c.TimesheetListName
}

// Credentials returns the client-credentials triple for token acquisition.
func (c *TenantConfig) Credentials() ClientCredentials {
	return ClientCredentials{
		TenantID:     c.TenantID,
		ClientID:     c.ClientID,
		ClientSecret: c.ClientSecret,
	}
}

// ClientCredentials identifies an Entra ID application for the
// client-credentials grant.
type ClientCredentials struct {
	TenantID     string
	ClientID     string
	ClientSecret string
}
