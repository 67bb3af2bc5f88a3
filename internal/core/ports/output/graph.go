package output

import (
	"context"

	"m365-dashboard/internal/core/domain"
)

// TokenSource acquires app-only access tokens via the client-credentials
// grant. scope is a ".default" resource scope, e.g.
// "https://graph.microsoft.com/.default".
type TokenSource interface {
	Acquire(ctx context.Context, creds domain.ClientCredentials, scope string) (string, error)
}

// GraphClient reads SharePoint metadata and list items through Microsoft
// Graph. Every call takes the bearer token acquired for the Graph resource.
type GraphClient interface {
	// GetRootSite resolves the tenant's root SharePoint site.
	GetRootSite(ctx context.Context, token string) (*domain.Site, error)
	// GetSiteByPath resolves a site by hostname and server-relative path,
	// e.g. ("contoso.sharepoint.com", "/sites/TeamA").
	GetSiteByPath(ctx context.Context, token, hostname, sitePath string) (*domain.Site, error)
	ListLists(ctx context.Context, token, siteID string) ([]domain.SharePointList, error)
	GetList(ctx context.Context, token, siteID, listID string) (*domain.SharePointList, error)
	// ListViews reads list views via the beta endpoint, falling back to
	// $expand=views when the dedicated endpoint is unavailable.
	ListViews(ctx context.Context, token, siteID, listID string) ([]domain.ListView, error)
	ListColumns(ctx context.Context, token, siteID, listID string) ([]domain.ColumnDefinition, error)
	// ListItems reads up to 1000 items newest-first, expanding only the
	// given field names.
	ListItems(ctx context.Context, token, siteID, listID string, fields []string) ([]domain.ListItem, error)
}
