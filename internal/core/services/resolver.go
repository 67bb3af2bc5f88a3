package services

import (
	"context"
	"strings"

	"m365-dashboard/internal/core/domain"
	ports "m365-dashboard/internal/core/ports/output"
)

// resolveSite picks the configured timesheet site: hostname:path when both
// are set, the tenant root site otherwise.
func resolveSite(ctx context.Context, g ports.GraphClient, token string, cfg *domain.TenantConfig) (*domain.Site, error) {
	if cfg.TimesheetSitePath != "" && cfg.SharePointHostname != "" {
		return g.GetSiteByPath(ctx, token, cfg.SharePointHostname, cfg.TimesheetSitePath)
	}
	return g.GetRootSite(ctx, token)
}

// findListByName locates a list on the site by display name,
// case-insensitively.
func findListByName(ctx context.Context, g ports.GraphClient, token, siteID, name string) (*domain.SharePointList, error) {
	lists, err := g.ListLists(ctx, token, siteID)
	if err != nil {
		return nil, err
	}
	for i := range lists {
		if strings.EqualFold(lists[i].DisplayName, name) {
			return &lists[i], nil
		}
	}
	return nil, domain.ErrListNotFound
}
