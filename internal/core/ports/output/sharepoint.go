package output

import (
	"context"

	"m365-dashboard/internal/core/domain"
)

// SharePointClient reads lists directly through the SharePoint REST API,
// which supports server-side ordering and filtering that Graph lacks. Calls
// take the bearer token acquired for the SharePoint resource
// ("https://{hostname}/.default").
type SharePointClient interface {
	// ListViews reads the views of a list identified by its GUID.
	ListViews(ctx context.Context, token, hostname, listGUID string) ([]domain.ListView, error)
	// ListItemsByTitle reads up to 1000 items of the list with the given
	// display title, newest first. search, when non-empty, becomes a
	// substringof filter on Title.
	ListItemsByTitle(ctx context.Context, token, hostname, sitePath, listTitle, search string) ([]domain.ListItem, error)
}
