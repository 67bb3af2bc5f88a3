// Package sharepoint implements the SharePoint REST adapter used when a
// tenant hostname is configured, for server-side ordering and filtering.
package sharepoint

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"m365-dashboard/internal/core/domain"
	ports "m365-dashboard/internal/core/ports/output"
)

type client struct {
	httpc *http.Client
	// scheme is overridable for tests; production always uses https.
	scheme string
}

// New creates a SharePoint REST client.
func New(timeout time.Duration) ports.SharePointClient {
	if timeout == 0 {
		timeout = 20 * time.Second
	}
	return &client{httpc: &http.Client{Timeout: timeout}, scheme: "https"}
}

func (c *client) get(ctx context.Context, token, rawURL string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return fmt.Errorf("build sharepoint request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Accept", "application/json;odata=nometadata")

	resp, err := c.httpc.Do(req)
	if err != nil {
		return fmt.Errorf("sharepoint request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return &domain.UpstreamError{Operation: "sharepoint GET", Status: resp.StatusCode, Body: string(body)}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode sharepoint response: %w", err)
	}
	return nil
}

type restView struct {
	ID          string          `json:"Id"`
	Title       string          `json:"Title"`
	DefaultView bool            `json:"DefaultView"`
	ViewType    string          `json:"ViewType"`
	BaseViewID  json.RawMessage `json:"BaseViewId"`
}

func (c *client) ListViews(ctx context.Context, token, hostname, listGUID string) ([]domain.ListView, error) {
	rawURL := fmt.Sprintf("%s://%s/_api/web/lists(guid'%s')/views", c.scheme, hostname, listGUID)

	var body struct {
		Value []restView `json:"value"`
	}
	if err := c.get(ctx, token, rawURL, &body); err != nil {
		return nil, err
	}

	views := make([]domain.ListView, 0, len(body.Value))
	for _, v := range body.Value {
		viewType := v.ViewType
		if viewType == "" {
			viewType = strings.Trim(string(v.BaseViewID), `"`)
		}
		views = append(views, domain.ListView{
			ID:            v.ID,
			DisplayName:   v.Title,
			IsDefaultView: v.DefaultView,
			ViewType:      viewType,
		})
	}
	return views, nil
}

func (c *client) ListItemsByTitle(ctx context.Context, token, hostname, sitePath, listTitle, search string) ([]domain.ListItem, error) {
	sitePath = strings.TrimRight(sitePath, "/")
	filter := ""
	if search != "" {
		// substringof needs single quotes doubled inside the literal.
		escaped := strings.ReplaceAll(search, "'", "''")
		filter = "&$filter=" + url.QueryEscape(fmt.Sprintf("substringof('%s',Title)", escaped))
	}
	rawURL := fmt.Sprintf(
		"%s://%s%s/_api/web/lists/getbytitle('%s')/items?$top=1000&$orderby=Created%%20desc%s",
		c.scheme, hostname, sitePath, listTitle, filter,
	)

	var body struct {
		Value []map[string]any `json:"value"`
	}
	if err := c.get(ctx, token, rawURL, &body); err != nil {
		return nil, err
	}

	items := make([]domain.ListItem, 0, len(body.Value))
	for _, fields := range body.Value {
		items = append(items, domain.ListItem{ID: itemID(fields), Fields: fields})
	}
	return items, nil
}

// itemID extracts the numeric Id the REST API inlines into the row.
func itemID(fields map[string]any) string {
	switch id := fields["Id"].(type) {
	case float64:
		return strconv.FormatInt(int64(id), 10)
	case string:
		return id
	default:
		return ""
	}
}
