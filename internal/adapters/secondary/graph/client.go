// Package graph implements the Microsoft Graph adapter for SharePoint sites,
// lists, columns, views and items.
package graph

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"m365-dashboard/internal/core/domain"
	ports "m365-dashboard/internal/core/ports/output"
)

type client struct {
	baseURL string
	httpc   *http.Client
}

// New creates a Graph client against baseURL (production value is
// https://graph.microsoft.com).
func New(baseURL string, timeout time.Duration) ports.GraphClient {
	if timeout == 0 {
		timeout = 20 * time.Second
	}
	return &client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpc:   &http.Client{Timeout: timeout},
	}
}

func (c *client) get(ctx context.Context, token, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("build graph request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.httpc.Do(req)
	if err != nil {
		return fmt.Errorf("graph request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return &domain.UpstreamError{Operation: "graph GET " + path, Status: resp.StatusCode, Body: string(body)}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode graph response: %w", err)
	}
	return nil
}

type siteResponse struct {
	ID          string `json:"id"`
	DisplayName string `json:"displayName"`
	WebURL      string `json:"webUrl"`
}

func (s siteResponse) toDomain() *domain.Site {
	return &domain.Site{ID: s.ID, DisplayName: s.DisplayName, WebURL: s.WebURL}
}

func (c *client) GetRootSite(ctx context.Context, token string) (*domain.Site, error) {
	var site siteResponse
	if err := c.get(ctx, token, "/v1.0/sites/root", &site); err != nil {
		return nil, err
	}
	if site.ID == "" {
		return nil, domain.ErrSiteNotResolved
	}
	return site.toDomain(), nil
}

func (c *client) GetSiteByPath(ctx context.Context, token, hostname, sitePath string) (*domain.Site, error) {
	sitePath = "/" + strings.Trim(sitePath, "/")
	var site siteResponse
	path := fmt.Sprintf("/v1.0/sites/%s:%s", hostname, sitePath)
	if err := c.get(ctx, token, path, &site); err != nil {
		return nil, err
	}
	if site.ID == "" {
		return nil, domain.ErrSiteNotResolved
	}
	return site.toDomain(), nil
}

type listResponse struct {
	ID          string `json:"id"`
	DisplayName string `json:"displayName"`
	Description string `json:"description"`
	WebURL      string `json:"webUrl"`
}

func (l listResponse) toDomain() domain.SharePointList {
	return domain.SharePointList{
		ID:          l.ID,
		DisplayName: l.DisplayName,
		Description: l.Description,
		WebURL:      l.WebURL,
	}
}

func (c *client) ListLists(ctx context.Context, token, siteID string) ([]domain.SharePointList, error) {
	var body struct {
		Value []listResponse `json:"value"`
	}
	if err := c.get(ctx, token, fmt.Sprintf("/v1.0/sites/%s/lists", siteID), &body); err != nil {
		return nil, err
	}
	lists := make([]domain.SharePointList, 0, len(body.Value))
	for _, l := range body.Value {
		lists = append(lists, l.toDomain())
	}
	return lists, nil
}

func (c *client) GetList(ctx context.Context, token, siteID, listID string) (*domain.SharePointList, error) {
	var body listResponse
	if err := c.get(ctx, token, fmt.Sprintf("/v1.0/sites/%s/lists/%s", siteID, listID), &body); err != nil {
		return nil, err
	}
	list := body.toDomain()
	return &list, nil
}

type viewResponse struct {
	ID            string `json:"id"`
	DisplayName   string `json:"displayName"`
	IsDefaultView bool   `json:"isDefaultView"`
	ViewType      string `json:"viewType"`
}

func (v viewResponse) toDomain() domain.ListView {
	return domain.ListView{
		ID:            v.ID,
		DisplayName:   v.DisplayName,
		IsDefaultView: v.IsDefaultView,
		ViewType:      v.ViewType,
	}
}

// ListViews reads list views from the beta endpoint. Tenants where the
// dedicated endpoint 404s are served through $expand=views on the list
// resource instead.
func (c *client) ListViews(ctx context.Context, token, siteID, listID string) ([]domain.ListView, error) {
	var body struct {
		Value []viewResponse `json:"value"`
	}
	err := c.get(ctx, token, fmt.Sprintf("/beta/sites/%s/lists/%s/views", siteID, listID), &body)
	if err == nil {
		return viewsToDomain(body.Value), nil
	}

	var expanded struct {
		Views json.RawMessage `json:"views"`
	}
	expandPath := fmt.Sprintf(
		"/beta/sites/%s/lists/%s?$expand=views($select=id,displayName,isDefaultView,viewType)",
		siteID, listID,
	)
	if fallbackErr := c.get(ctx, token, expandPath, &expanded); fallbackErr != nil {
		return nil, fmt.Errorf("%w (expand fallback: %s)", err, fallbackErr)
	}

	views, ok := decodeExpandedViews(expanded.Views)
	if !ok {
		return nil, domain.ErrViewsNotAvailable
	}
	return viewsToDomain(views), nil
}

// decodeExpandedViews handles both shapes Graph beta returns for expanded
// views: a bare array, or an object wrapping a "value" array.
func decodeExpandedViews(raw json.RawMessage) ([]viewResponse, bool) {
	if len(raw) == 0 {
		return nil, false
	}
	var direct []viewResponse
	if err := json.Unmarshal(raw, &direct); err == nil {
		return direct, true
	}
	var wrapped struct {
		Value []viewResponse `json:"value"`
	}
	if err := json.Unmarshal(raw, &wrapped); err == nil {
		return wrapped.Value, true
	}
	return nil, false
}

func viewsToDomain(in []viewResponse) []domain.ListView {
	views := make([]domain.ListView, 0, len(in))
	for _, v := range in {
		views = append(views, v.toDomain())
	}
	return views
}

func (c *client) ListColumns(ctx context.Context, token, siteID, listID string) ([]domain.ColumnDefinition, error) {
	var body struct {
		Value []struct {
			Name        string `json:"name"`
			DisplayName string `json:"displayName"`
			Hidden      bool   `json:"hidden"`
			ReadOnly    bool   `json:"readOnly"`
			ColumnGroup string `json:"columnGroup"`
			Description string `json:"description"`
		} `json:"value"`
	}
	path := fmt.Sprintf(
		"/v1.0/sites/%s/lists/%s/columns?$select=name,displayName,hidden,readOnly,columnGroup,description",
		siteID, listID,
	)
	if err := c.get(ctx, token, path, &body); err != nil {
		return nil, err
	}
	cols := make([]domain.ColumnDefinition, 0, len(body.Value))
	for _, col := range body.Value {
		cols = append(cols, domain.ColumnDefinition{
			Name:        col.Name,
			DisplayName: col.DisplayName,
			Hidden:      col.Hidden,
			ReadOnly:    col.ReadOnly,
			ColumnGroup: col.ColumnGroup,
			Description: col.Description,
		})
	}
	return cols, nil
}

func (c *client) ListItems(ctx context.Context, token, siteID, listID string, fields []string) ([]domain.ListItem, error) {
	selectFields := strings.Join(fields, ",")
	if selectFields == "" {
		selectFields = "Title"
	}

	var body struct {
		Value []struct {
			ID     string         `json:"id"`
			Fields map[string]any `json:"fields"`
		} `json:"value"`
	}
	path := fmt.Sprintf(
		"/v1.0/sites/%s/lists/%s/items?expand=fields($select=%s)&$top=1000&$orderby=fields/Created%%20desc",
		siteID, listID, url.QueryEscape(selectFields),
	)
	if err := c.get(ctx, token, path, &body); err != nil {
		return nil, err
	}

	items := make([]domain.ListItem, 0, len(body.Value))
	for _, it := range body.Value {
		fieldsMap := it.Fields
		if fieldsMap == nil {
			fieldsMap = map[string]any{}
		}
		items = append(items, domain.ListItem{ID: it.ID, Fields: fieldsMap})
	}
	return items, nil
}
