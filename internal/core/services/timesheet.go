package services

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"

	log "github.com/sirupsen/logrus"

	"m365-dashboard/internal/adapters/secondary/msauth"
	"m365-dashboard/internal/core/domain"
	ports "m365-dashboard/internal/core/ports/output"
)

// maxDisplayColumns caps the table width.
const maxDisplayColumns = 8

// preferredColumns are shown first when present in the list schema.
var preferredColumns = []string{
	"Author",
	domain.WorkDateField,
	"Contractor",
	"CustomerName",
	"Customer_x0020_Name",
	"Code",
	"Hours",
	"Mileage",
	"Billable",
	"Project",
	"Status",
}

// TimesheetService reads the configured timesheet list and materializes
// filtered, sorted pages from it.
type TimesheetService struct {
	repo       ports.TenantConfigRepository
	tokens     ports.TokenSource
	graph      ports.GraphClient
	sharepoint ports.SharePointClient
}

func NewTimesheetService(
	repo ports.TenantConfigRepository,
	tokens ports.TokenSource,
	graph ports.GraphClient,
	sharepoint ports.SharePointClient,
) *TimesheetService {
	return &TimesheetService{repo: repo, tokens: tokens, graph: graph, sharepoint: sharepoint}
}

// Fetch runs a timesheet query end to end: resolve site and list, derive
// display columns from the schema, read items (SharePoint REST first when a
// hostname is configured, Graph otherwise), then filter, sort and paginate.
func (s *TimesheetService) Fetch(ctx context.Context, q domain.TimesheetQuery) (*domain.TimesheetPage, error) {
	q.Normalize()

	cfg, err := s.repo.Get(ctx)
	if err != nil {
		return nil, err
	}

	token, err := s.tokens.Acquire(ctx, cfg.Credentials(), msauth.GraphScope)
	if err != nil {
		return nil, err
	}

	site, err := resolveSite(ctx, s.graph, token, cfg)
	if err != nil {
		return nil, err
	}

	list, err := findListByName(ctx, s.graph, token, site.ID, cfg.ListName())
	if err != nil {
		return nil, err
	}

	columns := []string{"Id"}
	defs, err := s.graph.ListColumns(ctx, token, site.ID, list.ID)
	if err != nil {
		// Headers degrade to Id-only; the items themselves still render.
		log.WithError(err).Warn("column schema fetch failed")
	} else {
		columns = displayColumns(defs)
	}

	items, err := s.fetchItems(ctx, cfg, token, site.ID, list.ID, columns, q.Search)
	if err != nil {
		return nil, err
	}

	page := buildPage(items, columns, q)
	return page, nil
}

// fetchItems reads the raw items, preferring SharePoint REST and falling
// back to Graph when REST fails or no hostname is configured.
func (s *TimesheetService) fetchItems(ctx context.Context, cfg *domain.TenantConfig, graphToken, siteID, listID string, columns []string, search string) ([]domain.ListItem, error) {
	if cfg.SharePointHostname != "" {
		items, err := s.fetchItemsREST(ctx, cfg, search)
		if err == nil {
			return items, nil
		}
		log.WithError(err).Warn("sharepoint rest items failed, falling back to graph")
	}

	fields := make([]string, 0, len(columns))
	for _, col := range columns {
		if col != "Id" {
			fields = append(fields, col)
		}
	}
	return s.graph.ListItems(ctx, graphToken, siteID, listID, fields)
}

func (s *TimesheetService) fetchItemsREST(ctx context.Context, cfg *domain.TenantConfig, search string) ([]domain.ListItem, error) {
	spToken, err := s.tokens.Acquire(ctx, cfg.Credentials(), msauth.SharePointScope(cfg.SharePointHostname))
	if err != nil {
		return nil, err
	}
	return s.sharepoint.ListItemsByTitle(ctx, spToken, cfg.SharePointHostname, cfg.TimesheetSitePath, cfg.ListName(), search)
}

// displayColumns orders the schema columns for display: Id first, then the
// preferred timesheet columns, then the remaining visible ones. Hidden
// columns, underscore-prefixed internals and *type columns are dropped, and
// the result is capped at maxDisplayColumns.
func displayColumns(defs []domain.ColumnDefinition) []string {
	available := make(map[string]bool, len(defs))
	var order []string
	for _, def := range defs {
		if def.Hidden {
			continue
		}
		if !available[def.Name] {
			available[def.Name] = true
			order = append(order, def.Name)
		}
	}

	columns := []string{"Id"}
	seen := map[string]bool{"Id": true}
	for _, name := range preferredColumns {
		if available[name] && !seen[name] {
			columns = append(columns, name)
			seen[name] = true
		}
	}
	for _, name := range order {
		if seen[name] || strings.HasPrefix(name, "_") || strings.HasSuffix(strings.ToLower(name), "type") {
			continue
		}
		columns = append(columns, name)
		seen[name] = true
	}

	if len(columns) > maxDisplayColumns {
		columns = columns[:maxDisplayColumns]
	}
	return columns
}

// buildPage applies the in-memory filter pipeline and assembles the result.
func buildPage(items []domain.ListItem, columns []string, q domain.TimesheetQuery) *domain.TimesheetPage {
	rows := make([]domain.TimesheetRow, 0, len(items))
	for _, it := range items {
		row := domain.TimesheetRow{"Id": it.ID}
		for _, col := range columns {
			if col == "Id" || strings.HasPrefix(col, "@") {
				continue
			}
			row[col] = it.Fields[col]
		}
		rows = append(rows, row)
	}

	page := &domain.TimesheetPage{
		Columns:         columns,
		Page:            q.Page,
		PageSize:        q.PageSize,
		Authors:         distinctOptions(items, "Author", true),
		Customers:       distinctOptions(items, "Customer_x0020_Name", false),
		Codes:           distinctOptions(items, "Code", false),
		BillableOptions: distinctOptions(items, "Billable", false),
	}

	rows = filterRows(rows, q)
	sortRows(rows, columns, q)

	for _, row := range rows {
		page.TotalHours += domain.Hours(row["Hours"])
	}
	page.TotalHours = round2(page.TotalHours)

	page.Total = len(rows)
	page.TotalPages = (page.Total + q.PageSize - 1) / q.PageSize
	if page.TotalPages == 0 {
		page.TotalPages = 1
	}
	page.HasPrev = q.Page > 1
	page.HasNext = q.Page*q.PageSize < page.Total

	start := (q.Page - 1) * q.PageSize
	if start >= len(rows) {
		page.Rows = []domain.TimesheetRow{}
		return page
	}
	end := start + q.PageSize
	if end > len(rows) {
		end = len(rows)
	}
	page.Rows = rows[start:end]
	return page
}

func filterRows(rows []domain.TimesheetRow, q domain.TimesheetQuery) []domain.TimesheetRow {
	out := rows[:0]
	for _, row := range rows {
		if !matchesQuery(row, q) {
			continue
		}
		out = append(out, row)
	}
	return out
}

func matchesQuery(row domain.TimesheetRow, q domain.TimesheetQuery) bool {
	if q.Search != "" && !strings.Contains(strings.ToLower(rowText(row)), strings.ToLower(q.Search)) {
		return false
	}
	if q.Author != "" && !containsFold(domain.AuthorText(row["Author"]), q.Author) {
		return false
	}
	if q.Customer != "" && !containsFold(fieldText(row["Customer_x0020_Name"]), q.Customer) {
		return false
	}
	if len(q.Codes) > 0 {
		code := fieldText(row["Code"])
		matched := false
		for _, want := range q.Codes {
			if containsFold(code, want) {
				matched = true
				break
			}
		}
		if !matched {
			return false
		}
	}
	if q.Billable != "" && !containsFold(fieldText(row["Billable"]), q.Billable) {
		return false
	}
	if q.DateFrom != "" || q.DateTo != "" {
		workDate := domain.ParseWorkDate(row[domain.WorkDateField])
		if workDate.IsZero() {
			return false
		}
		if q.DateFrom != "" {
			if from := domain.ParseWorkDate(q.DateFrom); !from.IsZero() && workDate.Before(from) {
				return false
			}
		}
		if q.DateTo != "" {
			if to := domain.ParseWorkDate(q.DateTo); !to.IsZero() && workDate.After(to) {
				return false
			}
		}
	}
	return true
}

func sortRows(rows []domain.TimesheetRow, columns []string, q domain.TimesheetQuery) {
	sortable := false
	for _, col := range columns {
		if col == q.SortBy {
			sortable = true
			break
		}
	}
	if !sortable {
		return
	}
	sort.SliceStable(rows, func(i, j int) bool {
		a := strings.ToLower(fieldText(rows[i][q.SortBy]))
		b := strings.ToLower(fieldText(rows[j][q.SortBy]))
		if q.SortDesc {
			return a > b
		}
		return a < b
	})
}

// distinctOptions collects the sorted distinct non-empty values of one field
// across the unfiltered item set, for the filter dropdowns.
func distinctOptions(items []domain.ListItem, field string, author bool) []string {
	set := make(map[string]struct{})
	for _, it := range items {
		var v string
		if author {
			v = domain.AuthorText(it.Fields[field])
		} else {
			v = fieldText(it.Fields[field])
		}
		if v != "" {
			set[v] = struct{}{}
		}
	}
	options := make([]string, 0, len(set))
	for v := range set {
		options = append(options, v)
	}
	sort.Strings(options)
	return options
}

func rowText(row domain.TimesheetRow) string {
	var b strings.Builder
	for _, v := range row {
		if v == nil {
			continue
		}
		if b.Len() > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(fieldText(v))
	}
	return b.String()
}

func fieldText(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case map[string]any:
		return domain.AuthorText(t)
	default:
		return fmt.Sprint(t)
	}
}

func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
