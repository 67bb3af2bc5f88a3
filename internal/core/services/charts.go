package services

import (
	"context"
	"math"
	"sort"
	"strconv"
	"time"

	"m365-dashboard/internal/adapters/secondary/msauth"
	"m365-dashboard/internal/core/domain"
	ports "m365-dashboard/internal/core/ports/output"
)

// categoryColors are the fixed chart colors per billable category.
var categoryColors = map[string]string{
	domain.BillableTrue:    "#107c10",
	domain.BillableFalse:   "#d83b01",
	domain.BillableUnknown: "#605e5c",
}

// ChartsService aggregates timesheet hours for the dashboard charts.
type ChartsService struct {
	repo   ports.TenantConfigRepository
	tokens ports.TokenSource
	graph  ports.GraphClient
}

func NewChartsService(repo ports.TenantConfigRepository, tokens ports.TokenSource, graph ports.GraphClient) *ChartsService {
	return &ChartsService{repo: repo, tokens: tokens, graph: graph}
}

// Build reads the timesheet and aggregates hours into a billable pie and a
// monthly trend. authorFilter, when non-empty, restricts the aggregation to
// matching authors (substring, case-insensitive); the distinct author list is
// always computed over the full set so the filter dropdown stays complete.
func (s *ChartsService) Build(ctx context.Context, authorFilter string) (*domain.ChartData, error) {
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

	items, err := s.graph.ListItems(ctx, token, site.ID, list.ID, []string{"Author", "Billable", "Hours", domain.WorkDateField})
	if err != nil {
		return nil, err
	}

	return aggregate(items, authorFilter), nil
}

func aggregate(items []domain.ListItem, authorFilter string) *domain.ChartData {
	billableHours := map[string]float64{
		domain.BillableTrue:    0,
		domain.BillableFalse:   0,
		domain.BillableUnknown: 0,
	}
	monthly := make(map[string]map[string]float64)
	authors := make(map[string]struct{})
	totalItems := 0

	for _, it := range items {
		author := domain.AuthorText(it.Fields["Author"])
		if author != "" {
			authors[author] = struct{}{}
		}
		if authorFilter != "" && !containsFold(author, authorFilter) {
			continue
		}
		totalItems++

		hours := domain.Hours(it.Fields["Hours"])
		category := domain.BillableCategory(it.Fields["Billable"])
		billableHours[category] += hours

		if workDate := domain.ParseWorkDate(it.Fields[domain.WorkDateField]); !workDate.IsZero() {
			key := workDate.Format("2006-01")
			if monthly[key] == nil {
				monthly[key] = make(map[string]float64)
			}
			monthly[key][category] += hours
		}
	}

	data := &domain.ChartData{
		TotalItems:    totalItems,
		BillableHours: make(map[string]float64, len(billableHours)),
	}

	for _, category := range []string{domain.BillableTrue, domain.BillableFalse, domain.BillableUnknown} {
		hours := billableHours[category]
		data.TotalHours += hours
		data.BillableHours[category] = round1(hours)
		if hours > 0 {
			data.Pie.Labels = append(data.Pie.Labels, pieLabel(category, hours))
			data.Pie.Data = append(data.Pie.Data, round1(hours))
			data.Pie.Colors = append(data.Pie.Colors, categoryColors[category])
		}
	}
	data.TotalHours = round1(data.TotalHours)

	months := make([]string, 0, len(monthly))
	for key := range monthly {
		months = append(months, key)
	}
	sort.Strings(months)

	for _, key := range months {
		label := key
		if t, err := time.Parse("2006-01", key); err == nil {
			label = t.Format("Jan 2006")
		}
		billable := round1(monthly[key][domain.BillableTrue])
		nonBillable := round1(monthly[key][domain.BillableFalse] + monthly[key][domain.BillableUnknown])

		data.Monthly.Labels = append(data.Monthly.Labels, label)
		data.Monthly.Billable = append(data.Monthly.Billable, billable)
		data.Monthly.NonBillable = append(data.Monthly.NonBillable, nonBillable)
		data.Monthly.Total = append(data.Monthly.Total, round1(billable+nonBillable))
	}

	for author := range authors {
		data.Authors = append(data.Authors, author)
	}
	sort.Strings(data.Authors)

	return data
}

func pieLabel(category string, hours float64) string {
	return category + " (" + formatHours(hours) + "h)"
}

func formatHours(hours float64) string {
	return strconv.FormatFloat(round1(hours), 'f', 1, 64)
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
