package services

import (
	"context"

	"m365-dashboard/internal/adapters/secondary/msauth"
	"m365-dashboard/internal/core/domain"
	ports "m365-dashboard/internal/core/ports/output"
)

// ColumnsService exposes the raw column schema of the timesheet list for
// operators debugging field-name mismatches.
type ColumnsService struct {
	repo   ports.TenantConfigRepository
	tokens ports.TokenSource
	graph  ports.GraphClient
}

func NewColumnsService(repo ports.TenantConfigRepository, tokens ports.TokenSource, graph ports.GraphClient) *ColumnsService {
	return &ColumnsService{repo: repo, tokens: tokens, graph: graph}
}

// ColumnReport pairs the schema with the list and site it came from.
type ColumnReport struct {
	ListName string
	SitePath string
	Columns  []domain.ColumnDefinition
}

func (s *ColumnsService) Inspect(ctx context.Context) (*ColumnReport, error) {
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

	columns, err := s.graph.ListColumns(ctx, token, site.ID, list.ID)
	if err != nil {
		return nil, err
	}

	sitePath := cfg.TimesheetSitePath
	if sitePath == "" {
		sitePath = "root site"
	}
	return &ColumnReport{
		ListName: cfg.ListName(),
		SitePath: sitePath,
		Columns:  columns,
	}, nil
}
