package services

import (
	"context"

	log "github.com/sirupsen/logrus"

	"m365-dashboard/internal/adapters/secondary/msauth"
	"m365-dashboard/internal/core/domain"
	ports "m365-dashboard/internal/core/ports/output"
)

// CatalogService browses the SharePoint lists and views of the tenant's root
// site.
type CatalogService struct {
	repo       ports.TenantConfigRepository
	tokens     ports.TokenSource
	graph      ports.GraphClient
	sharepoint ports.SharePointClient
}

func NewCatalogService(
	repo ports.TenantConfigRepository,
	tokens ports.TokenSource,
	graph ports.GraphClient,
	sharepoint ports.SharePointClient,
) *CatalogService {
	return &CatalogService{repo: repo, tokens: tokens, graph: graph, sharepoint: sharepoint}
}

// Lists returns every list on the root SharePoint site.
func (s *CatalogService) Lists(ctx context.Context) ([]domain.SharePointList, error) {
	cfg, err := s.repo.Get(ctx)
	if err != nil {
		return nil, err
	}

	token, err := s.tokens.Acquire(ctx, cfg.Credentials(), msauth.GraphScope)
	if err != nil {
		return nil, err
	}

	site, err := s.graph.GetRootSite(ctx, token)
	if err != nil {
		return nil, err
	}

	return s.graph.ListLists(ctx, token, site.ID)
}

// Views returns the saved views of a list. Tenants with a configured
// SharePoint hostname are read through the REST API (which reports view
// metadata reliably); others go through Graph beta with its expand fallback.
func (s *CatalogService) Views(ctx context.Context, listID string) ([]domain.ListView, error) {
	cfg, err := s.repo.Get(ctx)
	if err != nil {
		return nil, err
	}

	token, err := s.tokens.Acquire(ctx, cfg.Credentials(), msauth.GraphScope)
	if err != nil {
		return nil, err
	}

	site, err := s.graph.GetRootSite(ctx, token)
	if err != nil {
		return nil, err
	}

	if cfg.SharePointHostname == "" {
		return s.graph.ListViews(ctx, token, site.ID, listID)
	}

	spToken, err := s.tokens.Acquire(ctx, cfg.Credentials(), msauth.SharePointScope(cfg.SharePointHostname))
	if err != nil {
		return nil, err
	}

	// REST addresses lists by GUID; resolve through Graph first.
	list, err := s.graph.GetList(ctx, token, site.ID, listID)
	if err != nil {
		return nil, err
	}

	views, err := s.sharepoint.ListViews(ctx, spToken, cfg.SharePointHostname, list.ID)
	if err != nil {
		log.WithError(err).Warn("sharepoint rest views failed, falling back to graph")
		return s.graph.ListViews(ctx, token, site.ID, listID)
	}
	return views, nil
}
