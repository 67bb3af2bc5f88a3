// Package testutil provides testify mocks for the output ports.
package testutil

import (
	"context"

	"github.com/stretchr/testify/mock"

	"m365-dashboard/internal/core/domain"
)

// MockTenantConfigRepo is a mock of TenantConfigRepository.
type MockTenantConfigRepo struct {
	mock.Mock
}

func (m *MockTenantConfigRepo) Get(ctx context.Context) (*domain.TenantConfig, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TenantConfig), args.Error(1)
}

func (m *MockTenantConfigRepo) Save(ctx context.Context, cfg *domain.TenantConfig) error {
	args := m.Called(ctx, cfg)
	return args.Error(0)
}

// MockUserRepo is a mock of UserRepository.
type MockUserRepo struct {
	mock.Mock
}

func (m *MockUserRepo) Create(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepo) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

// MockTokenSource is a mock of TokenSource.
type MockTokenSource struct {
	mock.Mock
}

func (m *MockTokenSource) Acquire(ctx context.Context, creds domain.ClientCredentials, scope string) (string, error) {
	args := m.Called(ctx, creds, scope)
	return args.String(0), args.Error(1)
}

// MockGraphClient is a mock of GraphClient.
type MockGraphClient struct {
	mock.Mock
}

func (m *MockGraphClient) GetRootSite(ctx context.Context, token string) (*domain.Site, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Site), args.Error(1)
}

func (m *MockGraphClient) GetSiteByPath(ctx context.Context, token, hostname, sitePath string) (*domain.Site, error) {
	args := m.Called(ctx, token, hostname, sitePath)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Site), args.Error(1)
}

func (m *MockGraphClient) ListLists(ctx context.Context, token, siteID string) ([]domain.SharePointList, error) {
	args := m.Called(ctx, token, siteID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.SharePointList), args.Error(1)
}

func (m *MockGraphClient) GetList(ctx context.Context, token, siteID, listID string) (*domain.SharePointList, error) {
	args := m.Called(ctx, token, siteID, listID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SharePointList), args.Error(1)
}

func (m *MockGraphClient) ListViews(ctx context.Context, token, siteID, listID string) ([]domain.ListView, error) {
	args := m.Called(ctx, token, siteID, listID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ListView), args.Error(1)
}

func (m *MockGraphClient) ListColumns(ctx context.Context, token, siteID, listID string) ([]domain.ColumnDefinition, error) {
	args := m.Called(ctx, token, siteID, listID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ColumnDefinition), args.Error(1)
}

func (m *MockGraphClient) ListItems(ctx context.Context, token, siteID, listID string, fields []string) ([]domain.ListItem, error) {
	args := m.Called(ctx, token, siteID, listID, fields)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ListItem), args.Error(1)
}

// MockSharePointClient is a mock of SharePointClient.
type MockSharePointClient struct {
	mock.Mock
}

func (m *MockSharePointClient) ListViews(ctx context.Context, token, hostname, listGUID string) ([]domain.ListView, error) {
	args := m.Called(ctx, token, hostname, listGUID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ListView), args.Error(1)
}

func (m *MockSharePointClient) ListItemsByTitle(ctx context.Context, token, hostname, sitePath, listTitle, search string) ([]domain.ListItem, error) {
	args := m.Called(ctx, token, hostname, sitePath, listTitle, search)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ListItem), args.Error(1)
}
