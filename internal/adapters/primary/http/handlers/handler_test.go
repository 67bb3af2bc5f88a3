package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"

	"m365-dashboard/internal/adapters/primary/http/middleware"
	"m365-dashboard/internal/adapters/secondary/msauth"
	"m365-dashboard/internal/core/domain"
	"m365-dashboard/internal/core/services"
	"m365-dashboard/internal/testutil"
)

type routerMocks struct {
	configRepo *testutil.MockTenantConfigRepo
	userRepo   *testutil.MockUserRepo
	tokens     *testutil.MockTokenSource
	graph      *testutil.MockGraphClient
	sharepoint *testutil.MockSharePointClient
	authSvc    *services.AuthService
}

func setupRouter() (*routerMocks, *gin.Engine) {
	gin.SetMode(gin.TestMode)

	m := &routerMocks{
		configRepo: new(testutil.MockTenantConfigRepo),
		userRepo:   new(testutil.MockUserRepo),
		tokens:     new(testutil.MockTokenSource),
		graph:      new(testutil.MockGraphClient),
		sharepoint: new(testutil.MockSharePointClient),
	}
	m.authSvc = services.NewAuthService(m.userRepo, "test-secret", time.Hour)

	h := New(
		m.authSvc,
		services.NewConfigService(m.configRepo, m.tokens),
		services.NewCatalogService(m.configRepo, m.tokens, m.graph, m.sharepoint),
		services.NewTimesheetService(m.configRepo, m.tokens, m.graph, m.sharepoint),
		services.NewChartsService(m.configRepo, m.tokens, m.graph),
		services.NewColumnsService(m.configRepo, m.tokens, m.graph),
	)

	r := gin.New()
	api := r.Group("/api/v1/dashboard")
	h.RegisterPublicRoutes(api)
	protected := api.Group("")
	protected.Use(middleware.Auth(m.authSvc))
	h.RegisterRoutes(protected)

	return m, r
}

// sessionToken issues a token for "admin" through the real auth service.
func sessionToken(t *testing.T, m *routerMocks) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("pw"), bcrypt.MinCost)
	assert.NoError(t, err)
	m.userRepo.On("GetByUsername", mock.Anything, "admin").
		Return(&domain.User{Username: "admin", PasswordHash: string(hash), IsSuperuser: true}, nil)

	token, _, err := m.authSvc.Login(context.Background(), "admin", "pw")
	assert.NoError(t, err)
	return token
}

func doJSON(r *gin.Engine, method, path, token string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestLogin(t *testing.T) {
	m, r := setupRouter()

	hash, _ := bcrypt.GenerateFromPassword([]byte("hunter2"), bcrypt.MinCost)
	m.userRepo.On("GetByUsername", mock.Anything, "admin").
		Return(&domain.User{Username: "admin", PasswordHash: string(hash), IsSuperuser: true}, nil)

	w := doJSON(r, "POST", "/api/v1/dashboard/auth/login", "", gin.H{"username": "admin", "password": "hunter2"})
	assert.Equal(t, http.StatusOK, w.Code)

	var resp map[string]any
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	assert.NotEmpty(t, resp["token"])
	assert.Equal(t, "admin", resp["username"])
	assert.Equal(t, true, resp["is_superuser"])
}

func TestLogin_WrongPassword(t *testing.T) {
	m, r := setupRouter()

	hash, _ := bcrypt.GenerateFromPassword([]byte("hunter2"), bcrypt.MinCost)
	m.userRepo.On("GetByUsername", mock.Anything, "admin").
		Return(&domain.User{Username: "admin", PasswordHash: string(hash)}, nil)

	w := doJSON(r, "POST", "/api/v1/dashboard/auth/login", "", gin.H{"username": "admin", "password": "nope"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestLogin_MissingBody(t *testing.T) {
	_, r := setupRouter()

	w := doJSON(r, "POST", "/api/v1/dashboard/auth/login", "", gin.H{"username": "admin"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestProtectedRoutes_RequireToken(t *testing.T) {
	_, r := setupRouter()

	for _, path := range []string{"/settings", "/lists", "/timesheet", "/charts", "/debug-columns"} {
		w := doJSON(r, "GET", "/api/v1/dashboard"+path, "", nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code, path)
	}
}

func TestProtectedRoutes_RejectBadToken(t *testing.T) {
	_, r := setupRouter()

	w := doJSON(r, "GET", "/api/v1/dashboard/settings", "garbage", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestGetConfig(t *testing.T) {
	m, r := setupRouter()
	token := sessionToken(t, m)

	m.configRepo.On("Get", mock.Anything).Return(&domain.TenantConfig{
		TenantID:     "tenant-1",
		ClientID:     "client-1",
		ClientSecret: "shh",
	}, nil)

	w := doJSON(r, "GET", "/api/v1/dashboard/settings", token, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var resp map[string]any
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	assert.Equal(t, "tenant-1", resp["tenant_id"])
	assert.Equal(t, true, resp["has_client_secret"])
	assert.Equal(t, domain.DefaultTimesheetListName, resp["timesheet_list_name"])
	// The secret itself never leaves the server.
	assert.NotContains(t, w.Body.String(), "shh")
}

func TestGetConfig_NotConfigured(t *testing.T) {
	m, r := setupRouter()
	token := sessionToken(t, m)

	m.configRepo.On("Get", mock.Anything).Return(nil, domain.ErrConfigNotFound)

	w := doJSON(r, "GET", "/api/v1/dashboard/settings", token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSaveConfig(t *testing.T) {
	m, r := setupRouter()
	token := sessionToken(t, m)

	m.configRepo.On("Get", mock.Anything).Return(nil, domain.ErrConfigNotFound)
	m.configRepo.On("Save", mock.Anything, mock.AnythingOfType("*domain.TenantConfig")).Return(nil)

	w := doJSON(r, "PUT", "/api/v1/dashboard/settings", token, gin.H{
		"tenant_id":     "tenant-1",
		"client_id":     "client-1",
		"client_secret": "s3cret",
	})
	assert.Equal(t, http.StatusOK, w.Code)

	var resp map[string]any
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	assert.Equal(t, "tenant-1", resp["tenant_id"])
	assert.Equal(t, true, resp["has_client_secret"])
}

func TestSaveConfig_MissingFields(t *testing.T) {
	m, r := setupRouter()
	token := sessionToken(t, m)

	w := doJSON(r, "PUT", "/api/v1/dashboard/settings", token, gin.H{"client_id": "client-1"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestTestConnection_OK(t *testing.T) {
	m, r := setupRouter()
	token := sessionToken(t, m)

	cfg := &domain.TenantConfig{TenantID: "t", ClientID: "c", ClientSecret: "s"}
	m.configRepo.On("Get", mock.Anything).Return(cfg, nil)
	m.tokens.On("Acquire", mock.Anything, cfg.Credentials(), msauth.GraphScope).Return("tok", nil)

	w := doJSON(r, "POST", "/api/v1/dashboard/settings/test", token, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var resp map[string]any
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	assert.Equal(t, true, resp["ok"])
}

func TestTestConnection_GrantFailureStays200(t *testing.T) {
	m, r := setupRouter()
	token := sessionToken(t, m)

	cfg := &domain.TenantConfig{TenantID: "t", ClientID: "c", ClientSecret: "bad"}
	m.configRepo.On("Get", mock.Anything).Return(cfg, nil)
	m.tokens.On("Acquire", mock.Anything, cfg.Credentials(), msauth.GraphScope).
		Return("", &domain.TokenError{Code: "invalid_client", Description: "AADSTS7000215"})

	w := doJSON(r, "POST", "/api/v1/dashboard/settings/test", token, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var resp map[string]any
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	assert.Equal(t, false, resp["ok"])
	assert.Contains(t, resp["detail"], "invalid_client")
}

func TestTestConnection_NotConfigured(t *testing.T) {
	m, r := setupRouter()
	token := sessionToken(t, m)

	m.configRepo.On("Get", mock.Anything).Return(nil, domain.ErrConfigNotFound)

	w := doJSON(r, "POST", "/api/v1/dashboard/settings/test", token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestListLists(t *testing.T) {
	m, r := setupRouter()
	token := sessionToken(t, m)

	cfg := &domain.TenantConfig{TenantID: "t", ClientID: "c", ClientSecret: "s"}
	m.configRepo.On("Get", mock.Anything).Return(cfg, nil)
	m.tokens.On("Acquire", mock.Anything, cfg.Credentials(), msauth.GraphScope).Return("tok", nil)
	m.graph.On("GetRootSite", mock.Anything, "tok").Return(&domain.Site{ID: "site-1"}, nil)
	m.graph.On("ListLists", mock.Anything, "tok", "site-1").Return([]domain.SharePointList{
		{ID: "l1", DisplayName: "timesheet"},
	}, nil)

	w := doJSON(r, "GET", "/api/v1/dashboard/lists", token, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var resp map[string]any
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	assert.Equal(t, float64(1), resp["total"])
}

func TestListViews_UpstreamFailure(t *testing.T) {
	m, r := setupRouter()
	token := sessionToken(t, m)

	cfg := &domain.TenantConfig{TenantID: "t", ClientID: "c", ClientSecret: "s"}
	m.configRepo.On("Get", mock.Anything).Return(cfg, nil)
	m.tokens.On("Acquire", mock.Anything, cfg.Credentials(), msauth.GraphScope).Return("tok", nil)
	m.graph.On("GetRootSite", mock.Anything, "tok").Return(&domain.Site{ID: "site-1"}, nil)
	m.graph.On("ListViews", mock.Anything, "tok", "site-1", "list-1").
		Return(nil, &domain.UpstreamError{Operation: "graph views", Status: 503, Body: "busy"})

	w := doJSON(r, "GET", "/api/v1/dashboard/lists/list-1/views", token, nil)
	assert.Equal(t, http.StatusBadGateway, w.Code)
}

func TestGetTimesheet(t *testing.T) {
	m, r := setupRouter()
	token := sessionToken(t, m)

	cfg := &domain.TenantConfig{TenantID: "t", ClientID: "c", ClientSecret: "s"}
	m.configRepo.On("Get", mock.Anything).Return(cfg, nil)
	m.tokens.On("Acquire", mock.Anything, cfg.Credentials(), msauth.GraphScope).Return("tok", nil)
	m.graph.On("GetRootSite", mock.Anything, "tok").Return(&domain.Site{ID: "site-1"}, nil)
	m.graph.On("ListLists", mock.Anything, "tok", "site-1").Return([]domain.SharePointList{
		{ID: "list-1", DisplayName: "timesheet"},
	}, nil)
	m.graph.On("ListColumns", mock.Anything, "tok", "site-1", "list-1").Return([]domain.ColumnDefinition{
		{Name: "Author"}, {Name: "Hours"},
	}, nil)
	m.graph.On("ListItems", mock.Anything, "tok", "site-1", "list-1", []string{"Author", "Hours"}).
		Return([]domain.ListItem{
			{ID: "1", Fields: map[string]any{"Author": map[string]any{"LookupValue": "Alice"}, "Hours": 8.0}},
			{ID: "2", Fields: map[string]any{"Author": map[string]any{"LookupValue": "Bob"}, "Hours": 4.0}},
		}, nil)

	w := doJSON(r, "GET", "/api/v1/dashboard/timesheet?page=1&page_size=1&sort=Id&desc=true", token, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var resp map[string]any
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	assert.Equal(t, float64(2), resp["total"])
	assert.Equal(t, float64(2), resp["total_pages"])
	assert.Equal(t, true, resp["has_next"])
	assert.Equal(t, float64(12), resp["total_hours"])

	rows := resp["rows"].([]any)
	assert.Len(t, rows, 1)
	assert.Equal(t, "2", rows[0].(map[string]any)["Id"])
}

func TestGetCharts(t *testing.T) {
	m, r := setupRouter()
	token := sessionToken(t, m)

	cfg := &domain.TenantConfig{TenantID: "t", ClientID: "c", ClientSecret: "s"}
	m.configRepo.On("Get", mock.Anything).Return(cfg, nil)
	m.tokens.On("Acquire", mock.Anything, cfg.Credentials(), msauth.GraphScope).Return("tok", nil)
	m.graph.On("GetRootSite", mock.Anything, "tok").Return(&domain.Site{ID: "site-1"}, nil)
	m.graph.On("ListLists", mock.Anything, "tok", "site-1").Return([]domain.SharePointList{
		{ID: "list-1", DisplayName: "timesheet"},
	}, nil)
	m.graph.On("ListItems", mock.Anything, "tok", "site-1", "list-1",
		[]string{"Author", "Billable", "Hours", domain.WorkDateField}).
		Return([]domain.ListItem{
			{ID: "1", Fields: map[string]any{"Billable": true, "Hours": 6.0}},
		}, nil)

	w := doJSON(r, "GET", "/api/v1/dashboard/charts", token, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var resp map[string]any
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	assert.Equal(t, float64(6), resp["total_hours"])
}

func TestDebugColumns(t *testing.T) {
	m, r := setupRouter()
	token := sessionToken(t, m)

	cfg := &domain.TenantConfig{TenantID: "t", ClientID: "c", ClientSecret: "s"}
	m.configRepo.On("Get", mock.Anything).Return(cfg, nil)
	m.tokens.On("Acquire", mock.Anything, cfg.Credentials(), msauth.GraphScope).Return("tok", nil)
	m.graph.On("GetRootSite", mock.Anything, "tok").Return(&domain.Site{ID: "site-1"}, nil)
	m.graph.On("ListLists", mock.Anything, "tok", "site-1").Return([]domain.SharePointList{
		{ID: "list-1", DisplayName: "timesheet"},
	}, nil)
	m.graph.On("ListColumns", mock.Anything, "tok", "site-1", "list-1").Return([]domain.ColumnDefinition{
		{Name: "Hours", DisplayName: "Hours"},
		{Name: "Secret", Hidden: true},
	}, nil)

	w := doJSON(r, "GET", "/api/v1/dashboard/debug-columns", token, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var resp map[string]any
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	assert.Equal(t, "timesheet", resp["list_name"])
	assert.Equal(t, "root site", resp["site_path"])
	assert.Len(t, resp["columns"], 2)
}

func TestGetTimesheet_NotConfigured(t *testing.T) {
	m, r := setupRouter()
	token := sessionToken(t, m)

	m.configRepo.On("Get", mock.Anything).Return(nil, domain.ErrConfigNotFound)

	w := doJSON(r, "GET", "/api/v1/dashboard/timesheet", token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
