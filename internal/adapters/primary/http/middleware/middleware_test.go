package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"

	"m365-dashboard/internal/core/domain"
	"m365-dashboard/internal/core/services"
	"m365-dashboard/internal/testutil"
)

func authFixture(t *testing.T) (*services.AuthService, string) {
	t.Helper()
	users := new(testutil.MockUserRepo)
	hash, err := bcrypt.GenerateFromPassword([]byte("pw"), bcrypt.MinCost)
	assert.NoError(t, err)
	users.On("GetByUsername", mock.Anything, "admin").
		Return(&domain.User{Username: "admin", PasswordHash: string(hash)}, nil)

	svc := services.NewAuthService(users, "test-secret", time.Hour)
	token, _, err := svc.Login(context.Background(), "admin", "pw")
	assert.NoError(t, err)
	return svc, token
}

func TestAuth_ValidToken(t *testing.T) {
	gin.SetMode(gin.TestMode)
	svc, token := authFixture(t)

	r := gin.New()
	r.Use(Auth(svc))
	r.GET("/probe", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"user": c.GetString(ContextUserKey)})
	})

	req := httptest.NewRequest("GET", "/probe", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "admin")
}

func TestAuth_MissingHeader(t *testing.T) {
	gin.SetMode(gin.TestMode)
	svc, _ := authFixture(t)

	r := gin.New()
	r.Use(Auth(svc))
	r.GET("/probe", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("GET", "/probe", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuth_MalformedHeader(t *testing.T) {
	gin.SetMode(gin.TestMode)
	svc, token := authFixture(t)

	r := gin.New()
	r.Use(Auth(svc))
	r.GET("/probe", func(c *gin.Context) { c.Status(http.StatusOK) })

	for _, header := range []string{token, "Bearer ", "Basic " + token} {
		req := httptest.NewRequest("GET", "/probe", nil)
		req.Header.Set("Authorization", header)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusUnauthorized, w.Code, header)
	}
}

func TestAllowedHosts(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.Use(AllowedHosts([]string{"dashboard.example.com"}))
	r.GET("/probe", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest("GET", "/probe", nil)
	req.Host = "dashboard.example.com"
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	req = httptest.NewRequest("GET", "/probe", nil)
	req.Host = "evil.example.com"
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAllowedHosts_IgnoresPort(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.Use(AllowedHosts([]string{"localhost"}))
	r.GET("/probe", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest("GET", "/probe", nil)
	req.Host = "localhost:8000"
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAllowedHosts_Wildcard(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.Use(AllowedHosts([]string{"*"}))
	r.GET("/probe", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest("GET", "/probe", nil)
	req.Host = "anything.example.com"
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}
