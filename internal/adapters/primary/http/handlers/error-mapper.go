package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"m365-dashboard/internal/core/domain"
)

func mapDomainError(c *gin.Context, err error) {
	var tokenErr *domain.TokenError
	var upstreamErr *domain.UpstreamError

	switch {
	// Not found errors
	case errors.Is(err, domain.ErrConfigNotFound),
		errors.Is(err, domain.ErrUserNotFound),
		errors.Is(err, domain.ErrListNotFound),
		errors.Is(err, domain.ErrViewsNotAvailable),
		errors.Is(err, domain.ErrSiteNotResolved):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})

	// Conflict errors
	case errors.Is(err, domain.ErrUserAlreadyExists):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})

	// Auth errors
	case errors.Is(err, domain.ErrInvalidCredentials),
		errors.Is(err, domain.ErrInvalidToken):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})

	// Bad request / validation errors
	case errors.Is(err, domain.ErrMissingTenant),
		errors.Is(err, domain.ErrMissingClient),
		errors.Is(err, domain.ErrMissingSecret),
		errors.Is(err, domain.ErrMissingUsername),
		errors.Is(err, domain.ErrMissingPassword):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})

	// Upstream failures keep their diagnostic detail
	case errors.As(err, &tokenErr):
		c.JSON(http.StatusBadGateway, gin.H{"error": tokenErr.Error()})
	case errors.As(err, &upstreamErr):
		c.JSON(http.StatusBadGateway, gin.H{"error": upstreamErr.Error()})

	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
