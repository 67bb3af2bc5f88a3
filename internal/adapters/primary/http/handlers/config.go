package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"m365-dashboard/internal/adapters/primary/http/dto"
	"m365-dashboard/internal/core/domain"
	"m365-dashboard/internal/core/services"
)

func (h *Handler) GetConfig(c *gin.Context) {
	cfg, err := h.configSvc.Get(c.Request.Context())
	if err != nil {
		mapDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToConfigResponse(cfg))
}

func (h *Handler) SaveConfig(c *gin.Context) {
	var req dto.SaveConfigRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	cfg, err := h.configSvc.Save(c.Request.Context(), services.SaveConfigParams{
		TenantID:           req.TenantID,
		ClientID:           req.ClientID,
		ClientSecret:       req.ClientSecret,
		SharePointHostname: req.SharePointHostname,
		TimesheetSitePath:  req.TimesheetSitePath,
		TimesheetListName:  req.TimesheetListName,
	})
	if err != nil {
		log.WithError(err).Error("save configuration failed")
		mapDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToConfigResponse(cfg))
}

// TestConnection verifies the saved credentials by acquiring a Graph token.
// A failed grant is reported in the response body rather than as an HTTP
// error, so the settings page can show the identity platform's diagnostics.
func (h *Handler) TestConnection(c *gin.Context) {
	err := h.configSvc.TestConnection(c.Request.Context())
	if err == nil {
		c.JSON(http.StatusOK, dto.TestConnectionResponse{OK: true})
		return
	}
	if errors.Is(err, domain.ErrConfigNotFound) {
		mapDomainError(c, err)
		return
	}

	log.WithError(err).Warn("connection test failed")
	c.JSON(http.StatusOK, dto.TestConnectionResponse{OK: false, Detail: err.Error()})
}
