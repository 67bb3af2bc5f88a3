package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"m365-dashboard/internal/adapters/primary/http/dto"
)

func (h *Handler) ListLists(c *gin.Context) {
	lists, err := h.catalogSvc.Lists(c.Request.Context())
	if err != nil {
		log.WithError(err).Error("list sharepoint lists failed")
		mapDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToListsResponse(lists))
}

func (h *Handler) ListViews(c *gin.Context) {
	listID := c.Param("id")

	views, err := h.catalogSvc.Views(c.Request.Context(), listID)
	if err != nil {
		log.WithField("list_id", listID).WithError(err).Error("list views failed")
		mapDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToViewsResponse(views))
}
