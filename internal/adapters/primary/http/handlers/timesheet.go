package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"m365-dashboard/internal/adapters/primary/http/dto"
	"m365-dashboard/internal/core/domain"
)

func (h *Handler) GetTimesheet(c *gin.Context) {
	q := domain.TimesheetQuery{
		Page:     intQuery(c, "page", 1),
		PageSize: intQuery(c, "page_size", 10),
		Search:   c.Query("search"),
		SortBy:   c.DefaultQuery("sort", "Id"),
		SortDesc: c.Query("desc") == "true",
		Author:   c.Query("author"),
		Customer: c.Query("customer"),
		Codes:    c.QueryArray("code"),
		Billable: c.Query("billable"),
		DateFrom: c.Query("date_from"),
		DateTo:   c.Query("date_to"),
	}

	page, err := h.timesheetSvc.Fetch(c.Request.Context(), q)
	if err != nil {
		log.WithError(err).Error("timesheet fetch failed")
		mapDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToTimesheetResponse(page))
}

func (h *Handler) GetCharts(c *gin.Context) {
	data, err := h.chartsSvc.Build(c.Request.Context(), c.Query("author"))
	if err != nil {
		log.WithError(err).Error("charts build failed")
		mapDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToChartsResponse(data))
}

func (h *Handler) DebugColumns(c *gin.Context) {
	report, err := h.columnsSvc.Inspect(c.Request.Context())
	if err != nil {
		log.WithError(err).Error("column inspection failed")
		mapDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToColumnsResponse(report))
}

func intQuery(c *gin.Context, name string, fallback int) int {
	v, err := strconv.Atoi(c.Query(name))
	if err != nil {
		return fallback
	}
	return v
}
