package handlers

import (
	"github.com/gin-gonic/gin"

	"m365-dashboard/internal/core/services"
)

type Handler struct {
	authSvc      *services.AuthService
	configSvc    *services.ConfigService
	catalogSvc   *services.CatalogService
	timesheetSvc *services.TimesheetService
	chartsSvc    *services.ChartsService
	columnsSvc   *services.ColumnsService
}

func New(
	authSvc *services.AuthService,
	configSvc *services.ConfigService,
	catalogSvc *services.CatalogService,
	timesheetSvc *services.TimesheetService,
	chartsSvc *services.ChartsService,
	columnsSvc *services.ColumnsService,
) *Handler {
	return &Handler{
		authSvc:      authSvc,
		configSvc:    configSvc,
		catalogSvc:   catalogSvc,
		timesheetSvc: timesheetSvc,
		chartsSvc:    chartsSvc,
		columnsSvc:   columnsSvc,
	}
}

// RegisterPublicRoutes registers the routes reachable without a session.
func (h *Handler) RegisterPublicRoutes(r *gin.RouterGroup) {
	r.POST("/auth/login", h.Login)
}

// RegisterRoutes registers the session-guarded dashboard routes.
func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	// Settings
	r.GET("/settings", h.GetConfig)
	r.PUT("/settings", h.SaveConfig)
	r.POST("/settings/test", h.TestConnection)

	// SharePoint catalog
	r.GET("/lists", h.ListLists)
	r.GET("/lists/:id/views", h.ListViews)

	// Timesheet
	r.GET("/timesheet", h.GetTimesheet)
	r.GET("/charts", h.GetCharts)
	r.GET("/debug-columns", h.DebugColumns)
}
