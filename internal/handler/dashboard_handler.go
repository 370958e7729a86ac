package handler

import (
	"net/http"

	"github.com/applico/orchard-advisor/internal/service"
	"github.com/applico/orchard-advisor/internal/view"
	"github.com/applico/orchard-advisor/pkg/response"
	"github.com/gin-gonic/gin"
)

// PageTitle is the dashboard heading
const PageTitle = "Applico Virtual Agriculture Advisor"

// DashboardHandler handles the dashboard tabs, as JSON and as a page
type DashboardHandler struct {
	dashboard *service.DashboardService
	grid      *service.GridService
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(dashboard *service.DashboardService, grid *service.GridService) *DashboardHandler {
	return &DashboardHandler{dashboard: dashboard, grid: grid}
}

// GetTabs handles GET /api/v1/dashboard/tabs
func (h *DashboardHandler) GetTabs(c *gin.Context) {
	response.Success(c, h.dashboard.Tabs(c.Query("tab")))
}

// GetOverview handles GET /api/v1/dashboard/overview
func (h *DashboardHandler) GetOverview(c *gin.Context) {
	response.Success(c, h.dashboard.Overview())
}

// GetAnalytics handles GET /api/v1/dashboard/analytics
func (h *DashboardHandler) GetAnalytics(c *gin.Context) {
	analytics, err := h.dashboard.Analytics()
	if err != nil {
		response.InternalError(c, "Failed to get analytics", err)
		return
	}
	response.Success(c, analytics)
}

// Page handles GET / and GET /dashboard, rendering only the active tab
func (h *DashboardHandler) Page(c *gin.Context) {
	page := view.Page{
		Title: PageTitle,
		Nav:   h.dashboard.Tabs(c.Query("tab")),
	}

	switch page.Nav.Active {
	case service.TabSensors:
		page.Sensors = h.dashboard.Sensors()
	case service.TabOrchardMap:
		snap, err := h.grid.Snapshot()
		if err != nil {
			c.String(http.StatusInternalServerError, "failed to build orchard map: %v", err)
			return
		}
		page.Grid = snap
	case service.TabAnalytics:
		analytics, err := h.dashboard.Analytics()
		if err != nil {
			c.String(http.StatusInternalServerError, "failed to build analytics: %v", err)
			return
		}
		page.Analytics = &analytics
	default:
		overview := h.dashboard.Overview()
		page.Overview = &overview
	}

	c.HTML(http.StatusOK, view.DashboardTemplate, page)
}
