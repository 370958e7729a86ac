package handler

import (
	"errors"

	"github.com/applico/orchard-advisor/internal/models"
	"github.com/applico/orchard-advisor/internal/orchard"
	"github.com/applico/orchard-advisor/internal/service"
	"github.com/applico/orchard-advisor/pkg/response"
	"github.com/gin-gonic/gin"
)

// OrchardHandler handles HTTP requests for the tree grid and health summaries
type OrchardHandler struct {
	grid      *service.GridService
	dashboard *service.DashboardService
}

// NewOrchardHandler creates a new orchard handler
func NewOrchardHandler(grid *service.GridService, dashboard *service.DashboardService) *OrchardHandler {
	return &OrchardHandler{grid: grid, dashboard: dashboard}
}

// GetGrid handles GET /api/v1/orchard/grid
// Without rows/cols it returns the session grid; with either it builds a one-off grid.
func (h *OrchardHandler) GetGrid(c *gin.Context) {
	var q models.GridQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.BadRequest(c, "Invalid query parameters", err)
		return
	}

	if q.Rows == nil && q.Cols == nil {
		snap, err := h.grid.Snapshot()
		if err != nil {
			response.InternalError(c, "Failed to get grid", err)
			return
		}
		response.Success(c, snap)
		return
	}

	rows, cols := h.grid.Dimensions()
	if q.Rows != nil {
		rows = *q.Rows
	}
	if q.Cols != nil {
		cols = *q.Cols
	}

	snap, err := h.grid.Generate(rows, cols)
	if err != nil {
		writeGridError(c, err)
		return
	}
	response.Success(c, snap)
}

// RegenerateGrid handles POST /api/v1/orchard/grid/regenerate
func (h *OrchardHandler) RegenerateGrid(c *gin.Context) {
	snap, err := h.grid.Regenerate()
	if err != nil {
		writeGridError(c, err)
		return
	}
	response.Success(c, snap)
}

// GetGridSummary handles GET /api/v1/orchard/grid/summary
func (h *OrchardHandler) GetGridSummary(c *gin.Context) {
	summary, err := h.grid.Summary()
	if err != nil {
		response.InternalError(c, "Failed to summarize grid", err)
		return
	}
	response.Success(c, summary)
}

// GetOrchardSummary handles GET /api/v1/orchard/summary
func (h *OrchardHandler) GetOrchardSummary(c *gin.Context) {
	response.Success(c, gin.H{
		"summary":           h.dashboard.OrchardSummary(),
		"trees_per_hectare": h.dashboard.Density(),
	})
}

// Classify handles GET /api/v1/orchard/classify
func (h *OrchardHandler) Classify(c *gin.Context) {
	var q models.ClassifyQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.BadRequest(c, "Invalid query parameters", err)
		return
	}

	var override *orchard.Thresholds
	if q.Warning != nil || q.Diseased != nil {
		t := h.grid.Thresholds()
		if q.Warning != nil {
			t.Warning = *q.Warning
		}
		if q.Diseased != nil {
			t.Diseased = *q.Diseased
		}
		override = &t
	}

	health, used, err := h.grid.Classify(*q.Draw, override)
	if err != nil {
		response.BadRequest(c, "Invalid classification request", err)
		return
	}

	response.Success(c, models.Classification{
		Draw:     *q.Draw,
		Health:   health,
		Warning:  used.Warning,
		Diseased: used.Diseased,
	})
}

// writeGridError maps grid generation errors to status codes
func writeGridError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, orchard.ErrInvalidDimension):
		response.BadRequest(c, "Invalid grid dimensions", err)
	case errors.Is(err, orchard.ErrGridTooLarge):
		response.BadRequest(c, "Grid too large", err)
	case errors.Is(err, orchard.ErrInvalidGridConfig):
		response.InternalError(c, "Grid is misconfigured", err)
	default:
		response.InternalError(c, "Failed to generate grid", err)
	}
}
