package api

import (
	"fmt"
	"net/http"

	"github.com/applico/orchard-advisor/internal/config"
	"github.com/applico/orchard-advisor/internal/handler"
	"github.com/applico/orchard-advisor/internal/middleware"
	"github.com/applico/orchard-advisor/internal/view"
	"github.com/gin-gonic/gin"
)

// Handlers groups the HTTP handlers mounted by SetupRouter
type Handlers struct {
	Orchard   *handler.OrchardHandler
	Sensor    *handler.SensorHandler
	Dashboard *handler.DashboardHandler
}

// SetupRouter 设置路由
func SetupRouter(cfg *config.Config, h Handlers) (*gin.Engine, error) {
	r := gin.New()
	r.Use(middleware.RequestID(), middleware.Logger(), gin.Recovery())

	// CORS 中间件
	r.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, "+middleware.RequestIDHeader)

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	})

	tmpl, err := view.Templates()
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}
	r.SetHTMLTemplate(tmpl)

	// 健康检查
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"message": "Orchard Advisor API is running",
		})
	})

	r.GET("/", h.Dashboard.Page)
	r.GET("/dashboard", h.Dashboard.Page)

	limiter := middleware.NewRateLimiter(cfg.RateLimit, cfg.RateWindow)

	// API 路由组
	api := r.Group("/api/v1")
	{
		orchard := api.Group("/orchard")
		{
			orchard.GET("/summary", h.Orchard.GetOrchardSummary)
			orchard.GET("/classify", h.Orchard.Classify)
			orchard.GET("/grid", h.Orchard.GetGrid)
			orchard.GET("/grid/summary", h.Orchard.GetGridSummary)
			orchard.POST("/grid/regenerate", middleware.RateLimit(limiter), h.Orchard.RegenerateGrid)
		}

		sensors := api.Group("/sensors")
		{
			sensors.GET("", h.Sensor.GetSensors)
			sensors.GET("/:id", h.Sensor.GetSensor)
		}

		dashboard := api.Group("/dashboard")
		{
			dashboard.GET("/tabs", h.Dashboard.GetTabs)
			dashboard.GET("/overview", h.Dashboard.GetOverview)
			dashboard.GET("/analytics", h.Dashboard.GetAnalytics)
		}
	}

	return r, nil
}
