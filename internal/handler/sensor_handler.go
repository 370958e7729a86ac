package handler

import (
	"errors"
	"net/http"

	"github.com/applico/orchard-advisor/internal/service"
	"github.com/applico/orchard-advisor/pkg/response"
	"github.com/gin-gonic/gin"
)

// SensorHandler handles HTTP requests for sensor readings
type SensorHandler struct {
	dashboard *service.DashboardService
}

// NewSensorHandler creates a new sensor handler
func NewSensorHandler(dashboard *service.DashboardService) *SensorHandler {
	return &SensorHandler{dashboard: dashboard}
}

// GetSensors handles GET /api/v1/sensors
func (h *SensorHandler) GetSensors(c *gin.Context) {
	readings := h.dashboard.Sensors()
	response.Success(c, gin.H{
		"data":  readings,
		"count": len(readings),
	})
}

// GetSensor handles GET /api/v1/sensors/:id
func (h *SensorHandler) GetSensor(c *gin.Context) {
	reading, err := h.dashboard.Sensor(c.Param("id"))
	if errors.Is(err, service.ErrSensorNotFound) {
		response.NotFound(c, "Sensor not found")
		return
	}
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "Failed to get sensor", err)
		return
	}
	response.Success(c, reading)
}
