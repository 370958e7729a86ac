package view

import (
	"embed"
	"html/template"

	"github.com/applico/orchard-advisor/internal/models"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

// DashboardTemplate is the name of the dashboard page template
const DashboardTemplate = "dashboard.tmpl"

// Page is the data rendered by the dashboard template. Only the active
// tab's content is filled.
type Page struct {
	Title     string
	Nav       models.TabState
	Overview  *models.Overview
	Sensors   []models.SensorReading
	Grid      *models.GridSnapshot
	Analytics *models.Analytics
}

var funcs = template.FuncMap{
	"healthColor": HealthColor,
	"mul":         func(a, b float64) float64 { return a * b },
	"extent":      func(n int, cell float64) float64 { return float64(n) * cell },
}

// Templates parses the embedded page templates
func Templates() (*template.Template, error) {
	return template.New("").Funcs(funcs).ParseFS(templateFS, "templates/*.tmpl")
}

// HealthColor returns the map colour of a health category
func HealthColor(h models.HealthCategory) string {
	switch h {
	case models.HealthHealthy:
		return "#22c55e"
	case models.HealthWarning:
		return "#eab308"
	case models.HealthDiseased:
		return "#ef4444"
	}
	return "#9ca3af"
}
