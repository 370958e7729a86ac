package service

import (
	"errors"
	"strings"

	"github.com/applico/orchard-advisor/internal/config"
	"github.com/applico/orchard-advisor/internal/models"
	"github.com/applico/orchard-advisor/internal/orchard"
	"github.com/applico/orchard-advisor/internal/stats"
)

// ErrSensorNotFound reports an unknown sensor id
var ErrSensorNotFound = errors.New("sensor not found")

// LoadingDelayMs is how long the client shows its spinner on tab switch
const LoadingDelayMs = 300

// Dashboard tab names
const (
	TabOverview   = "Overview"
	TabSensors    = "Sensors"
	TabOrchardMap = "Orchard Map"
	TabAnalytics  = "Analytics"
)

// Dashboard tabs in display order
var dashboardTabs = []models.Tab{
	{Name: TabOverview, Label: "Home", Slug: "overview"},
	{Name: TabSensors, Label: "Sensors", Slug: "sensors"},
	{Name: TabOrchardMap, Label: "Map", Slug: "orchard-map"},
	{Name: TabAnalytics, Label: "Stats", Slug: "analytics"},
}

// DashboardService assembles the content of each dashboard tab
type DashboardService struct {
	display *config.Display
	grid    *GridService
}

// NewDashboardService creates a new dashboard service
func NewDashboardService(display *config.Display, grid *GridService) *DashboardService {
	return &DashboardService{
		display: display,
		grid:    grid,
	}
}

// OrchardSummary returns the orchard-wide health summary
func (s *DashboardService) OrchardSummary() models.OrchardSummary {
	o := s.display.Orchard
	return orchard.SummarizeCounts(o.Healthy, o.AtRisk, o.Diseased)
}

// Density returns orchard-wide trees per hectare, 0 when the area is unknown
func (s *DashboardService) Density() float64 {
	o := s.display.Orchard
	if o.Hectares <= 0 {
		return 0
	}
	return float64(o.Total()) / o.Hectares
}

// Overview returns the Overview tab content
func (s *DashboardService) Overview() models.Overview {
	return models.Overview{
		Disease:         s.display.Disease,
		Yield:           s.display.Yield,
		Weather:         s.display.Weather,
		Recommendations: s.display.Recommendations,
		Orchard:         s.OrchardSummary(),
		Density:         s.Density(),
	}
}

// Analytics returns the Analytics tab content
func (s *DashboardService) Analytics() (models.Analytics, error) {
	snap, err := s.grid.Snapshot()
	if err != nil {
		return models.Analytics{}, err
	}

	return models.Analytics{
		Yield:    s.display.Yield,
		Orchard:  s.OrchardSummary(),
		Sections: s.Sections(),
		Grid:     snap.Summary,
		Fruit:    snap.Fruit,
	}, nil
}

// Sections returns every section with its share of the orchard
func (s *DashboardService) Sections() []models.SectionShare {
	total := s.display.Orchard.Total()

	shares := make([]models.SectionShare, 0, len(s.display.Sections))
	for _, sec := range s.display.Sections {
		shares = append(shares, models.SectionShare{
			Section:      sec,
			SharePercent: stats.RoundPercent(sec.Trees, total),
		})
	}
	return shares
}

// Sensors returns all sensor readings with chart bar heights
func (s *DashboardService) Sensors() []models.SensorReading {
	readings := make([]models.SensorReading, 0, len(s.display.Sensors))
	for _, r := range s.display.Sensors {
		readings = append(readings, withChart(r))
	}
	return readings
}

// Sensor returns one sensor reading by id
func (s *DashboardService) Sensor(id string) (*models.SensorReading, error) {
	for _, r := range s.display.Sensors {
		if r.ID == id {
			reading := withChart(r)
			return &reading, nil
		}
	}
	return nil, ErrSensorNotFound
}

// Tabs returns the navigation state with exactly one active tab.
// Unknown or empty names select Overview.
func (s *DashboardService) Tabs(active string) models.TabState {
	name := ResolveTab(active)

	tabs := make([]models.Tab, len(dashboardTabs))
	for i, t := range dashboardTabs {
		t.Active = t.Name == name
		tabs[i] = t
	}

	return models.TabState{
		Tabs:           tabs,
		Active:         name,
		LoadingDelayMs: LoadingDelayMs,
	}
}

// ResolveTab maps a tab name or slug, case-insensitively, to its name
func ResolveTab(nameOrSlug string) string {
	v := strings.TrimSpace(nameOrSlug)
	for _, t := range dashboardTabs {
		if strings.EqualFold(v, t.Name) || strings.EqualFold(v, t.Slug) {
			return t.Name
		}
	}
	return dashboardTabs[0].Name
}

// withChart copies r and fills its bar heights relative to the history maximum
func withChart(r models.SensorReading) models.SensorReading {
	history := make([]float64, len(r.History))
	copy(history, r.History)
	r.History = history

	var max float64
	for _, v := range history {
		if v > max {
			max = v
		}
	}

	r.Chart = make([]int, len(history))
	for i, v := range history {
		r.Chart[i] = stats.ScalePercent(v, max)
	}
	return r
}
