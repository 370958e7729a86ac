package models

import "time"

// HealthCategory is the health classification of a single tree
type HealthCategory string

// HealthCategory constants
const (
	HealthHealthy  HealthCategory = "healthy"
	HealthWarning  HealthCategory = "warning" // at-risk
	HealthDiseased HealthCategory = "diseased"
)

// Valid reports whether h is one of the known categories
func (h HealthCategory) Valid() bool {
	switch h {
	case HealthHealthy, HealthWarning, HealthDiseased:
		return true
	}
	return false
}

// Position is the layout coordinate of a tree on the orchard map
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// GeoLocation is the geographic location of a tree
type GeoLocation struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Tree represents one orchard tree on the generated grid
type Tree struct {
	ID         int            `json:"id"`  // Row-major, starting at 1
	Row        int            `json:"row"` // Zero-based
	Col        int            `json:"col"` // Zero-based
	Health     HealthCategory `json:"health"`
	Position   Position       `json:"position"`
	FruitCount int            `json:"fruit_count"`

	Location *GeoLocation `json:"location,omitempty"`
}

// FruitStatistics describes the fruit count distribution of a grid
type FruitStatistics struct {
	Total  int     `json:"total"`
	Mean   float64 `json:"mean"`
	Min    int     `json:"min"`
	Max    int     `json:"max"`
	Median float64 `json:"p50"`
	P90    float64 `json:"p90"`
}

// GridFootprint describes the geographic extent of a grid
type GridFootprint struct {
	AreaHectares    float64     `json:"area_hectares"`
	TreesPerHectare float64     `json:"trees_per_hectare"`
	NorthWest       GeoLocation `json:"north_west"`
	SouthEast       GeoLocation `json:"south_east"`
}

// GridSnapshot is one complete generated grid with its derived figures
type GridSnapshot struct {
	Rows        int             `json:"rows"`
	Cols        int             `json:"cols"`
	CellSize    float64         `json:"cell_size"`
	Trees       []Tree          `json:"trees"`
	Summary     OrchardSummary  `json:"summary"`
	Fruit       FruitStatistics `json:"fruit"`
	Footprint   *GridFootprint  `json:"footprint,omitempty"`
	Generation  int64           `json:"generation"`
	GeneratedAt time.Time       `json:"generated_at"`
}

// Classification is the result of classifying one draw
type Classification struct {
	Draw     float64        `json:"draw"`
	Health   HealthCategory `json:"health"`
	Warning  float64        `json:"warning_threshold"`
	Diseased float64        `json:"diseased_threshold"`
}
