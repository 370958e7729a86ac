package models

// DiseaseRisk describes the risk of one disease
type DiseaseRisk struct {
	Name        string `json:"name" yaml:"name"`
	Risk        string `json:"risk" yaml:"risk"` // Low, Moderate, High
	Probability int    `json:"probability" yaml:"probability"`
	Note        string `json:"note,omitempty" yaml:"note"`
}

// OverallRisk is the orchard-wide disease risk
type OverallRisk struct {
	Level string  `json:"level" yaml:"level"`
	Score float64 `json:"score" yaml:"score"`
	Trend string  `json:"trend" yaml:"trend"`
}

// DiseaseOutlook groups the overall and per-disease risks
type DiseaseOutlook struct {
	Overall  OverallRisk   `json:"overall" yaml:"overall"`
	Diseases []DiseaseRisk `json:"diseases" yaml:"diseases"`
}

// YieldPrediction is the estimated harvest
type YieldPrediction struct {
	Tons           float64 `json:"tons" yaml:"tons"`
	PerHectare     float64 `json:"per_hectare" yaml:"per_hectare"`
	Confidence     int     `json:"confidence" yaml:"confidence"`
	CurrentPrice   string  `json:"current_price" yaml:"current_price"`
	ProjectedPrice string  `json:"projected_price" yaml:"projected_price"`
	Revenue        string  `json:"revenue" yaml:"revenue"`
	HarvestWindow  string  `json:"harvest_window" yaml:"harvest_window"`
	DaysRemaining  int     `json:"days_remaining" yaml:"days_remaining"`
}

// Weather is the current weather and short forecast
type Weather struct {
	Temperature      float64 `json:"temperature" yaml:"temperature"`
	Humidity         float64 `json:"humidity" yaml:"humidity"`
	WindSpeed        float64 `json:"wind_speed" yaml:"wind_speed"`
	Pressure         float64 `json:"pressure" yaml:"pressure"`
	FrostRisk        string  `json:"frost_risk" yaml:"frost_risk"`
	HailRisk         string  `json:"hail_risk" yaml:"hail_risk"`
	OptimalSpray     string  `json:"optimal_spray" yaml:"optimal_spray"`
	EvapoToday       float64 `json:"evapotranspiration_today" yaml:"evapotranspiration_today"`
	EvapoWeekly      float64 `json:"evapotranspiration_weekly" yaml:"evapotranspiration_weekly"`
	IrrigationNeeded bool    `json:"irrigation_needed" yaml:"irrigation_needed"`
}

// Recommendation type constants
const (
	RecommendationCritical    = "critical"
	RecommendationAdvisory    = "advisory"
	RecommendationOpportunity = "opportunity"
)

// Recommendation is an advisory message shown on the Overview tab
type Recommendation struct {
	ID          int    `json:"id" yaml:"id"`
	Type        string `json:"type" yaml:"type"` // critical, advisory, opportunity
	Category    string `json:"category" yaml:"category"`
	Title       string `json:"title" yaml:"title"`
	Description string `json:"description" yaml:"description"`
	Action      string `json:"action" yaml:"action"`
	Confidence  int    `json:"confidence" yaml:"confidence"`
	Time        string `json:"time" yaml:"time"`
	Delivered   string `json:"delivered" yaml:"delivered"`
	Equipment   string `json:"equipment" yaml:"equipment"`
}

// Section is a named block of the orchard
type Section struct {
	ID       string         `json:"id" yaml:"id"`
	Name     string         `json:"name" yaml:"name"`
	Trees    int            `json:"trees" yaml:"trees"`
	Health   HealthCategory `json:"health" yaml:"health"`
	Coverage int            `json:"coverage" yaml:"coverage"` // Drone coverage percent
}

// OrchardCounts are the orchard-wide tree counts per health category
type OrchardCounts struct {
	Healthy  int     `json:"healthy" yaml:"healthy"`
	AtRisk   int     `json:"at_risk" yaml:"at_risk"`
	Diseased int     `json:"diseased" yaml:"diseased"`
	Hectares float64 `json:"hectares" yaml:"hectares"`
}

// Total returns the sum of all categories
func (c OrchardCounts) Total() int {
	return c.Healthy + c.AtRisk + c.Diseased
}

// Overview is the payload of the Overview tab
type Overview struct {
	Disease         DiseaseOutlook   `json:"disease"`
	Yield           YieldPrediction  `json:"yield"`
	Weather         Weather          `json:"weather"`
	Recommendations []Recommendation `json:"recommendations"`
	Orchard         OrchardSummary   `json:"orchard"`
	Density         float64          `json:"trees_per_hectare"`
}

// Analytics is the payload of the Analytics tab
type Analytics struct {
	Yield    YieldPrediction `json:"yield"`
	Orchard  OrchardSummary  `json:"orchard"`
	Sections []SectionShare  `json:"sections"`
	Grid     OrchardSummary  `json:"grid"`
	Fruit    FruitStatistics `json:"fruit"`
}

// Tab is one dashboard tab
type Tab struct {
	Name   string `json:"name"`
	Label  string `json:"label"` // Short label for mobile navigation
	Slug   string `json:"slug"`
	Active bool   `json:"active"`
}

// TabState is the dashboard navigation state
type TabState struct {
	Tabs           []Tab  `json:"tabs"`
	Active         string `json:"active"`
	LoadingDelayMs int    `json:"loading_delay_ms"`
}
