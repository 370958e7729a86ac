package models

// Sensor status constants
const (
	SensorStatusOptimal = "optimal"
	SensorStatusNormal  = "normal"
	SensorStatusWarning = "warning"
)

// MaxSensorHistory is the number of readings kept in a sensor's rolling history
const MaxSensorHistory = 6

// SensorReading is a named sensor metric shown on the Sensors tab
type SensorReading struct {
	ID          string    `json:"id" yaml:"id"`
	Name        string    `json:"name" yaml:"name"`
	Current     float64   `json:"current" yaml:"current"`
	Unit        string    `json:"unit" yaml:"unit"`
	Status      string    `json:"status" yaml:"status"`       // optimal, normal, warning
	Threshold   string    `json:"threshold" yaml:"threshold"` // e.g. "18-28°C"
	Trend       string    `json:"trend" yaml:"trend"`         // e.g. "+1.2°C"
	ImpactLabel string    `json:"impact_label,omitempty" yaml:"impact_label"`
	Impact      string    `json:"impact,omitempty" yaml:"impact"`
	LastReading string    `json:"last_reading" yaml:"last_reading"`
	History     []float64 `json:"history" yaml:"history"` // Oldest first

	// Bar heights in percent of the history maximum
	Chart []int `json:"chart,omitempty" yaml:"-"`
}
