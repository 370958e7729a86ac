package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"

	"github.com/applico/orchard-advisor/internal/models"
	"gopkg.in/yaml.v3"
)

//go:embed display.yaml
var defaultDisplay []byte

// ErrInvalidDisplay reports display content that contradicts itself
var ErrInvalidDisplay = errors.New("invalid display config")

// Display is the static content shown on the dashboard
type Display struct {
	Orchard         models.OrchardCounts    `yaml:"orchard"`
	Sections        []models.Section        `yaml:"sections"`
	Disease         models.DiseaseOutlook   `yaml:"disease"`
	Yield           models.YieldPrediction  `yaml:"yield"`
	Weather         models.Weather          `yaml:"weather"`
	Recommendations []models.Recommendation `yaml:"recommendations"`
	Sensors         []models.SensorReading  `yaml:"sensors"`
}

// LoadDisplay reads the display config at path, or the built-in one when
// path is empty
func LoadDisplay(path string) (*Display, error) {
	data := defaultDisplay
	if path != "" {
		var err error
		data, err = os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read display config: %w", err)
		}
	}
	return ParseDisplay(data)
}

// ParseDisplay decodes and validates YAML display content
func ParseDisplay(data []byte) (*Display, error) {
	var d Display
	if err := yaml.Unmarshal(data, &d); err != nil {
		return nil, fmt.Errorf("failed to parse display config: %w", err)
	}
	if err := d.Validate(); err != nil {
		return nil, err
	}
	return &d, nil
}

// Validate checks the orchard-wide counts agree with every other figure
func (d *Display) Validate() error {
	o := d.Orchard
	if o.Healthy < 0 || o.AtRisk < 0 || o.Diseased < 0 {
		return fmt.Errorf("%w: orchard counts must not be negative", ErrInvalidDisplay)
	}
	if o.Hectares < 0 {
		return fmt.Errorf("%w: hectares must not be negative", ErrInvalidDisplay)
	}

	if len(d.Sections) > 0 {
		var trees int
		seen := make(map[string]bool, len(d.Sections))
		for _, s := range d.Sections {
			if seen[s.ID] {
				return fmt.Errorf("%w: duplicate section %q", ErrInvalidDisplay, s.ID)
			}
			seen[s.ID] = true
			if !s.Health.Valid() {
				return fmt.Errorf("%w: section %q has unknown health %q", ErrInvalidDisplay, s.ID, s.Health)
			}
			if !inPercentRange(s.Coverage) {
				return fmt.Errorf("%w: section %q coverage %d out of range", ErrInvalidDisplay, s.ID, s.Coverage)
			}
			trees += s.Trees
		}
		if trees != o.Total() {
			return fmt.Errorf("%w: sections hold %d trees, orchard counts total %d",
				ErrInvalidDisplay, trees, o.Total())
		}
	}

	for _, r := range d.Recommendations {
		if !inPercentRange(r.Confidence) {
			return fmt.Errorf("%w: recommendation %d confidence %d out of range", ErrInvalidDisplay, r.ID, r.Confidence)
		}
	}
	for _, dr := range d.Disease.Diseases {
		if !inPercentRange(dr.Probability) {
			return fmt.Errorf("%w: %s probability %d out of range", ErrInvalidDisplay, dr.Name, dr.Probability)
		}
	}

	ids := make(map[string]bool, len(d.Sensors))
	for _, s := range d.Sensors {
		if s.ID == "" || ids[s.ID] {
			return fmt.Errorf("%w: sensor id %q missing or duplicated", ErrInvalidDisplay, s.ID)
		}
		ids[s.ID] = true
		if len(s.History) > models.MaxSensorHistory {
			return fmt.Errorf("%w: sensor %q keeps %d readings, max %d",
				ErrInvalidDisplay, s.ID, len(s.History), models.MaxSensorHistory)
		}
	}
	return nil
}

func inPercentRange(v int) bool {
	return v >= 0 && v <= 100
}
