package orchard

import (
	"errors"
	"fmt"
	"math"
	"math/rand/v2"
	"sync"

	"github.com/applico/orchard-advisor/internal/models"
)

// ErrInvalidThresholds reports cutoffs that cannot split [0,1) into three bands
var ErrInvalidThresholds = errors.New("invalid health thresholds")

// Thresholds are the upper-bound cutoffs for health classification.
// A draw above Diseased is diseased, above Warning is warning, else healthy.
type Thresholds struct {
	Warning  float64 `json:"warning"`
	Diseased float64 `json:"diseased"`
}

// DefaultThresholds returns the standard cutoffs (70% / 85%)
func DefaultThresholds() Thresholds {
	return Thresholds{Warning: 0.70, Diseased: 0.85}
}

// Validate checks 0 <= Warning < Diseased <= 1
func (t Thresholds) Validate() error {
	if math.IsNaN(t.Warning) || math.IsNaN(t.Diseased) {
		return fmt.Errorf("%w: cutoffs must be numbers", ErrInvalidThresholds)
	}
	if t.Warning < 0 || t.Diseased > 1 {
		return fmt.Errorf("%w: cutoffs must lie in [0,1], got warning=%v diseased=%v",
			ErrInvalidThresholds, t.Warning, t.Diseased)
	}
	if t.Warning >= t.Diseased {
		return fmt.Errorf("%w: warning (%v) must be below diseased (%v)",
			ErrInvalidThresholds, t.Warning, t.Diseased)
	}
	return nil
}

// ClassifyHealth maps a uniform draw u in [0,1) to a health category
func ClassifyHealth(u float64, t Thresholds) models.HealthCategory {
	switch {
	case u > t.Diseased:
		return models.HealthDiseased
	case u > t.Warning:
		return models.HealthWarning
	default:
		return models.HealthHealthy
	}
}

// Source is the randomness consumed by sampling and grid generation.
// *rand.Rand satisfies it.
type Source interface {
	Float64() float64 // uniform in [0,1)
	IntN(n int) int   // uniform in [0,n)
}

// NewRandSource returns a seeded PCG source. The same seed yields the same
// sequence of grids.
func NewRandSource(seed uint64) Source {
	return &lockedSource{r: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

// lockedSource serialises access so one source can back concurrent regenerations
type lockedSource struct {
	mu sync.Mutex
	r  *rand.Rand
}

func (s *lockedSource) Float64() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.r.Float64()
}

func (s *lockedSource) IntN(n int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.r.IntN(n)
}

// SequenceSource replays a fixed list of draws, cycling when exhausted.
// IntN maps the next draw onto [0,n).
type SequenceSource struct {
	draws []float64
	next  int
}

// NewSequenceSource creates a source that replays draws in order
func NewSequenceSource(draws ...float64) *SequenceSource {
	return &SequenceSource{draws: draws}
}

// Float64 returns the next draw
func (s *SequenceSource) Float64() float64 {
	if len(s.draws) == 0 {
		return 0
	}
	u := s.draws[s.next%len(s.draws)]
	s.next++
	return u
}

// IntN returns floor(next draw * n), clamped to [0,n)
func (s *SequenceSource) IntN(n int) int {
	if n <= 0 {
		return 0
	}
	v := int(s.Float64() * float64(n))
	if v < 0 {
		return 0
	}
	if v >= n {
		return n - 1
	}
	return v
}

// HealthSampler draws a health category for one tree
type HealthSampler interface {
	Sample() models.HealthCategory
}

// SamplerFunc adapts a function to HealthSampler
type SamplerFunc func() models.HealthCategory

// Sample implements HealthSampler
func (f SamplerFunc) Sample() models.HealthCategory {
	return f()
}

// ThresholdSampler classifies uniform draws from a Source
type ThresholdSampler struct {
	Source     Source
	Thresholds Thresholds
}

// NewThresholdSampler creates a sampler over src with the given cutoffs
func NewThresholdSampler(src Source, t Thresholds) (*ThresholdSampler, error) {
	if src == nil {
		return nil, errors.New("nil random source")
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return &ThresholdSampler{Source: src, Thresholds: t}, nil
}

// Sample implements HealthSampler
func (s *ThresholdSampler) Sample() models.HealthCategory {
	return ClassifyHealth(s.Source.Float64(), s.Thresholds)
}
