package service

import (
	"errors"
	"fmt"
	"log"
	"math"
	"sync"
	"sync/atomic"
	"time"

	"github.com/applico/orchard-advisor/internal/models"
	"github.com/applico/orchard-advisor/internal/orchard"
	"github.com/applico/orchard-advisor/internal/spatial"
)

// ErrInvalidDraw reports a classification draw outside [0,1)
var ErrInvalidDraw = errors.New("draw must be in [0,1)")

// GridOptions configures the orchard map grid
type GridOptions struct {
	Rows       int
	Cols       int
	CellSize   float64
	MinFruit   int
	MaxFruit   int
	MaxTrees   int // cap on any grid, session or one-off; 0 uses orchard.DefaultMaxTrees
	Thresholds orchard.Thresholds
	Source     orchard.Source
	Layout     *spatial.Layout // optional
}

// GridService owns the session grid shown on the Orchard Map tab.
// The grid is built on first use and replaced whole on regeneration;
// readers always see one complete snapshot. Published snapshots carry
// consecutive generation numbers; one-off grids carry 0.
type GridService struct {
	rows, cols int
	thresholds orchard.Thresholds
	grid       orchard.GridConfig
	layout     *spatial.Layout

	current    atomic.Pointer[models.GridSnapshot]
	publishMu  sync.Mutex // guards generation and writes to current
	generation int64
	now        func() time.Time
}

// NewGridService creates a new grid service
func NewGridService(opts GridOptions) (*GridService, error) {
	sampler, err := orchard.NewThresholdSampler(opts.Source, opts.Thresholds)
	if err != nil {
		return nil, err
	}

	grid := orchard.GridConfig{
		CellSize: opts.CellSize,
		MinFruit: opts.MinFruit,
		MaxFruit: opts.MaxFruit,
		MaxTrees: opts.MaxTrees,
		Source:   opts.Source,
		Sampler:  sampler,
	}
	if opts.Layout != nil {
		grid.Locator = opts.Layout
	}
	if err := grid.Validate(); err != nil {
		return nil, err
	}
	if err := grid.CheckSize(opts.Rows, opts.Cols); err != nil {
		return nil, err
	}

	return &GridService{
		rows:       opts.Rows,
		cols:       opts.Cols,
		thresholds: opts.Thresholds,
		grid:       grid,
		layout:     opts.Layout,
		now:        time.Now,
	}, nil
}

// Snapshot returns the session grid, generating it on first use
func (s *GridService) Snapshot() (*models.GridSnapshot, error) {
	if snap := s.current.Load(); snap != nil {
		return snap, nil
	}

	snap, err := s.build(s.rows, s.cols)
	if err != nil {
		return nil, err
	}

	s.publishMu.Lock()
	defer s.publishMu.Unlock()
	// A concurrent first request may have won; keep its grid
	if current := s.current.Load(); current != nil {
		return current, nil
	}
	s.publish(snap)
	return snap, nil
}

// Regenerate replaces the session grid. The last call to finish wins.
func (s *GridService) Regenerate() (*models.GridSnapshot, error) {
	snap, err := s.build(s.rows, s.cols)
	if err != nil {
		return nil, err
	}
	s.publishMu.Lock()
	s.publish(snap)
	s.publishMu.Unlock()

	log.Printf("[GridService] Regenerated grid #%d: %d trees, %d healthy, %d at risk, %d diseased",
		snap.Generation, snap.Summary.TotalTrees, snap.Summary.HealthyTrees,
		snap.Summary.AtRiskTrees, snap.Summary.DiseasedTrees)
	return snap, nil
}

// Generate builds a one-off grid of the given size without touching the session grid
func (s *GridService) Generate(rows, cols int) (*models.GridSnapshot, error) {
	return s.build(rows, cols)
}

// Summary returns the health summary of the session grid
func (s *GridService) Summary() (models.OrchardSummary, error) {
	snap, err := s.Snapshot()
	if err != nil {
		return models.OrchardSummary{}, err
	}
	return snap.Summary, nil
}

// Dimensions returns the session grid size
func (s *GridService) Dimensions() (rows, cols int) {
	return s.rows, s.cols
}

// Thresholds returns the configured health cutoffs
func (s *GridService) Thresholds() orchard.Thresholds {
	return s.thresholds
}

// Classify classifies one draw, with the configured cutoffs unless override is set
func (s *GridService) Classify(draw float64, override *orchard.Thresholds) (models.HealthCategory, orchard.Thresholds, error) {
	t := s.thresholds
	if override != nil {
		t = *override
	}
	if err := t.Validate(); err != nil {
		return "", t, err
	}
	if math.IsNaN(draw) || draw < 0 || draw >= 1 {
		return "", t, fmt.Errorf("%w: got %v", ErrInvalidDraw, draw)
	}
	return orchard.ClassifyHealth(draw, t), t, nil
}

// publish numbers snap and makes it the session grid. Callers hold publishMu.
func (s *GridService) publish(snap *models.GridSnapshot) {
	s.generation++
	snap.Generation = s.generation
	s.current.Store(snap)
}

func (s *GridService) build(rows, cols int) (*models.GridSnapshot, error) {
	trees, err := orchard.GenerateGrid(rows, cols, s.grid)
	if err != nil {
		return nil, err
	}

	snap := &models.GridSnapshot{
		Rows:        rows,
		Cols:        cols,
		CellSize:    s.grid.CellSize,
		Trees:       trees,
		Summary:     orchard.Summarize(trees),
		Fruit:       orchard.FruitStats(trees),
		GeneratedAt: s.now(),
	}
	if s.layout != nil {
		fp := s.layout.Footprint(rows, cols)
		snap.Footprint = &fp
	}
	return snap, nil
}
