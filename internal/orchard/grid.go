package orchard

import (
	"errors"
	"fmt"
	"math"

	"github.com/applico/orchard-advisor/internal/models"
)

var (
	// ErrInvalidDimension reports a non-positive row or column count, or a
	// grid whose tree count does not fit in an int
	ErrInvalidDimension = errors.New("invalid grid dimension")

	// ErrGridTooLarge reports a grid with more trees than the configured cap
	ErrGridTooLarge = errors.New("grid too large")

	// ErrInvalidGridConfig reports an unusable cell size, fruit range, tree
	// cap or source
	ErrInvalidGridConfig = errors.New("invalid grid config")
)

// Default map layout
const (
	DefaultRows     = 12
	DefaultCols     = 15
	DefaultCellSize = 40
	DefaultMinFruit = 50
	DefaultMaxFruit = 199
	DefaultMaxTrees = 10000
)

// Locator places a grid cell on the ground
type Locator interface {
	Locate(row, col int) models.GeoLocation
}

// GridConfig controls grid generation. Sampler defaults to a ThresholdSampler
// with DefaultThresholds over Source, MaxTrees to DefaultMaxTrees.
type GridConfig struct {
	CellSize float64
	MinFruit int
	MaxFruit int // inclusive
	MaxTrees int
	Source   Source
	Sampler  HealthSampler
	Locator  Locator
}

// DefaultGridConfig returns the standard map layout over src
func DefaultGridConfig(src Source) GridConfig {
	return GridConfig{
		CellSize: DefaultCellSize,
		MinFruit: DefaultMinFruit,
		MaxFruit: DefaultMaxFruit,
		MaxTrees: DefaultMaxTrees,
		Source:   src,
	}
}

// Validate checks everything except the grid dimensions
func (c GridConfig) Validate() error {
	if c.CellSize <= 0 {
		return fmt.Errorf("%w: cell size must be positive, got %v", ErrInvalidGridConfig, c.CellSize)
	}
	if c.MinFruit < 0 || c.MinFruit > c.MaxFruit {
		return fmt.Errorf("%w: fruit range [%d, %d]", ErrInvalidGridConfig, c.MinFruit, c.MaxFruit)
	}
	if c.MaxTrees < 0 {
		return fmt.Errorf("%w: tree cap must not be negative, got %d", ErrInvalidGridConfig, c.MaxTrees)
	}
	if c.Source == nil {
		return fmt.Errorf("%w: nil random source", ErrInvalidGridConfig)
	}
	return nil
}

// CheckSize rejects non-positive dimensions, tree counts that overflow an
// int, and grids above the tree cap. It allocates nothing.
func (c GridConfig) CheckSize(rows, cols int) error {
	if rows <= 0 || cols <= 0 {
		return fmt.Errorf("%w: rows=%d cols=%d", ErrInvalidDimension, rows, cols)
	}
	if rows > math.MaxInt/cols {
		return fmt.Errorf("%w: rows=%d cols=%d overflows the tree count", ErrInvalidDimension, rows, cols)
	}
	if n, limit := rows*cols, c.maxTrees(); n > limit {
		return fmt.Errorf("%w: %dx%d is %d trees, max %d", ErrGridTooLarge, rows, cols, n, limit)
	}
	return nil
}

// GenerateGrid lays out rows x cols trees in row-major order. IDs start at 1,
// positions are cell centres, and fruit counts are uniform in
// [MinFruit, MaxFruit]. All randomness comes from cfg.
func GenerateGrid(rows, cols int, cfg GridConfig) ([]models.Tree, error) {
	if err := cfg.CheckSize(rows, cols); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	sampler := cfg.Sampler
	if sampler == nil {
		sampler = &ThresholdSampler{Source: cfg.Source, Thresholds: DefaultThresholds()}
	}

	span := cfg.MaxFruit - cfg.MinFruit + 1
	half := cfg.CellSize / 2

	trees := make([]models.Tree, 0, rows*cols)
	id := 1
	for row := 0; row < rows; row++ {
		for col := 0; col < cols; col++ {
			tree := models.Tree{
				ID:     id,
				Row:    row,
				Col:    col,
				Health: sampler.Sample(),
				Position: models.Position{
					X: float64(col)*cfg.CellSize + half,
					Y: float64(row)*cfg.CellSize + half,
				},
				FruitCount: cfg.MinFruit + cfg.Source.IntN(span),
			}
			if cfg.Locator != nil {
				loc := cfg.Locator.Locate(row, col)
				tree.Location = &loc
			}

			trees = append(trees, tree)
			id++
		}
	}

	return trees, nil
}

func (c GridConfig) maxTrees() int {
	if c.MaxTrees == 0 {
		return DefaultMaxTrees
	}
	return c.MaxTrees
}
