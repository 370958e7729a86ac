package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/applico/orchard-advisor/internal/orchard"
)

// ErrInvalidConfig reports an environment value that cannot be used
var ErrInvalidConfig = errors.New("invalid config")

// MaxTreesLimit bounds MAX_GRID_TREES
const MaxTreesLimit = 1_000_000

// Config 应用配置
type Config struct {
	Port    string
	GinMode string

	// Orchard map grid
	GridRows   int
	GridCols   int
	CellSize   float64
	MinFruit   int
	MaxFruit   int
	MaxTrees   int // cap on any generated grid
	Thresholds orchard.Thresholds
	Seed       uint64 // 0 picks a time-based seed

	// Optional geo anchor (north-west corner) for tree locations
	OrchardLat   *float64
	OrchardLon   *float64
	TreeSpacingM float64

	// Cron spec for regenerating the map grid, empty disables it
	RefreshSchedule string

	// Regenerate endpoint rate limit
	RateLimit  int
	RateWindow time.Duration

	// Path of a YAML display config, empty uses the built-in one
	DisplayConfigPath string
}

// Load 加载配置
func Load() (*Config, error) {
	return load(os.Getenv)
}

func load(getenv func(string) string) (*Config, error) {
	p := parser{getenv: getenv}

	cfg := &Config{
		Port:              p.str("PORT", ":8080"),
		GinMode:           p.str("GIN_MODE", "release"),
		GridRows:          p.integer("GRID_ROWS", orchard.DefaultRows),
		GridCols:          p.integer("GRID_COLS", orchard.DefaultCols),
		CellSize:          p.float("GRID_CELL_SIZE", orchard.DefaultCellSize),
		MinFruit:          p.integer("FRUIT_MIN", orchard.DefaultMinFruit),
		MaxFruit:          p.integer("FRUIT_MAX", orchard.DefaultMaxFruit),
		MaxTrees:          p.integer("MAX_GRID_TREES", orchard.DefaultMaxTrees),
		Seed:              p.unsigned("RANDOM_SEED", 0),
		OrchardLat:        p.optFloat("ORCHARD_LAT"),
		OrchardLon:        p.optFloat("ORCHARD_LON"),
		TreeSpacingM:      p.float("TREE_SPACING_M", 4),
		RefreshSchedule:   p.str("REFRESH_SCHEDULE", ""),
		RateLimit:         p.integer("RATE_LIMIT", 30),
		RateWindow:        p.duration("RATE_WINDOW", time.Minute),
		DisplayConfigPath: p.str("DISPLAY_CONFIG", ""),
	}

	defaults := orchard.DefaultThresholds()
	cfg.Thresholds = orchard.Thresholds{
		Warning:  p.float("WARNING_THRESHOLD", defaults.Warning),
		Diseased: p.float("DISEASED_THRESHOLD", defaults.Diseased),
	}

	if len(p.errs) > 0 {
		return nil, errors.Join(p.errs...)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks cross-field constraints
func (c *Config) Validate() error {
	if c.GridRows <= 0 || c.GridCols <= 0 {
		return fmt.Errorf("%w: grid must be at least 1x1, got %dx%d", ErrInvalidConfig, c.GridRows, c.GridCols)
	}
	if c.MaxTrees <= 0 || c.MaxTrees > MaxTreesLimit {
		return fmt.Errorf("%w: MAX_GRID_TREES must be in [1, %d], got %d", ErrInvalidConfig, MaxTreesLimit, c.MaxTrees)
	}
	if c.GridRows > c.MaxTrees/c.GridCols {
		return fmt.Errorf("%w: grid %dx%d exceeds MAX_GRID_TREES=%d", ErrInvalidConfig, c.GridRows, c.GridCols, c.MaxTrees)
	}
	if c.CellSize <= 0 {
		return fmt.Errorf("%w: GRID_CELL_SIZE must be positive", ErrInvalidConfig)
	}
	if c.MinFruit < 0 || c.MinFruit > c.MaxFruit {
		return fmt.Errorf("%w: fruit range [%d, %d]", ErrInvalidConfig, c.MinFruit, c.MaxFruit)
	}
	if err := c.Thresholds.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if (c.OrchardLat == nil) != (c.OrchardLon == nil) {
		return fmt.Errorf("%w: ORCHARD_LAT and ORCHARD_LON must be set together", ErrInvalidConfig)
	}
	if c.TreeSpacingM <= 0 {
		return fmt.Errorf("%w: TREE_SPACING_M must be positive", ErrInvalidConfig)
	}
	switch c.GinMode {
	case "debug", "release", "test":
	default:
		return fmt.Errorf("%w: GIN_MODE must be debug, release or test, got %q", ErrInvalidConfig, c.GinMode)
	}
	if c.RateLimit <= 0 || c.RateWindow <= 0 {
		return fmt.Errorf("%w: rate limit must be positive", ErrInvalidConfig)
	}
	return nil
}

// HasGeoAnchor reports whether trees get geographic locations
func (c *Config) HasGeoAnchor() bool {
	return c.OrchardLat != nil && c.OrchardLon != nil
}

// SeedOrNow returns the configured seed, or one derived from the clock
func (c *Config) SeedOrNow() uint64 {
	if c.Seed != 0 {
		return c.Seed
	}
	return uint64(time.Now().UnixNano())
}

// parser collects every bad variable instead of stopping at the first
type parser struct {
	getenv func(string) string
	errs   []error
}

func (p *parser) str(key, def string) string {
	if v := p.getenv(key); v != "" {
		return v
	}
	return def
}

func (p *parser) integer(key string, def int) int {
	v := p.getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		p.fail(key, v, err)
		return def
	}
	return n
}

func (p *parser) unsigned(key string, def uint64) uint64 {
	v := p.getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.ParseUint(v, 10, 64)
	if err != nil {
		p.fail(key, v, err)
		return def
	}
	return n
}

func (p *parser) float(key string, def float64) float64 {
	if f := p.optFloat(key); f != nil {
		return *f
	}
	return def
}

func (p *parser) optFloat(key string) *float64 {
	v := p.getenv(key)
	if v == "" {
		return nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		p.fail(key, v, err)
		return nil
	}
	return &f
}

func (p *parser) duration(key string, def time.Duration) time.Duration {
	v := p.getenv(key)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		p.fail(key, v, err)
		return def
	}
	return d
}

func (p *parser) fail(key, value string, err error) {
	p.errs = append(p.errs, fmt.Errorf("%w: %s=%q: %v", ErrInvalidConfig, key, value, err))
}
