// Package config provides configuration loading and access for the
// scatter tools.
package config

import (
	_ "embed"
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all tool configuration parameters.
type Config struct {
	Screen  ScreenConfig  `yaml:"screen"`
	Sampler SamplerConfig `yaml:"sampler"`
	Grid    GridConfig    `yaml:"grid"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ScreenConfig holds display settings for the graphical tools.
type ScreenConfig struct {
	Width     int `yaml:"width"`
	Height    int `yaml:"height"`
	TargetFPS int `yaml:"target_fps"`
}

// SamplerConfig holds Poisson-disk sampling parameters.
type SamplerConfig struct {
	Radius         float64   `yaml:"radius"`          // Minimum distance between points
	Extents        []float64 `yaml:"extents"`         // Sampling box, one extent per axis
	RejectionLimit int       `yaml:"rejection_limit"` // Attempts per active point (0 = 30)
}

// GridConfig holds spatial grid sizing parameters.
type GridConfig struct {
	Width     float64 `yaml:"width"`
	Height    float64 `yaml:"height"`
	MinRadius float64 `yaml:"min_radius"` // Smallest item radius the grid expects
	MaxRadius float64 `yaml:"max_radius"` // Largest item radius the grid expects
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	SamplerCellLength float64 // Radius / sqrt(dimension count)
	GridCellLength    float64 // (MinRadius+MaxRadius)/2/sqrt(2)
	PointCountCeiling int     // Packing ceiling for a 2D run (area / pi*(r/2)^2)
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if path is empty.
// Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// MustInit is like Init but panics on error.
func MustInit(path string) {
	if err := Init(path); err != nil {
		panic(fmt.Sprintf("config: failed to initialize: %v", err))
	}
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	// Start with embedded defaults
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	// Load user config if provided
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Unmarshal into same struct - only overwrites fields present in file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	// Compute derived values
	cfg.computeDerived()

	return cfg, nil
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	// Sampler extents default to the grid box when not specified
	if len(c.Sampler.Extents) == 0 {
		c.Sampler.Extents = []float64{c.Grid.Width, c.Grid.Height}
	}

	d := len(c.Sampler.Extents)
	if d > 0 && c.Sampler.Radius > 0 {
		c.Derived.SamplerCellLength = c.Sampler.Radius / math.Sqrt(float64(d))
	}
	if c.Grid.MinRadius > 0 && c.Grid.MaxRadius > 0 {
		c.Derived.GridCellLength = (c.Grid.MinRadius + c.Grid.MaxRadius) / 2 / math.Sqrt2
	}

	// Packing ceiling only applies to the 2D case
	if d == 2 && c.Sampler.Radius > 0 {
		area := c.Sampler.Extents[0] * c.Sampler.Extents[1]
		half := c.Sampler.Radius / 2
		c.Derived.PointCountCeiling = int(area / (math.Pi * half * half))
	}
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
