// Package chartcfg loads chart parameters from YAML. The hexbin core takes
// these as plain values and has no defaults of its own; the defaults here are
// the CLI's.
package chartcfg

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/hooplab/shotchart/internal/hexbin"
)

// Config mirrors the hexbin.Config contract in YAML-friendly form.
type Config struct {
	BinWidth struct {
		X float64 `yaml:"x"`
		Y float64 `yaml:"y"`
	} `yaml:"bin_width"`

	MinRadiusFactor float64 `yaml:"min_radius_factor"`

	RateDiffBounds Range `yaml:"rate_diff_bounds"`
	RateBounds     Range `yaml:"rate_bounds"`
	PPSBounds      Range `yaml:"pps_bounds"`
}

// Range is an inclusive [lo, hi] display range.
type Range struct {
	Lo float64 `yaml:"lo"`
	Hi float64 `yaml:"hi"`
}

// Default returns the chart parameters used when no config file is given:
// 1.5 ft bins and the display ranges of a conventional league-relative chart.
func Default() Config {
	var cfg Config
	cfg.BinWidth.X = 15
	cfg.BinWidth.Y = 15
	cfg.MinRadiusFactor = 0.25
	cfg.RateDiffBounds = Range{Lo: -0.15, Hi: 0.15}
	cfg.RateBounds = Range{Lo: 0.3, Hi: 0.7}
	cfg.PPSBounds = Range{Lo: 0.7, Hi: 1.3}
	return cfg
}

// Load reads chart parameters from a YAML file, starting from the defaults so
// partial files only override what they name. An empty path returns the
// defaults unchanged.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read chart config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse chart config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("chart config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate rejects parameter combinations the pipeline cannot chart.
func (c Config) Validate() error {
	if c.BinWidth.X <= 0 || c.BinWidth.Y <= 0 {
		return fmt.Errorf("bin_width must be positive, got (%g, %g)", c.BinWidth.X, c.BinWidth.Y)
	}
	if c.MinRadiusFactor < 0 || c.MinRadiusFactor >= 1 {
		return fmt.Errorf("min_radius_factor must be in [0, 1), got %g", c.MinRadiusFactor)
	}
	for _, r := range []struct {
		name string
		r    Range
	}{
		{"rate_diff_bounds", c.RateDiffBounds},
		{"rate_bounds", c.RateBounds},
		{"pps_bounds", c.PPSBounds},
	} {
		if r.r.Lo > r.r.Hi {
			return fmt.Errorf("%s: lo %g > hi %g", r.name, r.r.Lo, r.r.Hi)
		}
	}
	return nil
}

// Hexbin converts the loaded parameters to the core's config type.
func (c Config) Hexbin() hexbin.Config {
	return hexbin.Config{
		BinWidthX:       c.BinWidth.X,
		BinWidthY:       c.BinWidth.Y,
		MinRadiusFactor: c.MinRadiusFactor,
		RateDiffBounds:  hexbin.Bounds{Lo: c.RateDiffBounds.Lo, Hi: c.RateDiffBounds.Hi},
		RateBounds:      hexbin.Bounds{Lo: c.RateBounds.Lo, Hi: c.RateBounds.Hi},
		PPSBounds:       hexbin.Bounds{Lo: c.PPSBounds.Lo, Hi: c.PPSBounds.Hi},
	}
}
