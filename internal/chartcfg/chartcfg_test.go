package chartcfg

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "chart.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestDefaultIsValid(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Errorf("default config must validate: %v", err)
	}
}

func TestLoad_PartialOverride(t *testing.T) {
	path := writeConfig(t, `
bin_width: {x: 30, y: 30}
rate_diff_bounds: {lo: -0.1, hi: 0.1}
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.BinWidth.X != 30 || cfg.BinWidth.Y != 30 {
		t.Errorf("bin width: want (30, 30), got (%g, %g)", cfg.BinWidth.X, cfg.BinWidth.Y)
	}
	if cfg.RateDiffBounds != (Range{Lo: -0.1, Hi: 0.1}) {
		t.Errorf("rate diff bounds: got %+v", cfg.RateDiffBounds)
	}
	// Unnamed fields keep their defaults.
	if cfg.MinRadiusFactor != 0.25 {
		t.Errorf("min radius factor default lost: %g", cfg.MinRadiusFactor)
	}
	if cfg.PPSBounds != (Range{Lo: 0.7, Hi: 1.3}) {
		t.Errorf("pps bounds default lost: %+v", cfg.PPSBounds)
	}
}

func TestLoad_Invalid(t *testing.T) {
	cases := []struct {
		name string
		yaml string
	}{
		{"zero bin width", "bin_width: {x: 0, y: 15}"},
		{"radius factor one", "min_radius_factor: 1.0"},
		{"inverted bounds", "rate_bounds: {lo: 0.9, hi: 0.1}"},
		{"bad yaml", "bin_width: ["},
	}
	for _, c := range cases {
		path := writeConfig(t, c.yaml)
		if _, err := Load(path); err == nil {
			t.Errorf("%s: want error, got nil", c.name)
		}
	}
}

func TestLoad_EmptyPathUsesDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load(\"\"): %v", err)
	}
	if cfg != Default() {
		t.Errorf("want defaults, got %+v", cfg)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("want error for missing file")
	}
}

func TestHexbinConversion(t *testing.T) {
	cfg := Default()
	hc := cfg.Hexbin()
	if hc.BinWidthX != cfg.BinWidth.X || hc.BinWidthY != cfg.BinWidth.Y {
		t.Errorf("bin widths not carried over: %+v", hc)
	}
	if hc.MinRadiusFactor != cfg.MinRadiusFactor {
		t.Errorf("min radius factor not carried over: %g", hc.MinRadiusFactor)
	}
	if hc.RateDiffBounds.Lo != cfg.RateDiffBounds.Lo || hc.RateDiffBounds.Hi != cfg.RateDiffBounds.Hi {
		t.Errorf("rate diff bounds not carried over: %+v", hc.RateDiffBounds)
	}
}
