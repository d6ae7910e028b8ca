package config

import (
	"math"
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load defaults: %v", err)
	}

	if cfg.Sampler.Radius <= 0 {
		t.Errorf("default sampler radius = %v, want positive", cfg.Sampler.Radius)
	}
	if cfg.Grid.Width <= 0 || cfg.Grid.Height <= 0 {
		t.Errorf("default grid size = %vx%v, want positive", cfg.Grid.Width, cfg.Grid.Height)
	}

	// Extents default to the grid box.
	if len(cfg.Sampler.Extents) != 2 {
		t.Fatalf("derived extents = %v, want 2 axes", cfg.Sampler.Extents)
	}
	if cfg.Sampler.Extents[0] != cfg.Grid.Width || cfg.Sampler.Extents[1] != cfg.Grid.Height {
		t.Errorf("derived extents = %v, want grid box %vx%v",
			cfg.Sampler.Extents, cfg.Grid.Width, cfg.Grid.Height)
	}
}

func TestComputeDerived(t *testing.T) {
	cfg := &Config{
		Sampler: SamplerConfig{Radius: 10, Extents: []float64{100, 100}},
		Grid:    GridConfig{Width: 100, Height: 100, MinRadius: 2, MaxRadius: 6},
	}
	cfg.computeDerived()

	if want := 10 / math.Sqrt2; math.Abs(cfg.Derived.SamplerCellLength-want) > 1e-12 {
		t.Errorf("SamplerCellLength = %v, want %v", cfg.Derived.SamplerCellLength, want)
	}
	if want := 4 / math.Sqrt2; math.Abs(cfg.Derived.GridCellLength-want) > 1e-12 {
		t.Errorf("GridCellLength = %v, want %v", cfg.Derived.GridCellLength, want)
	}
	area := 10000.0
	if want := int(area / (math.Pi * 25)); cfg.Derived.PointCountCeiling != want {
		t.Errorf("PointCountCeiling = %d, want %d", cfg.Derived.PointCountCeiling, want)
	}
}

func TestLoadOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := []byte("sampler:\n  radius: 3.5\n")
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Sampler.Radius != 3.5 {
		t.Errorf("overridden radius = %v, want 3.5", cfg.Sampler.Radius)
	}
	// Untouched sections keep their defaults.
	if cfg.Screen.Width == 0 {
		t.Error("screen defaults lost on partial override")
	}
}
