package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("loading defaults: %v", err)
	}

	if cfg.Particles.Count != 150 {
		t.Errorf("expected 150 particles, got %d", cfg.Particles.Count)
	}
	if cfg.Phases.RandomMS != 6000 || cfg.Phases.TransitionMS != 8000 {
		t.Errorf("unexpected phase timing: %+v", cfg.Phases)
	}
	if cfg.Flow.TileSize != 15 {
		t.Errorf("expected tile size 15, got %v", cfg.Flow.TileSize)
	}
	if cfg.Derived.ParticleCount != cfg.Particles.Count {
		t.Errorf("derived count %d != %d", cfg.Derived.ParticleCount, cfg.Particles.Count)
	}
	if cfg.Derived.TileHalf != 7.5 {
		t.Errorf("expected tile half 7.5, got %v", cfg.Derived.TileHalf)
	}
	if got := strings.Join(cfg.Slideshow.Elements, ","); got != "days,hours,minutes,seconds" {
		t.Errorf("unexpected slideshow elements %q", got)
	}
}

func TestLoadOverlay(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "custom.yaml")
	data := []byte("debug: true\nphases:\n  random_ms: 0\n")
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("loading overlay: %v", err)
	}

	if cfg.Phases.RandomMS != 0 {
		t.Errorf("expected random phase 0, got %v", cfg.Phases.RandomMS)
	}
	// Untouched keys keep their defaults
	if cfg.Phases.TransitionMS != 8000 {
		t.Errorf("expected transition 8000, got %v", cfg.Phases.TransitionMS)
	}
	if cfg.Derived.ParticleCount != 300 {
		t.Errorf("debug should select 300 particles, got %d", cfg.Derived.ParticleCount)
	}
	if cfg.Derived.ParticleAlpha != 1.0 {
		t.Errorf("debug should select alpha 1, got %v", cfg.Derived.ParticleAlpha)
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	cases := map[string]string{
		"tile":      "flow:\n  tile_size: 0\n",
		"magnitude": "particles:\n  min_magnitude: 5\n  max_magnitude: 1\n",
		"noise":     "noise:\n  kind: worley\n",
		"range":     "flow:\n  noise_low: 0.7\n  noise_high: 0.3\n",
		"period":    "countdown:\n  period_ms: 0\n",
		"fps":       "screen:\n  target_fps: 0\n",
		"cells":     "terminal:\n  cell_width: 0\n",
	}

	dir := t.TempDir()
	for name, body := range cases {
		path := filepath.Join(dir, name+".yaml")
		if err := os.WriteFile(path, []byte(body), 0644); err != nil {
			t.Fatal(err)
		}
		if _, err := Load(path); err == nil {
			t.Errorf("%s: expected validation error", name)
		}
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestWriteYAMLRoundTrip(t *testing.T) {
	cfg := Defaults()
	cfg.Particles.Count = 42

	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := cfg.WriteYAML(path); err != nil {
		t.Fatalf("writing: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("reloading: %v", err)
	}
	if loaded.Particles.Count != 42 {
		t.Errorf("expected 42 particles after reload, got %d", loaded.Particles.Count)
	}
}

func TestCurveScale(t *testing.T) {
	cfg := Defaults()
	if got := cfg.CurveScale(1280, 720); got != 288 {
		t.Errorf("expected 288, got %v", got)
	}
}
