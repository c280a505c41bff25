package config

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestEmbeddedDefaultsMatchHardcoded(t *testing.T) {
	cfg, err := Parse(nil)
	if err != nil {
		t.Fatalf("Parse(nil) failed: %v", err)
	}
	if !reflect.DeepEqual(cfg, DefaultEngineConfig()) {
		t.Errorf("embedded engine.yaml differs from DefaultEngineConfig():\n%+v\n%+v", cfg, DefaultEngineConfig())
	}
}

func TestParsePartialOverride(t *testing.T) {
	cfg, err := Parse([]byte("lanes:\n  count: 5\nplayer:\n  max_speed: 6.5\n"))
	if err != nil {
		t.Fatalf("Parse() failed: %v", err)
	}
	if cfg.Lanes.Count != 5 {
		t.Errorf("Lanes.Count = %d, expected 5", cfg.Lanes.Count)
	}
	if cfg.Player.MaxSpeed != 6.5 {
		t.Errorf("Player.MaxSpeed = %f, expected 6.5", cfg.Player.MaxSpeed)
	}
	// Untouched keys keep their defaults.
	if cfg.Lanes.Width != 32 {
		t.Errorf("Lanes.Width = %d, expected default 32", cfg.Lanes.Width)
	}
	if cfg.Frame.BudgetMs != 20 {
		t.Errorf("Frame.BudgetMs = %d, expected default 20", cfg.Frame.BudgetMs)
	}
}

func TestLoadCustomPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "engine.yaml")
	if err := os.WriteFile(path, []byte("enemy:\n  capacity: 6\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.Enemy.Capacity != 6 {
		t.Errorf("Enemy.Capacity = %d, expected 6", cfg.Enemy.Capacity)
	}
}

func TestLoadCustomPathErrors(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("Load() of a missing file should fail")
	}

	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("lanes: [unterminated"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("Load() of malformed YAML should fail")
	}
}

func TestValidateDefaults(t *testing.T) {
	cfg := DefaultEngineConfig()
	if err := cfg.ValidateLanes(); err != nil {
		t.Errorf("ValidateLanes() on defaults: %v", err)
	}
	if err := cfg.ValidateMaze(); err != nil {
		t.Errorf("ValidateMaze() on defaults: %v", err)
	}
}

func TestValidateRejects(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*EngineConfig)
		maze   bool
	}{
		{"single lane", func(c *EngineConfig) { c.Lanes.Count = 1 }, false},
		{"zero lanes", func(c *EngineConfig) { c.Lanes.Count = 0 }, false},
		{"short debounce", func(c *EngineConfig) { c.Input.DebounceMs = 50 }, false},
		{"long debounce", func(c *EngineConfig) { c.Input.DebounceMs = 400 }, false},
		{"deadzone one", func(c *EngineConfig) { c.Input.Deadzone = 1 }, false},
		{"zero frame budget", func(c *EngineConfig) { c.Frame.BudgetMs = 0 }, false},
		{"empty bullet pool", func(c *EngineConfig) { c.Bullets.PlayerCapacity = 0 }, false},
		{"narrow lanes", func(c *EngineConfig) { c.Lanes.Width = 10 }, false},
		{"road too wide", func(c *EngineConfig) { c.Lanes.Count = 9 }, false},
		{"inverted fire window", func(c *EngineConfig) { c.Enemy.FireMaxMs = 10 }, false},
		{"tiny maze", func(c *EngineConfig) { c.Maze.Cols = 3 }, true},
		{"maze too large", func(c *EngineConfig) { c.Maze.CellSize = 30 }, true},
		{"tank larger than cell", func(c *EngineConfig) { c.Maze.TankSize = 20 }, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultEngineConfig()
			tc.mutate(&cfg)
			var err error
			if tc.maze {
				err = cfg.ValidateMaze()
			} else {
				err = cfg.ValidateLanes()
			}
			if err == nil {
				t.Fatal("expected a validation error")
			}
			if !errors.Is(err, ErrInvalid) {
				t.Errorf("error %v should wrap ErrInvalid", err)
			}
		})
	}
}

func TestDifficultyScalar(t *testing.T) {
	d := NewDifficultyManager(DifficultyConfig{Enabled: true, GrowthRate: 0.02, Initial: 1, Max: 4})

	tests := []struct {
		elapsedMs uint32
		expected  float64
	}{
		{0, 1.0},
		{10_000, 1.2},
		{50_000, 2.0},
		{1_000_000, 4.0}, // capped
	}
	for _, tc := range tests {
		got := d.Scalar(tc.elapsedMs)
		if diff := got - tc.expected; diff > 1e-9 || diff < -1e-9 {
			t.Errorf("Scalar(%d) = %f, expected %f", tc.elapsedMs, got, tc.expected)
		}
	}

	d.SetEnabled(false)
	if d.Scalar(50_000) != 1.0 {
		t.Errorf("disabled Scalar() = %f, expected 1", d.Scalar(50_000))
	}
}

func TestDifficultyInitialFloor(t *testing.T) {
	d := NewDifficultyManager(DifficultyConfig{Enabled: true, GrowthRate: 0.1})
	if d.Scalar(0) != 1 {
		t.Errorf("Scalar(0) = %f, expected floor of 1", d.Scalar(0))
	}
}

func TestApplyPreset(t *testing.T) {
	base := DefaultEngineConfig()

	fixed := base
	ApplyPreset(&fixed, DifficultyFixed)
	if fixed.Difficulty.Enabled {
		t.Error("fixed preset should disable progression")
	}

	easy := base
	ApplyPreset(&easy, DifficultyEasy)
	if easy.Difficulty.GrowthRate >= base.Difficulty.GrowthRate {
		t.Error("easy preset should slow growth")
	}

	hard := base
	ApplyPreset(&hard, DifficultyHard)
	if hard.Difficulty.GrowthRate <= base.Difficulty.GrowthRate || hard.Difficulty.Initial <= base.Difficulty.Initial {
		t.Error("hard preset should speed up growth and raise the start")
	}
	if err := hard.ValidateLanes(); err != nil {
		t.Errorf("hard preset should stay valid: %v", err)
	}

	if ParsePreset("hard") != DifficultyHard || ParsePreset("bogus") != "" {
		t.Error("ParsePreset() mapping is wrong")
	}
}
