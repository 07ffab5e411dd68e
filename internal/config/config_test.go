package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestEmbeddedMatchesHardcoded(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg != DefaultBrickwellConfig() {
		t.Errorf("embedded defaults = %+v, expected %+v", cfg, DefaultBrickwellConfig())
	}
}

func TestLoadCustomOverridesOnlyGivenKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.yaml")
	data := "paddle:\n  base_length: 11\ngameplay:\n  tick_rate: 60\n"
	if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Paddle.BaseLength != 11 {
		t.Errorf("Paddle.BaseLength = %v, expected 11", cfg.Paddle.BaseLength)
	}
	if cfg.Gameplay.TickRate != 60 {
		t.Errorf("Gameplay.TickRate = %d, expected 60", cfg.Gameplay.TickRate)
	}
	if cfg.Physics.MaxStepping != 0.1 {
		t.Errorf("Physics.MaxStepping = %v, expected default 0.1", cfg.Physics.MaxStepping)
	}
}

func TestLoadUserConfig(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	dir := filepath.Join(home, AppDir, "configs")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "brickwell.yaml"), []byte("gameplay:\n  base_lives: 7\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Gameplay.BaseLives != 7 {
		t.Errorf("Gameplay.BaseLives = %d, expected 7", cfg.Gameplay.BaseLives)
	}
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()

	if _, err := Load(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("Load() of a missing file should fail")
	}

	bad := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(bad, []byte("physics: [1, 2"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(bad); err == nil {
		t.Error("Load() of malformed YAML should fail")
	}

	invalid := filepath.Join(dir, "invalid.yaml")
	if err := os.WriteFile(invalid, []byte("drops:\n  frequency: 0\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(invalid); !errors.Is(err, ErrInvalid) {
		t.Errorf("Load() error = %v, expected ErrInvalid", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*BrickwellConfig)
		valid  bool
	}{
		{"defaults", func(*BrickwellConfig) {}, true},
		{"zero stepping", func(c *BrickwellConfig) { c.Physics.MaxStepping = 0 }, false},
		{"margin eats well", func(c *BrickwellConfig) { c.Physics.WellMargin = 20 }, false},
		{"flat paddle", func(c *BrickwellConfig) { c.Paddle.Thickness = 0 }, false},
		{"still paddle", func(c *BrickwellConfig) { c.Paddle.Step = 0 }, false},
		{"stuck missiles", func(c *BrickwellConfig) { c.Physics.MissileSpeed = 0 }, false},
		{"floating drops", func(c *BrickwellConfig) { c.Physics.DropSpeed = -0.1 }, false},
		{"no pity delay", func(c *BrickwellConfig) { c.Timers.Pity = 0 }, false},
		{"no missile cooldown", func(c *BrickwellConfig) { c.Timers.MissileCooldown = 0 }, false},
		{"instant multiplier", func(c *BrickwellConfig) { c.Timers.ScoreMultiplier = 0 }, false},
		{"negative frequency", func(c *BrickwellConfig) { c.Drops.Frequency = -1 }, false},
		{"zero tick rate", func(c *BrickwellConfig) { c.Gameplay.TickRate = 0 }, false},
		{"no lives", func(c *BrickwellConfig) { c.Gameplay.BaseLives = 0 }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultBrickwellConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if (err == nil) != tt.valid {
				t.Errorf("Validate() = %v, expected valid=%v", err, tt.valid)
			}
		})
	}
}

func TestApplyPreset(t *testing.T) {
	tests := []struct {
		preset  DifficultyPreset
		enabled bool
		lives   int
		speed   float64
	}{
		{"", false, 3, 0.6},
		{DifficultyEasy, true, 5, 0.5},
		{DifficultyNormal, true, 3, 0.6},
		{DifficultyHard, true, 2, 0.75},
		{DifficultyFixed, false, 3, 0.6},
	}

	for _, tt := range tests {
		cfg := DefaultBrickwellConfig()
		ApplyPreset(&cfg, tt.preset)
		if cfg.Difficulty.Enabled != tt.enabled {
			t.Errorf("ApplyPreset(%q) Enabled = %v, expected %v", tt.preset, cfg.Difficulty.Enabled, tt.enabled)
		}
		if cfg.Gameplay.BaseLives != tt.lives {
			t.Errorf("ApplyPreset(%q) BaseLives = %d, expected %d", tt.preset, cfg.Gameplay.BaseLives, tt.lives)
		}
		if cfg.Physics.ServeSpeed != tt.speed {
			t.Errorf("ApplyPreset(%q) ServeSpeed = %v, expected %v", tt.preset, cfg.Physics.ServeSpeed, tt.speed)
		}
	}
}

func TestParsePreset(t *testing.T) {
	for _, name := range []string{"", "easy", "normal", "hard", "fixed"} {
		if _, err := ParsePreset(name); err != nil {
			t.Errorf("ParsePreset(%q) error = %v", name, err)
		}
	}
	if _, err := ParsePreset("nightmare"); !errors.Is(err, ErrUnknownPreset) {
		t.Errorf("ParsePreset(nightmare) error = %v, expected ErrUnknownPreset", err)
	}
}

func TestDifficultySpeed(t *testing.T) {
	d := NewDifficultyManager(DifficultyConfig{Enabled: true, InitialLevel: 0, MaxAt: 4, SpeedScaling: 0.5})

	tests := []struct {
		level    int
		expected float64
	}{
		{0, 0.6},
		{2, 0.75},
		{4, 0.9},
		{9, 0.9},
	}
	for _, tt := range tests {
		if got := d.Speed(0.6, tt.level); got < tt.expected-1e-9 || got > tt.expected+1e-9 {
			t.Errorf("Speed(0.6, %d) = %v, expected %v", tt.level, got, tt.expected)
		}
	}

	d.SetEnabled(false)
	if got := d.Speed(0.6, 4); got != 0.6 {
		t.Errorf("Speed() with ramp off = %v, expected 0.6", got)
	}
}

func TestExpandHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	if got := ExpandHome("~/.brickwell/runs.db"); got != filepath.Join(home, ".brickwell", "runs.db") {
		t.Errorf("ExpandHome() = %q", got)
	}
	if got := ExpandHome("/tmp/x.db"); got != "/tmp/x.db" {
		t.Errorf("ExpandHome() = %q, expected unchanged", got)
	}
}
