package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

var (
	// ErrUnknownPreset is returned for a difficulty name that is not a preset.
	ErrUnknownPreset = errors.New("config: unknown difficulty preset")

	// ErrInvalid is returned by Validate.
	ErrInvalid = errors.New("config: invalid value")
)

// AppDir is the per-user directory holding configs, the leaderboard and the
// run history.
const AppDir = ".brickwell"

// Load loads the brickwell configuration.
// Search order: customPath -> ~/.brickwell/configs/brickwell.yaml -> ./configs/brickwell.yaml -> embedded default
func Load(customPath string) (BrickwellConfig, error) {
	cfg := DefaultBrickwellConfig()

	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("config: cannot read %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("config: cannot parse %s: %w", customPath, err)
		}
		return cfg, cfg.Validate()
	}

	// Try user config directory
	if userCfgPath := UserPath("configs", "brickwell.yaml"); userCfgPath != "" {
		if c, ok := tryFile(userCfgPath); ok {
			return c, nil
		}
	}

	// Try local configs directory
	if c, ok := tryFile(filepath.Join("configs", "brickwell.yaml")); ok {
		return c, nil
	}

	// Use embedded default YAML
	embedded := DefaultBrickwellConfig()
	if err := yaml.Unmarshal(defaultBrickwellYAML, &embedded); err != nil || embedded.Validate() != nil {
		return DefaultBrickwellConfig(), nil // Fallback to hardcoded if embed fails
	}
	return embedded, nil
}

// tryFile reads an optional config file; unreadable or invalid files are skipped.
func tryFile(path string) (BrickwellConfig, bool) {
	cfg := DefaultBrickwellConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, false
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, false
	}
	if cfg.Validate() != nil {
		return cfg, false
	}
	return cfg, true
}

// UserPath joins elem under ~/.brickwell, or returns "" if home is unavailable.
func UserPath(elem ...string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(append([]string{home, AppDir}, elem...)...)
}

// ExpandHome replaces a leading "~/" with the user's home directory.
func ExpandHome(path string) string {
	if len(path) < 2 || path[:2] != "~/" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[2:])
}

// Validate rejects values the simulation cannot run with.
func (c BrickwellConfig) Validate() error {
	switch {
	case c.Physics.MaxStepping <= 0:
		return fmt.Errorf("%w: physics.max_stepping must be positive", ErrInvalid)
	case c.Physics.WellHalfWidth <= c.Physics.WellMargin || c.Physics.WellHalfHeight <= 0:
		return fmt.Errorf("%w: well is empty", ErrInvalid)
	case c.Physics.ServeSpeed <= 0 || c.Physics.DropSpeed <= 0 || c.Physics.MissileSpeed <= 0:
		return fmt.Errorf("%w: physics speeds must be positive", ErrInvalid)
	case c.Paddle.BaseLength <= 0 || c.Paddle.Thickness <= 0:
		return fmt.Errorf("%w: paddle size must be positive", ErrInvalid)
	case c.Paddle.Step <= 0:
		return fmt.Errorf("%w: paddle.step must be positive", ErrInvalid)
	case c.Timers.ScoreMultiplier <= 0 || c.Timers.Speed <= 0 || c.Timers.MissileCooldown <= 0 || c.Timers.Pity <= 0:
		return fmt.Errorf("%w: timers must be positive", ErrInvalid)
	case c.Drops.Frequency <= 0:
		return fmt.Errorf("%w: drops.frequency must be positive", ErrInvalid)
	case c.Gameplay.TickRate <= 0:
		return fmt.Errorf("%w: gameplay.tick_rate must be positive", ErrInvalid)
	case c.Gameplay.BaseLives <= 0:
		return fmt.Errorf("%w: gameplay.base_lives must be positive", ErrInvalid)
	}
	return nil
}

// ApplyPreset modifies the config based on a difficulty preset.
func ApplyPreset(cfg *BrickwellConfig, preset DifficultyPreset) {
	if preset == "" {
		return
	}
	if preset == DifficultyFixed {
		cfg.Difficulty.Enabled = false
	} else {
		cfg.Difficulty.Enabled = true
		cfg.Difficulty.InitialLevel = InitialLevelForPreset(preset)
	}

	// Adjust gameplay based on difficulty
	switch preset {
	case DifficultyEasy:
		cfg.Gameplay.BaseLives = 5
		cfg.Paddle.BaseLength = 9
		cfg.Physics.ServeSpeed = 0.5
		cfg.Drops.PityThreshold = 60
	case DifficultyHard:
		cfg.Gameplay.BaseLives = 2
		cfg.Paddle.BaseLength = 5
		cfg.Physics.ServeSpeed = 0.75
		cfg.Drops.PityThreshold = 90
	}
}
