// Package config provides YAML-based configuration loading and difficulty
// presets for brickwell.
package config

import "fmt"

// BrickwellConfig contains every tunable of the game outside the level files.
type BrickwellConfig struct {
	Physics    PhysicsConfig    `yaml:"physics"`
	Paddle     PaddleConfig     `yaml:"paddle"`
	Timers     TimersConfig     `yaml:"timers"`
	Drops      DropsConfig      `yaml:"drops"`
	Gameplay   GameplayConfig   `yaml:"gameplay"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// PhysicsConfig defines the well and the moving bodies, in world units.
type PhysicsConfig struct {
	WellHalfWidth  float64 `yaml:"well_half_width"`
	WellHalfHeight float64 `yaml:"well_half_height"`
	WellMargin     float64 `yaml:"well_margin"` // gap between the side walls and the play area
	OutMargin      float64 `yaml:"out_margin"`  // how far below the floor a ball counts as lost
	MaxStepping    float64 `yaml:"max_stepping"`
	ServeSpeed     float64 `yaml:"serve_speed"`

	// ServeSwing is the share of half the paddle the served ball swings
	// over, ServeSwingStep the swing phase advance in degrees per frame.
	ServeSwing     float64 `yaml:"serve_swing"`
	ServeSwingStep float64 `yaml:"serve_swing_step"`

	DropSpeed    float64 `yaml:"drop_speed"`
	MissileSpeed float64 `yaml:"missile_speed"`
	SpeedStep    float64 `yaml:"speed_step"` // ball speed change per speed power-up
}

// PaddleConfig defines the paddle.
type PaddleConfig struct {
	Y          float64 `yaml:"y"`
	BaseLength float64 `yaml:"base_length"`
	Thickness  float64 `yaml:"thickness"`
	MaxAngle   float64 `yaml:"max_angle"` // degrees from vertical at either end
	Step       float64 `yaml:"step"`
}

// TimersConfig holds buff durations in frames.
type TimersConfig struct {
	ScoreMultiplier int `yaml:"score_multiplier"`
	Speed           int `yaml:"speed"`
	MissileCooldown int `yaml:"missile_cooldown"`
	Pity            int `yaml:"pity"`
}

// DropsConfig holds the drop settings used by levels that do not set their own.
type DropsConfig struct {
	Frequency     int `yaml:"frequency"`
	Offset        int `yaml:"offset"`
	PityThreshold int `yaml:"pity_threshold"`
}

// GameplayConfig holds the rules around the simulation.
type GameplayConfig struct {
	BaseLives      int `yaml:"base_lives"`
	ExtraLifeScore int `yaml:"extra_life_score"`
	TickRate       int `yaml:"tick_rate"`
}

// DifficultyConfig defines the ball speed ramp over the campaign.
type DifficultyConfig struct {
	Enabled      bool    `yaml:"enabled"`
	InitialLevel float64 `yaml:"initial_level"` // 0.0 = easy, 1.0 = hard
	MaxAt        int     `yaml:"max_at"`        // campaign level at which max difficulty is reached
	SpeedScaling float64 `yaml:"speed_scaling"` // added to the serve speed factor at max difficulty
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset validates a preset name. The empty string is accepted and
// means "leave the config as loaded".
func ParsePreset(name string) (DifficultyPreset, error) {
	switch p := DifficultyPreset(name); p {
	case "", DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return p, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownPreset, name)
}

// InitialLevelForPreset returns the initial_level for a difficulty preset.
func InitialLevelForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyNormal:
		return 0.2
	case DifficultyHard:
		return 0.5
	default:
		return 0.0
	}
}
