package config

import (
	_ "embed"
)

//go:embed defaults/brickwell.yaml
var defaultBrickwellYAML []byte

// DefaultBrickwellConfig returns the hardcoded configuration. It matches
// defaults/brickwell.yaml and is used when that file cannot be parsed.
func DefaultBrickwellConfig() BrickwellConfig {
	return BrickwellConfig{
		Physics: PhysicsConfig{
			WellHalfWidth:  15,
			WellHalfHeight: 15,
			WellMargin:     0.2,
			OutMargin:      0.5,
			MaxStepping:    0.1,
			ServeSpeed:     0.6,
			ServeSwing:     0.9,
			ServeSwingStep: 6.28,
			DropSpeed:      0.1,
			MissileSpeed:   0.8,
			SpeedStep:      0.25,
		},
		Paddle: PaddleConfig{
			Y:          -10,
			BaseLength: 7,
			Thickness:  1,
			MaxAngle:   80,
			Step:       1,
		},
		Timers: TimersConfig{
			ScoreMultiplier: 300,
			Speed:           200,
			MissileCooldown: 30,
			Pity:            500,
		},
		Drops: DropsConfig{
			Frequency:     5,
			Offset:        2,
			PityThreshold: 80,
		},
		Gameplay: GameplayConfig{
			BaseLives:      3,
			ExtraLifeScore: 5000,
			TickRate:       30,
		},
		Difficulty: DifficultyConfig{
			Enabled:      false,
			InitialLevel: 0.0,
			MaxAt:        10,
			SpeedScaling: 0.5,
		},
	}
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultBrickwellYAML
}
