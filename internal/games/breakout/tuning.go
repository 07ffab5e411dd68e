package breakout

import (
	"github.com/vovakirdan/brickwell/internal/config"
	"github.com/vovakirdan/brickwell/internal/core"
	"github.com/vovakirdan/brickwell/internal/levels"
	"github.com/vovakirdan/brickwell/internal/sim"
)

// TuningFromConfig converts the physics and paddle sections of cfg into the
// constants a level runs with.
func TuningFromConfig(cfg config.BrickwellConfig) sim.Tuning {
	p := cfg.Physics
	t := sim.DefaultTuning()

	t.Well = core.R(-p.WellHalfWidth, -p.WellHalfHeight, p.WellHalfWidth, p.WellHalfHeight)
	t.WellMargin = p.WellMargin
	t.OutMargin = p.OutMargin
	t.MaxStepping = p.MaxStepping
	t.ServeVelocity = core.Vec(0, -p.ServeSpeed)
	t.ServeSwing = p.ServeSwing
	t.ServeSwingStep = p.ServeSwingStep
	t.DropSpeed = p.DropSpeed
	t.MissileSpeed = p.MissileSpeed

	t.Paddle = sim.PaddleSpec{
		Pos:        core.Vec(0, cfg.Paddle.Y),
		BaseLength: cfg.Paddle.BaseLength,
		Thickness:  cfg.Paddle.Thickness,
		LeftAngle:  -cfg.Paddle.MaxAngle,
		RightAngle: cfg.Paddle.MaxAngle,
		Step:       cfg.Paddle.Step,
	}
	return t
}

// StatsConfigFromConfig converts the timer and gameplay sections of cfg.
func StatsConfigFromConfig(cfg config.BrickwellConfig) sim.StatsConfig {
	return sim.StatsConfig{
		Durations: sim.Durations{
			ScoreMultiplier: cfg.Timers.ScoreMultiplier,
			Speed:           cfg.Timers.Speed,
			MissileCooldown: cfg.Timers.MissileCooldown,
			Pity:            cfg.Timers.Pity,
		},
		BaseLives:      cfg.Gameplay.BaseLives,
		ExtraLifeScore: cfg.Gameplay.ExtraLifeScore,
		SpeedStep:      cfg.Physics.SpeedStep,
	}
}

// LevelDefaults returns the drop settings level files start from.
func LevelDefaults(cfg config.BrickwellConfig) levels.Defaults {
	return levels.Defaults{
		DropFrequency: cfg.Drops.Frequency,
		DropOffset:    cfg.Drops.Offset,
		PityThreshold: cfg.Drops.PityThreshold,
	}
}
