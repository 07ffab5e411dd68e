// Package sim is the breakout simulation: ball physics with substeps,
// collision against the well, paddle and blocks, and the power-up economy.
// It never draws and never reads the keyboard; callers pass an Action to
// Tick and read a Snapshot back.
package sim

import (
	"errors"
	"fmt"
	"math"

	"github.com/vovakirdan/brickwell/internal/core"
)

// ErrNonPositiveDropFrequency is returned for a level whose drop cadence is not positive.
var ErrNonPositiveDropFrequency = errors.New("sim: drop frequency must be positive")

// Action is the one input a level consumes per frame.
type Action int

const (
	ActionNone Action = iota
	ActionLeft
	ActionRight
	ActionFire
	ActionPause  // handled by the caller; a level treats it as ActionNone
	ActionLaunch // releases the ball while serving
)

// Tuning holds the physical constants of a level.
type Tuning struct {
	Well                core.Rect
	WellMargin          float64
	OutMargin           float64
	Paddle              PaddleSpec
	MaxStepping         float64
	ServeVelocity       core.Vector2
	ServeSwing          float64 // max offset of the served ball, as a fraction of half the paddle
	ServeSwingStep      float64 // degrees per frame
	MultiballVelocities [2]core.Vector2
	DropSpeed           float64
	MissileSpeed        float64
}

// DefaultTuning returns the stock constants for a 30-frames-per-second game.
func DefaultTuning() Tuning {
	return Tuning{
		Well:           core.R(-15, -15, 15, 15),
		WellMargin:     0.2,
		OutMargin:      0.5,
		Paddle:         DefaultPaddleSpec(),
		MaxStepping:    0.1,
		ServeVelocity:  core.Vec(0, -0.6),
		ServeSwing:     0.9,
		ServeSwingStep: 6.28,
		MultiballVelocities: [2]core.Vector2{
			core.Vec(-0.3, 0.5),
			core.Vec(0.5, 0.3),
		},
		DropSpeed:    0.1,
		MissileSpeed: 0.8,
	}
}

// LevelSpec is everything a level loader provides.
type LevelSpec struct {
	Name          string
	Blocks        []BlockSpec
	Grids         []GridSpec
	Loot          map[PowerUp]int
	Pity          map[PowerUp]int
	DropFrequency int // every Nth broken block drops a power-up
	DropOffset    int // number of blocks broken before the first drop
	PityThreshold int // percent cleared before pity drops start; <=0 always, >=100 never
}

// DefaultLevelSpec returns an empty level with the stock drop settings.
func DefaultLevelSpec(name string) LevelSpec {
	return LevelSpec{
		Name:          name,
		Loot:          DefaultLootWeights(),
		Pity:          DefaultPityWeights(),
		DropFrequency: 5,
		DropOffset:    2,
		PityThreshold: 80,
	}
}

// Level is the simulation context for one level. It owns every body and
// mutates the shared Stats only from Tick and its helpers.
type Level struct {
	name   string
	tuning Tuning
	stats  *Stats
	notes  *Notifier
	rng    Source

	well     *Well
	paddle   *Paddle
	blocks   *BlockRegistry
	balls    []*Ball
	drops    []*Drop
	missiles []*Missile

	loot *LootTable
	pity *LootTable

	dropFreq      int
	dropOffset    int
	pityThreshold int
	brokeCount    int

	serving    bool
	swingPhase float64
	frame      uint64
}

// NewLevel builds a level ready to serve. notes may be nil.
func NewLevel(spec LevelSpec, tuning Tuning, stats *Stats, rng Source, notes *Notifier) (*Level, error) {
	if spec.DropFrequency <= 0 {
		return nil, fmt.Errorf("%w: got %d", ErrNonPositiveDropFrequency, spec.DropFrequency)
	}
	if tuning.MaxStepping <= 0 {
		return nil, fmt.Errorf("sim: max stepping must be positive, got %v", tuning.MaxStepping)
	}

	loot, err := NewLootTable(spec.Loot)
	if err != nil {
		return nil, fmt.Errorf("sim: loot table: %w", err)
	}
	pity, err := NewLootTable(spec.Pity)
	if err != nil {
		return nil, fmt.Errorf("sim: pity table: %w", err)
	}

	if notes == nil {
		notes = NewNotifier()
	}

	well := NewWell(tuning.Well, tuning.WellMargin, tuning.OutMargin)
	l := &Level{
		name:          spec.Name,
		tuning:        tuning,
		stats:         stats,
		notes:         notes,
		rng:           rng,
		well:          well,
		paddle:        NewPaddle(tuning.Paddle, well.Inner()),
		blocks:        NewBlockRegistry(),
		loot:          loot,
		pity:          pity,
		dropFreq:      spec.DropFrequency,
		dropOffset:    spec.DropOffset,
		pityThreshold: spec.PityThreshold,
	}

	for _, b := range spec.Blocks {
		l.blocks.Add(b)
	}
	for _, g := range spec.Grids {
		if _, err := l.blocks.AddGrid(g); err != nil {
			return nil, err
		}
	}

	l.serve()
	return l, nil
}

// Name returns the level title.
func (l *Level) Name() string { return l.name }

// Stats returns the shared stats record.
func (l *Level) Stats() *Stats { return l.stats }

// Notifier returns the message queue the level writes to.
func (l *Level) Notifier() *Notifier { return l.notes }

// Well returns the playing area.
func (l *Level) Well() *Well { return l.well }

// Paddle returns the paddle.
func (l *Level) Paddle() *Paddle { return l.paddle }

// Blocks returns the block registry.
func (l *Level) Blocks() *BlockRegistry { return l.blocks }

// Balls returns the balls in play.
func (l *Level) Balls() []*Ball { return l.balls }

// Drops returns the falling power-ups.
func (l *Level) Drops() []*Drop { return l.drops }

// Missiles returns the missiles in flight.
func (l *Level) Missiles() []*Missile { return l.missiles }

// BrokeCount returns how many blocks have been swept so far.
func (l *Level) BrokeCount() int { return l.brokeCount }

// Frame returns the number of ticks run so far.
func (l *Level) Frame() uint64 { return l.frame }

// Serving reports whether the ball is waiting on the paddle.
func (l *Level) Serving() bool { return l.serving }

// HasBall reports whether any ball is still in play.
func (l *Level) HasBall() bool { return len(l.balls) > 0 }

// RoundOver reports whether every ball has been lost.
func (l *Level) RoundOver() bool { return !l.serving && len(l.balls) == 0 }

// Cleared reports whether every breakable block is gone.
func (l *Level) Cleared() bool { return l.blocks.AllDestroyed() }

// AddBall puts a ball in play.
func (l *Level) AddBall(b *Ball) { l.balls = append(l.balls, b) }

// AddDrop puts a falling power-up in play.
func (l *Level) AddDrop(d *Drop) { l.drops = append(l.drops, d) }

// ResetRound clears the field after a lost round and serves a new ball.
// Blocks and the shield are kept.
func (l *Level) ResetRound() {
	l.balls = nil
	l.drops = nil
	l.missiles = nil
	l.stats.ResetLevelStats()
	l.stats.ResetTimers()
	l.paddle.ResetWidth()
	l.notes.Reset()
	l.serve()
}

func (l *Level) serve() {
	l.serving = true
	l.swingPhase = 90
	l.balls = []*Ball{NewBall(core.Vector2{}, l.tuning.ServeVelocity)}
	l.placeServedBalls()
}

// placeServedBalls parks the balls on the paddle at the current swing offset.
func (l *Level) placeServedBalls() {
	offset := math.Sin(core.Deg(l.swingPhase)) * l.tuning.ServeSwing
	pos := l.paddle.Pos().Add(core.Vec(l.paddle.Length()*offset*0.5, 1))
	for _, b := range l.balls {
		b.Pos = pos
	}
}

// PityActive reports whether pity drops are enabled for the current board.
func (l *Level) PityActive() bool {
	switch {
	case l.pityThreshold >= 100:
		return false
	case l.pityThreshold <= 0:
		return true
	}
	if l.blocks.AllDestroyed() {
		return false
	}
	remaining := float64(l.blocks.RemainingBreakable())
	return float64(l.brokeCount) > remaining*(100.0/float64(100-l.pityThreshold)-1)
}
