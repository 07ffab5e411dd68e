package sim

import (
	"math"

	"github.com/vovakirdan/brickwell/internal/core"
)

// BlockView is the drawable state of a block.
type BlockView struct {
	ID          BlockID
	Rect        core.Rect
	Unbreakable bool
	Broken      bool
	Color       int
}

// DropView is the drawable state of a falling power-up.
type DropView struct {
	Pos     core.Vector2
	PowerUp PowerUp
}

// MissileView is the drawable state of a missile.
type MissileView struct {
	Pos     core.Vector2
	OriginY float64
}

// Snapshot is a read-only copy of a level after a tick.
type Snapshot struct {
	Name    string
	Frame   uint64
	Serving bool

	Well        core.Rect
	Inner       core.Rect
	ShieldLevel int

	Paddle      core.Rect
	PaddleBuffs int

	Balls    []core.Vector2
	Blocks   []BlockView
	Drops    []DropView
	Missiles []MissileView

	Score           int
	Multiplier      int
	SpeedTier       int
	SpeedMultiplier float64
	MissileCount    int
	Lives           int
	Level           int
	Timers          Timers
	BrokeCount      int

	Notification string
}

// Snapshot captures the current state for drawing or comparison.
func (l *Level) Snapshot() Snapshot {
	s := Snapshot{
		Name:            l.name,
		Frame:           l.frame,
		Serving:         l.serving,
		Well:            l.well.Bounds(),
		Inner:           l.well.Inner(),
		ShieldLevel:     l.well.Shield.Level(),
		Paddle:          l.paddle.Hitbox(),
		PaddleBuffs:     l.paddle.Buffs(),
		Balls:           make([]core.Vector2, len(l.balls)),
		Blocks:          make([]BlockView, l.blocks.Len()),
		Drops:           make([]DropView, len(l.drops)),
		Missiles:        make([]MissileView, len(l.missiles)),
		Score:           l.stats.Score,
		Multiplier:      l.stats.Multiplier,
		SpeedTier:       l.stats.SpeedTier,
		SpeedMultiplier: l.stats.SpeedMultiplier(),
		MissileCount:    l.stats.Missiles,
		Lives:           l.stats.Lives(),
		Level:           l.stats.Level,
		Timers:          l.stats.Timers,
		BrokeCount:      l.brokeCount,
		Notification:    l.notes.Current(),
	}

	for i, b := range l.balls {
		s.Balls[i] = b.Pos
	}
	for i := range s.Blocks {
		b := l.blocks.At(i)
		s.Blocks[i] = BlockView{ID: b.ID, Rect: b.Rect, Unbreakable: b.Unbreakable, Broken: b.Broken(), Color: b.Color}
	}
	for i, d := range l.drops {
		s.Drops[i] = DropView{Pos: d.Pos, PowerUp: d.PowerUp}
	}
	for i, m := range l.missiles {
		s.Missiles[i] = MissileView{Pos: m.Pos, OriginY: m.OriginY}
	}
	return s
}

// Hash returns a simple hash of the snapshot for determinism testing.
func (s *Snapshot) Hash() uint64 {
	h := s.Frame
	mix := func(v uint64) { h = h*31 + v }
	mixF := func(f float64) { mix(math.Float64bits(f)) }
	mixV := func(v core.Vector2) { mixF(v.X); mixF(v.Y) }

	mix(uint64(s.Score))        //#nosec G115 -- hash computation
	mix(uint64(s.Multiplier))   //#nosec G115 -- hash computation
	mix(uint64(s.SpeedTier))    //#nosec G115 -- hash computation
	mix(uint64(s.ShieldLevel))  //#nosec G115 -- hash computation
	mix(uint64(s.MissileCount)) //#nosec G115 -- hash computation
	mix(uint64(s.BrokeCount))   //#nosec G115 -- hash computation
	mixV(s.Paddle.Min)
	mixV(s.Paddle.Max)

	for _, b := range s.Balls {
		mixV(b)
	}
	for _, b := range s.Blocks {
		mix(uint64(b.ID)) //#nosec G115 -- hash computation
		if b.Broken {
			mix(1)
		}
	}
	for _, d := range s.Drops {
		mixV(d.Pos)
		mix(uint64(d.PowerUp))
	}
	for _, m := range s.Missiles {
		mixV(m.Pos)
	}
	return h
}
