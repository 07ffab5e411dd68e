package sim

import (
	"math"

	"github.com/vovakirdan/brickwell/internal/core"
)

// Buff count limits.
const (
	MinBuffs = -1
	MaxBuffs = 2
)

// edgeSlack absorbs rounding when a hit-box is shifted flush against a wall.
const edgeSlack = 1e-9

// PaddleSpec describes a paddle before it is placed in a well.
type PaddleSpec struct {
	Pos        core.Vector2 // center
	BaseLength float64
	Thickness  float64
	LeftAngle  float64 // degrees, deflection at the left end
	RightAngle float64 // degrees, deflection at the right end
	Step       float64 // distance moved per input frame
}

// DefaultPaddleSpec is the stock paddle.
func DefaultPaddleSpec() PaddleSpec {
	return PaddleSpec{
		Pos:        core.Vec(0, -10),
		BaseLength: 7,
		Thickness:  1,
		LeftAngle:  -80,
		RightAngle: 80,
		Step:       1,
	}
}

// Paddle is the player-controlled bar. Its length is BaseLength + 2*buffs and
// its hit-box never leaves the bounds it was created with.
type Paddle struct {
	spec   PaddleSpec
	pos    core.Vector2
	buffs  int
	bounds core.Rect
}

// NewPaddle places a paddle inside bounds, shifting it horizontally if needed.
func NewPaddle(spec PaddleSpec, bounds core.Rect) *Paddle {
	p := &Paddle{spec: spec, pos: spec.Pos, bounds: bounds}
	p.pos.X = p.clampX(p.pos.X, p.Length())
	return p
}

// Pos returns the paddle center.
func (p *Paddle) Pos() core.Vector2 {
	return p.pos
}

// Buffs returns the width adjustment count in [MinBuffs, MaxBuffs].
func (p *Paddle) Buffs() int {
	return p.buffs
}

// Length returns the current length.
func (p *Paddle) Length() float64 {
	return p.lengthFor(p.buffs)
}

func (p *Paddle) lengthFor(buffs int) float64 {
	return p.spec.BaseLength + 2*float64(buffs)
}

// Hitbox is the paddle body.
func (p *Paddle) Hitbox() core.Rect {
	return core.RectFromCenter(p.pos, core.Vec(p.Length(), p.spec.Thickness))
}

// BallHitbox is the area in which balls and drops count as touching the
// paddle: one unit wider on each side and half a unit taller on top.
func (p *Paddle) BallHitbox() core.Rect {
	hb := p.Hitbox()
	return core.Rect{
		Min: hb.Min.AddX(-1),
		Max: hb.Max.Add(core.Vec(1, 0.5)),
	}
}

// DeflectAngle maps x across the ball hit-box to an angle in radians,
// measured from straight up, positive to the right.
func (p *Paddle) DeflectAngle(x float64) float64 {
	bh := p.BallHitbox()
	ratio := core.ClampF((x-bh.Min.X)/bh.Width(), 0, 1)
	return core.Deg(core.Lerp(p.spec.LeftAngle, p.spec.RightAngle, ratio))
}

// Move shifts the paddle by dir steps, stopping at the walls.
func (p *Paddle) Move(dir int) {
	if dir == 0 {
		return
	}
	p.pos.X = p.clampX(p.pos.X+float64(dir)*p.spec.Step, p.Length())
}

// PlaceAt centers the paddle on x, clamped to the walls.
func (p *Paddle) PlaceAt(x float64) {
	p.pos.X = p.clampX(x, p.Length())
}

func (p *Paddle) clampX(x, length float64) float64 {
	half := length / 2
	lo, hi := p.bounds.Min.X+half, p.bounds.Max.X-half
	if lo > hi {
		return p.bounds.Center().X
	}
	return math.Max(lo, math.Min(hi, x))
}

// Buff widens the paddle by one step, sliding it away from a wall it would
// cross. Returns false when already at MaxBuffs or when the wider paddle
// cannot fit between the walls.
func (p *Paddle) Buff() bool {
	if p.buffs >= MaxBuffs {
		return false
	}

	length := p.lengthFor(p.buffs + 1)
	grown := core.RectFromCenter(p.pos, core.Vec(length, p.spec.Thickness))

	shift := 0.0
	switch {
	case grown.Min.X < p.bounds.Min.X:
		shift = p.bounds.Min.X - grown.Min.X
	case grown.Max.X > p.bounds.Max.X:
		shift = p.bounds.Max.X - grown.Max.X
	}

	if grown.Min.X+shift < p.bounds.Min.X-edgeSlack || grown.Max.X+shift > p.bounds.Max.X+edgeSlack {
		return false
	}

	p.buffs++
	p.pos.X += shift
	return true
}

// Nerf narrows the paddle by one step. Allowed only while the paddle is at
// least its base length.
func (p *Paddle) Nerf() bool {
	if p.Length() < p.spec.BaseLength || p.buffs <= MinBuffs {
		return false
	}
	p.buffs--
	return true
}

// ResetWidth returns the paddle to its base length.
func (p *Paddle) ResetWidth() {
	for p.buffs < 0 {
		if !p.Buff() {
			break
		}
	}
	if p.buffs > 0 {
		p.buffs = 0
	}
}
