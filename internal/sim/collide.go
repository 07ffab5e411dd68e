package sim

import (
	"math"

	"github.com/vovakirdan/brickwell/internal/core"
)

// The three rebound checks below run in this order for every substep:
// reboundWell, reboundPaddle, then reboundBlock for each unbroken block.
// Each one only changes the pending velocity.

// reboundWell reflects off the side walls and ceiling, and off the shield
// while it has levels left. Returns true if anything was hit.
func reboundWell(b *Ball, next core.Vector2, w *Well) bool {
	inner := w.Inner()
	hit := false

	switch {
	case next.X < inner.Min.X:
		b.pending.X = math.Abs(b.base.X)
		hit = true
	case next.X > inner.Max.X:
		b.pending.X = -math.Abs(b.base.X)
		hit = true
	}

	switch {
	case next.Y > inner.Max.Y:
		b.pending.Y = -math.Abs(b.base.Y)
		hit = true
	case next.Y < inner.Min.Y && b.base.Y < 0 && w.Shield.Hit():
		b.pending.Y = math.Abs(b.base.Y)
		hit = true
	}
	return hit
}

// reboundPaddle redirects a descending ball that reaches the paddle. The new
// direction depends only on where the ball is across the paddle; speed is kept.
func reboundPaddle(b *Ball, next core.Vector2, p *Paddle) bool {
	if b.Velocity().Y > 0 {
		return false
	}
	if !p.BallHitbox().Contains(next) {
		return false
	}

	angle := p.DeflectAngle(b.Pos.X)
	speed := b.base.Magnitude()
	b.pending = core.Vec(math.Sin(angle)*speed, math.Cos(angle)*speed)
	return true
}

// reboundBlock tests the horizontal move, the vertical move and the diagonal
// move against the block, in that order, and reflects on the first match.
// A match breaks the block.
func reboundBlock(b *Ball, next core.Vector2, blk *Block) bool {
	r := blk.Rect
	switch {
	case r.ContainsXY(next.X, b.Pos.Y):
		b.pending = b.base.HFlip()
	case r.ContainsXY(b.Pos.X, next.Y):
		b.pending = b.base.VFlip()
	case r.Contains(next):
		b.pending = b.base.Flip()
	default:
		return false
	}
	blk.Break()
	return true
}
