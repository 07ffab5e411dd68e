package sim

import (
	"math"

	"github.com/vovakirdan/brickwell/internal/core"
)

// Ball is a bouncing ball. Collision checks write to a pending velocity which
// is committed once per substep, so two checks in the same substep never
// stack their reflections.
type Ball struct {
	Pos        core.Vector2
	base       core.Vector2
	pending    core.Vector2
	speedMulti float64
}

// NewBall creates a ball at pos moving with base velocity vel.
func NewBall(pos, vel core.Vector2) *Ball {
	return &Ball{Pos: pos, base: vel, pending: vel, speedMulti: 1}
}

// BaseVelocity returns the committed velocity before the speed multiplier.
func (b *Ball) BaseVelocity() core.Vector2 {
	return b.base
}

// Velocity returns the per-frame velocity including the speed multiplier.
func (b *Ball) Velocity() core.Vector2 {
	return b.base.Scale(b.speedMulti)
}

// SetVelocity replaces both the committed and pending velocity.
func (b *Ball) SetVelocity(v core.Vector2) {
	b.base = v
	b.pending = v
}

// SetSpeedMultiplier sets the external speed factor.
func (b *Ball) SetSpeedMultiplier(m float64) {
	b.speedMulti = m
}

// Speed returns the per-frame travel distance.
func (b *Ball) Speed() float64 {
	return b.Velocity().Magnitude()
}

// NextPos predicts the position after moving for the given frame fraction.
func (b *Ball) NextPos(factor float64) core.Vector2 {
	return b.Pos.Add(b.Velocity().Scale(factor))
}

func (b *Ball) advance(factor float64) {
	b.Pos = b.NextPos(factor)
}

func (b *Ball) commit() {
	b.base = b.pending
}

// substepFactors splits one frame of travel at the given speed into fractions
// that each move at most maxStepping and sum to exactly 1.
func substepFactors(speed, maxStepping float64) []float64 {
	if speed <= 0 || maxStepping <= 0 {
		return nil
	}
	segments := speed / maxStepping
	n := int(math.Ceil(segments))
	factors := make([]float64, n)
	for i := range factors {
		factors[i] = math.Min(segments-float64(i), 1) / segments
	}
	return factors
}
