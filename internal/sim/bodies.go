package sim

import "github.com/vovakirdan/brickwell/internal/core"

// Drop is a falling power-up waiting to be caught by the paddle.
type Drop struct {
	Pos     core.Vector2
	Speed   float64
	PowerUp PowerUp
}

func (d *Drop) fall() {
	d.Pos.Y -= d.Speed
}

// Missile rises straight up from the paddle and breaks the first block it
// enters. OriginY is where it was fired from, for drawing its trail.
type Missile struct {
	Pos     core.Vector2
	OriginY float64
	Speed   float64
}

func (m *Missile) rise() {
	m.Pos.Y += m.Speed
}
