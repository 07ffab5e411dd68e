package sim

import (
	"math"
	"testing"

	"github.com/vovakirdan/brickwell/internal/core"
	"pgregory.net/rapid"
)

func TestBlockBounceFromBelow(t *testing.T) {
	spec := DefaultLevelSpec("scenario")
	spec.Blocks = []BlockSpec{{Rect: core.R(0, 0, 1, 1)}}
	l := newTestLevel(t, spec)
	startPlay(l)
	b := l.ballAt(core.Vec(0.5, -1), core.Vec(0, 1))

	ev := tickN(t, l, 1, ActionNone)

	if b.BaseVelocity() != core.Vec(0, -1) {
		t.Errorf("BaseVelocity() = %v, expected (0,-1)", b.BaseVelocity())
	}
	if ev.BlocksBroken != 1 {
		t.Errorf("BlocksBroken = %d, expected 1", ev.BlocksBroken)
	}
	if l.Blocks().Len() != 0 {
		t.Errorf("Blocks().Len() = %d, expected broken block swept", l.Blocks().Len())
	}
	if l.Stats().Score != DefaultBlockPoints {
		t.Errorf("Score = %d, expected %d", l.Stats().Score, DefaultBlockPoints)
	}
}

func TestReboundBlock(t *testing.T) {
	rect := core.R(0, 0, 1, 1)
	tests := []struct {
		name     string
		pos      core.Vector2
		vel      core.Vector2
		hit      bool
		expected core.Vector2
	}{
		{"from the left", core.Vec(-0.05, 0.5), core.Vec(0.1, 0), true, core.Vec(-0.1, 0)},
		{"from below", core.Vec(0.5, -0.05), core.Vec(0, 0.1), true, core.Vec(0, -0.1)},
		{"corner", core.Vec(-0.05, -0.05), core.Vec(0.1, 0.1), true, core.Vec(-0.1, -0.1)},
		{"inside block, horizontal wins", core.Vec(0.5, 0.5), core.Vec(0.1, 0.1), true, core.Vec(-0.1, 0.1)},
		{"miss", core.Vec(-0.5, -0.5), core.Vec(0.1, 0.1), false, core.Vec(0.1, 0.1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := NewBall(tt.pos, tt.vel)
			blk := &Block{Rect: rect}
			hit := reboundBlock(b, b.NextPos(1), blk)
			b.commit()

			if hit != tt.hit {
				t.Errorf("reboundBlock() = %v, expected %v", hit, tt.hit)
			}
			if blk.Broken() != tt.hit {
				t.Errorf("Broken() = %v, expected %v", blk.Broken(), tt.hit)
			}
			if b.BaseVelocity() != tt.expected {
				t.Errorf("velocity = %v, expected %v", b.BaseVelocity(), tt.expected)
			}
		})
	}
}

func TestReboundBlockWall(t *testing.T) {
	b := NewBall(core.Vec(0.5, -0.05), core.Vec(0, 0.1))
	wall := &Block{Rect: core.R(0, 0, 1, 1), Unbreakable: true}

	if !reboundBlock(b, b.NextPos(1), wall) {
		t.Fatal("reboundBlock() = false, expected wall to reflect")
	}
	if wall.Broken() {
		t.Error("unbreakable block was marked broken")
	}
}

func TestReboundWell(t *testing.T) {
	tests := []struct {
		name     string
		pos      core.Vector2
		vel      core.Vector2
		shield   int
		hit      bool
		expected core.Vector2
		shieldTo int
	}{
		{"right wall", core.Vec(14.75, 0), core.Vec(0.1, 0.2), 0, true, core.Vec(-0.1, 0.2), 0},
		{"left wall", core.Vec(-14.75, 0), core.Vec(-0.1, 0.2), 0, true, core.Vec(0.1, 0.2), 0},
		{"ceiling", core.Vec(0, 14.95), core.Vec(0, 0.1), 0, true, core.Vec(0, -0.1), 0},
		{"shield up", core.Vec(0, -14.95), core.Vec(0, -0.1), 2, true, core.Vec(0, 0.1), 1},
		{"shield down", core.Vec(0, -14.95), core.Vec(0, -0.1), 0, false, core.Vec(0, -0.1), 0},
		{"open field", core.Vec(0, 0), core.Vec(0.3, -0.3), 1, false, core.Vec(0.3, -0.3), 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := NewWell(core.R(-15, -15, 15, 15), 0.2, 0.5)
			for i := 0; i < tt.shield; i++ {
				w.Shield.Upgrade()
			}
			b := NewBall(tt.pos, tt.vel)

			hit := reboundWell(b, b.NextPos(1), w)
			b.commit()

			if hit != tt.hit {
				t.Errorf("reboundWell() = %v, expected %v", hit, tt.hit)
			}
			if b.BaseVelocity() != tt.expected {
				t.Errorf("velocity = %v, expected %v", b.BaseVelocity(), tt.expected)
			}
			if w.Shield.Level() != tt.shieldTo {
				t.Errorf("Shield.Level() = %d, expected %d", w.Shield.Level(), tt.shieldTo)
			}
		})
	}
}

func TestReboundPaddle(t *testing.T) {
	p := NewPaddle(DefaultPaddleSpec(), core.R(-14.8, -15, 14.8, 15))

	// Straight down onto the middle goes straight up.
	b := NewBall(core.Vec(0, -8.9), core.Vec(0, -0.2))
	if !reboundPaddle(b, b.NextPos(1), p) {
		t.Fatal("reboundPaddle() = false, expected hit at paddle center")
	}
	b.commit()
	if math.Abs(b.BaseVelocity().X) > 1e-12 || math.Abs(b.BaseVelocity().Y-0.2) > 1e-12 {
		t.Errorf("center hit velocity = %v, expected (0,0.2)", b.BaseVelocity())
	}

	// Left end deflects to the left.
	b = NewBall(core.Vec(-4.4, -8.9), core.Vec(0, -0.2))
	reboundPaddle(b, b.NextPos(1), p)
	b.commit()
	if b.BaseVelocity().X >= 0 || b.BaseVelocity().Y <= 0 {
		t.Errorf("left end velocity = %v, expected up and to the left", b.BaseVelocity())
	}

	// Rising balls pass through.
	b = NewBall(core.Vec(0, -10), core.Vec(0, 0.2))
	if reboundPaddle(b, b.NextPos(1), p) {
		t.Error("reboundPaddle() = true for a rising ball")
	}

	// Missing the paddle.
	b = NewBall(core.Vec(8, -8.9), core.Vec(0, -0.2))
	if reboundPaddle(b, b.NextPos(1), p) {
		t.Error("reboundPaddle() = true for a ball beside the paddle")
	}
}

func TestReboundPaddleKeepsSpeed(t *testing.T) {
	p := NewPaddle(DefaultPaddleSpec(), core.R(-14.8, -15, 14.8, 15))

	rapid.Check(t, func(t *rapid.T) {
		x := rapid.Float64Range(-4.4, 4.4).Draw(t, "x")
		vx := rapid.Float64Range(-0.5, 0.5).Draw(t, "vx")
		vy := rapid.Float64Range(-0.5, -0.05).Draw(t, "vy")

		b := NewBall(core.Vec(x, -9.2), core.Vec(vx, vy))
		before := b.BaseVelocity().Magnitude()
		if !reboundPaddle(b, core.Vec(x, -9.3), p) {
			t.Fatalf("reboundPaddle() = false at x=%v", x)
		}
		b.commit()

		if math.Abs(b.BaseVelocity().Magnitude()-before) > 1e-9 {
			t.Fatalf("speed changed from %v to %v", before, b.BaseVelocity().Magnitude())
		}
		if b.BaseVelocity().Y <= 0 {
			t.Fatalf("velocity %v does not point up", b.BaseVelocity())
		}
	})
}

func TestPendingCommittedOncePerSubstep(t *testing.T) {
	// A ball in the top-right corner hits both walls in one substep and
	// must reflect on both axes exactly once.
	w := NewWell(core.R(-15, -15, 15, 15), 0.2, 0.5)
	b := NewBall(core.Vec(14.75, 14.95), core.Vec(0.1, 0.1))

	next := b.NextPos(1)
	reboundWell(b, next, w)
	reboundWell(b, next, w)
	b.commit()

	if b.BaseVelocity() != core.Vec(-0.1, -0.1) {
		t.Errorf("velocity = %v, expected (-0.1,-0.1)", b.BaseVelocity())
	}
}
