package sim

import (
	"testing"

	"github.com/vovakirdan/brickwell/internal/core"
)

// seqSource replays fixed values, cycling when exhausted.
type seqSource struct {
	vals []int
	i    int
}

func (s *seqSource) Intn(n int) int {
	v := s.vals[s.i%len(s.vals)] % n
	s.i++
	return v
}

func newTestLevel(t *testing.T, spec LevelSpec) *Level {
	t.Helper()
	return newTunedLevel(t, spec, DefaultTuning())
}

func newTunedLevel(t *testing.T, spec LevelSpec, tuning Tuning) *Level {
	t.Helper()
	l, err := NewLevel(spec, tuning, NewStats(DefaultStatsConfig()), NewRNG(7), nil)
	if err != nil {
		t.Fatalf("NewLevel() error = %v", err)
	}
	return l
}

// startPlay skips the serve and empties the field of balls.
func startPlay(l *Level) {
	l.serving = false
	l.balls = nil
}

func (l *Level) ballAt(pos, vel core.Vector2) *Ball {
	b := NewBall(pos, vel)
	l.balls = append(l.balls, b)
	return b
}

func blockRow(n int, y float64) []BlockSpec {
	specs := make([]BlockSpec, n)
	for i := range specs {
		x := -10 + 2*float64(i)
		specs[i] = BlockSpec{Rect: core.R(x, y, x+1.5, y+1)}
	}
	return specs
}

func tickN(t *testing.T, l *Level, n int, a Action) Events {
	t.Helper()
	var last Events
	for i := 0; i < n; i++ {
		ev, err := l.Tick(a)
		if err != nil {
			t.Fatalf("Tick() error = %v", err)
		}
		last = ev
	}
	return last
}
