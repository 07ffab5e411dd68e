package breakout

import "github.com/vovakirdan/brickwell/internal/sim"

// Snapshot is the game state on top of the level snapshot, for determinism
// tests and replays. It is not meant to be restored from.
type Snapshot struct {
	State      string
	Mode       int // 0=Campaign, 1=Endless
	LevelIndex int
	Cycle      int
	RNGState   uint64
	Level      sim.Snapshot
}

// Snapshot returns the current game state.
func (g *Game) Snapshot() Snapshot {
	snap := Snapshot{
		State:      g.state,
		Mode:       int(g.mode),
		LevelIndex: g.levelIndex,
		Cycle:      g.cycle,
	}
	if g.rng != nil {
		snap.RNGState = g.rng.State()
	}
	if g.level != nil {
		snap.Level = g.level.Snapshot()
	}
	return snap
}

// Hash returns a simple hash of the snapshot for determinism testing.
func (snap *Snapshot) Hash() uint64 {
	h := snap.Level.Hash()
	h = h*31 + uint64(snap.Mode)       //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.LevelIndex) //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.Cycle)      //#nosec G115 -- hash computation
	for _, c := range []byte(snap.State) {
		h = h*31 + uint64(c)
	}
	h = h*31 + snap.RNGState
	return h
}
