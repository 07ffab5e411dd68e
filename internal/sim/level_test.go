package sim

import (
	"errors"
	"math"
	"testing"

	"github.com/vovakirdan/brickwell/internal/core"
	"pgregory.net/rapid"
)

func TestNewLevelErrors(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(*LevelSpec)
		expected error
	}{
		{"zero drop frequency", func(s *LevelSpec) { s.DropFrequency = 0 }, ErrNonPositiveDropFrequency},
		{"negative drop frequency", func(s *LevelSpec) { s.DropFrequency = -3 }, ErrNonPositiveDropFrequency},
		{"empty loot", func(s *LevelSpec) { s.Loot = nil }, ErrEmptyLootTable},
		{"zero pity weight", func(s *LevelSpec) { s.Pity = map[PowerUp]int{Multiball: 0} }, ErrNonPositiveWeight},
		{"bad grid", func(s *LevelSpec) { s.Grids = []GridSpec{{Cols: -1, Rows: 1}} }, ErrBadGrid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			spec := DefaultLevelSpec("broken")
			tt.mutate(&spec)
			_, err := NewLevel(spec, DefaultTuning(), NewStats(DefaultStatsConfig()), NewRNG(1), nil)
			if !errors.Is(err, tt.expected) {
				t.Errorf("NewLevel() error = %v, expected %v", err, tt.expected)
			}
		})
	}
}

func TestServeAndLaunch(t *testing.T) {
	l := newTestLevel(t, DefaultLevelSpec("serve"))

	if !l.Serving() || len(l.Balls()) != 1 {
		t.Fatalf("new level: serving=%v balls=%d, expected serving with one ball", l.Serving(), len(l.Balls()))
	}
	start := l.Balls()[0].Pos
	if math.Abs(start.X-3.15) > 1e-9 || math.Abs(start.Y+9) > 1e-9 {
		t.Errorf("served ball at %v, expected (3.15,-9)", start)
	}

	tickN(t, l, 3, ActionNone)
	if l.Balls()[0].Pos == start {
		t.Error("served ball did not swing")
	}
	if l.Frame() != 3 {
		t.Errorf("Frame() = %d, expected 3", l.Frame())
	}

	tickN(t, l, 2, ActionRight)
	if l.Paddle().Pos().X != 2 {
		t.Errorf("paddle X = %v while serving, expected 2", l.Paddle().Pos().X)
	}

	ev := tickN(t, l, 1, ActionLaunch)
	if !ev.Launched || l.Serving() {
		t.Fatalf("Launched = %v serving = %v, expected launch", ev.Launched, l.Serving())
	}
	if l.Balls()[0].BaseVelocity() != core.Vec(0, -0.6) {
		t.Errorf("launch velocity = %v, expected (0,-0.6)", l.Balls()[0].BaseVelocity())
	}

	ev = tickN(t, l, 1, ActionLaunch)
	if ev.Launched {
		t.Error("Launch outside the serve reported a launch")
	}
}

func TestDropCadence(t *testing.T) {
	spec := DefaultLevelSpec("cadence")
	spec.Blocks = blockRow(10, 5)
	spec.PityThreshold = 100
	l := newTestLevel(t, spec)
	startPlay(l)

	for i := 0; i < 8; i++ {
		l.Blocks().At(i).Break()
	}
	ev := tickN(t, l, 1, ActionNone)

	if ev.BlocksBroken != 8 {
		t.Errorf("BlocksBroken = %d, expected 8", ev.BlocksBroken)
	}
	if len(ev.Dropped) != 2 || len(l.Drops()) != 2 {
		t.Errorf("drops = %d (event %d), expected 2", len(l.Drops()), len(ev.Dropped))
	}
	if l.Stats().Score != 800 {
		t.Errorf("Score = %d, expected 800", l.Stats().Score)
	}
	if l.BrokeCount() != 8 {
		t.Errorf("BrokeCount() = %d, expected 8", l.BrokeCount())
	}
	if ev.PityDrop {
		t.Error("pity drop with threshold 100")
	}
	if l.Blocks().Len() != 2 {
		t.Errorf("Blocks().Len() = %d, expected 2", l.Blocks().Len())
	}
}

func TestScoreUsesMultiplier(t *testing.T) {
	spec := DefaultLevelSpec("multi")
	spec.Blocks = []BlockSpec{{Rect: core.R(0, 5, 1, 6), Points: 250}}
	spec.PityThreshold = 100
	l := newTestLevel(t, spec)
	startPlay(l)

	l.Stats().AddMultiplier()
	l.Blocks().At(0).Break()
	tickN(t, l, 1, ActionNone)
	if l.Stats().Score != 500 {
		t.Errorf("Score = %d, expected 500", l.Stats().Score)
	}
	if !l.Cleared() {
		t.Error("Cleared() = false with every block gone")
	}
}

func TestPityActive(t *testing.T) {
	tests := []struct {
		threshold int
		broke     int
		remaining int
		expected  bool
	}{
		{0, 0, 10, true},
		{-5, 0, 10, true},
		{100, 50, 1, false},
		{80, 8, 2, false},
		{80, 9, 1, true},
		{50, 3, 3, false},
		{50, 4, 3, true},
		{80, 10, 0, false},
	}

	for _, tt := range tests {
		spec := DefaultLevelSpec("pity")
		spec.Blocks = blockRow(tt.remaining, 5)
		spec.PityThreshold = tt.threshold
		l := newTestLevel(t, spec)
		l.brokeCount = tt.broke
		if got := l.PityActive(); got != tt.expected {
			t.Errorf("PityActive() threshold %d broke %d remaining %d = %v, expected %v",
				tt.threshold, tt.broke, tt.remaining, got, tt.expected)
		}
	}
}

func TestPityDropSpawnsOncePerTimer(t *testing.T) {
	spec := DefaultLevelSpec("pity")
	spec.Blocks = blockRow(3, 5)
	spec.PityThreshold = 0
	l := newTestLevel(t, spec)
	startPlay(l)

	ev := tickN(t, l, 1, ActionNone)
	if !ev.PityDrop || len(l.Drops()) != 1 {
		t.Fatalf("PityDrop = %v drops = %d, expected an immediate pity drop", ev.PityDrop, len(l.Drops()))
	}
	if p := l.Drops()[0].PowerUp; p != Multiball && p != MissileGrant {
		t.Errorf("pity drop = %v, expected multiball or missile", p)
	}
	if l.Drops()[0].Pos != l.Well().Inner().TopCenter() {
		t.Errorf("pity drop at %v, expected %v", l.Drops()[0].Pos, l.Well().Inner().TopCenter())
	}
	if l.Stats().Timers.Pity != 500 {
		t.Errorf("Timers.Pity = %d, expected 500", l.Stats().Timers.Pity)
	}
	if l.Notifier().Pending() != 1 {
		t.Errorf("Pending() = %d, expected the pity notice", l.Notifier().Pending())
	}

	ev = tickN(t, l, 1, ActionNone)
	if ev.PityDrop {
		t.Error("second pity drop on the next frame")
	}

	spec.PityThreshold = 100
	l = newTestLevel(t, spec)
	startPlay(l)
	for i := 0; i < 600; i++ {
		ev, err := l.Tick(ActionNone)
		if err != nil {
			t.Fatalf("Tick() error = %v", err)
		}
		if ev.PityDrop {
			t.Fatalf("pity drop at frame %d with threshold 100", i)
		}
	}
}

func TestDropCollected(t *testing.T) {
	l := newTestLevel(t, DefaultLevelSpec("catch"))
	startPlay(l)

	l.AddDrop(&Drop{Pos: core.Vec(0, -9.2), Speed: 0.1, PowerUp: MissileGrant})
	l.AddDrop(&Drop{Pos: core.Vec(12, -9.2), Speed: 0.1, PowerUp: ShieldUpgrade})
	ev := tickN(t, l, 1, ActionNone)

	if len(ev.Collected) != 1 || ev.Collected[0] != MissileGrant {
		t.Fatalf("Collected = %v, expected [MissileGrant]", ev.Collected)
	}
	if l.Stats().Missiles != 1 {
		t.Errorf("Missiles = %d, expected 1", l.Stats().Missiles)
	}
	if len(l.Drops()) != 1 || math.Abs(l.Drops()[0].Pos.Y+9.3) > 1e-9 {
		t.Errorf("missed drop did not keep falling: %+v", l.Drops())
	}

	// The missed drop leaves the well eventually.
	tickN(t, l, 70, ActionNone)
	if len(l.Drops()) != 0 {
		t.Errorf("drops = %d, expected the missed drop to fall out", len(l.Drops()))
	}
}

func TestApplyPowerUps(t *testing.T) {
	l := newTestLevel(t, DefaultLevelSpec("apply"))
	startPlay(l)

	if !l.Apply(Multiball) {
		t.Fatal("Apply(Multiball) = false")
	}
	if len(l.Balls()) != 2 {
		t.Fatalf("balls = %d after multiball, expected 2", len(l.Balls()))
	}
	top := l.Paddle().Hitbox().TopCenter()
	for i, b := range l.Balls() {
		if b.Pos != top {
			t.Errorf("ball %d at %v, expected %v", i, b.Pos, top)
		}
	}

	for i := 0; i < MaxShieldLevel; i++ {
		if !l.Apply(ShieldUpgrade) {
			t.Fatalf("Apply(ShieldUpgrade) #%d = false", i+1)
		}
	}
	if l.Apply(ShieldUpgrade) {
		t.Error("Apply(ShieldUpgrade) past the cap = true")
	}
	if l.Well().Shield.Level() != MaxShieldLevel {
		t.Errorf("shield level = %d, expected %d", l.Well().Shield.Level(), MaxShieldLevel)
	}

	if !l.Apply(PadShrink) || l.Apply(PadShrink) {
		t.Error("expected exactly one successful shrink")
	}
	if !l.Apply(BallSpeedUp) || l.Stats().SpeedTier != 1 {
		t.Errorf("SpeedTier = %d after speed up, expected 1", l.Stats().SpeedTier)
	}
	if l.Apply(PowerUp(0)) {
		t.Error("Apply(0) = true")
	}
}

func TestBallLost(t *testing.T) {
	l := newTestLevel(t, DefaultLevelSpec("lost"))
	startPlay(l)
	l.ballAt(core.Vec(12, -15.4), core.Vec(0, -0.3))

	ev := tickN(t, l, 1, ActionNone)
	if ev.BallsLost != 1 {
		t.Errorf("BallsLost = %d, expected 1", ev.BallsLost)
	}
	if !l.RoundOver() {
		t.Error("RoundOver() = false with no balls left")
	}
}

func TestShieldSavesBall(t *testing.T) {
	l := newTestLevel(t, DefaultLevelSpec("shield"))
	startPlay(l)
	l.Well().Shield.Upgrade()
	b := l.ballAt(core.Vec(12, -15.4), core.Vec(0, -0.3))

	ev := tickN(t, l, 1, ActionNone)
	if ev.BallsLost != 0 {
		t.Fatalf("BallsLost = %d, expected the shield to reflect", ev.BallsLost)
	}
	if l.Well().Shield.Level() != 0 {
		t.Errorf("shield level = %d, expected 0", l.Well().Shield.Level())
	}
	if b.BaseVelocity().Y <= 0 {
		t.Errorf("velocity = %v, expected upward", b.BaseVelocity())
	}

	b.Pos = core.Vec(12, -15.4)
	b.SetVelocity(core.Vec(0, -0.3))
	ev = tickN(t, l, 1, ActionNone)
	if ev.BallsLost != 1 {
		t.Errorf("BallsLost = %d once the shield is gone, expected 1", ev.BallsLost)
	}
}

func TestMissiles(t *testing.T) {
	spec := DefaultLevelSpec("missiles")
	spec.Blocks = []BlockSpec{{Rect: core.R(-4, 0, -3, 1)}}
	spec.PityThreshold = 100
	l := newTestLevel(t, spec)
	startPlay(l)
	l.Stats().AddMissile()
	l.Stats().AddMissile()

	ev := tickN(t, l, 1, ActionFire)
	if !ev.MissilesFired || len(l.Missiles()) != 3 {
		t.Fatalf("MissilesFired = %v missiles = %d, expected a volley of 3", ev.MissilesFired, len(l.Missiles()))
	}
	if l.Stats().Missiles != 1 {
		t.Errorf("Missiles = %d, expected 1", l.Stats().Missiles)
	}

	ev = tickN(t, l, 1, ActionFire)
	if ev.MissilesFired {
		t.Error("fired during cooldown")
	}
	if l.Stats().Missiles != 1 {
		t.Errorf("Missiles = %d after refused fire, expected 1", l.Stats().Missiles)
	}

	tickN(t, l, 11, ActionNone)
	if l.Stats().Score != 100 || l.Blocks().Len() != 0 {
		t.Errorf("Score = %d blocks = %d, expected the left missile to break the block", l.Stats().Score, l.Blocks().Len())
	}
	if len(l.Missiles()) != 2 {
		t.Errorf("missiles = %d, expected 2 still flying", len(l.Missiles()))
	}

	tickN(t, l, 30, ActionNone)
	if len(l.Missiles()) != 0 {
		t.Errorf("missiles = %d, expected all to leave the well", len(l.Missiles()))
	}
}

func TestMissileStoppedByWall(t *testing.T) {
	spec := DefaultLevelSpec("wall")
	spec.Blocks = []BlockSpec{
		{Rect: core.R(-1, 0, 1, 1), Unbreakable: true},
		{Rect: core.R(-1, 3, 1, 4)},
	}
	l := newTestLevel(t, spec)
	startPlay(l)
	l.Stats().AddMissile()

	tickN(t, l, 1, ActionFire)
	tickN(t, l, 20, ActionNone)
	if l.Blocks().Len() != 2 || l.Stats().Score != 0 {
		t.Errorf("blocks = %d score = %d, expected the wall to shield the block", l.Blocks().Len(), l.Stats().Score)
	}
}

func TestResetRound(t *testing.T) {
	spec := DefaultLevelSpec("reset")
	spec.Blocks = blockRow(4, 5)
	l := newTestLevel(t, spec)
	startPlay(l)

	l.Stats().AddMultiplier()
	l.Stats().SpeedUp()
	l.Stats().AddMissile()
	l.Paddle().Buff()
	l.Well().Shield.Upgrade()
	l.AddDrop(&Drop{Pos: core.Vec(0, 5), Speed: 0.1, PowerUp: Multiball})
	l.Notifier().Push("hello")

	l.ResetRound()

	if !l.Serving() || len(l.Balls()) != 1 || len(l.Drops()) != 0 || len(l.Missiles()) != 0 {
		t.Errorf("after ResetRound: serving=%v balls=%d drops=%d missiles=%d",
			l.Serving(), len(l.Balls()), len(l.Drops()), len(l.Missiles()))
	}
	st := l.Stats()
	if st.Multiplier != 1 || st.SpeedTier != 0 || st.Missiles != 0 || st.Timers.Pity != -1 {
		t.Errorf("stats not reset: %+v", st)
	}
	if l.Paddle().Buffs() != 0 {
		t.Errorf("Buffs() = %d, expected 0", l.Paddle().Buffs())
	}
	if l.Blocks().Len() != 4 || l.Well().Shield.Level() != 1 {
		t.Errorf("blocks = %d shield = %d, expected both kept", l.Blocks().Len(), l.Well().Shield.Level())
	}
	if l.Notifier().Pending() != 0 {
		t.Error("notifications survived ResetRound")
	}
}

func TestExtraLifeEvent(t *testing.T) {
	spec := DefaultLevelSpec("life")
	spec.Blocks = blockRow(2, 5)
	spec.PityThreshold = 100
	l := newTestLevel(t, spec)
	startPlay(l)
	l.Stats().Score = 4900

	l.Blocks().At(0).Break()
	ev := tickN(t, l, 1, ActionNone)
	if !ev.ExtraLife {
		t.Error("ExtraLife = false at 5000 points")
	}
	if l.Stats().Lives() != 4 {
		t.Errorf("Lives() = %d, expected 4", l.Stats().Lives())
	}

	l.Blocks().At(0).Break()
	ev = tickN(t, l, 1, ActionNone)
	if ev.ExtraLife {
		t.Error("ExtraLife reported twice")
	}
}

func TestBlockScoredOnce(t *testing.T) {
	spec := DefaultLevelSpec("once")
	spec.Blocks = []BlockSpec{{Rect: core.R(-1, 0, 1, 1)}, {Rect: core.R(-10, 10, -9, 11)}}
	spec.PityThreshold = 100
	l := newTestLevel(t, spec)
	startPlay(l)

	a := l.ballAt(core.Vec(0, -0.15), core.Vec(0, 0.1))
	b := l.ballAt(core.Vec(0.5, -0.15), core.Vec(0, 0.1))

	ev := tickN(t, l, 1, ActionNone)
	if ev.BlocksBroken != 1 || l.Stats().Score != 100 {
		t.Errorf("BlocksBroken = %d score = %d, expected one block scored once", ev.BlocksBroken, l.Stats().Score)
	}
	if a.BaseVelocity().Y >= 0 {
		t.Errorf("first ball velocity = %v, expected a bounce", a.BaseVelocity())
	}
	if b.BaseVelocity().Y <= 0 {
		t.Errorf("second ball velocity = %v, expected no bounce off a broken block", b.BaseVelocity())
	}
}

func TestSubstepFactorsPartitionFrame(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		speed := rapid.Float64Range(0.001, 5).Draw(t, "speed")
		step := rapid.Float64Range(0.01, 1).Draw(t, "step")

		fs := substepFactors(speed, step)
		if len(fs) != int(math.Ceil(speed/step)) {
			t.Fatalf("%d substeps, expected %v", len(fs), math.Ceil(speed/step))
		}
		sum := 0.0
		for _, f := range fs {
			if f <= 0 || f*speed > step+1e-9 {
				t.Fatalf("substep factor %v moves %v, limit %v", f, f*speed, step)
			}
			sum += f
		}
		if math.Abs(sum-1) > 1e-9 {
			t.Fatalf("factors sum to %v, expected 1", sum)
		}
	})
}

func TestFreeFlightIsExact(t *testing.T) {
	tuning := DefaultTuning()
	tuning.Well = core.R(-1000, -1000, 1000, 1000)
	tuning.Paddle.Pos = core.Vec(0, -900)

	l := newTunedLevel(t, DefaultLevelSpec("void"), tuning)
	startPlay(l)
	b := l.ballAt(core.Vec(0, 0), core.Vec(0.37, 0.21))

	tickN(t, l, 10, ActionNone)
	if math.Abs(b.Pos.X-3.7) > 1e-9 || math.Abs(b.Pos.Y-2.1) > 1e-9 {
		t.Errorf("ball at %v after 10 frames, expected (3.7,2.1)", b.Pos)
	}
	if b.BaseVelocity() != core.Vec(0.37, 0.21) {
		t.Errorf("velocity changed in free flight: %v", b.BaseVelocity())
	}
}

func TestDeterministicReplay(t *testing.T) {
	spec := DefaultLevelSpec("replay")
	spec.Grids = []GridSpec{{Subject: core.R(-12, 6, -10.5, 7), Sep: core.Vec(2, 1.5), Cols: 12, Rows: 4}}
	spec.PityThreshold = 50

	script := func(frame int) Action {
		switch {
		case frame == 5:
			return ActionLaunch
		case frame%90 < 20:
			return ActionLeft
		case frame%90 < 40:
			return ActionRight
		case frame%45 == 0:
			return ActionFire
		}
		return ActionNone
	}

	run := func() (uint64, int) {
		l, err := NewLevel(spec, DefaultTuning(), NewStats(DefaultStatsConfig()), NewRNG(42), nil)
		if err != nil {
			t.Fatalf("NewLevel() error = %v", err)
		}
		for i := 0; i < 1500 && !l.RoundOver(); i++ {
			if _, err := l.Tick(script(i)); err != nil {
				t.Fatalf("Tick() error = %v", err)
			}
		}
		snap := l.Snapshot()
		return snap.Hash(), snap.Score
	}

	h1, s1 := run()
	h2, s2 := run()
	if h1 != h2 || s1 != s2 {
		t.Errorf("replays diverged: hash %x/%x score %d/%d", h1, h2, s1, s2)
	}
}

func TestSnapshotHashChanges(t *testing.T) {
	l := newTestLevel(t, DefaultLevelSpec("hash"))
	before := l.Snapshot()
	tickN(t, l, 1, ActionRight)
	after := l.Snapshot()
	if before.Hash() == after.Hash() {
		t.Error("Hash() unchanged after a tick")
	}
	if after.Lives != 3 || after.Name != "hash" {
		t.Errorf("snapshot = %+v", after)
	}
}
