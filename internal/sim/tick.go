package sim

import "github.com/vovakirdan/brickwell/internal/core"

// Events summarises what happened during one Tick.
type Events struct {
	Launched      bool
	MissilesFired bool
	BallsLost     int
	BlocksBroken  int
	Dropped       []PowerUp
	Collected     []PowerUp
	PityDrop      bool
	ExtraLife     bool
	Expired       Expired
}

// Tick advances the level by one frame. Phases run in a fixed order:
// input, missile launch, balls, ball removal, block sweep, missiles, drops,
// timers, pity. The only error is a loot draw failure, which leaves the
// frame partly applied.
func (l *Level) Tick(a Action) (Events, error) {
	var ev Events
	l.frame++

	if l.serving {
		l.tickServe(a, &ev)
		return ev, nil
	}

	livesBefore := l.stats.ExtraLives()

	l.applyInput(a, &ev)
	l.moveBalls()
	l.removeLostBalls(&ev)
	if err := l.sweep(&ev); err != nil {
		return ev, err
	}
	l.moveMissiles()
	if err := l.sweep(&ev); err != nil {
		return ev, err
	}
	l.moveDrops(&ev)
	ev.Expired = l.stats.TickTimers()
	if err := l.checkPity(&ev); err != nil {
		return ev, err
	}

	if l.stats.ExtraLives() > livesBefore {
		ev.ExtraLife = true
		l.notes.Push("Score milestone reached! +1 life")
	}
	return ev, nil
}

// tickServe swings the parked ball across the paddle until launch.
func (l *Level) tickServe(a Action, ev *Events) {
	switch a {
	case ActionLeft:
		l.paddle.Move(-1)
	case ActionRight:
		l.paddle.Move(1)
	}

	l.swingPhase += l.tuning.ServeSwingStep
	if l.swingPhase > 360 {
		l.swingPhase -= 360
	}
	l.placeServedBalls()

	if a == ActionLaunch {
		l.serving = false
		ev.Launched = true
	}
}

func (l *Level) applyInput(a Action, ev *Events) {
	switch a {
	case ActionLeft:
		l.paddle.Move(-1)
	case ActionRight:
		l.paddle.Move(1)
	case ActionFire:
		if l.stats.FireMissile() {
			l.launchMissiles()
			ev.MissilesFired = true
		}
	}
}

func (l *Level) launchMissiles() {
	hb := l.paddle.Hitbox()
	for _, p := range []core.Vector2{hb.TopLeft(), hb.TopCenter(), hb.TopRight()} {
		l.missiles = append(l.missiles, &Missile{Pos: p, OriginY: p.Y, Speed: l.tuning.MissileSpeed})
	}
}

func (l *Level) moveBalls() {
	multi := l.stats.SpeedMultiplier()
	for _, b := range l.balls {
		b.SetSpeedMultiplier(multi)
		l.moveBall(b)
	}
}

// moveBall runs every substep of one ball for this frame.
func (l *Level) moveBall(b *Ball) {
	for _, f := range substepFactors(b.Speed(), l.tuning.MaxStepping) {
		b.advance(f)
		next := b.NextPos(f)

		reboundWell(b, next, l.well)
		reboundPaddle(b, next, l.paddle)
		for i := 0; i < l.blocks.Len(); i++ {
			blk := l.blocks.At(i)
			if !blk.Broken() {
				reboundBlock(b, next, blk)
			}
		}

		b.commit()
	}
}

func (l *Level) removeLostBalls(ev *Events) {
	kept := l.balls[:0]
	for _, b := range l.balls {
		if l.well.IsBelow(b.Pos) {
			ev.BallsLost++
			continue
		}
		kept = append(kept, b)
	}
	clear(l.balls[len(kept):])
	l.balls = kept
}

// sweep scores and removes broken blocks, dropping a power-up on the cadence
// set by the level's drop frequency and offset.
func (l *Level) sweep(ev *Events) error {
	for _, b := range l.blocks.Sweep() {
		if n := l.brokeCount - l.dropOffset; n >= 0 && n%l.dropFreq == 0 {
			p, err := l.loot.Draw(l.rng)
			if err != nil {
				return err
			}
			l.drops = append(l.drops, &Drop{Pos: b.Rect.Center(), Speed: l.tuning.DropSpeed, PowerUp: p})
			ev.Dropped = append(ev.Dropped, p)
		}
		l.brokeCount++
		l.stats.AddScore(b.Points)
		ev.BlocksBroken++
	}
	return nil
}

func (l *Level) moveMissiles() {
	inner := l.well.Inner()
	kept := l.missiles[:0]
	for _, m := range l.missiles {
		if l.missileHit(m) {
			continue
		}
		m.rise()
		if !inner.Contains(m.Pos) {
			continue
		}
		kept = append(kept, m)
	}
	clear(l.missiles[len(kept):])
	l.missiles = kept
}

// missileHit breaks the first unbroken block under the missile.
// Walls stop missiles without breaking.
func (l *Level) missileHit(m *Missile) bool {
	for i := 0; i < l.blocks.Len(); i++ {
		blk := l.blocks.At(i)
		if !blk.Broken() && blk.Rect.Contains(m.Pos) {
			blk.Break()
			return true
		}
	}
	return false
}

func (l *Level) moveDrops(ev *Events) {
	catch := l.paddle.BallHitbox()
	var kept []*Drop
	for _, d := range l.drops {
		if catch.Contains(d.Pos) {
			l.Apply(d.PowerUp)
			ev.Collected = append(ev.Collected, d.PowerUp)
			continue
		}
		d.fall()
		if l.well.IsBelow(d.Pos) {
			continue
		}
		kept = append(kept, d)
	}
	l.drops = kept
}

func (l *Level) checkPity(ev *Events) error {
	if !l.PityActive() || !l.stats.PityDue() {
		return nil
	}
	p, err := l.pity.Draw(l.rng)
	if err != nil {
		return err
	}
	l.drops = append(l.drops, &Drop{Pos: l.well.Inner().TopCenter(), Speed: l.tuning.DropSpeed, PowerUp: p})
	l.stats.StartPity()
	l.notes.Push("Pity power-up spawned")
	ev.PityDrop = true
	ev.Dropped = append(ev.Dropped, p)
	return nil
}
