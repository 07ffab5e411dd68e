package sim

import "fmt"

// Apply gives the player the effect of a collected power-up and posts a
// notification. Returns false when the power-up had no effect.
func (l *Level) Apply(p PowerUp) bool {
	switch p {
	case PadExpand:
		if !l.paddle.Buff() {
			l.notes.Push("Maximum pad width reached, no effect.")
			return false
		}
		l.notes.Push("<== Pad Expand ==>")

	case PadShrink:
		if !l.paddle.Nerf() {
			l.notes.Push("Minimum pad width reached, no effect.")
			return false
		}
		l.notes.Push(">== Pad Shrink ==<")

	case BallSpeedUp:
		l.stats.SpeedUp()
		l.notes.Push(fmt.Sprintf(">>> Ball Speed Up (x%.2f)", l.stats.SpeedMultiplier()))

	case BallSlowDown:
		l.stats.SlowDown()
		l.notes.Push(fmt.Sprintf("<<< Ball Slow Down (x%.2f)", l.stats.SpeedMultiplier()))

	case Multiball:
		l.spawnMultiball()
		l.notes.Push("Multiball")

	case ScoreMultiplier:
		l.stats.AddMultiplier()
		l.notes.Push("Score multiplier +1")

	case ShieldUpgrade:
		if !l.well.Shield.Upgrade() {
			l.notes.Push("Shield max level reached, no effect.")
			return false
		}
		l.notes.Push(fmt.Sprintf("Shield Upgrade Level %d", l.well.Shield.Level()))

	case MissileGrant:
		l.stats.AddMissile()
		l.notes.Push("Missile +1 (Press C to launch)")

	default:
		return false
	}
	return true
}

func (l *Level) spawnMultiball() {
	pos := l.paddle.Hitbox().TopCenter()
	for _, v := range l.tuning.MultiballVelocities {
		b := NewBall(pos, v)
		b.SetSpeedMultiplier(l.stats.SpeedMultiplier())
		l.balls = append(l.balls, b)
	}
}
