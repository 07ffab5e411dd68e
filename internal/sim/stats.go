package sim

import "math"

// Durations are timer lengths in frames.
type Durations struct {
	ScoreMultiplier int
	Speed           int
	MissileCooldown int
	Pity            int
}

// DefaultDurations returns the stock timer lengths.
func DefaultDurations() Durations {
	return Durations{
		ScoreMultiplier: 300,
		Speed:           200,
		MissileCooldown: 30,
		Pity:            500,
	}
}

// Timers count frames down to zero. A negative value means idle.
type Timers struct {
	ScoreMultiplier int
	Speed           int
	MissileCooldown int
	Pity            int
}

// Expired lists the timers that reached zero on a tick.
type Expired struct {
	ScoreMultiplier bool
	Speed           bool
	MissileCooldown bool
	Pity            bool
}

// Any reports whether any timer expired.
func (e Expired) Any() bool {
	return e.ScoreMultiplier || e.Speed || e.MissileCooldown || e.Pity
}

// Tick decrements every running timer once. A timer reports expiry only on
// the tick it goes from 1 to 0.
func (t *Timers) Tick() Expired {
	return Expired{
		ScoreMultiplier: countDown(&t.ScoreMultiplier),
		Speed:           countDown(&t.Speed),
		MissileCooldown: countDown(&t.MissileCooldown),
		Pity:            countDown(&t.Pity),
	}
}

func countDown(v *int) bool {
	if *v <= 0 {
		return false
	}
	*v--
	return *v == 0
}

// StatsConfig holds the tunables of a Stats record.
type StatsConfig struct {
	Durations      Durations
	BaseLives      int
	ExtraLifeScore int     // score unit for extra lives, see ExtraLives
	SpeedStep      float64 // multiplier change per speed tier
}

// DefaultStatsConfig returns the stock configuration.
func DefaultStatsConfig() StatsConfig {
	return StatsConfig{
		Durations:      DefaultDurations(),
		BaseLives:      3,
		ExtraLifeScore: 5000,
		SpeedStep:      0.25,
	}
}

// Stats is the score and buff record shared by the level and the game.
type Stats struct {
	Score      int
	Multiplier int
	SpeedTier  int
	Missiles   int
	LivesLost  int
	Level      int
	Timers     Timers

	cfg StatsConfig
}

// NewStats creates a fresh record.
func NewStats(cfg StatsConfig) *Stats {
	s := &Stats{cfg: cfg}
	s.ResetAll()
	return s
}

// Config returns the configuration the record was built with.
func (s *Stats) Config() StatsConfig {
	return s.cfg
}

// AddScore awards points scaled by the current multiplier.
func (s *Stats) AddScore(points int) {
	s.Score += points * s.Multiplier
}

// AddMultiplier raises the score multiplier by one and restarts its timer.
func (s *Stats) AddMultiplier() {
	s.Multiplier++
	s.Timers.ScoreMultiplier = s.cfg.Durations.ScoreMultiplier
}

// SpeedUp raises the speed tier by one.
func (s *Stats) SpeedUp() {
	s.setSpeedTier(s.SpeedTier + 1)
}

// SlowDown lowers the speed tier by one.
func (s *Stats) SlowDown() {
	s.setSpeedTier(s.SpeedTier - 1)
}

func (s *Stats) setSpeedTier(tier int) {
	s.SpeedTier = tier
	if tier != 0 {
		s.Timers.Speed = s.cfg.Durations.Speed
	} else {
		s.Timers.Speed = 0
	}
}

// SpeedMultiplier converts the speed tier to a velocity factor:
// 1+step*tier when speeding up, 1/(1-step*tier) when slowing down.
func (s *Stats) SpeedMultiplier() float64 {
	step := s.cfg.SpeedStep * float64(s.SpeedTier)
	if s.SpeedTier >= 0 {
		return 1 + step
	}
	return 1 / (1 - step)
}

// AddMissile grants one missile volley.
func (s *Stats) AddMissile() {
	s.Missiles++
}

// CanFireMissile reports whether a volley is available and off cooldown.
func (s *Stats) CanFireMissile() bool {
	return s.Missiles > 0 && s.Timers.MissileCooldown <= 0
}

// FireMissile consumes a volley and starts the cooldown.
// Returns false without changing anything when firing is not allowed.
func (s *Stats) FireMissile() bool {
	if !s.CanFireMissile() {
		return false
	}
	s.Missiles--
	s.Timers.MissileCooldown = s.cfg.Durations.MissileCooldown
	return true
}

// StartPity restarts the pity countdown.
func (s *Stats) StartPity() {
	s.Timers.Pity = s.cfg.Durations.Pity
}

// PityDue reports whether the pity countdown is idle or finished.
func (s *Stats) PityDue() bool {
	return s.Timers.Pity <= 0
}

// ExtraLives is floor(sqrt(score / ExtraLifeScore)): the first extra life
// comes at 1×, the second at 4×, the third at 9× and so on.
func (s *Stats) ExtraLives() int {
	if s.cfg.ExtraLifeScore <= 0 || s.Score <= 0 {
		return 0
	}
	return int(math.Floor(math.Sqrt(float64(s.Score / s.cfg.ExtraLifeScore))))
}

// Lives returns the lives left.
func (s *Stats) Lives() int {
	return s.cfg.BaseLives + s.ExtraLives() - s.LivesLost
}

// HasLives reports whether the game can go on.
func (s *Stats) HasLives() bool {
	return s.Lives() > 0
}

// LoseLife records a lost round.
func (s *Stats) LoseLife() {
	s.LivesLost++
}

// NextLevel advances the level counter.
func (s *Stats) NextLevel() {
	s.Level++
}

// TickTimers advances every timer by one frame and then reverts the buffs
// whose timers ran out.
func (s *Stats) TickTimers() Expired {
	exp := s.Timers.Tick()
	if exp.ScoreMultiplier {
		s.Multiplier = 1
	}
	if exp.Speed {
		s.SpeedTier = 0
	}
	return exp
}

// ResetTimers stops every timer; the pity timer goes idle.
func (s *Stats) ResetTimers() {
	s.Timers = Timers{Pity: -1}
}

// ResetLevelStats drops the buffs that do not carry over between rounds.
func (s *Stats) ResetLevelStats() {
	s.Multiplier = 1
	s.SpeedTier = 0
	s.Missiles = 0
}

// ResetAll starts a new game.
func (s *Stats) ResetAll() {
	s.Score = 0
	s.LivesLost = 0
	s.Level = 0
	s.ResetLevelStats()
	s.ResetTimers()
}
