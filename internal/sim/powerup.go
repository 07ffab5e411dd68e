package sim

// PowerUp identifies one of the collectible power-up kinds.
// Values are stable ids; iteration over loot tables follows this order.
type PowerUp uint8

const (
	PadExpand PowerUp = iota + 1
	PadShrink
	BallSpeedUp
	BallSlowDown
	Multiball
	ScoreMultiplier
	ShieldUpgrade
	MissileGrant
)

type powerUpInfo struct {
	glyph string
	abbr  string
	name  string
}

var powerUps = [...]powerUpInfo{
	PadExpand:       {"<->", "xpd", "Pad Expand"},
	PadShrink:       {">-<", "rdc", "Pad Shrink"},
	BallSpeedUp:     {"o>>", "fst", "Fast Ball"},
	BallSlowDown:    {"o<<", "slw", "Slow Ball"},
	Multiball:       {"ooo", "mlb", "Multiball"},
	ScoreMultiplier: {"x 2", "mlt", "Score Multiplier"},
	ShieldUpgrade:   {"###", "shd", "Shield"},
	MissileGrant:    {">=>", "msl", "Missile"},
}

// AllPowerUps returns every kind in id order.
func AllPowerUps() []PowerUp {
	return []PowerUp{
		PadExpand, PadShrink, BallSpeedUp, BallSlowDown,
		Multiball, ScoreMultiplier, ShieldUpgrade, MissileGrant,
	}
}

// Valid reports whether p names a known kind.
func (p PowerUp) Valid() bool {
	return p >= PadExpand && p <= MissileGrant
}

// Glyph returns the three-character sprite drawn for a falling drop.
func (p PowerUp) Glyph() string {
	if !p.Valid() {
		return "???"
	}
	return powerUps[p].glyph
}

// Abbr returns the level-file abbreviation.
func (p PowerUp) Abbr() string {
	if !p.Valid() {
		return ""
	}
	return powerUps[p].abbr
}

func (p PowerUp) String() string {
	if !p.Valid() {
		return "Unknown"
	}
	return powerUps[p].name
}

// PowerUpByAbbr looks up a kind by its level-file abbreviation.
func PowerUpByAbbr(abbr string) (PowerUp, bool) {
	for _, p := range AllPowerUps() {
		if powerUps[p].abbr == abbr {
			return p, true
		}
	}
	return 0, false
}
