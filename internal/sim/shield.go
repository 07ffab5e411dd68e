package sim

// MaxShieldLevel is the strongest shield.
const MaxShieldLevel = 3

// Shield guards the gap at the bottom of the well. Each level absorbs one
// ball that would otherwise fall out.
type Shield struct {
	level int
}

// Level returns the current level in [0, MaxShieldLevel].
func (s *Shield) Level() int {
	return s.level
}

// Intact reports whether the shield still reflects balls.
func (s *Shield) Intact() bool {
	return s.level > 0
}

// Upgrade adds one level. Returns false at the cap.
func (s *Shield) Upgrade() bool {
	if s.level >= MaxShieldLevel {
		return false
	}
	s.level++
	return true
}

// Hit removes one level. Returns false when the shield is already down.
func (s *Shield) Hit() bool {
	if s.level <= 0 {
		return false
	}
	s.level--
	return true
}
