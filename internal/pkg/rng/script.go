package rng

// ScriptedRoller replays a fixed sequence of draws, for tests.
// Float64 and Chance consume from Floats; IntN and Between consume
// from Ints (Between clamps into [lo, hi] by offsetting from lo).
// Exhausted sequences wrap around; an empty sequence yields zero.
type ScriptedRoller struct {
	Floats []float64
	Ints   []int

	fi int
	ii int
}

// NewScripted returns a roller replaying the given draws
func NewScripted(floats []float64, ints []int) *ScriptedRoller {
	return &ScriptedRoller{Floats: floats, Ints: ints}
}

// Float64 returns the next scripted float draw
func (s *ScriptedRoller) Float64() float64 {
	if len(s.Floats) == 0 {
		return 0
	}
	v := s.Floats[s.fi%len(s.Floats)]
	s.fi++
	return v
}

// IntN returns the next scripted int draw modulo n
func (s *ScriptedRoller) IntN(n int) int {
	if n <= 0 {
		return 0
	}
	if len(s.Ints) == 0 {
		return 0
	}
	v := s.Ints[s.ii%len(s.Ints)]
	s.ii++
	return v % n
}

// Between maps the next scripted int draw into [lo, hi]
func (s *ScriptedRoller) Between(lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + s.IntN(hi-lo+1)
}

// Chance reports whether the next scripted float draw fell below p
func (s *ScriptedRoller) Chance(p float64) bool {
	return s.Float64() < p
}
