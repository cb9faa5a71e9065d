// Package rng provides the injected randomness source used by dungeon
// generation, encounter rolls, and flee resolution. Injecting the
// roller lets tests pin every probabilistic branch.
package rng

import "math/rand/v2"

//go:generate mockgen -destination=mock/mock.go -package=rngmock github.com/crawlforge/dungeon-api/internal/pkg/rng Roller

// Roller is a source of uniform random draws
type Roller interface {
	// Float64 returns a uniform draw in [0, 1)
	Float64() float64

	// IntN returns a uniform draw in [0, n). n must be > 0.
	IntN(n int) int

	// Between returns a uniform draw in [lo, hi] inclusive.
	// Returns lo when hi <= lo.
	Between(lo, hi int) int

	// Chance reports whether a uniform [0,1) draw fell below p
	Chance(p float64) bool
}

type roller struct {
	r *rand.Rand
}

// New returns a Roller backed by math/rand/v2 with a random seed
func New() Roller {
	return &roller{r: rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))}
}

// NewSeeded returns a Roller with a fixed seed, for reproducible runs
func NewSeeded(seed uint64) Roller {
	return &roller{r: rand.New(rand.NewPCG(seed, seed))}
}

func (x *roller) Float64() float64 {
	return x.r.Float64()
}

func (x *roller) IntN(n int) int {
	return x.r.IntN(n)
}

func (x *roller) Between(lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + x.r.IntN(hi-lo+1)
}

func (x *roller) Chance(p float64) bool {
	return x.r.Float64() < p
}
