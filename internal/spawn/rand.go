// Package spawn turns spawn requests into fully attributed entities and their bodies.
//
// Every random value is drawn from a Source in a fixed order, so a seeded
// source reproduces the same world.
package spawn

import (
	"math/rand/v2"
	"time"
)

// Source is the randomness spawners draw from. *rand.Rand satisfies it.
type Source interface {
	Float64() float64 // [0, 1)
	IntN(n int) int   // [0, n)
}

// NewSource returns a PCG source. A zero seed picks one from the clock.
func NewSource(seed uint64) *rand.Rand {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// uniform draws from [lo, hi).
func uniform(src Source, lo, hi float64) float64 {
	return lo + src.Float64()*(hi-lo)
}

// intRange draws from [lo, hi). An empty range yields lo.
func intRange(src Source, lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + src.IntN(hi-lo)
}
