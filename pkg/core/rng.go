package core

import (
	"math/rand/v2"
	"time"
)

// Rand is the random source consumed by terrain and world generation.
// Tests substitute a scripted implementation to force outcomes.
type Rand interface {
	// Float64 returns a value in [0, 1).
	Float64() float64
	// IntN returns a value in [0, n). It panics when n <= 0.
	IntN(n int) int
}

// RNG is a thin convenience wrapper around math/rand/v2 for deterministic seeding.
type RNG struct {
	r *rand.Rand
}

// NewRNG creates a deterministic RNG using the provided seed.
func NewRNG(seed int64) *RNG {
	return &RNG{r: rand.New(rand.NewPCG(uint64(seed), 0))}
}

// NewProcessRNG seeds an RNG from the wall clock.
func NewProcessRNG() *RNG {
	return NewRNG(time.Now().UnixNano())
}

// Float64 returns a value in [0, 1).
func (r *RNG) Float64() float64 { return r.r.Float64() }

// IntN returns a value in [0, n).
func (r *RNG) IntN(n int) int { return r.r.IntN(n) }

// Bernoulli reports true with probability p. Values outside [0, 1] clamp.
func Bernoulli(r Rand, p float64) bool {
	if p <= 0 {
		return false
	}
	if p >= 1 {
		return true
	}
	return r.Float64() < p
}

// UniformInt returns an integer in the half-open range [lo, hi). When the
// range is empty lo is returned without consuming randomness.
func UniformInt(r Rand, lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + r.IntN(hi-lo)
}

// UniformSymmetric returns a float in [-mag, mag).
func UniformSymmetric(r Rand, mag float64) float64 {
	return (2*r.Float64() - 1) * mag
}
