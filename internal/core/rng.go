package core

import "math/rand/v2"

// RandomSource is the minimal generator contract the race policies need.
// *rand.Rand satisfies it.
type RandomSource interface {
	Float64() float64
}

// RNG is a thin convenience wrapper around math/rand/v2 for deterministic seeding.
type RNG struct {
	r *rand.Rand
}

// NewRNG creates a deterministic RNG using the provided seed.
func NewRNG(seed int64) *RNG {
	return &RNG{r: rand.New(rand.NewPCG(uint64(seed), 0))}
}

// Float64 returns a pseudo-random number in [0, 1).
func (r *RNG) Float64() float64 {
	return r.r.Float64()
}

// Range returns a pseudo-random number in [lo, hi).
func (r *RNG) Range(lo, hi float64) float64 {
	return lo + r.r.Float64()*(hi-lo)
}

// Bool returns a random boolean value.
func (r *RNG) Bool() bool {
	return r.r.IntN(2) == 1
}

// Source exposes the underlying rand.Rand for advanced use.
func (r *RNG) Source() *rand.Rand { return r.r }

// Fixed is a RandomSource that always returns the same value. Values outside
// [0, 1) are clamped into range.
type Fixed float64

// Float64 returns the fixed value.
func (f Fixed) Float64() float64 {
	v := float64(f)
	if v < 0 {
		return 0
	}
	if v >= 1 {
		return 0.9999999999
	}
	return v
}
