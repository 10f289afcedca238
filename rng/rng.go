// Package rng wraps math/rand behind the small interface the move
// framework needs: uniform [0,1), half [-0.5,0.5), ranged integers, and
// random-iterator selection. No example in the pack ships a reusable
// Monte-Carlo-grade RNG library (they all wrap math/rand directly, e.g.
// achemdb's Environment.rand), so this package does the same, kept
// deliberately thin so callers depend on the interface, not on
// math/rand's API shape.
package rng

import "math/rand"

// RNG is a reproducible pseudo-random source. The move framework keeps a
// process-wide instance and derives a dedicated one from it for each move
// (and the propagator) at construction, so Markov trajectories are reproducible
// independently of any RNG consumption inside the Hamiltonian.
type RNG struct {
	r *rand.Rand
}

// New returns an RNG seeded with seed.
func New(seed int64) *RNG {
	return &RNG{r: rand.New(rand.NewSource(seed))}
}

// Derive returns a new RNG seeded from a draw of r, the construction-time
// seeding the move-dedicated RNG uses against the process-wide one.
func (r *RNG) Derive() *RNG {
	return New(r.r.Int63())
}

// Uniform draws from the uniform distribution on [0,1).
func (r *RNG) Uniform() float64 { return r.r.Float64() }

// Half draws from the uniform distribution on [-0.5,0.5).
func (r *RNG) Half() float64 { return r.r.Float64() - 0.5 }

// IntN draws a uniform integer in [0,n).
func (r *RNG) IntN(n int) int { return r.r.Intn(n) }

// Pick returns a uniformly selected index into a slice of length n.
// Panics if n <= 0.
func (r *RNG) Pick(n int) int {
	if n <= 0 {
		panic("rng: Pick requires a positive length")
	}
	return r.IntN(n)
}

// Sign returns -1 or 1 with equal probability.
func (r *RNG) Sign() int {
	if r.r.Intn(2) == 0 {
		return -1
	}
	return 1
}
