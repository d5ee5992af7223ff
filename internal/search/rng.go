package search

import "math/rand"

// RNG is the solver's single injectable source of randomness. The branching
// heuristic, the bandit tie-breaking in package uct and the SLS pickers all
// draw from the same instance so that a fixed seed reproduces an entire run
// bit-for-bit, per §5's ordering guarantee.
type RNG struct {
	r *rand.Rand
}

// NewRNG returns an RNG seeded with seed. Callers that want wall-clock
// seeding (the CLI default) should pass time.Now().UnixNano().
func NewRNG(seed int64) *RNG {
	return &RNG{r: rand.New(rand.NewSource(seed))}
}

// Float64 returns a uniform draw in [0, 1).
func (g *RNG) Float64() float64 {
	return g.r.Float64()
}

// Intn returns a uniform draw in [0, n).
func (g *RNG) Intn(n int) int {
	return g.r.Intn(n)
}

// Bool returns true with probability p.
func (g *RNG) Bool(p float64) bool {
	return g.r.Float64() < p
}
