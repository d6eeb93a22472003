// Package rng provides the seeded random source used by the fusion and
// combat engines. Every probabilistic decision in those packages consumes
// from an explicitly passed *Source so that the same seed and the same call
// sequence always reproduce the same outcome (replay/audit requirement).
// There is intentionally no package-level source.
package rng

import "math/rand"

// Source is a deterministic pseudo-random stream. It is not safe for
// concurrent use; each fusion or battle owns its own instance.
type Source struct {
	r *rand.Rand
}

// New returns a Source seeded with the given value.
func New(seed int64) *Source {
	return &Source{r: rand.New(rand.NewSource(seed))}
}

// Float64 returns the next float in [0,1).
func (s *Source) Float64() float64 {
	return s.r.Float64()
}

// Intn returns the next int in [0,n). n must be > 0.
func (s *Source) Intn(n int) int {
	return s.r.Intn(n)
}

// Chance consumes one float and reports whether it fell under p.
// p <= 0 never succeeds, p >= 1 always does (one draw is consumed either
// way so call sequences stay aligned between preview and execution).
func (s *Source) Chance(p float64) bool {
	return s.r.Float64() < p
}

// Jitter returns a multiplier in [1-width, 1+width).
func (s *Source) Jitter(width float64) float64 {
	return 1 + (s.r.Float64()*2-1)*width
}
