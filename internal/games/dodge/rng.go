package dodge

import "math/rand"

// RNG is the randomness source for spawns, pattern choice and particles.
// *rand.Rand satisfies it.
type RNG interface {
	Float64() float64
	Intn(n int) int
}

// NewRNG returns a seeded generator.
func NewRNG(seed int64) RNG {
	return rand.New(rand.NewSource(seed))
}

// between returns a uniform value in [lo, hi).
func between(r RNG, lo, hi float64) float64 {
	return lo + r.Float64()*(hi-lo)
}
