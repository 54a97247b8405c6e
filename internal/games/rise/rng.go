package rise

import "math/rand"

// Source is the random number source used by generation.
// *rand.Rand satisfies it; tests can supply fixed sequences.
type Source interface {
	Float64() float64 // Uniform in [0, 1)
	Intn(n int) int   // Uniform in [0, n)
}

// NewSource returns a seeded source private to one round.
func NewSource(seed int64) Source {
	return rand.New(rand.NewSource(seed))
}

// uniform returns a value in [lo, hi]. A degenerate range returns lo without drawing.
func uniform(rng Source, lo, hi float64) float64 {
	if hi <= lo {
		return lo
	}
	return lo + rng.Float64()*(hi-lo)
}

// intBetween returns an int in [lo, hi]. A degenerate range returns lo without drawing.
func intBetween(rng Source, lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + rng.Intn(hi-lo+1)
}

// chance draws once and reports whether the event with probability p happens.
func chance(rng Source, p float64) bool {
	if p <= 0 {
		return false
	}
	return rng.Float64() < p
}
