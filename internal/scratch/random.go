package scratch

import "math/rand/v2"

// RandomSource supplies the uniform draws used by the game.
// *rand.Rand from math/rand/v2 satisfies it.
type RandomSource interface {
	// Float64 returns a value in [0,1).
	Float64() float64
	// IntN returns a value in [0,n).
	IntN(n int) int
}

type runtimeSource struct{}

func (runtimeSource) Float64() float64 { return rand.Float64() }

func (runtimeSource) IntN(n int) int { return rand.IntN(n) }

// DefaultSource draws from the runtime generator, which is safe for concurrent use.
var DefaultSource RandomSource = runtimeSource{}

// shuffle permutes s in place (Fisher-Yates).
func shuffle[T any](s []T, rng RandomSource) {
	for i := len(s) - 1; i > 0; i-- {
		j := rng.IntN(i + 1)
		s[i], s[j] = s[j], s[i]
	}
}
