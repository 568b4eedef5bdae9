// Package random provides a small reproducible pseudo-random source.
//
// It is used for curriculum shuffles and quiz generation where runs must be
// repeatable for a given seed. It is not suitable for anything security related.
package random

import "hash/fnv"

const (
	multiplier = 1103515245
	increment  = 12345
	modulus    = 1 << 31
)

// LCG is a linear congruential generator: seed = (seed*1103515245 + 12345) mod 2^31.
type LCG struct {
	seed uint64
}

// New creates an LCG. Negative seeds are folded into the 31-bit range.
func New(seed int64) *LCG {
	return &LCG{seed: uint64(seed) % modulus}
}

// SeedFromString derives a stable 31-bit seed from a name such as a level id.
func SeedFromString(name string) int64 {
	h := fnv.New32a()
	_, _ = h.Write([]byte(name))
	return int64(h.Sum32() & (modulus - 1))
}

// Next advances the generator and returns the new state.
func (g *LCG) Next() int64 {
	g.seed = (g.seed*multiplier + increment) % modulus
	return int64(g.seed)
}

// Intn returns a value in [0, n). n must be positive.
func (g *LCG) Intn(n int) int {
	return int(g.Next() % int64(n))
}

// Bool returns a coin flip.
func (g *LCG) Bool() bool {
	return g.Intn(2) == 0
}

// Shuffle permutes values in place with Fisher-Yates, walking i from len-1 down to 1
// and swapping with index Next() mod (i+1).
func Shuffle[T any](g *LCG, values []T) {
	for i := len(values) - 1; i > 0; i-- {
		j := g.Intn(i + 1)
		values[i], values[j] = values[j], values[i]
	}
}

// Shuffled returns a shuffled copy of values.
func Shuffled[T any](g *LCG, values []T) []T {
	result := make([]T, len(values))
	copy(result, values)
	Shuffle(g, result)
	return result
}
