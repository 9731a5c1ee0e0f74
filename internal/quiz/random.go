package quiz

import "math/rand/v2"

// Source is the randomness the quiz draws on. *rand.Rand satisfies it.
type Source interface {
	Shuffle(n int, swap func(i, j int))
}

// NewRand returns an entropy-seeded PCG source for production use.
func NewRand() *rand.Rand {
	return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
}

// NewSeededRand returns a deterministic source for tests and reproducible runs.
func NewSeededRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// Shuffled returns a shuffled copy of items. The input is not modified.
func Shuffled[V any](rng Source, items []V) []V {
	out := make([]V, len(items))
	copy(out, items)
	rng.Shuffle(len(out), func(i, j int) {
		out[i], out[j] = out[j], out[i]
	})
	return out
}

// Sample returns min(k, len(pool)) elements of pool in random order. Positions
// are drawn without replacement, so an element appears at most once per
// occurrence in pool. pool is not modified.
func Sample[V any](rng Source, pool []V, k int) []V {
	if k <= 0 || len(pool) == 0 {
		return []V{}
	}
	out := Shuffled(rng, pool)
	if k < len(out) {
		out = out[:k]
	}
	return out
}
