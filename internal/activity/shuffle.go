package activity

import (
	"math/rand/v2"
	"slices"
)

// Shuffler produces uniform random permutations. *rand.Rand satisfies it,
// so tests can pass a seeded source and production a randomly seeded one.
type Shuffler interface {
	Shuffle(n int, swap func(i, j int))
}

// NewShuffler returns a deterministic Shuffler for the given seed.
func NewShuffler(seed uint64) Shuffler {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// RandomShuffler returns a Shuffler seeded from the runtime's random source.
func RandomShuffler() Shuffler {
	return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
}

// shuffled returns a shuffled copy of in; in is left untouched.
func shuffled[T any](s Shuffler, in []T) []T {
	out := slices.Clone(in)
	s.Shuffle(len(out), func(i, j int) { out[i], out[j] = out[j], out[i] })
	return out
}
