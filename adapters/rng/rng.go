package rng

import (
	"context"
	"hash/fnv"
	"math/rand"
)

// Adapter provides deterministic named RNG streams. The stream seed mixes
// the operation name into the base seed so independent operations never
// share a sequence.
type Adapter struct{}

// NewAdapter creates an RNG adapter.
func NewAdapter() *Adapter {
	return &Adapter{}
}

// SeededStream creates a deterministic random number generator for a named
// operation.
func (a *Adapter) SeededStream(ctx context.Context, name string, seed int64) (*rand.Rand, error) {
	h := fnv.New64a()
	_, _ = h.Write([]byte(name))
	return rand.New(rand.NewSource(seed ^ int64(h.Sum64()))), nil
}
