package ports

import (
	"context"
	"math/rand"
)

// RNG provides seeded random number generation for operations that want
// realistic variation without losing reproducibility. The cost estimator's
// quote jitter is the only consumer; tests pin the seed.
type RNG interface {
	// SeededStream creates a deterministic random number generator for a
	// named operation.
	SeededStream(ctx context.Context, name string, seed int64) (*rand.Rand, error)
}
