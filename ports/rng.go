package ports

import (
	"context"
	"math/rand"
)

// RNGPort provides seeded random number generation for deterministic operations
type RNGPort interface {
	// SeededStream creates a deterministic random number generator for a named operation
	SeededStream(ctx context.Context, name string, seed int64) (*rand.Rand, error)

	// ChainStream creates a deterministic RNG stream for one MCMC chain.
	// This ensures identical draws for the same (chain, seed) pair
	// regardless of chain scheduling order.
	ChainStream(ctx context.Context, chain int, baseSeed int64) (*rand.Rand, error)
}
