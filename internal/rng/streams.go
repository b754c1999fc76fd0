package rng

import (
	"context"
	"fmt"
	"math/rand"
)

// StreamAdapter implements ports.RNGPort with deterministic named streams
type StreamAdapter struct{}

// NewStreamAdapter creates the default RNG adapter
func NewStreamAdapter() *StreamAdapter {
	return &StreamAdapter{}
}

// SeededStream creates a deterministic random number generator for a named operation
func (r *StreamAdapter) SeededStream(ctx context.Context, name string, seed int64) (*rand.Rand, error) {
	return rand.New(rand.NewSource(deriveSeed(name, seed))), nil
}

// ChainStream creates a deterministic RNG stream for one MCMC chain.
// The sub-seed depends only on the chain index and the base seed, so the
// same seed always replays the same draws and chains never share a stream
// regardless of scheduling order.
func (r *StreamAdapter) ChainStream(ctx context.Context, chain int, baseSeed int64) (*rand.Rand, error) {
	name := fmt.Sprintf("chain-%d", chain)
	return rand.New(rand.NewSource(deriveSeed(name, baseSeed))), nil
}

// deriveSeed combines a stream name with the base seed
func deriveSeed(name string, seed int64) int64 {
	if name == "" {
		return seed
	}
	return int64(hashString(name)) + seed
}

// hashString creates a simple hash for deterministic seeding
func hashString(s string) uint32 {
	var hash uint32 = 5381
	for _, c := range s {
		hash = ((hash << 5) + hash) + uint32(c) // djb2 algorithm
	}
	return hash
}
