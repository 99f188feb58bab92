package rng

import (
	"context"
	"math/rand"

	"homerange/ports"
)

// SeededAdapter implements ports.RNGPort on math/rand sources
type SeededAdapter struct{}

var _ ports.RNGPort = (*SeededAdapter)(nil)

// NewSeededAdapter creates a seeded RNG adapter
func NewSeededAdapter() *SeededAdapter {
	return &SeededAdapter{}
}

// SeededStream creates a deterministic random number generator for a named operation.
// The name is informational; the same seed always yields the same stream.
func (r *SeededAdapter) SeededStream(ctx context.Context, name string, seed int64) (*rand.Rand, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return rand.New(rand.NewSource(seed)), nil
}

// Stream mixes procedure and group into the base seed so every
// (procedure, group) pair draws from its own reproducible stream
func (r *SeededAdapter) Stream(ctx context.Context, procedure, group string, baseSeed int64) (*rand.Rand, error) {
	seed := baseSeed
	if procedure != "" {
		seed = int64(hashString(procedure)) + seed
	}
	if group != "" {
		seed = int64(hashString(group))*31 + seed
	}
	return r.SeededStream(ctx, procedure+"/"+group, seed)
}

// hashString creates a simple hash for deterministic seeding (djb2)
func hashString(s string) uint32 {
	var hash uint32 = 5381
	for _, c := range s {
		hash = ((hash << 5) + hash) + uint32(c)
	}
	return hash
}
