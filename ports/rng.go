package ports

import (
	"context"
	"math/rand"
)

// RNGPort provides seeded random number generation for deterministic resampling
type RNGPort interface {
	// SeededStream creates a deterministic random number generator for a named operation
	SeededStream(ctx context.Context, name string, seed int64) (*rand.Rand, error)

	// Stream derives an independent deterministic stream for one procedure and group,
	// so bootstrap and permutation draws never share state within a report
	Stream(ctx context.Context, procedure, group string, baseSeed int64) (*rand.Rand, error)
}
