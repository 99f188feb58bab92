// Package inference implements resampling-based inference over a two-group
// home-range table: bootstrap intervals for a group mean, a permutation test
// for the difference in group means, and the pooled two-sample t-test used to
// cross-check it.
//
// Every resampling call takes the random source explicitly. With one worker
// the injected *rand.Rand is consumed directly; with more, one child seed per
// worker is drawn from it up front, so a fixed seed and worker count always
// reproduce the same distribution.
package inference

import (
	"context"
	"math/rand"

	"homerange/domain/core"

	"golang.org/x/sync/errgroup"
)

// cancelCheckInterval is how many replicates run between context checks
const cancelCheckInterval = 256

// DefaultMaxReplicates caps one procedure's replicate count unless overridden
const DefaultMaxReplicates = 1_000_000

// Engine runs bootstrap and permutation procedures
type Engine struct {
	workers       int
	maxReplicates int
}

// Option configures an Engine
type Option func(*Engine)

// WithWorkers splits replicates across n goroutines. Values below 1 are treated as 1.
func WithWorkers(n int) Option {
	return func(e *Engine) {
		if n < 1 {
			n = 1
		}
		e.workers = n
	}
}

// WithMaxReplicates caps the replicate count a single call may request.
// Values below 1 keep the default.
func WithMaxReplicates(n int) Option {
	return func(e *Engine) {
		if n >= 1 {
			e.maxReplicates = n
		}
	}
}

// NewEngine creates an engine; the default is single-threaded
func NewEngine(opts ...Option) *Engine {
	e := &Engine{workers: 1, maxReplicates: DefaultMaxReplicates}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Workers returns the configured worker count
func (e *Engine) Workers() int {
	return e.workers
}

// MaxReplicates returns the largest replicate count a call may request
func (e *Engine) MaxReplicates() int {
	return e.maxReplicates
}

// checkReplicates rejects counts outside [1, MaxReplicates] before anything is allocated
func (e *Engine) checkReplicates(count int) error {
	if count < 1 || count > e.maxReplicates {
		return core.NewInvalidReplicateCountError(count)
	}
	return nil
}

// replicator computes one replicate statistic from r. Each worker gets its
// own replicator so scratch buffers are never shared.
type replicator func(r *rand.Rand) float64

// replicate fills a slice of count replicate statistics
func (e *Engine) replicate(ctx context.Context, rng *rand.Rand, count int, newReplicator func() replicator) ([]float64, error) {
	out := make([]float64, count)

	workers := min(e.workers, count)
	if workers <= 1 {
		next := newReplicator()
		for i := range out {
			if i%cancelCheckInterval == 0 {
				if err := ctx.Err(); err != nil {
					return nil, err
				}
			}
			out[i] = next(rng)
		}
		return out, nil
	}

	seeds := make([]int64, workers)
	for w := range seeds {
		seeds[w] = rng.Int63()
	}

	chunk := (count + workers - 1) / workers
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for w := 0; w < workers; w++ {
		lo := w * chunk
		hi := min(lo+chunk, count)
		if lo >= hi {
			break
		}
		seed := seeds[w]
		g.Go(func() error {
			r := rand.New(rand.NewSource(seed))
			next := newReplicator()
			for i := lo; i < hi; i++ {
				if (i-lo)%cancelCheckInterval == 0 {
					if err := gctx.Err(); err != nil {
						return err
					}
				}
				out[i] = next(r)
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
