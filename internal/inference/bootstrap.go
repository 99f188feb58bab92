package inference

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"sort"

	"homerange/domain/core"
	"homerange/domain/dataset"
	"homerange/domain/stats"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

// Bootstrap draws replicates resamples of len(values) with replacement and
// returns the mean of each, in replicate order
func (e *Engine) Bootstrap(ctx context.Context, rng *rand.Rand, values []float64, replicates int) (stats.BootstrapDistribution, error) {
	if len(values) == 0 {
		return nil, fmt.Errorf("%w: no values to resample", core.ErrEmptyGroup)
	}
	if err := e.checkReplicates(replicates); err != nil {
		return nil, err
	}

	src := make([]float64, len(values))
	copy(src, values)

	dist, err := e.replicate(ctx, rng, replicates, func() replicator {
		buf := make([]float64, len(src))
		return func(r *rand.Rand) float64 {
			ResampleWithReplacement(r, src, buf)
			return stat.Mean(buf, nil)
		}
	})
	if err != nil {
		return nil, err
	}
	return stats.BootstrapDistribution(dist), nil
}

// BootstrapMean bootstraps the mean of one group and derives its standard
// error and both confidence intervals at level
func (e *Engine) BootstrapMean(ctx context.Context, rng *rand.Rand, group dataset.GroupLabel, values []float64, replicates int, level float64) (*stats.BootstrapResult, error) {
	if len(values) == 0 {
		return nil, core.NewEmptyGroupError(group.String())
	}
	if err := e.checkReplicates(replicates); err != nil {
		return nil, err
	}
	if err := validateLevel(level); err != nil {
		return nil, err
	}

	dist, err := e.Bootstrap(ctx, rng, values, replicates)
	if err != nil {
		return nil, err
	}

	estimate := stat.Mean(values, nil)
	se := StandardError(dist)

	pct, err := PercentileInterval(dist, level)
	if err != nil {
		return nil, err
	}
	seCI, err := StandardErrorInterval(estimate, se, level)
	if err != nil {
		return nil, err
	}

	return &stats.BootstrapResult{
		Group:         group,
		PointEstimate: estimate,
		Replicates:    replicates,
		StdError:      se,
		PercentileCI:  pct,
		StdErrorCI:    seCI,
		Distribution:  dist,
	}, nil
}

// StandardError is the sample standard deviation of the bootstrap
// distribution. A single replicate has no spread and yields 0.
func StandardError(dist stats.BootstrapDistribution) float64 {
	if len(dist) < 2 {
		return 0
	}
	return stat.StdDev(dist, nil)
}

// PercentileInterval returns the empirical α/2 and 1-α/2 quantiles of dist
func PercentileInterval(dist stats.BootstrapDistribution, level float64) (stats.ConfidenceInterval, error) {
	if err := validateLevel(level); err != nil {
		return stats.ConfidenceInterval{}, err
	}
	if len(dist) == 0 {
		return stats.ConfidenceInterval{}, core.NewInvalidReplicateCountError(0)
	}

	sorted := make([]float64, len(dist))
	copy(sorted, dist)
	sort.Float64s(sorted)

	alpha := 1 - level
	return stats.ConfidenceInterval{
		Lower:  stat.Quantile(alpha/2, stat.Empirical, sorted, nil),
		Upper:  stat.Quantile(1-alpha/2, stat.Empirical, sorted, nil),
		Level:  level,
		Method: stats.MethodPercentile,
	}, nil
}

// StandardErrorInterval returns estimate ± z(1-α/2)·se
func StandardErrorInterval(estimate, se float64, level float64) (stats.ConfidenceInterval, error) {
	if err := validateLevel(level); err != nil {
		return stats.ConfidenceInterval{}, err
	}
	z := distuv.UnitNormal.Quantile(1 - (1-level)/2)
	return stats.ConfidenceInterval{
		Lower:  estimate - z*se,
		Upper:  estimate + z*se,
		Level:  level,
		Method: stats.MethodStandardError,
	}, nil
}

func validateLevel(level float64) error {
	if math.IsNaN(level) || level <= 0 || level >= 1 {
		return core.NewInvalidConfidenceLevelError(level)
	}
	return nil
}
