package inference

import (
	"context"
	"math"
	"testing"

	"homerange/domain/core"
	"homerange/domain/dataset"
	"homerange/internal/testkit"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEngine_Options(t *testing.T) {
	e := NewEngine()
	assert.Equal(t, 1, e.Workers())
	assert.Equal(t, DefaultMaxReplicates, e.MaxReplicates())

	e = NewEngine(WithWorkers(0), WithMaxReplicates(-5))
	assert.Equal(t, 1, e.Workers())
	assert.Equal(t, DefaultMaxReplicates, e.MaxReplicates())

	e = NewEngine(WithWorkers(4), WithMaxReplicates(50))
	assert.Equal(t, 4, e.Workers())
	assert.Equal(t, 50, e.MaxReplicates())
}

func TestEngine_RejectsReplicatesOverCap(t *testing.T) {
	ctx := context.Background()
	values := []float64{1, 2, 3}
	ds := testkit.MustDataset(t, testkit.SeparatedRecords())

	for _, count := range []int{DefaultMaxReplicates + 1, math.MaxInt} {
		_, err := NewEngine().Bootstrap(ctx, testkit.RNG(1), values, count)
		assert.ErrorIs(t, err, core.ErrInvalidReplicateCount, "count %d", count)

		_, err = NewEngine().BootstrapMean(ctx, testkit.RNG(1), dataset.Male, values, count, 0.95)
		assert.ErrorIs(t, err, core.ErrInvalidReplicateCount, "count %d", count)

		_, err = NewEngine().PermutationTest(ctx, testkit.RNG(1), ds, dataset.Male, dataset.Female, count)
		assert.ErrorIs(t, err, core.ErrInvalidReplicateCount, "count %d", count)
		assert.True(t, core.IsPreconditionError(err))
	}
}

func TestEngine_CapIsInclusive(t *testing.T) {
	engine := NewEngine(WithMaxReplicates(20))

	dist, err := engine.Bootstrap(context.Background(), testkit.RNG(1), []float64{1, 2, 3}, 20)
	require.NoError(t, err)
	assert.Len(t, dist, 20)

	_, err = engine.Bootstrap(context.Background(), testkit.RNG(1), []float64{1, 2, 3}, 21)
	assert.ErrorIs(t, err, core.ErrInvalidReplicateCount)
	assert.Contains(t, err.Error(), "21")
}
