package rng

import (
	"context"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeededStream_Reproducible(t *testing.T) {
	ctx := context.Background()
	adapter := NewSeededAdapter()

	a, err := adapter.SeededStream(ctx, "bootstrap", 42)
	require.NoError(t, err)
	b, err := adapter.SeededStream(ctx, "other-name", 42)
	require.NoError(t, err)

	for i := 0; i < 100; i++ {
		assert.Equal(t, a.Int63(), b.Int63(), "draw %d", i)
	}
}

func TestStream_DistinctPerProcedureAndGroup(t *testing.T) {
	ctx := context.Background()
	adapter := NewSeededAdapter()

	first := func(procedure, group string) int64 {
		s, err := adapter.Stream(ctx, procedure, group, 42)
		require.NoError(t, err)
		return s.Int63()
	}

	assert.Equal(t, first("bootstrap", "M"), first("bootstrap", "M"))
	assert.NotEqual(t, first("bootstrap", "M"), first("bootstrap", "F"))
	assert.NotEqual(t, first("bootstrap", "M"), first("permutation", "M"))
}

func TestStream_MatchesDerivedSeededStream(t *testing.T) {
	ctx := context.Background()
	adapter := NewSeededAdapter()

	stream, err := adapter.Stream(ctx, "", "", 42)
	require.NoError(t, err)
	ref := rand.New(rand.NewSource(42))
	assert.Equal(t, ref.Int63(), stream.Int63())

	stream, err = adapter.Stream(ctx, "bootstrap", "M", 42)
	require.NoError(t, err)
	seed := int64(hashString("M"))*31 + int64(hashString("bootstrap")) + 42
	direct, err := adapter.SeededStream(ctx, "bootstrap/M", seed)
	require.NoError(t, err)
	assert.Equal(t, direct.Int63(), stream.Int63())
}

func TestStream_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewSeededAdapter().Stream(ctx, "permutation", "", 1)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSeededStream_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewSeededAdapter().SeededStream(ctx, "bootstrap", 1)
	assert.ErrorIs(t, err, context.Canceled)
}
