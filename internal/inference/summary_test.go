package inference

import (
	"errors"
	"math"
	"testing"

	"homerange/domain/core"
	"homerange/domain/dataset"
	"homerange/internal/testkit"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSummarize(t *testing.T) {
	s, err := Summarize(dataset.Male, []float64{14, 10, 12})
	require.NoError(t, err)

	assert.Equal(t, dataset.Male, s.Group)
	assert.Equal(t, 3, s.N)
	assert.InDelta(t, 12, s.Mean, 1e-12)
	assert.InDelta(t, 2, s.StdDev, 1e-12)
	assert.InDelta(t, 2/math.Sqrt(3), s.StdError, 1e-12)
	assert.Equal(t, 12.0, s.Median)
	assert.Equal(t, 10.0, s.Min)
	assert.Equal(t, 14.0, s.Max)
	assert.Equal(t, 10.0, s.Q25)
	assert.Equal(t, 13.0, s.Q75)
}

func TestSummarize_Quartiles(t *testing.T) {
	tests := []struct {
		name     string
		values   []float64
		q25, q75 float64
	}{
		{"two values", []float64{9, 3}, 3, 6},
		{"whole ranks", []float64{4, 3, 2, 1}, 1, 3},
		{"straddled ranks", []float64{5, 1, 4, 2, 3}, 1.5, 3.5},
		{"eight values", []float64{8, 7, 6, 5, 4, 3, 2, 1}, 2, 6},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := Summarize(dataset.Male, tt.values)
			require.NoError(t, err)
			assert.Equal(t, tt.q25, s.Q25)
			assert.Equal(t, tt.q75, s.Q75)
			assert.False(t, math.IsNaN(s.Q25) || math.IsNaN(s.Q75))
		})
	}
}

func TestSummarize_SingleValue(t *testing.T) {
	s, err := Summarize(dataset.Female, []float64{7})
	require.NoError(t, err)
	assert.Equal(t, 1, s.N)
	assert.Equal(t, 7.0, s.Mean)
	assert.Equal(t, 0.0, s.StdDev)
	assert.Equal(t, 0.0, s.StdError)
	assert.Equal(t, 7.0, s.Q25)
	assert.Equal(t, 7.0, s.Q75)
}

func TestSummarize_Empty(t *testing.T) {
	_, err := Summarize(dataset.Female, nil)
	assert.True(t, errors.Is(err, core.ErrEmptyGroup))
}

func TestSummarizeAll(t *testing.T) {
	ds := testkit.MustDataset(t, testkit.SeparatedRecords())
	summaries, err := SummarizeAll(ds)
	require.NoError(t, err)
	require.Len(t, summaries, 2)
	assert.Equal(t, dataset.Male, summaries[0].Group)
	assert.Equal(t, dataset.Female, summaries[1].Group)
	assert.InDelta(t, 6, summaries[1].Mean, 1e-12)
}
