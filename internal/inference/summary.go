package inference

import (
	"math"

	"homerange/domain/core"
	"homerange/domain/dataset"
	domainstats "homerange/domain/stats"

	"github.com/montanaflynn/stats"
)

// Summarize builds the descriptive row for one group. Spread statistics
// need two values; a single-record group reports zero spread.
func Summarize(group dataset.GroupLabel, values []float64) (domainstats.GroupSummary, error) {
	if len(values) == 0 {
		return domainstats.GroupSummary{}, core.NewEmptyGroupError(group.String())
	}

	mean, _ := stats.Mean(values)
	median, _ := stats.Median(values)
	min, _ := stats.Min(values)
	max, _ := stats.Max(values)
	q25 := quartile(values, 25)
	q75 := quartile(values, 75)

	var sd float64
	if len(values) > 1 {
		sd, _ = stats.StandardDeviationSample(values)
	}

	return domainstats.GroupSummary{
		Group:    group,
		N:        len(values),
		Mean:     mean,
		StdDev:   sd,
		StdError: sd / math.Sqrt(float64(len(values))),
		Median:   median,
		Min:      min,
		Max:      max,
		Q25:      q25,
		Q75:      q75,
	}, nil
}

// quartile averages the two straddling order statistics. Below the first
// rank, where that average is undefined for small groups, it falls back to
// the nearest rank so the result is never NaN.
func quartile(values []float64, percent float64) float64 {
	if q, err := stats.Percentile(values, percent); err == nil {
		return q
	}
	q, _ := stats.PercentileNearestRank(values, percent)
	return q
}

// SummarizeAll summarizes every group in order of first appearance
func SummarizeAll(ds *dataset.Dataset) ([]domainstats.GroupSummary, error) {
	groups := ds.Groups()
	out := make([]domainstats.GroupSummary, 0, len(groups))
	for _, g := range groups {
		s, err := Summarize(g, ds.Values(g))
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, nil
}
