package inference

import (
	"context"
	"math"
	"math/rand"

	"homerange/domain/core"
	"homerange/domain/dataset"
	"homerange/domain/stats"
)

// tieTolerance scales with the largest absolute measurement. Mean differences
// closer than this to ±|observed| count as at least as extreme, so an exact
// tie is not lost to rounding in the group sums.
const tieTolerance = 1e-9

// PermutationTest compares mean(groupA) - mean(groupB) against a null
// distribution built by reshuffling the label column across all records.
// Values never move; labels are permuted on a copy. When both groups are
// empty strings the two labels present are used in order of first appearance.
func (e *Engine) PermutationTest(ctx context.Context, rng *rand.Rand, ds *dataset.Dataset, groupA, groupB dataset.GroupLabel, replicates int) (*stats.PermutationResult, error) {
	if err := e.checkReplicates(replicates); err != nil {
		return nil, err
	}
	groupA, groupB, err := resolveGroups(ds, groupA, groupB)
	if err != nil {
		return nil, err
	}

	labels := ds.Labels()
	values := ds.Column()
	nA := ds.Count(groupA)
	nB := ds.Count(groupB)

	observed := meanDifference(labels, values, groupA, nA, nB)

	null, err := e.replicate(ctx, rng, replicates, func() replicator {
		shuffled := make([]dataset.GroupLabel, len(labels))
		return func(r *rand.Rand) float64 {
			copy(shuffled, labels)
			ShuffleLabels(r, shuffled)
			return meanDifference(shuffled, values, groupA, nA, nB)
		}
	})
	if err != nil {
		return nil, err
	}

	return &stats.PermutationResult{
		GroupA:       groupA,
		GroupB:       groupB,
		Observed:     observed,
		PValue:       PermutationPValue(observed, null, tieTolerance*maxAbs(values)),
		Replicates:   replicates,
		Distribution: stats.PermutationNullDistribution(null),
	}, nil
}

// PermutationPValue is the two-sided p-value: the share of null values at or
// beyond +|observed| plus those at or beyond -|observed|. tol widens both
// cutoffs toward zero; pass 0 for exact comparison. A replicate is counted
// once even when it meets both cutoffs, so the result never exceeds 1.
func PermutationPValue(observed float64, null []float64, tol float64) float64 {
	if len(null) == 0 {
		return 1
	}
	cutoff := math.Abs(observed) - math.Abs(tol)

	extreme := 0
	for _, d := range null {
		if d >= cutoff || d <= -cutoff {
			extreme++
		}
	}
	return float64(extreme) / float64(len(null))
}

// resolveGroups checks that ds holds exactly two labels and that the
// requested pair names both of them
func resolveGroups(ds *dataset.Dataset, groupA, groupB dataset.GroupLabel) (dataset.GroupLabel, dataset.GroupLabel, error) {
	groups := ds.Groups()
	if len(groups) != 2 {
		found := make([]string, len(groups))
		for i, g := range groups {
			found[i] = g.String()
		}
		return "", "", core.NewInsufficientGroupsError(found)
	}

	if groupA == "" && groupB == "" {
		return groups[0], groups[1], nil
	}
	if groupA == groupB {
		return "", "", core.NewInsufficientGroupsError([]string{groupA.String()})
	}
	for _, g := range []dataset.GroupLabel{groupA, groupB} {
		if !ds.HasGroup(g) {
			return "", "", core.NewEmptyGroupError(g.String())
		}
	}
	return groupA, groupB, nil
}

// meanDifference computes mean(A) - mean(B) for a labelling where every
// label is A or B and group sizes are fixed at nA, nB
func meanDifference(labels []dataset.GroupLabel, values []float64, groupA dataset.GroupLabel, nA, nB int) float64 {
	var sumA, sumB float64
	for i, label := range labels {
		if label == groupA {
			sumA += values[i]
		} else {
			sumB += values[i]
		}
	}
	return sumA/float64(nA) - sumB/float64(nB)
}

func maxAbs(values []float64) float64 {
	m := 0.0
	for _, v := range values {
		m = math.Max(m, math.Abs(v))
	}
	return m
}
