package inference

import (
	"math"

	"homerange/domain/core"
	"homerange/domain/dataset"
	"homerange/domain/stats"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

// TTest runs the pooled-variance two-sample t-test of groupA against groupB
func TTest(ds *dataset.Dataset, groupA, groupB dataset.GroupLabel) (*stats.TTestResult, error) {
	groupA, groupB, err := resolveGroups(ds, groupA, groupB)
	if err != nil {
		return nil, err
	}
	return PooledTTest(groupA, ds.Values(groupA), groupB, ds.Values(groupB))
}

// PooledTTest computes t = (meanA - meanB) / sqrt(s²(1/nA + 1/nB)) with
// df = nA + nB - 2 and the two-sided p-value 2·(1 - CDF_t(|t|, df)).
// Both samples need at least two values.
func PooledTTest(groupA dataset.GroupLabel, a []float64, groupB dataset.GroupLabel, b []float64) (*stats.TTestResult, error) {
	if len(a) < 2 {
		return nil, core.NewInsufficientSampleSizeError(groupA.String(), len(a), 2)
	}
	if len(b) < 2 {
		return nil, core.NewInsufficientSampleSizeError(groupB.String(), len(b), 2)
	}

	nA, nB := float64(len(a)), float64(len(b))
	meanA, varA := stat.MeanVariance(a, nil)
	meanB, varB := stat.MeanVariance(b, nil)

	df := len(a) + len(b) - 2
	pooled := ((nA-1)*varA + (nB-1)*varB) / float64(df)
	diff := meanA - meanB

	var t, p float64
	switch {
	case pooled > 0:
		t = diff / math.Sqrt(pooled*(1/nA+1/nB))
		tDist := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: float64(df)}
		p = 2 * (1 - tDist.CDF(math.Abs(t)))
	case diff == 0:
		t, p = 0, 1
	default:
		t, p = math.Copysign(math.Inf(1), diff), 0
	}

	return &stats.TTestResult{
		GroupA:         groupA,
		GroupB:         groupB,
		MeanA:          meanA,
		MeanB:          meanB,
		PooledVariance: pooled,
		TStatistic:     t,
		DegreesFreedom: df,
		PValue:         p,
	}, nil
}
