package stats

import (
	"homerange/domain/core"
	"homerange/domain/dataset"
)

// IntervalMethod names how a confidence interval was derived
type IntervalMethod string

const (
	// MethodPercentile takes empirical quantiles of the bootstrap distribution
	MethodPercentile IntervalMethod = "percentile"
	// MethodStandardError uses estimate ± z(1-α/2)·SE
	MethodStandardError IntervalMethod = "standard_error"
)

// ConfidenceInterval is a (lower, upper) pair at a given level
type ConfidenceInterval struct {
	Lower  float64        `json:"lower"`
	Upper  float64        `json:"upper"`
	Level  float64        `json:"level"`
	Method IntervalMethod `json:"method"`
}

// Midpoint returns the centre of the interval
func (ci ConfidenceInterval) Midpoint() float64 {
	return (ci.Lower + ci.Upper) / 2
}

// Width returns Upper - Lower
func (ci ConfidenceInterval) Width() float64 {
	return ci.Upper - ci.Lower
}

// Contains reports whether v lies inside the closed interval
func (ci ConfidenceInterval) Contains(v float64) bool {
	return v >= ci.Lower && v <= ci.Upper
}

// BootstrapDistribution holds one resample mean per replicate
type BootstrapDistribution []float64

// PermutationNullDistribution holds one shuffled mean difference per replicate
type PermutationNullDistribution []float64

// GroupSummary is the descriptive table row for one group
type GroupSummary struct {
	Group    dataset.GroupLabel `json:"group"`
	N        int                `json:"n"`
	Mean     float64            `json:"mean"`
	StdDev   float64            `json:"std_dev"`
	StdError float64            `json:"std_error"`
	Median   float64            `json:"median"`
	Min      float64            `json:"min"`
	Max      float64            `json:"max"`
	Q25      float64            `json:"q25"`
	Q75      float64            `json:"q75"`
}

// BootstrapResult is the bootstrap estimate for one group mean
type BootstrapResult struct {
	Group         dataset.GroupLabel    `json:"group"`
	PointEstimate float64               `json:"point_estimate"`
	Replicates    int                   `json:"replicates"`
	StdError      float64               `json:"std_error"`
	PercentileCI  ConfidenceInterval    `json:"percentile_ci"`
	StdErrorCI    ConfidenceInterval    `json:"std_error_ci"`
	Distribution  BootstrapDistribution `json:"distribution,omitempty"`
}

// PermutationResult is the outcome of a two-group permutation test.
// Observed is mean(GroupA) - mean(GroupB).
type PermutationResult struct {
	GroupA       dataset.GroupLabel          `json:"group_a"`
	GroupB       dataset.GroupLabel          `json:"group_b"`
	Observed     float64                     `json:"observed"`
	PValue       float64                     `json:"p_value"`
	Replicates   int                         `json:"replicates"`
	Distribution PermutationNullDistribution `json:"distribution,omitempty"`
}

// TTestResult is the pooled-variance two-sample t-test
type TTestResult struct {
	GroupA         dataset.GroupLabel `json:"group_a"`
	GroupB         dataset.GroupLabel `json:"group_b"`
	MeanA          float64            `json:"mean_a"`
	MeanB          float64            `json:"mean_b"`
	PooledVariance float64            `json:"pooled_variance"`
	TStatistic     float64            `json:"t_statistic"`
	DegreesFreedom int                `json:"degrees_freedom"`
	PValue         float64            `json:"p_value"`
}

// Settings captures every knob that influences a report, for replay
type Settings struct {
	Seed                  int64              `json:"seed"`
	BootstrapReplicates   int                `json:"bootstrap_replicates"`
	PermutationReplicates int                `json:"permutation_replicates"`
	ConfidenceLevel       float64            `json:"confidence_level"`
	GroupA                dataset.GroupLabel `json:"group_a"`
	GroupB                dataset.GroupLabel `json:"group_b"`
	Workers               int                `json:"workers"`
}

// AnalysisReport is the full output of one analysis run
type AnalysisReport struct {
	ID          core.ReportID     `json:"id"`
	CreatedAt   core.Timestamp    `json:"created_at"`
	Source      string            `json:"source,omitempty"`
	DatasetHash core.Hash         `json:"dataset_hash"`
	Records     int               `json:"records"`
	Settings    Settings          `json:"settings"`
	Summaries   []GroupSummary    `json:"summaries"`
	Bootstraps  []BootstrapResult `json:"bootstraps"`
	Permutation PermutationResult `json:"permutation"`
	TTest       *TTestResult      `json:"t_test,omitempty"`
	TTestError  string            `json:"t_test_error,omitempty"`
}

// StripDistributions drops the raw replicate slices, keeping only summaries
func (r *AnalysisReport) StripDistributions() {
	for i := range r.Bootstraps {
		r.Bootstraps[i].Distribution = nil
	}
	r.Permutation.Distribution = nil
}
