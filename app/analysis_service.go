package app

import (
	"context"
	stderrors "errors"
	"fmt"
	"math"
	"time"

	"homerange/domain/core"
	"homerange/domain/dataset"
	"homerange/domain/stats"
	"homerange/internal"
	"homerange/internal/errors"
	"homerange/internal/inference"
	"homerange/ports"
)

// AnalysisService runs the full resampling analysis over one dataset and
// optionally persists the resulting report
type AnalysisService struct {
	rngPort       ports.RNGPort
	reports       ports.ReportRepository
	maxReplicates int
	logger        *internal.Logger
}

// ServiceOption configures an AnalysisService
type ServiceOption func(*AnalysisService)

// WithMaxReplicates caps the replicate count any request may ask for.
// Values below 1 keep inference.DefaultMaxReplicates.
func WithMaxReplicates(n int) ServiceOption {
	return func(s *AnalysisService) {
		if n >= 1 {
			s.maxReplicates = n
		}
	}
}

// AnalysisRequest defines the inputs for one analysis run
type AnalysisRequest struct {
	Dataset  *dataset.Dataset
	Source   string
	Settings stats.Settings
}

// NewAnalysisService creates an analysis service. reports may be nil, in
// which case reports are returned but never stored.
func NewAnalysisService(rngPort ports.RNGPort, reports ports.ReportRepository, opts ...ServiceOption) *AnalysisService {
	s := &AnalysisService{
		rngPort:       rngPort,
		reports:       reports,
		maxReplicates: inference.DefaultMaxReplicates,
		logger:        internal.DefaultLogger.WithComponent("AnalysisService"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// DefaultSettings mirrors the configuration defaults
func DefaultSettings() stats.Settings {
	return stats.Settings{
		Seed:                  42,
		BootstrapReplicates:   10000,
		PermutationReplicates: 10000,
		ConfidenceLevel:       0.95,
		GroupA:                dataset.Male,
		GroupB:                dataset.Female,
		Workers:               1,
	}
}

// Analyze computes summaries, per-group bootstraps, the permutation test and
// the pooled t-test. Any precondition failure aborts the run before a report
// is produced, except t-test failures, which are recorded on the report.
func (s *AnalysisService) Analyze(ctx context.Context, req AnalysisRequest) (*stats.AnalysisReport, error) {
	startTime := time.Now()
	if req.Dataset == nil {
		return nil, errors.InvalidInput("dataset is required")
	}
	ds := req.Dataset
	settings := req.Settings
	engine := s.engine(settings)
	for _, n := range []int{settings.BootstrapReplicates, settings.PermutationReplicates} {
		if n < 1 || n > engine.MaxReplicates() {
			return nil, errors.Wrap(core.NewInvalidReplicateCountError(n), "invalid settings")
		}
	}

	s.logger.Info("Starting analysis of %d records (dataset %s, seed %d)", ds.Len(), ds.Hash().Short(), settings.Seed)

	summaries, err := inference.SummarizeAll(ds)
	if err != nil {
		return nil, errors.Wrap(err, "summary failed")
	}

	bootstraps := make([]stats.BootstrapResult, 0, len(ds.Groups()))
	for _, group := range ds.Groups() {
		result, err := s.bootstrap(ctx, engine, ds, group, settings)
		if err != nil {
			return nil, err
		}
		bootstraps = append(bootstraps, *result)
	}

	permutation, err := s.permute(ctx, engine, ds, settings)
	if err != nil {
		return nil, err
	}
	settings.GroupA = permutation.GroupA
	settings.GroupB = permutation.GroupB

	report := &stats.AnalysisReport{
		ID:          core.NewReportID(),
		CreatedAt:   core.Now(),
		Source:      req.Source,
		DatasetHash: ds.Hash(),
		Records:     ds.Len(),
		Settings:    settings,
		Summaries:   summaries,
		Bootstraps:  bootstraps,
		Permutation: *permutation,
	}

	ttest, err := inference.TTest(ds, settings.GroupA, settings.GroupB)
	switch {
	case stderrors.Is(err, core.ErrInsufficientSampleSize):
		report.TTestError = err.Error()
	case err != nil:
		return nil, errors.Wrap(err, "t-test failed")
	case math.IsInf(ttest.TStatistic, 0):
		report.TTestError = "t statistic is infinite: both groups are constant with different means"
	default:
		report.TTest = ttest
	}

	if s.reports != nil {
		if err := s.reports.Save(ctx, report); err != nil {
			return nil, errors.DatabaseError("failed to save report", err)
		}
		s.logger.Debug("Saved report %s", report.ID)
	}

	s.logger.Info("Analysis %s complete in %v (observed %.4f, p=%.4f)",
		report.ID, time.Since(startTime), permutation.Observed, permutation.PValue)
	return report, nil
}

// Bootstrap runs the bootstrap for a single group
func (s *AnalysisService) Bootstrap(ctx context.Context, ds *dataset.Dataset, group dataset.GroupLabel, settings stats.Settings) (*stats.BootstrapResult, error) {
	return s.bootstrap(ctx, s.engine(settings), ds, group, settings)
}

// Permute runs the permutation test alone
func (s *AnalysisService) Permute(ctx context.Context, ds *dataset.Dataset, settings stats.Settings) (*stats.PermutationResult, error) {
	return s.permute(ctx, s.engine(settings), ds, settings)
}

// TTest runs the pooled two-sample t-test alone
func (s *AnalysisService) TTest(ds *dataset.Dataset, settings stats.Settings) (*stats.TTestResult, error) {
	result, err := inference.TTest(ds, settings.GroupA, settings.GroupB)
	if err != nil {
		return nil, errors.Wrap(err, "t-test failed")
	}
	return result, nil
}

// GetReport loads a stored report by its string ID
func (s *AnalysisService) GetReport(ctx context.Context, rawID string) (*stats.AnalysisReport, error) {
	if s.reports == nil {
		return nil, errors.InternalError("no report repository configured")
	}
	id, err := core.ParseReportID(rawID)
	if err != nil {
		return nil, errors.InvalidInput(fmt.Sprintf("invalid report id %q", rawID))
	}
	report, err := s.reports.Get(ctx, id)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load report")
	}
	return report, nil
}

// ListReports returns stored report summaries newest first
func (s *AnalysisService) ListReports(ctx context.Context, limit, offset int) ([]ports.ReportSummary, error) {
	if s.reports == nil {
		return []ports.ReportSummary{}, nil
	}
	if limit < 0 || offset < 0 {
		return nil, errors.InvalidInput("limit and offset must not be negative")
	}
	summaries, err := s.reports.List(ctx, limit, offset)
	if err != nil {
		return nil, errors.DatabaseError("failed to list reports", err)
	}
	return summaries, nil
}

func (s *AnalysisService) engine(settings stats.Settings) *inference.Engine {
	return inference.NewEngine(
		inference.WithWorkers(settings.Workers),
		inference.WithMaxReplicates(s.maxReplicates),
	)
}

func (s *AnalysisService) bootstrap(ctx context.Context, engine *inference.Engine, ds *dataset.Dataset, group dataset.GroupLabel, settings stats.Settings) (*stats.BootstrapResult, error) {
	rng, err := s.rngPort.Stream(ctx, "bootstrap", group.String(), settings.Seed)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create bootstrap stream")
	}
	result, err := engine.BootstrapMean(ctx, rng, group, ds.Values(group), settings.BootstrapReplicates, settings.ConfidenceLevel)
	if err != nil {
		return nil, errors.Wrapf(err, "bootstrap of group %s failed", group)
	}
	s.logger.Debug("Bootstrap %s: mean %.4f, se %.4f", group, result.PointEstimate, result.StdError)
	return result, nil
}

func (s *AnalysisService) permute(ctx context.Context, engine *inference.Engine, ds *dataset.Dataset, settings stats.Settings) (*stats.PermutationResult, error) {
	rng, err := s.rngPort.Stream(ctx, "permutation", "", settings.Seed)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create permutation stream")
	}
	result, err := engine.PermutationTest(ctx, rng, ds, settings.GroupA, settings.GroupB, settings.PermutationReplicates)
	if err != nil {
		return nil, errors.Wrap(err, "permutation test failed")
	}
	return result, nil
}
