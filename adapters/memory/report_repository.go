package memory

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"sync"

	"homerange/domain/core"
	"homerange/domain/stats"
	"homerange/ports"
)

// ReportRepository keeps reports in process memory. Reports are stored as
// JSON so callers can never mutate a saved report through a shared pointer.
type ReportRepository struct {
	mu      sync.RWMutex
	reports map[core.ReportID][]byte
	order   []core.ReportID
}

var _ ports.ReportRepository = (*ReportRepository)(nil)

// NewReportRepository creates an empty in-memory repository
func NewReportRepository() *ReportRepository {
	return &ReportRepository{reports: make(map[core.ReportID][]byte)}
}

// Save stores or replaces a report
func (r *ReportRepository) Save(ctx context.Context, report *stats.AnalysisReport) error {
	if report == nil || report.ID == "" {
		return fmt.Errorf("report must have an id")
	}
	payload, err := json.Marshal(report)
	if err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.reports[report.ID]; !exists {
		r.order = append(r.order, report.ID)
	}
	r.reports[report.ID] = payload
	return nil
}

// Get loads one report
func (r *ReportRepository) Get(ctx context.Context, id core.ReportID) (*stats.AnalysisReport, error) {
	r.mu.RLock()
	payload, ok := r.reports[id]
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %s", core.ErrReportNotFound, id)
	}

	var report stats.AnalysisReport
	if err := json.Unmarshal(payload, &report); err != nil {
		return nil, fmt.Errorf("failed to decode report %s: %w", id, err)
	}
	return &report, nil
}

// List returns summaries newest first
func (r *ReportRepository) List(ctx context.Context, limit, offset int) ([]ports.ReportSummary, error) {
	r.mu.RLock()
	ids := make([]core.ReportID, len(r.order))
	copy(ids, r.order)
	r.mu.RUnlock()

	summaries := make([]ports.ReportSummary, 0, len(ids))
	for _, id := range ids {
		report, err := r.Get(ctx, id)
		if err != nil {
			return nil, err
		}
		summaries = append(summaries, ports.ReportSummary{
			ID:          report.ID,
			CreatedAt:   report.CreatedAt,
			Source:      report.Source,
			DatasetHash: report.DatasetHash,
			Seed:        report.Settings.Seed,
			PValue:      report.Permutation.PValue,
		})
	}

	sort.SliceStable(summaries, func(i, j int) bool {
		return summaries[j].CreatedAt.Before(summaries[i].CreatedAt)
	})

	if offset >= len(summaries) {
		return []ports.ReportSummary{}, nil
	}
	summaries = summaries[offset:]
	if limit > 0 && limit < len(summaries) {
		summaries = summaries[:limit]
	}
	return summaries, nil
}
