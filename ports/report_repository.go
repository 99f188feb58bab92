package ports

import (
	"context"

	"homerange/domain/core"
	"homerange/domain/stats"
)

// ReportRepository persists analysis reports
type ReportRepository interface {
	Save(ctx context.Context, report *stats.AnalysisReport) error
	Get(ctx context.Context, id core.ReportID) (*stats.AnalysisReport, error)
	List(ctx context.Context, limit, offset int) ([]ReportSummary, error)
}

// ReportSummary is the list view of a stored report
type ReportSummary struct {
	ID          core.ReportID  `json:"id"`
	CreatedAt   core.Timestamp `json:"created_at"`
	Source      string         `json:"source"`
	DatasetHash core.Hash      `json:"dataset_hash"`
	Seed        int64          `json:"seed"`
	PValue      float64        `json:"p_value"`
}
