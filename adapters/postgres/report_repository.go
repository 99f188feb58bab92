package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"homerange/domain/core"
	"homerange/domain/stats"
	"homerange/ports"

	"github.com/jmoiron/sqlx"
)

// reportRepository implements ports.ReportRepository over the analysis_reports table
type reportRepository struct {
	db *sqlx.DB
}

// NewReportRepository creates a new report repository
func NewReportRepository(db *sqlx.DB) ports.ReportRepository {
	return &reportRepository{db: db}
}

// reportRow mirrors one analysis_reports row
type reportRow struct {
	ID          string    `db:"id"`
	Source      string    `db:"source"`
	DatasetHash string    `db:"dataset_hash"`
	RecordCount int       `db:"record_count"`
	Seed        int64     `db:"seed"`
	PValue      float64   `db:"p_value"`
	Payload     string    `db:"payload"`
	CreatedAt   time.Time `db:"created_at"`
}

func toRow(report *stats.AnalysisReport) (*reportRow, error) {
	if report == nil || report.ID == "" {
		return nil, fmt.Errorf("report must have an id")
	}
	payload, err := json.Marshal(report)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal report: %w", err)
	}
	return &reportRow{
		ID:          string(report.ID),
		Source:      report.Source,
		DatasetHash: report.DatasetHash.String(),
		RecordCount: report.Records,
		Seed:        report.Settings.Seed,
		PValue:      report.Permutation.PValue,
		Payload:     string(payload),
		CreatedAt:   report.CreatedAt.Time(),
	}, nil
}

func (row *reportRow) report() (*stats.AnalysisReport, error) {
	var report stats.AnalysisReport
	if err := json.Unmarshal([]byte(row.Payload), &report); err != nil {
		return nil, fmt.Errorf("failed to unmarshal report %s: %w", row.ID, err)
	}
	return &report, nil
}

func (row *reportRow) summary() ports.ReportSummary {
	return ports.ReportSummary{
		ID:          core.ReportID(row.ID),
		CreatedAt:   core.NewTimestamp(row.CreatedAt.UTC()),
		Source:      row.Source,
		DatasetHash: core.Hash(row.DatasetHash),
		Seed:        row.Seed,
		PValue:      row.PValue,
	}
}

// Save inserts a report or replaces the stored payload
func (r *reportRepository) Save(ctx context.Context, report *stats.AnalysisReport) error {
	row, err := toRow(report)
	if err != nil {
		return err
	}

	query := `INSERT INTO analysis_reports (
		id, source, dataset_hash, record_count, seed, p_value, payload, created_at
	) VALUES (
		:id, :source, :dataset_hash, :record_count, :seed, :p_value, :payload, :created_at
	)
	ON CONFLICT (id) DO UPDATE SET
		source = EXCLUDED.source,
		dataset_hash = EXCLUDED.dataset_hash,
		record_count = EXCLUDED.record_count,
		seed = EXCLUDED.seed,
		p_value = EXCLUDED.p_value,
		payload = EXCLUDED.payload`

	if _, err := r.db.NamedExecContext(ctx, query, row); err != nil {
		return fmt.Errorf("failed to save report: %w", err)
	}
	return nil
}

// Get retrieves a report by its ID
func (r *reportRepository) Get(ctx context.Context, id core.ReportID) (*stats.AnalysisReport, error) {
	var row reportRow
	err := r.db.GetContext(ctx, &row, `SELECT id, source, dataset_hash, record_count, seed, p_value, payload, created_at
		FROM analysis_reports WHERE id = $1`, string(id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("%w: %s", core.ErrReportNotFound, id)
		}
		return nil, fmt.Errorf("failed to get report: %w", err)
	}
	return row.report()
}

// List returns report summaries newest first
func (r *reportRepository) List(ctx context.Context, limit, offset int) ([]ports.ReportSummary, error) {
	query := `SELECT id, source, dataset_hash, record_count, seed, p_value, created_at
		FROM analysis_reports ORDER BY created_at DESC`
	args := []interface{}{}
	if limit > 0 {
		query += " LIMIT $1 OFFSET $2"
		args = append(args, limit, offset)
	} else if offset > 0 {
		query += " OFFSET $1"
		args = append(args, offset)
	}

	var rows []reportRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list reports: %w", err)
	}

	summaries := make([]ports.ReportSummary, 0, len(rows))
	for i := range rows {
		summaries = append(summaries, rows[i].summary())
	}
	return summaries, nil
}
