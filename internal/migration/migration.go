package migration

import (
	"context"

	"homerange/internal"
	"homerange/internal/errors"

	"github.com/jmoiron/sqlx"
)

// Migrator defines the interface for database migration operations
type Migrator interface {
	Run(ctx context.Context, db *sqlx.DB) error
	Version() string
}

// MigrationRunner handles database schema migrations
type MigrationRunner struct {
	version string
	logger  *internal.Logger
}

var _ Migrator = (*MigrationRunner)(nil)

// NewRunner creates a new migration runner
func NewRunner() *MigrationRunner {
	return &MigrationRunner{
		version: "1.0.0",
		logger:  internal.DefaultLogger.WithComponent("Migration"),
	}
}

// Version returns the migration version
func (r *MigrationRunner) Version() string {
	return r.version
}

// Run executes all database migrations in the correct order
func (r *MigrationRunner) Run(ctx context.Context, db *sqlx.DB) error {
	if err := r.createAnalysisReportsTable(ctx, db); err != nil {
		return errors.DatabaseError("failed to create analysis_reports table", err)
	}

	r.createIndexes(ctx, db)
	r.logger.Info("Schema at version %s", r.version)
	return nil
}

// Statements returns the DDL applied by Run, in order
func Statements() []string {
	return append([]string{createAnalysisReportsSQL}, indexStatements...)
}

const createAnalysisReportsSQL = `
	CREATE TABLE IF NOT EXISTS analysis_reports (
		id UUID PRIMARY KEY,
		source TEXT NOT NULL DEFAULT '',
		dataset_hash VARCHAR(64) NOT NULL,
		record_count INTEGER NOT NULL,
		seed BIGINT NOT NULL,
		p_value DOUBLE PRECISION NOT NULL,
		payload JSONB NOT NULL,
		created_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW()
	)
`

var indexStatements = []string{
	"CREATE INDEX IF NOT EXISTS idx_reports_created_at ON analysis_reports(created_at DESC)",
	"CREATE INDEX IF NOT EXISTS idx_reports_dataset_hash ON analysis_reports(dataset_hash)",
}

func (r *MigrationRunner) createAnalysisReportsTable(ctx context.Context, db *sqlx.DB) error {
	_, err := db.ExecContext(ctx, createAnalysisReportsSQL)
	return err
}

func (r *MigrationRunner) createIndexes(ctx context.Context, db *sqlx.DB) {
	for _, idxSQL := range indexStatements {
		if _, err := db.ExecContext(ctx, idxSQL); err != nil {
			// Indexes are an optimization; a failure here leaves the table usable
			r.logger.Warn("failed to create index: %v", err)
		}
	}
}
