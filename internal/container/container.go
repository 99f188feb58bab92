package container

import (
	"context"
	"fmt"

	"homerange/adapters/excel"
	"homerange/adapters/memory"
	"homerange/adapters/postgres"
	"homerange/adapters/rng"
	"homerange/app"
	"homerange/domain/dataset"
	"homerange/domain/stats"
	"homerange/internal"
	"homerange/internal/config"
	"homerange/internal/errors"
	"homerange/internal/migration"
	"homerange/ports"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
)

// Container holds all application dependencies and manages their lifecycle
type Container struct {
	Config *config.Config

	// Infrastructure
	DB *sqlx.DB

	// Ports
	RNG     ports.RNGPort
	Reports ports.ReportRepository

	// Services
	Analysis *app.AnalysisService

	logger *internal.Logger
}

// New creates a container. With DATABASE_URL set, reports go to Postgres
// after migrations run; otherwise they are kept in memory.
func New(ctx context.Context, cfg *config.Config) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}

	c := &Container{
		Config: cfg,
		RNG:    rng.NewSeededAdapter(),
		logger: internal.DefaultLogger.WithComponent("Container"),
	}

	if cfg.Database.Enabled() {
		if err := c.initDatabase(ctx); err != nil {
			return nil, err
		}
		c.Reports = postgres.NewReportRepository(c.DB)
		c.logger.Info("Reports stored in Postgres")
	} else {
		c.Reports = memory.NewReportRepository()
		c.logger.Info("DATABASE_URL not set, reports kept in memory")
	}

	c.Analysis = app.NewAnalysisService(c.RNG, c.Reports, app.WithMaxReplicates(c.Config.Analysis.MaxReplicates))
	return c, nil
}

func (c *Container) initDatabase(ctx context.Context) error {
	db, err := sqlx.ConnectContext(ctx, "postgres", c.Config.Database.URL)
	if err != nil {
		return errors.DatabaseError("failed to connect to database", err)
	}

	var migrator migration.Migrator = migration.NewRunner()
	if err := migrator.Run(ctx, db); err != nil {
		db.Close()
		return errors.Wrap(err, "database migration failed")
	}
	c.logger.Info("Database schema version %s", migrator.Version())

	c.DB = db
	return nil
}

// Settings converts the analysis configuration into report settings
func (c *Container) Settings() stats.Settings {
	a := c.Config.Analysis
	return stats.Settings{
		Seed:                  a.Seed,
		BootstrapReplicates:   a.BootstrapReplicates,
		PermutationReplicates: a.PermutationReplicates,
		ConfidenceLevel:       a.ConfidenceLevel,
		GroupA:                dataset.GroupLabel(a.GroupA),
		GroupB:                dataset.GroupLabel(a.GroupB),
		Workers:               a.Workers,
	}
}

// DatasetSource returns a file source for path, or for DATA_FILE when path is empty
func (c *Container) DatasetSource(path string) ports.DatasetSource {
	if path == "" {
		path = c.Config.Data.File
	}
	return excel.NewFileSource(excel.ExcelConfig{
		FilePath:    path,
		GroupColumn: c.Config.Data.GroupColumn,
		ValueColumn: c.Config.Data.ValueColumn,
		Sheet:       c.Config.Data.Sheet,
	})
}

// Shutdown releases the database connection if one was opened
func (c *Container) Shutdown(ctx context.Context) error {
	if c.DB != nil {
		return c.DB.Close()
	}
	return nil
}
