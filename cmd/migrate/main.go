package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"homerange/adapters/postgres"
	"homerange/domain/core"
	"homerange/domain/stats"
	"homerange/internal/migration"
	"homerange/ports"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
)

func main() {
	if len(os.Args) < 2 {
		log.Fatal("Usage: migrate <database_url> [report_json_dir]")
	}

	databaseURL := os.Args[1]
	ctx := context.Background()

	db, err := sqlx.Connect("postgres", databaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	runner := migration.NewRunner()
	if err := runner.Run(ctx, db); err != nil {
		log.Fatalf("Schema migration failed: %v", err)
	}
	log.Printf("Schema is up to date (version %s)", runner.Version())

	if len(os.Args) < 3 {
		return
	}

	migrated, skipped, err := importReports(ctx, postgres.NewReportRepository(db), os.Args[2])
	if err != nil {
		log.Fatalf("Report import failed: %v", err)
	}
	log.Printf("Import complete: %d migrated, %d skipped", migrated, skipped)
}

// importReports loads every *.json report under dir (as written by
// `homerange analyze --json`) into repo. Files that do not decode to a
// report are skipped.
func importReports(ctx context.Context, repo ports.ReportRepository, dir string) (int, int, error) {
	files, err := findReportFiles(dir)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to find report files: %w", err)
	}
	log.Printf("Found %d report files to import", len(files))

	migrated, skipped := 0, 0
	for _, file := range files {
		report, err := loadReportFromFile(file)
		if err != nil {
			log.Printf("Failed to load report from %s: %v", file, err)
			skipped++
			continue
		}
		if report.ID == "" {
			report.ID = core.NewReportID()
		}
		if report.CreatedAt.IsZero() {
			report.CreatedAt = core.Now()
		}

		if err := repo.Save(ctx, report); err != nil {
			log.Printf("Failed to save report %s: %v", report.ID, err)
			skipped++
			continue
		}
		migrated++
		log.Printf("Imported report %s from %s", report.ID, filepath.Base(file))
	}
	return migrated, skipped, nil
}

func findReportFiles(dir string) ([]string, error) {
	var files []string

	err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.IsDir() && strings.HasSuffix(path, ".json") {
			files = append(files, path)
		}
		return nil
	})

	return files, err
}

func loadReportFromFile(filePath string) (*stats.AnalysisReport, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, err
	}

	var report stats.AnalysisReport
	if err := json.Unmarshal(data, &report); err != nil {
		return nil, err
	}
	if report.DatasetHash.IsEmpty() {
		return nil, fmt.Errorf("not an analysis report: missing dataset_hash")
	}
	return &report, nil
}
