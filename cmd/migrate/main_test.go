package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"homerange/adapters/memory"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestImportReports(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.json"),
		[]byte(`{"id":"0190c1f0-0000-7000-8000-000000000001","created_at":"2024-05-01T12:00:00Z","dataset_hash":"abc","records":6,"permutation":{"p_value":0.1}}`), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.json"),
		[]byte(`{"dataset_hash":"def","records":20}`), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.json"), []byte(`{"hello":"world"}`), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "broken.json"), []byte(`{`), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "readme.txt"), []byte("ignored"), 0o644))

	repo := memory.NewReportRepository()
	migrated, skipped, err := importReports(context.Background(), repo, dir)
	require.NoError(t, err)

	assert.Equal(t, 2, migrated)
	assert.Equal(t, 2, skipped)

	summaries, err := repo.List(context.Background(), 0, 0)
	require.NoError(t, err)
	assert.Len(t, summaries, 2)
}

func TestImportReports_MissingDir(t *testing.T) {
	_, _, err := importReports(context.Background(), memory.NewReportRepository(), filepath.Join(t.TempDir(), "missing"))
	assert.Error(t, err)
}
