package container

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"homerange/adapters/memory"
	"homerange/domain/core"
	"homerange/domain/dataset"
	"homerange/internal/config"
	"homerange/internal/testkit"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_InMemory(t *testing.T) {
	cfg := config.Default()

	c, err := New(context.Background(), cfg)
	require.NoError(t, err)
	defer c.Shutdown(context.Background())

	assert.Nil(t, c.DB)
	assert.IsType(t, &memory.ReportRepository{}, c.Reports)
	assert.NotNil(t, c.Analysis)

	settings := c.Settings()
	assert.Equal(t, int64(42), settings.Seed)
	assert.Equal(t, dataset.Male, settings.GroupA)
	assert.Equal(t, 10000, settings.BootstrapReplicates)
}

func TestNew_AppliesReplicateCap(t *testing.T) {
	cfg := config.Default()
	cfg.Analysis.MaxReplicates = 50

	c, err := New(context.Background(), cfg)
	require.NoError(t, err)
	defer c.Shutdown(context.Background())

	ds := testkit.MustDataset(t, testkit.SeparatedRecords())
	settings := c.Settings()
	settings.BootstrapReplicates = 51
	_, err = c.Analysis.Bootstrap(context.Background(), ds, dataset.Male, settings)
	assert.ErrorIs(t, err, core.ErrInvalidReplicateCount)

	settings.BootstrapReplicates = 50
	result, err := c.Analysis.Bootstrap(context.Background(), ds, dataset.Male, settings)
	require.NoError(t, err)
	assert.Equal(t, 50, result.Replicates)
}

func TestNew_NilConfig(t *testing.T) {
	_, err := New(context.Background(), nil)
	assert.Error(t, err)
}

func TestDatasetSource_UsesConfiguredColumns(t *testing.T) {
	path := filepath.Join(t.TempDir(), "areas.csv")
	require.NoError(t, os.WriteFile(path, []byte("gender,area\nM,3\nF,4\n"), 0o644))

	cfg := config.Default()
	cfg.Data.File = path
	cfg.Data.GroupColumn = "gender"
	cfg.Data.ValueColumn = "area"

	c, err := New(context.Background(), cfg)
	require.NoError(t, err)

	ds, err := c.DatasetSource("").Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, ds.Len())
	assert.Equal(t, path, c.DatasetSource("").Name())
}
