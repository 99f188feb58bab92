package config

import (
	"testing"

	"homerange/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var configKeys = []string{
	"DATA_FILE", "GROUP_COLUMN", "VALUE_COLUMN", "DATA_SHEET", "GROUP_A", "GROUP_B",
	"BOOTSTRAP_REPLICATES", "PERMUTATION_REPLICATES", "MAX_REPLICATES", "CONFIDENCE_LEVEL", "SEED",
	"WORKERS", "DATABASE_URL", "PORT", "GIN_MODE", "LOG_LEVEL",
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range configKeys {
		t.Setenv(key, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, Default().Analysis, cfg.Analysis)
	assert.Equal(t, "sex", cfg.Data.GroupColumn)
	assert.Equal(t, "kernel95", cfg.Data.ValueColumn)
	assert.Equal(t, "8080", cfg.Server.Port)
	assert.False(t, cfg.Database.Enabled())
}

func TestLoad_Overrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("DATA_FILE", "monkeys.csv")
	t.Setenv("BOOTSTRAP_REPLICATES", "500")
	t.Setenv("PERMUTATION_REPLICATES", "750")
	t.Setenv("CONFIDENCE_LEVEL", "0.9")
	t.Setenv("SEED", "-3")
	t.Setenv("WORKERS", "4")
	t.Setenv("MAX_REPLICATES", "800")
	t.Setenv("GROUP_A", "F")
	t.Setenv("GROUP_B", "M")
	t.Setenv("DATABASE_URL", "postgres://localhost/homerange")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "monkeys.csv", cfg.Data.File)
	assert.Equal(t, 500, cfg.Analysis.BootstrapReplicates)
	assert.Equal(t, 750, cfg.Analysis.PermutationReplicates)
	assert.Equal(t, 0.9, cfg.Analysis.ConfidenceLevel)
	assert.Equal(t, int64(-3), cfg.Analysis.Seed)
	assert.Equal(t, 4, cfg.Analysis.Workers)
	assert.Equal(t, 800, cfg.Analysis.MaxReplicates)
	assert.Equal(t, "F", cfg.Analysis.GroupA)
	assert.True(t, cfg.Database.Enabled())
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		key   string
		value string
	}{
		{"BOOTSTRAP_REPLICATES", "many"},
		{"BOOTSTRAP_REPLICATES", "0"},
		{"PERMUTATION_REPLICATES", "-1"},
		{"BOOTSTRAP_REPLICATES", "2000000000"},
		{"PERMUTATION_REPLICATES", "1000001"},
		{"MAX_REPLICATES", "0"},
		{"MAX_REPLICATES", "lots"},
		{"MAX_REPLICATES", "100"},
		{"CONFIDENCE_LEVEL", "1"},
		{"CONFIDENCE_LEVEL", "ninety"},
		{"WORKERS", "0"},
		{"SEED", "4.5"},
		{"GROUP_B", "M"},
	}

	for _, tt := range tests {
		t.Run(tt.key+"="+tt.value, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(tt.key, tt.value)

			_, err := Load()
			require.Error(t, err)
			assert.Equal(t, errors.CodeConfigInvalid, errors.GetCode(err))
		})
	}
}
