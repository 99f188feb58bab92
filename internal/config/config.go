package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"homerange/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Data     DataConfig
	Analysis AnalysisConfig
	Database DatabaseConfig
	Server   ServerConfig
	LogLevel string
}

// DataConfig describes where the home-range table lives and which columns to read
type DataConfig struct {
	File        string
	GroupColumn string
	ValueColumn string
	Sheet       string
}

// AnalysisConfig holds resampling settings
type AnalysisConfig struct {
	GroupA                string
	GroupB                string
	BootstrapReplicates   int
	PermutationReplicates int
	MaxReplicates         int
	ConfidenceLevel       float64
	Seed                  int64
	Workers               int
}

// DatabaseConfig holds the optional report store connection
type DatabaseConfig struct {
	URL string
}

// Enabled reports whether a report database is configured
func (d DatabaseConfig) Enabled() bool {
	return d.URL != ""
}

// ServerConfig holds web server settings
type ServerConfig struct {
	Port    string
	GinMode string
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	analysis, err := loadAnalysisConfig()
	if err != nil {
		return nil, errors.Wrap(err, "failed to load analysis configuration")
	}

	config := &Config{
		Data:     loadDataConfig(),
		Analysis: *analysis,
		Database: DatabaseConfig{URL: os.Getenv("DATABASE_URL")},
		Server: ServerConfig{
			Port:    getEnvOrDefault("PORT", "8080"),
			GinMode: getEnvOrDefault("GIN_MODE", "release"),
		},
		LogLevel: getEnvOrDefault("LOG_LEVEL", "INFO"),
	}

	if err := config.Validate(); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}
	return config, nil
}

// Default returns the configuration used when no environment is set
func Default() *Config {
	return &Config{
		Data: DataConfig{GroupColumn: "sex", ValueColumn: "kernel95"},
		Analysis: AnalysisConfig{
			GroupA:                "M",
			GroupB:                "F",
			BootstrapReplicates:   10000,
			PermutationReplicates: 10000,
			MaxReplicates:         1_000_000,
			ConfidenceLevel:       0.95,
			Seed:                  42,
			Workers:               1,
		},
		Server:   ServerConfig{Port: "8080", GinMode: "release"},
		LogLevel: "INFO",
	}
}

// Validate checks ranges and required fields
func (c *Config) Validate() error {
	a := c.Analysis
	if a.BootstrapReplicates < 1 {
		return errors.ConfigInvalid(fmt.Sprintf("BOOTSTRAP_REPLICATES must be at least 1, got %d", a.BootstrapReplicates))
	}
	if a.PermutationReplicates < 1 {
		return errors.ConfigInvalid(fmt.Sprintf("PERMUTATION_REPLICATES must be at least 1, got %d", a.PermutationReplicates))
	}
	if a.MaxReplicates < 1 {
		return errors.ConfigInvalid(fmt.Sprintf("MAX_REPLICATES must be at least 1, got %d", a.MaxReplicates))
	}
	if a.BootstrapReplicates > a.MaxReplicates {
		return errors.ConfigInvalid(fmt.Sprintf("BOOTSTRAP_REPLICATES %d exceeds MAX_REPLICATES %d", a.BootstrapReplicates, a.MaxReplicates))
	}
	if a.PermutationReplicates > a.MaxReplicates {
		return errors.ConfigInvalid(fmt.Sprintf("PERMUTATION_REPLICATES %d exceeds MAX_REPLICATES %d", a.PermutationReplicates, a.MaxReplicates))
	}
	if a.ConfidenceLevel <= 0 || a.ConfidenceLevel >= 1 {
		return errors.ConfigInvalid(fmt.Sprintf("CONFIDENCE_LEVEL must be in (0, 1), got %v", a.ConfidenceLevel))
	}
	if a.Workers < 1 {
		return errors.ConfigInvalid(fmt.Sprintf("WORKERS must be at least 1, got %d", a.Workers))
	}
	if a.GroupA != "" && a.GroupA == a.GroupB {
		return errors.ConfigInvalid("GROUP_A and GROUP_B must differ")
	}
	if c.Data.GroupColumn == "" || c.Data.ValueColumn == "" {
		return errors.ConfigInvalid("GROUP_COLUMN and VALUE_COLUMN are required")
	}
	return nil
}

func loadDataConfig() DataConfig {
	d := Default().Data
	return DataConfig{
		File:        getEnvOrDefault("DATA_FILE", ""),
		GroupColumn: getEnvOrDefault("GROUP_COLUMN", d.GroupColumn),
		ValueColumn: getEnvOrDefault("VALUE_COLUMN", d.ValueColumn),
		Sheet:       getEnvOrDefault("DATA_SHEET", ""),
	}
}

func loadAnalysisConfig() (*AnalysisConfig, error) {
	d := Default().Analysis

	bootstrap, err := getEnvInt("BOOTSTRAP_REPLICATES", d.BootstrapReplicates)
	if err != nil {
		return nil, err
	}
	permutations, err := getEnvInt("PERMUTATION_REPLICATES", d.PermutationReplicates)
	if err != nil {
		return nil, err
	}
	maxReplicates, err := getEnvInt("MAX_REPLICATES", d.MaxReplicates)
	if err != nil {
		return nil, err
	}
	workers, err := getEnvInt("WORKERS", d.Workers)
	if err != nil {
		return nil, err
	}
	level, err := getEnvFloat("CONFIDENCE_LEVEL", d.ConfidenceLevel)
	if err != nil {
		return nil, err
	}
	seed, err := getEnvInt64("SEED", d.Seed)
	if err != nil {
		return nil, err
	}

	return &AnalysisConfig{
		GroupA:                getEnvOrDefault("GROUP_A", d.GroupA),
		GroupB:                getEnvOrDefault("GROUP_B", d.GroupB),
		BootstrapReplicates:   bootstrap,
		PermutationReplicates: permutations,
		MaxReplicates:         maxReplicates,
		ConfidenceLevel:       level,
		Seed:                  seed,
		Workers:               workers,
	}, nil
}

// Helper functions for environment variable parsing. Unlike silent
// fallbacks, malformed numbers are reported so a typo cannot change a run.
func getEnvOrDefault(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) (int, error) {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return defaultValue, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, errors.ConfigInvalid(fmt.Sprintf("%s must be an integer, got %q", key, value))
	}
	return n, nil
}

func getEnvInt64(key string, defaultValue int64) (int64, error) {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return defaultValue, nil
	}
	n, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return 0, errors.ConfigInvalid(fmt.Sprintf("%s must be an integer, got %q", key, value))
	}
	return n, nil
}

func getEnvFloat(key string, defaultValue float64) (float64, error) {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return defaultValue, nil
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, errors.ConfigInvalid(fmt.Sprintf("%s must be a number, got %q", key, value))
	}
	return f, nil
}
