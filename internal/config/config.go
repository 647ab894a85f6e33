// Package config provides centralized configuration for the billing
// pipeline. Settings come from environment variables with sensible defaults
// and are validated on startup to fail fast on misconfiguration.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/Rhymond/go-money"
)

// Config holds all pipeline configuration.
type Config struct {
	// InputPath is the default extraction source (BILLING_INPUT).
	InputPath string

	// OutputPath is the default load destination (BILLING_OUTPUT).
	OutputPath string

	// Currency is the ISO code whose symbol prefixes billing amounts
	// (BILLING_CURRENCY, default USD).
	Currency string

	// RunTimeout bounds a single pipeline run (BILLING_RUN_TIMEOUT,
	// default 5m).
	RunTimeout time.Duration

	// LogLevel is the zerolog level string (LOG_LEVEL, default info).
	LogLevel string

	// BigQuery holds the optional warehouse sink settings.
	BigQuery BigQueryConfig
}

// BigQueryConfig holds the warehouse sink settings. ProjectID empty means
// the sink is disabled.
type BigQueryConfig struct {
	// ProjectID is the GCP project (BILLING_BQ_PROJECT).
	ProjectID string

	// DatasetID is the billing dataset (BILLING_BQ_DATASET, default
	// "billing").
	DatasetID string
}

// Load reads configuration from the environment and validates it.
func Load() (*Config, error) {
	cfg := &Config{
		InputPath:  getenv("BILLING_INPUT", "billing_data.csv"),
		OutputPath: getenv("BILLING_OUTPUT", "transformed_data.csv"),
		Currency:   getenv("BILLING_CURRENCY", "USD"),
		LogLevel:   getenv("LOG_LEVEL", "info"),
		BigQuery: BigQueryConfig{
			ProjectID: os.Getenv("BILLING_BQ_PROJECT"),
			DatasetID: getenv("BILLING_BQ_DATASET", "billing"),
		},
	}

	timeout := getenv("BILLING_RUN_TIMEOUT", "5m")
	d, err := time.ParseDuration(timeout)
	if err != nil {
		return nil, fmt.Errorf("config: invalid BILLING_RUN_TIMEOUT %q: %w", timeout, err)
	}
	if d <= 0 {
		return nil, fmt.Errorf("config: BILLING_RUN_TIMEOUT must be positive, got %q", timeout)
	}
	cfg.RunTimeout = d

	if money.GetCurrency(cfg.Currency) == nil {
		return nil, fmt.Errorf("config: unknown BILLING_CURRENCY %q", cfg.Currency)
	}

	return cfg, nil
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
