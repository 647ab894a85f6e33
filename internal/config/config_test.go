package config

import (
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.InputPath != "billing_data.csv" {
		t.Errorf("InputPath = %q, want billing_data.csv", cfg.InputPath)
	}
	if cfg.OutputPath != "transformed_data.csv" {
		t.Errorf("OutputPath = %q, want transformed_data.csv", cfg.OutputPath)
	}
	if cfg.Currency != "USD" {
		t.Errorf("Currency = %q, want USD", cfg.Currency)
	}
	if cfg.RunTimeout != 5*time.Minute {
		t.Errorf("RunTimeout = %v, want 5m", cfg.RunTimeout)
	}
	if cfg.BigQuery.ProjectID != "" {
		t.Errorf("BigQuery.ProjectID = %q, want empty (sink disabled)", cfg.BigQuery.ProjectID)
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("BILLING_INPUT", "in.csv")
	t.Setenv("BILLING_CURRENCY", "EUR")
	t.Setenv("BILLING_RUN_TIMEOUT", "30s")
	t.Setenv("BILLING_BQ_PROJECT", "my-project")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.InputPath != "in.csv" {
		t.Errorf("InputPath = %q, want in.csv", cfg.InputPath)
	}
	if cfg.Currency != "EUR" {
		t.Errorf("Currency = %q, want EUR", cfg.Currency)
	}
	if cfg.RunTimeout != 30*time.Second {
		t.Errorf("RunTimeout = %v, want 30s", cfg.RunTimeout)
	}
	if cfg.BigQuery.ProjectID != "my-project" || cfg.BigQuery.DatasetID != "billing" {
		t.Errorf("unexpected BigQuery config: %+v", cfg.BigQuery)
	}
}

func TestLoad_InvalidCurrency(t *testing.T) {
	t.Setenv("BILLING_CURRENCY", "NOTACURRENCY")
	if _, err := Load(); err == nil {
		t.Error("expected error for unknown currency, got nil")
	}
}

func TestLoad_InvalidTimeout(t *testing.T) {
	t.Setenv("BILLING_RUN_TIMEOUT", "soon")
	if _, err := Load(); err == nil {
		t.Error("expected error for invalid timeout, got nil")
	}
	t.Setenv("BILLING_RUN_TIMEOUT", "-1m")
	if _, err := Load(); err == nil {
		t.Error("expected error for negative timeout, got nil")
	}
}
