package config

import (
	"testing"
	"time"
)

// TestLoadDefaults tests configuration defaults with a clean environment
func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if cfg.Analysis.Seed != 123 {
		t.Errorf("Expected default seed 123, got %d", cfg.Analysis.Seed)
	}
	if cfg.Analysis.Rows != 20 {
		t.Errorf("Expected default 20 rows, got %d", cfg.Analysis.Rows)
	}
	if cfg.Analysis.CredibleMass != 0.95 {
		t.Errorf("Expected default credible mass 0.95, got %f", cfg.Analysis.CredibleMass)
	}
	if cfg.Sampler.Chains != 4 {
		t.Errorf("Expected default 4 chains, got %d", cfg.Sampler.Chains)
	}
	if cfg.Sampler.Iterations != 2000 {
		t.Errorf("Expected default 2000 iterations, got %d", cfg.Sampler.Iterations)
	}
	if cfg.Sampler.PriorFamily != "gaussian" {
		t.Errorf("Expected default gaussian prior, got %s", cfg.Sampler.PriorFamily)
	}
	if cfg.Sampler.Timeout != 60*time.Second {
		t.Errorf("Expected default 60s sampler timeout, got %v", cfg.Sampler.Timeout)
	}
	if cfg.Server.Port != "8080" {
		t.Errorf("Expected default port 8080, got %s", cfg.Server.Port)
	}
	if cfg.Database.URL != "" {
		t.Errorf("Expected no default database URL, got %s", cfg.Database.URL)
	}
}

// TestLoadOverrides tests environment variable overrides
func TestLoadOverrides(t *testing.T) {
	t.Setenv("SEED", "999")
	t.Setenv("N_ROWS", "50")
	t.Setenv("N_CHAINS", "8")
	t.Setenv("PRIOR_FAMILY", "student_t")
	t.Setenv("SAMPLER_TIMEOUT", "2m")
	t.Setenv("PORT", "9090")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if cfg.Analysis.Seed != 999 {
		t.Errorf("Expected seed 999, got %d", cfg.Analysis.Seed)
	}
	if cfg.Analysis.Rows != 50 {
		t.Errorf("Expected 50 rows, got %d", cfg.Analysis.Rows)
	}
	if cfg.Sampler.Chains != 8 {
		t.Errorf("Expected 8 chains, got %d", cfg.Sampler.Chains)
	}
	if cfg.Sampler.PriorFamily != "student_t" {
		t.Errorf("Expected student_t prior, got %s", cfg.Sampler.PriorFamily)
	}
	if cfg.Sampler.Timeout != 2*time.Minute {
		t.Errorf("Expected 2m timeout, got %v", cfg.Sampler.Timeout)
	}
	if cfg.Server.Port != "9090" {
		t.Errorf("Expected port 9090, got %s", cfg.Server.Port)
	}
}

// TestLoadInvalidValues tests validation failures
func TestLoadInvalidValues(t *testing.T) {
	cases := []struct {
		key, value string
	}{
		{"N_ROWS", "-5"},
		{"CREDIBLE_MASS", "1.5"},
		{"N_CHAINS", "0"},
		{"N_ITERATIONS", "2"},
	}

	for _, tc := range cases {
		t.Run(tc.key, func(t *testing.T) {
			t.Setenv(tc.key, tc.value)
			if _, err := Load(); err == nil {
				t.Errorf("Expected error for %s=%s", tc.key, tc.value)
			}
		})
	}
}

// TestLoadIgnoresUnparseableValues tests that malformed values fall back to defaults
func TestLoadIgnoresUnparseableValues(t *testing.T) {
	t.Setenv("SEED", "not-a-number")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if cfg.Analysis.Seed != 123 {
		t.Errorf("Expected fallback to default seed 123, got %d", cfg.Analysis.Seed)
	}
}
