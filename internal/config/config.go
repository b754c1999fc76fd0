package config

import (
	"os"
	"strconv"
	"time"

	"gobayes/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Analysis AnalysisConfig
	Sampler  SamplerConfig
	Server   ServerConfig
	Database DatabaseConfig
	Paths    PathConfig
}

// AnalysisConfig holds the simulation and summarization settings
type AnalysisConfig struct {
	Seed          int64
	Rows          int
	CredibleMass  float64
	ROPEHalfWidth float64
}

// SamplerConfig holds MCMC settings
type SamplerConfig struct {
	PriorFamily   string
	PriorLocation float64
	PriorScale    float64
	PriorDF       float64
	Chains        int
	Iterations    int
	Timeout       time.Duration
}

// ServerConfig holds web server settings
type ServerConfig struct {
	Port    string
	GinMode string
}

// DatabaseConfig holds the optional run-ledger connection settings.
// An empty URL disables persistence entirely.
type DatabaseConfig struct {
	URL     string
	SSLMode string
}

// PathConfig holds file system paths
type PathConfig struct {
	ExcelFile string
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	config := &Config{
		Analysis: AnalysisConfig{
			Seed:          getEnvInt64OrDefault("SEED", 123),
			Rows:          getEnvIntOrDefault("N_ROWS", 20),
			CredibleMass:  getEnvFloatOrDefault("CREDIBLE_MASS", 0.95),
			ROPEHalfWidth: getEnvFloatOrDefault("ROPE_HALF_WIDTH", 0),
		},
		Sampler: SamplerConfig{
			PriorFamily:   getEnvOrDefault("PRIOR_FAMILY", "gaussian"),
			PriorLocation: getEnvFloatOrDefault("PRIOR_LOCATION", 0),
			PriorScale:    getEnvFloatOrDefault("PRIOR_SCALE", 10),
			PriorDF:       getEnvFloatOrDefault("PRIOR_DF", 3),
			Chains:        getEnvIntOrDefault("N_CHAINS", 4),
			Iterations:    getEnvIntOrDefault("N_ITERATIONS", 2000),
			Timeout:       getEnvDurationOrDefault("SAMPLER_TIMEOUT", 60*time.Second),
		},
		Server: ServerConfig{
			Port:    getEnvOrDefault("PORT", "8080"),
			GinMode: getEnvOrDefault("GIN_MODE", "release"),
		},
		Database: DatabaseConfig{
			URL:     getEnvOrDefault("DATABASE_URL", ""),
			SSLMode: getEnvOrDefault("SSL_MODE", "disable"),
		},
		Paths: PathConfig{
			ExcelFile: getEnvOrDefault("EXCEL_FILE", "analysis_report.xlsx"),
		},
	}

	if err := validateConfig(config); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}

	return config, nil
}

func validateConfig(config *Config) error {
	if config.Analysis.Rows <= 0 {
		return errors.ConfigInvalid("N_ROWS must be > 0")
	}
	if config.Analysis.CredibleMass <= 0 || config.Analysis.CredibleMass >= 1 {
		return errors.ConfigInvalid("CREDIBLE_MASS must be in (0, 1)")
	}
	if config.Analysis.ROPEHalfWidth < 0 {
		return errors.ConfigInvalid("ROPE_HALF_WIDTH must be >= 0")
	}
	if config.Sampler.Chains < 1 {
		return errors.ConfigInvalid("N_CHAINS must be >= 1")
	}
	if config.Sampler.Iterations < 4 {
		return errors.ConfigInvalid("N_ITERATIONS must be >= 4")
	}
	if config.Sampler.Timeout <= 0 {
		return errors.ConfigInvalid("SAMPLER_TIMEOUT must be positive")
	}
	return nil
}

// Helper functions for environment variable parsing
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvInt64OrDefault(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvFloatOrDefault(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
