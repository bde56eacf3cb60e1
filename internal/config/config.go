package config

import (
	"os"
	"strconv"
	"time"

	"caseflow/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Server   ServerConfig
	Rules    RulesConfig
	Pipeline PipelineConfig
	Batch    BatchConfig
	Cost     CostConfig
}

// ServerConfig holds web server settings
type ServerConfig struct {
	Port    string
	GinMode string
}

// RulesConfig controls rule-set loading
type RulesConfig struct {
	// File is an optional external YAML rule set; empty means the embedded
	// default set.
	File string
	// Watch enables hot reload of File via fsnotify.
	Watch bool
}

// PipelineConfig holds per-case execution settings
type PipelineConfig struct {
	// Timeout aborts a whole case run; the orchestrator reports it as the
	// `error` terminal outcome.
	Timeout time.Duration
}

// BatchConfig holds batch processing settings
type BatchConfig struct {
	// Concurrency bounds parallel case runs inside one batch job.
	Concurrency int
}

// CostConfig holds cost estimator settings
type CostConfig struct {
	// JitterSeed seeds the quote jitter stream; 0 disables jitter entirely
	// so estimates stay deterministic.
	JitterSeed int64
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Port:    getEnvOrDefault("PORT", "8080"),
			GinMode: getEnvOrDefault("GIN_MODE", "release"),
		},
		Rules: RulesConfig{
			File:  getEnvOrDefault("RULES_FILE", ""),
			Watch: getEnvBoolOrDefault("RULES_WATCH", false),
		},
		Pipeline: PipelineConfig{
			Timeout: getEnvDurationOrDefault("PIPELINE_TIMEOUT", 10*time.Second),
		},
		Batch: BatchConfig{
			Concurrency: getEnvIntOrDefault("BATCH_CONCURRENCY", 4),
		},
		Cost: CostConfig{
			JitterSeed: int64(getEnvIntOrDefault("COST_JITTER_SEED", 0)),
		},
	}

	if err := validate(cfg); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}
	return cfg, nil
}

func validate(cfg *Config) error {
	if cfg.Server.Port == "" {
		return errors.ConfigInvalid("server port is required")
	}
	if cfg.Pipeline.Timeout <= 0 {
		return errors.ConfigInvalid("pipeline timeout must be positive")
	}
	if cfg.Batch.Concurrency < 1 {
		return errors.ConfigInvalid("batch concurrency must be at least 1")
	}
	if cfg.Rules.Watch && cfg.Rules.File == "" {
		return errors.ConfigInvalid("RULES_WATCH requires RULES_FILE")
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

func getEnvBoolOrDefault(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
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
