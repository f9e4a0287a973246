package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"npdecide/internal"
	"npdecide/internal/errors"

	"github.com/go-playground/validator/v10"
)

// Config represents the complete application configuration
type Config struct {
	Server  ServerConfig
	Log     LogConfig
	Solver  SolverConfig
	Batch   BatchConfig
	Metrics MetricsConfig
}

// ServerConfig holds web server settings
type ServerConfig struct {
	Port           string        `validate:"required,numeric"`
	GinMode        string        `validate:"oneof=debug release test"`
	RequestTimeout time.Duration `validate:"gt=0"`
}

// LogConfig holds logging settings
type LogConfig struct {
	Level internal.LogLevel
}

// SolverConfig bounds the continuous threshold search
type SolverConfig struct {
	RootMaxIterations int     `validate:"min=1,max=10000"`
	RootTolerance     float64 `validate:"gt=0,lt=1"`
}

// BatchConfig limits batch matrix solves
type BatchConfig struct {
	Concurrency int `validate:"min=1,max=256"`
	MaxItems    int `validate:"min=1,max=10000"`
}

// MetricsConfig controls the Prometheus collector
type MetricsConfig struct {
	Enabled   bool
	Namespace string `validate:"required"`
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	level, err := internal.ParseLogLevel(os.Getenv("LOG_LEVEL"))
	if err != nil {
		return nil, errors.Wrap(errors.ConfigInvalid(err.Error()), "failed to load log configuration")
	}

	config := &Config{
		Server: ServerConfig{
			Port:           getEnvOrDefault("PORT", "8080"),
			GinMode:        getEnvOrDefault("GIN_MODE", "release"),
			RequestTimeout: getEnvDurationOrDefault("REQUEST_TIMEOUT", 10*time.Second),
		},
		Log: LogConfig{Level: level},
		Solver: SolverConfig{
			RootMaxIterations: getEnvIntOrDefault("ROOT_MAX_ITERATIONS", 100),
			RootTolerance:     getEnvFloatOrDefault("ROOT_TOLERANCE", 1e-12),
		},
		Batch: BatchConfig{
			Concurrency: getEnvIntOrDefault("BATCH_CONCURRENCY", 4),
			MaxItems:    getEnvIntOrDefault("BATCH_MAX_ITEMS", 64),
		},
		Metrics: MetricsConfig{
			Enabled:   getEnvBoolOrDefault("METRICS_ENABLED", true),
			Namespace: getEnvOrDefault("METRICS_NAMESPACE", "npdecide"),
		},
	}

	if err := validateConfig(config); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}

	return config, nil
}

func validateConfig(config *Config) error {
	validate := validator.New(validator.WithRequiredStructEnabled())
	if err := validate.Struct(config); err != nil {
		if fieldErrs, ok := err.(validator.ValidationErrors); ok {
			msgs := make([]string, 0, len(fieldErrs))
			for _, fe := range fieldErrs {
				msgs = append(msgs, fmt.Sprintf("%s failed %q (value %v)", fe.Namespace(), fe.Tag(), fe.Value()))
			}
			return errors.ConfigInvalid(strings.Join(msgs, "; "))
		}
		return errors.ConfigInvalid(err.Error())
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

func getEnvFloatOrDefault(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
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
