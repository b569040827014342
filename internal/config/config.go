package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"hypokit/adapters/stats/correction"
	"hypokit/adapters/stats/correlation"
	"hypokit/internal"
	"hypokit/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Server   ServerConfig
	Logging  LoggingConfig
	Analysis AnalysisConfig
	Data     DataConfig
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// LoggingConfig holds logger settings
type LoggingConfig struct {
	Level internal.LogLevel
}

// AnalysisConfig holds defaults for statistical runs
type AnalysisConfig struct {
	Alpha             float64
	AdjustMethod      correction.Method
	CorrelationMethod correlation.Method
	MaxConcurrency    int
	MaxVariables      int
	MaxPairs          int
}

// DataConfig holds data source settings
type DataConfig struct {
	File string
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	config := &Config{}

	serverConfig, err := loadServerConfig()
	if err != nil {
		return nil, errors.Wrap(err, "failed to load server configuration")
	}
	config.Server = *serverConfig

	level, ok := internal.ParseLogLevel(getEnvOrDefault("LOG_LEVEL", "INFO"))
	if !ok {
		return nil, errors.ConfigInvalid(fmt.Sprintf("LOG_LEVEL %q is not one of ERROR, WARN, INFO, DEBUG, TRACE", os.Getenv("LOG_LEVEL")))
	}
	config.Logging = LoggingConfig{Level: level}

	analysisConfig, err := loadAnalysisConfig()
	if err != nil {
		return nil, errors.Wrap(err, "failed to load analysis configuration")
	}
	config.Analysis = *analysisConfig

	config.Data = DataConfig{File: getEnvOrDefault("DATA_FILE", "")}

	if err := validateConfig(config); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}

	return config, nil
}

func loadServerConfig() (*ServerConfig, error) {
	read, err := getEnvDurationOrDefault("READ_TIMEOUT", 15*time.Second)
	if err != nil {
		return nil, err
	}
	write, err := getEnvDurationOrDefault("WRITE_TIMEOUT", 60*time.Second)
	if err != nil {
		return nil, err
	}
	return &ServerConfig{
		Port:         getEnvOrDefault("PORT", "8080"),
		ReadTimeout:  read,
		WriteTimeout: write,
	}, nil
}

func loadAnalysisConfig() (*AnalysisConfig, error) {
	alpha, err := getEnvFloatOrDefault("ALPHA", 0.05)
	if err != nil {
		return nil, err
	}
	adjust, err := correction.ParseMethod(getEnvOrDefault("P_ADJUST_METHOD", "bonferroni"))
	if err != nil {
		return nil, errors.WithCode(errors.CodeConfigInvalid, err)
	}
	corr, err := correlation.ParseMethod(getEnvOrDefault("CORRELATION_METHOD", "kendall"))
	if err != nil {
		return nil, errors.WithCode(errors.CodeConfigInvalid, err)
	}
	concurrency, err := getEnvIntOrDefault("MAX_CONCURRENCY", 8)
	if err != nil {
		return nil, err
	}
	maxVars, err := getEnvIntOrDefault("MAX_VARIABLES", 2000)
	if err != nil {
		return nil, err
	}
	maxPairs, err := getEnvIntOrDefault("MAX_PAIRS", 500000)
	if err != nil {
		return nil, err
	}

	return &AnalysisConfig{
		Alpha:             alpha,
		AdjustMethod:      adjust,
		CorrelationMethod: corr,
		MaxConcurrency:    concurrency,
		MaxVariables:      maxVars,
		MaxPairs:          maxPairs,
	}, nil
}

func validateConfig(config *Config) error {
	if config.Server.Port == "" {
		return errors.ConfigInvalid("PORT is required")
	}
	if !(config.Analysis.Alpha > 0 && config.Analysis.Alpha < 1) {
		return errors.ConfigInvalid(fmt.Sprintf("ALPHA must be in (0, 1), got %v", config.Analysis.Alpha))
	}
	if config.Analysis.MaxConcurrency < 1 {
		return errors.ConfigInvalid("MAX_CONCURRENCY must be at least 1")
	}
	if config.Analysis.MaxVariables < 2 {
		return errors.ConfigInvalid("MAX_VARIABLES must be at least 2")
	}
	if config.Analysis.MaxPairs < 1 {
		return errors.ConfigInvalid("MAX_PAIRS must be at least 1")
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

func getEnvIntOrDefault(key string, defaultValue int) (int, error) {
	if value := os.Getenv(key); value != "" {
		intValue, err := strconv.Atoi(value)
		if err != nil {
			return 0, errors.ConfigInvalid(fmt.Sprintf("%s=%q is not an integer", key, value))
		}
		return intValue, nil
	}
	return defaultValue, nil
}

func getEnvFloatOrDefault(key string, defaultValue float64) (float64, error) {
	if value := os.Getenv(key); value != "" {
		floatValue, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return 0, errors.ConfigInvalid(fmt.Sprintf("%s=%q is not a number", key, value))
		}
		return floatValue, nil
	}
	return defaultValue, nil
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) (time.Duration, error) {
	if value := os.Getenv(key); value != "" {
		duration, err := time.ParseDuration(value)
		if err != nil {
			return 0, errors.ConfigInvalid(fmt.Sprintf("%s=%q is not a duration", key, value))
		}
		return duration, nil
	}
	return defaultValue, nil
}
