package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	// HTTP server
	Port string

	// Dataset
	DatasetPath string

	// Logos (optional)
	LogoDir string
	LogoExt string

	// Summary cache
	SummaryCacheSize int
	SummaryCacheTTL  time.Duration

	// Logging
	LogLevel string
}

func Load() *Config {
	return &Config{
		Port:        getEnv("PORT", "8081"),
		DatasetPath: getEnv("DATASET_PATH", "./data/funding-rounds.csv"),

		LogoDir: getEnv("LOGO_DIR", "./logos"),
		LogoExt: getEnv("LOGO_EXT", ".png"),

		SummaryCacheSize: getEnvInt("SUMMARY_CACHE_SIZE", 200),
		SummaryCacheTTL:  getEnvDuration("SUMMARY_CACHE_TTL", 5*time.Minute),

		LogLevel: getEnv("LOG_LEVEL", "info"),
	}
}

// Validate validates the configuration and returns an error if invalid
func (c *Config) Validate() error {
	var errors []string

	if port, err := strconv.Atoi(c.Port); err != nil {
		errors = append(errors, fmt.Sprintf("invalid port '%s': must be a number", c.Port))
	} else if port < 1 || port > 65535 {
		errors = append(errors, fmt.Sprintf("invalid port %d: must be between 1 and 65535", port))
	}

	if c.DatasetPath == "" {
		errors = append(errors, "dataset path cannot be empty")
	} else if fi, err := os.Stat(c.DatasetPath); err != nil {
		errors = append(errors, fmt.Sprintf("dataset file '%s' is not readable: %v", c.DatasetPath, err))
	} else if fi.IsDir() {
		errors = append(errors, fmt.Sprintf("dataset path '%s' is a directory", c.DatasetPath))
	}

	// The logo directory is optional, but when set it must exist.
	if c.LogoDir != "" {
		if fi, err := os.Stat(c.LogoDir); err != nil {
			errors = append(errors, fmt.Sprintf("logo directory '%s' is not readable: %v", c.LogoDir, err))
		} else if !fi.IsDir() {
			errors = append(errors, fmt.Sprintf("logo path '%s' is not a directory", c.LogoDir))
		}
	}
	if c.LogoExt != "" && !strings.HasPrefix(c.LogoExt, ".") {
		errors = append(errors, fmt.Sprintf("invalid logo extension '%s': must start with a dot", c.LogoExt))
	}

	if c.SummaryCacheSize < 1 {
		errors = append(errors, fmt.Sprintf("invalid summary cache size %d: must be at least 1", c.SummaryCacheSize))
	} else if c.SummaryCacheSize > 10000 {
		errors = append(errors, fmt.Sprintf("invalid summary cache size %d: must be at most 10000", c.SummaryCacheSize))
	}

	if c.SummaryCacheTTL < time.Second {
		errors = append(errors, fmt.Sprintf("invalid summary cache TTL %v: must be at least 1 second", c.SummaryCacheTTL))
	} else if c.SummaryCacheTTL > 24*time.Hour {
		errors = append(errors, fmt.Sprintf("invalid summary cache TTL %v: must be at most 24 hours", c.SummaryCacheTTL))
	}

	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		errors = append(errors, fmt.Sprintf("invalid log level '%s': must be one of [debug info warn error]", c.LogLevel))
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(errors, "\n- "))
	}

	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
