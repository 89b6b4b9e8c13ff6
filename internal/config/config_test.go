package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func tempDataset(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "rounds.csv")
	if err := os.WriteFile(path, []byte("Organization Name\n"), 0o644); err != nil {
		t.Fatalf("write dataset: %v", err)
	}
	return path
}

func validConfig(t *testing.T) *Config {
	return &Config{
		Port:             "8081",
		DatasetPath:      tempDataset(t),
		LogoDir:          "",
		LogoExt:          ".png",
		SummaryCacheSize: 200,
		SummaryCacheTTL:  5 * time.Minute,
		LogLevel:         "info",
	}
}

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"PORT", "DATASET_PATH", "LOGO_DIR", "LOGO_EXT", "SUMMARY_CACHE_SIZE", "SUMMARY_CACHE_TTL", "LOG_LEVEL"} {
		t.Setenv(key, "")
	}
	cfg := Load()
	if cfg.Port != "8081" {
		t.Fatalf("default port = %q", cfg.Port)
	}
	if cfg.SummaryCacheSize != 200 || cfg.SummaryCacheTTL != 5*time.Minute {
		t.Fatalf("default cache settings = %d %v", cfg.SummaryCacheSize, cfg.SummaryCacheTTL)
	}
	if cfg.LogLevel != "info" {
		t.Fatalf("default log level = %q", cfg.LogLevel)
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("DATASET_PATH", "/srv/data/rounds.csv")
	t.Setenv("SUMMARY_CACHE_SIZE", "50")
	t.Setenv("SUMMARY_CACHE_TTL", "30s")
	t.Setenv("LOG_LEVEL", "debug")

	cfg := Load()
	if cfg.Port != "9000" || cfg.DatasetPath != "/srv/data/rounds.csv" {
		t.Fatalf("env not applied: %+v", cfg)
	}
	if cfg.SummaryCacheSize != 50 || cfg.SummaryCacheTTL != 30*time.Second {
		t.Fatalf("cache env not applied: %d %v", cfg.SummaryCacheSize, cfg.SummaryCacheTTL)
	}
	if cfg.LogLevel != "debug" {
		t.Fatalf("log level env not applied: %q", cfg.LogLevel)
	}
}

func TestValidateAcceptsValidConfig(t *testing.T) {
	if err := validConfig(t).Validate(); err != nil {
		t.Fatalf("valid config rejected: %v", err)
	}
}

func TestValidateRejections(t *testing.T) {
	cases := []struct {
		name    string
		mutate  func(t *testing.T, c *Config)
		wantMsg string
	}{
		{"bad port", func(t *testing.T, c *Config) { c.Port = "abc" }, "invalid port"},
		{"port out of range", func(t *testing.T, c *Config) { c.Port = "70000" }, "invalid port"},
		{"empty dataset", func(t *testing.T, c *Config) { c.DatasetPath = "" }, "dataset path cannot be empty"},
		{"missing dataset", func(t *testing.T, c *Config) { c.DatasetPath = "/nonexistent.csv" }, "not readable"},
		{"dataset is dir", func(t *testing.T, c *Config) { c.DatasetPath = t.TempDir() }, "is a directory"},
		{"missing logo dir", func(t *testing.T, c *Config) { c.LogoDir = "/nonexistent-logos" }, "logo directory"},
		{"bad logo ext", func(t *testing.T, c *Config) { c.LogoExt = "png" }, "logo extension"},
		{"cache too small", func(t *testing.T, c *Config) { c.SummaryCacheSize = 0 }, "summary cache size"},
		{"cache too big", func(t *testing.T, c *Config) { c.SummaryCacheSize = 99999 }, "summary cache size"},
		{"ttl too short", func(t *testing.T, c *Config) { c.SummaryCacheTTL = time.Millisecond }, "summary cache TTL"},
		{"ttl too long", func(t *testing.T, c *Config) { c.SummaryCacheTTL = 48 * time.Hour }, "summary cache TTL"},
		{"bad log level", func(t *testing.T, c *Config) { c.LogLevel = "verbose" }, "invalid log level"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := validConfig(t)
			tc.mutate(t, cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatalf("expected validation error")
			}
			if !strings.Contains(err.Error(), tc.wantMsg) {
				t.Fatalf("error %q does not mention %q", err, tc.wantMsg)
			}
		})
	}
}

func TestValidateCollectsAllErrors(t *testing.T) {
	cfg := validConfig(t)
	cfg.Port = "abc"
	cfg.LogLevel = "loud"
	err := cfg.Validate()
	if err == nil {
		t.Fatalf("expected validation error")
	}
	if !strings.Contains(err.Error(), "invalid port") || !strings.Contains(err.Error(), "invalid log level") {
		t.Fatalf("expected combined errors, got %q", err)
	}
}
