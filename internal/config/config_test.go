package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.ServerURL != "http://localhost:8080" {
		t.Errorf("expected default server_url, got %q", cfg.ServerURL)
	}
	if cfg.LogLevel != LogInfo {
		t.Errorf("expected default log_level %q, got %q", LogInfo, cfg.LogLevel)
	}
	if cfg.Timeout() != 5*time.Second {
		t.Errorf("expected default timeout 5s, got %v", cfg.Timeout())
	}
	if cfg.RetryAttempts != 3 {
		t.Errorf("expected default retry_attempts 3, got %d", cfg.RetryAttempts)
	}
	if cfg.PreferencesPath() != filepath.Join(".commentsync", "prefs.db") {
		t.Errorf("unexpected preferences path %q", cfg.PreferencesPath())
	}
}

func TestSaveAndLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.commentsync.yml")

	original := DefaultConfig()
	original.ServerURL = "https://portfolio.example.com"
	original.DataDir = filepath.Join(dir, "state")
	original.LogLevel = LogDebug
	original.TimeoutSeconds = 9
	original.Live.Port = 9100
	original.Live.AllowAllOrigins = true

	if err := original.Save(path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if loaded.ServerURL != original.ServerURL {
		t.Errorf("server_url: got %q, want %q", loaded.ServerURL, original.ServerURL)
	}
	if loaded.DataDir != original.DataDir {
		t.Errorf("data_dir: got %q, want %q", loaded.DataDir, original.DataDir)
	}
	if loaded.LogLevel != original.LogLevel {
		t.Errorf("log_level: got %q, want %q", loaded.LogLevel, original.LogLevel)
	}
	if loaded.TimeoutSeconds != original.TimeoutSeconds {
		t.Errorf("timeout_seconds: got %d, want %d", loaded.TimeoutSeconds, original.TimeoutSeconds)
	}
	if loaded.Live != original.Live {
		t.Errorf("live: got %+v, want %+v", loaded.Live, original.Live)
	}
}

func TestLoadMissingFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nonexistent.yml")

	// Loading a missing file should return defaults, not an error.
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load should not fail for missing file: %v", err)
	}
	if cfg.ServerURL != DefaultConfig().ServerURL {
		t.Errorf("expected default server_url, got %q", cfg.ServerURL)
	}
}

func TestLoadEnvOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.yml")

	cfg := DefaultConfig()
	if err := cfg.Save(path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	os.Setenv("COMMENTSYNC_SERVER_URL", "http://10.0.0.2:8080")
	defer os.Unsetenv("COMMENTSYNC_SERVER_URL")
	os.Setenv("COMMENTSYNC_LIVE__PORT", "9999")
	defer os.Unsetenv("COMMENTSYNC_LIVE__PORT")

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if loaded.ServerURL != "http://10.0.0.2:8080" {
		t.Errorf("env override failed: got %q", loaded.ServerURL)
	}
	if loaded.Live.Port != 9999 {
		t.Errorf("nested env override failed: got %d", loaded.Live.Port)
	}
}

func TestValidateValid(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Errorf("DefaultConfig should be valid, got: %v", err)
	}
}

func TestValidateInvalid(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"empty server url", func(c *Config) { c.ServerURL = "" }},
		{"relative server url", func(c *Config) { c.ServerURL = "/comments" }},
		{"ftp server url", func(c *Config) { c.ServerURL = "ftp://example.com" }},
		{"empty data dir", func(c *Config) { c.DataDir = "" }},
		{"bad log level", func(c *Config) { c.LogLevel = "loud" }},
		{"negative timeout", func(c *Config) { c.TimeoutSeconds = -1 }},
		{"zero retries", func(c *Config) { c.RetryAttempts = 0 }},
		{"negative retry delay", func(c *Config) { c.RetryBaseDelayMS = -5 }},
		{"port out of range", func(c *Config) { c.Live.Port = 70000 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestWizardValidators(t *testing.T) {
	if err := validateServerURL("http://localhost:8080"); err != nil {
		t.Errorf("valid url rejected: %v", err)
	}
	if err := validateServerURL("localhost"); err == nil {
		t.Error("expected error for url without scheme")
	}
	if err := validateNonNegative("0"); err != nil {
		t.Errorf("0 rejected: %v", err)
	}
	if err := validateNonNegative("-1"); err == nil {
		t.Error("expected error for -1")
	}
}
