package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("Failed to write %s: %v", name, err)
	}
	return path
}

func validConfig(t *testing.T) *Config {
	t.Helper()
	dir := t.TempDir()
	cfg := DefaultConfig()
	cfg.JSONPath = writeFile(t, dir, "inspection.json", `{}`)
	cfg.TemplatePath = writeFile(t, dir, "template.pdf", "%PDF-1.7")
	return cfg
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.JSONPath != DefaultJSONPath {
		t.Errorf("Expected JSONPath %s, got %s", DefaultJSONPath, cfg.JSONPath)
	}
	if cfg.TemplatePath != DefaultTemplatePath {
		t.Errorf("Expected TemplatePath %s, got %s", DefaultTemplatePath, cfg.TemplatePath)
	}
	if cfg.OutputPath != DefaultOutputPath {
		t.Errorf("Expected OutputPath %s, got %s", DefaultOutputPath, cfg.OutputPath)
	}
	if cfg.SummaryPath != DefaultSummaryPath {
		t.Errorf("Expected SummaryPath %s, got %s", DefaultSummaryPath, cfg.SummaryPath)
	}
	if cfg.SkipSummary {
		t.Error("Expected SkipSummary to default to false")
	}
	if cfg.MaxImageWidth != DefaultMaxImageWidth || cfg.MaxImageHeight != DefaultMaxImageHeight {
		t.Errorf("Unexpected image box defaults: %dx%d", cfg.MaxImageWidth, cfg.MaxImageHeight)
	}
	if cfg.LogLevel != DefaultLogLevel {
		t.Errorf("Expected LogLevel %s, got %s", DefaultLogLevel, cfg.LogLevel)
	}
	if cfg.MaxFileSize != DefaultMaxFileSize {
		t.Errorf("Expected MaxFileSize %d, got %d", DefaultMaxFileSize, cfg.MaxFileSize)
	}
}

func TestValidateAcceptsGoodConfig(t *testing.T) {
	cfg := validConfig(t)
	if err := cfg.Validate(); err != nil {
		t.Errorf("Expected valid config to pass validation, got: %v", err)
	}
}

func TestValidateInputFiles(t *testing.T) {
	cfg := validConfig(t)
	cfg.JSONPath = filepath.Join(t.TempDir(), "missing.json")
	if err := cfg.Validate(); err == nil {
		t.Error("Expected error for missing inspection JSON")
	}

	cfg = validConfig(t)
	cfg.JSONPath = ""
	if err := cfg.Validate(); err == nil {
		t.Error("Expected error for empty JSON path")
	}

	cfg = validConfig(t)
	cfg.TemplatePath = filepath.Join(t.TempDir(), "missing.pdf")
	if err := cfg.Validate(); err == nil {
		t.Error("Expected error for missing template")
	}

	cfg = validConfig(t)
	cfg.LayoutPath = filepath.Join(t.TempDir(), "missing.json")
	if err := cfg.Validate(); err == nil {
		t.Error("Expected error for missing layout file")
	}

	cfg = validConfig(t)
	cfg.LayoutPath = writeFile(t, t.TempDir(), "layout.json", `{"pages": []}`)
	if err := cfg.Validate(); err != nil {
		t.Errorf("Expected existing layout file to pass, got: %v", err)
	}
}

func TestValidateOutputPaths(t *testing.T) {
	cfg := validConfig(t)
	cfg.OutputPath = ""
	if err := cfg.Validate(); err == nil {
		t.Error("Expected error for empty output path")
	}

	cfg = validConfig(t)
	cfg.SummaryPath = ""
	if err := cfg.Validate(); err == nil {
		t.Error("Expected error for empty summary path")
	}

	cfg = validConfig(t)
	cfg.SummaryPath = ""
	cfg.SkipSummary = true
	if err := cfg.Validate(); err != nil {
		t.Errorf("Expected empty summary path to pass when summary is skipped, got: %v", err)
	}
}

func TestValidateLimits(t *testing.T) {
	cfg := validConfig(t)
	cfg.MaxFileSize = 0
	if err := cfg.Validate(); err == nil {
		t.Error("Expected error for zero max file size")
	}

	cfg = validConfig(t)
	cfg.MaxImageWidth = -1
	if err := cfg.Validate(); err == nil {
		t.Error("Expected error for negative image width")
	}

	cfg = validConfig(t)
	cfg.MaxImageHeight = 0
	if err := cfg.Validate(); err == nil {
		t.Error("Expected error for zero image height")
	}
}

func TestValidateLogLevel(t *testing.T) {
	for _, level := range []string{"debug", "info", "warn", "error"} {
		cfg := validConfig(t)
		cfg.LogLevel = level
		if err := cfg.Validate(); err != nil {
			t.Errorf("Expected log level %s to be valid, got: %v", level, err)
		}
	}

	cfg := validConfig(t)
	cfg.LogLevel = "verbose"
	if err := cfg.Validate(); err == nil {
		t.Error("Expected error for invalid log level")
	}
}

func TestIsDebug(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.IsDebug() {
		t.Error("Expected IsDebug to be false at default log level")
	}
	cfg.LogLevel = "debug"
	if !cfg.IsDebug() {
		t.Error("Expected IsDebug to be true at debug log level")
	}
}

func TestConfigString(t *testing.T) {
	cfg := DefaultConfig()
	s := cfg.String()
	for _, want := range []string{cfg.JSONPath, cfg.TemplatePath, cfg.OutputPath, cfg.LogLevel} {
		if !strings.Contains(s, want) {
			t.Errorf("Expected String() to contain %q, got %s", want, s)
		}
	}
}
