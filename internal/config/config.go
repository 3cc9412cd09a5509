// Package config holds the flag and environment configuration for the
// report generator.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	// Default input and output paths
	DefaultJSONPath     = "inspection.json"
	DefaultTemplatePath = "TREC_Template_Blank.pdf"
	DefaultOutputPath   = "output_pdf.pdf"
	DefaultSummaryPath  = "bonus_pdf.pdf"

	DefaultLogLevel    = "info"
	DefaultMaxFileSize = 100 * 1024 * 1024 // 100MB

	DefaultMaxImageWidth  = 400
	DefaultMaxImageHeight = 300
)

// Config holds all configuration for one report-generation run.
type Config struct {
	// Input files
	JSONPath     string
	TemplatePath string
	LayoutPath   string // optional pagination layout override

	// Output files
	OutputPath  string
	SummaryPath string
	SkipSummary bool

	// Image sizing for embedded photos
	MaxImageWidth  int
	MaxImageHeight int

	// Application configuration
	Version     string
	LogLevel    string
	MaxFileSize int64 // maximum template PDF size in bytes
}

// DefaultConfig returns a configuration with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		JSONPath:       DefaultJSONPath,
		TemplatePath:   DefaultTemplatePath,
		OutputPath:     DefaultOutputPath,
		SummaryPath:    DefaultSummaryPath,
		MaxImageWidth:  DefaultMaxImageWidth,
		MaxImageHeight: DefaultMaxImageHeight,
		Version:        "1.0.0",
		LogLevel:       DefaultLogLevel,
		MaxFileSize:    DefaultMaxFileSize,
	}
}

// LoadFromFlags parses command line flags and returns a configuration.
func LoadFromFlags() (*Config, error) {
	cfg := DefaultConfig()

	setupViperEnvironment(cfg)
	defineCommandLineFlags(cfg)
	bindFlagsToViper()
	setupUsageMessage()

	pflag.Parse()

	populateConfigFromViper(cfg)

	// Expand input paths
	for _, p := range []*string{&cfg.JSONPath, &cfg.TemplatePath, &cfg.LayoutPath} {
		if *p != "" {
			if expandedPath, err := filepath.Abs(*p); err == nil {
				*p = expandedPath
			}
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// setupViperEnvironment configures viper with environment variables and defaults.
func setupViperEnvironment(cfg *Config) {
	viper.SetEnvPrefix("TREC")
	viper.AutomaticEnv()

	viper.SetDefault("json", cfg.JSONPath)
	viper.SetDefault("template", cfg.TemplatePath)
	viper.SetDefault("layout", cfg.LayoutPath)
	viper.SetDefault("output", cfg.OutputPath)
	viper.SetDefault("summary", cfg.SummaryPath)
	viper.SetDefault("skipsummary", cfg.SkipSummary)
	viper.SetDefault("imagewidth", cfg.MaxImageWidth)
	viper.SetDefault("imageheight", cfg.MaxImageHeight)
	viper.SetDefault("loglevel", cfg.LogLevel)
	viper.SetDefault("maxfilesize", cfg.MaxFileSize)
}

// defineCommandLineFlags sets up all command line flags.
func defineCommandLineFlags(cfg *Config) {
	pflag.String("json", cfg.JSONPath, "Path to the inspection JSON document")
	pflag.String("template", cfg.TemplatePath, "Path to the blank TREC form template PDF")
	pflag.String("layout", cfg.LayoutPath, "Optional JSON file describing the template's checkbox page layout")
	pflag.String("output", cfg.OutputPath, "Output path for the filled official report")
	pflag.String("summary", cfg.SummaryPath, "Output path for the visual summary report")
	pflag.Bool("skipsummary", cfg.SkipSummary, "Generate only the official report")
	pflag.Int("imagewidth", cfg.MaxImageWidth, "Maximum embedded photo width in points")
	pflag.Int("imageheight", cfg.MaxImageHeight, "Maximum embedded photo height in points")
	pflag.String("loglevel", cfg.LogLevel, "Log level (debug, info, warn, error)")
	pflag.Int64("maxfilesize", cfg.MaxFileSize, "Maximum template PDF size in bytes")
}

// bindFlagsToViper binds command line flags to viper configuration.
func bindFlagsToViper() {
	for _, name := range []string{
		"json", "template", "layout", "output", "summary",
		"skipsummary", "imagewidth", "imageheight", "loglevel", "maxfilesize",
	} {
		_ = viper.BindPFlag(name, pflag.Lookup(name))
	}
}

// setupUsageMessage configures the custom usage message.
func setupUsageMessage() {
	pflag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage of %s:\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "\nTREC Report Generator - fills the official TREC inspection form and renders a visual summary\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		pflag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s                                               # default file names in the current directory\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s --json=data/inspection.json --template=trec.pdf\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s --skipsummary                                  # official report only\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "\nEnvironment Variables:\n")
		fmt.Fprintf(os.Stderr, "  TREC_JSON         Inspection JSON path\n")
		fmt.Fprintf(os.Stderr, "  TREC_TEMPLATE     Form template path\n")
		fmt.Fprintf(os.Stderr, "  TREC_LAYOUT       Pagination layout file\n")
		fmt.Fprintf(os.Stderr, "  TREC_OUTPUT       Official report output path\n")
		fmt.Fprintf(os.Stderr, "  TREC_SUMMARY      Summary report output path\n")
		fmt.Fprintf(os.Stderr, "  TREC_LOGLEVEL     Log level\n")
		fmt.Fprintf(os.Stderr, "  TREC_MAXFILESIZE  Maximum template size\n")
	}
}

// populateConfigFromViper fills the config struct with values from viper.
func populateConfigFromViper(cfg *Config) {
	cfg.JSONPath = viper.GetString("json")
	cfg.TemplatePath = viper.GetString("template")
	cfg.LayoutPath = viper.GetString("layout")
	cfg.OutputPath = viper.GetString("output")
	cfg.SummaryPath = viper.GetString("summary")
	cfg.SkipSummary = viper.GetBool("skipsummary")
	cfg.MaxImageWidth = viper.GetInt("imagewidth")
	cfg.MaxImageHeight = viper.GetInt("imageheight")
	cfg.LogLevel = viper.GetString("loglevel")
	cfg.MaxFileSize = viper.GetInt64("maxfilesize")
}

// Validate checks if the configuration is valid. Missing input files
// are caught here so the run aborts before any output is produced.
func (c *Config) Validate() error {
	if c.JSONPath == "" {
		return errors.New("inspection JSON path cannot be empty")
	}
	if _, err := os.Stat(c.JSONPath); err != nil {
		return fmt.Errorf("cannot access inspection JSON %s: %w", c.JSONPath, err)
	}

	if c.TemplatePath == "" {
		return errors.New("template path cannot be empty")
	}
	if _, err := os.Stat(c.TemplatePath); err != nil {
		return fmt.Errorf("cannot access template %s: %w", c.TemplatePath, err)
	}

	if c.LayoutPath != "" {
		if _, err := os.Stat(c.LayoutPath); err != nil {
			return fmt.Errorf("cannot access layout file %s: %w", c.LayoutPath, err)
		}
	}

	if c.OutputPath == "" {
		return errors.New("output path cannot be empty")
	}
	if !c.SkipSummary && c.SummaryPath == "" {
		return errors.New("summary path cannot be empty")
	}

	if c.MaxFileSize <= 0 {
		return errors.New("maximum file size must be positive")
	}
	if c.MaxImageWidth <= 0 || c.MaxImageHeight <= 0 {
		return errors.New("image dimensions must be positive")
	}

	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLogLevels[c.LogLevel] {
		return fmt.Errorf("invalid log level: %s (must be one of: debug, info, warn, error)", c.LogLevel)
	}

	return nil
}

// IsDebug returns true if debug logging is enabled.
func (c *Config) IsDebug() bool {
	return c.LogLevel == "debug"
}

// String returns a string representation of the configuration.
func (c *Config) String() string {
	return fmt.Sprintf("Config{JSON: %s, Template: %s, Output: %s, Summary: %s, LogLevel: %s}",
		c.JSONPath, c.TemplatePath, c.OutputPath, c.SummaryPath, c.LogLevel)
}
