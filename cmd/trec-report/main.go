package main

import (
	"fmt"
	"os"
	"runtime"

	"github.com/inspectkit/trec-report/internal/config"
	"github.com/inspectkit/trec-report/internal/form"
	"github.com/inspectkit/trec-report/internal/inspection"
	"github.com/inspectkit/trec-report/internal/media"
	"github.com/inspectkit/trec-report/internal/report"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	version   = "dev"     // This will be set by build flags
	buildTime = "unknown" // This will be set by build flags
	gitCommit = "unknown" // This will be set by build flags
)

// newLogger builds the run logger. Debug level switches the encoder to
// the human-readable development layout.
func newLogger(cfg *config.Config) (*zap.Logger, error) {
	zapCfg := zap.NewProductionConfig()
	zapCfg.Encoding = "console"
	zapCfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	switch cfg.LogLevel {
	case "debug":
		zapCfg = zap.NewDevelopmentConfig()
	case "warn":
		zapCfg.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
	case "error":
		zapCfg.Level = zap.NewAtomicLevelAt(zapcore.ErrorLevel)
	}

	return zapCfg.Build()
}

func main() {
	for _, arg := range os.Args[1:] {
		if arg == "-version" || arg == "--version" || arg == "-v" {
			printVersion()
			return
		}
	}

	cfg, err := config.LoadFromFlags()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	if version != "dev" {
		cfg.Version = version
	}

	logger, err := newLogger(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync() //nolint:errcheck // best effort on exit

	if err := run(cfg, logger); err != nil {
		logger.Error("report generation failed", zap.Error(err))
		os.Exit(1)
	}
}

// run executes one report-generation pass: load the record, fill the
// official form, then render the visual summary.
func run(cfg *config.Config, logger *zap.Logger) error {
	if cfg.IsDebug() {
		logger.Debug("starting", zap.String("config", cfg.String()))
	}

	record, err := inspection.Load(cfg.JSONPath)
	if err != nil {
		return err
	}
	stats := record.SummaryStats()
	logger.Info("inspection record loaded",
		zap.String("path", cfg.JSONPath),
		zap.Int("sections", stats.TotalSections),
		zap.Int("lineItems", stats.TotalLineItems),
		zap.Int("photos", stats.TotalPhotos),
		zap.Int("videos", stats.TotalVideos))

	layout := form.DefaultTRECLayout()
	if cfg.LayoutPath != "" {
		layout, err = form.LoadLayout(cfg.LayoutPath)
		if err != nil {
			return err
		}
		logger.Info("using custom page layout",
			zap.String("path", cfg.LayoutPath),
			zap.Int("pages", len(layout.Pages)))
	}

	// Shared between both generators so a photo is downloaded once.
	fetcher := media.NewFetcher(cfg.MaxImageWidth, cfg.MaxImageHeight, logger)

	official := report.NewOfficial(record, layout, fetcher, cfg.MaxFileSize, logger)
	if err := official.Generate(cfg.TemplatePath, cfg.OutputPath); err != nil {
		return err
	}

	if cfg.SkipSummary {
		logger.Info("summary generation skipped")
		return nil
	}

	summary := report.NewSummary(record, fetcher, logger)
	return summary.Generate(cfg.SummaryPath)
}

// printVersion prints version information.
func printVersion() {
	fmt.Printf("TREC Report Generator\n")
	fmt.Printf("Version: %s\n", version)
	fmt.Printf("Build Time: %s\n", buildTime)
	fmt.Printf("Git Commit: %s\n", gitCommit)
	fmt.Printf("Built with: %s\n", runtime.Version())
}
