// Package report assembles the two output documents: the form-filled
// official TREC report and the generated visual summary.
package report

import (
	"fmt"

	"github.com/inspectkit/trec-report/internal/form"
	"github.com/inspectkit/trec-report/internal/inspection"
	"github.com/inspectkit/trec-report/internal/media"
	"go.uber.org/zap"
)

// Official generates the form-filled TREC report from a blank template,
// followed by the appended detail, photo, and video pages.
type Official struct {
	record      *inspection.Record
	layout      form.Layout
	fetcher     *media.Fetcher
	maxFileSize int64
	logger      *zap.Logger
}

// NewOfficial creates an Official report generator. The fetcher
// downloads the photos embedded on the appended pages.
func NewOfficial(record *inspection.Record, layout form.Layout, fetcher *media.Fetcher, maxFileSize int64, logger *zap.Logger) *Official {
	return &Official{
		record:      record,
		layout:      layout,
		fetcher:     fetcher,
		maxFileSize: maxFileSize,
		logger:      logger,
	}
}

// Generate validates the template, plans every field write, saves the
// filled form to outputPath, then appends the inspection details, photo,
// and video pages. Individual field mismatches and photo fetch failures
// degrade to skips; template and output I/O failures abort.
func (g *Official) Generate(templatePath, outputPath string) error {
	if err := form.ValidateTemplate(templatePath, g.maxFileSize); err != nil {
		return fmt.Errorf("template validation failed: %w", err)
	}

	fields, err := form.DiscoverFields(templatePath)
	if err != nil {
		return fmt.Errorf("field discovery failed: %w", err)
	}
	g.logger.Info("discovered template fields", zap.Int("fields", len(fields)))

	plan := form.NewPlan()

	headerPlanned := form.HeaderPlan(plan, fields, g.record.HeaderFields())
	g.logger.Info("planned header fields", zap.Int("fields", headerPlanned))

	items := g.record.AllLineItems()
	filled, processed := form.BuildPlan(plan, fields, g.layout, items)
	g.logger.Info("planned status checkboxes",
		zap.Int("lineItems", len(items)),
		zap.Int("processed", processed),
		zap.Int("checkboxes", filled))

	result, err := form.Apply(templatePath, outputPath, plan, g.logger)
	if err != nil {
		return fmt.Errorf("form fill failed: %w", err)
	}

	g.logger.Info("form fields written",
		zap.Int("checkboxes", result.CheckboxesWritten),
		zap.Int("textFields", result.TextFieldsWritten),
		zap.Int("skipped", result.Skipped))

	if err := g.appendContent(outputPath); err != nil {
		return err
	}

	g.logger.Info("official report written", zap.String("path", outputPath))
	return nil
}
