package form

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"
	"go.uber.org/zap"
)

// FillResult reports what a fill run actually wrote. Planned writes
// whose field no longer matches anything on the template are counted as
// skipped, not failed: a partial report beats no report.
type FillResult struct {
	CheckboxesWritten int
	TextFieldsWritten int
	Skipped           int
}

// Apply writes a fill plan into the template and saves the result to
// outputPath. Individual unmatched fields are skipped and logged; only
// template read and output write failures are errors.
func Apply(templatePath, outputPath string, plan *Plan, logger *zap.Logger) (*FillResult, error) {
	f, err := os.Open(templatePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open template: %w", err)
	}
	defer f.Close()

	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed

	ctx, err := api.ReadContext(f, conf)
	if err != nil {
		return nil, fmt.Errorf("failed to read PDF context: %w", err)
	}
	if err := ctx.EnsurePageCount(); err != nil {
		return nil, fmt.Errorf("failed to ensure page count: %w", err)
	}

	checks := make(map[string]bool, len(plan.Checks()))
	for _, name := range plan.Checks() {
		checks[name] = false
	}
	texts := make(map[string]string, len(plan.Texts()))
	written := make(map[string]bool, len(plan.Texts()))
	for _, t := range plan.Texts() {
		texts[t.Name] = t.Value
	}

	result := &FillResult{}

	err = walkFields(ctx, func(name string, dict types.Dict) {
		if _, planned := checks[name]; planned && !checks[name] {
			setCheckbox(ctx, dict)
			checks[name] = true
			result.CheckboxesWritten++
			return
		}
		if value, planned := texts[name]; planned && !written[name] {
			setTextValue(dict, value)
			written[name] = true
			result.TextFieldsWritten++
		}
	})
	if err != nil {
		return nil, err
	}

	for name, done := range checks {
		if !done {
			logger.Warn("checkbox field not found on template", zap.String("field", name))
			result.Skipped++
		}
	}
	for name := range texts {
		if !written[name] {
			logger.Warn("text field not found on template", zap.String("field", name))
			result.Skipped++
		}
	}

	if err := setNeedAppearances(ctx); err != nil {
		return nil, err
	}

	if err := api.WriteContextFile(ctx, outputPath); err != nil {
		return nil, fmt.Errorf("failed to write filled form: %w", err)
	}
	return result, nil
}

// setCheckbox switches a checkbox field on, mirroring the on state into
// the widget appearance so viewers show the mark without regenerating
// appearances. The on state is the field's own export value, not a
// fixed name; TREC templates use Yes but other forms differ.
func setCheckbox(ctx *model.Context, dict types.Dict) {
	on := checkboxOnState(ctx, dict)
	dict["V"] = on
	dict["AS"] = on

	if kidsObj, found := dict.Find("Kids"); found {
		if kids, err := ctx.DereferenceArray(kidsObj); err == nil {
			for _, kid := range kids {
				if kidDict, err := ctx.DereferenceDict(kid); err == nil && kidDict != nil {
					kidOn := on
					if name, ok := onStateFromAppearance(ctx, kidDict); ok {
						kidOn = name
					}
					kidDict["AS"] = kidOn
				}
			}
		}
	}
}

// checkboxOnState derives the checkbox's on-state name from its normal
// appearance states, consulting the widget kids when the field dict
// carries no appearance of its own. Falls back to Yes.
func checkboxOnState(ctx *model.Context, dict types.Dict) types.Name {
	if name, ok := onStateFromAppearance(ctx, dict); ok {
		return name
	}
	if kidsObj, found := dict.Find("Kids"); found {
		if kids, err := ctx.DereferenceArray(kidsObj); err == nil {
			for _, kid := range kids {
				if kidDict, err := ctx.DereferenceDict(kid); err == nil && kidDict != nil {
					if name, ok := onStateFromAppearance(ctx, kidDict); ok {
						return name
					}
				}
			}
		}
	}
	return types.Name("Yes")
}

// onStateFromAppearance reads the widget's /AP /N dictionary and picks
// its on state.
func onStateFromAppearance(ctx *model.Context, dict types.Dict) (types.Name, bool) {
	apObj, found := dict.Find("AP")
	if !found {
		return "", false
	}
	apDict, err := ctx.DereferenceDict(apObj)
	if err != nil || apDict == nil {
		return "", false
	}
	nObj, found := apDict.Find("N")
	if !found {
		return "", false
	}
	nDict, err := ctx.DereferenceDict(nObj)
	if err != nil || nDict == nil {
		return "", false
	}
	return onStateName(nDict)
}

// onStateName picks the non-Off state key from a normal appearance
// dictionary, sorted so multiple on states resolve deterministically.
func onStateName(nDict types.Dict) (types.Name, bool) {
	var states []string
	for state := range nDict {
		if state != "Off" {
			states = append(states, state)
		}
	}
	if len(states) == 0 {
		return "", false
	}
	sort.Strings(states)
	return types.Name(states[0]), true
}

// setTextValue sets a text field's value and drops any stale appearance
// stream; NeedAppearances makes the viewer regenerate it.
func setTextValue(dict types.Dict, value string) {
	dict["V"] = types.StringLiteral(escapePDFString(value))
	delete(dict, "AP")
}

// setNeedAppearances flags the AcroForm so viewers rebuild field
// appearances from the new values.
func setNeedAppearances(ctx *model.Context) error {
	rootDict, err := ctx.Catalog()
	if err != nil {
		return fmt.Errorf("failed to get catalog: %w", err)
	}
	acroFormObj, found := rootDict.Find("AcroForm")
	if !found {
		return nil
	}
	acroFormDict, err := ctx.DereferenceDict(acroFormObj)
	if err != nil {
		return fmt.Errorf("failed to dereference AcroForm: %w", err)
	}
	if acroFormDict != nil {
		acroFormDict["NeedAppearances"] = types.Boolean(true)
	}
	return nil
}

// escapePDFString escapes the characters with meaning inside a PDF
// literal string.
func escapePDFString(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `(`, `\(`)
	s = strings.ReplaceAll(s, `)`, `\)`)
	return s
}
