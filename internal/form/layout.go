// Package form discovers AcroForm fields on the TREC template, decides
// which fields receive which values, and writes the filled form back
// out.
package form

import (
	"encoding/json"
	"fmt"
	"os"
)

// PageRange maps one form page to a half-open index range [Start, End)
// into the globally ordered line-item sequence.
type PageRange struct {
	Page  int `json:"page"` // 1-based page number on the template
	Start int `json:"start"`
	End   int `json:"end"`
}

// Layout is the pagination metadata for one form template revision: the
// ordered list of pages that carry status checkbox groups and the item
// ranges assigned to each. It is a property of the target form, not of
// the data, and is supplied externally so other template revisions can
// be targeted without code changes.
type Layout struct {
	Pages []PageRange `json:"pages"`
}

// DefaultTRECLayout is the layout of the standard TREC REI 7-6 form:
// pages 3 through 6 carry the status checkbox groups.
func DefaultTRECLayout() Layout {
	return Layout{
		Pages: []PageRange{
			{Page: 3, Start: 0, End: 12},
			{Page: 4, Start: 12, End: 22},
			{Page: 5, Start: 22, End: 34},
			{Page: 6, Start: 34, End: 41},
		},
	}
}

// LoadLayout reads a layout description from a JSON file.
func LoadLayout(path string) (Layout, error) {
	var layout Layout
	data, err := os.ReadFile(path)
	if err != nil {
		return layout, fmt.Errorf("failed to read layout file: %w", err)
	}
	if err := json.Unmarshal(data, &layout); err != nil {
		return layout, fmt.Errorf("failed to parse layout file: %w", err)
	}
	if err := layout.Validate(); err != nil {
		return layout, fmt.Errorf("invalid layout file %s: %w", path, err)
	}
	return layout, nil
}

// Validate checks the layout for usable page numbers and ranges.
func (l Layout) Validate() error {
	if len(l.Pages) == 0 {
		return fmt.Errorf("layout has no pages")
	}
	for i, pr := range l.Pages {
		if pr.Page < 1 {
			return fmt.Errorf("page entry %d: page number must be positive, got %d", i, pr.Page)
		}
		if pr.Start < 0 {
			return fmt.Errorf("page entry %d: start offset must not be negative, got %d", i, pr.Start)
		}
		if pr.End < pr.Start {
			return fmt.Errorf("page entry %d: end %d precedes start %d", i, pr.End, pr.Start)
		}
	}
	return nil
}

// ItemsFor slices the global item count to the entries covered by pr,
// clamping to the available range.
func (pr PageRange) ItemsFor(total int) (start, end int) {
	start = pr.Start
	end = pr.End
	if start > total {
		start = total
	}
	if end > total {
		end = total
	}
	return start, end
}
