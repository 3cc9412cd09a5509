// Package inspection loads a home-inspection record from its JSON source
// document and exposes the derived views the report generators consume:
// sorted sections and line items, flattened media, status normalization,
// and summary statistics.
package inspection

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"time"
)

// NotFound is the sentinel substituted whenever a requested field cannot
// be resolved from the source document. Call sites must reference this
// constant rather than repeating the literal.
const NotFound = "Data not found in test data"

// Record is an inspection document loaded from JSON. The tree is read
// once at load time and never mutated; all derived views are computed
// per call.
type Record struct {
	inspection map[string]any
	account    map[string]any
	sections   []Section
}

// document mirrors the typed portion of the source JSON.
type document struct {
	Inspection struct {
		Sections []Section `json:"sections"`
	} `json:"inspection"`
}

// Section is a named group of line items. Order determines display
// sequence among siblings.
type Section struct {
	Name      string     `json:"name"`
	Order     int        `json:"order"`
	LineItems []LineItem `json:"lineItems"`
}

// LineItem is a single inspected item within a section. An empty
// InspectionStatus means no status was recorded.
type LineItem struct {
	Name             string    `json:"name"`
	Order            int       `json:"order"`
	InspectionStatus string    `json:"inspectionStatus"`
	IsDeficient      bool      `json:"isDeficient"`
	Comments         []Comment `json:"comments"`
}

// Comment is inspector commentary attached to a line item, carrying the
// item's photos and videos.
type Comment struct {
	Text   string  `json:"text"`
	Order  int     `json:"order"`
	Photos []Photo `json:"photos"`
	Videos []Video `json:"videos"`
}

// Photo is an image reference recorded against a comment.
type Photo struct {
	URL         string `json:"url"`
	Description string `json:"description"`
	Caption     string `json:"caption"`
	FileName    string `json:"fileName"`
	FileType    string `json:"fileType"`
	Timestamp   int64  `json:"timestamp"`
}

// Video is a video reference recorded against a comment. Videos are
// rendered as links, never embedded.
type Video struct {
	URL         string `json:"url"`
	Description string `json:"description"`
	Caption     string `json:"caption"`
	FileName    string `json:"fileName"`
	FileType    string `json:"fileType"`
	Timestamp   int64  `json:"timestamp"`
}

// Load reads and parses the inspection JSON document at path.
// A missing or unparseable file is the only fatal condition; malformed
// or absent fields inside a well-formed document degrade to NotFound at
// access time.
func Load(path string) (*Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read inspection data: %w", err)
	}
	return Parse(data)
}

// Parse builds a Record from raw JSON bytes.
func Parse(data []byte) (*Record, error) {
	// Generic tree for path lookups; UseNumber keeps numeric leaves
	// verbatim instead of forcing float64 formatting.
	var raw map[string]any
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("failed to parse inspection data: %w", err)
	}

	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse inspection sections: %w", err)
	}

	r := &Record{
		inspection: asMap(raw["inspection"]),
		account:    asMap(raw["account"]),
		sections:   doc.Inspection.Sections,
	}
	if r.inspection == nil {
		r.inspection = map[string]any{}
	}
	if r.account == nil {
		r.account = map[string]any{}
	}
	return r, nil
}

// Field resolves a nested value under the inspection subtree, returning
// NotFound when any step of the path is missing, not a mapping, nil, or
// when the final value is the empty string.
func (r *Record) Field(path ...string) string {
	return r.FieldOr(NotFound, path...)
}

// FieldOr is Field with a caller-supplied default.
func (r *Record) FieldOr(def string, path ...string) string {
	var obj any = r.inspection
	for _, key := range path {
		m, ok := obj.(map[string]any)
		if !ok {
			return def
		}
		obj, ok = m[key]
		if !ok || obj == nil {
			return def
		}
	}
	s := stringify(obj)
	if s == "" {
		return def
	}
	return s
}

// lookup resolves a nested value without string conversion. Returns nil
// when the path cannot be followed.
func (r *Record) lookup(path ...string) any {
	var obj any = r.inspection
	for _, key := range path {
		m, ok := obj.(map[string]any)
		if !ok {
			return nil
		}
		obj, ok = m[key]
		if !ok {
			return nil
		}
	}
	return obj
}

// FormatTimestamp converts a millisecond Unix timestamp to MM/DD/YYYY.
// Zero or negative values yield NotFound.
func FormatTimestamp(ms int64) string {
	if ms <= 0 {
		return NotFound
	}
	return time.UnixMilli(ms).Format("01/02/2006")
}

// TimestampField resolves a millisecond timestamp at path and formats
// it as MM/DD/YYYY. Missing, zero, or non-numeric values yield NotFound.
func (r *Record) TimestampField(path ...string) string {
	v := r.lookup(path...)
	num, ok := v.(json.Number)
	if !ok {
		return NotFound
	}
	ms, err := num.Int64()
	if err != nil {
		return NotFound
	}
	return FormatTimestamp(ms)
}

// HeaderFields returns the fixed mapping of TREC header form-field
// names to their values. The license and sponsor fields have no source
// in the inspection data and are always NotFound; this is intentional.
func (r *Record) HeaderFields() map[string]string {
	return map[string]string{
		"Name of Client":                r.Field("clientInfo", "name"),
		"Date of Inspection":            r.TimestampField("schedule", "date"),
		"Address of Inspected Property": r.Field("address", "fullAddress"),
		"Name of Inspector":             r.Field("inspector", "name"),
		"TREC License":                  NotFound,
		"Name of Sponsor if applicable": NotFound,
		"TREC License_2":                NotFound,
	}
}

// PropertyInfo returns the address breakdown used by the summary cover.
func (r *Record) PropertyInfo() map[string]string {
	return map[string]string{
		"street":         r.Field("address", "street"),
		"city":           r.Field("address", "city"),
		"state":          r.Field("address", "state"),
		"zipcode":        r.Field("address", "zipcode"),
		"square_footage": r.Field("address", "propertyInfo", "squareFootage"),
	}
}

// Sections returns the inspection's sections sorted ascending by Order.
// The sort is stable: sections sharing an Order keep their original
// relative position.
func (r *Record) Sections() []Section {
	sections := make([]Section, len(r.sections))
	copy(sections, r.sections)
	sort.SliceStable(sections, func(i, j int) bool {
		return sections[i].Order < sections[j].Order
	})
	return sections
}

// SortedLineItems returns the section's line items sorted stably by Order.
func (s Section) SortedLineItems() []LineItem {
	items := make([]LineItem, len(s.LineItems))
	copy(items, s.LineItems)
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Order < items[j].Order
	})
	return items
}

// SortedComments returns the line item's comments sorted stably by Order.
func (li LineItem) SortedComments() []Comment {
	comments := make([]Comment, len(li.Comments))
	copy(comments, li.Comments)
	sort.SliceStable(comments, func(i, j int) bool {
		return comments[i].Order < comments[j].Order
	})
	return comments
}

// AllLineItems returns every line item across all sections in global
// display order: section order first, then line-item order within each
// section. This is the sequence the form paginator consumes.
func (r *Record) AllLineItems() []LineItem {
	var items []LineItem
	for _, section := range r.Sections() {
		items = append(items, section.SortedLineItems()...)
	}
	return items
}

// asMap narrows an any to a JSON object, or nil.
func asMap(v any) map[string]any {
	m, _ := v.(map[string]any)
	return m
}

// stringify renders a JSON leaf the way the report displays it.
func stringify(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case json.Number:
		return t.String()
	case bool:
		if t {
			return "true"
		}
		return "false"
	default:
		return fmt.Sprintf("%v", t)
	}
}
