package form

import (
	"github.com/inspectkit/trec-report/internal/inspection"
)

// checkboxGroupSize is the number of status checkboxes per line item on
// the TREC form: one each for I, NI, NP, D.
const checkboxGroupSize = 4

// commentFieldLimit caps the comment text written into a per-slot free
// text field.
const commentFieldLimit = 200

// statusSlot maps a status code to its position within a checkbox
// group.
var statusSlot = map[string]int{
	inspection.StatusInspected:    0,
	inspection.StatusNotInspected: 1,
	inspection.StatusNotPresent:   2,
	inspection.StatusDeficient:    3,
}

// Plan is the set of field writes a fill run intends to perform:
// checkbox names to switch on and text field values. Building the plan
// is pure; applying it to the PDF is the filler's concern.
type Plan struct {
	checks []string
	texts  map[string]string
	order  []string
}

// NewPlan returns an empty fill plan.
func NewPlan() *Plan {
	return &Plan{texts: make(map[string]string)}
}

// Check records that the named checkbox should be switched on.
func (p *Plan) Check(name string) {
	p.checks = append(p.checks, name)
}

// SetText records a value for the named text field. Later writes to the
// same field win.
func (p *Plan) SetText(name, value string) {
	if _, seen := p.texts[name]; !seen {
		p.order = append(p.order, name)
	}
	p.texts[name] = value
}

// Checks returns the checkbox names to switch on, in plan order.
func (p *Plan) Checks() []string {
	return p.checks
}

// TextWrite is one planned text field assignment.
type TextWrite struct {
	Name  string
	Value string
}

// Texts returns the planned text writes in plan order.
func (p *Plan) Texts() []TextWrite {
	out := make([]TextWrite, 0, len(p.order))
	for _, name := range p.order {
		out = append(out, TextWrite{Name: name, Value: p.texts[name]})
	}
	return out
}

// Len returns the total number of planned writes.
func (p *Plan) Len() int {
	return len(p.checks) + len(p.texts)
}

// FillCheckboxGroup plans the checkbox selection for one line item.
// group holds up to four field names ordered [I, NI, NP, D]. An absent
// or unrecognized status is treated as Inspected. If the selected slot
// is beyond the group's length nothing is planned and 0 is returned;
// otherwise exactly one checkbox is planned and 1 is returned.
func FillCheckboxGroup(plan *Plan, group []string, status string) int {
	slot, ok := statusSlot[status]
	if !ok {
		slot = statusSlot[inspection.StatusInspected]
	}
	if slot >= len(group) {
		return 0
	}
	plan.Check(group[slot])
	return 1
}

// FillPage plans the writes for one form page: checkbox groups are
// zipped positionally with the page's line items, stopping when either
// runs out. When a same-indexed text field exists for a slot and the
// item's first comment is non-empty, the comment text is planned into
// it, truncated to 200 characters.
//
// Returns the number of checkboxes planned and the number of items
// consumed.
func FillPage(plan *Plan, groups [][]string, textFields []string, items []inspection.LineItem) (filled, processed int) {
	for i, group := range groups {
		if i >= len(items) {
			break
		}
		item := items[i]

		filled += FillCheckboxGroup(plan, group, item.InspectionStatus)
		processed++

		if i < len(textFields) {
			if comments := item.SortedComments(); len(comments) > 0 && comments[0].Text != "" {
				plan.SetText(textFields[i], inspection.Truncate(comments[0].Text, commentFieldLimit))
			}
		}
	}
	return filled, processed
}

// BuildPlan assigns the globally ordered line items to the layout's
// pages and plans every resulting field write. Returns the number of
// checkboxes planned and line items consumed across all pages.
func BuildPlan(plan *Plan, fields []Field, layout Layout, items []inspection.LineItem) (filled, processed int) {
	for _, pr := range layout.Pages {
		start, end := pr.ItemsFor(len(items))
		if start == end {
			continue
		}
		groups := CheckboxGroups(fields, pr.Page)
		textFields := TextFields(fields, pr.Page)

		f, p := FillPage(plan, groups, textFields, items[start:end])
		filled += f
		processed += p
	}
	return filled, processed
}

// HeaderPlan plans the header text fields on the form's first page.
// Only fields that exist on the template as text widgets receive a
// value; everything else in the header mapping is ignored.
func HeaderPlan(plan *Plan, fields []Field, header map[string]string) int {
	planned := 0
	for _, f := range fields {
		if f.Page != 1 || f.Type != FieldTypeText {
			continue
		}
		if value, ok := header[f.Name]; ok {
			plan.SetText(f.Name, value)
			planned++
		}
	}
	return planned
}
