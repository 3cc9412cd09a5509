package inspection

// Status codes as they appear in the source document.
const (
	StatusInspected    = "I"
	StatusNotInspected = "NI"
	StatusNotPresent   = "NP"
	StatusDeficient    = "D"
)

// statusLabels maps status codes to their display labels.
var statusLabels = map[string]string{
	StatusInspected:    "Inspected",
	StatusNotInspected: "Not Inspected",
	StatusNotPresent:   "Not Present",
	StatusDeficient:    "Deficient",
}

// StatusLabel converts a status code to its display label. An empty
// code yields NotFound; an unrecognized code is passed through raw.
//
// Note the defaulting here deliberately differs from CheckboxStates:
// labels pass unknown codes through, checkbox selection treats absence
// as Inspected and unknown codes as no selection. Both behaviors are
// pinned by tests.
func StatusLabel(code string) string {
	if code == "" {
		return NotFound
	}
	if label, ok := statusLabels[code]; ok {
		return label
	}
	return code
}

// CheckboxStates is a one-hot selection across the four TREC status
// checkboxes.
type CheckboxStates struct {
	I  bool
	NI bool
	NP bool
	D  bool
}

// StatusCheckboxes returns the checkbox selection for a status code.
// Known codes select their own box. An absent code selects Inspected so
// the form is never left all blank. An unrecognized code selects
// nothing.
func StatusCheckboxes(code string) CheckboxStates {
	switch code {
	case StatusInspected, "":
		return CheckboxStates{I: true}
	case StatusNotInspected:
		return CheckboxStates{NI: true}
	case StatusNotPresent:
		return CheckboxStates{NP: true}
	case StatusDeficient:
		return CheckboxStates{D: true}
	default:
		return CheckboxStates{}
	}
}

// ExactlyOne reports whether exactly one checkbox is selected.
func (c CheckboxStates) ExactlyOne() bool {
	n := 0
	for _, b := range []bool{c.I, c.NI, c.NP, c.D} {
		if b {
			n++
		}
	}
	return n == 1
}
