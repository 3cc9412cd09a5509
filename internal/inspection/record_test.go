package inspection

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleJSON = `{
	"inspection": {
		"clientInfo": {"name": "Jane Buyer"},
		"inspector": {"name": "Sam Inspector"},
		"address": {
			"fullAddress": "123 Main St, Austin, TX 78701",
			"street": "123 Main St",
			"city": "Austin",
			"state": "TX",
			"zipcode": "78701",
			"propertyInfo": {"squareFootage": 2150}
		},
		"schedule": {"date": 1700000000000},
		"sections": [
			{
				"name": "Structural Systems",
				"order": 1,
				"lineItems": [
					{
						"name": "Foundations",
						"order": 1,
						"inspectionStatus": "D",
						"isDeficient": true,
						"comments": [
							{
								"text": "Cracking observed at the northeast corner of the slab.",
								"order": 1,
								"photos": [{"url": "https://example.com/crack.jpg"}],
								"videos": []
							}
						]
					},
					{"name": "Walls", "order": 2, "inspectionStatus": "I", "comments": []}
				]
			},
			{
				"name": "Electrical Systems",
				"order": 2,
				"lineItems": [
					{"name": "Service Panels", "order": 1, "inspectionStatus": "NI", "comments": []}
				]
			}
		]
	},
	"account": {"name": "Acme Inspections"}
}`

func mustParse(t *testing.T, data string) *Record {
	t.Helper()
	r, err := Parse([]byte(data))
	require.NoError(t, err)
	return r
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.json"))
	require.Error(t, err)
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "inspection.json")
	require.NoError(t, os.WriteFile(path, []byte(sampleJSON), 0o600))

	r, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "Jane Buyer", r.Field("clientInfo", "name"))
}

func TestFieldResolution(t *testing.T) {
	r := mustParse(t, sampleJSON)

	tests := []struct {
		name string
		path []string
		want string
	}{
		{"present leaf", []string{"clientInfo", "name"}, "Jane Buyer"},
		{"numeric leaf", []string{"address", "propertyInfo", "squareFootage"}, "2150"},
		{"missing key", []string{"clientInfo", "phone"}, NotFound},
		{"missing subtree", []string{"billing", "address"}, NotFound},
		{"traversal through non-mapping", []string{"clientInfo", "name", "first"}, NotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, r.Field(tt.path...))
		})
	}
}

func TestFieldNeverPanics(t *testing.T) {
	r := mustParse(t, `{"inspection": {"a": null, "b": [1, 2], "c": ""}}`)

	assert.Equal(t, NotFound, r.Field("a"))
	assert.Equal(t, NotFound, r.Field("a", "deeper"))
	assert.Equal(t, NotFound, r.Field("b", "key"))
	assert.Equal(t, NotFound, r.Field("c"), "empty string resolves to the sentinel")
	assert.Equal(t, "fallback", r.FieldOr("fallback", "c"))
}

func TestFieldOnEmptyDocument(t *testing.T) {
	r := mustParse(t, `{}`)
	assert.Equal(t, NotFound, r.Field("clientInfo", "name"))
}

func TestFormatTimestamp(t *testing.T) {
	assert.Equal(t, NotFound, FormatTimestamp(0))
	assert.Equal(t, NotFound, FormatTimestamp(-5))

	got := FormatTimestamp(1700000000000) // 2023-11-14 UTC
	assert.Regexp(t, `^\d{2}/\d{2}/2023$`, got)
}

func TestTimestampField(t *testing.T) {
	r := mustParse(t, sampleJSON)
	assert.Regexp(t, `^\d{2}/\d{2}/\d{4}$`, r.TimestampField("schedule", "date"))

	r2 := mustParse(t, `{"inspection": {"schedule": {"date": 0, "note": "tbd"}}}`)
	assert.Equal(t, NotFound, r2.TimestampField("schedule", "date"), "zero timestamp yields the sentinel")
	assert.Equal(t, NotFound, r2.TimestampField("schedule", "note"), "non-numeric timestamp yields the sentinel")
	assert.Equal(t, NotFound, r2.TimestampField("schedule", "missing"))
}

func TestHeaderFields(t *testing.T) {
	r := mustParse(t, sampleJSON)
	header := r.HeaderFields()

	assert.Equal(t, "Jane Buyer", header["Name of Client"])
	assert.Equal(t, "123 Main St, Austin, TX 78701", header["Address of Inspected Property"])
	assert.Equal(t, "Sam Inspector", header["Name of Inspector"])

	// No source data exists for these; they are always the sentinel.
	assert.Equal(t, NotFound, header["TREC License"])
	assert.Equal(t, NotFound, header["TREC License_2"])
	assert.Equal(t, NotFound, header["Name of Sponsor if applicable"])
}

func TestPropertyInfo(t *testing.T) {
	r := mustParse(t, sampleJSON)
	info := r.PropertyInfo()

	assert.Equal(t, "Austin", info["city"])
	assert.Equal(t, "2150", info["square_footage"])
}

func TestSectionsSortedStably(t *testing.T) {
	r := mustParse(t, `{"inspection": {"sections": [
		{"name": "C", "order": 2},
		{"name": "A", "order": 1},
		{"name": "B", "order": 1},
		{"name": "D", "order": 2}
	]}}`)

	var names []string
	for _, s := range r.Sections() {
		names = append(names, s.Name)
	}
	// Equal order keys keep their original relative position.
	assert.Equal(t, []string{"A", "B", "C", "D"}, names)
}

func TestLineItemAndCommentSortStability(t *testing.T) {
	section := Section{
		LineItems: []LineItem{
			{Name: "second", Order: 5},
			{Name: "first", Order: 1},
			{Name: "third", Order: 5},
		},
	}
	items := section.SortedLineItems()
	require.Len(t, items, 3)
	assert.Equal(t, "first", items[0].Name)
	assert.Equal(t, "second", items[1].Name)
	assert.Equal(t, "third", items[2].Name)

	item := LineItem{
		Comments: []Comment{
			{Text: "b", Order: 2},
			{Text: "a", Order: 2},
		},
	}
	comments := item.SortedComments()
	assert.Equal(t, "b", comments[0].Text, "tie keeps original position")
	assert.Equal(t, "a", comments[1].Text)
}

func TestAllLineItemsGlobalOrder(t *testing.T) {
	r := mustParse(t, sampleJSON)

	var names []string
	for _, item := range r.AllLineItems() {
		names = append(names, item.Name)
	}
	assert.Equal(t, []string{"Foundations", "Walls", "Service Panels"}, names)
}
