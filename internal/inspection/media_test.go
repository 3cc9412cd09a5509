package inspection

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAllMediaFlattening(t *testing.T) {
	r := mustParse(t, `{"inspection": {"sections": [
		{
			"name": "Plumbing",
			"order": 2,
			"lineItems": [{
				"name": "Water Heater",
				"order": 1,
				"comments": [{
					"text": "Relief valve discharge pipe terminates too high.",
					"order": 1,
					"photos": [{"url": "https://example.com/wh1.jpg", "caption": "valve"}],
					"videos": [{"url": "https://example.com/wh.mp4"}]
				}]
			}]
		},
		{
			"name": "Roof",
			"order": 1,
			"lineItems": [{
				"name": "Coverings",
				"order": 1,
				"comments": [{
					"text": "Missing shingles on south slope.",
					"order": 1,
					"photos": [
						{"url": "https://example.com/roof1.jpg"},
						{"url": "https://example.com/roof2.jpg"}
					]
				}]
			}]
		}
	]}}`)

	photos, videos := r.AllMedia()
	require.Len(t, photos, 3)
	require.Len(t, videos, 1)

	// Sections are walked in sorted order, so Roof media comes first.
	assert.Equal(t, "https://example.com/roof1.jpg", photos[0].URL)
	assert.Equal(t, "https://example.com/roof2.jpg", photos[1].URL)
	assert.Equal(t, "https://example.com/wh1.jpg", photos[2].URL)

	assert.Equal(t, "Roof", photos[0].SectionName)
	assert.Equal(t, "Coverings", photos[0].LineItemName)
	assert.Equal(t, "Missing shingles on south slope.", photos[0].CommentText)

	assert.Equal(t, "Plumbing", videos[0].SectionName)
	assert.Equal(t, "Water Heater", videos[0].LineItemName)
	assert.Equal(t, "valve", photos[2].Caption)
}

func TestAllMediaCommentExcerptCapped(t *testing.T) {
	long := strings.Repeat("x", 250)
	r := mustParse(t, `{"inspection": {"sections": [{
		"name": "S", "order": 1,
		"lineItems": [{"name": "L", "order": 1, "comments": [{
			"text": "`+long+`",
			"order": 1,
			"photos": [{"url": "https://example.com/p.jpg"}]
		}]}]
	}]}}`)

	photos, _ := r.AllMedia()
	require.Len(t, photos, 1)
	assert.Len(t, photos[0].CommentText, 100)
}

func TestAllMediaUnknownNames(t *testing.T) {
	r := mustParse(t, `{"inspection": {"sections": [{
		"order": 1,
		"lineItems": [{"order": 1, "comments": [{
			"order": 1,
			"photos": [{"url": "https://example.com/p.jpg"}]
		}]}]
	}]}}`)

	photos, _ := r.AllMedia()
	require.Len(t, photos, 1)
	assert.Equal(t, "Unknown", photos[0].SectionName)
	assert.Equal(t, "Unknown", photos[0].LineItemName)
}

func TestAllMediaCountsMatchStats(t *testing.T) {
	r := mustParse(t, sampleJSON)
	photos, videos := r.AllMedia()
	stats := r.SummaryStats()

	assert.Equal(t, stats.TotalPhotos, len(photos))
	assert.Equal(t, stats.TotalVideos, len(videos))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "abc", Truncate("abc", 5))
	assert.Equal(t, "abc", Truncate("abc", 3))
	assert.Equal(t, "ab", Truncate("abc", 2))
	assert.Equal(t, "", Truncate("abc", 0))
	assert.Equal(t, "", Truncate("abc", -1))

	// Rune-safe: multibyte characters are never split.
	assert.Equal(t, "héll", Truncate("héllo", 4))
}
