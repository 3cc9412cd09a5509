package media

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/inspectkit/trec-report/internal/inspection"
	"github.com/stretchr/testify/assert"
)

func TestValidVideoURL(t *testing.T) {
	assert.True(t, ValidVideoURL("https://example.com/v.mp4"))
	assert.True(t, ValidVideoURL("http://example.com/v.mp4"))
	assert.False(t, ValidVideoURL(""))
	assert.False(t, ValidVideoURL("ftp://example.com/v.mp4"))
	assert.False(t, ValidVideoURL("example.com/v.mp4"))
}

func TestDisplayURL(t *testing.T) {
	assert.Equal(t, "No video URL available", DisplayURL(""))

	short := "https://example.com/video.mp4"
	assert.Equal(t, short, DisplayURL(short))

	long := "https://example.com/" + strings.Repeat("a", 100)
	got := DisplayURL(long)
	assert.Len(t, got, 80)
	assert.True(t, strings.HasSuffix(got, "..."))

	// Multibyte characters are never split.
	multibyte := "https://example.com/" + strings.Repeat("é", 100)
	got = DisplayURL(multibyte)
	assert.True(t, utf8.ValidString(got))
	assert.Len(t, []rune(got), 80)
	assert.True(t, strings.HasSuffix(got, "..."))
}

func TestVideoLinkText(t *testing.T) {
	withDescription := inspection.FlatVideo{Video: inspection.Video{Description: "Attic ductwork"}}
	assert.Equal(t, "Video 1: Attic ductwork", VideoLinkText(withDescription, 1))

	withCaption := inspection.FlatVideo{Video: inspection.Video{Caption: "Furnace startup"}}
	assert.Equal(t, "Video 2: Furnace startup", VideoLinkText(withCaption, 2))

	bare := inspection.FlatVideo{}
	assert.Equal(t, "Video 3", VideoLinkText(bare, 3))
}

func TestCountValidVideos(t *testing.T) {
	videos := []inspection.FlatVideo{
		{Video: inspection.Video{URL: "https://example.com/a.mp4"}},
		{Video: inspection.Video{URL: ""}},
		{Video: inspection.Video{URL: "file:///local.mp4"}},
		{Video: inspection.Video{URL: "http://example.com/b.mp4"}},
	}
	assert.Equal(t, 2, CountValidVideos(videos))
	assert.Equal(t, 0, CountValidVideos(nil))
}
