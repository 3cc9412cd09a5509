package media

import (
	"fmt"
	"strings"

	"github.com/inspectkit/trec-report/internal/inspection"
)

// displayURLLimit caps a URL rendered as plain text.
const displayURLLimit = 80

// ValidVideoURL reports whether a video URL is usable as a link target.
func ValidVideoURL(url string) bool {
	return strings.HasPrefix(url, "http://") || strings.HasPrefix(url, "https://")
}

// DisplayURL truncates very long URLs for rendering. Rune-safe:
// multibyte characters are never split.
func DisplayURL(url string) string {
	if url == "" {
		return "No video URL available"
	}
	if len([]rune(url)) > displayURLLimit {
		return inspection.Truncate(url, displayURLLimit-3) + "..."
	}
	return url
}

// VideoLinkText builds the descriptive label for a video link, using
// the video's description or caption when present.
func VideoLinkText(v inspection.FlatVideo, index int) string {
	description := v.Description
	if description == "" {
		description = v.Caption
	}
	if description != "" {
		return fmt.Sprintf("Video %d: %s", index, description)
	}
	return fmt.Sprintf("Video %d", index)
}

// CountValidVideos counts the videos with a usable link target.
func CountValidVideos(videos []inspection.FlatVideo) int {
	n := 0
	for _, v := range videos {
		if ValidVideoURL(v.URL) {
			n++
		}
	}
	return n
}
