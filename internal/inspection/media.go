package inspection

// commentExcerptLimit caps the comment text carried on flattened media.
const commentExcerptLimit = 100

// FlatPhoto is a photo annotated with its originating section and line
// item. Downstream consumers receive these denormalized records, never
// the raw Photo.
type FlatPhoto struct {
	Photo
	SectionName  string
	LineItemName string
	CommentText  string
}

// FlatVideo is a video annotated with its originating section and line
// item.
type FlatVideo struct {
	Video
	SectionName  string
	LineItemName string
	CommentText  string
}

// AllMedia flattens every photo and video in the document, walking
// sections, line items, and comments in sorted order so the output is
// deterministic for a given input. Each entry carries its section name,
// line-item name, and a comment excerpt capped at 100 characters.
func (r *Record) AllMedia() ([]FlatPhoto, []FlatVideo) {
	var photos []FlatPhoto
	var videos []FlatVideo

	for _, section := range r.Sections() {
		sectionName := nameOrUnknown(section.Name)
		for _, item := range section.SortedLineItems() {
			itemName := nameOrUnknown(item.Name)
			for _, comment := range item.SortedComments() {
				excerpt := Truncate(comment.Text, commentExcerptLimit)
				for _, photo := range comment.Photos {
					photos = append(photos, FlatPhoto{
						Photo:        photo,
						SectionName:  sectionName,
						LineItemName: itemName,
						CommentText:  excerpt,
					})
				}
				for _, video := range comment.Videos {
					videos = append(videos, FlatVideo{
						Video:        video,
						SectionName:  sectionName,
						LineItemName: itemName,
						CommentText:  excerpt,
					})
				}
			}
		}
	}
	return photos, videos
}

// Truncate caps s at n characters (runes, not bytes).
func Truncate(s string, n int) string {
	if n <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}

func nameOrUnknown(name string) string {
	if name == "" {
		return "Unknown"
	}
	return name
}
