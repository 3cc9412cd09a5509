package inspection

import "sort"

// SummaryStats aggregates counts over the whole document. Items whose
// status is absent or unrecognized increment none of the four status
// counters; only the form checkbox filler defaults absence to
// Inspected.
type SummaryStats struct {
	TotalSections  int
	TotalLineItems int
	Inspected      int
	NotInspected   int
	NotPresent     int
	Deficient      int
	TotalPhotos    int
	TotalVideos    int
}

// SummaryStats computes counts in a single pass over sections and line
// items. Photo and video totals are plain length sums over each
// comment's media lists and agree with the lengths of AllMedia output.
func (r *Record) SummaryStats() SummaryStats {
	sections := r.Sections()
	stats := SummaryStats{TotalSections: len(sections)}

	for _, section := range sections {
		items := section.SortedLineItems()
		stats.TotalLineItems += len(items)

		for _, item := range items {
			switch item.InspectionStatus {
			case StatusInspected:
				stats.Inspected++
			case StatusNotInspected:
				stats.NotInspected++
			case StatusNotPresent:
				stats.NotPresent++
			case StatusDeficient:
				stats.Deficient++
			}

			for _, comment := range item.Comments {
				stats.TotalPhotos += len(comment.Photos)
				stats.TotalVideos += len(comment.Videos)
			}
		}
	}
	return stats
}

// SectionIssueCount pairs a section name with its number of deficient
// items.
type SectionIssueCount struct {
	Name   string
	Issues int
}

// SectionIssues returns the sections that contain at least one
// deficient item (status D or the isDeficient flag), sorted by issue
// count descending. The sort is stable so sections with equal counts
// keep document order.
func (r *Record) SectionIssues() []SectionIssueCount {
	var issues []SectionIssueCount
	for _, section := range r.Sections() {
		n := 0
		for _, item := range section.SortedLineItems() {
			if item.InspectionStatus == StatusDeficient || item.IsDeficient {
				n++
			}
		}
		if n > 0 {
			issues = append(issues, SectionIssueCount{
				Name:   nameOrUnknown(section.Name),
				Issues: n,
			})
		}
	}
	sort.SliceStable(issues, func(i, j int) bool {
		return issues[i].Issues > issues[j].Issues
	})
	return issues
}

// DeficientItem is a digest of one deficient line item for the summary
// report.
type DeficientItem struct {
	Section string
	Item    string
	Comment string
}

// DeficientItems lists every deficient line item in display order with
// its first comment's text, or a placeholder when no comment exists.
func (r *Record) DeficientItems() []DeficientItem {
	var items []DeficientItem
	for _, section := range r.Sections() {
		for _, item := range section.SortedLineItems() {
			if item.InspectionStatus != StatusDeficient && !item.IsDeficient {
				continue
			}
			comment := "No details provided"
			if comments := item.SortedComments(); len(comments) > 0 && comments[0].Text != "" {
				comment = comments[0].Text
			}
			items = append(items, DeficientItem{
				Section: nameOrUnknown(section.Name),
				Item:    nameOrUnknown(item.Name),
				Comment: comment,
			})
		}
	}
	return items
}
