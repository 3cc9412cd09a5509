package report

import (
	"bytes"
	"fmt"

	"github.com/inspectkit/trec-report/internal/inspection"
	"github.com/inspectkit/trec-report/internal/media"
	"github.com/jung-kurt/gofpdf"
	"go.uber.org/zap"
)

const (
	pageMargin = 54 // 0.75 inch in points

	galleryPhotosPerPage = 4
	galleryMaxPhotos     = 16
	galleryPhotoWidth    = 300
	galleryPhotoHeight   = 150

	deficiencyMaxItems   = 15
	deficiencyTextLimit  = 120
	videoMaxLinks        = 20
	sectionIssuesMax     = 8
	coverValueLimit      = 60
	videoTitleLimit      = 60
)

// Summary generates the supplementary visual report: cover, statistics
// dashboard, deficiency digest, photo gallery, and video links.
type Summary struct {
	record  *inspection.Record
	fetcher *media.Fetcher
	logger  *zap.Logger
}

// NewSummary creates a Summary generator.
func NewSummary(record *inspection.Record, fetcher *media.Fetcher, logger *zap.Logger) *Summary {
	return &Summary{
		record:  record,
		fetcher: fetcher,
		logger:  logger,
	}
}

// Generate renders the summary PDF to outputPath. Photo fetch failures
// skip the single photo; only output write failures are errors.
func (g *Summary) Generate(outputPath string) error {
	pdf := gofpdf.New("P", "pt", "Letter", "")
	pdf.SetMargins(pageMargin, pageMargin, pageMargin)
	pdf.SetAutoPageBreak(false, pageMargin)

	g.coverPage(pdf)
	g.statsPage(pdf)
	g.deficienciesPage(pdf)
	g.photoGallery(pdf)
	g.videoPage(pdf)

	if err := pdf.OutputFileAndClose(outputPath); err != nil {
		return fmt.Errorf("failed to write summary report: %w", err)
	}
	g.logger.Info("summary report written", zap.String("path", outputPath))
	return nil
}

func (g *Summary) coverPage(pdf *gofpdf.Fpdf) {
	pdf.AddPage()
	pageW, _ := pdf.GetPageSize()

	// Title banner
	pdf.SetFillColor(26, 77, 153)
	pdf.Rect(0, 0, pageW, 216, "F")

	pdf.SetTextColor(255, 255, 255)
	pdf.SetFont("Helvetica", "B", 36)
	pdf.SetXY(0, 80)
	pdf.CellFormat(pageW, 40, "HOME INSPECTION", "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "B", 28)
	pdf.CellFormat(pageW, 32, "EXECUTIVE SUMMARY", "", 1, "C", false, 0, "")

	// Property information
	header := g.record.HeaderFields()
	info := g.record.PropertyInfo()
	pdf.SetTextColor(0, 0, 0)
	pdf.SetFont("Helvetica", "B", 14)
	y := 290.0
	pdf.Text(pageMargin, y, "Property Information")
	y += 30

	rows := []struct{ label, value string }{
		{"Address:", header["Address of Inspected Property"]},
		{"Client:", header["Name of Client"]},
		{"Inspector:", header["Name of Inspector"]},
		{"Date:", header["Date of Inspection"]},
		{"Square Footage:", info["square_footage"]},
	}
	for _, row := range rows {
		pdf.SetFont("Helvetica", "B", 10)
		pdf.Text(pageMargin, y, row.label)
		pdf.SetFont("Helvetica", "", 10)
		pdf.Text(pageMargin+108, y, clip(row.value, coverValueLimit))
		y += 20
	}

	// Overview box
	stats := g.record.SummaryStats()
	y += 30
	boxTop := y
	pdf.SetFillColor(242, 242, 242)
	pdf.Rect(pageMargin, boxTop, pageW-2*pageMargin, 140, "F")

	pdf.SetFont("Helvetica", "B", 14)
	pdf.SetXY(pageMargin, boxTop+16)
	pdf.CellFormat(pageW-2*pageMargin, 16, "INSPECTION OVERVIEW", "", 1, "C", false, 0, "")

	overview := []struct {
		label string
		value int
	}{
		{"Total Sections:", stats.TotalSections},
		{"Total Items:", stats.TotalLineItems},
		{"Deficient Items:", stats.Deficient},
		{"Photos:", stats.TotalPhotos},
		{"Videos:", stats.TotalVideos},
	}
	col1 := pageMargin + 72.0
	col2 := pageMargin + 288.0
	for i, entry := range overview {
		x := col1
		if i >= 3 {
			x = col2
		}
		rowY := boxTop + 60 + float64(i%3)*25
		pdf.SetFont("Helvetica", "B", 10)
		pdf.Text(x, rowY, entry.label)
		pdf.SetFont("Helvetica", "", 10)
		pdf.Text(x+90, rowY, fmt.Sprintf("%d", entry.value))
	}

	// Footer
	pdf.SetFont("Helvetica", "I", 9)
	pdf.SetTextColor(128, 128, 128)
	pdf.SetXY(0, 710)
	pdf.CellFormat(pageW, 12,
		"This is a supplementary report - refer to full TREC report for complete details",
		"", 1, "C", false, 0, "")
	pdf.SetTextColor(0, 0, 0)
}

func (g *Summary) statsPage(pdf *gofpdf.Fpdf) {
	pdf.AddPage()
	pageW, _ := pdf.GetPageSize()

	pdf.SetFont("Helvetica", "B", 20)
	pdf.Text(pageMargin, pageMargin+20, "Inspection Statistics Dashboard")

	stats := g.record.SummaryStats()
	y := pageMargin + 80.0

	pdf.SetFont("Helvetica", "B", 12)
	pdf.Text(pageMargin, y, "Items by Status:")
	y += 20

	bars := []struct {
		label   string
		count   int
		r, g, b int
	}{
		{"Inspected", stats.Inspected, 51, 153, 51},
		{"Not Inspected", stats.NotInspected, 204, 204, 0},
		{"Not Present", stats.NotPresent, 128, 128, 128},
		{"Deficient", stats.Deficient, 204, 51, 51},
	}

	maxVal := 1
	for _, bar := range bars {
		if bar.count > maxVal {
			maxVal = bar.count
		}
	}

	const barMaxWidth = 288.0
	const barHeight = 25.0
	for _, bar := range bars {
		barLen := float64(bar.count) / float64(maxVal) * barMaxWidth
		pdf.SetFillColor(bar.r, bar.g, bar.b)
		pdf.Rect(pageMargin+108, y, barLen, barHeight, "F")

		pdf.SetFont("Helvetica", "", 10)
		pdf.Text(pageMargin, y+16, bar.label)
		pdf.Text(pageMargin+80, y+16, fmt.Sprintf("%d", bar.count))
		y += 35
	}

	// Sections ranked by deficiency count
	y += 40
	pdf.SetFont("Helvetica", "B", 12)
	pdf.Text(pageMargin, y, "Top Sections with Issues:")
	y += 22

	pdf.SetFont("Helvetica", "", 10)
	issues := g.record.SectionIssues()
	for i, issue := range issues {
		if i >= sectionIssuesMax || y > 648 {
			break
		}
		plural := "s"
		if issue.Issues == 1 {
			plural = ""
		}
		pdf.Text(pageMargin+14, y, fmt.Sprintf("- %s", clip(issue.Name, 40)))
		right := fmt.Sprintf("%d issue%s", issue.Issues, plural)
		pdf.Text(pageW-pageMargin-pdf.GetStringWidth(right), y, right)
		y += 20
	}
}

func (g *Summary) deficienciesPage(pdf *gofpdf.Fpdf) {
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 20)
	pdf.SetTextColor(204, 0, 0)
	pdf.Text(pageMargin, pageMargin+20, "Deficiencies & Issues")
	pdf.SetTextColor(0, 0, 0)

	y := pageMargin + 80.0
	items := g.record.DeficientItems()

	if len(items) == 0 {
		pdf.SetFont("Helvetica", "", 12)
		pdf.Text(pageMargin, y, "No deficiencies found - Great!")
		return
	}

	pdf.SetFont("Helvetica", "", 10)
	pdf.Text(pageMargin, y, fmt.Sprintf("Found %d deficient item(s):", len(items)))
	y += 30

	for i, item := range items {
		if i >= deficiencyMaxItems || y > 684 {
			break
		}
		pdf.SetFont("Helvetica", "B", 10)
		pdf.Text(pageMargin, y, clip(fmt.Sprintf("%d. %s: %s", i+1, item.Section, item.Item), 70))
		y += 15

		pdf.SetFont("Helvetica", "", 9)
		pdf.Text(pageMargin+22, y, clip(item.Comment, deficiencyTextLimit))
		y += 25
	}
}

func (g *Summary) photoGallery(pdf *gofpdf.Fpdf) {
	photos, _ := g.record.AllMedia()
	pageW, _ := pdf.GetPageSize()

	if len(photos) == 0 {
		pdf.AddPage()
		pdf.SetFont("Helvetica", "B", 20)
		pdf.Text(pageMargin, pageMargin+20, "Photo Gallery")
		pdf.SetFont("Helvetica", "", 12)
		pdf.Text(pageMargin, pageMargin+60, "No photos available")
		return
	}

	if len(photos) > galleryMaxPhotos {
		photos = photos[:galleryMaxPhotos]
	}

	added := 0
	var y float64
	for _, photo := range photos {
		if photo.URL == "" {
			continue
		}

		processed, err := g.fetcher.Process(photo.URL, galleryPhotoWidth, galleryPhotoHeight)
		if err != nil {
			g.logger.Warn("skipping photo",
				zap.String("url", photo.URL),
				zap.Error(err))
			continue
		}

		if added%galleryPhotosPerPage == 0 {
			pdf.AddPage()
			pdf.SetFont("Helvetica", "B", 20)
			pdf.Text(pageMargin, pageMargin+20, "Photo Gallery")
			y = pageMargin + 50
		}

		w := float64(processed.Width)
		h := float64(processed.Height)
		if y+h+30 > 738 {
			pdf.AddPage()
			pdf.SetFont("Helvetica", "B", 20)
			pdf.Text(pageMargin, pageMargin+20, "Photo Gallery")
			y = pageMargin + 50
		}

		x := (pageW - w) / 2
		opts := gofpdf.ImageOptions{ImageType: "JPG"}
		pdf.RegisterImageOptionsReader(photo.URL, opts, bytes.NewReader(processed.JPEG))
		pdf.ImageOptions(photo.URL, x, y, w, h, false, opts, 0, "")

		caption := fmt.Sprintf("%s: %s", photo.SectionName, photo.LineItemName)
		pdf.SetFont("Helvetica", "", 8)
		pdf.SetTextColor(77, 77, 77)
		pdf.SetXY(0, y+h+6)
		pdf.CellFormat(pageW, 10, caption, "", 1, "C", false, 0, "")
		pdf.SetTextColor(0, 0, 0)

		y += h + 40
		added++
	}

	if added == 0 {
		pdf.AddPage()
		pdf.SetFont("Helvetica", "B", 20)
		pdf.Text(pageMargin, pageMargin+20, "Photo Gallery")
		pdf.SetFont("Helvetica", "", 12)
		pdf.Text(pageMargin, pageMargin+60, "No photos available")
	}
	g.logger.Info("photo gallery rendered", zap.Int("photos", added))
}

func (g *Summary) videoPage(pdf *gofpdf.Fpdf) {
	_, videos := g.record.AllMedia()

	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 20)
	pdf.Text(pageMargin, pageMargin+20, "Video Links")

	y := pageMargin + 80.0
	valid := media.CountValidVideos(videos)
	if valid == 0 {
		pdf.SetFont("Helvetica", "", 12)
		pdf.Text(pageMargin, y, "No videos available")
		return
	}

	pdf.SetFont("Helvetica", "", 10)
	pdf.Text(pageMargin, y, fmt.Sprintf("Click the links below to view %d inspection video(s):", valid))
	y += 30

	added := 0
	for _, video := range videos {
		if added >= videoMaxLinks || y > 684 {
			break
		}
		if !media.ValidVideoURL(video.URL) {
			continue
		}

		pdf.SetFont("Helvetica", "B", 10)
		pdf.SetTextColor(0, 0, 204)
		title := clip(media.VideoLinkText(video, added+1), videoTitleLimit)
		pdf.Text(pageMargin, y, title)
		pdf.LinkString(pageMargin, y-10, 288, 15, video.URL)
		y += 15

		pdf.SetFont("Helvetica", "", 8)
		pdf.SetTextColor(77, 77, 77)
		pdf.Text(pageMargin+14, y, clip(fmt.Sprintf("%s: %s", video.SectionName, video.LineItemName), videoTitleLimit))
		y += 12
		pdf.Text(pageMargin+14, y, media.DisplayURL(video.URL))
		pdf.SetTextColor(0, 0, 0)
		y += 25
		added++
	}
	g.logger.Info("video links rendered", zap.Int("videos", added))
}

// clip shortens s for single-line display, appending an ellipsis.
// Rune-safe: multibyte characters are never split.
func clip(s string, limit int) string {
	if len([]rune(s)) <= limit {
		return s
	}
	return inspection.Truncate(s, limit-3) + "..."
}
