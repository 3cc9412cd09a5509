package report

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/inspectkit/trec-report/internal/inspection"
	"github.com/inspectkit/trec-report/internal/media"
	"github.com/jung-kurt/gofpdf"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"go.uber.org/zap"
)

const (
	detailsMaxSections     = 10
	detailsItemsPerSection = 5
	detailsCommentLimit    = 100
	detailsCommentMin      = 10

	officialPhotosPerPage = 3
	officialMaxPhotos     = 12
	officialPhotoWidth    = 400
	officialPhotoHeight   = 200

	officialMaxVideos = 15
)

// appendContent renders the inspection details, photo, and video pages
// and appends them to the filled form at outputPath.
func (g *Official) appendContent(outputPath string) error {
	pdf := g.contentPages()

	tmp, err := os.CreateTemp(filepath.Dir(outputPath), "trec-pages-*.pdf")
	if err != nil {
		return fmt.Errorf("failed to create scratch file: %w", err)
	}
	tmpPath := tmp.Name()
	tmp.Close()
	defer os.Remove(tmpPath)

	if err := pdf.OutputFileAndClose(tmpPath); err != nil {
		return fmt.Errorf("failed to render content pages: %w", err)
	}

	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed
	if err := api.MergeAppendFile([]string{tmpPath}, outputPath, false, conf); err != nil {
		return fmt.Errorf("failed to append content pages: %w", err)
	}
	return nil
}

// contentPages builds the pages appended after the form: a per-section
// line-item digest, inspection photos, and clickable video links.
func (g *Official) contentPages() *gofpdf.Fpdf {
	pdf := gofpdf.New("P", "pt", "Letter", "")
	pdf.SetMargins(pageMargin, pageMargin, pageMargin)
	pdf.SetAutoPageBreak(false, pageMargin)

	g.detailsPages(pdf)
	g.photoPages(pdf)
	g.videoPages(pdf)
	return pdf
}

func (g *Official) detailsPages(pdf *gofpdf.Fpdf) {
	pdf.AddPage()
	pdf.SetTextColor(0, 0, 0)
	pdf.SetFont("Helvetica", "B", 16)
	pdf.Text(pageMargin, pageMargin+10, "INSPECTION DETAILS")
	y := pageMargin + 50.0

	rendered := 0
	for _, section := range g.record.Sections() {
		if rendered >= detailsMaxSections {
			break
		}
		if y > 720 {
			pdf.AddPage()
			y = pageMargin
		}

		name := section.Name
		if name == "" {
			name = "Unknown Section"
		}
		pdf.SetTextColor(0, 0, 0)
		pdf.SetFont("Helvetica", "B", 12)
		pdf.Text(pageMargin, y, clip(name, 70))
		y += 20

		items := section.SortedLineItems()
		if len(items) > detailsItemsPerSection {
			items = items[:detailsItemsPerSection]
		}
		for _, item := range items {
			if y > 730 {
				pdf.AddPage()
				y = pageMargin
			}

			itemName := item.Name
			if itemName == "" {
				itemName = "Unknown"
			}
			if item.InspectionStatus == inspection.StatusDeficient {
				pdf.SetTextColor(204, 0, 0)
			} else {
				pdf.SetTextColor(0, 0, 0)
			}
			pdf.SetFont("Helvetica", "", 9)
			label := inspection.StatusLabel(item.InspectionStatus)
			pdf.Text(pageMargin+10, y, fmt.Sprintf("- %s: %s", itemName, label))
			y += 15

			if comments := item.SortedComments(); len(comments) > 0 {
				text := comments[0].Text
				if len([]rune(text)) > detailsCommentMin {
					excerpt := inspection.Truncate(text, detailsCommentLimit)
					if excerpt != text {
						excerpt += "..."
					}
					pdf.SetTextColor(77, 77, 77)
					pdf.SetFont("Helvetica", "", 8)
					pdf.Text(pageMargin+20, y, excerpt)
					y += 12
				}
			}
		}

		y += 10
		rendered++
	}
	pdf.SetTextColor(0, 0, 0)
	g.logger.Info("detail pages rendered", zap.Int("sections", rendered))
}

func (g *Official) photoPages(pdf *gofpdf.Fpdf) {
	photos, _ := g.record.AllMedia()
	if len(photos) == 0 {
		return
	}
	pageW, _ := pdf.GetPageSize()

	pdf.AddPage()
	pdf.SetTextColor(0, 0, 0)
	pdf.SetFont("Helvetica", "B", 16)
	pdf.Text(pageMargin, pageMargin+10, "INSPECTION PHOTOS")
	y := pageMargin + 50.0

	added := 0
	for _, photo := range photos {
		if added >= officialMaxPhotos {
			break
		}
		if photo.URL == "" {
			continue
		}

		processed, err := g.fetcher.Process(photo.URL, officialPhotoWidth, officialPhotoHeight)
		if err != nil {
			g.logger.Warn("skipping photo",
				zap.String("url", photo.URL),
				zap.Error(err))
			continue
		}

		if added > 0 && added%officialPhotosPerPage == 0 {
			pdf.AddPage()
			y = pageMargin
		}

		w := float64(processed.Width)
		h := float64(processed.Height)
		if y+h+50 > 750 {
			pdf.AddPage()
			y = pageMargin
		}

		x := (pageW - w) / 2
		opts := gofpdf.ImageOptions{ImageType: "JPG"}
		pdf.RegisterImageOptionsReader(photo.URL, opts, bytes.NewReader(processed.JPEG))
		pdf.ImageOptions(photo.URL, x, y, w, h, false, opts, 0, "")

		pdf.SetFont("Helvetica", "", 8)
		pdf.SetTextColor(77, 77, 77)
		pdf.Text(pageMargin, y+h+10, clip(fmt.Sprintf("%s: %s", photo.SectionName, photo.LineItemName), 80))

		y += h + 35
		added++
	}
	pdf.SetTextColor(0, 0, 0)
	g.logger.Info("photo pages rendered", zap.Int("photos", added))
}

func (g *Official) videoPages(pdf *gofpdf.Fpdf) {
	_, videos := g.record.AllMedia()
	if media.CountValidVideos(videos) == 0 {
		return
	}

	pdf.AddPage()
	pdf.SetTextColor(0, 0, 0)
	pdf.SetFont("Helvetica", "B", 16)
	pdf.Text(pageMargin, pageMargin+10, "INSPECTION VIDEOS")
	y := pageMargin + 50.0

	added := 0
	for i, video := range videos {
		if added >= officialMaxVideos {
			break
		}
		if !media.ValidVideoURL(video.URL) {
			continue
		}
		if y > 720 {
			pdf.AddPage()
			y = pageMargin
		}

		pdf.SetFont("Helvetica", "", 10)
		pdf.SetTextColor(0, 0, 204)
		title := clip(fmt.Sprintf("Video %d: %s - %s", i+1, video.SectionName, video.LineItemName), 70)
		pdf.Text(pageMargin, y, title)
		pdf.LinkString(pageMargin, y-10, 350, 15, video.URL)

		y += 25
		added++
	}
	pdf.SetTextColor(0, 0, 0)
	g.logger.Info("video link pages rendered", zap.Int("videos", added))
}
