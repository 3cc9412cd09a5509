package form

import (
	"fmt"
	"os"
	"strings"

	"github.com/ledongthuc/pdf"
)

// ValidateTemplate performs the pre-flight checks on the form template:
// the file must exist, be a non-empty regular .pdf under maxFileSize,
// and open as a valid PDF. A failure here aborts the run before any
// output is produced.
func ValidateTemplate(path string, maxFileSize int64) error {
	if path == "" {
		return fmt.Errorf("template path cannot be empty")
	}

	fileInfo, err := os.Stat(path)
	if os.IsNotExist(err) {
		return fmt.Errorf("template does not exist: %s", path)
	}
	if err != nil {
		return fmt.Errorf("cannot access template: %w", err)
	}

	if fileInfo.IsDir() {
		return fmt.Errorf("template path is a directory, not a file: %s", path)
	}
	if !strings.HasSuffix(strings.ToLower(path), ".pdf") {
		return fmt.Errorf("template is not a PDF: %s", path)
	}
	if fileInfo.Size() == 0 {
		return fmt.Errorf("template is empty: %s", path)
	}
	if fileInfo.Size() > maxFileSize {
		return fmt.Errorf("template too large: %d bytes (max: %d bytes)",
			fileInfo.Size(), maxFileSize)
	}

	f, _, err := pdf.Open(path)
	if err != nil {
		return fmt.Errorf("invalid PDF template: %w", err)
	}
	defer f.Close()

	return nil
}
