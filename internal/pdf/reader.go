// Package pdf is the extraction boundary: it turns a program PDF into one
// plain-text blob per page and knows nothing about what the text means.
package pdf

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/ledongthuc/pdf"
)

// ErrNoText is returned when no page of a structurally valid PDF yields
// any extractable text.
var ErrNoText = errors.New("no text content could be extracted from PDF")

// Reader extracts per-page text from PDF files.
type Reader struct {
	maxFileSize int64
	maxTextSize int
}

// NewReader creates a reader with the specified file-size constraint.
func NewReader(maxFileSize int64) *Reader {
	return &Reader{
		maxFileSize: maxFileSize,
		maxTextSize: 10 * 1024 * 1024, // 10MB text limit
	}
}

// ExtractPages returns the plain text of each page in order. Pages whose
// text extraction fails are skipped; a document from which no page yields
// any text is an error.
func (r *Reader) ExtractPages(path string) ([]string, error) {
	if path == "" {
		return nil, fmt.Errorf("path cannot be empty")
	}

	fileInfo, err := os.Stat(path)
	if os.IsNotExist(err) {
		return nil, fmt.Errorf("file does not exist: %s", path)
	}
	if err != nil {
		return nil, fmt.Errorf("cannot access file: %w", err)
	}
	if fileInfo.IsDir() {
		return nil, fmt.Errorf("path is a directory, not a file: %s", path)
	}
	if fileInfo.Size() > r.maxFileSize {
		return nil, fmt.Errorf("file too large: %d bytes (max: %d bytes)",
			fileInfo.Size(), r.maxFileSize)
	}

	f, pdfReader, err := pdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open PDF: %w", err)
	}
	defer f.Close()

	return r.extractPageTexts(pdfReader)
}

// ExtractPagesFromReader extracts page texts from an in-memory PDF, used by
// the upload path so requests never touch the filesystem.
func (r *Reader) ExtractPagesFromReader(ra io.ReaderAt, size int64) ([]string, error) {
	if size > r.maxFileSize {
		return nil, fmt.Errorf("file too large: %d bytes (max: %d bytes)", size, r.maxFileSize)
	}

	pdfReader, err := pdf.NewReader(ra, size)
	if err != nil {
		return nil, fmt.Errorf("failed to open PDF: %w", err)
	}

	return r.extractPageTexts(pdfReader)
}

func (r *Reader) extractPageTexts(pdfReader *pdf.Reader) ([]string, error) {
	pages := make([]string, 0, pdfReader.NumPage())
	totalLength := 0
	gotText := false

	for pageNum := 1; pageNum <= pdfReader.NumPage(); pageNum++ {
		page := pdfReader.Page(pageNum)
		if page.V.IsNull() {
			pages = append(pages, "")
			continue
		}

		content := r.extractPageText(page)

		if totalLength+len(content) > r.maxTextSize {
			remaining := r.maxTextSize - totalLength
			if remaining > 0 {
				pages = append(pages, content[:remaining])
				gotText = gotText || strings.TrimSpace(content[:remaining]) != ""
			}
			break
		}

		pages = append(pages, content)
		totalLength += len(content)
		if strings.TrimSpace(content) != "" {
			gotText = true
		}
	}

	if !gotText {
		return nil, ErrNoText
	}

	return pages, nil
}

// extractPageText rebuilds the visual lines of a page. Row grouping keeps
// line boundaries intact, which the roster classifiers depend on; plain
// text is the fallback when row extraction fails. A page that yields
// nothing is kept as an empty slot so page order is preserved.
func (r *Reader) extractPageText(page pdf.Page) string {
	rows, err := page.GetTextByRow()
	if err == nil && len(rows) > 0 {
		var builder strings.Builder
		for _, row := range rows {
			for i, word := range row.Content {
				if i > 0 {
					builder.WriteString(" ")
				}
				builder.WriteString(word.S)
			}
			builder.WriteString("\n")
		}
		return builder.String()
	}

	content, err := page.GetPlainText(nil)
	if err != nil {
		return ""
	}
	return content
}
