// Package pdftext extracts plain page text with ledongthuc/pdf. It is the
// fallback used when pages cannot be rendered.
package pdftext

import (
	"bytes"
	"fmt"
	"strings"

	"pdf-workbench/internal/domain"

	"github.com/ledongthuc/pdf"
)

// Extractor implements domain.TextExtractor
type Extractor struct {
	logger domain.Logger
}

// NewExtractor creates a new text extractor
func NewExtractor(logger domain.Logger) *Extractor {
	return &Extractor{logger: logger}
}

// PageTexts returns the text of the first limit pages. A page whose text
// cannot be extracted yields an empty string rather than failing the call.
func (e *Extractor) PageTexts(data []byte, limit int) (texts []string, total int, err error) {
	// ledongthuc/pdf panics on some malformed inputs.
	defer func() {
		if r := recover(); r != nil {
			texts, total, err = nil, 0, fmt.Errorf("failed to read PDF: %v", r)
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, 0, fmt.Errorf("failed to create PDF reader: %w", err)
	}

	total = reader.NumPage()
	n := total
	if limit > 0 && limit < n {
		n = limit
	}

	texts = make([]string, 0, n)
	for pageNum := 1; pageNum <= n; pageNum++ {
		page := reader.Page(pageNum)
		if page.V.IsNull() {
			texts = append(texts, "")
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			e.logger.Warn("Failed to extract text from page", "page", pageNum, "error", err)
			texts = append(texts, "")
			continue
		}
		texts = append(texts, strings.TrimSpace(text))
	}

	return texts, total, nil
}
