package domain

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"
)

const (
	ContentTypePDF = "application/pdf"
	ContentTypeZIP = "application/zip"
)

// UploadedDocument is a PDF received in a request. It lives for one request.
type UploadedDocument struct {
	Name string
	Data []byte
}

// IsPDF reports whether the upload carries a .pdf extension.
func (d UploadedDocument) IsPDF() bool {
	return HasPDFExtension(d.Name)
}

// BaseName is the filename without directory or extension.
func (d UploadedDocument) BaseName() string {
	base := filepath.Base(strings.ReplaceAll(d.Name, "\\", "/"))
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// HasPDFExtension checks the filename suffix only; content is validated by the engine.
func HasPDFExtension(name string) bool {
	return strings.HasSuffix(strings.ToLower(strings.TrimSpace(name)), ".pdf")
}

// PageRange is an inclusive 1-based span. It travels as a JSON pair [start, end].
type PageRange struct {
	Start int
	End   int
}

func (r PageRange) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]int{r.Start, r.End})
}

func (r *PageRange) UnmarshalJSON(b []byte) error {
	var pair []int
	if err := json.Unmarshal(b, &pair); err != nil {
		return err
	}
	if len(pair) != 2 {
		return fmt.Errorf("page range must have 2 elements, got %d", len(pair))
	}
	r.Start, r.End = pair[0], pair[1]
	return nil
}

// Pages expands the range. Inverted ranges expand to nothing.
func (r PageRange) Pages() []int {
	if r.End < r.Start {
		return nil
	}
	pages := make([]int, 0, r.End-r.Start+1)
	for p := r.Start; p <= r.End; p++ {
		pages = append(pages, p)
	}
	return pages
}

// PageSize is a page extent in points.
type PageSize struct {
	Width  float64
	Height float64
}

// Landscape reports whether the page is wider than tall.
func (s PageSize) Landscape() bool {
	return s.Width > s.Height
}

// SplitRequest selects what a split produces. Ranges win over Pages; neither
// means every page on its own.
type SplitRequest struct {
	Ranges    []PageRange
	Pages     []int
	SinglePDF bool
	MergeAll  bool
}

// FileResult is a finished download: one PDF or one ZIP archive.
type FileResult struct {
	Filename    string
	ContentType string
	Data        []byte
}

// DocumentInfo is returned by the info endpoint.
type DocumentInfo struct {
	TotalPages int    `json:"total_pages"`
	Filename   string `json:"filename"`
	Size       int64  `json:"size"`
}

// PagePreview is a thumbnail or, when rendering failed, a text excerpt.
type PagePreview struct {
	Page  int     `json:"page"`
	Image *string `json:"image"`
	Text  string  `json:"text,omitempty"`
}

// PreviewSet is the payload of the previews endpoint.
type PreviewSet struct {
	Previews []PagePreview `json:"previews"`
	HasMore  bool          `json:"has_more"`
	TextOnly bool          `json:"text_only,omitempty"`
}

// EditedPage is one client-rendered page image, base64 with an optional data URL header.
type EditedPage struct {
	Page int    `json:"page"`
	Data string `json:"data"`
}
