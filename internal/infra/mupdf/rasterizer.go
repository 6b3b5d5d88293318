// Package mupdf renders PDF pages with go-fitz (MuPDF).
package mupdf

import (
	"bytes"
	"fmt"
	"image"

	"pdf-workbench/internal/domain"

	"github.com/disintegration/imaging"
	"github.com/gen2brain/go-fitz"
)

// Rasterizer implements domain.Rasterizer. Each call opens its own MuPDF
// document, so one Rasterizer may be shared between goroutines.
type Rasterizer struct {
	logger domain.Logger
}

// NewRasterizer creates a new go-fitz based rasterizer
func NewRasterizer(logger domain.Logger) *Rasterizer {
	return &Rasterizer{logger: logger}
}

// RenderPages renders pages in order and hands each to fn.
func (r *Rasterizer) RenderPages(data []byte, dpi float64, limit int, fn domain.PageRenderFunc) (int, error) {
	if dpi <= 0 {
		return 0, fmt.Errorf("dpi must be positive, got %v", dpi)
	}

	doc, err := fitz.NewFromMemory(data)
	if err != nil {
		return 0, fmt.Errorf("%w: unable to open PDF document: %v", domain.ErrRasterizationFailed, err)
	}
	defer doc.Close()

	total := doc.NumPage()
	if total == 0 {
		return 0, domain.ErrNoPages
	}

	n := total
	if limit > 0 && limit < n {
		n = limit
	}

	for i := 0; i < n; i++ {
		img, err := doc.ImageDPI(i, dpi)
		if err != nil {
			return total, fmt.Errorf("%w: unable to render page %d: %v", domain.ErrRasterizationFailed, i+1, err)
		}
		if err := fn(i+1, img); err != nil {
			return total, err
		}
	}

	r.logger.Debug("Rendered pages", "rendered", n, "total", total, "dpi", dpi)
	return total, nil
}

// Encoder implements domain.ImageEncoder with imaging.
type Encoder struct{}

// NewEncoder creates a new image encoder
func NewEncoder() *Encoder {
	return &Encoder{}
}

// EncodePNG encodes img losslessly.
func (Encoder) EncodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.PNG); err != nil {
		return nil, fmt.Errorf("failed to encode PNG: %w", err)
	}
	return buf.Bytes(), nil
}

// EncodeJPEG encodes img at quality (1-100).
func (Encoder) EncodeJPEG(img image.Image, quality int) ([]byte, error) {
	if quality < 1 || quality > 100 {
		return nil, fmt.Errorf("jpeg quality out of range: %d", quality)
	}
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.JPEG, imaging.JPEGQuality(quality)); err != nil {
		return nil, fmt.Errorf("failed to encode JPEG: %w", err)
	}
	return buf.Bytes(), nil
}
