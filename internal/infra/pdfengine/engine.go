// Package pdfengine adapts pdfcpu to the domain.DocumentEngine interface.
package pdfengine

import (
	"bytes"
	"fmt"
	"io"

	"pdf-workbench/internal/domain"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"
)

// Engine performs structural PDF work with pdfcpu. It holds no state between calls.
type Engine struct {
	logger domain.Logger
}

// NewEngine creates a new pdfcpu backed engine
func NewEngine(logger domain.Logger) *Engine {
	return &Engine{logger: logger}
}

func newConfiguration() *model.Configuration {
	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed
	return conf
}

// PageCount returns the number of pages in data.
func (e *Engine) PageCount(data []byte) (int, error) {
	n, err := api.PageCount(bytes.NewReader(data), newConfiguration())
	if err != nil {
		return 0, fmt.Errorf("failed to read PDF: %w", err)
	}
	return n, nil
}

// Rotate turns every page clockwise by degrees.
func (e *Engine) Rotate(data []byte, degrees int) ([]byte, error) {
	if degrees%90 != 0 {
		return nil, domain.ErrInvalidRotation
	}
	degrees %= 360
	if degrees < 0 {
		degrees += 360
	}
	if degrees == 0 {
		return data, nil
	}

	var out bytes.Buffer
	if err := api.Rotate(bytes.NewReader(data), &out, degrees, nil, newConfiguration()); err != nil {
		return nil, fmt.Errorf("failed to rotate PDF: %w", err)
	}
	return out.Bytes(), nil
}

// Merge concatenates docs in order.
func (e *Engine) Merge(docs [][]byte) ([]byte, error) {
	if len(docs) == 0 {
		return nil, domain.ErrNoDocuments
	}
	if len(docs) == 1 {
		return docs[0], nil
	}

	readers := make([]io.ReadSeeker, len(docs))
	for i, d := range docs {
		readers[i] = bytes.NewReader(d)
	}

	var out bytes.Buffer
	if err := api.MergeRaw(readers, &out, false, newConfiguration()); err != nil {
		return nil, fmt.Errorf("failed to merge PDFs: %w", err)
	}
	return out.Bytes(), nil
}

// ExtractPages parses data once and writes one document per group.
func (e *Engine) ExtractPages(data []byte, groups [][]int) ([][]byte, error) {
	ctx, err := api.ReadValidateAndOptimize(bytes.NewReader(data), newConfiguration())
	if err != nil {
		return nil, fmt.Errorf("failed to read PDF: %w", err)
	}
	if err := ctx.EnsurePageCount(); err != nil {
		return nil, fmt.Errorf("failed to count pages: %w", err)
	}

	outputs := make([][]byte, 0, len(groups))
	for i, pages := range groups {
		if len(pages) == 0 {
			return nil, fmt.Errorf("page group %d is empty", i+1)
		}
		for _, p := range pages {
			if p < 1 || p > ctx.PageCount {
				return nil, fmt.Errorf("page %d is out of bounds (1-%d)", p, ctx.PageCount)
			}
		}

		pageCtx, err := pdfcpu.ExtractPages(ctx, pages, false)
		if err != nil {
			return nil, fmt.Errorf("failed to extract pages %v: %w", pages, err)
		}

		var out bytes.Buffer
		if err := api.WriteContext(pageCtx, &out); err != nil {
			return nil, fmt.Errorf("failed to write pages %v: %w", pages, err)
		}
		outputs = append(outputs, out.Bytes())
	}

	e.logger.Debug("Extracted page groups", "groups", len(groups), "source_pages", ctx.PageCount)
	return outputs, nil
}

// Optimize is the generic library-level compression pass.
func (e *Engine) Optimize(data []byte, profile domain.CompressionProfile) ([]byte, error) {
	conf := newConfiguration()
	conf.WriteObjectStream = profile.CompactStreams()
	conf.WriteXRefStream = profile.CompactStreams()

	var out bytes.Buffer
	if err := api.Optimize(bytes.NewReader(data), &out, conf); err != nil {
		return nil, fmt.Errorf("failed to optimize PDF: %w", err)
	}
	return out.Bytes(), nil
}

// PageSizes reads the media box dimensions of every page.
func (e *Engine) PageSizes(data []byte) ([]domain.PageSize, error) {
	dims, err := api.PageDims(bytes.NewReader(data), newConfiguration())
	if err != nil {
		return nil, fmt.Errorf("failed to read page sizes: %w", err)
	}
	sizes := make([]domain.PageSize, len(dims))
	for i, d := range dims {
		sizes[i] = domain.PageSize{Width: d.Width, Height: d.Height}
	}
	return sizes, nil
}

// ImagesToPDF imports each encoded image as one page. Without sizes a page is
// as large as its image in pixels; with sizes every image is scaled to fill
// a page of the given size.
func (e *Engine) ImagesToPDF(images [][]byte, sizes []domain.PageSize, profile *domain.CompressionProfile) ([]byte, error) {
	if len(images) == 0 {
		return nil, domain.ErrNoPages
	}
	if sizes != nil && len(sizes) != len(images) {
		return nil, fmt.Errorf("got %d page sizes for %d images", len(sizes), len(images))
	}

	conf := newConfiguration()
	if profile != nil {
		conf.WriteObjectStream = profile.CompactStreams()
		conf.WriteXRefStream = profile.CompactStreams()
	}

	if sizes == nil {
		imp := pdfcpu.DefaultImportConfig()
		imp.Pos = types.Full
		return importImages(images, imp, conf)
	}

	// The import config holds a single page size, so each page is built on
	// its own and the pages are merged afterwards.
	pages := make([][]byte, len(images))
	for i, img := range images {
		if sizes[i].Width <= 0 || sizes[i].Height <= 0 {
			return nil, fmt.Errorf("invalid size for page %d: %vx%v", i+1, sizes[i].Width, sizes[i].Height)
		}
		imp := pdfcpu.DefaultImportConfig()
		imp.PageDim = &types.Dim{Width: sizes[i].Width, Height: sizes[i].Height}
		imp.Pos = types.Center
		imp.Scale = 1.0
		imp.ScaleAbs = false

		page, err := importImages([][]byte{img}, imp, conf)
		if err != nil {
			return nil, fmt.Errorf("page %d: %w", i+1, err)
		}
		pages[i] = page
	}
	if len(pages) == 1 {
		return pages[0], nil
	}

	readers := make([]io.ReadSeeker, len(pages))
	for i, p := range pages {
		readers[i] = bytes.NewReader(p)
	}

	var out bytes.Buffer
	if err := api.MergeRaw(readers, &out, false, conf); err != nil {
		return nil, fmt.Errorf("failed to assemble pages: %w", err)
	}
	return out.Bytes(), nil
}

func importImages(images [][]byte, imp *pdfcpu.Import, conf *model.Configuration) ([]byte, error) {
	readers := make([]io.Reader, len(images))
	for i, img := range images {
		readers[i] = bytes.NewReader(img)
	}

	var out bytes.Buffer
	if err := api.ImportImages(nil, &out, readers, imp, conf); err != nil {
		return nil, fmt.Errorf("failed to build PDF from images: %w", err)
	}
	return out.Bytes(), nil
}
