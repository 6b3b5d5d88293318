package service

import (
	"context"
	"fmt"
	"image"
	"time"

	"pdf-workbench/internal/domain"
	apperrors "pdf-workbench/pkg/errors"

	"golang.org/x/sync/errgroup"
)

// PDFCompressService recompresses documents by re-rendering their pages.
type PDFCompressService struct {
	engine     domain.DocumentEngine
	rasterizer domain.Rasterizer
	encoder    domain.ImageEncoder
	logger     domain.Logger
	workers    int
	now        Clock
}

// NewCompressService creates a new compression service. workers bounds how many
// documents of one batch are processed at the same time.
func NewCompressService(
	engine domain.DocumentEngine,
	rasterizer domain.Rasterizer,
	encoder domain.ImageEncoder,
	logger domain.Logger,
	workers int,
) *PDFCompressService {
	if workers < 1 {
		workers = 1
	}
	return &PDFCompressService{
		engine:     engine,
		rasterizer: rasterizer,
		encoder:    encoder,
		logger:     logger,
		workers:    workers,
		now:        time.Now,
	}
}

// Compress returns one PDF for a single input and a ZIP for several.
func (s *PDFCompressService) Compress(ctx context.Context, docs []domain.UploadedDocument, profile domain.CompressionProfile) (*domain.FileResult, error) {
	if len(docs) == 0 {
		return nil, apperrors.NewValidationError("No files provided")
	}

	valid := make([]domain.UploadedDocument, 0, len(docs))
	for _, d := range docs {
		if d.IsPDF() {
			valid = append(valid, d)
		}
	}
	if len(valid) == 0 {
		return nil, apperrors.NewValidationError("No valid PDF files found")
	}

	now := s.now()

	if len(valid) == 1 {
		d := valid[0]
		return &domain.FileResult{
			Filename:    fmt.Sprintf("%s_compressed_%s.pdf", safeBase(d.BaseName(), "document"), now.Format(timestampLayout)),
			ContentType: domain.ContentTypePDF,
			Data:        s.CompressDocument(d.Data, profile),
		}, nil
	}

	entries := make([]archiveEntry, len(valid))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)
	for i, d := range valid {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			entries[i] = archiveEntry{
				Name: safeBase(d.BaseName(), fmt.Sprintf("document_%d", i+1)) + "_compressed.pdf",
				Data: s.CompressDocument(d.Data, profile),
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	archive, err := buildArchive(entries, profile.DeflateLevel, now)
	if err != nil {
		return nil, apperrors.NewInternalError("Compression failed", err)
	}

	s.logger.Info("Compressed batch", "files", len(valid), "profile", profile.Name)
	return &domain.FileResult{
		Filename:    timestamped("compressed_pdfs", "zip", now),
		ContentType: domain.ContentTypeZIP,
		Data:        archive,
	}, nil
}

// CompressDocument runs the fallback chain: rasterize, then generic optimize,
// then the original bytes.
func (s *PDFCompressService) CompressDocument(data []byte, profile domain.CompressionProfile) []byte {
	out, err := s.rasterize(data, profile)
	if err == nil {
		s.logger.Debug("Compressed by rasterization", "profile", profile.Name, "before", len(data), "after", len(out))
		return out
	}
	s.logger.Warn("Rasterized compression failed, falling back to optimize", "profile", profile.Name, "error", err)

	out, err = s.engine.Optimize(data, profile)
	if err == nil {
		return out
	}
	s.logger.Warn("Optimize failed, returning original document", "profile", profile.Name, "error", err)

	return data
}

// rasterize renders every page at the profile resolution and rebuilds the
// document with each image filling a page of the original size.
func (s *PDFCompressService) rasterize(data []byte, profile domain.CompressionProfile) ([]byte, error) {
	dpi := float64(profile.Resolution)
	var images [][]byte
	var bounds []image.Rectangle
	total, err := s.rasterizer.RenderPages(data, dpi, 0, func(page int, img image.Image) error {
		encoded, err := s.encoder.EncodeJPEG(img, profile.ImageQuality)
		if err != nil {
			return fmt.Errorf("page %d: %w", page, err)
		}
		images = append(images, encoded)
		bounds = append(bounds, img.Bounds())
		return nil
	})
	if err != nil {
		return nil, err
	}
	if total == 0 || len(images) != total {
		return nil, fmt.Errorf("%w: rendered %d of %d pages", domain.ErrRasterizationFailed, len(images), total)
	}

	return s.engine.ImagesToPDF(images, s.pageSizes(data, bounds, dpi), &profile)
}

// pageSizes prefers the sizes recorded in the document and falls back to the
// rendered pixels when the document cannot be parsed by the engine.
func (s *PDFCompressService) pageSizes(data []byte, bounds []image.Rectangle, dpi float64) []domain.PageSize {
	sizes, err := s.engine.PageSizes(data)
	if err != nil || len(sizes) != len(bounds) {
		sizes = make([]domain.PageSize, len(bounds))
		for i, b := range bounds {
			sizes[i] = domain.PageSize{
				Width:  float64(b.Dx()) * 72 / dpi,
				Height: float64(b.Dy()) * 72 / dpi,
			}
		}
		return sizes
	}

	// The renderer applies /Rotate, the media box does not.
	for i, b := range bounds {
		if b.Dx() != b.Dy() && sizes[i].Width != sizes[i].Height && sizes[i].Landscape() != (b.Dx() > b.Dy()) {
			sizes[i].Width, sizes[i].Height = sizes[i].Height, sizes[i].Width
		}
	}
	return sizes
}
