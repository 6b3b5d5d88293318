package service

import (
	"context"
	"time"

	"pdf-workbench/internal/domain"
	apperrors "pdf-workbench/pkg/errors"
)

// PDFMergeService concatenates uploaded documents in submission order.
type PDFMergeService struct {
	engine domain.DocumentEngine
	logger domain.Logger
	now    Clock
}

// NewMergeService creates a new merge service
func NewMergeService(engine domain.DocumentEngine, logger domain.Logger) *PDFMergeService {
	return &PDFMergeService{engine: engine, logger: logger, now: time.Now}
}

// Merge rotates and concatenates docs. rotations is keyed by upload index,
// counting every upload including ones that are not PDFs.
func (s *PDFMergeService) Merge(ctx context.Context, docs []domain.UploadedDocument, rotations map[int]int) (*domain.FileResult, error) {
	valid := 0
	for _, d := range docs {
		if d.IsPDF() {
			valid++
		}
	}
	if valid < 2 {
		return nil, apperrors.NewValidationError("At least 2 PDF files are required")
	}

	parts := make([][]byte, 0, valid)
	for i, d := range docs {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if !d.IsPDF() {
			s.logger.Warn("Skipping non-PDF upload", "index", i, "file", d.Name)
			continue
		}

		data, err := s.prepare(d, rotations[i])
		if err != nil {
			s.logger.Error("Error processing file", err, "index", i, "file", d.Name)
			continue
		}
		parts = append(parts, data)
	}

	if len(parts) == 0 {
		return nil, apperrors.NewProcessingError("Failed to merge PDFs", domain.ErrNoDocuments)
	}

	merged, err := s.engine.Merge(parts)
	if err != nil {
		return nil, apperrors.NewProcessingError("Failed to merge PDFs", err)
	}

	s.logger.Info("Merged documents", "requested", len(docs), "merged", len(parts), "bytes", len(merged))
	return &domain.FileResult{
		Filename:    timestamped("merged_pdf", "pdf", s.now()),
		ContentType: domain.ContentTypePDF,
		Data:        merged,
	}, nil
}

// prepare checks that d opens and applies its rotation.
func (s *PDFMergeService) prepare(d domain.UploadedDocument, rotation int) ([]byte, error) {
	if _, err := s.engine.PageCount(d.Data); err != nil {
		return nil, err
	}
	if rotation == 0 {
		return d.Data, nil
	}
	return s.engine.Rotate(d.Data, rotation)
}
