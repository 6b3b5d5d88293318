package service

import (
	"context"
	"time"

	"pdf-workbench/internal/domain"
	apperrors "pdf-workbench/pkg/errors"
)

const mergedSplitsName = "merged_all_splits.pdf"

// PDFSplitService extracts page selections from one document.
type PDFSplitService struct {
	engine domain.DocumentEngine
	logger domain.Logger
	now    Clock
}

// NewSplitService creates a new split service
func NewSplitService(engine domain.DocumentEngine, logger domain.Logger) *PDFSplitService {
	return &PDFSplitService{engine: engine, logger: logger, now: time.Now}
}

// Split validates req against the document and produces either one PDF or a ZIP.
func (s *PDFSplitService) Split(ctx context.Context, doc domain.UploadedDocument, req domain.SplitRequest) (*domain.FileResult, error) {
	if !doc.IsPDF() {
		return nil, apperrors.NewValidationError("Invalid PDF file")
	}

	total, err := s.engine.PageCount(doc.Data)
	if err != nil {
		return nil, apperrors.NewProcessingError("Failed to split PDF", err).WithDetails(err.Error())
	}
	if total == 0 {
		return nil, apperrors.NewProcessingError("Failed to split PDF", domain.ErrNoPages)
	}

	if errs := ValidateSelection(req, total); len(errs) > 0 {
		return nil, apperrors.NewValidationError("Validation errors", errs...)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	units := splitUnits(req, total)
	now := s.now()

	if req.SinglePDF {
		pages := combinedPages(units)
		outs, err := s.engine.ExtractPages(doc.Data, [][]int{pages})
		if err != nil {
			return nil, apperrors.NewProcessingError("Failed to split PDF", err).WithDetails(err.Error())
		}
		s.logger.Info("Extracted pages into one document", "file", doc.Name, "pages", len(pages))
		return &domain.FileResult{
			Filename:    timestamped("extracted_pages", "pdf", now),
			ContentType: domain.ContentTypePDF,
			Data:        outs[0],
		}, nil
	}

	groups := make([][]int, 0, len(units)+1)
	for _, u := range units {
		groups = append(groups, u.pages)
	}
	if req.MergeAll {
		groups = append(groups, combinedPages(units))
	}

	outs, err := s.engine.ExtractPages(doc.Data, groups)
	if err != nil {
		return nil, apperrors.NewProcessingError("Failed to split PDF", err).WithDetails(err.Error())
	}

	entries := make([]archiveEntry, 0, len(outs))
	for i, u := range units {
		entries = append(entries, archiveEntry{Name: u.filename, Data: outs[i]})
	}
	if req.MergeAll {
		entries = append(entries, archiveEntry{Name: mergedSplitsName, Data: outs[len(outs)-1]})
	}

	archive, err := buildArchive(entries, -1, now)
	if err != nil {
		return nil, apperrors.NewInternalError("Failed to split PDF", err)
	}

	s.logger.Info("Split document", "file", doc.Name, "entries", len(entries), "total_pages", total)
	return &domain.FileResult{
		Filename:    timestamped("split_pdfs", "zip", now),
		ContentType: domain.ContentTypeZIP,
		Data:        archive,
	}, nil
}
