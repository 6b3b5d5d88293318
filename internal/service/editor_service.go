package service

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"strings"
	"time"
	"unicode/utf8"

	"pdf-workbench/internal/domain"
	apperrors "pdf-workbench/pkg/errors"
)

const (
	// editorDPI is zoom 2.0 over the 72 DPI PDF base.
	editorDPI = 144
	// previewDPI is zoom 0.5.
	previewDPI = 36

	previewTextLimit = 200
	pngDataURLPrefix = "data:image/png;base64,"
)

// PDFEditorService backs the browser page editor.
type PDFEditorService struct {
	engine       domain.DocumentEngine
	rasterizer   domain.Rasterizer
	extractor    domain.TextExtractor
	encoder      domain.ImageEncoder
	logger       domain.Logger
	previewLimit int
	now          Clock
}

// NewEditorService creates a new editor service
func NewEditorService(
	engine domain.DocumentEngine,
	rasterizer domain.Rasterizer,
	extractor domain.TextExtractor,
	encoder domain.ImageEncoder,
	logger domain.Logger,
	previewLimit int,
) *PDFEditorService {
	if previewLimit < 1 {
		previewLimit = 20
	}
	return &PDFEditorService{
		engine:       engine,
		rasterizer:   rasterizer,
		extractor:    extractor,
		encoder:      encoder,
		logger:       logger,
		previewLimit: previewLimit,
		now:          time.Now,
	}
}

// PageImages renders every page as a PNG data URL.
func (s *PDFEditorService) PageImages(ctx context.Context, doc domain.UploadedDocument) ([]string, error) {
	if !doc.IsPDF() {
		return nil, apperrors.NewValidationError("Invalid PDF file")
	}

	var pages []string
	_, err := s.rasterizer.RenderPages(doc.Data, editorDPI, 0, func(page int, img image.Image) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		url, err := s.pngDataURL(img)
		if err != nil {
			return fmt.Errorf("page %d: %w", page, err)
		}
		pages = append(pages, url)
		return nil
	})
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, apperrors.NewProcessingError("Failed to convert PDF to images", err)
	}

	s.logger.Info("Rendered document for editing", "file", doc.Name, "pages", len(pages))
	return pages, nil
}

// Info reports page count and size.
func (s *PDFEditorService) Info(ctx context.Context, doc domain.UploadedDocument) (*domain.DocumentInfo, error) {
	if !doc.IsPDF() {
		return nil, apperrors.NewValidationError("Invalid PDF file")
	}

	total, err := s.engine.PageCount(doc.Data)
	if err != nil {
		return nil, apperrors.NewProcessingError("Failed to read PDF", err)
	}

	return &domain.DocumentInfo{
		TotalPages: total,
		Filename:   doc.Name,
		Size:       int64(len(doc.Data)),
	}, nil
}

// Previews renders thumbnails of the first pages. When rendering fails it
// falls back to a short text excerpt per page.
func (s *PDFEditorService) Previews(ctx context.Context, doc domain.UploadedDocument) (*domain.PreviewSet, error) {
	if !doc.IsPDF() {
		return nil, apperrors.NewValidationError("Invalid PDF file")
	}

	var previews []domain.PagePreview
	total, err := s.rasterizer.RenderPages(doc.Data, previewDPI, s.previewLimit, func(page int, img image.Image) error {
		url, err := s.pngDataURL(img)
		if err != nil {
			return err
		}
		previews = append(previews, domain.PagePreview{Page: page, Image: &url})
		return nil
	})
	if err == nil {
		return &domain.PreviewSet{Previews: previews, HasMore: total > s.previewLimit}, nil
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		return nil, ctxErr
	}

	s.logger.Warn("Preview rendering failed, using text previews", "file", doc.Name, "error", err)
	return s.textPreviews(doc)
}

func (s *PDFEditorService) textPreviews(doc domain.UploadedDocument) (*domain.PreviewSet, error) {
	texts, total, err := s.extractor.PageTexts(doc.Data, s.previewLimit)
	if err != nil {
		return nil, apperrors.NewProcessingError("Failed to generate previews", err)
	}

	previews := make([]domain.PagePreview, 0, len(texts))
	for i, t := range texts {
		previews = append(previews, domain.PagePreview{Page: i + 1, Text: truncateRunes(t, previewTextLimit)})
	}
	return &domain.PreviewSet{
		Previews: previews,
		HasMore:  total > s.previewLimit,
		TextOnly: true,
	}, nil
}

// SaveEdited assembles one page per image, in list order.
func (s *PDFEditorService) SaveEdited(ctx context.Context, pages []domain.EditedPage) (*domain.FileResult, error) {
	if len(pages) == 0 {
		return nil, apperrors.NewValidationError("No page data provided")
	}

	images := make([][]byte, 0, len(pages))
	for i, p := range pages {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		img, err := decodePageImage(p.Data)
		if err != nil {
			return nil, apperrors.NewValidationError("Invalid image data",
				fmt.Sprintf("Page %d: %v", editedPageNumber(p, i), err))
		}
		images = append(images, img)
	}

	out, err := s.engine.ImagesToPDF(images, nil, nil)
	if err != nil {
		return nil, apperrors.NewProcessingError("Failed to save PDF", err)
	}

	s.logger.Info("Saved edited document", "pages", len(images), "bytes", len(out))
	return &domain.FileResult{
		Filename:    timestamped("edited_pdf", "pdf", s.now()),
		ContentType: domain.ContentTypePDF,
		Data:        out,
	}, nil
}

func (s *PDFEditorService) pngDataURL(img image.Image) (string, error) {
	encoded, err := s.encoder.EncodePNG(img)
	if err != nil {
		return "", err
	}
	return pngDataURLPrefix + base64.StdEncoding.EncodeToString(encoded), nil
}

// decodePageImage strips an optional data URL header, decodes the base64
// payload and checks that it is a PNG or JPEG image.
func decodePageImage(data string) ([]byte, error) {
	payload := strings.TrimSpace(data)
	if payload == "" {
		return nil, fmt.Errorf("%w: empty data", domain.ErrInvalidImage)
	}
	if strings.HasPrefix(payload, "data:") {
		comma := strings.IndexByte(payload, ',')
		if comma < 0 {
			return nil, fmt.Errorf("%w: malformed data URL", domain.ErrInvalidImage)
		}
		payload = payload[comma+1:]
	}

	raw, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		var rawErr error
		raw, rawErr = base64.RawStdEncoding.DecodeString(payload)
		if rawErr != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrInvalidImage, err)
		}
	}

	if _, _, err := image.DecodeConfig(bytes.NewReader(raw)); err != nil {
		if errors.Is(err, image.ErrFormat) {
			return nil, fmt.Errorf("%w: unsupported format", domain.ErrInvalidImage)
		}
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidImage, err)
	}
	return raw, nil
}

func editedPageNumber(p domain.EditedPage, index int) int {
	if p.Page > 0 {
		return p.Page
	}
	return index + 1
}

func truncateRunes(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}
