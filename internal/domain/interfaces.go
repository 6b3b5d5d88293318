package domain

import (
	"context"
	"image"
)

// DocumentEngine covers the structural PDF operations delegated to a PDF library.
type DocumentEngine interface {
	PageCount(data []byte) (int, error)
	Rotate(data []byte, degrees int) ([]byte, error)
	Merge(docs [][]byte) ([]byte, error)
	// ExtractPages returns one document per page group, pages kept in the given order.
	ExtractPages(data []byte, groups [][]int) ([][]byte, error)
	Optimize(data []byte, profile CompressionProfile) ([]byte, error)
	// PageSizes returns the size of every page in points.
	PageSizes(data []byte) ([]PageSize, error)
	// ImagesToPDF builds a document with one page per encoded image. With sizes
	// each image fills a page of sizes[i], otherwise pages are one point per pixel.
	ImagesToPDF(images [][]byte, sizes []PageSize, profile *CompressionProfile) ([]byte, error)
}

// PageRenderFunc receives each rendered page (1-based).
type PageRenderFunc func(page int, img image.Image) error

// Rasterizer renders PDF pages to bitmaps.
type Rasterizer interface {
	// RenderPages renders up to limit pages (all when limit <= 0) at dpi and
	// returns the total page count of the document.
	RenderPages(data []byte, dpi float64, limit int, fn PageRenderFunc) (int, error)
}

// TextExtractor pulls plain text out of PDF pages.
type TextExtractor interface {
	// PageTexts returns the text of up to limit pages and the total page count.
	PageTexts(data []byte, limit int) ([]string, int, error)
}

// ImageEncoder encodes bitmaps for embedding or transport.
type ImageEncoder interface {
	EncodePNG(img image.Image) ([]byte, error)
	EncodeJPEG(img image.Image, quality int) ([]byte, error)
}

// MergeService concatenates documents.
type MergeService interface {
	Merge(ctx context.Context, docs []UploadedDocument, rotations map[int]int) (*FileResult, error)
}

// SplitService extracts page selections.
type SplitService interface {
	Split(ctx context.Context, doc UploadedDocument, req SplitRequest) (*FileResult, error)
}

// CompressService recompresses documents.
type CompressService interface {
	Compress(ctx context.Context, docs []UploadedDocument, profile CompressionProfile) (*FileResult, error)
}

// EditorService backs the page editor endpoints.
type EditorService interface {
	PageImages(ctx context.Context, doc UploadedDocument) ([]string, error)
	Info(ctx context.Context, doc UploadedDocument) (*DocumentInfo, error)
	Previews(ctx context.Context, doc UploadedDocument) (*PreviewSet, error)
	SaveEdited(ctx context.Context, pages []EditedPage) (*FileResult, error)
}

// Logger defines the interface for logging operations
type Logger interface {
	Info(msg string, fields ...interface{})
	Error(msg string, err error, fields ...interface{})
	Debug(msg string, fields ...interface{})
	Warn(msg string, fields ...interface{})
}

// Config defines the interface for configuration management
type Config interface {
	GetServerPort() string
	GetUploadPath() string
	GetMaxFileSize() int64
	GetLogLevel() string
	GetAllowedOrigins() []string
	GetPreviewPageLimit() int
	GetCompressWorkers() int
}
