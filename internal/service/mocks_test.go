package service

import (
	"archive/zip"
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"io"
	"math"
	"testing"
	"time"

	"pdf-workbench/internal/domain"
	"pdf-workbench/internal/infra/pdfengine"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// Mock implementations for testing
type MockLogger struct{}

func (MockLogger) Info(msg string, fields ...interface{})             {}
func (MockLogger) Error(msg string, err error, fields ...interface{}) {}
func (MockLogger) Debug(msg string, fields ...interface{})            {}
func (MockLogger) Warn(msg string, fields ...interface{})             {}

var fixedTime = time.Date(2024, 3, 9, 14, 5, 7, 0, time.UTC)

func fixedClock() time.Time { return fixedTime }

// MockRasterizer renders a blank bitmap per page, sized from the engine's page
// sizes at the requested dpi.
type MockRasterizer struct {
	engine domain.DocumentEngine
	err    error
	dpis   []float64
}

func (m *MockRasterizer) RenderPages(data []byte, dpi float64, limit int, fn domain.PageRenderFunc) (int, error) {
	m.dpis = append(m.dpis, dpi)
	if m.err != nil {
		return 0, m.err
	}
	sizes, err := m.engine.PageSizes(data)
	if err != nil {
		return 0, err
	}
	total := len(sizes)
	n := total
	if limit > 0 && limit < n {
		n = limit
	}
	for i := 0; i < n; i++ {
		w := max(1, int(math.Round(sizes[i].Width*dpi/72)))
		h := max(1, int(math.Round(sizes[i].Height*dpi/72)))
		if err := fn(i+1, solidImage(w, h, 200)); err != nil {
			return total, err
		}
	}
	return total, nil
}

// MockExtractor returns canned page texts.
type MockExtractor struct {
	texts []string
	total int
	err   error
}

func (m *MockExtractor) PageTexts(data []byte, limit int) ([]string, int, error) {
	if m.err != nil {
		return nil, 0, m.err
	}
	texts := m.texts
	if limit > 0 && limit < len(texts) {
		texts = texts[:limit]
	}
	return texts, m.total, nil
}

// MockEncoder encodes with the standard library so tests do not depend on imaging.
type MockEncoder struct{}

func (MockEncoder) EncodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	err := png.Encode(&buf, img)
	return buf.Bytes(), err
}

func (MockEncoder) EncodeJPEG(img image.Image, quality int) ([]byte, error) {
	// PNG is accepted by the image importer as well.
	return MockEncoder{}.EncodePNG(img)
}

// failingOptimizeEngine wraps a real engine and breaks Optimize.
type failingOptimizeEngine struct {
	domain.DocumentEngine
}

func (failingOptimizeEngine) Optimize(data []byte, profile domain.CompressionProfile) ([]byte, error) {
	return nil, errors.New("optimize unavailable")
}

func newTestEngine() *pdfengine.Engine {
	return pdfengine.NewEngine(MockLogger{})
}

func solidImage(w, h int, shade uint8) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: shade, G: shade, B: shade, A: 255})
		}
	}
	return img
}

func encodePNG(t *testing.T, img image.Image) []byte {
	t.Helper()
	data, err := MockEncoder{}.EncodePNG(img)
	if err != nil {
		t.Fatalf("failed to encode png: %v", err)
	}
	return data
}

// buildPDF returns a document whose page i (1-based) is 100+i points wide,
// so page order can be read back from the widths.
func buildPDF(t *testing.T, firstWidth, pages int) []byte {
	t.Helper()
	images := make([][]byte, pages)
	for i := range images {
		images[i] = encodePNG(t, solidImage(firstWidth+i, 50, uint8(30*i)))
	}
	data, err := newTestEngine().ImagesToPDF(images, nil, nil)
	if err != nil {
		t.Fatalf("failed to build test PDF: %v", err)
	}
	return data
}

func pageWidths(t *testing.T, data []byte) []int {
	t.Helper()
	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed
	dims, err := api.PageDims(bytes.NewReader(data), conf)
	if err != nil {
		t.Fatalf("failed to read page dims: %v", err)
	}
	widths := make([]int, len(dims))
	for i, d := range dims {
		widths[i] = int(math.Round(d.Width))
	}
	return widths
}

func pageCount(t *testing.T, data []byte) int {
	t.Helper()
	n, err := newTestEngine().PageCount(data)
	if err != nil {
		t.Fatalf("failed to count pages: %v", err)
	}
	return n
}

// readArchive returns the entry names in order and their contents.
func readArchive(t *testing.T, data []byte) ([]string, map[string][]byte) {
	t.Helper()
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		t.Fatalf("failed to open archive: %v", err)
	}
	names := make([]string, 0, len(zr.File))
	files := make(map[string][]byte, len(zr.File))
	for _, f := range zr.File {
		rc, err := f.Open()
		if err != nil {
			t.Fatalf("failed to open %s: %v", f.Name, err)
		}
		b, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			t.Fatalf("failed to read %s: %v", f.Name, err)
		}
		names = append(names, f.Name)
		files[f.Name] = b
	}
	return names, files
}
