package mupdf

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"testing"
)

func gradient(w, h int) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x), G: uint8(y), B: uint8(x ^ y), A: 255})
		}
	}
	return img
}

func TestEncoder_EncodePNG(t *testing.T) {
	data, err := NewEncoder().EncodePNG(gradient(40, 30))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	cfg, err := png.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("output is not a PNG: %v", err)
	}
	if cfg.Width != 40 || cfg.Height != 30 {
		t.Fatalf("expected 40x30, got %dx%d", cfg.Width, cfg.Height)
	}
}

func TestEncoder_EncodeJPEG(t *testing.T) {
	enc := NewEncoder()
	img := gradient(128, 128)

	high, err := enc.EncodeJPEG(img, 95)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	low, err := enc.EncodeJPEG(img, 20)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := jpeg.DecodeConfig(bytes.NewReader(low)); err != nil {
		t.Fatalf("output is not a JPEG: %v", err)
	}
	if len(low) >= len(high) {
		t.Fatalf("expected lower quality to produce fewer bytes (%d >= %d)", len(low), len(high))
	}

	if _, err := enc.EncodeJPEG(img, 0); err == nil {
		t.Fatalf("expected error for quality 0")
	}
}
