package service

import (
	"context"
	"net/http"
	"testing"

	"pdf-workbench/internal/domain"
	apperrors "pdf-workbench/pkg/errors"

	"github.com/google/go-cmp/cmp"
)

func newSplitService() *PDFSplitService {
	s := NewSplitService(newTestEngine(), MockLogger{})
	s.now = fixedClock
	return s
}

func TestSplitService_Split_EveryPage(t *testing.T) {
	doc := domain.UploadedDocument{Name: "report.pdf", Data: buildPDF(t, 100, 4)}

	res, err := newSplitService().Split(context.Background(), doc, domain.SplitRequest{})
	if err != nil {
		t.Fatalf("Split() error = %v", err)
	}
	if res.Filename != "split_pdfs_20240309_140507.zip" || res.ContentType != domain.ContentTypeZIP {
		t.Fatalf("unexpected result %q (%s)", res.Filename, res.ContentType)
	}

	names, files := readArchive(t, res.Data)
	wantNames := []string{"page_1.pdf", "page_2.pdf", "page_3.pdf", "page_4.pdf"}
	if diff := cmp.Diff(wantNames, names); diff != "" {
		t.Fatalf("entries mismatch (-want +got):\n%s", diff)
	}

	var widths []int
	for _, name := range names {
		widths = append(widths, pageWidths(t, files[name])...)
	}
	if diff := cmp.Diff([]int{100, 101, 102, 103}, widths); diff != "" {
		t.Errorf("each page should appear exactly once (-want +got):\n%s", diff)
	}
}

func TestSplitService_Split_RangesWithMergeAll(t *testing.T) {
	doc := domain.UploadedDocument{Name: "report.pdf", Data: buildPDF(t, 100, 6)}
	req := domain.SplitRequest{
		Ranges:   []domain.PageRange{{Start: 4, End: 5}, {Start: 1, End: 2}, {Start: 2, End: 3}},
		Pages:    []int{6},
		MergeAll: true,
	}

	res, err := newSplitService().Split(context.Background(), doc, req)
	if err != nil {
		t.Fatalf("Split() error = %v", err)
	}

	names, files := readArchive(t, res.Data)
	wantNames := []string{"pages_4_to_5.pdf", "pages_1_to_2.pdf", "pages_2_to_3.pdf", "merged_all_splits.pdf"}
	if diff := cmp.Diff(wantNames, names); diff != "" {
		t.Fatalf("entries mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]int{103, 104}, pageWidths(t, files["pages_4_to_5.pdf"])); diff != "" {
		t.Errorf("range pages mismatch (-want +got):\n%s", diff)
	}
	// Ranges win over pages, so page 6 is not part of the union.
	if diff := cmp.Diff([]int{100, 101, 102, 103, 104}, pageWidths(t, files["merged_all_splits.pdf"])); diff != "" {
		t.Errorf("combined pages mismatch (-want +got):\n%s", diff)
	}
}

func TestSplitService_Split_SinglePDF(t *testing.T) {
	doc := domain.UploadedDocument{Name: "report.pdf", Data: buildPDF(t, 100, 5)}
	req := domain.SplitRequest{Pages: []int{5, 2, 5, 3}, SinglePDF: true}

	res, err := newSplitService().Split(context.Background(), doc, req)
	if err != nil {
		t.Fatalf("Split() error = %v", err)
	}
	if res.Filename != "extracted_pages_20240309_140507.pdf" || res.ContentType != domain.ContentTypePDF {
		t.Fatalf("unexpected result %q (%s)", res.Filename, res.ContentType)
	}
	if diff := cmp.Diff([]int{101, 102, 104}, pageWidths(t, res.Data)); diff != "" {
		t.Errorf("pages mismatch (-want +got):\n%s", diff)
	}
}

func TestSplitService_Split_ValidationErrors(t *testing.T) {
	doc := domain.UploadedDocument{Name: "report.pdf", Data: buildPDF(t, 100, 3)}
	req := domain.SplitRequest{
		Ranges: []domain.PageRange{{Start: 0, End: 2}, {Start: 3, End: 2}},
		Pages:  []int{9},
	}

	_, err := newSplitService().Split(context.Background(), doc, req)
	appErr, ok := apperrors.As(err)
	if !ok {
		t.Fatalf("expected AppError, got %v", err)
	}
	if appErr.StatusCode != http.StatusBadRequest || appErr.Message != "Validation errors" {
		t.Errorf("unexpected error %d %q", appErr.StatusCode, appErr.Message)
	}
	want := []string{
		"Range 1: Start page 0 is out of bounds (1-3)",
		"Range 2: Start page 3 cannot be greater than end page 2",
		"Page 9 is out of bounds (1-3)",
	}
	if diff := cmp.Diff(want, appErr.Details); diff != "" {
		t.Errorf("details mismatch (-want +got):\n%s", diff)
	}
}

func TestSplitService_Split_RejectsInput(t *testing.T) {
	tests := []struct {
		name       string
		doc        domain.UploadedDocument
		wantStatus int
	}{
		{"wrong extension", domain.UploadedDocument{Name: "a.docx", Data: []byte("x")}, http.StatusBadRequest},
		{"unreadable", domain.UploadedDocument{Name: "a.pdf", Data: []byte("x")}, http.StatusUnprocessableEntity},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := newSplitService().Split(context.Background(), tt.doc, domain.SplitRequest{})
			if got := apperrors.GetStatusCode(err); got != tt.wantStatus {
				t.Errorf("status = %d, want %d (err: %v)", got, tt.wantStatus, err)
			}
		})
	}
}
