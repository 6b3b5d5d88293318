package handler

import (
	"bytes"
	"context"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"pdf-workbench/internal/domain"
)

// Mock implementations for handler testing
type MockMergeService struct {
	docs      []domain.UploadedDocument
	rotations map[int]int
	result    *domain.FileResult
	err       error
}

func (m *MockMergeService) Merge(ctx context.Context, docs []domain.UploadedDocument, rotations map[int]int) (*domain.FileResult, error) {
	m.docs, m.rotations = docs, rotations
	return m.result, m.err
}

type MockSplitService struct {
	doc    domain.UploadedDocument
	req    domain.SplitRequest
	called bool
	result *domain.FileResult
	err    error
}

func (m *MockSplitService) Split(ctx context.Context, doc domain.UploadedDocument, req domain.SplitRequest) (*domain.FileResult, error) {
	m.doc, m.req, m.called = doc, req, true
	return m.result, m.err
}

type MockCompressService struct {
	docs    []domain.UploadedDocument
	profile domain.CompressionProfile
	result  *domain.FileResult
	err     error
}

func (m *MockCompressService) Compress(ctx context.Context, docs []domain.UploadedDocument, profile domain.CompressionProfile) (*domain.FileResult, error) {
	m.docs, m.profile = docs, profile
	return m.result, m.err
}

type MockEditorService struct {
	pages    []string
	info     *domain.DocumentInfo
	previews *domain.PreviewSet
	edited   []domain.EditedPage
	result   *domain.FileResult
	err      error
}

func (m *MockEditorService) PageImages(ctx context.Context, doc domain.UploadedDocument) ([]string, error) {
	return m.pages, m.err
}

func (m *MockEditorService) Info(ctx context.Context, doc domain.UploadedDocument) (*domain.DocumentInfo, error) {
	return m.info, m.err
}

func (m *MockEditorService) Previews(ctx context.Context, doc domain.UploadedDocument) (*domain.PreviewSet, error) {
	return m.previews, m.err
}

func (m *MockEditorService) SaveEdited(ctx context.Context, pages []domain.EditedPage) (*domain.FileResult, error) {
	m.edited = pages
	return m.result, m.err
}

type formFile struct {
	field, name string
	data        []byte
}

// newMultipartRequest builds a POST request carrying files and plain fields.
func newMultipartRequest(t *testing.T, target string, files []formFile, fields map[string]string) *http.Request {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	for _, f := range files {
		fw, err := mw.CreateFormFile(f.field, f.name)
		if err != nil {
			t.Fatalf("failed to create form file: %v", err)
		}
		if _, err := fw.Write(f.data); err != nil {
			t.Fatalf("failed to write form file: %v", err)
		}
	}
	for k, v := range fields {
		if err := mw.WriteField(k, v); err != nil {
			t.Fatalf("failed to write field: %v", err)
		}
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("failed to close multipart writer: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, target, &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}
