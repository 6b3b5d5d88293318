package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"pdf-workbench/internal/domain"
	apperrors "pdf-workbench/pkg/errors"
)

// multipartMemory is how much of a multipart body is kept in memory before
// spilling to temporary files.
const multipartMemory = 32 << 20

type contextKey string

const requestIDContextKey contextKey = "request_id"

// RequestIDFromContext returns the id assigned by the request id middleware.
func RequestIDFromContext(r *http.Request) (string, bool) {
	id, ok := r.Context().Value(requestIDContextKey).(string)
	return id, ok
}

// writeError writes an error response (helper function)
func writeError(w http.ResponseWriter, statusCode int, message string) {
	writeJSON(w, statusCode, map[string]string{"error": message})
}

// writeJSON writes a JSON response
func writeJSON(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(data)
}

// writeAppError maps service errors to JSON responses. Anything that is not an
// AppError is reported as a 500 without leaking its text.
func writeAppError(w http.ResponseWriter, logger domain.Logger, err error) {
	var maxErr *http.MaxBytesError
	if errors.As(err, &maxErr) {
		writeError(w, http.StatusRequestEntityTooLarge, fmt.Sprintf("Request body exceeds %d bytes", maxErr.Limit))
		return
	}

	appErr, ok := apperrors.As(err)
	if !ok {
		logger.Error("Unhandled error", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	if appErr.StatusCode >= http.StatusInternalServerError {
		logger.Error(appErr.Message, appErr.Cause)
	} else if appErr.Cause != nil {
		logger.Warn(appErr.Message, "error", appErr.Cause)
	}
	writeJSON(w, appErr.StatusCode, appErr)
}

// sendFile streams a finished result as an attachment.
func sendFile(w http.ResponseWriter, res *domain.FileResult) {
	w.Header().Set("Content-Type", res.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", res.Filename))
	w.Header().Set("Content-Length", strconv.Itoa(len(res.Data)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(res.Data)
}

// parseMultipart parses the form once; calling it again is a no-op.
func parseMultipart(r *http.Request) error {
	if r.MultipartForm != nil {
		return nil
	}
	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return err
		}
		return apperrors.NewValidationError("Invalid multipart form")
	}
	return nil
}

// readUploads returns every file posted under field, in submission order.
func readUploads(r *http.Request, field string) ([]domain.UploadedDocument, error) {
	if err := parseMultipart(r); err != nil {
		return nil, err
	}

	headers := r.MultipartForm.File[field]
	docs := make([]domain.UploadedDocument, 0, len(headers))
	for _, fh := range headers {
		doc, err := readFileHeader(fh)
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	return docs, nil
}

// readUpload returns the single file posted under field.
func readUpload(r *http.Request, field string) (domain.UploadedDocument, error) {
	docs, err := readUploads(r, field)
	if err != nil {
		return domain.UploadedDocument{}, err
	}
	if len(docs) == 0 || docs[0].Name == "" {
		return domain.UploadedDocument{}, apperrors.NewValidationError("Invalid PDF file")
	}
	return docs[0], nil
}

func readFileHeader(fh *multipart.FileHeader) (domain.UploadedDocument, error) {
	f, err := fh.Open()
	if err != nil {
		return domain.UploadedDocument{}, apperrors.NewValidationError("Unable to read uploaded file", fh.Filename)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return domain.UploadedDocument{}, apperrors.NewValidationError("Unable to read uploaded file", fh.Filename)
	}
	return domain.UploadedDocument{Name: fh.Filename, Data: data}, nil
}

// asBodyError keeps size limit errors intact and turns everything else into a 400.
func asBodyError(err error) error {
	var maxErr *http.MaxBytesError
	if errors.As(err, &maxErr) {
		return err
	}
	return apperrors.NewValidationError("Invalid JSON data")
}

// formBool treats "true" in any case as true and everything else as false.
func formBool(r *http.Request, key string) bool {
	return strings.EqualFold(strings.TrimSpace(r.FormValue(key)), "true")
}
