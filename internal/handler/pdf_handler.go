package handler

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"pdf-workbench/internal/domain"
	apperrors "pdf-workbench/pkg/errors"
)

// PDFHandler handles the merge, split and compress endpoints
type PDFHandler struct {
	mergeService    domain.MergeService
	splitService    domain.SplitService
	compressService domain.CompressService
	logger          domain.Logger
}

// NewPDFHandler creates a new PDF handler instance
func NewPDFHandler(
	mergeService domain.MergeService,
	splitService domain.SplitService,
	compressService domain.CompressService,
	logger domain.Logger,
) *PDFHandler {
	return &PDFHandler{
		mergeService:    mergeService,
		splitService:    splitService,
		compressService: compressService,
		logger:          logger,
	}
}

// Merge handles POST /merge
func (h *PDFHandler) Merge(w http.ResponseWriter, r *http.Request) {
	docs, err := readUploads(r, "files")
	if err != nil {
		writeAppError(w, h.logger, err)
		return
	}

	rotations := h.parseRotations(r.FormValue("metadata"))

	res, err := h.mergeService.Merge(r.Context(), docs, rotations)
	if err != nil {
		writeAppError(w, h.logger, err)
		return
	}
	sendFile(w, res)
}

// parseRotations reads {"<index>": {"rotation": deg}}. Malformed metadata is
// ignored; rotations that are not quarter turns are passed on so the merge
// skips that file.
func (h *PDFHandler) parseRotations(raw string) map[int]int {
	if strings.TrimSpace(raw) == "" {
		return nil
	}

	var meta map[string]struct {
		Rotation int `json:"rotation"`
	}
	if err := json.Unmarshal([]byte(raw), &meta); err != nil {
		h.logger.Warn("Ignoring malformed merge metadata", "error", err)
		return nil
	}

	rotations := make(map[int]int, len(meta))
	for key, m := range meta {
		idx, err := strconv.Atoi(key)
		if err != nil || idx < 0 {
			h.logger.Warn("Ignoring merge metadata entry", "key", key)
			continue
		}
		if m.Rotation != 0 {
			rotations[idx] = m.Rotation
		}
	}
	return rotations
}

// Split handles POST /split-pdf
func (h *PDFHandler) Split(w http.ResponseWriter, r *http.Request) {
	doc, err := readUpload(r, "file")
	if err != nil {
		writeAppError(w, h.logger, err)
		return
	}

	req := domain.SplitRequest{
		SinglePDF: formBool(r, "singlePDF"),
		MergeAll:  formBool(r, "mergeAll"),
	}
	if err := decodeFormJSON(r, "ranges", &req.Ranges); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid range data")
		return
	}
	if err := decodeFormJSON(r, "splitPages", &req.Pages); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid range data")
		return
	}

	res, err := h.splitService.Split(r.Context(), doc, req)
	if err != nil {
		writeAppError(w, h.logger, err)
		return
	}
	sendFile(w, res)
}

// Compress handles POST /compress
func (h *PDFHandler) Compress(w http.ResponseWriter, r *http.Request) {
	docs, err := readUploads(r, "files")
	if err != nil {
		writeAppError(w, h.logger, err)
		return
	}
	if len(docs) == 0 {
		writeAppError(w, h.logger, apperrors.NewValidationError("No files provided"))
		return
	}

	profile := domain.LookupProfile(r.FormValue("level"))

	res, err := h.compressService.Compress(r.Context(), docs, profile)
	if err != nil {
		writeAppError(w, h.logger, err)
		return
	}
	sendFile(w, res)
}

// decodeFormJSON leaves v untouched when the field is absent or blank.
func decodeFormJSON(r *http.Request, key string, v interface{}) error {
	raw := strings.TrimSpace(r.FormValue(key))
	if raw == "" {
		return nil
	}
	return json.Unmarshal([]byte(raw), v)
}
