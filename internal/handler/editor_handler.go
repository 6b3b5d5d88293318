package handler

import (
	"encoding/json"
	"net/http"

	"pdf-workbench/internal/domain"
)

// EditorHandler serves the endpoints behind the browser page editor
type EditorHandler struct {
	editorService domain.EditorService
	logger        domain.Logger
}

// NewEditorHandler creates a new editor handler
func NewEditorHandler(editorService domain.EditorService, logger domain.Logger) *EditorHandler {
	return &EditorHandler{editorService: editorService, logger: logger}
}

type pageImagesResponse struct {
	Pages      []string `json:"pages"`
	TotalPages int      `json:"total_pages"`
}

type saveEditedRequest struct {
	Pages []domain.EditedPage `json:"pages"`
}

// PDFToImages handles POST /pdf-to-images
func (h *EditorHandler) PDFToImages(w http.ResponseWriter, r *http.Request) {
	doc, err := readUpload(r, "file")
	if err != nil {
		writeAppError(w, h.logger, err)
		return
	}

	pages, err := h.editorService.PageImages(r.Context(), doc)
	if err != nil {
		writeAppError(w, h.logger, err)
		return
	}
	if pages == nil {
		pages = []string{}
	}

	writeJSON(w, http.StatusOK, pageImagesResponse{Pages: pages, TotalPages: len(pages)})
}

// PDFInfo handles POST /pdf-info
func (h *EditorHandler) PDFInfo(w http.ResponseWriter, r *http.Request) {
	doc, err := readUpload(r, "file")
	if err != nil {
		writeAppError(w, h.logger, err)
		return
	}

	info, err := h.editorService.Info(r.Context(), doc)
	if err != nil {
		writeAppError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, info)
}

// PDFPreviews handles POST /pdf-previews
func (h *EditorHandler) PDFPreviews(w http.ResponseWriter, r *http.Request) {
	doc, err := readUpload(r, "file")
	if err != nil {
		writeAppError(w, h.logger, err)
		return
	}

	set, err := h.editorService.Previews(r.Context(), doc)
	if err != nil {
		writeAppError(w, h.logger, err)
		return
	}
	if set.Previews == nil {
		set.Previews = []domain.PagePreview{}
	}
	writeJSON(w, http.StatusOK, set)
}

// SaveEditedPDF handles POST /save-edited-pdf
func (h *EditorHandler) SaveEditedPDF(w http.ResponseWriter, r *http.Request) {
	var req saveEditedRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeAppError(w, h.logger, asBodyError(err))
		return
	}

	res, err := h.editorService.SaveEdited(r.Context(), req.Pages)
	if err != nil {
		writeAppError(w, h.logger, err)
		return
	}
	sendFile(w, res)
}
