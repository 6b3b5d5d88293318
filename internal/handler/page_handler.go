package handler

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"net/http"

	"pdf-workbench/internal/domain"
	apperrors "pdf-workbench/pkg/errors"
)

//go:embed templates/*.html
var templateFS embed.FS

type navItem struct {
	Path        string
	Label       string
	Description string
	template    string
}

var navigation = []navItem{
	{Path: "/", Label: "Home", template: "index"},
	{Path: "/merge", Label: "Merge", Description: "join several documents into one", template: "merge"},
	{Path: "/split", Label: "Split", Description: "extract page ranges or single pages", template: "split"},
	{Path: "/compress", Label: "Compress", Description: "shrink documents by re-rendering their pages", template: "compress"},
	{Path: "/edit", Label: "Edit", Description: "draw on pages in the browser and save the result", template: "edit"},
}

type pageData struct {
	Title    string
	Path     string
	Nav      []navItem
	Profiles []domain.CompressionProfile
}

// PageHandler renders the HTML pages of the web UI
type PageHandler struct {
	pages  map[string]*template.Template
	logger domain.Logger
}

// NewPageHandler parses the embedded templates.
func NewPageHandler(logger domain.Logger) (*PageHandler, error) {
	pages := make(map[string]*template.Template, len(navigation))
	for _, item := range navigation {
		tmpl, err := template.ParseFS(templateFS, "templates/layout.html", "templates/"+item.template+".html")
		if err != nil {
			return nil, fmt.Errorf("failed to parse %s template: %w", item.template, err)
		}
		pages[item.Path] = tmpl
	}
	return &PageHandler{pages: pages, logger: logger}, nil
}

// Render returns a handler for one navigation path.
func (h *PageHandler) Render(path string) http.HandlerFunc {
	title := "PDF Workbench"
	for _, item := range navigation {
		if item.Path == path && item.Path != "/" {
			title = item.Label
		}
	}

	return func(w http.ResponseWriter, r *http.Request) {
		tmpl, ok := h.pages[path]
		if !ok {
			writeAppError(w, h.logger, apperrors.NewNotFoundError("Page not found"))
			return
		}

		data := pageData{Title: title, Path: path, Nav: navigation, Profiles: domain.Profiles()}

		var buf bytes.Buffer
		if err := tmpl.ExecuteTemplate(&buf, "layout", data); err != nil {
			h.logger.Error("Failed to render page", err, "path", path)
			writeError(w, http.StatusInternalServerError, "Internal server error")
			return
		}

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = buf.WriteTo(w)
	}
}

// Paths lists every page path served by the handler.
func (h *PageHandler) Paths() []string {
	paths := make([]string, 0, len(navigation))
	for _, item := range navigation {
		paths = append(paths, item.Path)
	}
	return paths
}
