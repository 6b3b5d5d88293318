package handler

import (
	"net/http"

	"pdf-workbench/internal/domain"

	"github.com/gorilla/mux"
	"github.com/rs/cors"
)

// RouterOptions carries the settings the router needs from configuration.
type RouterOptions struct {
	AllowedOrigins []string
	MaxBodyBytes   int64
}

// NewRouter creates a new HTTP router with all routes configured
func NewRouter(
	pdfHandler *PDFHandler,
	editorHandler *EditorHandler,
	pageHandler *PageHandler,
	logger domain.Logger,
	opts RouterOptions,
) http.Handler {
	router := mux.NewRouter()
	router.Use(RequestIDMiddleware, LoggingMiddleware(logger), RecoveryMiddleware(logger))

	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok", "service": "pdf-workbench"})
	}).Methods(http.MethodGet)

	// HTML pages
	for _, path := range pageHandler.Paths() {
		router.HandleFunc(path, pageHandler.Render(path)).Methods(http.MethodGet)
	}

	// Document operations; bodies are bounded by the upload limit.
	api := router.NewRoute().Subrouter()
	api.Use(MaxBodyMiddleware(opts.MaxBodyBytes))

	api.HandleFunc("/merge", pdfHandler.Merge).Methods(http.MethodPost)
	api.HandleFunc("/split-pdf", pdfHandler.Split).Methods(http.MethodPost)
	api.HandleFunc("/compress", pdfHandler.Compress).Methods(http.MethodPost)

	api.HandleFunc("/pdf-to-images", editorHandler.PDFToImages).Methods(http.MethodPost)
	api.HandleFunc("/pdf-info", editorHandler.PDFInfo).Methods(http.MethodPost)
	api.HandleFunc("/pdf-previews", editorHandler.PDFPreviews).Methods(http.MethodPost)
	api.HandleFunc("/save-edited-pdf", editorHandler.SaveEditedPDF).Methods(http.MethodPost)

	router.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "Not found")
	})
	router.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
	})

	origins := opts.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	// Configure CORS
	c := cors.New(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{
			http.MethodGet,
			http.MethodPost,
			http.MethodOptions,
		},
		AllowedHeaders: []string{
			"Accept",
			"Content-Type",
			requestIDHeader,
		},
		ExposedHeaders: []string{
			"Content-Disposition",
			requestIDHeader,
		},
		MaxAge: 300, // Maximum value not ignored by any of major browsers
	})

	return c.Handler(router)
}
