package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"pdf-workbench/internal/config"
	"pdf-workbench/internal/handler"

	"github.com/joho/godotenv"
)

const shutdownTimeout = 30 * time.Second

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found or could not be loaded: %v", err)
	}
	// Wiring
	container, err := config.NewContainer()
	if err != nil {
		log.Fatalf("Failed to initialize application: %v", err)
	}
	cfg := container.Config

	// Multipart bodies larger than the in-memory threshold spill to os.TempDir.
	if dir, err := filepath.Abs(cfg.GetUploadPath()); err == nil {
		_ = os.Setenv("TMPDIR", dir)
	}

	// Handlers
	pdfHandler := handler.NewPDFHandler(
		container.MergeService,
		container.SplitService,
		container.CompressService,
		container.Logger,
	)
	editorHandler := handler.NewEditorHandler(
		container.EditorService,
		container.Logger,
	)
	pageHandler, err := handler.NewPageHandler(container.Logger)
	if err != nil {
		container.Logger.Error("Failed to load page templates", err)
		os.Exit(1)
	}

	// Router
	router := handler.NewRouter(
		pdfHandler,
		editorHandler,
		pageHandler,
		container.Logger,
		handler.RouterOptions{
			AllowedOrigins: cfg.GetAllowedOrigins(),
			MaxBodyBytes:   cfg.GetMaxFileSize(),
		},
	)

	// start server
	server := &http.Server{
		Addr:              ":" + cfg.GetServerPort(),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Run server
	go func() {
		container.Logger.Info("Server listening",
			"address", server.Addr,
			"max_file_size", cfg.GetMaxFileSize(),
			"compress_workers", cfg.GetCompressWorkers(),
		)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			container.Logger.Error("Server failed to start", err)
			os.Exit(1)
		}
	}()
	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	container.Logger.Info("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		container.Logger.Error("Graceful shutdown failed", err)
		_ = server.Close()
	}

	container.Logger.Info("Server exited")
}
