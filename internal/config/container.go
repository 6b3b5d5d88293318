package config

import (
	"fmt"
	"os"

	"pdf-workbench/internal/domain"
	"pdf-workbench/internal/infra/mupdf"
	"pdf-workbench/internal/infra/pdfengine"
	"pdf-workbench/internal/infra/pdftext"
	"pdf-workbench/internal/service"
	"pdf-workbench/pkg/logger"
)

// Container holds all application dependencies
type Container struct {
	Config domain.Config
	Logger domain.Logger

	Engine     domain.DocumentEngine
	Rasterizer domain.Rasterizer
	Extractor  domain.TextExtractor
	Encoder    domain.ImageEncoder

	MergeService    domain.MergeService
	SplitService    domain.SplitService
	CompressService domain.CompressService
	EditorService   domain.EditorService
}

// NewContainer creates a new dependency injection container
func NewContainer() (*Container, error) {
	return NewContainerWithConfig(NewConfig())
}

// NewContainerWithConfig wires the application around cfg.
func NewContainerWithConfig(cfg domain.Config) (*Container, error) {
	appLogger := logger.NewLogger(cfg.GetLogLevel())

	if err := os.MkdirAll(cfg.GetUploadPath(), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory %s: %w", cfg.GetUploadPath(), err)
	}

	engine := pdfengine.NewEngine(appLogger)
	rasterizer := mupdf.NewRasterizer(appLogger)
	extractor := pdftext.NewExtractor(appLogger)
	encoder := mupdf.NewEncoder()

	return &Container{
		Config:     cfg,
		Logger:     appLogger,
		Engine:     engine,
		Rasterizer: rasterizer,
		Extractor:  extractor,
		Encoder:    encoder,

		MergeService:    service.NewMergeService(engine, appLogger),
		SplitService:    service.NewSplitService(engine, appLogger),
		CompressService: service.NewCompressService(engine, rasterizer, encoder, appLogger, cfg.GetCompressWorkers()),
		EditorService:   service.NewEditorService(engine, rasterizer, extractor, encoder, appLogger, cfg.GetPreviewPageLimit()),
	}, nil
}
