package config

import (
	"os"
	"strconv"
	"strings"

	"pdf-workbench/internal/domain"
)

// AppConfig implements the domain.Config interface
type AppConfig struct {
	ServerPort       string
	UploadPath       string
	MaxFileSize      int64
	LogLevel         string
	AllowedOrigins   []string
	PreviewPageLimit int
	CompressWorkers  int
}

// NewConfig creates a new configuration instance with default values
func NewConfig() domain.Config {
	return &AppConfig{
		// Cloud Run (and many PaaS) provide the listening port via PORT.
		// Keep SERVER_PORT for local/dev compatibility.
		ServerPort:       getEnvOrDefault("PORT", getEnvOrDefault("SERVER_PORT", "8080")),
		UploadPath:       getEnvOrDefault("UPLOAD_PATH", "./uploads"),
		MaxFileSize:      getEnvInt64OrDefault("MAX_FILE_SIZE", 50*1024*1024), // 50MB default
		LogLevel:         getEnvOrDefault("LOG_LEVEL", "info"),
		AllowedOrigins:   getEnvListOrDefault("ALLOWED_ORIGINS", nil),
		PreviewPageLimit: getEnvIntOrDefault("PREVIEW_PAGE_LIMIT", 20),
		CompressWorkers:  getEnvIntOrDefault("COMPRESS_WORKERS", 4),
	}
}

// GetServerPort returns the server port
func (c *AppConfig) GetServerPort() string {
	return c.ServerPort
}

// GetUploadPath returns the directory large uploads are spooled to
func (c *AppConfig) GetUploadPath() string {
	return c.UploadPath
}

// GetMaxFileSize returns the maximum allowed request body size
func (c *AppConfig) GetMaxFileSize() int64 {
	return c.MaxFileSize
}

// GetLogLevel returns the logging level
func (c *AppConfig) GetLogLevel() string {
	return c.LogLevel
}

// GetAllowedOrigins returns the CORS origins; empty means any origin
func (c *AppConfig) GetAllowedOrigins() []string {
	return c.AllowedOrigins
}

// GetPreviewPageLimit returns how many pages the previews endpoint renders
func (c *AppConfig) GetPreviewPageLimit() int {
	return c.PreviewPageLimit
}

// GetCompressWorkers returns the size of the compression worker pool
func (c *AppConfig) GetCompressWorkers() int {
	return c.CompressWorkers
}

// Helper functions for environment variable handling
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt64OrDefault(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.ParseInt(value, 10, 64); err == nil && intValue > 0 {
			return intValue
		}
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil && intValue > 0 {
			return intValue
		}
	}
	return defaultValue
}

func getEnvListOrDefault(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	var items []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	if len(items) == 0 {
		return defaultValue
	}
	return items
}
