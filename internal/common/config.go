package common

import (
	"os"
	"strconv"
	"time"
)

// Config holds all application configuration
type Config struct {
	OCR     OCRConfig
	Preview PreviewConfig
	Journal JournalConfig
	Watch   WatchConfig
}

// OCRConfig holds the external tool configuration for text acquisition.
type OCRConfig struct {
	Pdftotext   string
	Pdftoppm    string
	Pdfinfo     string
	Tesseract   string
	TessdataDir string
	DPI         int
	MaxPages    int
}

// PreviewConfig holds page-preview rendering settings.
type PreviewConfig struct {
	MaxWidth int
}

// JournalConfig holds the rename-journal location.
type JournalConfig struct {
	Path string
}

// WatchConfig holds folder-watch settings for the batch CLI.
type WatchConfig struct {
	Debounce time.Duration
}

// LoadConfig loads configuration from environment variables
func LoadConfig() *Config {
	return &Config{
		OCR: OCRConfig{
			Pdftotext:   getEnv("PDFTOTEXT_BIN", "pdftotext"),
			Pdftoppm:    getEnv("PDFTOPPM_BIN", "pdftoppm"),
			Pdfinfo:     getEnv("PDFINFO_BIN", "pdfinfo"),
			Tesseract:   getEnv("TESSERACT_BIN", "tesseract"),
			TessdataDir: getEnv("TESSDATA_PREFIX", ""),
			DPI:         getEnvAsInt("OCR_DPI", 300),
			MaxPages:    getEnvAsInt("OCR_MAX_PAGES", 3),
		},
		Preview: PreviewConfig{
			MaxWidth: getEnvAsInt("PREVIEW_MAX_WIDTH", 500),
		},
		Journal: JournalConfig{
			Path: getEnv("JOURNAL_PATH", "rename-journal.db"),
		},
		Watch: WatchConfig{
			Debounce: getEnvAsDuration("WATCH_DEBOUNCE", 500*time.Millisecond),
		},
	}
}

// Helper functions for environment variable parsing
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
