package common

import (
	"os"
	"strconv"
)

// Config holds all application configuration
type Config struct {
	Server ServerConfig
	OCR    OCRConfig
	Ledger LedgerConfig
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	HTTPAddr string
}

// OCRConfig holds OCR-related configuration
type OCRConfig struct {
	Tesseract        string
	Pdftoppm         string
	TesseractLang    string
	TessdataDir      string
	DPI              int
	PSM              int
	MaxPages         int
	ArtifactCacheDir string
}

// LedgerConfig holds ledger storage configuration
type LedgerConfig struct {
	Dir string
}

// LoadConfig loads configuration from environment variables
func LoadConfig() *Config {
	return &Config{
		Server: ServerConfig{
			HTTPAddr: getEnv("HTTP_ADDR", ":8080"),
		},
		OCR: OCRConfig{
			Tesseract:        getEnv("TESSERACT", "tesseract"),
			Pdftoppm:         getEnv("PDFTOPPM", "pdftoppm"),
			TesseractLang:    getEnv("TESSERACT_LANG", "eng"),
			TessdataDir:      getEnv("TESSDATA_PREFIX", ""),
			DPI:              getEnvAsInt("OCR_DPI", 300),
			PSM:              getEnvAsInt("OCR_PSM", 6),
			MaxPages:         getEnvAsInt("OCR_MAX_PAGES", 0),
			ArtifactCacheDir: getEnv("ARTIFACT_CACHE_DIR", ""),
		},
		Ledger: LedgerConfig{
			Dir: getEnv("LEDGER_DIR", "bank_payslips"),
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

// ValidateConfig validates the loaded configuration
func (c *Config) Validate() error {
	if c.Server.HTTPAddr == "" {
		return NewAppError("CONFIG_ERROR", "HTTP_ADDR is required", ErrInvalidInput)
	}
	if c.Ledger.Dir == "" {
		return NewAppError("CONFIG_ERROR", "LEDGER_DIR is required", ErrInvalidInput)
	}
	return nil
}
