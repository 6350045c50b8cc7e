package common

import (
	"os"
	"strconv"
	"time"
)

// Config holds all application configuration
type Config struct {
	Server  ServerConfig
	Extract ExtractConfig
	OCR     OCRConfig
	LLM     LLMConfig
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	HTTPAddr      string
	MaxUploadSize int64
}

// ExtractConfig holds extraction cascade policy and tool paths.
type ExtractConfig struct {
	Pdftotext     string // binary name or absolute path; if empty -> "pdftotext"
	MinContentLen int    // acceptance threshold for direct backends
	OCREmptyLen   int    // below this, OCR output counts as "no text found"
}

// OCRConfig holds OCR-related configuration
type OCRConfig struct {
	Pdftoppm      string // binary name or absolute path; if empty -> "pdftoppm"
	Tesseract     string // binary name or absolute path; if empty -> "tesseract"
	Surya         string // binary name or absolute path; if empty -> "surya_ocr"
	TesseractLang string // default "eng"
	RasterDPI     int    // rasterization DPI for scanned PDFs
	MaxPages      int    // 0 = no limit
	PageWorkers   int    // concurrent pages during PDF OCR
}

// LLMConfig holds remote reasoning service configuration
type LLMConfig struct {
	BaseURL     string
	Model       string
	APIKey      string
	Temperature float32
	Timeout     time.Duration
}

// LoadConfig loads configuration from environment variables
func LoadConfig() *Config {
	return &Config{
		Server: ServerConfig{
			HTTPAddr:      getEnv("HTTP_ADDR", ":8000"),
			MaxUploadSize: int64(getEnvAsInt("MAX_UPLOAD_MB", 32)) << 20,
		},
		Extract: ExtractConfig{
			Pdftotext:     getEnv("PDFTOTEXT_BIN", "pdftotext"),
			MinContentLen: getEnvAsInt("MIN_CONTENT_LEN", 50),
			OCREmptyLen:   getEnvAsInt("OCR_EMPTY_LEN", 10),
		},
		OCR: OCRConfig{
			Pdftoppm:      getEnv("PDFTOPPM_BIN", "pdftoppm"),
			Tesseract:     getEnv("TESSERACT_BIN", "tesseract"),
			Surya:         getEnv("SURYA_BIN", "surya_ocr"),
			TesseractLang: getEnv("TESSERACT_LANG", "eng"),
			RasterDPI:     getEnvAsInt("OCR_RASTER_DPI", 300),
			MaxPages:      getEnvAsInt("OCR_MAX_PAGES", 0),
			PageWorkers:   getEnvAsInt("OCR_PAGE_WORKERS", 4),
		},
		LLM: LLMConfig{
			BaseURL:     getEnv("OPENAI_BASE_URL", "https://api.openai.com/v1"),
			Model:       getEnv("OPENAI_MODEL", "gpt-4o-mini"),
			APIKey:      getEnv("OPENAI_API_KEY", ""),
			Temperature: getEnvAsFloat32("OPENAI_TEMPERATURE", 0.0),
			Timeout:     getEnvAsDuration("OPENAI_TIMEOUT", 45*time.Second),
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

func getEnvAsFloat32(key string, defaultValue float32) float32 {
	if value := os.Getenv(key); value != "" {
		if floatVal, err := strconv.ParseFloat(value, 32); err == nil {
			return float32(floatVal)
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

// ValidateConfig validates the loaded configuration
func (c *Config) Validate() error {
	if c.Server.HTTPAddr == "" {
		return NewAppError("CONFIG_ERROR", "HTTP_ADDR is required", ErrInvalidInput)
	}
	if c.Extract.MinContentLen <= 0 {
		return NewAppError("CONFIG_ERROR", "MIN_CONTENT_LEN must be positive", ErrInvalidInput)
	}
	if c.Extract.OCREmptyLen <= 0 {
		return NewAppError("CONFIG_ERROR", "OCR_EMPTY_LEN must be positive", ErrInvalidInput)
	}
	return nil
}
