package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds application configuration.
type Config struct {
	AppName     string
	AppVersion  string
	Environment string
	ListenAddr  string
	LogLevel    string

	// DataDir holds the JSON collection files and the pricing override.
	DataDir string
	// ImagesDir holds generated images and their metadata sidecars.
	ImagesDir string

	OpenAIAPIKey  string
	OpenAIBaseURL string
}

// Load loads configuration from environment variables and .env file.
func Load() Config {
	_ = godotenv.Load()

	cfg := Config{
		AppName:       getenv("APP_SERVICE", "pictora"),
		AppVersion:    getenv("APP_VERSION", "0.1.0"),
		Environment:   getenv("ENVIRONMENT", "development"),
		ListenAddr:    getenv("LISTEN_ADDR", ":3000"),
		LogLevel:      getenv("LOG_LEVEL", "info"),
		DataDir:       getenv("DATA_DIR", "./data"),
		ImagesDir:     getenv("IMAGES_DIR", "./images"),
		OpenAIAPIKey:  strings.TrimSpace(getenv("OPENAI_API_KEY", "")),
		OpenAIBaseURL: strings.TrimRight(getenv("OPENAI_BASE_URL", "https://api.openai.com/v1"), "/"),
	}

	return cfg
}

// PresetsPath is the presets collection file inside DataDir.
func (c Config) PresetsPath() string {
	return filepath.Join(c.DataDir, "presets.json")
}

// UsagePath is the usage-records collection file inside DataDir.
func (c Config) UsagePath() string {
	return filepath.Join(c.DataDir, "usage.json")
}

func getenv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}
