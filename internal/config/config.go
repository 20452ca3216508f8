package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"productboard-mcp/internal/productboard"
)

// AppConfig holds the complete application configuration.
type AppConfig struct {
	Productboard productboard.Config
	DataPath     string
	LogDir       string
}

// Load loads the configuration from .env files and environment variables.
func Load() (*AppConfig, error) {
	// 1. Try to load from the executable's directory (highest priority for MCP servers)
	exePath, err := os.Executable()
	exeDir := ""
	if err == nil {
		exeDir = filepath.Dir(exePath)
		envPath := filepath.Join(exeDir, ".env")
		if err := godotenv.Load(envPath); err == nil {
			log.Debug().Str("path", envPath).Msg("Loaded configuration from binary directory")
		}
	}

	// 2. Fallback to current working directory (useful for development/go run)
	if err := godotenv.Load(); err != nil {
		log.Debug().Msg("No .env file found in working directory, relying on environment variables or binary-relative .env")
	}

	// 3. Resolve data paths
	dataPath := os.Getenv("DATA_PATH")
	if dataPath == "" {
		if exeDir != "" {
			dataPath = exeDir
		} else {
			dataPath = "."
		}
	}

	logDir := filepath.Join(dataPath, "logs")
	if err := os.MkdirAll(logDir, 0755); err != nil {
		log.Warn().Err(err).Str("path", logDir).Msg("Failed to create log directory")
	}

	timeout, err := time.ParseDuration(getEnv("PRODUCTBOARD_HTTP_TIMEOUT", "90s"))
	if err != nil {
		timeout = 90 * time.Second
	}

	cfg := &AppConfig{
		Productboard: productboard.Config{
			BaseURL: getEnv("PRODUCTBOARD_BASE_URL", productboard.DefaultBaseURL),
			Timeout: timeout,
		},
		DataPath: dataPath,
		LogDir:   logDir,
	}

	// The API token is deliberately not captured here: the client re-reads
	// PRODUCTBOARD_API_TOKEN from the environment on every request, so a
	// rotated token takes effect without a restart.
	if os.Getenv(productboard.TokenEnv) == "" {
		log.Warn().Str("env", productboard.TokenEnv).Msg("API token is not set; tool calls will fail until it is provided")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}
