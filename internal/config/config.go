package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
)

// Storage backend selectors.
const (
	StorageFile  = "file"
	StorageRedis = "redis"
)

type Config struct {
	Port        string
	Environment string
	LogLevel    slog.Level

	// Infomaniak AI API credentials. The product ID is part of the
	// chat completions URL.
	APIKey    string
	ProductID string
	ModelName string

	StorageBackend string
	GamesFile      string
	RedisURL       string
	DataDir        string
	DefaultStory   string
}

func Load() (*Config, error) {
	cfg := &Config{
		Port:           getEnv("PORT", "8080"),
		Environment:    getEnv("ENVIRONMENT", "development"),
		LogLevel:       parseLogLevel(getEnv("LOG_LEVEL", "info")),
		APIKey:         os.Getenv("INFOMANIAK_API_KEY"),
		ProductID:      os.Getenv("INFOMANIAK_PRODUCT_ID"),
		ModelName:      getEnv("MODEL_NAME", "mistral3"),
		StorageBackend: strings.ToLower(getEnv("STORAGE_BACKEND", StorageFile)),
		GamesFile:      getEnv("GAMES_FILE", "data/games.json"),
		RedisURL:       getEnv("REDIS_URL", "localhost:6379"),
		DataDir:        getEnv("DATA_DIR", "./data"),
		DefaultStory:   getEnv("DEFAULT_STORY", "in-the-forest.md"),
	}

	if cfg.APIKey == "" {
		return nil, fmt.Errorf("INFOMANIAK_API_KEY is required")
	}
	if cfg.ProductID == "" {
		return nil, fmt.Errorf("INFOMANIAK_PRODUCT_ID is required")
	}
	if cfg.StorageBackend != StorageFile && cfg.StorageBackend != StorageRedis {
		return nil, fmt.Errorf("invalid STORAGE_BACKEND %q, supported: file, redis", cfg.StorageBackend)
	}

	return cfg, nil
}

func parseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
