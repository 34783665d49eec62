package app

import (
	"os"
	"strconv"

	"github.com/aussiebroadwan/taskhub/internal/todo/server"
)

type Config struct {
	Host string // Optional: listen host (default: localhost)
	Port int    // Optional: listen port (default: 7769)

	StoreDriver  string // Optional: snapshot driver (file, sqlite) (default: file)
	SnapshotFile string // Optional: path to the JSON snapshot artifact (default: ./database.json)
	DatabaseFile string // Optional: path to the SQLite database file (default: ./todo.db)

	Env       string // Environment (dev, staging, prod) (default: dev)
	LogLevel  string // Log level (debug, info, warn, error) (default: info)
	LogFormat string // Log format (json, text) (default: json)

	RateLimit server.RateLimitConfig // Optional: per-connection command limit (default: disabled)
}

func LoadConfig() Config {
	return Config{
		Host:         getEnvOrDefault("TODO_HOST", "localhost"),
		Port:         getEnvIntOrDefault("TODO_PORT", 7769),
		StoreDriver:  getEnvOrDefault("TODO_STORE_DRIVER", "file"),
		SnapshotFile: getEnvOrDefault("TODO_SNAPSHOT_FILE", "database.json"),
		DatabaseFile: getEnvOrDefault("TODO_DATABASE_FILE", "todo.db"),
		Env:          getEnvOrDefault("ENV", "dev"),
		LogLevel:     getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:    getEnvOrDefault("LOG_FORMAT", "json"),

		// Disabled unless the RATELIMIT_COMMANDS_* variables are set.
		RateLimit: server.ParseRateLimitFromEnv("COMMANDS", server.RateLimitConfig{}),
	}
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if intValue, err := strconv.Atoi(value); err == nil {
		return intValue
	}

	return defaultValue
}
