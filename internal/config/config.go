// Package config centralises configuration parsing for the dashboard.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"
)

const defaultAPIBaseURL = "http://localhost:8000"

// Config captures runtime configuration values for the dashboard.
type Config struct {
	HTTPAddress    string
	APIBaseURL     string // Origin every upstream collection URL is built from. Read-only after Load.
	HTTPTimeout    time.Duration
	AllowedOrigins []string
	StrictShapes   bool // Surface unrecognized payload shapes as errors instead of empty collections.
	LogLevel       slog.Level
}

// Load reads environment variables into Config, applying sensible defaults for local dev.
func Load() Config {
	return Config{
		HTTPAddress:    getEnv("HTTP_ADDRESS", ":3000"),
		APIBaseURL:     resolveAPIBaseURL(os.Getenv("API_BASE_URL"), os.Getenv("CODESPACE_NAME")),
		HTTPTimeout:    getDurationEnv("HTTP_TIMEOUT", 10*time.Second),
		AllowedOrigins: splitAndTrim(getEnv("ALLOWED_ORIGINS", "*")),
		StrictShapes:   getBoolEnv("STRICT_SHAPES", false),
		LogLevel:       parseLevel(getEnv("LOG_LEVEL", "info")),
	}
}

// resolveAPIBaseURL picks the upstream origin. An explicit URL wins; a codespace
// name maps to the forwarded port 8000 of that codespace.
func resolveAPIBaseURL(explicit, codespace string) string {
	if value := strings.TrimSpace(explicit); value != "" {
		return strings.TrimRight(value, "/")
	}
	if name := strings.TrimSpace(codespace); name != "" {
		return fmt.Sprintf("https://%s-8000.app.github.dev", name)
	}
	return defaultAPIBaseURL
}

func parseLevel(value string) slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(value))); err != nil {
		return slog.LevelInfo
	}
	return level
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}

func splitAndTrim(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func getDurationEnv(key string, fallback time.Duration) time.Duration {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		if parsed, err := time.ParseDuration(value); err == nil {
			return parsed
		}
	}
	return fallback
}

func getBoolEnv(key string, fallback bool) bool {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
	}
	return fallback
}
