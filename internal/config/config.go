package config

import (
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	DefaultStorageDSN     = "sqlite:~/.leadflow/leadflow.db"
	DefaultStorageTimeout = 5 * time.Second
	DefaultActor          = "system"
)

type Config struct {
	OTel     OTelConfig
	Storage  StorageConfig
	Env      string
	Port     string
	Actor    string
	LogLevel string
}

type StorageConfig struct {
	DSN     string
	Timeout time.Duration
}

type OTelConfig struct {
	Endpoint       string
	Headers        string
	ServiceName    string
	ServiceVersion string
	// SampleRatio is the share of new root traces sampled, from
	// OTEL_TRACES_SAMPLER_ARG.
	SampleRatio float64
}

// Load reads configuration from the environment. In development a .env file
// in the working directory is loaded first when present.
func Load() Config {
	if getEnv("LEADFLOW_ENV", "development") == "development" {
		_ = godotenv.Load(".env")
	}

	return Config{
		Env:      getEnv("LEADFLOW_ENV", "development"),
		Port:     getEnv("PORT", "8080"),
		Actor:    getEnv("LEADFLOW_ACTOR", DefaultActor),
		LogLevel: getEnv("LEADFLOW_LOG_LEVEL", ""),
		Storage: StorageConfig{
			DSN:     getEnv("LEADFLOW_STORAGE_DSN", DefaultStorageDSN),
			Timeout: time.Duration(getEnvInt("LEADFLOW_STORAGE_TIMEOUT_MS", int(DefaultStorageTimeout/time.Millisecond))) * time.Millisecond,
		},
		OTel: OTelConfig{
			Endpoint:       getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", ""),
			Headers:        getEnv("OTEL_EXPORTER_OTLP_HEADERS", ""),
			ServiceName:    getEnv("OTEL_SERVICE_NAME", "leadflow"),
			ServiceVersion: getEnv("OTEL_SERVICE_VERSION", "dev"),
			SampleRatio:    getEnvFloat("OTEL_TRACES_SAMPLER_ARG", 1),
		},
	}
}

func (c Config) IsProduction() bool {
	return c.Env == "production"
}

func (c Config) IsDevelopment() bool {
	return c.Env == "development"
}

// Level is the configured log level. Unknown or empty values fall back to
// debug in development and info elsewhere.
func (c Config) Level() slog.Level {
	switch strings.ToLower(strings.TrimSpace(c.LogLevel)) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}
	if c.IsDevelopment() {
		return slog.LevelDebug
	}
	return slog.LevelInfo
}

func (c OTelConfig) Enabled() bool {
	return c.Endpoint != ""
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok {
		if i, err := strconv.Atoi(value); err == nil && i > 0 {
			return i
		}
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	if value, ok := os.LookupEnv(key); ok {
		if f, err := strconv.ParseFloat(strings.TrimSpace(value), 64); err == nil && f >= 0 {
			return f
		}
	}
	return fallback
}
