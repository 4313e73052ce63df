// Package config handles application configuration loading from environment
// variables. It provides a centralized Config struct used across the application.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Store drivers.
const (
	StorePostgres = "postgres"
	StoreHTTP     = "http"
)

// Generator backends.
const (
	GeneratorAI   = "ai"
	GeneratorHTTP = "http"
	GeneratorNone = "none"
)

// Config holds all application configuration values loaded from the environment.
type Config struct {
	// Server settings
	Host     string
	Port     string
	Env      string // "development", "production", "testing"
	LogLevel string

	// Where pages, blocks, and products live: "postgres" or "http"
	StoreDriver string

	// PostgreSQL connection
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string

	// Valkey (Redis-compatible cache); empty host disables the product cache
	ValkeyHost      string
	ValkeyPort      string
	ValkeyPassword  string
	ProductCacheTTL time.Duration

	// Remote admin backend, used by the http store driver and generator
	BackendURL   string
	BackendToken string

	// Template generation
	Generator    string // "ai", "http", "none"
	BusinessType string

	// AI provider settings
	AIProvider        string // "openai", "claude", "mistral"
	OpenAIKey         string
	OpenAIModel       string
	OpenAIBaseURL     string
	ClaudeKey         string
	ClaudeModel       string
	ClaudeBaseURL     string
	MistralKey        string
	MistralModel      string
	MistralBaseURL    string
	ModerationEnabled bool

	// S3-compatible object storage for media references
	S3Endpoint     string
	S3Region       string
	S3AccessKey    string
	S3SecretKey    string
	S3BucketPublic string
	S3PublicURL    string

	// bcrypt hash of the admin API token; empty leaves /admin open in development
	AdminTokenHash string
}

// Load reads configuration from environment variables, applying defaults
// for development where appropriate. A .env file in the working directory
// is loaded first; variables already set in the environment win. Returns
// an error if critical values are missing in production mode.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	cfg := &Config{
		Host:     envOrDefault("APP_HOST", "0.0.0.0"),
		Port:     envOrDefault("APP_PORT", "8080"),
		Env:      envOrDefault("APP_ENV", "development"),
		LogLevel: envOrDefault("LOG_LEVEL", "info"),

		StoreDriver: strings.ToLower(envOrDefault("STORE_DRIVER", StorePostgres)),

		DBHost:     envOrDefault("POSTGRES_HOST", "localhost"),
		DBPort:     envOrDefault("POSTGRES_PORT", "5432"),
		DBUser:     envOrDefault("POSTGRES_USER", "composer"),
		DBPassword: envOrDefault("POSTGRES_PASSWORD", "changeme"),
		DBName:     envOrDefault("POSTGRES_DB", "composer"),

		ValkeyHost:     os.Getenv("VALKEY_HOST"),
		ValkeyPort:     envOrDefault("VALKEY_PORT", "6379"),
		ValkeyPassword: os.Getenv("VALKEY_PASSWORD"),

		BackendURL:   strings.TrimRight(os.Getenv("BACKEND_URL"), "/"),
		BackendToken: os.Getenv("BACKEND_TOKEN"),

		Generator:    strings.ToLower(envOrDefault("GENERATOR", GeneratorAI)),
		BusinessType: os.Getenv("BUSINESS_TYPE"),

		AIProvider:        envOrDefault("AI_PROVIDER", "openai"),
		OpenAIKey:         os.Getenv("OPENAI_API_KEY"),
		OpenAIModel:       envOrDefault("OPENAI_MODEL", "gpt-4o-mini"),
		OpenAIBaseURL:     os.Getenv("OPENAI_BASE_URL"),
		ClaudeKey:         os.Getenv("CLAUDE_API_KEY"),
		ClaudeModel:       envOrDefault("CLAUDE_MODEL", "claude-sonnet-4-5"),
		ClaudeBaseURL:     os.Getenv("CLAUDE_BASE_URL"),
		MistralKey:        os.Getenv("MISTRAL_API_KEY"),
		MistralModel:      envOrDefault("MISTRAL_MODEL", "mistral-small-latest"),
		MistralBaseURL:    os.Getenv("MISTRAL_BASE_URL"),
		ModerationEnabled: envOrDefault("AI_MODERATION", "true") == "true",

		S3Endpoint:     os.Getenv("S3_ENDPOINT"),
		S3Region:       envOrDefault("S3_REGION", "us-east-1"),
		S3AccessKey:    os.Getenv("S3_ACCESS_KEY"),
		S3SecretKey:    os.Getenv("S3_SECRET_KEY"),
		S3BucketPublic: envOrDefault("S3_BUCKET_PUBLIC", "composer-public"),
		S3PublicURL:    os.Getenv("S3_PUBLIC_URL"),

		AdminTokenHash: os.Getenv("ADMIN_TOKEN_HASH"),
	}

	ttl, err := time.ParseDuration(envOrDefault("PRODUCT_CACHE_TTL", "5m"))
	if err != nil {
		return nil, fmt.Errorf("PRODUCT_CACHE_TTL: %w", err)
	}
	cfg.ProductCacheTTL = ttl

	switch cfg.StoreDriver {
	case StorePostgres:
	case StoreHTTP:
		if cfg.BackendURL == "" {
			return nil, fmt.Errorf("BACKEND_URL must be set when STORE_DRIVER=http")
		}
	default:
		return nil, fmt.Errorf("STORE_DRIVER must be %q or %q, got %q", StorePostgres, StoreHTTP, cfg.StoreDriver)
	}

	switch cfg.Generator {
	case GeneratorAI, GeneratorNone:
	case GeneratorHTTP:
		if cfg.BackendURL == "" {
			return nil, fmt.Errorf("BACKEND_URL must be set when GENERATOR=http")
		}
	default:
		return nil, fmt.Errorf("GENERATOR must be one of ai, http, none, got %q", cfg.Generator)
	}

	if cfg.Env == "production" {
		if cfg.StoreDriver == StorePostgres && cfg.DBPassword == "changeme" {
			return nil, fmt.Errorf("POSTGRES_PASSWORD must be set in production")
		}
		if cfg.AdminTokenHash == "" {
			return nil, fmt.Errorf("ADMIN_TOKEN_HASH must be set in production")
		}
	}

	return cfg, nil
}

// DSN returns the PostgreSQL connection string.
func (c *Config) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=disable",
		c.DBUser, c.DBPassword, c.DBHost, c.DBPort, c.DBName,
	)
}

// Addr returns the server listen address (host:port).
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%s", c.Host, c.Port)
}

// IsDev returns true if the application is running in development mode.
func (c *Config) IsDev() bool {
	return c.Env == "development"
}

// SlogLevel maps LogLevel onto a slog level. Unknown values mean info.
func (c *Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// envOrDefault reads an environment variable, returning a fallback if unset or empty.
func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
