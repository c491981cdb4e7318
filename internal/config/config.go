// Package config reads process configuration from the environment and the
// optional party roster file.
package config

import (
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/custodia-labs/legislativas/internal/core/domain"
)

// Config is the full process configuration
type Config struct {
	Port            int
	DocumentBaseURL string
	PartiesFile     string

	ChunkTargetSize   int
	ChunkOverlap      int
	ContextTokenLimit int

	CacheTTL         time.Duration
	FetchConcurrency int
	FetchTimeout     time.Duration

	LLM domain.LLMSettings

	RedisURL       string
	DatabaseURL    string
	AdminJWTSecret string
	CORSOrigins    []string

	LogLevel  string
	LogFormat string
}

// Load reads the configuration from the environment. Callers load .env
// files beforehand.
func Load() Config {
	return Config{
		Port:            GetEnvInt("PORT", 3000),
		DocumentBaseURL: GetEnv("DOCUMENT_BASE_URL", domain.DefaultDocumentBaseURL),
		PartiesFile:     GetEnv("PARTIES_FILE", ""),

		ChunkTargetSize:   GetEnvInt("CHUNK_TARGET_SIZE", domain.DefaultChunkTargetSize),
		ChunkOverlap:      GetEnvInt("CHUNK_OVERLAP", domain.DefaultChunkOverlap),
		ContextTokenLimit: GetEnvInt("CONTEXT_TOKEN_LIMIT", domain.DefaultContextTokenLimit),

		CacheTTL:         time.Duration(GetEnvInt("CACHE_TTL_SEC", 300)) * time.Second,
		FetchConcurrency: GetEnvInt("FETCH_CONCURRENCY", 4),
		FetchTimeout:     time.Duration(GetEnvInt("FETCH_TIMEOUT_SEC", 15)) * time.Second,

		LLM: domain.LLMSettings{
			Provider:      domain.AIProvider(strings.ToLower(GetEnv("LLM_PROVIDER", string(domain.AIProviderDeepSeek)))),
			Model:         GetEnv("LLM_MODEL", ""),
			APIKey:        firstEnv("", "LLM_API_KEY", "DEEPSEEK_API_KEY"),
			BaseURL:       firstEnv("", "LLM_BASE_URL", "DEEPSEEK_API_BASE_URL"),
			Timeout:       time.Duration(GetEnvInt("LLM_TIMEOUT_SEC", 60)) * time.Second,
			RatePerSecond: GetEnvFloat("LLM_RATE_PER_SEC", 0),
		},

		RedisURL:       GetEnv("REDIS_URL", ""),
		DatabaseURL:    GetEnv("DATABASE_URL", ""),
		AdminJWTSecret: GetEnv("ADMIN_JWT_SECRET", ""),
		CORSOrigins:    GetEnvList("CORS_ORIGINS", []string{"*"}),

		LogLevel:  GetEnv("LOG_LEVEL", "info"),
		LogFormat: GetEnv("LOG_FORMAT", "text"),
	}
}

// CacheBackend names the document cache in use
func (c Config) CacheBackend() string {
	if c.RedisURL != "" {
		return "redis"
	}
	return "memory"
}

// QueryLogBackend names the query log in use
func (c Config) QueryLogBackend() string {
	if c.DatabaseURL != "" {
		return "postgres"
	}
	return "memory"
}

// BudgetConfig returns the token budget with the configured ceiling
func (c Config) BudgetConfig() domain.BudgetConfig {
	budget := domain.DefaultBudgetConfig()
	if c.ContextTokenLimit > 0 {
		budget.Ceiling = c.ContextTokenLimit
	}
	return budget
}

// NewLogger builds the process logger. format is "json" or "text"; unknown
// levels fall back to info.
func NewLogger(w io.Writer, level, format string) *slog.Logger {
	opts := &slog.HandlerOptions{Level: parseLevel(level)}
	if strings.EqualFold(format, "json") {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
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
