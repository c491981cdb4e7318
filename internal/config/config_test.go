package config

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/legislativas/internal/core/domain"
)

func TestGetEnv(t *testing.T) {
	t.Setenv("LEGIS_TEST_STR", "value")
	assert.Equal(t, "value", GetEnv("LEGIS_TEST_STR", "default"))
	assert.Equal(t, "default", GetEnv("LEGIS_TEST_UNSET", "default"))
}

func TestGetEnvInt(t *testing.T) {
	t.Setenv("LEGIS_TEST_INT", "42")
	t.Setenv("LEGIS_TEST_BAD_INT", "many")

	assert.Equal(t, 42, GetEnvInt("LEGIS_TEST_INT", 1))
	assert.Equal(t, 1, GetEnvInt("LEGIS_TEST_BAD_INT", 1))
	assert.Equal(t, 7, GetEnvInt("LEGIS_TEST_UNSET", 7))
}

func TestGetEnvFloat(t *testing.T) {
	t.Setenv("LEGIS_TEST_FLOAT", " 0.5 ")
	t.Setenv("LEGIS_TEST_BAD_FLOAT", "half")

	assert.InDelta(t, 0.5, GetEnvFloat("LEGIS_TEST_FLOAT", 2), 1e-9)
	assert.InDelta(t, 2.0, GetEnvFloat("LEGIS_TEST_BAD_FLOAT", 2), 1e-9)
}

func TestGetEnvBool(t *testing.T) {
	for _, v := range []string{"true", "1", "yes"} {
		t.Setenv("LEGIS_TEST_BOOL", v)
		assert.True(t, GetEnvBool("LEGIS_TEST_BOOL", false), v)
	}
	t.Setenv("LEGIS_TEST_BOOL", "off")
	assert.False(t, GetEnvBool("LEGIS_TEST_BOOL", true))
	assert.True(t, GetEnvBool("LEGIS_TEST_UNSET", true))
}

func TestGetEnvList(t *testing.T) {
	t.Setenv("LEGIS_TEST_LIST", " https://a.pt, ,https://b.pt ")
	assert.Equal(t, []string{"https://a.pt", "https://b.pt"}, GetEnvList("LEGIS_TEST_LIST", nil))

	t.Setenv("LEGIS_TEST_LIST", " , ")
	assert.Equal(t, []string{"*"}, GetEnvList("LEGIS_TEST_LIST", []string{"*"}))
}

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{
		"PORT", "DOCUMENT_BASE_URL", "PARTIES_FILE", "CHUNK_TARGET_SIZE", "CHUNK_OVERLAP",
		"CONTEXT_TOKEN_LIMIT", "CACHE_TTL_SEC", "FETCH_CONCURRENCY", "FETCH_TIMEOUT_SEC",
		"LLM_PROVIDER", "LLM_API_KEY", "DEEPSEEK_API_KEY", "LLM_BASE_URL", "DEEPSEEK_API_BASE_URL",
		"LLM_MODEL", "LLM_RATE_PER_SEC", "LLM_TIMEOUT_SEC", "REDIS_URL", "DATABASE_URL",
		"ADMIN_JWT_SECRET", "CORS_ORIGINS", "LOG_LEVEL", "LOG_FORMAT",
	} {
		t.Setenv(key, "")
	}

	cfg := Load()

	assert.Equal(t, 3000, cfg.Port)
	assert.Equal(t, domain.DefaultDocumentBaseURL, cfg.DocumentBaseURL)
	assert.Equal(t, domain.DefaultChunkTargetSize, cfg.ChunkTargetSize)
	assert.Equal(t, domain.DefaultChunkOverlap, cfg.ChunkOverlap)
	assert.Equal(t, domain.DefaultContextTokenLimit, cfg.ContextTokenLimit)
	assert.Equal(t, 5*time.Minute, cfg.CacheTTL)
	assert.Equal(t, 4, cfg.FetchConcurrency)
	assert.Equal(t, 15*time.Second, cfg.FetchTimeout)
	assert.Equal(t, domain.AIProviderDeepSeek, cfg.LLM.Provider)
	assert.Empty(t, cfg.LLM.APIKey)
	assert.False(t, cfg.LLM.IsConfigured())
	assert.Equal(t, 60*time.Second, cfg.LLM.Timeout)
	assert.Equal(t, []string{"*"}, cfg.CORSOrigins)
	assert.Equal(t, "memory", cfg.CacheBackend())
	assert.Equal(t, "memory", cfg.QueryLogBackend())
}

func TestLoad_DeepSeekFallbacks(t *testing.T) {
	t.Setenv("LLM_API_KEY", "")
	t.Setenv("LLM_BASE_URL", "")
	t.Setenv("DEEPSEEK_API_KEY", "sk-deepseek")
	t.Setenv("DEEPSEEK_API_BASE_URL", "https://proxy.example/chat/completions")

	cfg := Load()

	assert.Equal(t, "sk-deepseek", cfg.LLM.APIKey)
	assert.Equal(t, "https://proxy.example/chat/completions", cfg.LLM.BaseURL)
	assert.True(t, cfg.LLM.IsConfigured())

	t.Setenv("LLM_API_KEY", "sk-generic")
	assert.Equal(t, "sk-generic", Load().LLM.APIKey)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("PORT", "8080")
	t.Setenv("LLM_PROVIDER", "Anthropic")
	t.Setenv("LLM_RATE_PER_SEC", "0.5")
	t.Setenv("REDIS_URL", "redis://localhost:6379/0")
	t.Setenv("DATABASE_URL", "postgres://localhost/legislativas")
	t.Setenv("CONTEXT_TOKEN_LIMIT", "32000")

	cfg := Load()

	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, domain.AIProviderAnthropic, cfg.LLM.Provider)
	assert.InDelta(t, 0.5, cfg.LLM.RatePerSecond, 1e-9)
	assert.Equal(t, "redis", cfg.CacheBackend())
	assert.Equal(t, "postgres", cfg.QueryLogBackend())
	assert.Equal(t, 32000, cfg.BudgetConfig().Ceiling)
}

func TestBudgetConfig_NonPositiveLimitKeepsDefault(t *testing.T) {
	cfg := Config{ContextTokenLimit: 0}
	assert.Equal(t, domain.DefaultContextTokenLimit, cfg.BudgetConfig().Ceiling)
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf, "warn", "json")

	logger.Info("hidden")
	logger.Warn("shown", "party", "PS")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, `"msg":"shown"`)
	assert.Contains(t, out, `"party":"PS"`)
}

func TestNewLogger_TextDefault(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf, "verbose", "")

	logger.Debug("debug line")
	logger.Info("info line")

	out := buf.String()
	assert.NotContains(t, out, "debug line")
	assert.True(t, strings.Contains(out, "msg=\"info line\""), out)
}

func TestParseRoster(t *testing.T) {
	data := []byte(`
[[parties]]
id = "PS"
name = "Partido Socialista"
logo = "/logos/PS.png"
filename = "PS"

[[parties]]
id = "L"
name = "Livre"
logo = "/logos/Livre.png"
`)

	roster, err := ParseRoster(data)
	require.NoError(t, err)

	assert.Equal(t, []string{"PS", "L"}, roster.IDs())
	livre, ok := roster.Lookup("l")
	require.True(t, ok)
	assert.Equal(t, "L", livre.Filename, "filename defaults to the id")
}

func TestParseRoster_Invalid(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"empty", ``},
		{"missing id", "[[parties]]\nname = \"X\"\n"},
		{"missing name", "[[parties]]\nid = \"X\"\n"},
		{"duplicate", "[[parties]]\nid = \"X\"\nname = \"X\"\n[[parties]]\nid = \"x\"\nname = \"Y\"\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseRoster([]byte(tt.data))
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
}

func TestParseRoster_Malformed(t *testing.T) {
	_, err := ParseRoster([]byte("[[parties]\nid = "))
	require.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrInvalidInput)
}

func TestLoadRoster(t *testing.T) {
	roster, err := LoadRoster("")
	require.NoError(t, err)
	assert.Equal(t, 8, roster.Len())

	_, err = LoadRoster("/nonexistent/parties.toml")
	assert.Error(t, err)
}
