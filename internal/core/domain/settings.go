package domain

import "time"

// AIProvider identifies the LLM provider
type AIProvider string

const (
	AIProviderDeepSeek  AIProvider = "deepseek"
	AIProviderOpenAI    AIProvider = "openai"
	AIProviderAnthropic AIProvider = "anthropic"
)

// LLMSettings configures the answer model
type LLMSettings struct {
	Provider AIProvider `json:"provider"`
	Model    string     `json:"model"`
	APIKey   string     `json:"-"` // Never serialize to JSON
	BaseURL  string     `json:"base_url,omitempty"`
	Timeout  time.Duration

	// RatePerSecond caps outbound requests; zero disables the limiter
	RatePerSecond float64
}

// IsConfigured returns true if the settings can create a service
func (s *LLMSettings) IsConfigured() bool {
	return s.Provider != "" && s.APIKey != ""
}
