package domain

import "sync"

// RuntimeConfig tracks which backends are in use at runtime.
// Thread-safe for concurrent access.
type RuntimeConfig struct {
	mu sync.RWMutex

	// Static (set at startup, read-only)
	CacheBackend    string // "memory" or "redis"
	QueryLogBackend string // "memory" or "postgres"

	// Dynamic capability flags (updated when the LLM service changes)
	llmAvailable bool
	llmModel     string
}

// NewRuntimeConfig creates a new RuntimeConfig with initial values
func NewRuntimeConfig(cacheBackend, queryLogBackend string) *RuntimeConfig {
	return &RuntimeConfig{
		CacheBackend:    cacheBackend,
		QueryLogBackend: queryLogBackend,
	}
}

// LLMAvailable returns whether an LLM service is configured
func (c *RuntimeConfig) LLMAvailable() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.llmAvailable
}

// LLMModel returns the configured model name (empty when unavailable)
func (c *RuntimeConfig) LLMModel() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.llmModel
}

// SetLLM updates the LLM availability flag and model name
func (c *RuntimeConfig) SetLLM(available bool, model string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.llmAvailable = available
	if !available {
		model = ""
	}
	c.llmModel = model
}
