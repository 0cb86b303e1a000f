package domain

import "sync"

// RuntimeConfig tracks which optional backends are active.
// Backends are fixed at startup; the LLM flag follows the runtime services.
type RuntimeConfig struct {
	mu sync.RWMutex

	SessionBackend     string // "redis" or "postgres"
	LeaderboardBackend string // "redis" or "postgres"

	llmAvailable bool
}

// NewRuntimeConfig creates a RuntimeConfig for the given session backend.
// The leaderboard follows the same backend.
func NewRuntimeConfig(sessionBackend string) *RuntimeConfig {
	return &RuntimeConfig{
		SessionBackend:     sessionBackend,
		LeaderboardBackend: sessionBackend,
	}
}

// LLMAvailable returns whether a completion service is configured
func (c *RuntimeConfig) LLMAvailable() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.llmAvailable
}

// SetLLMAvailable updates the completion availability flag
func (c *RuntimeConfig) SetLLMAvailable(available bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.llmAvailable = available
}

// UsesRedis reports whether any component is backed by Redis
func (c *RuntimeConfig) UsesRedis() bool {
	return c.SessionBackend == "redis" || c.LeaderboardBackend == "redis"
}
