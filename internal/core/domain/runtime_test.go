package domain

import (
	"sync"
	"testing"
)

func TestNewRuntimeConfig(t *testing.T) {
	config := NewRuntimeConfig("postgres")

	if config == nil {
		t.Fatal("expected non-nil config")
	}
	if config.SessionBackend != "postgres" || config.LeaderboardBackend != "postgres" {
		t.Errorf("expected postgres backends, got %s/%s", config.SessionBackend, config.LeaderboardBackend)
	}
	if config.LLMAvailable() {
		t.Error("expected LLM to be unavailable initially")
	}
	if config.UsesRedis() {
		t.Error("expected no redis usage")
	}
}

func TestRuntimeConfig_LLMAvailable(t *testing.T) {
	config := NewRuntimeConfig("redis")

	config.SetLLMAvailable(true)
	if !config.LLMAvailable() {
		t.Error("expected LLM to be available after setting")
	}

	config.SetLLMAvailable(false)
	if config.LLMAvailable() {
		t.Error("expected LLM to be unavailable after clearing")
	}
	if !config.UsesRedis() {
		t.Error("expected redis usage")
	}
}

func TestRuntimeConfig_ConcurrentAccess(t *testing.T) {
	config := NewRuntimeConfig("postgres")

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func(v bool) {
			defer wg.Done()
			config.SetLLMAvailable(v)
		}(i%2 == 0)
		go func() {
			defer wg.Done()
			_ = config.LLMAvailable()
		}()
	}
	wg.Wait()
}
