package ai

import (
	"fmt"

	"github.com/custodia-labs/dri-core/internal/core/domain"
	"github.com/custodia-labs/dri-core/internal/core/ports/driven"
)

// Ensure Factory implements AIServiceFactory
var _ driven.AIServiceFactory = (*Factory)(nil)

// Factory creates AI services based on configuration
type Factory struct{}

// NewFactory creates a new AI service factory
func NewFactory() *Factory {
	return &Factory{}
}

// CreateChatCompleter creates a completion client from settings.
// Returns nil, nil when the settings are not configured.
func (f *Factory) CreateChatCompleter(settings *domain.LLMSettings, defaultModel string) (driven.ChatCompleter, error) {
	if settings == nil || !settings.IsConfigured() {
		return nil, nil
	}

	switch settings.Provider {
	case domain.AIProviderOpenAI:
		return NewOpenAIChat(settings.APIKey, defaultModel, settings.BaseURL, settings.Timeout)
	case domain.AIProviderOllama:
		if settings.BaseURL == "" {
			return nil, fmt.Errorf("%w: ollama requires a base URL", domain.ErrInvalidProvider)
		}
		return NewOpenAIChat("", defaultModel, settings.BaseURL, settings.Timeout)
	default:
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidProvider, settings.Provider)
	}
}
