package driven

import (
	"github.com/custodia-labs/dri-core/internal/core/domain"
)

// AIServiceFactory creates AI services based on configuration
type AIServiceFactory interface {
	// CreateChatCompleter creates a completion client from settings.
	// Returns nil, nil if settings are not configured.
	CreateChatCompleter(settings *domain.LLMSettings, defaultModel string) (ChatCompleter, error)
}
