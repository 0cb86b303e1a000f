package driven

import (
	"context"

	"github.com/custodia-labs/dri-core/internal/core/domain"
)

// ChatCompleter sends an assembled message list to a chat completion model.
// The messages are passed through verbatim.
type ChatCompleter interface {
	// Complete returns the model's reply text
	Complete(ctx context.Context, req domain.CompletionRequest) (string, error)

	// Model returns the default model name
	Model() string

	// Ping verifies the provider is reachable
	Ping(ctx context.Context) error

	// Close releases resources held by the client
	Close() error
}
