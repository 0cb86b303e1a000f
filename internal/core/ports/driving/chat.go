package driving

import (
	"context"

	"github.com/custodia-labs/dri-core/internal/core/domain"
)

// ChatService answers one assistant turn
type ChatService interface {
	// Reply never fails on provider errors; it falls back to a canned reply.
	// Errors are returned only for invalid requests.
	Reply(ctx context.Context, req domain.ChatRequest) (*domain.ChatResponse, error)
}

// ExplainService describes an indicator in plain language
type ExplainService interface {
	// Explain returns ErrInvalidInput for an empty name
	Explain(ctx context.Context, indicatorName string) (string, error)
}
