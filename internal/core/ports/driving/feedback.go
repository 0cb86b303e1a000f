package driving

import (
	"context"

	"github.com/custodia-labs/dri-core/internal/core/domain"
)

// FeedbackService collects and lists widget feedback
type FeedbackService interface {
	// Submit validates and stores an entry, returning its ID
	Submit(ctx context.Context, in domain.FeedbackInput) (string, error)

	// List returns entries newest first
	List(ctx context.Context, filter domain.FeedbackFilter) ([]*domain.Feedback, error)
}
