package driven

import (
	"context"

	"github.com/custodia-labs/dri-core/internal/core/domain"
)

// FeedbackStore handles feedback persistence (PostgreSQL)
type FeedbackStore interface {
	// Save stores a feedback entry. ID and CreatedAt are set by the caller.
	Save(ctx context.Context, fb *domain.Feedback) error

	// List returns entries newest first, narrowed by the filter
	List(ctx context.Context, filter domain.FeedbackFilter) ([]*domain.Feedback, error)
}
