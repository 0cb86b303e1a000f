package driven

import (
	"context"
	"time"

	"github.com/custodia-labs/dri-core/internal/core/domain"
)

// Leaderboard is a ranked index of company overall scores (Redis sorted set)
type Leaderboard interface {
	// Upsert sets a company's overall score
	Upsert(ctx context.Context, entry domain.LeaderboardEntry) error

	// Remove drops a company from the index
	Remove(ctx context.Context, companyID int64) error

	// Top returns up to limit entries, best first, with Rank filled in
	Top(ctx context.Context, limit int) ([]domain.LeaderboardEntry, error)

	// Replace swaps the whole index for entries
	Replace(ctx context.Context, entries []domain.LeaderboardEntry) error
}

// ScoreCache caches aggregate results keyed by company and version
type ScoreCache interface {
	// Get returns ErrNotFound on a miss
	Get(ctx context.Context, companyID int64, version time.Time) (*domain.ScoreResult, error)

	// Set stores a result
	Set(ctx context.Context, companyID int64, version time.Time, result domain.ScoreResult) error

	// Invalidate drops every cached version for a company
	Invalidate(ctx context.Context, companyID int64) error
}
