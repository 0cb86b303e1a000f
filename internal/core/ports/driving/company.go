package driving

import (
	"context"

	"github.com/custodia-labs/dri-core/internal/core/domain"
)

// CompanyService manages evaluated companies and their scores.
// Aggregate scores are always computed server side.
type CompanyService interface {
	// Create stores a new company with freshly aggregated scores
	Create(ctx context.Context, in domain.CompanyInput) (*domain.Company, error)

	// Get retrieves a company by ID
	Get(ctx context.Context, id int64) (*domain.Company, error)

	// List retrieves all companies
	List(ctx context.Context) ([]*domain.Company, error)

	// Update applies a partial update and re-aggregates
	Update(ctx context.Context, id int64, in domain.CompanyInput) (*domain.Company, error)

	// Delete removes a company and its leaderboard entry
	Delete(ctx context.Context, id int64) error

	// Scores returns the aggregate for a stored company
	Scores(ctx context.Context, id int64) (*domain.ScoreResult, error)

	// Preview aggregates raw scores without storing anything
	Preview(ctx context.Context, raw domain.RawScores) domain.ScoreResult

	// Leaderboard returns up to limit companies ranked by overall score
	Leaderboard(ctx context.Context, limit int) ([]domain.LeaderboardEntry, error)

	// RebuildLeaderboard re-indexes every stored company
	RebuildLeaderboard(ctx context.Context) error
}

// IndicatorService exposes the loaded catalogue
type IndicatorService interface {
	// List returns every indicator in catalogue order
	List(ctx context.Context) []domain.IndicatorDefinition

	// Get looks an indicator up by name
	Get(ctx context.Context, name string) (domain.IndicatorDefinition, error)
}
