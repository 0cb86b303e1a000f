package driven

import (
	"context"

	"github.com/custodia-labs/dri-core/internal/core/domain"
)

// CompanyStore handles company record persistence (PostgreSQL)
type CompanyStore interface {
	// Create inserts a company and assigns its ID
	Create(ctx context.Context, company *domain.Company) error

	// Get retrieves a company by ID
	Get(ctx context.Context, id int64) (*domain.Company, error)

	// List retrieves all companies ordered by ID
	List(ctx context.Context) ([]*domain.Company, error)

	// Update replaces a stored company
	Update(ctx context.Context, company *domain.Company) error

	// Delete removes a company
	Delete(ctx context.Context, id int64) error
}
