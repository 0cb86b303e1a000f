package driven

import (
	"context"

	"github.com/custodia-labs/dri-core/internal/core/domain"
)

// CatalogueSource loads the indicator catalogue
type CatalogueSource interface {
	Load(ctx context.Context) (*domain.Catalogue, error)
}

// ReferenceSource loads the static text the chat assistant draws from
type ReferenceSource interface {
	Load(ctx context.Context) (*domain.ReferenceSnapshot, error)
}
