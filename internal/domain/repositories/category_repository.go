package repositories

import (
	"context"

	"github.com/opentraining/coursecatalog/internal/domain/entities"
)

// CategoryRepository is the read port onto the category taxonomy.
type CategoryRepository interface {
	// ListWithCounts enumerates every category, zero-count ones included,
	// with its associated course count, sorted by display name ascending.
	ListWithCounts(ctx context.Context) ([]entities.FacetOption, error)
}
