package repositories

import (
	"context"

	"github.com/opentraining/coursecatalog/internal/domain/entities"
)

// FacetField names a scalar course column that can be grouped into facet
// counts.
type FacetField string

const (
	FacetLevel    FacetField = "level"
	FacetDuration FacetField = "duration"
	FacetFormat   FacetField = "format"
)

// CourseRepository is the read port onto the course catalog.
type CourseRepository interface {
	// SearchWithCount filters the entire catalog first and paginates last,
	// returning one window of rows plus the total match count.
	SearchWithCount(ctx context.Context, filter entities.CourseFilter) ([]*entities.Course, int, error)

	// GetBySlug loads the full detail view: the course, its syllabus ordered
	// by day ascending, and its tags.
	GetBySlug(ctx context.Context, slug string) (*entities.CourseDetail, error)

	// CountByField groups the whole catalog by one scalar facet column,
	// skipping NULL values, sorted by value ascending.
	CountByField(ctx context.Context, field FacetField) ([]entities.FacetOption, error)

	// PriceRange returns the minimum and maximum numeric price over courses
	// that have one. ok is false when no course carries a numeric price.
	PriceRange(ctx context.Context) (min, max float64, ok bool, err error)
}
