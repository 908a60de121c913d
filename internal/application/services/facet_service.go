package services

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/opentraining/coursecatalog/internal/domain/entities"
	"github.com/opentraining/coursecatalog/internal/domain/repositories"
)

// Price bounds used when aggregation cannot supply real ones. An empty
// catalog keeps the slider usable at 0..10000; the static fallback snapshot
// narrows it to 0..5000.
const (
	emptyCatalogPriceMax = 10000
	fallbackPriceMax     = 5000
)

// FacetService computes the catalog-wide facet snapshot. Counts ignore the
// active filter selection; staleness is accepted, the snapshot is only
// recomputed when callers ask again.
type FacetService struct {
	courses    repositories.CourseRepository
	categories repositories.CategoryRepository
}

// NewFacetService creates a new facet service
func NewFacetService(courses repositories.CourseRepository, categories repositories.CategoryRepository) *FacetService {
	return &FacetService{
		courses:    courses,
		categories: categories,
	}
}

// Snapshot aggregates every facet dimension. When the data source is
// unreachable it degrades to a static snapshot with zero counts instead of
// failing, so filter controls stay populated.
func (s *FacetService) Snapshot(ctx context.Context) *entities.FacetSnapshot {
	snapshot, err := s.compute(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("facet aggregation failed, serving static fallback")
		return FallbackSnapshot()
	}
	return snapshot
}

func (s *FacetService) compute(ctx context.Context) (*entities.FacetSnapshot, error) {
	levels, err := s.courses.CountByField(ctx, repositories.FacetLevel)
	if err != nil {
		return nil, fmt.Errorf("level facet: %w", err)
	}

	durations, err := s.courses.CountByField(ctx, repositories.FacetDuration)
	if err != nil {
		return nil, fmt.Errorf("duration facet: %w", err)
	}

	formats, err := s.courses.CountByField(ctx, repositories.FacetFormat)
	if err != nil {
		return nil, fmt.Errorf("format facet: %w", err)
	}

	categories, err := s.categories.ListWithCounts(ctx)
	if err != nil {
		return nil, fmt.Errorf("category facet: %w", err)
	}

	min, max, ok, err := s.courses.PriceRange(ctx)
	if err != nil {
		return nil, fmt.Errorf("price range: %w", err)
	}
	if !ok {
		// No course carries a numeric price.
		min, max = 0, emptyCatalogPriceMax
	}

	return &entities.FacetSnapshot{
		Levels:     levels,
		Durations:  durations,
		Formats:    formats,
		Categories: categories,
		PriceRange: entities.PriceRange{Min: min, Max: max},
	}, nil
}

// FallbackSnapshot returns plausible static facet options with zero counts,
// used when the backing store cannot be reached.
func FallbackSnapshot() *entities.FacetSnapshot {
	return &entities.FacetSnapshot{
		Levels: []entities.FacetOption{
			{Value: "Beginner", Label: "Beginner"},
			{Value: "Intermediate", Label: "Intermediate"},
			{Value: "Advanced", Label: "Advanced"},
		},
		Durations: []entities.FacetOption{
			{Value: "1 day", Label: "1 day"},
			{Value: "2 days", Label: "2 days"},
			{Value: "3 days", Label: "3 days"},
			{Value: "1 week", Label: "1 week"},
		},
		Formats: []entities.FacetOption{
			{Value: "In-person", Label: "In-person"},
			{Value: "Remote", Label: "Remote"},
			{Value: "Hybrid", Label: "Hybrid"},
		},
		Categories: []entities.FacetOption{},
		PriceRange: entities.PriceRange{Min: 0, Max: fallbackPriceMax},
	}
}
