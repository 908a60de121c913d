package services

import (
	"context"
	"fmt"

	"github.com/opentraining/coursecatalog/internal/domain/entities"
	"github.com/opentraining/coursecatalog/internal/domain/repositories"
)

// CourseSearchService handles read-only catalog queries.
type CourseSearchService struct {
	courses repositories.CourseRepository
}

// NewCourseSearchService creates a new course search service
func NewCourseSearchService(courses repositories.CourseRepository) *CourseSearchService {
	return &CourseSearchService{
		courses: courses,
	}
}

// Search runs one filtered catalog query and assembles the paging metadata.
// The repository counts matches across the whole catalog before applying
// the window, so TotalCount is independent of the current page.
func (s *CourseSearchService) Search(ctx context.Context, filter entities.CourseFilter) (*entities.CourseSearchResult, error) {
	filter.Sanitize()

	courses, totalCount, err := s.courses.SearchWithCount(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("course search failed: %w", err)
	}

	return entities.NewCourseSearchResult(courses, totalCount, filter.Page, filter.PageSize), nil
}

// GetBySlug loads the detail view for one course.
func (s *CourseSearchService) GetBySlug(ctx context.Context, slug string) (*entities.CourseDetail, error) {
	detail, err := s.courses.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	return detail, nil
}
