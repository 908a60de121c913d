package services

import (
	"context"
	"reflect"
	"sync"
	"sync/atomic"

	"github.com/opentraining/coursecatalog/internal/domain/entities"
)

// Searcher executes one catalog query. CourseSearchService implements it;
// tests substitute fakes.
type Searcher interface {
	Search(ctx context.Context, filter entities.CourseFilter) (*entities.CourseSearchResult, error)
}

// SearchSession owns the filter selection of one browsing session and keeps
// its result page consistent under overlapping fetches. Every fetch carries
// a sequence number; only the response matching the most recently issued
// request may update state, so a slow early response can never clobber a
// later one.
type SearchSession struct {
	searcher Searcher
	seq      atomic.Uint64

	mu       sync.Mutex
	filter   entities.CourseFilter
	result   *entities.CourseSearchResult
	err      error
	fetching bool
}

// NewSearchSession creates a session starting from the default filter.
func NewSearchSession(searcher Searcher) *SearchSession {
	filter := entities.CourseFilter{}
	filter.Sanitize()
	return &SearchSession{
		searcher: searcher,
		filter:   filter,
	}
}

// ApplyFilter replaces the active selection and re-queries. Changing any
// constraint other than the page itself invalidates the previous window and
// resets to page one.
func (s *SearchSession) ApplyFilter(ctx context.Context, filter entities.CourseFilter) error {
	filter.Sanitize()

	s.mu.Lock()
	if constraintsChanged(s.filter, filter) {
		filter.Page = entities.DefaultPage
	}
	s.filter = filter
	s.fetching = true
	seq := s.seq.Add(1)
	s.mu.Unlock()

	return s.fetch(ctx, filter, seq)
}

// SetPage moves the window without touching the other constraints.
func (s *SearchSession) SetPage(ctx context.Context, page int) error {
	s.mu.Lock()
	filter := s.filter.WithPage(page)
	s.filter = filter
	s.fetching = true
	seq := s.seq.Add(1)
	s.mu.Unlock()

	return s.fetch(ctx, filter, seq)
}

// ResetFilters drops every constraint and returns to the first page.
func (s *SearchSession) ResetFilters(ctx context.Context) error {
	return s.ApplyFilter(ctx, entities.CourseFilter{})
}

// Refresh re-runs the current selection.
func (s *SearchSession) Refresh(ctx context.Context) error {
	s.mu.Lock()
	filter := s.filter
	s.fetching = true
	seq := s.seq.Add(1)
	s.mu.Unlock()

	return s.fetch(ctx, filter, seq)
}

// fetch runs one query for the request identified by seq. The sequence number
// is claimed in the same critical section that installs the filter, so the
// winning response is always the one for the selection Filter() reports.
func (s *SearchSession) fetch(ctx context.Context, filter entities.CourseFilter, seq uint64) error {
	result, err := s.searcher.Search(ctx, filter)

	s.mu.Lock()
	defer s.mu.Unlock()

	if seq != s.seq.Load() {
		// A newer request was issued while this one was in flight; its
		// response owns the state now.
		return nil
	}

	s.fetching = false
	if err != nil {
		// State is left unchanged; the error flag tells the caller.
		s.err = err
		return err
	}

	s.result = result
	s.err = nil
	return nil
}

// Filter returns the active selection.
func (s *SearchSession) Filter() entities.CourseFilter {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.filter
}

// Result returns the current page, whether a fetch is in flight, and the
// error of the last applied response.
func (s *SearchSession) Result() (*entities.CourseSearchResult, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.result, s.fetching, s.err
}

// constraintsChanged reports whether anything other than the page moved.
func constraintsChanged(prev, next entities.CourseFilter) bool {
	prev.Page = 0
	next.Page = 0
	return !reflect.DeepEqual(prev, next)
}
