package services

import (
	"context"
	"sync"

	"github.com/opentraining/coursecatalog/internal/domain/entities"
)

// Virtualized card geometry, matching the catalog grid renderer.
const (
	cardHeight  = 320
	cardSpacing = 24
)

// InfiniteFeed accumulates catalog pages into one append-only sequence for
// a virtualized "load more" consumer. A loading guard serializes fetches so
// a fast-scrolling consumer collapses into a single in-flight request, and
// a generation counter drops responses that were superseded by a filter
// change.
type InfiniteFeed struct {
	searcher Searcher

	mu      sync.Mutex
	gen     uint64
	filter  entities.CourseFilter
	courses []*entities.Course
	total   int
	hasNext bool
	loading bool
	lastErr error
}

// NewInfiniteFeed creates an empty feed with the default filter.
func NewInfiniteFeed(searcher Searcher) *InfiniteFeed {
	filter := entities.CourseFilter{}
	filter.Sanitize()
	return &InfiniteFeed{
		searcher: searcher,
		filter:   filter,
		hasNext:  true,
	}
}

// ApplyFilterChange replaces the selection, clears the accumulated sequence
// and fetches the first page. The page cursor of the incoming filter is
// ignored; an incremental feed always restarts from page one.
func (f *InfiniteFeed) ApplyFilterChange(ctx context.Context, filter entities.CourseFilter) error {
	filter.Sanitize()
	filter.Page = entities.DefaultPage

	f.mu.Lock()
	f.gen++
	gen := f.gen
	f.filter = filter
	f.courses = nil
	f.total = 0
	f.hasNext = true
	f.lastErr = nil
	f.loading = true
	f.mu.Unlock()

	result, err := f.searcher.Search(ctx, filter)

	f.mu.Lock()
	defer f.mu.Unlock()

	if gen != f.gen {
		return nil
	}

	f.loading = false
	if err != nil {
		f.lastErr = err
		return err
	}

	f.courses = append([]*entities.Course{}, result.Courses...)
	f.total = result.TotalCount
	f.hasNext = result.HasNextPage
	return nil
}

// LoadMore fetches the next increment and appends it to the sequence. It is
// a no-op while a fetch is in flight or when the catalog is exhausted. A
// failed fetch leaves the sequence untouched; calling LoadMore again retries
// the same increment.
func (f *InfiniteFeed) LoadMore(ctx context.Context) error {
	f.mu.Lock()
	if f.loading || !f.hasNext {
		f.mu.Unlock()
		return nil
	}
	f.loading = true
	gen := f.gen
	next := f.filter.WithPage(len(f.courses)/f.filter.PageSize + 1)
	f.mu.Unlock()

	result, err := f.searcher.Search(ctx, next)

	f.mu.Lock()
	defer f.mu.Unlock()

	if gen != f.gen {
		// Filters changed while this increment was in flight; the reset
		// fetch owns the state now.
		return nil
	}

	f.loading = false
	if err != nil {
		f.lastErr = err
		return err
	}

	f.lastErr = nil
	f.courses = append(f.courses, result.Courses...)
	f.total = result.TotalCount
	f.hasNext = result.HasNextPage
	return nil
}

// Snapshot returns the current accumulated view.
func (f *InfiniteFeed) Snapshot() entities.IncrementalResultSet {
	f.mu.Lock()
	defer f.mu.Unlock()
	courses := make([]*entities.Course, len(f.courses))
	copy(courses, f.courses)
	return entities.IncrementalResultSet{
		Courses:     courses,
		HasNextPage: f.hasNext,
		TotalCount:  f.total,
	}
}

// Loading reports whether an increment fetch is in flight.
func (f *InfiniteFeed) Loading() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.loading
}

// Err returns the error of the last failed fetch, cleared by the next
// successful one.
func (f *InfiniteFeed) Err() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.lastErr
}

// Filter returns the selection governing the accumulated sequence.
func (f *InfiniteFeed) Filter() entities.CourseFilter {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.filter
}

// RowCount reports how many visual rows are backed by fetched items when
// the renderer packs columns items per row.
func (f *InfiniteFeed) RowCount(columns int) int {
	if columns < 1 {
		columns = 1
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return (len(f.courses) + columns - 1) / columns
}

// VirtualRowCount adds the trailing loader row while more pages remain.
func (f *InfiniteFeed) VirtualRowCount(columns int) int {
	rows := f.RowCount(columns)
	f.mu.Lock()
	hasNext := f.hasNext
	f.mu.Unlock()
	if hasNext {
		rows++
	}
	return rows
}

// IsRowLoaded reports whether the given visual row is backed by fetched
// items. The renderer turns unloaded rows into a LoadMore trigger or a
// placeholder.
func (f *InfiniteFeed) IsRowLoaded(row, columns int) bool {
	return row < f.RowCount(columns)
}

// RowHeight returns the pixel height of a visual row. Cards are fixed
// height, so every row measures the same regardless of index.
func RowHeight(row int) int {
	return cardHeight + cardSpacing
}
