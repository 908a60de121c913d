package entities

import (
	"net/url"

	"github.com/gorilla/schema"
)

// Pagination bounds. Page and page size always carry a usable value because
// they drive the windowing math; every other filter field is optional.
const (
	DefaultPage     = 1
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// CourseFilter captures the full query intent of one catalog request. A nil
// field means "no constraint on that dimension", never "match empty".
type CourseFilter struct {
	Search     *string  `schema:"search"`
	Level      *string  `schema:"level"`
	Duration   *string  `schema:"duration"`
	Format     *string  `schema:"format"`
	CategoryID *int64   `schema:"categoryId"`
	PriceMin   *float64 `schema:"priceMin"`
	PriceMax   *float64 `schema:"priceMax"`
	Page       int      `schema:"page"`
	PageSize   int      `schema:"limit"`
}

var filterDecoder = schema.NewDecoder()

func init() {
	filterDecoder.IgnoreUnknownKeys(true)
	filterDecoder.ZeroEmpty(true)
}

// NormalizeCourseFilter decodes raw query values into a CourseFilter.
// Malformed input never fails the request: the decoder fills every field it
// can parse and leaves the rest nil, so a bad value broadens the result set
// instead of narrowing it.
func NormalizeCourseFilter(values url.Values) CourseFilter {
	var f CourseFilter
	// A MultiError here only names fields that could not be converted;
	// those stay unset, which is the contract.
	_ = filterDecoder.Decode(&f, values)
	f.Sanitize()
	return f
}

// Sanitize clamps the pagination window and drops empty string constraints.
func (f *CourseFilter) Sanitize() {
	if f.Page < DefaultPage {
		f.Page = DefaultPage
	}
	if f.PageSize < 1 {
		f.PageSize = DefaultPageSize
	}
	if f.PageSize > MaxPageSize {
		f.PageSize = MaxPageSize
	}
	f.Search = dropEmpty(f.Search)
	f.Level = dropEmpty(f.Level)
	f.Duration = dropEmpty(f.Duration)
	f.Format = dropEmpty(f.Format)
}

// Offset returns the number of rows skipped before the current page.
func (f *CourseFilter) Offset() int {
	return (f.Page - 1) * f.PageSize
}

// WithPage returns a copy of the filter pointing at the given page. All
// other constraints are preserved.
func (f CourseFilter) WithPage(page int) CourseFilter {
	f.Page = page
	f.Sanitize()
	return f
}

func dropEmpty(s *string) *string {
	if s != nil && *s == "" {
		return nil
	}
	return s
}
