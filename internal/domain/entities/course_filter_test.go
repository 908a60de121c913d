package entities_test

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opentraining/coursecatalog/internal/domain/entities"
)

func TestNormalizeCourseFilter_AllFields(t *testing.T) {
	values := url.Values{
		"search":     {"kubernetes"},
		"level":      {"Intermediate"},
		"duration":   {"3 days"},
		"format":     {"Remote"},
		"categoryId": {"7"},
		"priceMin":   {"500"},
		"priceMax":   {"2500"},
		"page":       {"2"},
		"limit":      {"10"},
	}

	f := entities.NormalizeCourseFilter(values)

	require.NotNil(t, f.Search)
	assert.Equal(t, "kubernetes", *f.Search)
	require.NotNil(t, f.Level)
	assert.Equal(t, "Intermediate", *f.Level)
	require.NotNil(t, f.Duration)
	assert.Equal(t, "3 days", *f.Duration)
	require.NotNil(t, f.Format)
	assert.Equal(t, "Remote", *f.Format)
	require.NotNil(t, f.CategoryID)
	assert.Equal(t, int64(7), *f.CategoryID)
	require.NotNil(t, f.PriceMin)
	assert.Equal(t, 500.0, *f.PriceMin)
	require.NotNil(t, f.PriceMax)
	assert.Equal(t, 2500.0, *f.PriceMax)
	assert.Equal(t, 2, f.Page)
	assert.Equal(t, 10, f.PageSize)
}

func TestNormalizeCourseFilter_EmptyInput(t *testing.T) {
	f := entities.NormalizeCourseFilter(url.Values{})

	assert.Nil(t, f.Search)
	assert.Nil(t, f.Level)
	assert.Nil(t, f.Duration)
	assert.Nil(t, f.Format)
	assert.Nil(t, f.CategoryID)
	assert.Nil(t, f.PriceMin)
	assert.Nil(t, f.PriceMax)
	assert.Equal(t, entities.DefaultPage, f.Page)
	assert.Equal(t, entities.DefaultPageSize, f.PageSize)
}

func TestNormalizeCourseFilter_MalformedValuesStayUnset(t *testing.T) {
	values := url.Values{
		"categoryId": {"not-a-number"},
		"priceMin":   {"cheap"},
		"priceMax":   {"1200"},
		"page":       {"first"},
		"search":     {"go"},
	}

	f := entities.NormalizeCourseFilter(values)

	// Unparseable values broaden the query instead of failing it.
	assert.Nil(t, f.CategoryID)
	assert.Nil(t, f.PriceMin)
	require.NotNil(t, f.PriceMax)
	assert.Equal(t, 1200.0, *f.PriceMax)
	require.NotNil(t, f.Search)
	assert.Equal(t, "go", *f.Search)
	assert.Equal(t, entities.DefaultPage, f.Page)
}

func TestNormalizeCourseFilter_UnknownKeysIgnored(t *testing.T) {
	values := url.Values{
		"search":  {"sql"},
		"utm_src": {"newsletter"},
	}

	f := entities.NormalizeCourseFilter(values)

	require.NotNil(t, f.Search)
	assert.Equal(t, "sql", *f.Search)
}

func TestCourseFilter_Sanitize(t *testing.T) {
	tests := []struct {
		name         string
		page         int
		pageSize     int
		wantPage     int
		wantPageSize int
	}{
		{"zero values", 0, 0, entities.DefaultPage, entities.DefaultPageSize},
		{"negative page", -3, 10, entities.DefaultPage, 10},
		{"page size over cap", 1, 500, 1, entities.MaxPageSize},
		{"valid window untouched", 4, 50, 4, 50},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := entities.CourseFilter{Page: tt.page, PageSize: tt.pageSize}
			f.Sanitize()
			assert.Equal(t, tt.wantPage, f.Page)
			assert.Equal(t, tt.wantPageSize, f.PageSize)
		})
	}
}

func TestCourseFilter_SanitizeDropsEmptyStrings(t *testing.T) {
	empty := ""
	level := "Beginner"
	f := entities.CourseFilter{Search: &empty, Level: &level, Format: &empty}
	f.Sanitize()

	assert.Nil(t, f.Search)
	assert.Nil(t, f.Format)
	require.NotNil(t, f.Level)
	assert.Equal(t, "Beginner", *f.Level)
}

func TestCourseFilter_Offset(t *testing.T) {
	f := entities.CourseFilter{Page: 3, PageSize: 20}
	assert.Equal(t, 40, f.Offset())

	f = entities.CourseFilter{Page: 1, PageSize: 20}
	assert.Equal(t, 0, f.Offset())
}

func TestCourseFilter_WithPage(t *testing.T) {
	search := "docker"
	f := entities.CourseFilter{Search: &search, Page: 1, PageSize: 20}

	next := f.WithPage(5)

	assert.Equal(t, 5, next.Page)
	assert.Equal(t, 1, f.Page)
	require.NotNil(t, next.Search)
	assert.Equal(t, "docker", *next.Search)
}
