package database_test

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opentraining/coursecatalog/internal/adapters/database"
	"github.com/opentraining/coursecatalog/internal/domain/entities"
	"github.com/opentraining/coursecatalog/internal/domain/repositories"
	"github.com/opentraining/coursecatalog/internal/infrastructure/clients/postgres"
	apperrors "github.com/opentraining/coursecatalog/pkg/errors"
)

func setupMockDB(t *testing.T) (repositories.CourseRepository, sqlmock.Sqlmock) {
	t.Helper()
	mockDB, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("Failed to create mock database: %v", err)
	}
	t.Cleanup(func() { mockDB.Close() })
	return database.NewCourseAdapter(postgres.NewClientWithDB(mockDB)), mock
}

var courseColumns = []string{
	"id", "slug", "title", "audience", "prerequisites",
	"level", "duration", "format", "price_text", "price_numeric",
	"category_id", "created_at", "updated_at",
	"category_pk", "category_name", "category_slug",
}

func TestCourseAdapter_SearchWithCount(t *testing.T) {
	adapter, mock := setupMockDB(t)
	now := time.Now()

	mock.ExpectQuery(`SELECT COUNT\(.+\) FROM "courses"`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(45))

	rows := sqlmock.NewRows(courseColumns).
		AddRow("id-1", "go-fundamentals", "Go Fundamentals", "Backend developers", "",
			"Beginner", "3 days", "In-person", "$1,800 per attendee", 1800.0,
			1, now, now, 1, "Software Development", "software-development").
		AddRow("id-2", "agile-team-leadership", "Agile Team Leadership", "Tech leads", "",
			nil, "1 day", nil, "Contact us", nil,
			nil, now, now, nil, nil, nil)
	mock.ExpectQuery(`SELECT .+ FROM "courses" AS "c" LEFT JOIN "categories"`).
		WillReturnRows(rows)

	level := "Beginner"
	courses, total, err := adapter.SearchWithCount(context.Background(), entities.CourseFilter{
		Level: &level, Page: 1, PageSize: 20,
	})

	require.NoError(t, err)
	assert.Equal(t, 45, total)
	require.Len(t, courses, 2)

	first := courses[0]
	assert.Equal(t, "go-fundamentals", first.Slug)
	require.NotNil(t, first.Level)
	assert.Equal(t, "Beginner", *first.Level)
	require.NotNil(t, first.PriceNumeric)
	assert.Equal(t, 1800.0, *first.PriceNumeric)
	require.NotNil(t, first.Category)
	assert.Equal(t, "Software Development", first.Category.Name)

	second := courses[1]
	assert.Nil(t, second.Level)
	assert.Nil(t, second.Format)
	assert.Nil(t, second.PriceNumeric)
	assert.Nil(t, second.Category)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCourseAdapter_SearchWithCount_QueryShape(t *testing.T) {
	adapter, mock := setupMockDB(t)

	// Free text becomes ILIKE predicates; page two applies an OFFSET.
	mock.ExpectQuery(`SELECT COUNT\(.+\).+ILIKE.+ILIKE.+ILIKE`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectQuery(`ILIKE.+ORDER BY .+ LIMIT .+ OFFSET`).
		WillReturnRows(sqlmock.NewRows(courseColumns))

	search := "kubernetes"
	courses, total, err := adapter.SearchWithCount(context.Background(), entities.CourseFilter{
		Search: &search, Page: 2, PageSize: 20,
	})

	require.NoError(t, err)
	assert.Zero(t, total)
	assert.Empty(t, courses)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCourseAdapter_SearchWithCount_PriceBoundsConstrainNumericColumn(t *testing.T) {
	adapter, mock := setupMockDB(t)

	// Both bounds land on price_numeric, so rows with a NULL price can
	// never satisfy them.
	mock.ExpectQuery(`"c"\."price_numeric" >= .+"c"\."price_numeric" <= `).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectQuery(`"c"\."price_numeric" >= .+"c"\."price_numeric" <= .+ORDER BY`).
		WillReturnRows(sqlmock.NewRows(courseColumns))

	min, max := 500.0, 2500.0
	_, _, err := adapter.SearchWithCount(context.Background(), entities.CourseFilter{
		PriceMin: &min, PriceMax: &max, Page: 1, PageSize: 20,
	})

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCourseAdapter_SearchWithCount_FirstPageHasNoOffset(t *testing.T) {
	adapter, mock := setupMockDB(t)

	mock.ExpectQuery(`SELECT COUNT\(.+\) FROM "courses"`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))
	mock.ExpectQuery(`ORDER BY .+ LIMIT \$?\d*\s*$`).
		WillReturnRows(sqlmock.NewRows(courseColumns))

	_, _, err := adapter.SearchWithCount(context.Background(), entities.CourseFilter{Page: 1, PageSize: 20})

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCourseAdapter_GetBySlug(t *testing.T) {
	adapter, mock := setupMockDB(t)
	now := time.Now()

	mock.ExpectQuery(`FROM "courses" AS "c" LEFT JOIN "categories".+WHERE \("c"\."slug" = `).
		WillReturnRows(sqlmock.NewRows(courseColumns).
			AddRow("id-1", "go-fundamentals", "Go Fundamentals", "Backend developers", "One language",
				"Beginner", "3 days", "In-person", "$1,800 per attendee", 1800.0,
				1, now, now, 1, "Software Development", "software-development"))

	mock.ExpectQuery(`FROM "syllabus_days".+ORDER BY "day"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "course_id", "day", "title", "content"}).
			AddRow(1, "id-1", 1, "Language basics", "Syntax and tooling").
			AddRow(2, "id-1", 2, "Concurrency", "Goroutines and channels"))

	mock.ExpectQuery(`FROM "tags" AS "t" INNER JOIN "course_tags"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "category_pk", "category_name", "category_slug"}).
			AddRow(1, "go", 1, "Software Development", "software-development").
			AddRow(2, "backend", nil, nil, nil))

	detail, err := adapter.GetBySlug(context.Background(), "go-fundamentals")

	require.NoError(t, err)
	assert.Equal(t, "Go Fundamentals", detail.Title)
	require.Len(t, detail.Syllabus, 2)
	assert.Equal(t, 1, detail.Syllabus[0].Day)
	require.Len(t, detail.Tags, 2)
	assert.Equal(t, "go", detail.Tags[0].Name)
	require.NotNil(t, detail.Tags[0].Category)
	assert.Nil(t, detail.Tags[1].Category)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCourseAdapter_GetBySlug_NotFound(t *testing.T) {
	adapter, mock := setupMockDB(t)

	mock.ExpectQuery(`FROM "courses" AS "c"`).
		WillReturnRows(sqlmock.NewRows(courseColumns))

	detail, err := adapter.GetBySlug(context.Background(), "missing")

	require.Error(t, err)
	assert.Nil(t, detail)
	assert.True(t, apperrors.IsNotFound(err))
}

func TestCourseAdapter_CountByField(t *testing.T) {
	adapter, mock := setupMockDB(t)

	mock.ExpectQuery(`SELECT "level", COUNT\(\*\) FROM "courses" WHERE \("level" IS NOT NULL\) GROUP BY "level"`).
		WillReturnRows(sqlmock.NewRows([]string{"level", "count"}).
			AddRow("Advanced", 2).
			AddRow("Beginner", 5))

	options, err := adapter.CountByField(context.Background(), repositories.FacetLevel)

	require.NoError(t, err)
	require.Len(t, options, 2)
	assert.Equal(t, entities.FacetOption{Value: "Advanced", Label: "Advanced", Count: 2}, options[0])
	assert.Equal(t, entities.FacetOption{Value: "Beginner", Label: "Beginner", Count: 5}, options[1])
}

func TestCourseAdapter_CountByField_UnknownField(t *testing.T) {
	adapter, _ := setupMockDB(t)

	_, err := adapter.CountByField(context.Background(), repositories.FacetField("color"))

	require.Error(t, err)
	appErr, ok := err.(*apperrors.AppError)
	require.True(t, ok)
	assert.Equal(t, apperrors.ErrorTypeValidation, appErr.Type)
}

func TestCourseAdapter_PriceRange(t *testing.T) {
	adapter, mock := setupMockDB(t)

	mock.ExpectQuery(`SELECT MIN\("price_numeric"\), MAX\("price_numeric"\) FROM "courses"`).
		WillReturnRows(sqlmock.NewRows([]string{"min", "max"}).AddRow(900.0, 2900.0))

	min, max, ok, err := adapter.PriceRange(context.Background())

	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 900.0, min)
	assert.Equal(t, 2900.0, max)
}

func TestCourseAdapter_PriceRange_NoPricedCourses(t *testing.T) {
	adapter, mock := setupMockDB(t)

	mock.ExpectQuery(`SELECT MIN\("price_numeric"\), MAX\("price_numeric"\) FROM "courses"`).
		WillReturnRows(sqlmock.NewRows([]string{"min", "max"}).AddRow(nil, nil))

	_, _, ok, err := adapter.PriceRange(context.Background())

	require.NoError(t, err)
	assert.False(t, ok)
}
