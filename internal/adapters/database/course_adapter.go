package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"
	"github.com/opentraining/coursecatalog/internal/domain/entities"
	"github.com/opentraining/coursecatalog/internal/domain/repositories"
	"github.com/opentraining/coursecatalog/internal/infrastructure/clients/postgres"
	apperrors "github.com/opentraining/coursecatalog/pkg/errors"
)

// CourseAdapter implements CourseRepository on top of PostgreSQL.
type CourseAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewCourseAdapter creates a new course adapter
func NewCourseAdapter(client *postgres.Client) repositories.CourseRepository {
	return &CourseAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

var facetColumns = map[repositories.FacetField]string{
	repositories.FacetLevel:    "level",
	repositories.FacetDuration: "duration",
	repositories.FacetFormat:   "format",
}

// applyFilter translates a filter selection into SQL predicates. Free text
// becomes an OR group of case-insensitive substring matches over title,
// audience and prerequisites; scalar facets are exact equality and are
// omitted entirely when unset; a price bound constrains price_numeric, so
// rows with a NULL price never match it.
func applyFilter(ds *goqu.SelectDataset, f entities.CourseFilter) *goqu.SelectDataset {
	if f.Search != nil {
		pattern := fmt.Sprintf("%%%s%%", *f.Search)
		ds = ds.Where(goqu.Or(
			goqu.I("c.title").ILike(pattern),
			goqu.I("c.audience").ILike(pattern),
			goqu.I("c.prerequisites").ILike(pattern),
		))
	}

	if f.Level != nil {
		ds = ds.Where(goqu.I("c.level").Eq(*f.Level))
	}
	if f.Duration != nil {
		ds = ds.Where(goqu.I("c.duration").Eq(*f.Duration))
	}
	if f.Format != nil {
		ds = ds.Where(goqu.I("c.format").Eq(*f.Format))
	}
	if f.CategoryID != nil {
		ds = ds.Where(goqu.I("c.category_id").Eq(*f.CategoryID))
	}

	if f.PriceMin != nil {
		ds = ds.Where(goqu.I("c.price_numeric").Gte(*f.PriceMin))
	}
	if f.PriceMax != nil {
		ds = ds.Where(goqu.I("c.price_numeric").Lte(*f.PriceMax))
	}

	return ds
}

// SearchWithCount filters the entire catalog first, counts the matches, then
// applies the pagination window. Ordering is title ascending with id as the
// tiebreak so repeated queries return disjoint, gapless pages.
func (a *CourseAdapter) SearchWithCount(ctx context.Context, filter entities.CourseFilter) ([]*entities.Course, int, error) {
	base := a.db.From(goqu.T("courses").As("c")).
		LeftJoin(goqu.T("categories").As("cat"), goqu.On(goqu.I("c.category_id").Eq(goqu.I("cat.id"))))

	filtered := applyFilter(base, filter)

	countSQL, countArgs, err := filtered.Select(goqu.COUNT(goqu.I("c.id"))).ToSQL()
	if err != nil {
		return nil, 0, apperrors.NewInternalError("failed to build count query", err)
	}

	var totalCount int
	if err := a.client.DB().QueryRowContext(ctx, countSQL, countArgs...).Scan(&totalCount); err != nil {
		return nil, 0, apperrors.NewInternalError("failed to count courses", err)
	}

	pageQuery := filtered.Select(
		goqu.I("c.id"), goqu.I("c.slug"), goqu.I("c.title"), goqu.I("c.audience"),
		goqu.I("c.prerequisites"), goqu.I("c.level"), goqu.I("c.duration"), goqu.I("c.format"),
		goqu.I("c.price_text"), goqu.I("c.price_numeric"), goqu.I("c.category_id"),
		goqu.I("c.created_at"), goqu.I("c.updated_at"),
		goqu.I("cat.id").As("category_pk"), goqu.I("cat.name").As("category_name"), goqu.I("cat.slug").As("category_slug"),
	).
		Order(goqu.I("c.title").Asc(), goqu.I("c.id").Asc()).
		Limit(uint(filter.PageSize))

	if offset := filter.Offset(); offset > 0 {
		pageQuery = pageQuery.Offset(uint(offset))
	}

	pageSQL, pageArgs, err := pageQuery.ToSQL()
	if err != nil {
		return nil, 0, apperrors.NewInternalError("failed to build search query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, pageSQL, pageArgs...)
	if err != nil {
		return nil, 0, apperrors.NewInternalError("failed to search courses", err)
	}
	defer rows.Close()

	courses := []*entities.Course{}
	for rows.Next() {
		course, err := scanCourse(rows)
		if err != nil {
			return nil, 0, apperrors.NewInternalError("failed to scan course", err)
		}
		courses = append(courses, course)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, apperrors.NewInternalError("error iterating courses", err)
	}

	return courses, totalCount, nil
}

// GetBySlug loads a course with its syllabus (day ascending) and tags.
func (a *CourseAdapter) GetBySlug(ctx context.Context, slug string) (*entities.CourseDetail, error) {
	query, args, err := a.db.From(goqu.T("courses").As("c")).
		LeftJoin(goqu.T("categories").As("cat"), goqu.On(goqu.I("c.category_id").Eq(goqu.I("cat.id")))).
		Select(
			goqu.I("c.id"), goqu.I("c.slug"), goqu.I("c.title"), goqu.I("c.audience"),
			goqu.I("c.prerequisites"), goqu.I("c.level"), goqu.I("c.duration"), goqu.I("c.format"),
			goqu.I("c.price_text"), goqu.I("c.price_numeric"), goqu.I("c.category_id"),
			goqu.I("c.created_at"), goqu.I("c.updated_at"),
			goqu.I("cat.id").As("category_pk"), goqu.I("cat.name").As("category_name"), goqu.I("cat.slug").As("category_slug"),
		).
		Where(goqu.I("c.slug").Eq(slug)).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build course query", err)
	}

	row := a.client.DB().QueryRowContext(ctx, query, args...)
	course, err := scanCourse(row)
	if err == sql.ErrNoRows {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("course with slug %s not found", slug))
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to get course", err)
	}

	detail := &entities.CourseDetail{Course: *course}

	if detail.Syllabus, err = a.listSyllabus(ctx, course.ID); err != nil {
		return nil, err
	}
	if detail.Tags, err = a.listTags(ctx, course.ID); err != nil {
		return nil, err
	}

	return detail, nil
}

func (a *CourseAdapter) listSyllabus(ctx context.Context, courseID string) ([]entities.SyllabusDay, error) {
	query, args, err := a.db.Select("id", "course_id", "day", "title", "content").
		From("syllabus_days").
		Where(goqu.Ex{"course_id": courseID}).
		Order(goqu.I("day").Asc()).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build syllabus query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list syllabus days", err)
	}
	defer rows.Close()

	days := []entities.SyllabusDay{}
	for rows.Next() {
		var d entities.SyllabusDay
		if err := rows.Scan(&d.ID, &d.CourseID, &d.Day, &d.Title, &d.Content); err != nil {
			return nil, apperrors.NewInternalError("failed to scan syllabus day", err)
		}
		days = append(days, d)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.NewInternalError("error iterating syllabus days", err)
	}

	return days, nil
}

func (a *CourseAdapter) listTags(ctx context.Context, courseID string) ([]entities.Tag, error) {
	query, args, err := a.db.From(goqu.T("tags").As("t")).
		Join(goqu.T("course_tags").As("ct"), goqu.On(goqu.I("ct.tag_id").Eq(goqu.I("t.id")))).
		LeftJoin(goqu.T("categories").As("cat"), goqu.On(goqu.I("t.category_id").Eq(goqu.I("cat.id")))).
		Select(
			goqu.I("t.id"), goqu.I("t.name"),
			goqu.I("cat.id").As("category_pk"), goqu.I("cat.name").As("category_name"), goqu.I("cat.slug").As("category_slug"),
		).
		Where(goqu.I("ct.course_id").Eq(courseID)).
		Order(goqu.I("t.name").Asc()).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build tags query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list tags", err)
	}
	defer rows.Close()

	tags := []entities.Tag{}
	for rows.Next() {
		var t entities.Tag
		var catID sql.NullInt64
		var catName, catSlug sql.NullString
		if err := rows.Scan(&t.ID, &t.Name, &catID, &catName, &catSlug); err != nil {
			return nil, apperrors.NewInternalError("failed to scan tag", err)
		}
		if catID.Valid {
			t.Category = &entities.Category{ID: catID.Int64, Name: catName.String, Slug: catSlug.String}
		}
		tags = append(tags, t)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.NewInternalError("error iterating tags", err)
	}

	return tags, nil
}

// CountByField groups the whole catalog by one facet column, skipping NULL
// values. Counts deliberately ignore any active filter selection.
func (a *CourseAdapter) CountByField(ctx context.Context, field repositories.FacetField) ([]entities.FacetOption, error) {
	column, ok := facetColumns[field]
	if !ok {
		return nil, apperrors.NewValidationError(fmt.Sprintf("unknown facet field %q", field))
	}

	query, args, err := a.db.From("courses").
		Select(goqu.I(column), goqu.COUNT("*")).
		Where(goqu.I(column).IsNotNull()).
		GroupBy(goqu.I(column)).
		Order(goqu.I(column).Asc()).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build facet query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError(fmt.Sprintf("failed to aggregate %s facet", column), err)
	}
	defer rows.Close()

	options := []entities.FacetOption{}
	for rows.Next() {
		var value string
		var count int
		if err := rows.Scan(&value, &count); err != nil {
			return nil, apperrors.NewInternalError("failed to scan facet option", err)
		}
		options = append(options, entities.FacetOption{Value: value, Label: value, Count: count})
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.NewInternalError("error iterating facet options", err)
	}

	return options, nil
}

// PriceRange returns the numeric price bounds over courses that have one.
func (a *CourseAdapter) PriceRange(ctx context.Context) (float64, float64, bool, error) {
	query, args, err := a.db.From("courses").
		Select(goqu.MIN(goqu.I("price_numeric")), goqu.MAX(goqu.I("price_numeric"))).
		Where(goqu.I("price_numeric").IsNotNull()).
		ToSQL()
	if err != nil {
		return 0, 0, false, apperrors.NewInternalError("failed to build price range query", err)
	}

	var min, max sql.NullFloat64
	if err := a.client.DB().QueryRowContext(ctx, query, args...).Scan(&min, &max); err != nil {
		return 0, 0, false, apperrors.NewInternalError("failed to get price range", err)
	}

	if !min.Valid || !max.Valid {
		return 0, 0, false, nil
	}

	return min.Float64, max.Float64, true, nil
}

// rowScanner covers both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanCourse(row rowScanner) (*entities.Course, error) {
	course := &entities.Course{}
	var level, duration, format sql.NullString
	var priceNumeric sql.NullFloat64
	var categoryID, catPK sql.NullInt64
	var catName, catSlug sql.NullString

	err := row.Scan(
		&course.ID,
		&course.Slug,
		&course.Title,
		&course.Audience,
		&course.Prerequisites,
		&level,
		&duration,
		&format,
		&course.PriceText,
		&priceNumeric,
		&categoryID,
		&course.CreatedAt,
		&course.UpdatedAt,
		&catPK,
		&catName,
		&catSlug,
	)
	if err != nil {
		return nil, err
	}

	if level.Valid {
		course.Level = &level.String
	}
	if duration.Valid {
		course.Duration = &duration.String
	}
	if format.Valid {
		course.Format = &format.String
	}
	if priceNumeric.Valid {
		course.PriceNumeric = &priceNumeric.Float64
	}
	if categoryID.Valid {
		course.CategoryID = &categoryID.Int64
	}
	if catPK.Valid {
		course.Category = &entities.Category{ID: catPK.Int64, Name: catName.String, Slug: catSlug.String}
	}

	return course, nil
}
