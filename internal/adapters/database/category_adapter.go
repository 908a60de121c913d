package database

import (
	"context"
	"strconv"

	"github.com/doug-martin/goqu/v9"
	"github.com/opentraining/coursecatalog/internal/domain/entities"
	"github.com/opentraining/coursecatalog/internal/domain/repositories"
	"github.com/opentraining/coursecatalog/internal/infrastructure/clients/postgres"
	apperrors "github.com/opentraining/coursecatalog/pkg/errors"
)

// CategoryAdapter implements CategoryRepository on top of PostgreSQL.
type CategoryAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewCategoryAdapter creates a new category adapter
func NewCategoryAdapter(client *postgres.Client) repositories.CategoryRepository {
	return &CategoryAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

// ListWithCounts enumerates every category with its course count. The LEFT
// JOIN keeps zero-count categories in the result.
func (a *CategoryAdapter) ListWithCounts(ctx context.Context) ([]entities.FacetOption, error) {
	query, args, err := a.db.From(goqu.T("categories").As("cat")).
		LeftJoin(goqu.T("courses").As("c"), goqu.On(goqu.I("c.category_id").Eq(goqu.I("cat.id")))).
		Select(goqu.I("cat.id"), goqu.I("cat.name"), goqu.COUNT(goqu.I("c.id"))).
		GroupBy(goqu.I("cat.id"), goqu.I("cat.name")).
		Order(goqu.I("cat.name").Asc()).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build category facet query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to aggregate categories", err)
	}
	defer rows.Close()

	options := []entities.FacetOption{}
	for rows.Next() {
		var id int64
		var name string
		var count int
		if err := rows.Scan(&id, &name, &count); err != nil {
			return nil, apperrors.NewInternalError("failed to scan category facet", err)
		}
		options = append(options, entities.FacetOption{
			Value: strconv.FormatInt(id, 10),
			Label: name,
			Count: count,
		})
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.NewInternalError("error iterating category facets", err)
	}

	return options, nil
}
