package category

import (
	"context"

	"github.com/fashionnova610-sys/Minerhaolan/internal/category/dto"
	"github.com/fashionnova610-sys/Minerhaolan/internal/model"
)

// Repository reads category facets derived from the products table; tags are
// never stored on their own.
type Repository interface {
	ListFacets(ctx context.Context, filters *dto.CategoryFilters) ([]model.CategoryFacet, int, error)
	FindByTag(ctx context.Context, tag string) (*model.CategoryFacet, error)
}
