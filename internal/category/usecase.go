package category

import (
	"context"

	"github.com/fashionnova610-sys/Minerhaolan/internal/category/dto"
	"github.com/fashionnova610-sys/Minerhaolan/internal/model"
)

type UseCase interface {
	ListCategories(ctx context.Context, filters *dto.CategoryFilters) ([]model.CategoryFacet, int, error)
	GetCategory(ctx context.Context, tag string) (*model.CategoryFacet, error)
}
