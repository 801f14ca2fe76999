package product

import (
	"context"

	"github.com/fashionnova610-sys/Minerhaolan/internal/model"
	"github.com/fashionnova610-sys/Minerhaolan/internal/product/dto"
)

type UseCase interface {
	ListProducts(ctx context.Context, filters *dto.ProductFilters) ([]model.Product, int, error)
	GetProductBySlug(ctx context.Context, slug string) (*model.Product, error)
	GetRelatedProducts(ctx context.Context, category, currentSlug string) ([]model.Product, error)

	// Admin ops
	CreateProduct(ctx context.Context, input *dto.CreateProductInput) (*model.Product, error)
	UpdateProduct(ctx context.Context, input *dto.UpdateProductInput) (*model.Product, error)
	DeleteProduct(ctx context.Context, id int64) error

	// Catalog refresh after a reseed
	InvalidateCache(ctx context.Context) error
	Reindex(ctx context.Context) (int, error)
}
