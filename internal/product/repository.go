package product

import (
	"context"
	"errors"

	"github.com/fashionnova610-sys/Minerhaolan/internal/model"
	"github.com/fashionnova610-sys/Minerhaolan/internal/product/dto"
)

var (
	ErrNotFound     = errors.New("product not found")
	ErrSlugExists   = errors.New("slug already exists")
	ErrInvalidInput = errors.New("invalid product input")
)

type Repository interface {
	FindAll(ctx context.Context, filters *dto.ProductFilters) ([]model.Product, int, error)
	FindByID(ctx context.Context, id int64) (*model.Product, error)
	FindBySlug(ctx context.Context, slug string) (*model.Product, error)
	FindRelated(ctx context.Context, category, excludeSlug string, limit int) ([]model.Product, error)
	Create(ctx context.Context, product *model.Product) error
	Update(ctx context.Context, product *model.Product) error
	Delete(ctx context.Context, id int64) error

	// Bulk operations used by the seeder.
	DeleteAll(ctx context.Context) (int64, error)
	InsertBatch(ctx context.Context, products []model.Product) (int64, error)
	Count(ctx context.Context) (int, error)
	EnsureSchema(ctx context.Context) error
}
