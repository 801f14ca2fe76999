package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/fashionnova610-sys/Minerhaolan/internal/category"
	"github.com/fashionnova610-sys/Minerhaolan/internal/category/dto"
	"github.com/fashionnova610-sys/Minerhaolan/internal/model"
	"github.com/fashionnova610-sys/Minerhaolan/pkg/logger"
	"go.uber.org/zap"
)

// CacheKey shares the product cache namespace, so a catalog invalidation
// drops the facets as well.
const (
	CacheKey = "catalog:categories"
	cacheTTL = 10 * time.Minute
)

type Cache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

type categoryUseCase struct {
	repo   category.Repository
	cache  Cache
	logger logger.ZapLogger
}

// NewCategoryUseCase wires the facet reader; cache may be nil.
func NewCategoryUseCase(repo category.Repository, cache Cache, log logger.ZapLogger) category.UseCase {
	return &categoryUseCase{
		repo:   repo,
		cache:  cache,
		logger: log,
	}
}

type cachedFacets struct {
	Facets []model.CategoryFacet
	Total  int
}

func (uc *categoryUseCase) ListCategories(ctx context.Context, filters *dto.CategoryFilters) ([]model.CategoryFacet, int, error) {
	if filters == nil {
		filters = &dto.CategoryFilters{}
	}
	key := cacheKey(filters)

	if uc.cache != nil {
		if val, err := uc.cache.Get(ctx, key); err == nil {
			var cached cachedFacets
			if err := json.Unmarshal([]byte(val), &cached); err == nil {
				return cached.Facets, cached.Total, nil
			}
		}
	}

	facets, total, err := uc.repo.ListFacets(ctx, filters)
	if err != nil {
		return nil, 0, err
	}

	if uc.cache != nil {
		if data, err := json.Marshal(cachedFacets{Facets: facets, Total: total}); err == nil {
			if err := uc.cache.Set(ctx, key, data, cacheTTL); err != nil {
				uc.logger.Warn("failed to cache categories", zap.Error(err))
			}
		}
	}

	return facets, total, nil
}

func (uc *categoryUseCase) GetCategory(ctx context.Context, tag string) (*model.CategoryFacet, error) {
	return uc.repo.FindByTag(ctx, strings.ToLower(strings.TrimSpace(tag)))
}

func cacheKey(f *dto.CategoryFilters) string {
	inStock := "any"
	if f.InStock != nil {
		inStock = fmt.Sprint(*f.InStock)
	}
	return fmt.Sprintf("%s:%s:%s:%d:%d", CacheKey, strings.ToLower(f.Prefix), inStock, f.Page, f.PageSize)
}
