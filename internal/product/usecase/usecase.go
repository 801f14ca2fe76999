package usecase

import (
	"context"
	"crypto/md5"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/fashionnova610-sys/Minerhaolan/internal/model"
	"github.com/fashionnova610-sys/Minerhaolan/internal/product"
	"github.com/fashionnova610-sys/Minerhaolan/internal/product/dto"
	"github.com/fashionnova610-sys/Minerhaolan/pkg/logger"
	"github.com/fashionnova610-sys/Minerhaolan/pkg/search"
	"go.uber.org/zap"
)

const (
	IndexName = "products"

	// CachePrefix namespaces every cached catalog read so a reseed can drop
	// them with one pattern.
	CachePrefix = "catalog:"

	listCacheTTL = 5 * time.Minute
	relatedLimit = 4
)

const indexMapping = `{
	"mappings": {
		"properties": {
			"slug": { "type": "keyword" },
			"name": { "type": "text" },
			"manufacturer": { "type": "text", "fields": { "raw": { "type": "keyword" } } },
			"algorithm": { "type": "text" },
			"description": { "type": "text" },
			"category": { "type": "keyword" },
			"condition": { "type": "keyword" },
			"specifications": { "properties": { "category": { "type": "keyword" } } },
			"price": { "type": "long" },
			"featured": { "type": "boolean" },
			"in_stock": { "type": "boolean" },
			"created_at": { "type": "date" }
		}
	}
}`

// Cache is the subset of the Redis client the catalog reads through.
type Cache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	DeletePattern(ctx context.Context, pattern string) (int, error)
}

// SearchIndex is the subset of the Elasticsearch client used for full-text
// search and index maintenance.
type SearchIndex interface {
	CreateIndex(ctx context.Context, index, mapping string) error
	Index(ctx context.Context, index, id string, doc interface{}) error
	Delete(ctx context.Context, index, id string) error
	DeleteAll(ctx context.Context, index string) error
	Search(ctx context.Context, index string, query map[string]interface{}) (*search.SearchResponse, error)
}

type productUseCase struct {
	repo   product.Repository
	cache  Cache
	es     SearchIndex
	logger logger.ZapLogger
}

// NewProductUseCase wires the catalog use case. cache and es are optional.
func NewProductUseCase(repo product.Repository, cache Cache, es SearchIndex, log logger.ZapLogger) product.UseCase {
	return &productUseCase{
		repo:   repo,
		cache:  cache,
		es:     es,
		logger: log,
	}
}

type cachedList struct {
	Products []model.Product
	Count    int
}

func (uc *productUseCase) ListProducts(ctx context.Context, filters *dto.ProductFilters) ([]model.Product, int, error) {
	if filters == nil {
		filters = &dto.ProductFilters{}
	}

	// 1. Cache
	cacheKey, err := generateCacheKey(filters)
	if err == nil && uc.cache != nil {
		if val, err := uc.cache.Get(ctx, cacheKey); err == nil {
			var result cachedList
			if err := json.Unmarshal([]byte(val), &result); err == nil {
				return result.Products, result.Count, nil
			}
		}
	}

	// 2. Elastic for text queries
	if filters.SearchQuery != "" && uc.es != nil {
		products, total, err := uc.searchIndex(ctx, filters)
		if err == nil {
			return products, total, nil
		}
		uc.logger.Error("ES search failed, falling back to DB", zap.Error(err))
	}

	// 3. DB
	products, count, err := uc.repo.FindAll(ctx, filters)
	if err != nil {
		return nil, 0, err
	}

	if cacheKey != "" && uc.cache != nil {
		if data, err := json.Marshal(cachedList{Products: products, Count: count}); err == nil {
			if err := uc.cache.Set(ctx, cacheKey, data, listCacheTTL); err != nil {
				uc.logger.Warn("failed to cache product list", zap.Error(err))
			}
		}
	}

	return products, count, nil
}

func (uc *productUseCase) searchIndex(ctx context.Context, f *dto.ProductFilters) ([]model.Product, int, error) {
	filter := []map[string]interface{}{}
	if f.Category != "" {
		filter = append(filter, map[string]interface{}{
			"term": map[string]interface{}{"specifications.category": f.Category},
		})
	}
	if f.Condition != "" {
		filter = append(filter, map[string]interface{}{
			"term": map[string]interface{}{"condition": f.Condition},
		})
	}
	if f.Featured != nil {
		filter = append(filter, map[string]interface{}{
			"term": map[string]interface{}{"featured": *f.Featured},
		})
	}
	if f.InStock != nil {
		filter = append(filter, map[string]interface{}{
			"term": map[string]interface{}{"in_stock": *f.InStock},
		})
	}
	if f.Manufacturer != "" {
		filter = append(filter, map[string]interface{}{
			"match": map[string]interface{}{"manufacturer": f.Manufacturer},
		})
	}

	q := map[string]interface{}{
		"query": map[string]interface{}{
			"bool": map[string]interface{}{
				"must": []map[string]interface{}{
					{
						"multi_match": map[string]interface{}{
							"query":  f.SearchQuery,
							"fields": []string{"name^3", "manufacturer^2", "algorithm", "description"},
						},
					},
				},
				"filter": filter,
			},
		},
	}
	if f.PageSize > 0 {
		page := f.Page
		if page < 1 {
			page = 1
		}
		q["from"] = (page - 1) * f.PageSize
		q["size"] = f.PageSize
	}

	res, err := uc.es.Search(ctx, IndexName, q)
	if err != nil {
		return nil, 0, err
	}

	products := make([]model.Product, 0, len(res.Hits.Hits))
	for _, hit := range res.Hits.Hits {
		var p model.Product
		if err := json.Unmarshal(hit.Source, &p); err != nil {
			uc.logger.Warn("skipping malformed search hit", zap.String("id", hit.ID), zap.Error(err))
			continue
		}
		products = append(products, p)
	}
	return products, res.Hits.Total.Value, nil
}

func generateCacheKey(filters *dto.ProductFilters) (string, error) {
	data, err := json.Marshal(filters)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%sproducts:list:%x", CachePrefix, md5.Sum(data)), nil
}

func (uc *productUseCase) GetProductBySlug(ctx context.Context, slug string) (*model.Product, error) {
	return uc.repo.FindBySlug(ctx, slug)
}

func (uc *productUseCase) GetRelatedProducts(ctx context.Context, category, currentSlug string) ([]model.Product, error) {
	if category == "" {
		return []model.Product{}, nil
	}
	return uc.repo.FindRelated(ctx, category, currentSlug, relatedLimit)
}

func (uc *productUseCase) CreateProduct(ctx context.Context, input *dto.CreateProductInput) (*model.Product, error) {
	p, err := newProduct(input)
	if err != nil {
		return nil, err
	}

	existing, err := uc.repo.FindBySlug(ctx, p.Slug)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: %s", product.ErrSlugExists, p.Slug)
	}

	if err := uc.repo.Create(ctx, p); err != nil {
		return nil, err
	}

	uc.invalidate(ctx)
	uc.syncToElastic(ctx, p)
	return p, nil
}

func newProduct(in *dto.CreateProductInput) (*model.Product, error) {
	slug := strings.TrimSpace(in.Slug)
	name := strings.TrimSpace(in.Name)
	switch {
	case slug == "":
		return nil, fmt.Errorf("%w: slug is required", product.ErrInvalidInput)
	case name == "":
		return nil, fmt.Errorf("%w: name is required", product.ErrInvalidInput)
	case in.Price < 0:
		return nil, fmt.Errorf("%w: price must not be negative", product.ErrInvalidInput)
	case in.Power < 0:
		return nil, fmt.Errorf("%w: power must not be negative", product.ErrInvalidInput)
	}

	condition := defaultString(strings.ToLower(in.Condition), model.ConditionNew)
	if condition != model.ConditionNew && condition != model.ConditionUsed {
		return nil, fmt.Errorf("%w: unknown condition %q", product.ErrInvalidInput, in.Condition)
	}
	cooling := defaultString(strings.ToLower(in.Cooling), model.CoolingAir)
	if cooling != model.CoolingAir && cooling != model.CoolingHydro && cooling != model.CoolingImmersion {
		return nil, fmt.Errorf("%w: unknown cooling %q", product.ErrInvalidInput, in.Cooling)
	}

	category := defaultString(strings.TrimSpace(in.Category), model.Uncategorized)
	tags := in.Tags
	if len(tags) == 0 {
		tags = []string{category}
	}
	inStock := true
	if in.InStock != nil {
		inStock = *in.InStock
	}

	p := &model.Product{
		Slug:         slug,
		Name:         name,
		Manufacturer: in.Manufacturer,
		Model:        defaultString(in.Model, name),
		Algorithm:    in.Algorithm,
		Hashrate:     in.Hashrate,
		Power:        in.Power,
		Efficiency:   in.Efficiency,
		Price:        in.Price,
		Currency:     defaultString(in.Currency, "USD"),
		Condition:    condition,
		Cooling:      cooling,
		Category:     category,
		Specifications: model.Specifications{
			Category:   tags,
			Hashrate:   in.Hashrate,
			Power:      in.Power,
			Efficiency: in.Efficiency,
			Algorithm:  in.Algorithm,
		},
		InStock:  inStock,
		Featured: in.Featured,
	}
	if in.ImageURL != "" {
		img := in.ImageURL
		p.ImageURL = &img
	}
	if in.Description != "" {
		desc := in.Description
		p.Description = &desc
	}
	return p, nil
}

func (uc *productUseCase) UpdateProduct(ctx context.Context, input *dto.UpdateProductInput) (*model.Product, error) {
	p, err := uc.repo.FindByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, product.ErrNotFound
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, fmt.Errorf("%w: name must not be empty", product.ErrInvalidInput)
		}
		p.Name = name
	}
	if input.Price != nil {
		if *input.Price < 0 {
			return nil, fmt.Errorf("%w: price must not be negative", product.ErrInvalidInput)
		}
		p.Price = *input.Price
	}
	if input.InStock != nil {
		p.InStock = *input.InStock
	}
	if input.Featured != nil {
		p.Featured = *input.Featured
	}

	p.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, p); err != nil {
		return nil, err
	}

	uc.invalidate(ctx)
	uc.syncToElastic(ctx, p)
	return p, nil
}

func (uc *productUseCase) DeleteProduct(ctx context.Context, id int64) error {
	p, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if p == nil {
		return product.ErrNotFound
	}

	if err := uc.repo.Delete(ctx, id); err != nil {
		return err
	}

	uc.invalidate(ctx)
	if uc.es != nil {
		if err := uc.es.Delete(ctx, IndexName, p.Slug); err != nil {
			uc.logger.Error("failed to delete product from ES", zap.String("slug", p.Slug), zap.Error(err))
		}
	}
	return nil
}

// InvalidateCache drops every cached catalog read.
func (uc *productUseCase) InvalidateCache(ctx context.Context) error {
	if uc.cache == nil {
		return nil
	}
	n, err := uc.cache.DeletePattern(ctx, CachePrefix+"*")
	if err != nil {
		return err
	}
	uc.logger.Debug("catalog cache invalidated", zap.Int("keys", n))
	return nil
}

// Reindex rebuilds the search index from the products table.
func (uc *productUseCase) Reindex(ctx context.Context) (int, error) {
	if uc.es == nil {
		return 0, nil
	}

	products, _, err := uc.repo.FindAll(ctx, &dto.ProductFilters{})
	if err != nil {
		return 0, err
	}

	if err := uc.es.DeleteAll(ctx, IndexName); err != nil {
		uc.logger.Warn("failed to clear search index", zap.Error(err))
	}
	if err := uc.es.CreateIndex(ctx, IndexName, indexMapping); err != nil {
		return 0, fmt.Errorf("create index: %w", err)
	}

	indexed := 0
	for i := range products {
		if err := uc.es.Index(ctx, IndexName, products[i].Slug, &products[i]); err != nil {
			return indexed, fmt.Errorf("index %s: %w", products[i].Slug, err)
		}
		indexed++
	}
	uc.logger.Info("search index rebuilt", zap.Int("products", indexed))
	return indexed, nil
}

func (uc *productUseCase) invalidate(ctx context.Context) {
	if err := uc.InvalidateCache(ctx); err != nil {
		uc.logger.Warn("failed to invalidate catalog cache", zap.Error(err))
	}
}

func (uc *productUseCase) syncToElastic(ctx context.Context, p *model.Product) {
	if uc.es == nil {
		return
	}
	_ = uc.es.CreateIndex(ctx, IndexName, indexMapping)
	if err := uc.es.Index(ctx, IndexName, p.Slug, p); err != nil {
		uc.logger.Error("failed to index product", zap.String("slug", p.Slug), zap.Error(err))
	}
}

func defaultString(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}
