package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/fashionnova610-sys/Minerhaolan/internal/category/dto"
	"github.com/fashionnova610-sys/Minerhaolan/internal/model"
	"github.com/jmoiron/sqlx"
)

// facetSource expands every product's tag list into one row per tag.
const facetSource = ` FROM products, jsonb_array_elements_text(COALESCE(specifications->'category', CAST('[]' AS jsonb))) AS t(tag)`

type PGRepository struct {
	DB *sqlx.DB
}

func NewPGRepository(db *sqlx.DB) *PGRepository {
	return &PGRepository{DB: db}
}

func (r *PGRepository) ListFacets(ctx context.Context, f *dto.CategoryFilters) ([]model.CategoryFacet, int, error) {
	var facets []model.CategoryFacet
	var count int

	conditions := []string{}
	args := map[string]interface{}{}

	if f.Prefix != "" {
		conditions = append(conditions, "tag LIKE :prefix")
		args["prefix"] = strings.ToLower(f.Prefix) + "%"
	}
	if f.InStock != nil {
		conditions = append(conditions, "in_stock = :in_stock")
		args["in_stock"] = *f.InStock
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = " WHERE " + strings.Join(conditions, " AND ")
	}

	countQuery := "SELECT count(DISTINCT tag)" + facetSource + whereClause
	rows, err := r.DB.NamedQueryContext(ctx, countQuery, args)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	if rows.Next() {
		if err := rows.Scan(&count); err != nil {
			return nil, 0, err
		}
	}

	query := "SELECT tag, count(*) AS count" + facetSource + whereClause + " GROUP BY tag ORDER BY count DESC, tag"

	if f.PageSize > 0 {
		page := f.Page
		if page < 1 {
			page = 1
		}
		query += fmt.Sprintf(" LIMIT %d OFFSET %d", f.PageSize, (page-1)*f.PageSize)
	}

	nstmt, err := r.DB.PrepareNamedContext(ctx, query)
	if err != nil {
		return nil, 0, err
	}
	defer nstmt.Close()

	if err := nstmt.SelectContext(ctx, &facets, args); err != nil {
		return nil, 0, err
	}

	return facets, count, nil
}

func (r *PGRepository) FindByTag(ctx context.Context, tag string) (*model.CategoryFacet, error) {
	var facet model.CategoryFacet
	query := "SELECT tag, count(*) AS count" + facetSource + " WHERE tag = $1 GROUP BY tag"
	err := r.DB.GetContext(ctx, &facet, query, tag)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &facet, nil
}
