package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/fashionnova610-sys/Minerhaolan/internal/model"
	"github.com/fashionnova610-sys/Minerhaolan/internal/product/dto"
	"github.com/jmoiron/sqlx"
)

const productColumns = `id, slug, name, manufacturer, model, algorithm, hashrate, power, efficiency,
	price, currency, condition, cooling, category, image_url, description, specifications,
	in_stock, featured, created_at, updated_at`

const insertProduct = `
	INSERT INTO products (
		slug, name, manufacturer, model, algorithm, hashrate, power, efficiency,
		price, currency, condition, cooling, category, image_url, description,
		specifications, in_stock, featured
	)
	VALUES (
		:slug, :name, :manufacturer, :model, :algorithm, :hashrate, :power, :efficiency,
		:price, :currency, :condition, :cooling, :category, :image_url, :description,
		:specifications, :in_stock, :featured
	)`

type PGRepository struct {
	DB *sqlx.DB
}

func NewPGRepository(db *sqlx.DB) *PGRepository {
	return &PGRepository{DB: db}
}

func (r *PGRepository) Create(ctx context.Context, p *model.Product) error {
	rows, err := r.DB.NamedQueryContext(ctx, insertProduct+" RETURNING id, created_at, updated_at", p)
	if err != nil {
		return err
	}
	defer rows.Close()
	if rows.Next() {
		if err := rows.Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return err
		}
	}
	return rows.Err()
}

func (r *PGRepository) FindByID(ctx context.Context, id int64) (*model.Product, error) {
	return r.findOne(ctx, "id = $1", id)
}

func (r *PGRepository) FindBySlug(ctx context.Context, slug string) (*model.Product, error) {
	return r.findOne(ctx, "slug = $1", slug)
}

func (r *PGRepository) findOne(ctx context.Context, where string, arg interface{}) (*model.Product, error) {
	var product model.Product
	query := fmt.Sprintf("SELECT %s FROM products WHERE %s LIMIT 1", productColumns, where)
	err := r.DB.GetContext(ctx, &product, query, arg)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &product, nil
}

func (r *PGRepository) FindAll(ctx context.Context, f *dto.ProductFilters) ([]model.Product, int, error) {
	var products []model.Product
	var count int

	conditions := []string{}
	args := map[string]interface{}{}

	if f.Category != "" {
		conditions = append(conditions, "(category = :category OR specifications->'category' @> jsonb_build_array(CAST(:category AS text)))")
		args["category"] = f.Category
	}
	if f.Manufacturer != "" {
		conditions = append(conditions, "lower(manufacturer) = lower(:manufacturer)")
		args["manufacturer"] = f.Manufacturer
	}
	if f.Condition != "" {
		conditions = append(conditions, "condition = :condition")
		args["condition"] = f.Condition
	}
	if f.Featured != nil {
		conditions = append(conditions, "featured = :featured")
		args["featured"] = *f.Featured
	}
	if f.InStock != nil {
		conditions = append(conditions, "in_stock = :in_stock")
		args["in_stock"] = *f.InStock
	}
	if f.SearchQuery != "" {
		conditions = append(conditions, "(name ILIKE :search OR manufacturer ILIKE :search OR algorithm ILIKE :search)")
		args["search"] = "%" + f.SearchQuery + "%"
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = " WHERE " + strings.Join(conditions, " AND ")
	}

	// Count
	countQuery := "SELECT count(*) FROM products" + whereClause
	rows, err := r.DB.NamedQueryContext(ctx, countQuery, args)
	if err != nil {
		return nil, 0, err
	}
	if rows.Next() {
		if err := rows.Scan(&count); err != nil {
			rows.Close()
			return nil, 0, err
		}
	}
	rows.Close()

	// List
	orderBy := "created_at DESC, id"
	if f.SortBy != "" {
		// whitelist only
		switch f.SortBy {
		case "name":
			orderBy = "name"
		case "price":
			orderBy = "price"
		default:
			orderBy = "created_at"
		}
		if strings.ToLower(f.SortOrder) == "asc" {
			orderBy += " ASC"
		} else {
			orderBy += " DESC"
		}
		orderBy += ", id"
	}

	query := fmt.Sprintf("SELECT %s FROM products%s ORDER BY %s", productColumns, whereClause, orderBy)

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

	err = nstmt.SelectContext(ctx, &products, args)
	if err != nil {
		return nil, 0, err
	}

	return products, count, nil
}

// FindRelated returns the newest products sharing the primary category,
// excluding the one being viewed.
func (r *PGRepository) FindRelated(ctx context.Context, category, excludeSlug string, limit int) ([]model.Product, error) {
	var products []model.Product
	query := fmt.Sprintf(`SELECT %s FROM products WHERE category = $1 AND slug <> $2 ORDER BY created_at DESC, id LIMIT $3`, productColumns)
	if err := r.DB.SelectContext(ctx, &products, query, category, excludeSlug, limit); err != nil {
		return nil, err
	}
	return products, nil
}

func (r *PGRepository) Update(ctx context.Context, p *model.Product) error {
	query := `
		UPDATE products
		SET name = :name,
			price = :price,
			in_stock = :in_stock,
			featured = :featured,
			updated_at = :updated_at
		WHERE id = :id
	`
	_, err := r.DB.NamedExecContext(ctx, query, p)
	return err
}

func (r *PGRepository) Delete(ctx context.Context, id int64) error {
	_, err := r.DB.ExecContext(ctx, "DELETE FROM products WHERE id = $1", id)
	return err
}

func (r *PGRepository) DeleteAll(ctx context.Context) (int64, error) {
	res, err := r.DB.ExecContext(ctx, "DELETE FROM products")
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// InsertBatch writes all products in one statement. Rows whose slug already
// exists are skipped; the returned count covers inserted rows only.
func (r *PGRepository) InsertBatch(ctx context.Context, products []model.Product) (int64, error) {
	if len(products) == 0 {
		return 0, nil
	}
	res, err := r.DB.NamedExecContext(ctx, insertProduct+" ON CONFLICT (slug) DO NOTHING", products)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (r *PGRepository) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.DB.GetContext(ctx, &count, "SELECT count(*) FROM products"); err != nil {
		return 0, err
	}
	return count, nil
}
