package repository

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/fashionnova610-sys/Minerhaolan/internal/category/dto"
	"github.com/jmoiron/sqlx"
)

func newMockRepo(t *testing.T) (*PGRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return NewPGRepository(sqlx.NewDb(db, "postgres")), mock
}

func TestListFacets(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(`SELECT count\(DISTINCT tag\) FROM products, jsonb_array_elements_text\(.+\) AS t\(tag\)$`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))
	mock.ExpectPrepare(`SELECT tag, count\(\*\) AS count FROM products, .+ GROUP BY tag ORDER BY count DESC, tag$`)
	mock.ExpectQuery(`SELECT tag, count\(\*\) AS count`).
		WillReturnRows(sqlmock.NewRows([]string{"tag", "count"}).
			AddRow("bitcoin-miner", 12).
			AddRow("sha256", 12).
			AddRow("accessories", 6))

	facets, total, err := repo.ListFacets(context.Background(), &dto.CategoryFilters{})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if total != 3 {
		t.Errorf("Expected total 3, got %d", total)
	}
	if len(facets) != 3 || facets[0].Tag != "bitcoin-miner" || facets[2].Count != 6 {
		t.Errorf("Unexpected facets %+v", facets)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("Unmet expectations: %v", err)
	}
}

func TestListFacetsFiltersAndPaging(t *testing.T) {
	repo, mock := newMockRepo(t)
	inStock := true

	mock.ExpectQuery(`SELECT count\(DISTINCT tag\) FROM products, .+ WHERE tag LIKE \$1 AND in_stock = \$2$`).
		WithArgs("sha%", true).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectPrepare(`WHERE tag LIKE \$1 AND in_stock = \$2 GROUP BY tag ORDER BY count DESC, tag LIMIT 10 OFFSET 10$`)
	mock.ExpectQuery(`SELECT tag`).
		WithArgs("sha%", true).
		WillReturnRows(sqlmock.NewRows([]string{"tag", "count"}))

	_, total, err := repo.ListFacets(context.Background(), &dto.CategoryFilters{
		Prefix:   "SHA",
		InStock:  &inStock,
		Page:     2,
		PageSize: 10,
	})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if total != 1 {
		t.Errorf("Expected total 1, got %d", total)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("Unmet expectations: %v", err)
	}
}

func TestFindByTag(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(`WHERE tag = \$1 GROUP BY tag$`).
		WithArgs("hydro").
		WillReturnRows(sqlmock.NewRows([]string{"tag", "count"}).AddRow("hydro", 4))

	facet, err := repo.FindByTag(context.Background(), "hydro")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if facet == nil || facet.Count != 4 {
		t.Errorf("Expected hydro with 4 products, got %+v", facet)
	}

	mock.ExpectQuery(`WHERE tag = \$1 GROUP BY tag$`).
		WithArgs("none").
		WillReturnRows(sqlmock.NewRows([]string{"tag", "count"}))

	facet, err = repo.FindByTag(context.Background(), "none")
	if err != nil || facet != nil {
		t.Errorf("Expected nil, nil for unknown tag, got %+v, %v", facet, err)
	}
}
