package repository

import (
	"context"
	"fmt"
)

var schemaStatements = []string{
	`DO $$ BEGIN
		CREATE TYPE product_condition AS ENUM ('new', 'used');
	EXCEPTION
		WHEN duplicate_object THEN null;
	END $$`,
	`DO $$ BEGIN
		CREATE TYPE product_cooling AS ENUM ('air', 'hydro', 'immersion');
	EXCEPTION
		WHEN duplicate_object THEN null;
	END $$`,
	`CREATE TABLE IF NOT EXISTS products (
		id SERIAL PRIMARY KEY,
		slug VARCHAR(255) NOT NULL UNIQUE,
		name VARCHAR(255) NOT NULL,
		manufacturer VARCHAR(100) NOT NULL,
		model VARCHAR(255) NOT NULL,
		algorithm VARCHAR(100) NOT NULL,
		hashrate VARCHAR(100) NOT NULL,
		power INTEGER NOT NULL,
		efficiency VARCHAR(100) NOT NULL,
		price BIGINT NOT NULL,
		currency VARCHAR(10) NOT NULL DEFAULT 'USD',
		condition product_condition NOT NULL DEFAULT 'new',
		cooling product_cooling NOT NULL DEFAULT 'air',
		category VARCHAR(100) NOT NULL,
		image_url TEXT,
		description TEXT,
		specifications JSONB,
		in_stock BOOLEAN NOT NULL DEFAULT true,
		featured BOOLEAN NOT NULL DEFAULT false,
		created_at TIMESTAMP NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMP NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS products_category_idx ON products (category)`,
	`CREATE INDEX IF NOT EXISTS products_specifications_idx ON products USING GIN (specifications)`,
}

// EnsureSchema creates the enum types, the products table and its indexes
// when they do not exist yet. It never alters an existing table.
func (r *PGRepository) EnsureSchema(ctx context.Context) error {
	for i, stmt := range schemaStatements {
		if _, err := r.DB.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("schema statement %d: %w", i+1, err)
		}
	}
	return nil
}
