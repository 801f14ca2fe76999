package main

import (
	"context"
	"time"

	"github.com/fashionnova610-sys/Minerhaolan/config"
	"github.com/fashionnova610-sys/Minerhaolan/internal/category/dto"
	"github.com/fashionnova610-sys/Minerhaolan/pkg/database/postgres"
	"github.com/fashionnova610-sys/Minerhaolan/pkg/logger"

	catRepoPkg "github.com/fashionnova610-sys/Minerhaolan/internal/category/repository"
	prodRepoPkg "github.com/fashionnova610-sys/Minerhaolan/internal/product/repository"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

const topCategories = 10

func main() {
	// 1. Load Configuration
	_ = godotenv.Load()
	cfg := config.LoadEnv()

	// 2. Initialize Logger
	appLogger := logger.NewZapLogger(cfg.ZapLoggerConfig())
	defer appLogger.Sync()

	// 3. Connect to Database
	db, err := postgres.NewPostgres(cfg.PostgresConfig())
	if err != nil {
		appLogger.Fatal("Could not connect to database", zap.Error(err))
	}
	defer db.Close()
	appLogger.Info("Connected to PostgreSQL database", zap.String("db_name", cfg.Postgres.DBName))

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// 4. Summarize Catalog
	count, err := prodRepoPkg.NewPGRepository(db).Count(ctx)
	if err != nil {
		appLogger.Fatal("Could not count products", zap.Error(err))
	}
	appLogger.Info("Products table", zap.Int("rows", count))

	facets, total, err := catRepoPkg.NewPGRepository(db).ListFacets(ctx, &dto.CategoryFilters{Page: 1, PageSize: topCategories})
	if err != nil {
		appLogger.Fatal("Could not list categories", zap.Error(err))
	}
	appLogger.Info("Category tags", zap.Int("distinct", total))
	for _, f := range facets {
		appLogger.Info("Category", zap.String("tag", f.Tag), zap.Int("products", f.Count))
	}
}
