package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/fashionnova610-sys/Minerhaolan/config"
	"github.com/fashionnova610-sys/Minerhaolan/internal/catalog"
	"github.com/fashionnova610-sys/Minerhaolan/internal/seeder"
	"github.com/fashionnova610-sys/Minerhaolan/pkg/broker"
	"github.com/fashionnova610-sys/Minerhaolan/pkg/cache"
	"github.com/fashionnova610-sys/Minerhaolan/pkg/database/postgres"
	"github.com/fashionnova610-sys/Minerhaolan/pkg/logger"

	prodRepoPkg "github.com/fashionnova610-sys/Minerhaolan/internal/product/repository"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	// 1. Load Configuration
	_ = godotenv.Load()
	cfg := config.LoadEnv()

	// 2. Initialize Logger
	appLogger := logger.NewZapLogger(cfg.ZapLoggerConfig())
	defer appLogger.Sync()

	// 3. Read Input
	records, err := catalog.ReadRecords(cfg.Pipeline.ExpandedFile)
	if err != nil {
		appLogger.Fatal("Could not read expanded products", zap.Error(err))
	}
	appLogger.Info("Loaded expanded products", zap.Int("records", len(records)))

	// 4. Connect to Database
	db, err := postgres.NewPostgres(cfg.PostgresConfig())
	if err != nil {
		appLogger.Fatal("Could not connect to database", zap.Error(err))
	}
	defer db.Close()
	appLogger.Info("Connected to PostgreSQL database", zap.String("db_name", cfg.Postgres.DBName))

	// 5. Optional Lock and Events. Left as untyped nil when disabled.
	var locker seeder.Locker
	if cfg.RedisEnabled() {
		redisClient, err := cache.NewRedisClient(cfg.CacheConfig())
		if err != nil {
			appLogger.Fatal("Could not connect to Redis", zap.Error(err))
		}
		defer redisClient.Close()
		locker = redisClient
	}

	var publisher seeder.Publisher
	if cfg.KafkaEnabled() {
		producer := broker.NewProducer(cfg.BrokerConfig())
		defer producer.Close()
		publisher = producer
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 6. Seed
	s := seeder.New(prodRepoPkg.NewPGRepository(db), locker, publisher, seeder.Config{
		BatchSize:    cfg.Pipeline.BatchSize,
		EnsureSchema: cfg.Pipeline.EnsureSchema,
	}, appLogger)

	report, err := s.Seed(ctx, records)
	if err != nil {
		appLogger.Error("Seed failed",
			zap.Int64("committed", report.Inserted),
			zap.Int("batches", report.Batches),
			zap.Error(err),
		)
		appLogger.Sync()
		os.Exit(1)
	}
}
