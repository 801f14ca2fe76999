package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/fashionnova610-sys/Minerhaolan/config"
	"github.com/fashionnova610-sys/Minerhaolan/internal/catalog"
	"github.com/fashionnova610-sys/Minerhaolan/internal/extractor"
	"github.com/fashionnova610-sys/Minerhaolan/pkg/logger"
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

	// 3. Load Policy
	policy, err := catalog.LoadPolicy(cfg.Pipeline.PolicyFile)
	if err != nil {
		appLogger.Fatal("Could not load catalog policy", zap.Error(err))
	}
	appLogger.Info("Using catalog policy",
		zap.String("version", policy.Version),
		zap.String("variant_mode", policy.Extraction.VariantMode),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 4. Extract
	ext := extractor.New(policy, catalog.NewRand(cfg.Pipeline.Seed), appLogger)
	records, report, err := ext.Run(ctx, cfg.Pipeline.SourceDir)
	if err != nil {
		appLogger.Fatal("Extraction failed", zap.String("dir", cfg.Pipeline.SourceDir), zap.Error(err))
	}

	// 5. Write Output
	if err := catalog.WriteRecords(cfg.Pipeline.ExtractedFile, records); err != nil {
		appLogger.Fatal("Could not write extracted products", zap.Error(err))
	}
	appLogger.Info("Wrote extracted products",
		zap.String("file", cfg.Pipeline.ExtractedFile),
		zap.Int("records", len(records)),
		zap.Int("skipped", report.Skipped),
	)
}
