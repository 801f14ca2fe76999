package main

import (
	"github.com/fashionnova610-sys/Minerhaolan/config"
	"github.com/fashionnova610-sys/Minerhaolan/internal/catalog"
	"github.com/fashionnova610-sys/Minerhaolan/internal/expander"
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

	// 4. Read Inputs
	base, err := catalog.ReadRecords(cfg.Pipeline.ExtractedFile)
	if err != nil {
		appLogger.Fatal("Could not read extracted products", zap.Error(err))
	}
	overrides, err := catalog.ReadOptionalRecords(cfg.Pipeline.OverrideFile)
	if err != nil {
		appLogger.Fatal("Could not read manual overrides", zap.Error(err))
	}
	appLogger.Info("Loaded products",
		zap.Int("extracted", len(base)),
		zap.Int("overrides", len(overrides)),
	)

	// 5. Expand
	exp := expander.New(policy, catalog.NewRand(cfg.Pipeline.Seed), cfg.Pipeline.Year, appLogger)
	result := exp.Expand(base, overrides)
	for _, r := range result.Rejected {
		appLogger.Warn("Rejected product", zap.String("id", r.ID), zap.String("name", r.Name), zap.String("reason", r.Reason))
	}

	// 6. Write Outputs
	if err := catalog.WriteRecords(cfg.Pipeline.ExpandedFile, result.Records); err != nil {
		appLogger.Fatal("Could not write expanded products", zap.Error(err))
	}
	if cfg.Pipeline.ExpandedCSV != "" {
		if err := catalog.WriteCSV(cfg.Pipeline.ExpandedCSV, result.Records); err != nil {
			appLogger.Fatal("Could not write review CSV", zap.Error(err))
		}
		appLogger.Info("Wrote review CSV", zap.String("file", cfg.Pipeline.ExpandedCSV))
	}

	appLogger.Info("Wrote expanded products",
		zap.String("file", cfg.Pipeline.ExpandedFile),
		zap.Int("records", len(result.Records)),
		zap.Int("rejected", len(result.Rejected)),
	)
}
