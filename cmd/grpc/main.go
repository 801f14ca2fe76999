package main

import (
	"context"
	"log"
	"net"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/fashionnova610-sys/Minerhaolan/config"
	"github.com/fashionnova610-sys/Minerhaolan/internal/auth"
	"github.com/fashionnova610-sys/Minerhaolan/pkg/broker"
	"github.com/fashionnova610-sys/Minerhaolan/pkg/cache"
	"github.com/fashionnova610-sys/Minerhaolan/pkg/database/postgres"
	"github.com/fashionnova610-sys/Minerhaolan/pkg/logger"
	"github.com/fashionnova610-sys/Minerhaolan/pkg/search"

	catH "github.com/fashionnova610-sys/Minerhaolan/internal/category/handler"
	catRepoPkg "github.com/fashionnova610-sys/Minerhaolan/internal/category/repository"
	catUCPkg "github.com/fashionnova610-sys/Minerhaolan/internal/category/usecase"

	prodH "github.com/fashionnova610-sys/Minerhaolan/internal/product/handler"
	prodListenerPkg "github.com/fashionnova610-sys/Minerhaolan/internal/product/listener"
	prodRepoPkg "github.com/fashionnova610-sys/Minerhaolan/internal/product/repository"
	prodUCPkg "github.com/fashionnova610-sys/Minerhaolan/internal/product/usecase"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/reflection"
)

func main() {
	// 1. Load Configuration
	_ = godotenv.Load() // Load .env file if it exists
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

	// 4. Initialize Repositories
	catRepo := catRepoPkg.NewPGRepository(db)
	prodRepo := prodRepoPkg.NewPGRepository(db)

	// 5. Initialize Redis (optional). The interfaces stay untyped nil when
	// disabled so the use cases see "no cache" rather than a nil client.
	var prodCache prodUCPkg.Cache
	var catCache catUCPkg.Cache
	if cfg.RedisEnabled() {
		redisClient, err := cache.NewRedisClient(cfg.CacheConfig())
		if err != nil {
			appLogger.Fatal("Could not connect to Redis", zap.Error(err))
		}
		defer redisClient.Close()
		prodCache, catCache = redisClient, redisClient
		appLogger.Info("Connected to Redis", zap.String("addr", cfg.Redis.Addr))
	} else {
		appLogger.Info("Redis not configured, catalog reads are uncached")
	}

	// 5.8 Initialize Elasticsearch (optional)
	var esIndex prodUCPkg.SearchIndex
	if cfg.ElasticEnabled() {
		esClient, err := search.NewClient(cfg.SearchConfig())
		if err != nil {
			appLogger.Warn("Could not connect to Elasticsearch (Search features might be limited)", zap.Error(err))
		} else {
			esIndex = esClient
			appLogger.Info("Connected to Elasticsearch", zap.Strings("addresses", cfg.Elastic.Addresses))
		}
	}

	// 6. Initialize UseCases
	catUC := catUCPkg.NewCategoryUseCase(catRepo, catCache, appLogger)
	prodUC := prodUCPkg.NewProductUseCase(prodRepo, prodCache, esIndex, appLogger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// 6.5 Initialize Listener (optional)
	if cfg.KafkaEnabled() {
		kafkaConsumer := broker.NewConsumer(cfg.BrokerConfig())
		defer kafkaConsumer.Close()
		appLogger.Info("Connected to Kafka Consumer", zap.Strings("brokers", cfg.Kafka.Brokers), zap.String("topic", cfg.Kafka.Topic))

		catalogListener := prodListenerPkg.NewCatalogListener(kafkaConsumer, prodUC, appLogger)
		go catalogListener.Start(ctx)
	}

	// 7. Initialize Handlers
	catHandler := catH.NewCategoryHandler(catUC, appLogger)
	prodHandler := prodH.NewProductHandler(prodUC, cfg.Admin.Token, appLogger)
	if cfg.Admin.Token == "" {
		appLogger.Warn("ADMIN_TOKEN is empty, admin operations are disabled")
	}

	// 8. Start gRPC Server
	port := cfg.Server.GRPCPort
	if !strings.HasPrefix(port, ":") {
		port = ":" + port
	}

	lis, err := net.Listen("tcp", port)
	if err != nil {
		log.Fatalf("failed to listen: %v", err)
	}

	grpcServer := grpc.NewServer(
		grpc.UnaryInterceptor(auth.ContextInterceptor()),
	)

	// Register Services
	catH.RegisterCategoryServiceServer(grpcServer, catHandler)
	prodH.RegisterCatalogServiceServer(grpcServer, prodHandler)

	// Register Reflection
	reflection.Register(grpcServer)

	appLogger.Info("Starting gRPC server", zap.String("port", port))

	// Graceful Shutdown
	go func() {
		if err := grpcServer.Serve(lis); err != nil {
			appLogger.Fatal("failed to serve", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server...")
	cancel()
	grpcServer.GracefulStop()
	appLogger.Info("Server stopped")
}
