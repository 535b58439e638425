package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/aescanero/videohub/internal/application/catalog"
	"github.com/aescanero/videohub/internal/config"
	memoryevents "github.com/aescanero/videohub/pkg/adapters/events/memory"
	redisevents "github.com/aescanero/videohub/pkg/adapters/events/redis"
	"github.com/aescanero/videohub/pkg/adapters/idgen"
	promcollector "github.com/aescanero/videohub/pkg/adapters/metrics/prometheus"
	memorystorage "github.com/aescanero/videohub/pkg/adapters/storage/memory"
	redisstorage "github.com/aescanero/videohub/pkg/adapters/storage/redis"
	"github.com/aescanero/videohub/pkg/api/grpc"
	"github.com/aescanero/videohub/pkg/api/http"
	"github.com/aescanero/videohub/pkg/api/websocket"
	"github.com/aescanero/videohub/pkg/ports"
)

var (
	// Version is set by build flags
	Version   = "dev"
	BuildTime = "unknown"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	logger := initLogger(cfg.LogLevel)
	defer func() { _ = logger.Sync() }()

	logger.Info("starting video catalog",
		zap.String("version", Version),
		zap.String("build_time", BuildTime),
		zap.String("storage_backend", cfg.Storage.Backend),
		zap.String("events_backend", cfg.Events.Backend))

	ctx := context.Background()

	// Redis is only dialed when a backend needs it
	var redisClient *goredis.Client
	if cfg.UsesRedis() {
		redisClient = goredis.NewClient(&goredis.Options{
			Addr:         cfg.Redis.Addr,
			Password:     cfg.Redis.Password,
			DB:           cfg.Redis.DB,
			PoolSize:     cfg.Redis.PoolSize,
			MinIdleConns: cfg.Redis.MinIdleConns,
			MaxRetries:   cfg.Redis.MaxRetries,
			DialTimeout:  cfg.Redis.DialTimeout,
			ReadTimeout:  cfg.Redis.ReadTimeout,
			WriteTimeout: cfg.Redis.WriteTimeout,
		})

		if err := redisClient.Ping(ctx).Err(); err != nil {
			logger.Fatal("failed to connect to Redis", zap.Error(err))
		}
		logger.Info("connected to Redis", zap.String("addr", cfg.Redis.Addr))
	}

	// Storage and id allocation
	var (
		repo ports.VideoRepository
		ids  ports.IDGenerator
	)
	switch cfg.Storage.Backend {
	case config.BackendRedis:
		store := redisstorage.NewVideoStorage(redisClient, cfg.Redis.KeyPrefix, logger)
		repo, ids = store, store
	default:
		repo = memorystorage.NewVideoStorage()
		ids = idgen.NewMonotonic(nil)
	}

	// Change feed
	var eventBus ports.EventBus
	switch cfg.Events.Backend {
	case config.BackendRedis:
		hostname, _ := os.Hostname()
		eventBus = redisevents.NewStreamsEventBus(
			redisClient,
			cfg.Redis.KeyPrefix,
			cfg.Events.ConsumerGroup,
			fmt.Sprintf("%s-%d", hostname, os.Getpid()),
			cfg.Events.StreamMaxLen,
			logger,
		)
	default:
		eventBus = memoryevents.NewInMemoryEventBus(logger)
	}

	// Metrics
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	metricsCollector := promcollector.NewCollector(registry)

	// Catalog
	catalogSvc := catalog.NewService(
		repo,
		ids,
		eventBus,
		metricsCollector,
		catalog.NewValidator(),
		logger,
	)

	if cfg.Storage.SeedOnStart {
		err = catalogSvc.Seed(ctx)
	} else {
		err = catalogSvc.SyncMetrics(ctx)
	}
	if err != nil {
		logger.Fatal("failed to prepare catalog", zap.Error(err))
	}

	// Initialize API servers
	httpServer := http.NewServer(&http.Config{
		Addr:              cfg.GetHTTPAddr(),
		ReadHeaderTimeout: cfg.Timeouts.ReadHeaderTimeout,
		Catalog:           catalogSvc,
		Metrics:           metricsCollector,
		Gatherer:          registry,
		Logger:            logger,
	})

	// Add WebSocket handler to HTTP server
	wsHandler := websocket.NewHandler(eventBus, logger)
	httpServer.SetupWebSocket(wsHandler)

	grpcServer, err := grpc.NewServer(&grpc.Config{
		Addr:   cfg.GetGRPCAddr(),
		Logger: logger,
	})
	if err != nil {
		logger.Fatal("failed to create gRPC server", zap.Error(err))
	}

	// Start servers
	go func() {
		if err := httpServer.Start(); err != nil {
			logger.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	go func() {
		if err := grpcServer.Start(); err != nil {
			logger.Fatal("gRPC server failed", zap.Error(err))
		}
	}()

	logger.Info("video catalog started",
		zap.String("http_addr", cfg.GetHTTPAddr()),
		zap.String("grpc_addr", cfg.GetGRPCAddr()))

	// Wait for interrupt signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	logger.Info("received shutdown signal")

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Timeouts.ShutdownTimeout)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server shutdown error", zap.Error(err))
	}

	if err := grpcServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("gRPC server shutdown error", zap.Error(err))
	}

	if err := eventBus.Close(); err != nil {
		logger.Error("event bus close error", zap.Error(err))
	}

	if redisClient != nil {
		if err := redisClient.Close(); err != nil {
			logger.Error("Redis close error", zap.Error(err))
		}
	}

	logger.Info("video catalog shut down complete")
}

// initLogger initializes the logger based on log level
func initLogger(level string) *zap.Logger {
	var zapLevel zapcore.Level
	switch level {
	case "debug":
		zapLevel = zapcore.DebugLevel
	case "info":
		zapLevel = zapcore.InfoLevel
	case "warn":
		zapLevel = zapcore.WarnLevel
	case "error":
		zapLevel = zapcore.ErrorLevel
	default:
		zapLevel = zapcore.InfoLevel
	}

	config := zap.NewProductionConfig()
	config.Level = zap.NewAtomicLevelAt(zapLevel)
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	logger, err := config.Build()
	if err != nil {
		panic(fmt.Sprintf("failed to initialize logger: %v", err))
	}

	return logger
}
