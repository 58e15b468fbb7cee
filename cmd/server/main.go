package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/sidra-games/splendid/internal/api"
	"github.com/sidra-games/splendid/internal/factory"
	pgstorage "github.com/sidra-games/splendid/internal/storage/postgres"
	redisstorage "github.com/sidra-games/splendid/internal/storage/redis"
)

func main() {
	// Optional .env for local development
	_ = godotenv.Load()

	// Set up logging with JSON output
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	// Build factory config from environment
	cfg := factory.Config{
		Logger:        logger,
		CatalogPath:   os.Getenv("CATALOG_PATH"),
		StorageType:   os.Getenv("STORAGE_TYPE"),
		GeminiAPIKey:  os.Getenv("GEMINI_API_KEY"),
		GeminiBaseURL: os.Getenv("GEMINI_BASE_URL"),
		ThinkDelay:    -1,
	}

	if raw := os.Getenv("AI_THINK_DELAY_MS"); raw != "" {
		ms, err := strconv.Atoi(raw)
		if err != nil {
			logger.Error("invalid AI_THINK_DELAY_MS", slog.String("value", raw))
			os.Exit(1)
		}
		cfg.ThinkDelay = time.Duration(ms) * time.Millisecond
	}

	// Configure Redis if storage type is redis
	if cfg.StorageType == factory.StorageTypeRedis {
		redisURL := os.Getenv("REDIS_URL")
		if redisURL == "" {
			logger.Error("REDIS_URL required when STORAGE_TYPE=redis")
			os.Exit(1)
		}
		redisCfg := redisstorage.DefaultConfig()
		redisCfg.URL = redisURL
		cfg.RedisConfig = &redisCfg
	}

	// Configure Postgres if storage type is postgres
	if cfg.StorageType == factory.StorageTypePostgres {
		databaseURL := os.Getenv("DATABASE_URL")
		if databaseURL == "" {
			logger.Error("DATABASE_URL required when STORAGE_TYPE=postgres")
			os.Exit(1)
		}
		pgCfg := pgstorage.DefaultConfig()
		pgCfg.URL = databaseURL
		cfg.PostgresConfig = &pgCfg
	}

	// Create application factory
	app, err := factory.New(context.Background(), cfg)
	if err != nil {
		logger.Error("failed to create application", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer func() { _ = app.Storage.Close() }()

	// Create API router
	router := api.NewRouter(api.RouterConfig{
		Logger:      logger,
		RoomService: app.RoomService,
		Engine:      app.Engine,
		HostDriver:  app.HostDriver,
	})

	// Create server
	serverConfig := api.DefaultServerConfig()
	if raw := os.Getenv("PORT"); raw != "" {
		port, err := strconv.Atoi(raw)
		if err != nil {
			logger.Error("invalid PORT", slog.String("value", raw))
			os.Exit(1)
		}
		serverConfig.Port = port
	}
	server := api.NewServer(router, serverConfig, logger)

	// Handle graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		logger.Info("shutdown signal received")
		cancel()
	}()

	// Start server in goroutine
	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	logger.Info("server started", slog.String("addr", server.Addr()))

	// Wait for shutdown or error
	select {
	case err := <-errCh:
		if err != nil {
			logger.Error("server error", slog.String("error", err.Error()))
			os.Exit(1)
		}
	case <-ctx.Done():
		if err := server.Shutdown(context.Background()); err != nil {
			logger.Error("shutdown error", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}

	logger.Info("server stopped")
}
