package main

// @title Roadbook Microservice API
// @version 1.0.0
// @description Timing derivation service for a cycling team's event logistics. Derives per-day operational schedules from transport legs, race metadata and accommodations, merges them with manually authored entries, and exports a printable roadbook.
// @description
// @description Main features:
// @description - Derived per-day schedules with team and individual views
// @description - Manual entry authoring with session-scoped deletion of derived entries
// @description - Quarter-hour rounded write-back of edited times to transport legs
// @description - Vehicle logistics listing and roadbook PDF export

// @contact.name API Support
// @contact.email support@roadbook-microservice.com

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /
// @schemes http https

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/roadbook-microservice/docs"
	"github.com/roadbook-microservice/internal/config"
	httpDelivery "github.com/roadbook-microservice/internal/delivery/http"
	"github.com/roadbook-microservice/internal/delivery/http/handler"
	"github.com/roadbook-microservice/internal/pkg/logger"
	"github.com/roadbook-microservice/internal/repository/cache"
	"github.com/roadbook-microservice/internal/repository/postgres"
	redisRepo "github.com/roadbook-microservice/internal/repository/redis"
	"github.com/roadbook-microservice/internal/usecase"
	"go.uber.org/zap"
)

func main() {
	// 1. Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	// 2. Initialize logger
	log, err := logger.New(cfg.Log.Level)
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer log.Sync()

	log.Info("Starting Roadbook Microservice")
	log.Info("Configuration loaded",
		zap.String("env", cfg.Server.Env),
		zap.String("server_addr", cfg.GetServerAddr()),
	)

	// 3. Connect to PostgreSQL
	db, err := postgres.New(&cfg.Database, log)
	if err != nil {
		log.Fatal("Failed to connect to PostgreSQL", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Failed to close PostgreSQL connection", zap.Error(err))
		}
	}()

	// 4. Connect to Redis
	redisClient, err := cache.NewRedis(&cfg.Redis, log)
	if err != nil {
		log.Fatal("Failed to connect to Redis", zap.Error(err))
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			log.Error("Failed to close Redis connection", zap.Error(err))
		}
	}()

	// 5. Health checks
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.Health(ctx); err != nil {
		log.Fatal("PostgreSQL health check failed", zap.Error(err))
	}
	if err := redisClient.Health(ctx); err != nil {
		log.Fatal("Redis health check failed", zap.Error(err))
	}

	log.Info("All connections healthy")

	// 6. Initialize repositories
	eventRepo := postgres.NewEventRepository(db)
	legRepo := postgres.NewLegRepository(db)
	logisticsRepo := postgres.NewLogisticsRepository(db)
	rosterRepo := postgres.NewRosterRepository(db)
	cacheRepo := cache.NewCacheRepository(redisClient)

	streamsClient, err := cache.NewRedisStreams(&cfg.Streams, log)
	if err != nil {
		log.Fatal("Failed to connect to Redis Streams", zap.Error(err))
	}
	defer streamsClient.Close()
	streamRepo := redisRepo.NewStreamRepository(streamsClient, log)

	log.Info("Repositories initialized")

	// 7. Initialize use cases
	scheduleUC := usecase.NewScheduleUseCase(
		eventRepo,
		legRepo,
		logisticsRepo,
		rosterRepo,
		cacheRepo,
		log,
		cfg.Cache.ScheduleCacheTTL,
		cfg.Cache.SessionTTL,
	)

	syncUC := usecase.NewSyncUseCase(
		scheduleUC,
		legRepo,
		logisticsRepo,
		cacheRepo,
		streamRepo,
		log,
		cfg.Cache.SessionTTL,
	)

	legUC := usecase.NewLegUseCase(
		legRepo,
		eventRepo,
		cacheRepo,
		streamRepo,
		log,
	)

	statsUC := usecase.NewStatsUseCase(
		eventRepo,
		legRepo,
		logisticsRepo,
		cacheRepo,
		log,
	)

	exportUC := usecase.NewExportUseCase(scheduleUC, log)

	log.Info("Use cases initialized")

	// 8. Initialize HTTP handlers
	scheduleHandler := handler.NewScheduleHandler(scheduleUC, syncUC, log)
	legHandler := handler.NewLegHandler(legUC, log)
	exportHandler := handler.NewExportHandler(exportUC, log)
	statsHandler := handler.NewStatsHandler(statsUC, log)

	log.Info("HTTP handlers initialized")

	// 9. Initialize HTTP server
	server := httpDelivery.NewServer(
		cfg,
		log,
		scheduleHandler,
		legHandler,
		exportHandler,
		statsHandler,
	)

	log.Info("HTTP server initialized")

	// 10. Start server in goroutine
	go func() {
		if err := server.Start(); err != nil {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	log.Info("Server started successfully",
		zap.String("address", cfg.GetServerAddr()),
		zap.String("env", cfg.Server.Env),
	)

	// 11. Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server gracefully...")

	ctx, cancel = context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error("Server shutdown error", zap.Error(err))
	}

	log.Info("Server stopped successfully")
}
