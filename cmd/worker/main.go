package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/ev-siting/internal/config"
	"github.com/ev-siting/internal/domain"
	"github.com/ev-siting/internal/metrics"
	"github.com/ev-siting/internal/pkg/logger"
	"github.com/ev-siting/internal/repository/cache"
	"github.com/ev-siting/internal/repository/postgres"
	redisRepo "github.com/ev-siting/internal/repository/redis"
	"github.com/ev-siting/internal/siting"
	"github.com/ev-siting/internal/solver"
	"github.com/ev-siting/internal/usecase"
	"github.com/ev-siting/internal/worker"
	"github.com/ev-siting/internal/worker/optimization"
)

func main() {
	// 1. Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	// Check if worker is enabled
	if !cfg.Worker.Enabled {
		fmt.Println("Worker is disabled in configuration. Set WORKER_ENABLED=true to enable.")
		os.Exit(0)
	}

	// 2. Initialize logger
	log, err := logger.New(cfg.Log.Level, "siting-worker")
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer log.Sync()

	log.Info("Starting Site Optimization Worker")
	log.Info("Configuration loaded",
		zap.String("consumer_group", cfg.Worker.ConsumerGroup),
		zap.Int("batch_size", cfg.Worker.BatchSize),
		zap.String("solver", cfg.Optimizer.Solver),
		zap.Duration("solver_timeout", cfg.Optimizer.Timeout))

	// 3. Connect to PostgreSQL
	db, err := postgres.New(cfg.Database, log)
	if err != nil {
		log.Fatal("Failed to connect to PostgreSQL", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Failed to close PostgreSQL connection", zap.Error(err))
		}
	}()

	// 4. Connect to Redis
	redisClient, err := cache.NewRedis(cfg.Redis, log)
	if err != nil {
		log.Fatal("Failed to connect to Redis", zap.Error(err))
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			log.Error("Failed to close Redis connection", zap.Error(err))
		}
	}()

	// 5. Initialize repositories
	stationRepo := postgres.NewStationRepository(db, postgres.StationDefaults{
		Cost:     cfg.Catalog.DefaultCost,
		Coverage: cfg.Catalog.DefaultCoverage,
	})
	districtRepo := postgres.NewDistrictRepository(db)
	cacheRepo := cache.NewCacheRepository(redisClient)
	streamRepo := redisRepo.NewStreamRepository(redisClient.Client(), cfg.Worker.StreamReadTimeout, log)

	// 6. Initialize use cases
	collector, err := metrics.New(nil)
	if err != nil {
		log.Fatal("Failed to register metrics", zap.Error(err))
	}

	backend, err := solver.New(cfg.Optimizer)
	if err != nil {
		log.Fatal("Failed to initialize solver", zap.Error(err))
	}

	catalogUC := usecase.NewCatalogUseCase(stationRepo, districtRepo, cacheRepo, collector, cfg.Cache.StatsCacheTTL, log)

	loadCtx, loadCancel := context.WithTimeout(context.Background(), time.Minute)
	if _, err := catalogUC.Load(loadCtx); err != nil {
		loadCancel()
		log.Fatal("Failed to load station catalog", zap.Error(err))
	}
	loadCancel()

	optimizationUC := usecase.NewOptimizationUseCase(
		catalogUC,
		siting.NewOptimizer(backend, cfg.Optimizer.Timeout),
		streamRepo,
		domain.SelectionParams{
			MinStations: cfg.Optimizer.MinStations,
			MinCoverage: cfg.Optimizer.MinCoverage,
		},
		collector,
		log,
	)

	// 7. Initialize workers
	optimizationWorker := optimization.NewOptimizationWorker(
		streamRepo,
		optimizationUC,
		cfg.Worker.ConsumerGroup,
		cfg.Worker.BatchSize,
		log,
	)

	// 8. Create worker manager and register workers
	workerManager := worker.NewWorkerManager(cfg.Optimizer.Timeout+10*time.Second, log)
	workerManager.Register(optimizationWorker)

	// 9. Setup graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := workerManager.Start(ctx); err != nil {
		log.Fatal("Failed to start workers", zap.Error(err))
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	<-sigChan
	log.Info("Received shutdown signal")

	// Сначала Stop: текущая задача дорешивается и публикуется
	if err := workerManager.Stop(); err != nil {
		log.Error("Error stopping workers", zap.Error(err))
	}
	cancel()

	log.Info("Worker shutdown complete")
}
