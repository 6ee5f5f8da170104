package main

// @title EV Siting Service API
// @version 1.0.0
// @description Выбор площадок для зарядных станций электромобилей в Берлине.
// @description
// @description Основные возможности:
// @description - Каталог станций из реестра Bundesnetzagentur с фильтрами по оператору, мощности и округу
// @description - Оптимизация: подмножество станций минимальной стоимости при ограничениях на количество и покрытие
// @description - Анализ близости станций к узлам дорожной сети OSM
// @description - Статистика каталога

// @contact.name API Support

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

	"go.uber.org/zap"

	_ "github.com/ev-siting/docs"
	"github.com/ev-siting/internal/config"
	httpDelivery "github.com/ev-siting/internal/delivery/http"
	"github.com/ev-siting/internal/delivery/http/handler"
	"github.com/ev-siting/internal/domain"
	"github.com/ev-siting/internal/metrics"
	"github.com/ev-siting/internal/pkg/logger"
	"github.com/ev-siting/internal/repository/cache"
	"github.com/ev-siting/internal/repository/postgres"
	"github.com/ev-siting/internal/repository/postgresosm"
	redisRepo "github.com/ev-siting/internal/repository/redis"
	"github.com/ev-siting/internal/siting"
	"github.com/ev-siting/internal/solver"
	"github.com/ev-siting/internal/usecase"
)

func main() {
	// 1. Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	// 2. Initialize logger
	log, err := logger.New(cfg.Log.Level, "siting-api")
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer log.Sync()

	log.Info("Starting EV Siting Service")
	log.Info("Configuration loaded",
		zap.String("env", cfg.Server.Env),
		zap.String("server_addr", cfg.GetServerAddr()),
		zap.String("solver", cfg.Optimizer.Solver),
		zap.String("proximity_metric", cfg.Proximity.Metric),
	)

	// 3. Connect to PostgreSQL (реестр станций и округа)
	db, err := postgres.New(cfg.Database, log)
	if err != nil {
		log.Fatal("Failed to connect to PostgreSQL", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Failed to close PostgreSQL connection", zap.Error(err))
		}
	}()
	log.Info("PostgreSQL connected")

	// 3b. Connect to OSM PostgreSQL (osm_db с таблицами planet_osm_*)
	osmDB, err := postgresosm.New(cfg.OSMDB, log)
	if err != nil {
		log.Fatal("Failed to connect to OSM PostgreSQL", zap.Error(err))
	}
	defer func() {
		if err := osmDB.Close(); err != nil {
			log.Error("Failed to close OSM PostgreSQL connection", zap.Error(err))
		}
	}()
	log.Info("OSM PostgreSQL connected")

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
	log.Info("Redis connected")

	// 5. Health checks
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.Health(ctx); err != nil {
		log.Fatal("PostgreSQL health check failed", zap.Error(err))
	}
	if err := osmDB.Health(ctx); err != nil {
		log.Fatal("OSM PostgreSQL health check failed", zap.Error(err))
	}
	if err := redisClient.Client().Ping(ctx).Err(); err != nil {
		log.Fatal("Redis health check failed", zap.Error(err))
	}

	log.Info("All connections healthy")

	// 6. Initialize Repositories
	stationRepo := postgres.NewStationRepository(db, postgres.StationDefaults{
		Cost:     cfg.Catalog.DefaultCost,
		Coverage: cfg.Catalog.DefaultCoverage,
	})
	districtRepo := postgres.NewDistrictRepository(db)
	trafficNodeRepo := postgresosm.NewTrafficNodeRepository(osmDB)
	cacheRepo := cache.NewCacheRepository(redisClient)
	streamRepo := redisRepo.NewStreamRepository(redisClient.Client(), 0, log)

	log.Info("Repositories initialized")

	// 7. Initialize Use Cases
	collector, err := metrics.New(nil)
	if err != nil {
		log.Fatal("Failed to register metrics", zap.Error(err))
	}

	backend, err := solver.New(cfg.Optimizer)
	if err != nil {
		log.Fatal("Failed to initialize solver", zap.Error(err))
	}

	catalogUC := usecase.NewCatalogUseCase(stationRepo, districtRepo, cacheRepo, collector, cfg.Cache.StatsCacheTTL, log)

	// Пустой или недоступный каталог не мешает старту: /catalog/reload можно вызвать позже
	if _, err := catalogUC.Load(ctx); err != nil {
		log.Warn("Station catalog not loaded at startup", zap.Error(err))
	}

	stationUC := usecase.NewStationUseCase(catalogUC, log)

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

	proximityUC := usecase.NewProximityUseCase(
		catalogUC,
		trafficNodeRepo,
		cacheRepo,
		cfg.Proximity,
		cfg.Cache.NodesCacheTTL,
		collector,
		log,
	)

	log.Info("Use cases initialized")

	// 8. Initialize HTTP Handlers
	stationHandler := handler.NewStationHandler(stationUC, catalogUC, log)
	catalogHandler := handler.NewCatalogHandler(catalogUC, log)
	optimizationHandler := handler.NewOptimizationHandler(optimizationUC, log)
	proximityHandler := handler.NewProximityHandler(proximityUC, log)

	// 9. Initialize HTTP Server
	server := httpDelivery.NewServer(
		cfg,
		log,
		collector,
		stationHandler,
		catalogHandler,
		optimizationHandler,
		proximityHandler,
	)

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

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("Server shutdown error", zap.Error(err))
	}

	log.Info("Server stopped successfully")
}
