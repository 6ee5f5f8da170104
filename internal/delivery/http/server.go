package http

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/compress"
	fiberSwagger "github.com/swaggo/fiber-swagger"
	"go.uber.org/zap"

	"github.com/ev-siting/internal/config"
	"github.com/ev-siting/internal/delivery/http/handler"
	"github.com/ev-siting/internal/delivery/http/middleware"
	"github.com/ev-siting/internal/metrics"
)

// Server - HTTP сервер на основе Fiber
type Server struct {
	app     *fiber.App
	config  *config.Config
	logger  *zap.Logger
	metrics *metrics.Collector

	// Handlers
	stationHandler      *handler.StationHandler
	catalogHandler      *handler.CatalogHandler
	optimizationHandler *handler.OptimizationHandler
	proximityHandler    *handler.ProximityHandler
}

// NewServer - создание нового HTTP сервера
func NewServer(
	cfg *config.Config,
	logger *zap.Logger,
	collector *metrics.Collector,
	stationHandler *handler.StationHandler,
	catalogHandler *handler.CatalogHandler,
	optimizationHandler *handler.OptimizationHandler,
	proximityHandler *handler.ProximityHandler,
) *Server {
	// Синхронная оптимизация может занимать до OPTIMIZER_TIMEOUT
	writeTimeout := cfg.Optimizer.Timeout + 10*time.Second

	app := fiber.New(fiber.Config{
		AppName:      "EV Siting Service",
		ReadTimeout:  10 * time.Second,
		WriteTimeout: writeTimeout,
		IdleTimeout:  60 * time.Second,
		ErrorHandler: customErrorHandler(logger),
	})

	s := &Server{
		app:                 app,
		config:              cfg,
		logger:              logger,
		metrics:             collector,
		stationHandler:      stationHandler,
		catalogHandler:      catalogHandler,
		optimizationHandler: optimizationHandler,
		proximityHandler:    proximityHandler,
	}

	s.setupMiddlewares()
	s.setupRoutes()

	return s
}

// App - fiber приложение (для тестов через app.Test)
func (s *Server) App() *fiber.App {
	return s.app
}

// setupMiddlewares - настройка middleware
func (s *Server) setupMiddlewares() {
	s.app.Use(middleware.Recovery(s.logger))
	s.app.Use(middleware.Logger(s.logger))
	s.app.Use(middleware.Metrics(s.metrics))
	s.app.Use(middleware.CORS(s.config.Server.CORSOrigins))
	s.app.Use(compress.New(compress.Config{
		Level: compress.LevelBestSpeed,
	}))
}

// setupRoutes - настройка маршрутов
func (s *Server) setupRoutes() {
	// Swagger documentation route
	s.app.Get("/swagger/*", fiberSwagger.WrapHandler)

	// Prometheus
	s.app.Get("/metrics", adaptor.HTTPHandler(s.metrics.Handler()))

	api := s.app.Group("/api/v1")

	// Health check
	api.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now(),
		})
	})

	// Catalog routes
	api.Get("/stations", s.stationHandler.ListStations)
	api.Get("/districts", s.stationHandler.ListDistricts)
	api.Get("/operators", s.stationHandler.ListOperators)
	api.Post("/catalog/reload", s.catalogHandler.Reload)
	api.Get("/stats", s.catalogHandler.GetStatistics)

	// Optimization routes
	api.Post("/optimize", s.optimizationHandler.Optimize)
	api.Post("/optimize/jobs", s.optimizationHandler.EnqueueJob)

	// Proximity
	api.Post("/proximity", s.proximityHandler.Near)
}

// Start - запуск HTTP сервера
func (s *Server) Start() error {
	addr := s.config.GetServerAddr()
	s.logger.Info("Starting HTTP server", zap.String("address", addr))
	return s.app.Listen(addr)
}

// Shutdown - graceful shutdown HTTP сервера
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down HTTP server")
	return s.app.ShutdownWithContext(ctx)
}

// customErrorHandler - ошибки fiber (404 маршрута, паники) в формате AppError
func customErrorHandler(logger *zap.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError
		errCode := "INTERNAL_SERVER_ERROR"

		if e, ok := err.(*fiber.Error); ok {
			code = e.Code
			if code == fiber.StatusNotFound {
				errCode = "NOT_FOUND"
			}
		}

		if code >= fiber.StatusInternalServerError {
			logger.Error("HTTP Error",
				zap.String("path", c.Path()),
				zap.Int("status", code),
				zap.Error(err),
			)
		}

		return c.Status(code).JSON(fiber.Map{
			"error": fiber.Map{
				"code":    errCode,
				"message": err.Error(),
			},
		})
	}
}
