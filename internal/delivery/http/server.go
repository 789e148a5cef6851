package http

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	fiberSwagger "github.com/swaggo/fiber-swagger"
	"go.uber.org/zap"

	"github.com/nearby-places/internal/config"
	"github.com/nearby-places/internal/delivery/http/handler"
	"github.com/nearby-places/internal/delivery/http/middleware"
	"github.com/nearby-places/internal/pkg/errors"
	"github.com/nearby-places/internal/pkg/utils"
)

// HealthCheck - проверка зависимости для /health
type HealthCheck func(ctx context.Context) error

// Server - HTTP сервер на основе Fiber
type Server struct {
	app    *fiber.App
	config *config.Config
	logger *zap.Logger

	nearbyHandler *handler.NearbyHandler
	healthChecks  map[string]HealthCheck
}

// NewServer - создание нового HTTP сервера
func NewServer(
	cfg *config.Config,
	logger *zap.Logger,
	nearbyHandler *handler.NearbyHandler,
	healthChecks map[string]HealthCheck,
) *Server {
	app := fiber.New(fiber.Config{
		AppName:      "Nearby Places",
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
		ErrorHandler: customErrorHandler(logger),
	})

	s := &Server{
		app:           app,
		config:        cfg,
		logger:        logger,
		nearbyHandler: nearbyHandler,
		healthChecks:  healthChecks,
	}

	s.setupMiddlewares()
	s.setupRoutes()

	return s
}

// setupMiddlewares - настройка middleware
func (s *Server) setupMiddlewares() {
	s.app.Use(middleware.Recovery(s.logger))
	s.app.Use(middleware.Logger(s.logger))
	s.app.Use(middleware.CORS(s.config.Server.CORSOrigins))
	s.app.Use(compress.New(compress.Config{
		Level: compress.LevelBestSpeed,
	}))
}

// setupRoutes - настройка маршрутов
func (s *Server) setupRoutes() {
	s.app.Get("/swagger/*", fiberSwagger.WrapHandler)

	api := s.app.Group("/api/v1")

	api.Get("/health", s.health)

	nearby := api.Group("/nearby")
	nearby.Post("/search", s.nearbyHandler.Search)
	nearby.Get("/search", s.nearbyHandler.SearchGET)
	nearby.Post("/select", s.nearbyHandler.Select)
}

// health godoc
// @Summary Проверка состояния сервиса
// @Tags Health
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 503 {object} map[string]interface{}
// @Router /api/v1/health [get]
func (s *Server) health(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 2*time.Second)
	defer cancel()

	status := "healthy"
	code := fiber.StatusOK
	checks := make(fiber.Map, len(s.healthChecks))
	for name, check := range s.healthChecks {
		if err := check(ctx); err != nil {
			checks[name] = err.Error()
			status = "unhealthy"
			code = fiber.StatusServiceUnavailable
			continue
		}
		checks[name] = "ok"
	}

	return c.Status(code).JSON(fiber.Map{
		"status":   status,
		"provider": s.config.Search.Provider,
		"checks":   checks,
		"time":     time.Now(),
	})
}

// App возвращает fiber приложение
func (s *Server) App() *fiber.App {
	return s.app
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

// customErrorHandler - кастомный обработчик ошибок
func customErrorHandler(logger *zap.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		if e, ok := err.(*fiber.Error); ok {
			logger.Warn("HTTP Error",
				zap.String("path", c.Path()),
				zap.Int("status", e.Code),
				zap.Error(err))
			return c.Status(e.Code).JSON(utils.ErrorResponse{
				Error: errors.New("HTTP_ERROR", e.Message, e.Code),
			})
		}

		logger.Error("HTTP Error",
			zap.String("path", c.Path()),
			zap.Error(err),
		)
		return utils.SendError(c, err)
	}
}
