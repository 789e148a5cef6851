package main

// @title Nearby Places API
// @version 1.0.0
// @description Сервис поиска мест рядом с пользователем. Определяет местоположение клиента по координатам устройства или IP и ищет ближайшие места через провайдера (Google Places, OpenStreetMap или Elasticsearch).
// @description
// @description Поиск начинается с радиуса 50 км и расширяется в 1.1 раза, пока провайдер не вернет минимум 10 мест.
// @description Результат содержит первые 10 мест в порядке провайдера с расстоянием от пользователя, маркеры и границы карты.

// @contact.name API Support
// @contact.email support@nearby-places.dev

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

	_ "github.com/nearby-places/docs/swagger"
	"github.com/nearby-places/internal/app"
	"github.com/nearby-places/internal/config"
	httpDelivery "github.com/nearby-places/internal/delivery/http"
	"github.com/nearby-places/internal/delivery/http/handler"
	"github.com/nearby-places/internal/pkg/logger"
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

	log.Info("Starting Nearby Places API")
	log.Info("Configuration loaded",
		zap.String("env", cfg.Server.Env),
		zap.String("server_addr", cfg.GetServerAddr()),
		zap.String("provider", cfg.Search.Provider),
		zap.Bool("redis", cfg.Redis.Enabled),
	)

	// 3. Connect storages and build the search session
	components, err := app.Build(cfg, log)
	if err != nil {
		log.Fatal("Failed to initialize nearby search", zap.Error(err))
	}
	defer components.Close()

	// 4. Health checks
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	healthChecks := make(map[string]httpDelivery.HealthCheck, len(components.HealthChecks))
	for name, check := range components.HealthChecks {
		if err := check(ctx); err != nil {
			log.Fatal("Health check failed", zap.String("dependency", name), zap.Error(err))
		}
		healthChecks[name] = check
	}

	log.Info("All connections healthy", zap.Int("checks", len(healthChecks)))

	// 5. Initialize HTTP handlers and server
	nearbyHandler := handler.NewNearbyHandler(components.Session, log)
	server := httpDelivery.NewServer(cfg, log, nearbyHandler, healthChecks)

	// 6. Start server in goroutine
	go func() {
		if err := server.Start(); err != nil {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	log.Info("Server started successfully",
		zap.String("address", cfg.GetServerAddr()),
		zap.String("env", cfg.Server.Env),
	)

	// 7. Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server gracefully...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("Server shutdown error", zap.Error(err))
	}

	components.Close()

	log.Info("Server stopped successfully")
}
