package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/nearby-places/internal/app"
	"github.com/nearby-places/internal/config"
	"github.com/nearby-places/internal/pkg/logger"
	"github.com/nearby-places/internal/worker"
	"github.com/nearby-places/internal/worker/nearby"
)

func main() {
	// 1. Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	if !cfg.Worker.Enabled {
		fmt.Println("Worker is disabled in configuration. Set WORKER_ENABLED=true to enable.")
		os.Exit(0)
	}
	if !cfg.Redis.Enabled {
		fmt.Println("Worker requires Redis streams. Set REDIS_ENABLED=true.")
		os.Exit(1)
	}

	// 2. Initialize logger
	log, err := logger.New(cfg.Log.Level)
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer log.Sync()

	log.Info("Starting Nearby Search Worker")
	log.Info("Configuration loaded",
		zap.String("consumer_group", cfg.Worker.ConsumerGroup),
		zap.Int("batch_size", cfg.Worker.BatchSize),
		zap.Int("max_retries", cfg.Worker.MaxRetries),
		zap.String("provider", cfg.Search.Provider))

	// 3. Connect storages and build the search session
	components, err := app.Build(cfg, log)
	if err != nil {
		log.Fatal("Failed to initialize nearby search", zap.Error(err))
	}
	defer components.Close()

	// 4. Initialize workers
	searchWorker := nearby.NewSearchWorker(
		components.Streams,
		components.Session,
		cfg.Worker.ConsumerGroup,
		cfg.Worker.BatchSize,
		cfg.Worker.MaxRetries,
		log,
	)

	workerManager := worker.NewWorkerManager(worker.DefaultShutdownTimeout, log)
	workerManager.Register(searchWorker)

	// 5. Start workers
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := workerManager.Start(ctx); err != nil {
		log.Fatal("Failed to start workers", zap.Error(err))
	}

	// 6. Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	<-sigChan
	log.Info("Received shutdown signal")

	// Stop first so in-flight searches finish, then cancel
	if err := workerManager.Stop(); err != nil {
		log.Error("Error stopping workers", zap.Error(err))
	}
	cancel()

	log.Info("Worker shutdown complete")
}
