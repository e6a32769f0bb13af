package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/raj-prabhakar/webhook-repo/internal/config"
	"github.com/raj-prabhakar/webhook-repo/internal/handler"
	"github.com/raj-prabhakar/webhook-repo/internal/logger"
	"github.com/raj-prabhakar/webhook-repo/internal/repository/postgres"
	"github.com/raj-prabhakar/webhook-repo/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	// Initialize logger
	log, err := logger.New(cfg.ServiceEnvironment)
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer func(log *zap.Logger) {
		err := log.Sync()
		if err != nil {
			log.Error("Failed to sync logger", zap.Error(err))
		}
	}(log)

	log.Info("Starting webhook service",
		zap.String("environment", cfg.ServiceEnvironment),
		zap.String("port", cfg.ServiceAPIPort))

	ctx := context.Background()

	// Initialize Postgres client; connection failure is fatal at boot.
	pgClient, err := postgres.NewClient(ctx, cfg.DatabaseURL, log)
	if err != nil {
		log.Fatal("Failed to create Postgres client", zap.Error(err))
	}
	defer pgClient.Close()

	// Initialize repository and provision schema/indexes. Idempotent, so
	// restarting against an existing database is fine.
	repo := postgres.NewRepository(pgClient, log)
	if err := repo.InitSchema(ctx); err != nil {
		log.Fatal("Failed to initialize schema", zap.Error(err))
	}

	// Initialize event service
	eventService := service.NewEventService(repo, log)

	// Initialize handler
	h, err := handler.NewHandler(eventService, cfg.WebhookPathPrefix, log)
	if err != nil {
		log.Fatal("Failed to create handler", zap.Error(err))
	}

	addr := fmt.Sprintf(":%s", cfg.ServiceAPIPort)
	server := &http.Server{
		Addr:              addr,
		Handler:           h,
		ReadHeaderTimeout: 5 * time.Second,
	}

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		log.Info("API server starting", zap.String("address", addr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start API server", zap.Error(err))
		}
	}()

	<-shutdown
	log.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("Graceful shutdown failed", zap.Error(err))
	}
}
