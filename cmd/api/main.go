package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"io.winapps.prompts/internal/cleanup"
	"io.winapps.prompts/internal/config"
	"io.winapps.prompts/internal/handlers"
	"io.winapps.prompts/internal/logging"
	"io.winapps.prompts/internal/server"
)

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger, err := logging.New(cfg.ServiceName, cfg.Environment, cfg.LogLevel)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx := context.Background()

	clients, err := initBackends(ctx, cfg)
	if err != nil {
		logger.Fatalw("failed to initialize backends", "error", err)
	}
	defer clients.Close()

	logger.Infow("backends initialized",
		"record_store", cfg.RecordStore,
		"blob_store", cfg.BlobStore,
		"redis", cfg.UsesRedis(),
		"auth_enabled", cfg.AuthEnabled,
	)

	promptHandler := handlers.NewPromptHandler(clients.records, clients.blobs, logger, handlers.Options{
		Pending:                clients.pending,
		MediaFolder:            cfg.MediaFolder,
		ExposeStoreErrors:      cfg.ExposeStoreErrors,
		StrictUpdateValidation: cfg.StrictUpdateValidation,
	})

	router := server.NewRouter(server.RouterConfig{
		Prompts:        promptHandler,
		Logger:         logger,
		Verifier:       clients.verifier,
		AuthEnabled:    cfg.AuthEnabled,
		MetricsEnabled: cfg.MetricsEnabled,
	})

	var scheduler *cleanup.Scheduler
	if cfg.CleanupSchedule != "" {
		scheduler = cleanup.NewScheduler(clients.records, clients.pending, logger)
		if err := scheduler.Start(cfg.CleanupSchedule); err != nil {
			logger.Fatalw("failed to start cleanup scheduler", "error", err)
		}
	}

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Port),
		Handler: router,
	}

	go func() {
		logger.Infow("server starting", "port", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalw("failed to start server", "error", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Infow("shutting down server")

	if scheduler != nil {
		scheduler.Stop()
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Errorw("server forced to shutdown", "error", err)
		return
	}

	logger.Infow("server exited")
}
