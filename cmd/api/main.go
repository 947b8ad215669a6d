package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jwebster45206/story-collection/internal/config"
	"github.com/jwebster45206/story-collection/internal/handlers"
	"github.com/jwebster45206/story-collection/internal/logger"
	"github.com/jwebster45206/story-collection/internal/metrics"
	"github.com/jwebster45206/story-collection/internal/middleware"
	"github.com/jwebster45206/story-collection/internal/services/events"
	"github.com/jwebster45206/story-collection/internal/storage"
	"github.com/jwebster45206/story-collection/internal/telemetry"
	"github.com/jwebster45206/story-collection/pkg/content"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	log := logger.Setup(cfg)

	log.Info("Starting Story Collection API",
		"port", cfg.Port,
		"environment", cfg.Environment,
		"gamestate_ttl", cfg.GameStateTTL.String(),
		"otel_enabled", cfg.OTelEnabled)

	lib, err := content.LoadLibrary()
	if err != nil {
		log.Error("Failed to load story copy", "error", err)
		os.Exit(1)
	}

	tracer := telemetry.NoopTracer()
	if cfg.OTelEnabled {
		shutdown, err := telemetry.Setup(context.Background())
		if err != nil {
			log.Error("Failed to set up tracing", "error", err)
			os.Exit(1)
		}
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := shutdown(ctx); err != nil {
				log.Error("Failed to flush traces", "error", err)
			}
		}()
		tracer = telemetry.Tracer("api")
		log.Info("Tracing enabled")
	}

	redisStorage := storage.NewRedisStorage(cfg.RedisURL, cfg.GameStateTTL, log)
	storageCtx, storageCancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer storageCancel()

	if err := redisStorage.WaitForConnection(storageCtx, 10, 2*time.Second); err != nil {
		log.Error("Failed to connect to storage", "error", err)
		os.Exit(1)
	}
	log.Info("Storage connection established successfully")

	broadcaster := events.NewBroadcaster(redisStorage.Client(), log)
	m := metrics.New(prometheus.DefaultRegisterer)

	mux := http.NewServeMux()

	mux.Handle("/health", handlers.NewHealthHandler(redisStorage, log))
	mux.Handle("/metrics", promhttp.Handler())
	mux.Handle("/v1/stories", handlers.NewStoriesHandler(lib, log))

	gameStateHandler := handlers.NewGameStateHandler(log, redisStorage, lib, broadcaster, m, tracer)
	mux.Handle("/v1/gamestate", gameStateHandler)
	mux.Handle("/v1/gamestate/", gameStateHandler)

	mux.Handle("/v1/events/gamestate/", handlers.NewEventsHandler(redisStorage.Client(), log))

	server := &http.Server{
		Addr:        ":" + cfg.Port,
		Handler:     middleware.Logger(log)(mux),
		ReadTimeout: 15 * time.Second,
		// No WriteTimeout: the event stream stays open.
		IdleTimeout: 60 * time.Second,
	}

	go func() {
		log.Info("Server starting", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("Server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Server is shutting down...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", "error", err)
	}

	if err := redisStorage.Close(); err != nil {
		log.Error("Error closing storage connection", "error", err)
	}

	log.Info("Server exited")
}
