package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"adventure-server/internal/config"
	"adventure-server/internal/engine"
	"adventure-server/internal/handlers"
	"adventure-server/internal/logger"
	"adventure-server/internal/middleware"
	"adventure-server/internal/services"
	"adventure-server/internal/storage"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	log := logger.Setup(cfg)

	log.Info("Starting Adventure Server API",
		"port", cfg.Port,
		"environment", cfg.Environment,
		"storage_backend", cfg.StorageBackend,
		"model_name", cfg.ModelName)

	var store storage.Storage
	switch cfg.StorageBackend {
	case config.StorageRedis:
		redisStore := storage.NewRedisStorage(cfg.RedisURL, cfg.DataDir, log)
		waitCtx, waitCancel := context.WithTimeout(context.Background(), 2*time.Minute)
		defer waitCancel()
		if err := redisStore.WaitForConnection(waitCtx); err != nil {
			log.Error("Failed to connect to redis", "error", err)
			os.Exit(1)
		}
		store = redisStore
		log.Info("Using redis storage backend")
	default:
		fileStore, err := storage.NewFileStorage(cfg.GamesFile, cfg.DataDir, log)
		if err != nil {
			log.Error("Failed to initialize file storage", "error", err)
			os.Exit(1)
		}
		store = fileStore
		log.Info("Using file storage backend", "games_file", cfg.GamesFile)
	}

	llm := services.NewInfomaniakService(cfg.APIKey, cfg.ProductID, cfg.ModelName, log)
	gameEngine := engine.New(store, llm, log)

	mux := http.NewServeMux()

	healthHandler := handlers.NewHealthHandler(store, log)
	mux.Handle("/health", healthHandler)

	modelsHandler := handlers.NewModelsHandler(gameEngine, log)
	mux.Handle("/v1/models", modelsHandler)

	storiesHandler := handlers.NewStoriesHandler(gameEngine, log)
	mux.Handle("/v1/stories", storiesHandler)

	gameHandler := handlers.NewGameHandler(gameEngine, log, cfg.DefaultStory)
	mux.Handle("/v1/start", gameHandler)
	mux.Handle("/v1/state", gameHandler)
	mux.Handle("/v1/move", gameHandler)

	handler := middleware.Logger(log, mux)
	server := &http.Server{
		Addr:        ":" + cfg.Port,
		Handler:     handler,
		ReadTimeout: 15 * time.Second,
		IdleTimeout: 60 * time.Second,
	}

	go func() {
		log.Info("Server starting", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("Server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Server is shutting down...")

	if err := store.Close(); err != nil {
		log.Error("Error closing storage", "error", err)
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", "error", err)
		os.Exit(1)
	}

	log.Info("Server exited")
}
