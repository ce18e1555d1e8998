// backend/cmd/server/main.go
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

	"github.com/coursechat/backend/internal/api"
	"github.com/coursechat/backend/internal/config"
	"github.com/coursechat/backend/internal/database"
	"github.com/coursechat/backend/internal/engine"
	"github.com/coursechat/backend/internal/health"
	"github.com/coursechat/backend/internal/rag"
	"github.com/coursechat/backend/internal/repository"
	"github.com/coursechat/backend/internal/session"
	"github.com/coursechat/backend/pkg/utils"
	"github.com/joho/godotenv"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file found: %v", err)
	}

	// Initialize logger
	logger := utils.GetLogger()

	logger.Info("Starting CourseChat backend...")

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.WithError(err).Fatal("Failed to load configuration")
	}

	if err := cfg.ValidateEngine(); err != nil {
		logger.WithError(err).Fatal("Engine configuration validation failed")
	}

	// Initialize database and Redis
	dbConfig := &database.Config{
		DatabaseURL: cfg.Database.URL,
		RedisURL:    cfg.Redis.URL,
		LogLevel:    os.Getenv("LOG_LEVEL"),
	}

	dbManager, err := database.NewManager(dbConfig, logger)
	if err != nil {
		logger.WithError(err).Fatal("Failed to initialize database manager")
	}
	defer dbManager.Close()

	if err := dbManager.Migrate(); err != nil {
		logger.WithError(err).Fatal("Database migration failed")
	}

	repoManager := repository.NewRepositoryManager(dbManager.DB)

	// Wire the RAG system
	engineClient := engine.NewClient(cfg.Engine.BaseURL, cfg.Engine.APIKey, logger)
	engineService := engine.NewService(engineClient, logger)
	sessions := session.NewManager(
		dbManager.Redis,
		logger,
		time.Duration(cfg.Session.TTLMinutes)*time.Minute,
		cfg.Session.MaxHistory,
	)
	system := rag.NewSystem(engineService, sessions, repoManager.Course, repoManager.QueryLog, logger)

	checker := health.NewHealthChecker(dbManager, logger, cfg.Engine.BaseURL)

	router := api.NewRouter(cfg, system, checker, logger)

	srv := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	go func() {
		logger.WithField("port", cfg.Server.Port).Info("HTTP server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.WithError(err).Fatal("HTTP server failed")
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.WithError(err).Error("Forced shutdown")
	}

	logger.Info("Server stopped")
}
