package api

import (
	"path/filepath"
	"time"

	"github.com/coursechat/backend/internal/api/handlers"
	"github.com/coursechat/backend/internal/config"
	"github.com/coursechat/backend/internal/health"
	"github.com/coursechat/backend/internal/middleware"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// NewRouter wires middleware, the API routes and the static frontend.
func NewRouter(
	cfg *config.Config,
	backend handlers.RAGBackend,
	checker *health.HealthChecker,
	logger *logrus.Logger,
) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.SecurityHeaders())
	router.Use(middleware.NewRateLimiter(cfg.Server.RateLimit).RateLimit())
	router.Use(cors.New(cors.Config{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{"GET", "POST", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type", "X-Request-ID", "X-Session-ID"},
		MaxAge:       12 * time.Hour,
	}))

	ragHandler := handlers.NewRAGHandler(backend, logger)
	healthHandler := handlers.NewHealthHandler(checker)

	apiGroup := router.Group("/api")
	apiGroup.POST("/query", ragHandler.HandleQuery)
	apiGroup.GET("/courses", ragHandler.HandleCourseStats)
	apiGroup.GET("/health", healthHandler.HandleHealth)

	// Static frontend
	if cfg.Server.WebDir != "" {
		router.StaticFile("/", filepath.Join(cfg.Server.WebDir, "index.html"))
		router.Static("/static", filepath.Join(cfg.Server.WebDir, "static"))
	}

	return router
}
