package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"io.winapps.prompts/internal/handlers"
	"io.winapps.prompts/internal/middleware"
	apierror "io.winapps.prompts/internal/models/api_error"
)

// RouterConfig carries everything NewRouter needs. Verifier is only used
// when AuthEnabled is set.
type RouterConfig struct {
	Prompts        *handlers.PromptHandler
	Logger         *zap.SugaredLogger
	Verifier       middleware.TokenVerifier
	AuthEnabled    bool
	MetricsEnabled bool
}

// NewRouter builds the gin engine with middleware, prompt routes, health and metrics endpoints.
func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(middleware.RequestIDMiddleware())
	// Metrics sit outside recovery and CORS so panics and preflights are counted.
	if cfg.MetricsEnabled {
		router.Use(middleware.MetricsMiddleware())
	}
	router.Use(
		middleware.RecoveryMiddleware(cfg.Logger),
		middleware.RequestLoggingMiddleware(cfg.Logger),
		middleware.CORSMiddleware(),
	)

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, apierror.New("Route not found"))
	})

	prompts := router.Group("/prompts")
	if cfg.AuthEnabled {
		prompts.Use(middleware.AuthMiddleware(cfg.Verifier, cfg.Logger))
	}
	cfg.Prompts.RegisterRoutes(prompts)

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	if cfg.MetricsEnabled {
		router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	}

	return router
}
