package routes

import (
	"github.com/osa911/uplink/internal/api/middleware"
	"github.com/osa911/uplink/internal/config"
	"github.com/osa911/uplink/internal/logging"
	"github.com/osa911/uplink/internal/telemetry"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
)

// Setup configures all route groups
func Setup(router *gin.Engine, h *Handlers, m *Middleware, logger *logging.Logger) {
	// Health check endpoint
	SetupHealthRoutes(router, h.Health)

	// Create base API v1 group
	v1 := router.Group("/api/v1")

	// Contact constants
	SetupProfileRoutes(v1, h.Profile)

	// One-shot submissions
	SetupContactRoutes(v1, h.Contact, m)

	// Server-held form sessions
	SetupFormRoutes(v1, h.Form, m)

	logger.Info("All routes have been set up successfully")
}

// SetupGlobalMiddleware configures middleware that applies to all routes
func SetupGlobalMiddleware(router *gin.Engine, cfg *config.Config, logger *logging.Logger) {
	router.Use(middleware.Recovery(logger))
	router.Use(middleware.RequestID())
	router.Use(otelgin.Middleware(telemetry.ServiceName))
	router.Use(middleware.RequestLogger(logger))
	router.Use(middleware.CORS(middleware.CORSConfig{
		AllowedOrigins: cfg.AllowedOrigins,
		Development:    !cfg.IsProduction(),
	}))
	router.Use(middleware.SecurityHeaders())
	router.Use(middleware.Locale())
	router.Use(middleware.RateLimitMiddleware(middleware.RateLimitConfig{
		RPS:   cfg.RateLimitRPS,
		Burst: cfg.RateLimitBurst,
	}))
}
