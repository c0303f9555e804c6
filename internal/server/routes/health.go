package routes

import (
	"github.com/osa911/uplink/internal/api/handlers"

	"github.com/gin-gonic/gin"
)

// SetupHealthRoutes configures health check endpoints
func SetupHealthRoutes(router *gin.Engine, health *handlers.HealthHandler) {
	router.GET("/health", health.Check)
}

// SetupProfileRoutes configures the contact constants endpoint
func SetupProfileRoutes(router *gin.RouterGroup, profile *handlers.ProfileHandler) {
	router.GET("/profile", profile.Get)
}
