package routes

import (
	"github.com/osa911/uplink/internal/api/handlers"
	"github.com/osa911/uplink/internal/api/middleware"
)

// Handlers contains all the route handlers
type Handlers struct {
	Health  *handlers.HealthHandler
	Profile *handlers.ProfileHandler
	Contact *handlers.ContactHandler
	Form    *handlers.FormHandler
}

// Middleware contains all the middleware
type Middleware struct {
	Validation *middleware.ValidationMiddleware
	// Submit limits deliveries per client on top of the global limit
	Submit middleware.RateLimitConfig
}
