package routes

import (
	"github.com/osa911/uplink/internal/api/handlers"
	"github.com/osa911/uplink/internal/api/middleware"

	"github.com/gin-gonic/gin"
)

// SetupContactRoutes configures the one-shot contact endpoint
func SetupContactRoutes(router *gin.RouterGroup, contact *handlers.ContactHandler, m *Middleware) {
	router.POST("/contact",
		middleware.RateLimitMiddleware(m.Submit),
		m.Validation.ValidateContactRequest(),
		contact.Submit,
	)
}

// SetupFormRoutes configures form session routes
func SetupFormRoutes(router *gin.RouterGroup, form *handlers.FormHandler, m *Middleware) {
	forms := router.Group("/forms")
	{
		forms.POST("", form.Create)
		forms.GET("/:id", form.Get)
		forms.PUT("/:id/fields", m.Validation.ValidateFieldUpdate(), form.UpdateField)
		forms.POST("/:id/submit",
			middleware.RateLimitMiddleware(m.Submit),
			m.Validation.ValidateSubmitForm(),
			form.Submit,
		)
		forms.DELETE("/:id", form.Delete)
	}
}
