package middleware

import (
	"net/http"
	"runtime/debug"

	"github.com/osa911/uplink/internal/api/constants"
	"github.com/osa911/uplink/internal/api/dto/common"
	"github.com/osa911/uplink/internal/logging"

	"github.com/gin-gonic/gin"
)

// Recovery turns handler panics into a 500 response
func Recovery(logger *logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				// Log the stack trace
				logger.Error("[PANIC] %s %s | %s | %s | %v\n%s",
					c.Request.Method,
					c.Request.URL.Path,
					c.ClientIP(),
					c.GetString(constants.ContextKeyRequestID),
					err,
					debug.Stack(),
				)

				c.AbortWithStatusJSON(http.StatusInternalServerError, common.NewErrorResponse(
					common.ErrCodeInternalServer,
					"Internal server error",
					nil,
				))
			}
		}()

		c.Next()
	}
}
