package middleware

import (
	"time"

	"github.com/osa911/uplink/internal/logging"
	"github.com/osa911/uplink/internal/utils"

	"github.com/gin-gonic/gin"
)

// RequestLogger logs one colored line per request. The logger decides
// whether request lines are enabled (LOG_REQUESTS).
func RequestLogger(logger *logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		// Start timer
		start := time.Now()
		path := c.Request.URL.Path
		if raw := c.Request.URL.RawQuery; raw != "" {
			path = path + "?" + raw
		}

		// Process request
		c.Next()

		logger.LogHTTPRequest(
			c.Request.Method,
			path,
			utils.GetRealIP(c),
			c.Writer.Status(),
			c.Writer.Size(),
			time.Since(start).String(),
		)
	}
}
