package utils

import (
	"github.com/osa911/uplink/internal/api/dto/common"
	"github.com/osa911/uplink/internal/logging"

	"github.com/gin-gonic/gin"
)

// LogError logs an error with a message using the singleton logger
func LogError(err error, message string) {
	logger := logging.GetLogger()
	logger.Error("%s: %v", message, err)
}

// HandleAPIError is a utility function for consistent error handling across the API.
// Error details are only exposed for client errors outside release mode.
func HandleAPIError(c *gin.Context, err error, status int, code common.ErrorCode, message string) {
	logger := logging.GetLogger()
	logger.LogHTTPError(
		c.Request.Method,
		c.Request.URL.Path,
		GetRealIP(c),
		status,
		message,
		err,
	)

	var errorDetails interface{}
	if err != nil && status < 500 && gin.Mode() != gin.ReleaseMode {
		errorDetails = err.Error()
	}

	c.AbortWithStatusJSON(status, common.NewErrorResponse(code, message, errorDetails))
}

// HandleValidationError responds 400 with per-field messages. These are
// meant for the visitor, so they are shown in every mode.
func HandleValidationError(c *gin.Context, message string, fields []common.ValidationError) {
	c.AbortWithStatusJSON(400, common.NewErrorResponse(common.ErrCodeValidation, message, fields))
}
