package middleware

import (
	"errors"
	"io"
	"net/http"

	"github.com/osa911/uplink/internal/api/constants"
	"github.com/osa911/uplink/internal/api/dto/common"
	"github.com/osa911/uplink/internal/api/dto/v1/contact"
	"github.com/osa911/uplink/internal/api/sanitization"
	"github.com/osa911/uplink/internal/api/validation"
	domain "github.com/osa911/uplink/internal/contact"
	"github.com/osa911/uplink/internal/locale"
	"github.com/osa911/uplink/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// ValidationMiddleware binds and validates request bodies, storing the
// result in the gin context for the handler
type ValidationMiddleware struct{}

// NewValidationMiddleware registers the custom validators with gin's
// binding engine. Call it once while building the router.
func NewValidationMiddleware() *ValidationMiddleware {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		validation.RegisterValidators(v)
	}
	return &ValidationMiddleware{}
}

// ValidateContactRequest validates a one-shot contact submission
func (m *ValidationMiddleware) ValidateContactRequest() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req contact.ContactRequest
		if !bindJSON(c, &req) {
			return
		}

		req.Name = sanitization.SanitizeName(req.Name)
		req.Email = sanitization.SanitizeEmail(req.Email)
		req.Message = sanitization.SanitizeMessage(req.Message)

		// markup-only input is blank once stripped
		missing := domain.Validate(domain.Form{Name: req.Name, ReturnAddress: req.Email, Message: req.Message})
		if missing.Any() {
			localizer := GetLocalizer(c)
			utils.HandleValidationError(c, locale.T(localizer, locale.MsgContactInvalid), validation.MissingFieldErrors(missing, localizer))
			return
		}

		c.Set(constants.ContextKeyContact, &req)
		c.Next()
	}
}

// ValidateFieldUpdate validates a form session field edit
func (m *ValidationMiddleware) ValidateFieldUpdate() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req contact.UpdateFieldRequest
		if !bindJSON(c, &req) {
			return
		}

		field := domain.Field(req.Field)
		if validation.ExceedsLimit(field, req.Value) {
			utils.HandleValidationError(c, locale.T(GetLocalizer(c), locale.MsgRequestInvalid), []common.ValidationError{{
				Field:   req.Field,
				Message: locale.T(GetLocalizer(c), locale.MsgFieldTooLong),
			}})
			return
		}
		req.Value = sanitization.SanitizeField(field, req.Value)

		c.Set(constants.ContextKeyFieldUpdate, &req)
		c.Next()
	}
}

// ValidateSubmitForm reads the optional submit body
func (m *ValidationMiddleware) ValidateSubmitForm() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req contact.SubmitFormRequest
		if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
			utils.HandleValidationError(c, locale.T(GetLocalizer(c), locale.MsgRequestInvalid), nil)
			return
		}

		c.Set(constants.ContextKeySubmitForm, &req)
		c.Next()
	}
}

// bindJSON binds the body into obj and writes the 400 response on failure
func bindJSON(c *gin.Context, obj interface{}) bool {
	if err := c.ShouldBindJSON(obj); err != nil {
		localizer := GetLocalizer(c)
		fields := validation.FormatValidationError(err, localizer)
		if fields == nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, common.NewErrorResponse(
				common.ErrCodeBadRequest,
				locale.T(localizer, locale.MsgRequestInvalid),
				nil,
			))
			return false
		}
		utils.HandleValidationError(c, locale.T(localizer, locale.MsgContactInvalid), fields)
		return false
	}
	return true
}
