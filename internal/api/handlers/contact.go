package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/osa911/uplink/internal/api/constants"
	"github.com/osa911/uplink/internal/api/dto/common"
	"github.com/osa911/uplink/internal/api/dto/v1/contact"
	"github.com/osa911/uplink/internal/api/mapper"
	"github.com/osa911/uplink/internal/api/middleware"
	"github.com/osa911/uplink/internal/api/validation"
	domain "github.com/osa911/uplink/internal/contact"
	"github.com/osa911/uplink/internal/locale"
	"github.com/osa911/uplink/internal/service"
	"github.com/osa911/uplink/internal/utils"

	"github.com/gin-gonic/gin"
)

type ContactHandler struct {
	contactService   *service.ContactService
	recaptchaService *service.RecaptchaService
}

func NewContactHandler(contactService *service.ContactService, recaptchaService *service.RecaptchaService) *ContactHandler {
	return &ContactHandler{
		contactService:   contactService,
		recaptchaService: recaptchaService,
	}
}

// Submit delivers a complete form in one request and answers once the
// relay has accepted or rejected it
func (h *ContactHandler) Submit(c *gin.Context) {
	localizer := middleware.GetLocalizer(c)

	// Get contact data from context (set by validation middleware)
	contactData, exists := c.Get(constants.ContextKeyContact)
	if !exists {
		utils.HandleAPIError(c, nil, http.StatusInternalServerError, common.ErrCodeInternalServer, "Contact data not found in context")
		return
	}

	contactPtr, ok := contactData.(*contact.ContactRequest)
	if !ok {
		utils.HandleAPIError(c, nil, http.StatusInternalServerError, common.ErrCodeInternalServer, "Invalid contact data format")
		return
	}

	if !verifyCaptcha(c, h.recaptchaService, contactPtr.RecaptchaToken) {
		return
	}

	// Gather additional information about the submission
	info := service.SubmissionInfo{
		IPAddress: utils.GetRealIP(c),
		UserAgent: c.Request.UserAgent(),
		Referrer:  c.Request.Referer(),
	}

	err := h.contactService.Deliver(c.Request.Context(), mapper.FormFromRequest(contactPtr), info)

	var validationErr *domain.ValidationError
	switch {
	case err == nil:
		utils.HandleSuccess(c, contact.ContactResponse{
			Message: locale.T(localizer, locale.MsgContactSent),
			Status:  domain.StatusSent.String(),
		})
	case errors.As(err, &validationErr):
		utils.HandleValidationError(c, locale.T(localizer, locale.MsgContactInvalid), validation.MissingFieldErrors(validationErr.Missing, localizer))
	case errors.Is(err, domain.ErrRelayFailed):
		utils.HandleAPIError(c, err, http.StatusBadGateway, common.ErrCodeRelay, locale.T(localizer, locale.MsgContactFailed))
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		utils.HandleAPIError(c, err, http.StatusGatewayTimeout, common.ErrCodeRelay, locale.T(localizer, locale.MsgContactFailed))
	default:
		utils.HandleAPIError(c, err, http.StatusInternalServerError, common.ErrCodeInternalServer, locale.T(localizer, locale.MsgContactFailed))
	}
}

// verifyCaptcha writes the 400 response and returns false when the token is
// rejected. It always passes when reCAPTCHA is not configured.
func verifyCaptcha(c *gin.Context, recaptcha *service.RecaptchaService, token string) bool {
	ok, err := recaptcha.VerifyToken(c.Request.Context(), token, utils.GetRealIP(c))
	if err != nil || !ok {
		utils.HandleAPIError(c, err, http.StatusBadRequest, common.ErrCodeCaptcha, locale.T(middleware.GetLocalizer(c), locale.MsgCaptchaFailed))
		return false
	}
	return true
}
