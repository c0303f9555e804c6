package handlers

import (
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
	"github.com/google/uuid"
)

// FormHandler exposes server-held form sessions. A client creates a
// session, edits fields, submits, then polls until the status returns to
// idle.
type FormHandler struct {
	formService      *service.FormService
	recaptchaService *service.RecaptchaService
}

func NewFormHandler(formService *service.FormService, recaptchaService *service.RecaptchaService) *FormHandler {
	return &FormHandler{
		formService:      formService,
		recaptchaService: recaptchaService,
	}
}

func (h *FormHandler) Create(c *gin.Context) {
	snap := h.formService.Create()
	utils.HandleCreated(c, mapper.FormStateFromSnapshot(snap, middleware.GetLocalizer(c)))
}

func (h *FormHandler) Get(c *gin.Context) {
	id, ok := h.formID(c)
	if !ok {
		return
	}

	snap, err := h.formService.Get(id)
	if err != nil {
		h.handleLookupError(c, err)
		return
	}

	utils.HandleSuccess(c, mapper.FormStateFromSnapshot(snap, middleware.GetLocalizer(c)))
}

func (h *FormHandler) UpdateField(c *gin.Context) {
	id, ok := h.formID(c)
	if !ok {
		return
	}

	update, exists := c.Get(constants.ContextKeyFieldUpdate)
	if !exists {
		utils.HandleAPIError(c, nil, http.StatusInternalServerError, common.ErrCodeInternalServer, "Field update not found in context")
		return
	}
	req, ok := update.(*contact.UpdateFieldRequest)
	if !ok {
		utils.HandleAPIError(c, nil, http.StatusInternalServerError, common.ErrCodeInternalServer, "Invalid field update format")
		return
	}

	snap, err := h.formService.Edit(id, domain.Field(req.Field), req.Value)
	if err != nil {
		h.handleLookupError(c, err)
		return
	}

	utils.HandleSuccess(c, mapper.FormStateFromSnapshot(snap, middleware.GetLocalizer(c)))
}

// Submit starts delivery and answers 202 without waiting for the relay
func (h *FormHandler) Submit(c *gin.Context) {
	localizer := middleware.GetLocalizer(c)

	id, ok := h.formID(c)
	if !ok {
		return
	}

	var token string
	if v, exists := c.Get(constants.ContextKeySubmitForm); exists {
		if req, ok := v.(*contact.SubmitFormRequest); ok {
			token = req.RecaptchaToken
		}
	}

	// unknown sessions are reported before the token is spent
	if _, err := h.formService.Get(id); err != nil {
		h.handleLookupError(c, err)
		return
	}

	if !verifyCaptcha(c, h.recaptchaService, token) {
		return
	}

	snap, missing, accepted, err := h.formService.Submit(id)
	if err != nil {
		h.handleLookupError(c, err)
		return
	}

	state := mapper.FormStateFromSnapshot(snap, localizer)
	switch {
	case accepted:
		c.JSON(http.StatusAccepted, common.NewSuccessResponse(state))
	case missing.Any():
		utils.HandleValidationError(c, locale.T(localizer, locale.MsgContactInvalid), validation.MissingFieldErrors(missing, localizer))
	default:
		c.AbortWithStatusJSON(http.StatusConflict, common.NewErrorResponse(common.ErrCodeConflict, locale.T(localizer, locale.MsgFormBusy), state))
	}
}

func (h *FormHandler) Delete(c *gin.Context) {
	id, ok := h.formID(c)
	if !ok {
		return
	}

	if err := h.formService.Close(id); err != nil {
		h.handleLookupError(c, err)
		return
	}

	utils.HandleNoContent(c)
}

// formID parses the :id path parameter. Malformed ids are reported like
// unknown ones.
func (h *FormHandler) formID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.handleLookupError(c, service.ErrFormNotFound)
		return uuid.Nil, false
	}
	return id, true
}

func (h *FormHandler) handleLookupError(c *gin.Context, err error) {
	localizer := middleware.GetLocalizer(c)

	switch {
	case errors.Is(err, service.ErrNotFound):
		c.AbortWithStatusJSON(http.StatusNotFound, common.NewErrorResponse(common.ErrCodeNotFound, locale.T(localizer, locale.MsgFormNotFound), nil))
	case errors.Is(err, service.ErrValidation):
		utils.HandleValidationError(c, locale.T(localizer, locale.MsgRequestInvalid), nil)
	default:
		utils.HandleAPIError(c, err, http.StatusInternalServerError, common.ErrCodeInternalServer, "Form session error")
	}
}
