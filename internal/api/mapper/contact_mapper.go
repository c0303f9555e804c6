package mapper

import (
	"github.com/osa911/uplink/internal/api/dto/v1/contact"
	domain "github.com/osa911/uplink/internal/contact"
	"github.com/osa911/uplink/internal/locale"
	"github.com/osa911/uplink/internal/service"

	"github.com/nicksnyder/go-i18n/v2/i18n"
)

// FormFromRequest converts a contact request to the domain form
func FormFromRequest(req *contact.ContactRequest) domain.Form {
	if req == nil {
		return domain.Form{}
	}
	return domain.Form{
		Name:          req.Name,
		ReturnAddress: req.Email,
		Message:       req.Message,
	}
}

// FormStateFromSnapshot converts a form session snapshot to its API view
func FormStateFromSnapshot(snap service.FormSnapshot, localizer *i18n.Localizer) contact.FormStateResponse {
	state := snap.State

	resp := contact.FormStateResponse{
		ID:       snap.ID,
		Status:   state.Status.String(),
		Label:    locale.StatusLabel(localizer, state.Status),
		Disabled: !state.Status.AcceptsSubmit(),
		Attempt:  state.Attempt,
		Fields: contact.FormFields{
			Name:    state.Form.Name,
			Email:   state.Form.ReturnAddress,
			Message: state.Form.Message,
		},
		CreatedAt: snap.CreatedAt,
	}

	if state.Missing.Any() {
		resp.Errors = make(map[string]string)
		for _, f := range state.Missing.Fields() {
			resp.Errors[string(f)] = locale.FieldError(localizer, f)
		}
	}

	return resp
}
