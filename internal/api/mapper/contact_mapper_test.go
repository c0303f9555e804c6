package mapper

import (
	"testing"
	"time"

	"github.com/osa911/uplink/internal/api/dto/v1/contact"
	domain "github.com/osa911/uplink/internal/contact"
	"github.com/osa911/uplink/internal/locale"
	"github.com/osa911/uplink/internal/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestFormFromRequest(t *testing.T) {
	got := FormFromRequest(&contact.ContactRequest{Name: "A", Email: "a@b.com", Message: "hi", RecaptchaToken: "x"})
	assert.Equal(t, domain.Form{Name: "A", ReturnAddress: "a@b.com", Message: "hi"}, got)
	assert.True(t, FormFromRequest(nil).IsZero())
}

func TestFormStateFromSnapshot(t *testing.T) {
	id := uuid.New()
	created := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	form := domain.Form{ReturnAddress: "a@b.com"}

	snap := service.FormSnapshot{
		ID:        id,
		CreatedAt: created,
		State: domain.State{
			Status:  domain.StatusIdle,
			Form:    form,
			Missing: domain.Validate(form),
		},
	}

	got := FormStateFromSnapshot(snap, locale.NewLocalizer("en"))

	assert.Equal(t, contact.FormStateResponse{
		ID:       id,
		Status:   "idle",
		Label:    "INITIATE TRANSMISSION",
		Disabled: false,
		Fields:   contact.FormFields{Email: "a@b.com"},
		Errors: map[string]string{
			"name":    "REQUIRED FIELD. ENTER DATA.",
			"message": "NO DATA DETECTED TO TRANSMIT.",
		},
		CreatedAt: created,
	}, got)
}

func TestFormStateDisabledWhileSending(t *testing.T) {
	snap := service.FormSnapshot{ID: uuid.New(), State: domain.State{Status: domain.StatusSending, Attempt: 1}}

	got := FormStateFromSnapshot(snap, locale.NewLocalizer("es"))

	assert.True(t, got.Disabled)
	assert.Equal(t, "sending", got.Status)
	assert.Equal(t, "SENDING...", got.Label)
	assert.Nil(t, got.Errors)
}
