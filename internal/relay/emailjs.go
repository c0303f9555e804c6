package relay

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/osa911/uplink/internal/api/sanitization"
	"github.com/osa911/uplink/internal/contact"
)

const (
	providerEmailJS = "emailjs"

	// DefaultEmailJSEndpoint is the EmailJS REST send endpoint
	DefaultEmailJSEndpoint = "https://api.emailjs.com/api/v1.0/email/send"

	// cap on how much of an error body ends up in logs
	maxErrorBody = 512
)

// EmailJSConfig holds the EmailJS account identifiers
type EmailJSConfig struct {
	ServiceID  string
	TemplateID string
	PublicKey  string
	// PrivateKey is sent as accessToken when set. EmailJS requires it for
	// calls made from outside a browser when strict mode is on.
	PrivateKey string
	Endpoint   string
}

// EmailJS delivers forms through the EmailJS REST API
type EmailJS struct {
	cfg    EmailJSConfig
	client *http.Client
}

// NewEmailJS creates an EmailJS relay. A nil client uses http.DefaultClient.
func NewEmailJS(cfg EmailJSConfig, client *http.Client) *EmailJS {
	if cfg.Endpoint == "" {
		cfg.Endpoint = DefaultEmailJSEndpoint
	}
	if client == nil {
		client = http.DefaultClient
	}
	return &EmailJS{cfg: cfg, client: client}
}

// emailJSRequest is the body of an EmailJS send call
type emailJSRequest struct {
	ServiceID      string            `json:"service_id"`
	TemplateID     string            `json:"template_id"`
	UserID         string            `json:"user_id"`
	AccessToken    string            `json:"accessToken,omitempty"`
	TemplateParams map[string]string `json:"template_params"`
}

// Send posts the form as template parameters. Templates render values as
// HTML, so fields are stripped of markup first.
func (e *EmailJS) Send(ctx context.Context, form contact.Form) error {
	payload := emailJSRequest{
		ServiceID:      e.cfg.ServiceID,
		TemplateID:     e.cfg.TemplateID,
		UserID:         e.cfg.PublicKey,
		AccessToken:    e.cfg.PrivateKey,
		TemplateParams: sanitization.SanitizeForm(form).TemplateParams(),
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return contact.AsRelayError(providerEmailJS, fmt.Errorf("failed to marshal request: %w", err))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, e.cfg.Endpoint, bytes.NewReader(body))
	if err != nil {
		return contact.AsRelayError(providerEmailJS, fmt.Errorf("failed to create request: %w", err))
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := e.client.Do(req)
	if err != nil {
		return contact.AsRelayError(providerEmailJS, fmt.Errorf("failed to send request: %w", err))
	}
	defer resp.Body.Close()

	// EmailJS answers with a short plain text body ("OK" or a reason)
	text, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &contact.RelayError{
			Provider:   providerEmailJS,
			StatusCode: resp.StatusCode,
			Err:        errors.New(string(bytes.TrimSpace(text))),
		}
	}

	return nil
}
