package contact

import (
	"time"

	"github.com/google/uuid"
)

// ContactRequest represents a one-shot contact form submission
type ContactRequest struct {
	Name           string `json:"name" binding:"notblank,max=100"`
	Email          string `json:"email" binding:"notblank,max=255"`
	Message        string `json:"message" binding:"notblank,max=5000"`
	RecaptchaToken string `json:"recaptcha_token"`
}

// ContactResponse represents the response after submitting a contact form
type ContactResponse struct {
	Message string `json:"message"`
	Status  string `json:"status"`
}

// UpdateFieldRequest sets one field of a form session. An empty value
// clears the field.
type UpdateFieldRequest struct {
	Field string `json:"field" binding:"required,contactfield"`
	Value string `json:"value" binding:"max=5000"`
}

// SubmitFormRequest is the optional body of a form session submit
type SubmitFormRequest struct {
	RecaptchaToken string `json:"recaptcha_token"`
}

// FormFields mirrors the three inputs of the form
type FormFields struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Message string `json:"message"`
}

// FormStateResponse is the visible state of a form session
type FormStateResponse struct {
	ID        uuid.UUID         `json:"id"`
	Status    string            `json:"status"`
	Label     string            `json:"label"`
	Disabled  bool              `json:"disabled"`
	Attempt   int               `json:"attempt"`
	Fields    FormFields        `json:"fields"`
	Errors    map[string]string `json:"errors,omitempty"`
	CreatedAt time.Time         `json:"created_at"`
}

// ProfileResponse lists the contact constants shown next to the form
type ProfileResponse struct {
	Email       string `json:"email"`
	GithubURL   string `json:"github_url"`
	LinkedinURL string `json:"linkedin_url"`
	Location    string `json:"location"`
}
