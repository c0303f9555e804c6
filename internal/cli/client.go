// Package cli holds the pieces of the uplink command line that are worth
// testing on their own: the API client and the sending indicator.
package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/osa911/uplink/internal/api/dto/common"
	dto "github.com/osa911/uplink/internal/api/dto/v1/contact"
)

// APIError is an error envelope returned by an uplink server
type APIError struct {
	StatusCode int
	Code       string
	Message    string
	Fields     []common.ValidationError
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s (%d): %s", e.Code, e.StatusCode, e.Message)
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string          `json:"code"`
		Message string          `json:"message"`
		Details json.RawMessage `json:"details"`
	} `json:"error"`
}

// Client talks to a running uplink server
type Client struct {
	baseURL string
	lang    string
	http    *http.Client
}

// NewClient creates a client for the server at baseURL asking for answers
// in lang
func NewClient(baseURL, lang string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		lang:    lang,
		http: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// SendContact submits a complete form and waits for the delivery outcome
func (c *Client) SendContact(ctx context.Context, req dto.ContactRequest) (*dto.ContactResponse, error) {
	var out dto.ContactResponse
	if err := c.do(ctx, http.MethodPost, "/api/v1/contact", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Profile fetches the contact constants
func (c *Client) Profile(ctx context.Context) (*dto.ProfileResponse, error) {
	var out dto.ProfileResponse
	if err := c.do(ctx, http.MethodGet, "/api/v1/profile", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.lang != "" {
		req.Header.Set("Accept-Language", c.lang)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("failed to reach server: %w", err)
	}
	defer resp.Body.Close()

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return fmt.Errorf("failed to parse response (status %d): %w", resp.StatusCode, err)
	}

	if !env.Success || env.Error != nil {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		if env.Error != nil {
			apiErr.Code = env.Error.Code
			apiErr.Message = env.Error.Message
			if env.Error.Code == string(common.ErrCodeValidation) && len(env.Error.Details) > 0 {
				// details of other errors are free-form
				_ = json.Unmarshal(env.Error.Details, &apiErr.Fields)
			}
		}
		return apiErr
	}

	if out != nil && len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return fmt.Errorf("failed to parse response data: %w", err)
		}
	}
	return nil
}
