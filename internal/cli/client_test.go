package cli

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/osa911/uplink/internal/api/dto/common"
	dto "github.com/osa911/uplink/internal/api/dto/v1/contact"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSendContact(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/v1/contact", r.URL.Path)
		assert.Equal(t, "es", r.Header.Get("Accept-Language"))

		var req dto.ContactRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "Ana", req.Name)

		json.NewEncoder(w).Encode(common.NewSuccessResponse(dto.ContactResponse{Message: "ok", Status: "sent"}))
	}))
	defer srv.Close()

	client := NewClient(srv.URL+"/", "es")
	resp, err := client.SendContact(context.Background(), dto.ContactRequest{Name: "Ana", Email: "a@b.com", Message: "hola"})

	require.NoError(t, err)
	assert.Equal(t, "sent", resp.Status)
}

func TestSendContactValidationError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(common.NewErrorResponse(common.ErrCodeValidation, "Please fill in the highlighted fields.", []common.ValidationError{
			{Field: "name", Message: "REQUIRED FIELD. ENTER DATA."},
		}))
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL, "").SendContact(context.Background(), dto.ContactRequest{})

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
	assert.Equal(t, "VALIDATION_ERROR", apiErr.Code)
	assert.Equal(t, []common.ValidationError{{Field: "name", Message: "REQUIRED FIELD. ENTER DATA."}}, apiErr.Fields)
}

func TestSendContactRelayError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		json.NewEncoder(w).Encode(common.NewErrorResponse(common.ErrCodeRelay, "The message could not be delivered.", nil))
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL, "").SendContact(context.Background(), dto.ContactRequest{Name: "A"})

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "RELAY_ERROR", apiErr.Code)
	assert.Empty(t, apiErr.Fields)
}

func TestProfile(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/profile", r.URL.Path)
		json.NewEncoder(w).Encode(common.NewSuccessResponse(dto.ProfileResponse{Email: "aloncelot@gmail.com", Location: "Mexico City, CDMX"}))
	}))
	defer srv.Close()

	profile, err := NewClient(srv.URL, "").Profile(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "aloncelot@gmail.com", profile.Email)
	assert.Equal(t, "Mexico City, CDMX", profile.Location)
}

func TestNonJSONResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bad gateway", http.StatusBadGateway)
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL, "").Profile(context.Background())
	assert.ErrorContains(t, err, "failed to parse response (status 502)")
}
