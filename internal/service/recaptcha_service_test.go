package service

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecaptchaDisabledWithoutSecret(t *testing.T) {
	s := NewRecaptchaService("", 0.5)
	assert.False(t, s.Enabled())

	ok, err := s.VerifyToken(context.Background(), "", "")
	assert.True(t, ok)
	assert.NoError(t, err)
}

func TestRecaptchaVerifyToken(t *testing.T) {
	tests := []struct {
		name     string
		token    string
		response string
		wantOK   bool
	}{
		{"high score", "tok", `{"success":true,"score":0.9}`, true},
		{"low score", "tok", `{"success":true,"score":0.1}`, false},
		{"rejected", "tok", `{"success":false,"error-codes":["invalid-input-response"]}`, false},
		{"malformed", "tok", `not json`, false},
		{"missing token", "", `{"success":true,"score":0.9}`, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				require.NoError(t, r.ParseForm())
				assert.Equal(t, "secret", r.PostForm.Get("secret"))
				assert.Equal(t, tt.token, r.PostForm.Get("response"))
				assert.Equal(t, "10.0.0.1", r.PostForm.Get("remoteip"))
				w.Write([]byte(tt.response))
			}))
			defer srv.Close()

			s := NewRecaptchaService("secret", 0.5).WithVerifyURL(srv.URL)
			ok, err := s.VerifyToken(context.Background(), tt.token, "10.0.0.1")

			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, ErrCaptchaFailed)
			}
		})
	}
}
