package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/osa911/uplink/internal/api/constants"
	"github.com/osa911/uplink/internal/locale"
	"github.com/osa911/uplink/internal/logging"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func serve(router *gin.Engine, method, path string, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestCORS(t *testing.T) {
	tests := []struct {
		name       string
		cfg        CORSConfig
		method     string
		origin     string
		wantStatus int
		wantOrigin string
	}{
		{"no origin", CORSConfig{AllowedOrigins: []string{"https://a.dev"}}, http.MethodGet, "", http.StatusOK, ""},
		{"listed origin", CORSConfig{AllowedOrigins: []string{"https://a.dev"}}, http.MethodGet, "https://a.dev", http.StatusOK, "https://a.dev"},
		{"unlisted origin", CORSConfig{AllowedOrigins: []string{"https://a.dev"}}, http.MethodGet, "https://b.dev", http.StatusForbidden, ""},
		{"wildcard", CORSConfig{AllowedOrigins: []string{"*"}}, http.MethodGet, "https://b.dev", http.StatusOK, "https://b.dev"},
		{"development without list", CORSConfig{Development: true}, http.MethodGet, "http://localhost:3000", http.StatusOK, "http://localhost:3000"},
		{"production without list", CORSConfig{}, http.MethodGet, "https://b.dev", http.StatusForbidden, ""},
		{"preflight", CORSConfig{AllowedOrigins: []string{"https://a.dev"}}, http.MethodOptions, "https://a.dev", http.StatusNoContent, "https://a.dev"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := gin.New()
			router.Use(CORS(tt.cfg))
			router.Handle(tt.method, "/", func(c *gin.Context) { c.Status(http.StatusOK) })

			headers := map[string]string{}
			if tt.origin != "" {
				headers["Origin"] = tt.origin
			}
			w := serve(router, tt.method, "/", headers)

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Equal(t, tt.wantOrigin, w.Header().Get("Access-Control-Allow-Origin"))
		})
	}
}

func TestRequestID(t *testing.T) {
	router := gin.New()
	router.Use(RequestID())
	router.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, c.GetString(constants.ContextKeyRequestID))
	})

	incoming := uuid.New().String()
	w := serve(router, http.MethodGet, "/", map[string]string{"X-Request-ID": incoming})
	assert.Equal(t, incoming, w.Header().Get("X-Request-ID"))
	assert.Equal(t, incoming, w.Body.String())

	// arbitrary header values are not echoed back
	w = serve(router, http.MethodGet, "/", map[string]string{"X-Request-ID": "<script>"})
	_, err := uuid.Parse(w.Header().Get("X-Request-ID"))
	assert.NoError(t, err)
}

func TestRecovery(t *testing.T) {
	router := gin.New()
	router.Use(Recovery(logging.Discard()))
	router.GET("/", func(c *gin.Context) { panic("boom") })

	w := serve(router, http.MethodGet, "/", nil)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "INTERNAL_SERVER_ERROR")
}

func TestLocale(t *testing.T) {
	tests := []struct {
		name    string
		path    string
		headers map[string]string
		want    string
	}{
		{"default", "/", nil, "en"},
		{"accept language", "/", map[string]string{"Accept-Language": "es-MX,es;q=0.9,en;q=0.5"}, "es"},
		{"query wins", "/?lang=en", map[string]string{"Accept-Language": "es"}, "en"},
		{"cookie", "/", map[string]string{"Cookie": "lang=es", "Accept-Language": "en"}, "es"},
		{"unsupported", "/", map[string]string{"Accept-Language": "fr"}, "en"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := gin.New()
			router.Use(Locale())
			router.GET("/", func(c *gin.Context) {
				c.String(http.StatusOK, locale.T(GetLocalizer(c), locale.MsgFormNotFound))
			})

			w := serve(router, http.MethodGet, tt.path, tt.headers)

			assert.Equal(t, tt.want, w.Header().Get("Content-Language"))
		})
	}
}

func TestClientLimitersPerIP(t *testing.T) {
	limiters := newClientLimiters(RateLimitConfig{RPS: 1, Burst: 1, IdleTTL: time.Minute})
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	limiters.now = func() time.Time { return now }

	assert.True(t, limiters.get("10.0.0.1").Allow())
	assert.True(t, limiters.get("10.0.0.2").Allow())
	assert.Len(t, limiters.clients, 2)

	// idle clients are dropped on the next sweep
	now = now.Add(2 * time.Minute)
	limiters.get("10.0.0.3")
	assert.Len(t, limiters.clients, 1)
}
