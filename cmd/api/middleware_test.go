package main

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"sashambhu/internal/auth"
	"sashambhu/internal/ratelimiter"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthTokenMiddleware(t *testing.T) {
	env := newTestApplication(t)

	t.Run("missing header", func(t *testing.T) {
		rr := env.do(t, http.MethodGet, "/v1/me", "", nil)
		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})

	t.Run("malformed header", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/v1/me", nil)
		req.Header.Set("Authorization", "Token abc")
		rr := httptest.NewRecorder()
		env.mux.ServeHTTP(rr, req)
		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})

	t.Run("token from another issuer", func(t *testing.T) {
		other := auth.NewJWTAuthenticator("other-secret", "sashambhu", "idp")
		tok, err := other.GenerateToken(adminEmail, time.Hour)
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/v1/me", nil)
		req.Header.Set("Authorization", "Bearer "+tok)
		rr := httptest.NewRecorder()
		env.mux.ServeHTTP(rr, req)
		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})

	t.Run("valid token for unknown staff", func(t *testing.T) {
		rr := env.do(t, http.MethodGet, "/v1/me", "stranger@example.com", nil)
		assert.Equal(t, http.StatusForbidden, rr.Code)
	})

	t.Run("known staff", func(t *testing.T) {
		rr := env.do(t, http.MethodGet, "/v1/me", counterEmail, nil)
		require.Equal(t, http.StatusOK, rr.Code)

		var me struct {
			ID   int64  `json:"id"`
			Role string `json:"role"`
		}
		decodeData(t, rr, &me)
		assert.Equal(t, int64(2), me.ID)
		assert.Equal(t, "counter", me.Role)
	})
}

func TestRequireRole(t *testing.T) {
	env := newTestApplication(t)

	tests := []struct {
		name   string
		method string
		path   string
		email  string
		want   int
	}{
		{"counter reads today", http.MethodGet, "/v1/counter/bookings/today", counterEmail, http.StatusOK},
		{"admin is not the counter", http.MethodGet, "/v1/counter/bookings/today", adminEmail, http.StatusForbidden},
		{"counter cannot see revenue", http.MethodGet, "/v1/admin/revenue", counterEmail, http.StatusForbidden},
		{"counter cannot change prices", http.MethodPut, "/v1/admin/prices", counterEmail, http.StatusForbidden},
		{"admin sees revenue", http.MethodGet, "/v1/admin/revenue", adminEmail, http.StatusOK},
		{"both can quote", http.MethodPost, "/v1/bookings/quote", adminEmail, http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var body any
			if tt.method != http.MethodGet {
				body = map[string]any{}
			}
			rr := env.do(t, tt.method, tt.path, tt.email, body)
			assert.Equal(t, tt.want, rr.Code)
		})
	}
}

func TestHealthCheckNeedsBasicAuth(t *testing.T) {
	env := newTestApplication(t)

	req := httptest.NewRequest(http.MethodGet, "/v1/health", nil)
	rr := httptest.NewRecorder()
	env.mux.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	assert.Contains(t, rr.Header().Get("WWW-Authenticate"), "Basic")

	req = httptest.NewRequest(http.MethodGet, "/v1/health", nil)
	req.SetBasicAuth("ops", "wrong")
	rr = httptest.NewRecorder()
	env.mux.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)

	req = httptest.NewRequest(http.MethodGet, "/v1/health", nil)
	req.SetBasicAuth("ops", "secret")
	rr = httptest.NewRecorder()
	env.mux.ServeHTTP(rr, req)
	require.Equal(t, http.StatusOK, rr.Code)

	var health map[string]string
	decodeData(t, rr, &health)
	assert.Equal(t, "ok", health["status"])
	assert.Equal(t, version, health["version"])
}

func TestRateLimiterMiddleware(t *testing.T) {
	env := newTestApplication(t)
	env.app.config.rateLimiter = ratelimiter.Config{RequestsPerTimeFrame: 2, TimeFrame: time.Minute, Enabled: true}
	env.app.rateLimiter = ratelimiter.NewFixedWindowLimiter(2, time.Minute)

	for i := 0; i < 2; i++ {
		rr := env.do(t, http.MethodGet, "/v1/me", counterEmail, nil)
		require.Equal(t, http.StatusOK, rr.Code)
	}

	rr := env.do(t, http.MethodGet, "/v1/me", counterEmail, nil)
	assert.Equal(t, http.StatusTooManyRequests, rr.Code)
	assert.NotEmpty(t, rr.Header().Get("Retry-After"))
}
