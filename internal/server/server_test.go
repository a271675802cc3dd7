package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alfagnish/demo-service/internal/config"
	"github.com/alfagnish/demo-service/internal/logging"
	"github.com/alfagnish/demo-service/internal/middleware"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2026, time.October, 18, 9, 0, 0, 0, time.UTC)

func testConfig() *config.Config {
	return &config.Config{
		ServiceName:        "python-service",
		Host:               "127.0.0.1",
		Port:               8080,
		LogLevel:           "info",
		LogFormat:          "json",
		CORSAllowedOrigins: []string{"*"},
		ReadTimeout:        15 * time.Second,
		WriteTimeout:       15 * time.Second,
		IdleTimeout:        60 * time.Second,
		ShutdownTimeout:    10 * time.Second,
	}
}

func serve(h http.Handler, req *http.Request) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func TestRoutesThroughMiddleware(t *testing.T) {
	r := newRouter(testConfig(), logging.Discard(), func() time.Time { return fixedNow })

	tests := []struct {
		name     string
		method   string
		path     string
		auth     string
		wantUser string
	}{
		{name: "root anonymous", method: http.MethodGet, path: "/", wantUser: "anonymous"},
		{name: "api data bearer", method: http.MethodGet, path: "/api/data", auth: "Bearer xyz", wantUser: "authenticated-user"},
		{name: "api data post", method: http.MethodPost, path: "/api/data", auth: "x", wantUser: "authenticated-user"},
		{name: "admin anonymous", method: http.MethodGet, path: "/admin/users", wantUser: "anonymous"},
		{name: "resource ignores header", method: http.MethodGet, path: "/users/alice/profile", auth: "Bearer bob", wantUser: "alice"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, nil)
			if tt.auth != "" {
				req.Header.Set("Authorization", tt.auth)
			}
			rr := serve(r, req)

			require.Equal(t, http.StatusOK, rr.Code)
			var body map[string]any
			require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
			assert.Equal(t, tt.wantUser, body["user"])
			assert.Equal(t, "python-service", body["service"])
			assert.Equal(t, "2026-10-18T09:00:00Z", body["timestamp"])

			_, err := uuid.Parse(rr.Header().Get(middleware.RequestIDHeader))
			assert.NoError(t, err)
		})
	}
}

func TestHealthThroughMiddleware(t *testing.T) {
	h := New(testConfig(), logging.Discard())

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("Authorization", "Bearer xyz")
	rr := serve(h, req)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"status":"healthy"}`, rr.Body.String())
}

func TestNotFoundJSON(t *testing.T) {
	h := New(testConfig(), logging.Discard())

	for _, path := range []string{"/nope", "/users/alice"} {
		rr := serve(h, httptest.NewRequest(http.MethodGet, path, nil))

		assert.Equal(t, http.StatusNotFound, rr.Code, path)
		assert.JSONEq(t, `{"detail":"not found"}`, rr.Body.String(), path)
		assert.NotEmpty(t, rr.Header().Get(middleware.RequestIDHeader), path)
	}
}

func TestRecoversFromPanic(t *testing.T) {
	r := newRouter(testConfig(), logging.Discard(), time.Now)
	r.Get("/boom", func(http.ResponseWriter, *http.Request) { panic("boom") })

	rr := serve(r, httptest.NewRequest(http.MethodGet, "/boom", nil))
	assert.Equal(t, http.StatusInternalServerError, rr.Code)
}

func TestCORSPreflight(t *testing.T) {
	h := New(testConfig(), logging.Discard())

	req := httptest.NewRequest(http.MethodOptions, "/api/data", nil)
	req.Header.Set("Origin", "https://app.example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	req.Header.Set("Access-Control-Request-Headers", "Authorization")
	rr := serve(h, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "*", rr.Header().Get("Access-Control-Allow-Origin"))
}

func TestCORSDisallowedOrigin(t *testing.T) {
	cfg := testConfig()
	cfg.CORSAllowedOrigins = []string{"https://app.example.com"}
	h := New(cfg, logging.Discard())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Origin", "https://evil.example.com")
	rr := serve(h, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Empty(t, rr.Header().Get("Access-Control-Allow-Origin"))
}

func TestNewHTTPServer(t *testing.T) {
	cfg := testConfig()
	srv := NewHTTPServer(cfg, logging.Discard())

	assert.Equal(t, "127.0.0.1:8080", srv.Addr)
	assert.Equal(t, cfg.ReadTimeout, srv.ReadTimeout)
	assert.Equal(t, cfg.WriteTimeout, srv.WriteTimeout)
	assert.Equal(t, cfg.IdleTimeout, srv.IdleTimeout)
	assert.NotNil(t, srv.Handler)
	assert.NotNil(t, srv.ErrorLog)
}
