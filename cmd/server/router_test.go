package main

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/readquill/readquill-api/internal/config"
)

// newTestApplication builds an application with just enough wiring to
// exercise routing and middleware. Handlers behind authentication are never
// reached by these tests, so the services stay nil.
func newTestApplication(origins []string) *application {
	return &application{
		config: &config.Config{
			Server: config.ServerConfig{
				Port:        8080,
				LogLevel:    "info",
				CORSOrigins: origins,
			},
		},
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

func TestRouterCORSPreflight(t *testing.T) {
	app := newTestApplication([]string{"http://localhost:5173"})
	router := app.setupRouter()

	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodOptions, "/api/v1/cards/next", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	req.Header.Set("Access-Control-Request-Method", http.MethodGet)
	router.ServeHTTP(rr, req)

	assert.Equal(t, "http://localhost:5173", rr.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", rr.Header().Get("Access-Control-Allow-Credentials"))
}

func TestRouterCORSRejectsUnknownOrigin(t *testing.T) {
	app := newTestApplication([]string{"https://app.readquill.com"})
	router := app.setupRouter()

	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodOptions, "/api/v1/cards/next", nil)
	req.Header.Set("Origin", "https://evil.example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodGet)
	router.ServeHTTP(rr, req)

	assert.Empty(t, rr.Header().Get("Access-Control-Allow-Origin"),
		"origins outside the configured list get no CORS grant")
}

func TestRouterHealthCheck(t *testing.T) {
	app := newTestApplication([]string{"http://localhost:5173"})
	router := app.setupRouter()

	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	router.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "OK", rr.Body.String())
	assert.NotEmpty(t, rr.Header().Get("X-Trace-ID"))
}
