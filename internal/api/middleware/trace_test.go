package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/readquill/readquill-api/internal/api/shared"
	"github.com/readquill/readquill-api/internal/platform/logger"
)

func TestTraceMiddleware(t *testing.T) {
	var seenTraceID string
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seenTraceID = shared.GetTraceID(r.Context())
		require.NotNil(t, logger.FromContext(r.Context()))
		w.WriteHeader(http.StatusNoContent)
	})

	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/cards/next", nil)
	TraceMiddleware(inner).ServeHTTP(rr, req)

	require.NotEmpty(t, seenTraceID)
	assert.Len(t, seenTraceID, shared.TraceIDLength*2, "trace ID is hex encoded")
	assert.Equal(t, seenTraceID, rr.Header().Get("X-Trace-ID"),
		"response header carries the same trace ID the handler saw")
}

func TestTraceMiddlewareUniquePerRequest(t *testing.T) {
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {})

	ids := make(map[string]struct{})
	for i := 0; i < 3; i++ {
		rr := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
		TraceMiddleware(inner).ServeHTTP(rr, req)
		ids[rr.Header().Get("X-Trace-ID")] = struct{}{}
	}

	assert.Len(t, ids, 3, "each request gets its own trace ID")
}
