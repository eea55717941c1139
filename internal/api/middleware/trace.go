package middleware

import (
	"log/slog"
	"net/http"

	"github.com/readquill/readquill-api/internal/api/shared"
	"github.com/readquill/readquill-api/internal/platform/logger"
)

// TraceMiddleware tags each request with a random trace ID. The ID is
// stored in the request context, stamped onto a request-scoped logger,
// and echoed back in the X-Trace-ID response header so clients can quote
// it when reporting problems.
//
// Must run before anything that logs or writes error responses; both
// pull the trace ID from the context.
func TraceMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := shared.SetTraceID(r.Context())
		traceID := shared.GetTraceID(ctx)

		log := logger.FromContext(ctx).With(slog.String("trace_id", traceID))
		ctx = logger.WithLogger(ctx, log)

		w.Header().Set("X-Trace-ID", traceID)

		log.Debug("request started",
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.String("remote_addr", r.RemoteAddr))

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
