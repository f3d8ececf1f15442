package observability

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"

	"transcription-record-service/internal/observability/metrics"
)

// RequestLogger returns HTTP middleware that logs each request and records
// duration metrics, labeled by the chi route pattern rather than the raw
// path so callId-bearing URLs do not explode label cardinality.
func RequestLogger(m *metrics.Metrics) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

			next.ServeHTTP(ww, r)

			duration := time.Since(start)
			route := chi.RouteContext(r.Context()).RoutePattern()
			if route == "" {
				route = "unmatched"
			}
			status := strconv.Itoa(ww.Status())

			m.RecordHTTPRequest(r.Method, route, status, duration.Seconds())

			log.Info().
				Str("method", r.Method).
				Str("route", route).
				Str("requestId", middleware.GetReqID(r.Context())).
				Int("status", ww.Status()).
				Dur("duration", duration).
				Msg("HTTP request completed")
		})
	}
}
