// Package http provides the JSON API surface for the transcription record
// service.
package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"transcription-record-service/internal/observability"
	"transcription-record-service/internal/observability/metrics"
	"transcription-record-service/internal/service/records"
)

// NewRouter constructs the HTTP router for the service.
func NewRouter(svc *records.Service) http.Handler {
	r := chi.NewRouter()

	// Basic middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(observability.RequestLogger(metrics.DefaultMetrics))

	// Health endpoints
	r.Get("/v1/liveness", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Get("/v1/readiness", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ready"))
	})

	h := &handler{svc: svc}

	// API routes
	r.Route("/v1", func(r chi.Router) {
		r.Get("/transcriptions", h.listTranscriptions)
		r.Get("/transcriptions/{callId}", h.getTranscription)
		r.Post("/transcriptions/attachment", h.updateAttachment)

		r.Route("/webhooks", func(r chi.Router) {
			r.Post("/transcription", h.transcriptionWebhook)
			r.Get("/echo", h.echo)
			r.Post("/echo", h.echo)
		})
	})

	return r
}
