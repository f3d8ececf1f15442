package http

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"transcription-record-service/internal/models"
	"transcription-record-service/internal/schema"
	"transcription-record-service/internal/service/records"
	"transcription-record-service/internal/store"
)

// maxBodyBytes bounds inbound payload size; transcripts can be large but
// not unbounded.
const maxBodyBytes = 4 << 20

type handler struct {
	svc *records.Service
}

// listResponse is the query envelope. Count is derived from the slice
// length and can never disagree with it.
type listResponse struct {
	Transcriptions []models.TranscriptionRecord `json:"transcriptions"`
	Count          int                          `json:"count"`
}

type successResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	CallID  string `json:"callId,omitempty"`
}

type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// listTranscriptions serves GET /v1/transcriptions with an optional
// participant query parameter.
func (h *handler) listTranscriptions(w http.ResponseWriter, r *http.Request) {
	var (
		recs  []models.TranscriptionRecord
		count int
		err   error
	)

	if participant := r.URL.Query().Get("participant"); participant != "" {
		recs, count, err = h.svc.ListByParticipant(r.Context(), participant)
	} else {
		recs, count, err = h.svc.ListAll(r.Context())
	}
	if err != nil {
		writeError(w, r, err)
		return
	}

	if recs == nil {
		recs = []models.TranscriptionRecord{}
	}
	writeJSON(w, http.StatusOK, listResponse{Transcriptions: recs, Count: count})
}

// getTranscription serves GET /v1/transcriptions/{callId}.
func (h *handler) getTranscription(w http.ResponseWriter, r *http.Request) {
	callID := chi.URLParam(r, "callId")

	record, err := h.svc.Get(r.Context(), callID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, record)
}

// updateAttachment serves POST /v1/transcriptions/attachment, patching the
// s3Url reference onto an existing record.
func (h *handler) updateAttachment(w http.ResponseWriter, r *http.Request) {
	var ev models.AttachmentEvent
	if !decodeJSON(w, r, &ev) {
		return
	}

	if err := h.svc.AttachObject(r.Context(), ev.CallID, ev.S3URL); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, successResponse{
		Success: true,
		Message: "attachment reference updated",
		CallID:  ev.CallID,
	})
}

// transcriptionWebhook serves the transcription-completed webhook ingress.
func (h *handler) transcriptionWebhook(w http.ResponseWriter, r *http.Request) {
	var ev models.TranscriptionCompletedEvent
	if !decodeJSON(w, r, &ev) {
		return
	}

	record, err := h.svc.Ingest(r.Context(), ev)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, successResponse{
		Success: true,
		Message: "transcription record created",
		CallID:  record.CallID,
	})
}

// echo is the webhook connectivity diagnostic: it acknowledges with a
// timestamp and, on POST, reflects the request body back.
func (h *handler) echo(w http.ResponseWriter, r *http.Request) {
	resp := map[string]any{
		"status":    "ok",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	}
	if r.Method == http.MethodPost {
		body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
		if err != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "unreadable body", Code: "invalid_payload"})
			return
		}
		resp["echo"] = string(body)
	}
	writeJSON(w, http.StatusOK, resp)
}

// decodeJSON decodes the request body into v, answering 400 on malformed
// JSON. Returns false when a response has already been written.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(v); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "malformed JSON body", Code: "invalid_payload"})
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("Failed to encode response")
	}
}

// writeError maps typed service errors onto HTTP statuses. Internal detail
// stays in the server log; clients get a categorized message only.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, schema.ErrInvalidPayload):
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error(), Code: "invalid_payload"})
	case errors.Is(err, store.ErrNotFound):
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "no record for callId", Code: "not_found"})
	case errors.Is(err, store.ErrDuplicateKey):
		writeJSON(w, http.StatusConflict, errorResponse{Error: "record already exists for callId", Code: "duplicate_call"})
	case errors.Is(err, store.ErrUnavailable):
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "record store unavailable", Code: "store_unavailable"})
	default:
		log.Error().Err(err).Str("path", r.URL.Path).Msg("Unexpected handler error")
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal error", Code: "internal"})
	}
}
