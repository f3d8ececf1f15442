// Package store provides durable access to transcription records keyed by
// callId, with a secondary lookup by participantId. The remote backend is a
// decentralized entity store reached over its HTTP gateway; an in-memory
// implementation backs tests and local development.
package store

import (
	"context"
	"errors"
	"sort"

	"transcription-record-service/internal/models"
)

// Sentinel errors returned by Store implementations. Callers distinguish
// them with errors.Is; ErrUnavailable is deliberately distinct from
// ErrNotFound so upstream retry logic can tell "definitely absent" from
// "unknown due to timeout".
var (
	ErrNotFound     = errors.New("record not found")
	ErrDuplicateKey = errors.New("record already exists")
	ErrUnavailable  = errors.New("record store unavailable")
)

// Store defines key-value access to TranscriptionRecords.
//
// Ordering contract: ListAll and ListByParticipant return records sorted by
// CreatedAt ascending, then CallID ascending, so the same backing data always
// yields the same order. Returned records are independent copies.
type Store interface {
	// Put inserts a new record. Returns ErrDuplicateKey if the callId
	// already exists; the stored record is left unchanged in that case.
	Put(ctx context.Context, record models.TranscriptionRecord) error

	// Get returns the record for callId, or ErrNotFound.
	Get(ctx context.Context, callID string) (models.TranscriptionRecord, error)

	// Patch updates only the s3Url field of an existing record.
	// Returns ErrNotFound if the record does not exist; no record is
	// created in that case.
	Patch(ctx context.Context, callID, s3URL string) error

	// ListAll returns every record in the store.
	ListAll(ctx context.Context) ([]models.TranscriptionRecord, error)

	// ListByParticipant returns the records whose ParticipantID matches.
	ListByParticipant(ctx context.Context, participantID string) ([]models.TranscriptionRecord, error)
}

// Pinger is implemented by stores that can check backend connectivity.
// Used by the readiness probe.
type Pinger interface {
	Ping(ctx context.Context) error
}

// sortRecords applies the ordering contract in place.
func sortRecords(records []models.TranscriptionRecord) {
	sort.Slice(records, func(i, j int) bool {
		if !records[i].CreatedAt.Equal(records[j].CreatedAt) {
			return records[i].CreatedAt.Before(records[j].CreatedAt)
		}
		return records[i].CallID < records[j].CallID
	})
}
