package store

import (
	"context"
	"sync"

	"transcription-record-service/internal/models"
)

// Memory is an in-process Store used in tests and local development,
// standing in for the remote entity store. Safe for concurrent use.
type Memory struct {
	mu      sync.RWMutex
	records map[string]models.TranscriptionRecord
}

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{records: make(map[string]models.TranscriptionRecord)}
}

// Put inserts a new record, rejecting duplicate callIds.
func (m *Memory) Put(ctx context.Context, record models.TranscriptionRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.records[record.CallID]; ok {
		return ErrDuplicateKey
	}
	m.records[record.CallID] = record
	return nil
}

// Get returns the record for callId.
func (m *Memory) Get(ctx context.Context, callID string) (models.TranscriptionRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	record, ok := m.records[callID]
	if !ok {
		return models.TranscriptionRecord{}, ErrNotFound
	}
	return record, nil
}

// Patch updates only the s3Url field of an existing record.
func (m *Memory) Patch(ctx context.Context, callID, s3URL string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	record, ok := m.records[callID]
	if !ok {
		return ErrNotFound
	}
	record.S3URL = s3URL
	m.records[callID] = record
	return nil
}

// ListAll returns all records in the documented order.
func (m *Memory) ListAll(ctx context.Context) ([]models.TranscriptionRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]models.TranscriptionRecord, 0, len(m.records))
	for _, record := range m.records {
		out = append(out, record)
	}
	sortRecords(out)
	return out, nil
}

// ListByParticipant returns the records for one participant in the
// documented order.
func (m *Memory) ListByParticipant(ctx context.Context, participantID string) ([]models.TranscriptionRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]models.TranscriptionRecord, 0)
	for _, record := range m.records {
		if record.ParticipantID == participantID {
			out = append(out, record)
		}
	}
	sortRecords(out)
	return out, nil
}

// Ping always succeeds; the in-memory store has no backend.
func (m *Memory) Ping(ctx context.Context) error {
	return nil
}
