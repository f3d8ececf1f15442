// Package records implements the transcription record service: webhook
// ingestion, attachment updates, and participant-scoped queries over the
// record store.
package records

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"transcription-record-service/internal/events"
	"transcription-record-service/internal/models"
	"transcription-record-service/internal/observability/logging"
	"transcription-record-service/internal/observability/metrics"
	"transcription-record-service/internal/schema"
	"transcription-record-service/internal/store"
)

const (
	eventRecordCreated    = "transcription.record.created"
	eventRecordAttachment = "transcription.record.attachment"
)

// Service coordinates between payload validation, the record store, and the
// event publisher. It is the sole writer path to the store; queries are
// read-only and return independent copies.
type Service struct {
	store     store.Store
	publisher *events.Publisher
	metrics   *metrics.Metrics
	logger    zerolog.Logger

	// Attachment patches are serialized per callId so concurrent patch
	// deliveries cannot interleave under a read-modify-write backend.
	// Reads take no lock.
	locksMu sync.Mutex
	locks   map[string]*sync.Mutex
}

// New creates the record service.
func New(st store.Store, publisher *events.Publisher) *Service {
	return &Service{
		store:     st,
		publisher: publisher,
		metrics:   metrics.DefaultMetrics,
		logger:    logging.WithComponent("records"),
		locks:     make(map[string]*sync.Mutex),
	}
}

// Ingest validates a transcription-completed event and creates a new
// record with CreatedAt set to ingestion time. A duplicate callId surfaces
// as store.ErrDuplicateKey; it is never merged into the existing record and
// never retried here, so upstream re-delivery bugs stay visible.
func (s *Service) Ingest(ctx context.Context, ev models.TranscriptionCompletedEvent) (models.TranscriptionRecord, error) {
	if err := schema.ValidateTranscriptionEvent(ev); err != nil {
		s.metrics.RecordInvalidPayload("transcription")
		return models.TranscriptionRecord{}, err
	}

	record := models.TranscriptionRecord{
		CallID:        ev.CallID,
		ParticipantID: ev.ParticipantID,
		Text:          ev.Text,
		CreatedAt:     time.Now().UTC(),
	}

	if err := s.store.Put(ctx, record); err != nil {
		if errors.Is(err, store.ErrDuplicateKey) {
			s.metrics.RecordDuplicateIngest()
			lg := logging.WithCall(ev.CallID)
			lg.Warn().Msg("Duplicate ingestion rejected")
			return models.TranscriptionRecord{}, err
		}
		return models.TranscriptionRecord{}, fmt.Errorf("put record %s: %w", ev.CallID, err)
	}

	s.metrics.RecordRecordCreated()
	lg := logging.WithParticipant(record.CallID, record.ParticipantID)
	lg.Info().Msg("Transcription record created")

	s.publishCreated(ctx, record)
	return record, nil
}

// AttachObject patches the s3Url reference onto an existing record. An
// attachment for an unknown callId means the upstream delivered out of
// order or orphaned the event; it surfaces as store.ErrNotFound and no
// record is created. Applying the same s3Url twice is idempotent in effect.
func (s *Service) AttachObject(ctx context.Context, callID, s3URL string) error {
	if err := schema.ValidateAttachment(callID, s3URL); err != nil {
		s.metrics.RecordInvalidPayload("attachment")
		return err
	}

	lock := s.lockFor(callID)
	lock.Lock()
	defer lock.Unlock()

	if err := s.store.Patch(ctx, callID, s3URL); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			s.metrics.RecordOrphanAttachment()
			lg := logging.WithCall(callID)
			lg.Warn().Str("s3Url", s3URL).Msg("Attachment event for unknown call")
			return err
		}
		return fmt.Errorf("patch record %s: %w", callID, err)
	}

	s.metrics.RecordAttachmentPatched()
	lg := logging.WithCall(callID)
	lg.Info().Str("s3Url", s3URL).Msg("Attachment reference updated")

	s.publishAttachment(ctx, callID, s3URL)
	return nil
}

// Get returns a single record by callId.
func (s *Service) Get(ctx context.Context, callID string) (models.TranscriptionRecord, error) {
	return s.store.Get(ctx, callID)
}

// ListAll returns every record with a derived count. Count is always
// len(records) so the two can never disagree.
func (s *Service) ListAll(ctx context.Context) ([]models.TranscriptionRecord, int, error) {
	records, err := s.store.ListAll(ctx)
	if err != nil {
		return nil, 0, err
	}
	s.metrics.RecordQuery("all")
	return records, len(records), nil
}

// ListByParticipant returns the records for one participant with a derived
// count.
func (s *Service) ListByParticipant(ctx context.Context, participantID string) ([]models.TranscriptionRecord, int, error) {
	records, err := s.store.ListByParticipant(ctx, participantID)
	if err != nil {
		return nil, 0, err
	}
	s.metrics.RecordQuery("participant")
	return records, len(records), nil
}

// lockFor returns the patch mutex for a callId, creating it on first use.
func (s *Service) lockFor(callID string) *sync.Mutex {
	s.locksMu.Lock()
	defer s.locksMu.Unlock()

	lock, ok := s.locks[callID]
	if !ok {
		lock = &sync.Mutex{}
		s.locks[callID] = lock
	}
	return lock
}

func (s *Service) publishCreated(ctx context.Context, record models.TranscriptionRecord) {
	ev := models.RecordCreatedEvent{
		EventType:     eventRecordCreated,
		CallID:        record.CallID,
		ParticipantID: record.ParticipantID,
		Timestamp:     time.Now().UnixMilli(),
	}
	if err := s.publisher.PublishRecordCreated(ctx, record.CallID, ev); err != nil {
		s.logger.Error().Err(err).Str("callId", record.CallID).Msg("Failed to publish record-created event")
	}
}

func (s *Service) publishAttachment(ctx context.Context, callID, s3URL string) {
	ev := models.RecordAttachmentEvent{
		EventType: eventRecordAttachment,
		CallID:    callID,
		S3URL:     s3URL,
		Timestamp: time.Now().UnixMilli(),
	}
	if err := s.publisher.PublishAttachment(ctx, callID, ev); err != nil {
		s.logger.Error().Err(err).Str("callId", callID).Msg("Failed to publish attachment event")
	}
}
