// Package models defines the data structures for transcription records and events.
package models

import "time"

// TranscriptionRecord is the persisted unit representing one call's
// transcript and metadata. CallID is the primary key and is immutable
// once the record is created.
type TranscriptionRecord struct {
	CallID        string    `json:"callId"`
	ParticipantID string    `json:"participantId"`
	Text          string    `json:"text"`
	S3URL         string    `json:"s3Url,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
}

// TranscriptionCompletedEvent is the webhook payload delivered by the
// upstream transcription provider when a call transcript is ready.
type TranscriptionCompletedEvent struct {
	EventType     string `json:"eventType"`
	CallID        string `json:"callId"`
	ParticipantID string `json:"participantId"`
	Text          string `json:"text"`
	Timestamp     int64  `json:"timestamp"`
}

// AttachmentEvent carries the out-of-band object reference produced once
// the large object (audio or extended transcript) lands in object storage.
type AttachmentEvent struct {
	CallID string `json:"callId"`
	S3URL  string `json:"s3Url"`
}

// RecordCreatedEvent is published after a record is durably written.
type RecordCreatedEvent struct {
	EventType     string `json:"eventType"`
	CallID        string `json:"callId"`
	ParticipantID string `json:"participantId"`
	Timestamp     int64  `json:"timestamp"`
}

// RecordAttachmentEvent is published after an attachment reference is patched
// onto an existing record.
type RecordAttachmentEvent struct {
	EventType string `json:"eventType"`
	CallID    string `json:"callId"`
	S3URL     string `json:"s3Url"`
	Timestamp int64  `json:"timestamp"`
}
