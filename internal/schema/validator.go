// Package schema validates inbound event payloads at the service boundary.
// Validation failures are resolved here, before any store call is attempted.
package schema

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"transcription-record-service/internal/models"
)

// ErrInvalidPayload marks a malformed or incomplete event payload.
// Wrapped errors carry the offending field.
var ErrInvalidPayload = errors.New("invalid payload")

// ValidateTranscriptionEvent checks a transcription-completed event for the
// required fields. A payload missing callId or transcript content is
// rejected outright.
func ValidateTranscriptionEvent(ev models.TranscriptionCompletedEvent) error {
	if strings.TrimSpace(ev.CallID) == "" {
		return fmt.Errorf("%w: missing callId", ErrInvalidPayload)
	}
	if strings.TrimSpace(ev.Text) == "" {
		return fmt.Errorf("%w: missing transcript text", ErrInvalidPayload)
	}
	return nil
}

// ValidateAttachment checks that both the callId and the object reference
// are present and that the reference parses as a URL with a scheme and host
// (s3://bucket/key or an https object URL).
func ValidateAttachment(callID, s3URL string) error {
	if strings.TrimSpace(callID) == "" {
		return fmt.Errorf("%w: missing callId", ErrInvalidPayload)
	}
	if strings.TrimSpace(s3URL) == "" {
		return fmt.Errorf("%w: missing s3Url", ErrInvalidPayload)
	}
	u, err := url.Parse(s3URL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("%w: malformed s3Url %q", ErrInvalidPayload, s3URL)
	}
	return nil
}
