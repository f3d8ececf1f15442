package store

import (
	"context"
	"errors"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"transcription-record-service/internal/models"
)

// Cached wraps a Store with a read-through cache on Get. List queries pass
// through untouched. The cache entry for a callId is invalidated on Patch
// before the patch is acknowledged to the caller, so readers never see a
// stale attachment reference after a successful patch.
type Cached struct {
	inner Store
	cache *gocache.Cache
}

// NewCached creates a caching decorator with the given entry TTL.
func NewCached(inner Store, ttl time.Duration) *Cached {
	return &Cached{
		inner: inner,
		cache: gocache.New(ttl, 2*ttl),
	}
}

// Put writes through and primes the cache with the new record.
func (c *Cached) Put(ctx context.Context, record models.TranscriptionRecord) error {
	if err := c.inner.Put(ctx, record); err != nil {
		return err
	}
	c.cache.SetDefault(record.CallID, record)
	return nil
}

// Get serves from cache when possible.
func (c *Cached) Get(ctx context.Context, callID string) (models.TranscriptionRecord, error) {
	if v, ok := c.cache.Get(callID); ok {
		return v.(models.TranscriptionRecord), nil
	}
	record, err := c.inner.Get(ctx, callID)
	if err != nil {
		return models.TranscriptionRecord{}, err
	}
	c.cache.SetDefault(callID, record)
	return record, nil
}

// Patch invalidates the cached entry before acknowledging the patch. The
// entry is also dropped when the outcome is unknown (store unavailable),
// since the write may have landed.
func (c *Cached) Patch(ctx context.Context, callID, s3URL string) error {
	err := c.inner.Patch(ctx, callID, s3URL)
	if err == nil || errors.Is(err, ErrUnavailable) {
		c.cache.Delete(callID)
	}
	return err
}

// ListAll passes through to the backing store.
func (c *Cached) ListAll(ctx context.Context) ([]models.TranscriptionRecord, error) {
	return c.inner.ListAll(ctx)
}

// ListByParticipant passes through to the backing store.
func (c *Cached) ListByParticipant(ctx context.Context, participantID string) ([]models.TranscriptionRecord, error) {
	return c.inner.ListByParticipant(ctx, participantID)
}

// Ping delegates to the backing store when it supports connectivity checks.
func (c *Cached) Ping(ctx context.Context) error {
	if p, ok := c.inner.(Pinger); ok {
		return p.Ping(ctx)
	}
	return nil
}
