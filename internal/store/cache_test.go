package store

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"transcription-record-service/internal/models"
)

// countingStore wraps Memory and counts Get calls that reach the backend.
type countingStore struct {
	*Memory
	mu   sync.Mutex
	gets int
}

func (c *countingStore) Get(ctx context.Context, callID string) (models.TranscriptionRecord, error) {
	c.mu.Lock()
	c.gets++
	c.mu.Unlock()
	return c.Memory.Get(ctx, callID)
}

func (c *countingStore) getCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.gets
}

func TestCached_ReadThrough(t *testing.T) {
	inner := &countingStore{Memory: NewMemory()}
	c := NewCached(inner, time.Minute)
	ctx := context.Background()

	rec := testRecord("c1", "alice", time.Now().UTC())
	// Seed behind the cache so the first Get must hit the backend.
	if err := inner.Memory.Put(ctx, rec); err != nil {
		t.Fatal(err)
	}

	for i := 0; i < 3; i++ {
		got, err := c.Get(ctx, "c1")
		if err != nil {
			t.Fatalf("get %d failed: %v", i, err)
		}
		if got != rec {
			t.Fatalf("get %d: got %+v, want %+v", i, got, rec)
		}
	}

	if n := inner.getCount(); n != 1 {
		t.Errorf("expected 1 backend get, got %d", n)
	}
}

func TestCached_PutPrimesCache(t *testing.T) {
	inner := &countingStore{Memory: NewMemory()}
	c := NewCached(inner, time.Minute)
	ctx := context.Background()

	rec := testRecord("c1", "alice", time.Now().UTC())
	if err := c.Put(ctx, rec); err != nil {
		t.Fatal(err)
	}

	if _, err := c.Get(ctx, "c1"); err != nil {
		t.Fatal(err)
	}
	if n := inner.getCount(); n != 0 {
		t.Errorf("expected 0 backend gets after priming put, got %d", n)
	}
}

func TestCached_PatchInvalidatesBeforeAck(t *testing.T) {
	inner := &countingStore{Memory: NewMemory()}
	c := NewCached(inner, time.Minute)
	ctx := context.Background()

	rec := testRecord("c1", "alice", time.Now().UTC())
	if err := c.Put(ctx, rec); err != nil {
		t.Fatal(err)
	}
	// Warm the cache.
	if _, err := c.Get(ctx, "c1"); err != nil {
		t.Fatal(err)
	}

	if err := c.Patch(ctx, "c1", "s3://bucket/c1.wav"); err != nil {
		t.Fatalf("patch failed: %v", err)
	}

	// The very next read must observe the patched reference.
	got, err := c.Get(ctx, "c1")
	if err != nil {
		t.Fatal(err)
	}
	if got.S3URL != "s3://bucket/c1.wav" {
		t.Errorf("stale read after patch: s3Url=%q", got.S3URL)
	}
}

func TestCached_PatchNotFound_Propagates(t *testing.T) {
	c := NewCached(NewMemory(), time.Minute)

	err := c.Patch(context.Background(), "ghost", "s3://bucket/ghost.wav")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestCached_ListsPassThrough(t *testing.T) {
	c := NewCached(NewMemory(), time.Minute)
	ctx := context.Background()

	base := time.Date(2026, 1, 2, 15, 4, 5, 0, time.UTC)
	if err := c.Put(ctx, testRecord("c1", "alice", base)); err != nil {
		t.Fatal(err)
	}
	if err := c.Put(ctx, testRecord("c2", "bob", base.Add(time.Second))); err != nil {
		t.Fatal(err)
	}

	all, err := c.ListAll(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 2 {
		t.Fatalf("expected 2 records, got %d", len(all))
	}

	bob, err := c.ListByParticipant(ctx, "bob")
	if err != nil {
		t.Fatal(err)
	}
	if len(bob) != 1 || bob[0].CallID != "c2" {
		t.Errorf("unexpected participant query result: %+v", bob)
	}
}
