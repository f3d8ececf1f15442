package app

import (
	"testing"

	"transcription-record-service/internal/config"
)

func memoryConfig() *config.Config {
	cfg := config.Load()
	cfg.Store.Backend = "memory"
	cfg.Kafka.Enabled = false
	return cfg
}

func TestNew_MemoryBackend(t *testing.T) {
	a, err := New(memoryConfig())
	if err != nil {
		t.Fatalf("new failed: %v", err)
	}
	if a.Store == nil || a.Records == nil || a.Publisher == nil {
		t.Error("expected all components to be constructed")
	}
	if !a.Ready() {
		t.Error("expected memory-backed application to be ready")
	}
	a.Shutdown()
}

func TestNew_CacheEnabled(t *testing.T) {
	cfg := memoryConfig()
	cfg.Cache.Enabled = true

	a, err := New(cfg)
	if err != nil {
		t.Fatalf("new failed: %v", err)
	}
	if !a.Ready() {
		t.Error("expected cached memory store to be ready")
	}
	a.Shutdown()
}

func TestNew_UnknownBackend(t *testing.T) {
	cfg := memoryConfig()
	cfg.Store.Backend = "carrier-pigeon"

	if _, err := New(cfg); err == nil {
		t.Fatal("expected error for unknown store backend")
	}
}

func TestStart_SetsStartupTime(t *testing.T) {
	a, err := New(memoryConfig())
	if err != nil {
		t.Fatal(err)
	}
	if err := a.Start(); err != nil {
		t.Fatalf("start failed: %v", err)
	}
	if a.StartupTime.IsZero() {
		t.Error("expected startup time to be set")
	}
	a.Shutdown()
}
