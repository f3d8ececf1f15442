package config

import (
	"os"
	"testing"
	"time"
)

var configEnvVars = []string{
	"SERVICE_PRINCIPAL", "HTTP_PORT",
	"STORE_BACKEND", "GOLEMDB_BASE_URL", "GOLEMDB_API_KEY",
	"STORE_TIMEOUT", "STORE_RETRY_COUNT", "STORE_RETRY_WAIT",
	"CACHE_ENABLED", "CACHE_TTL",
	"KAFKA_ENABLED", "KAFKA_BROKERS", "KAFKA_TOPIC_CREATED", "KAFKA_TOPIC_ATTACHMENT",
	"LOG_LEVEL", "LOG_FORMAT", "METRICS_ADDR",
}

func clearConfigEnv(t *testing.T) {
	t.Helper()
	for _, v := range configEnvVars {
		os.Unsetenv(v)
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearConfigEnv(t)

	cfg := Load()

	// Service defaults
	if cfg.Service.Principal != "svc-transcription-records" {
		t.Errorf("expected default principal 'svc-transcription-records', got %s", cfg.Service.Principal)
	}
	if cfg.Service.HTTPPort != "8080" {
		t.Errorf("expected default port '8080', got %s", cfg.Service.HTTPPort)
	}

	// Store defaults
	if cfg.Store.Backend != "memory" {
		t.Errorf("expected default store backend 'memory', got %s", cfg.Store.Backend)
	}
	if cfg.Store.BaseURL != "http://localhost:8090" {
		t.Errorf("expected default gateway URL, got %s", cfg.Store.BaseURL)
	}
	if cfg.Store.Timeout != 5*time.Second {
		t.Errorf("expected default store timeout 5s, got %v", cfg.Store.Timeout)
	}
	if cfg.Store.RetryCount != 2 {
		t.Errorf("expected default retry count 2, got %d", cfg.Store.RetryCount)
	}
	if cfg.Store.RetryWait != 200*time.Millisecond {
		t.Errorf("expected default retry wait 200ms, got %v", cfg.Store.RetryWait)
	}

	// Cache defaults
	if cfg.Cache.Enabled {
		t.Error("expected cache disabled by default")
	}
	if cfg.Cache.TTL != 30*time.Second {
		t.Errorf("expected default cache TTL 30s, got %v", cfg.Cache.TTL)
	}

	// Kafka defaults
	if cfg.Kafka.Enabled {
		t.Error("expected kafka disabled by default")
	}
	if cfg.Kafka.TopicCreated != "transcription.record.created" {
		t.Errorf("unexpected default created topic %s", cfg.Kafka.TopicCreated)
	}
	if cfg.Kafka.TopicAttachment != "transcription.record.attachment" {
		t.Errorf("unexpected default attachment topic %s", cfg.Kafka.TopicAttachment)
	}
	if cfg.Kafka.Principal != cfg.Service.Principal {
		t.Errorf("expected kafka principal to follow service principal, got %s", cfg.Kafka.Principal)
	}

	// Observability defaults
	if cfg.Observability.LogLevel != "info" {
		t.Errorf("expected default log level 'info', got %s", cfg.Observability.LogLevel)
	}
	if cfg.Observability.LogFormat != "json" {
		t.Errorf("expected default log format 'json', got %s", cfg.Observability.LogFormat)
	}
	if cfg.Observability.MetricsAddr != ":9090" {
		t.Errorf("expected default metrics addr ':9090', got %s", cfg.Observability.MetricsAddr)
	}
}

func TestLoad_Overrides(t *testing.T) {
	clearConfigEnv(t)
	t.Setenv("SERVICE_PRINCIPAL", "svc-test")
	t.Setenv("HTTP_PORT", "9000")
	t.Setenv("STORE_BACKEND", "golemdb")
	t.Setenv("GOLEMDB_BASE_URL", "http://golemdb.internal:8090")
	t.Setenv("GOLEMDB_API_KEY", "secret")
	t.Setenv("STORE_TIMEOUT", "10s")
	t.Setenv("STORE_RETRY_COUNT", "5")
	t.Setenv("CACHE_ENABLED", "true")
	t.Setenv("CACHE_TTL", "1m")
	t.Setenv("KAFKA_ENABLED", "true")
	t.Setenv("KAFKA_BROKERS", "broker-1:9092, broker-2:9092")
	t.Setenv("LOG_LEVEL", "debug")

	cfg := Load()

	if cfg.Service.Principal != "svc-test" {
		t.Errorf("principal = %s", cfg.Service.Principal)
	}
	if cfg.Service.HTTPPort != "9000" {
		t.Errorf("port = %s", cfg.Service.HTTPPort)
	}
	if cfg.Store.Backend != "golemdb" {
		t.Errorf("backend = %s", cfg.Store.Backend)
	}
	if cfg.Store.BaseURL != "http://golemdb.internal:8090" {
		t.Errorf("baseURL = %s", cfg.Store.BaseURL)
	}
	if cfg.Store.APIKey != "secret" {
		t.Errorf("apiKey = %s", cfg.Store.APIKey)
	}
	if cfg.Store.Timeout != 10*time.Second {
		t.Errorf("timeout = %v", cfg.Store.Timeout)
	}
	if cfg.Store.RetryCount != 5 {
		t.Errorf("retryCount = %d", cfg.Store.RetryCount)
	}
	if !cfg.Cache.Enabled {
		t.Error("expected cache enabled")
	}
	if cfg.Cache.TTL != time.Minute {
		t.Errorf("cache TTL = %v", cfg.Cache.TTL)
	}
	if !cfg.Kafka.Enabled {
		t.Error("expected kafka enabled")
	}
	wantBrokers := []string{"broker-1:9092", "broker-2:9092"}
	if len(cfg.Kafka.Brokers) != len(wantBrokers) {
		t.Fatalf("brokers = %v", cfg.Kafka.Brokers)
	}
	for i, b := range wantBrokers {
		if cfg.Kafka.Brokers[i] != b {
			t.Errorf("broker %d = %s, want %s", i, cfg.Kafka.Brokers[i], b)
		}
	}
	if cfg.Kafka.Principal != "svc-test" {
		t.Errorf("kafka principal = %s", cfg.Kafka.Principal)
	}
	if cfg.Observability.LogLevel != "debug" {
		t.Errorf("logLevel = %s", cfg.Observability.LogLevel)
	}
}

func TestLoad_InvalidValuesFallBack(t *testing.T) {
	clearConfigEnv(t)
	t.Setenv("STORE_TIMEOUT", "soon")
	t.Setenv("STORE_RETRY_COUNT", "many")
	t.Setenv("CACHE_ENABLED", "definitely")

	cfg := Load()

	if cfg.Store.Timeout != 5*time.Second {
		t.Errorf("expected fallback timeout 5s, got %v", cfg.Store.Timeout)
	}
	if cfg.Store.RetryCount != 2 {
		t.Errorf("expected fallback retry count 2, got %d", cfg.Store.RetryCount)
	}
	if cfg.Cache.Enabled {
		t.Error("expected fallback cache disabled")
	}
}
