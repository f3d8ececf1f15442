// Package config loads service configuration from the environment.
package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config is the root configuration for the service.
type Config struct {
	Service       ServiceConfig
	Store         StoreConfig
	Cache         CacheConfig
	Kafka         KafkaConfig
	Observability ObservabilityConfig
}

// ServiceConfig holds identity and listener settings.
type ServiceConfig struct {
	Principal string
	HTTPPort  string
}

// StoreConfig holds record store settings. Backend selects the
// implementation: "golemdb" for the remote entity store gateway, "memory"
// for local development.
type StoreConfig struct {
	Backend    string
	BaseURL    string
	APIKey     string
	Timeout    time.Duration
	RetryCount int
	RetryWait  time.Duration
}

// CacheConfig controls the optional read-through record cache.
type CacheConfig struct {
	Enabled bool
	TTL     time.Duration
}

// KafkaConfig holds event publishing settings.
type KafkaConfig struct {
	Enabled         bool
	Brokers         []string
	TopicCreated    string
	TopicAttachment string
	Principal       string
}

// ObservabilityConfig holds logging and metrics settings.
type ObservabilityConfig struct {
	LogLevel    string
	LogFormat   string
	MetricsAddr string
}

// Load reads configuration from the environment, applying defaults.
func Load() *Config {
	principal := envOrDefault("SERVICE_PRINCIPAL", "svc-transcription-records")
	return &Config{
		Service: ServiceConfig{
			Principal: principal,
			HTTPPort:  envOrDefault("HTTP_PORT", "8080"),
		},
		Store: StoreConfig{
			Backend:    envOrDefault("STORE_BACKEND", "memory"),
			BaseURL:    envOrDefault("GOLEMDB_BASE_URL", "http://localhost:8090"),
			APIKey:     os.Getenv("GOLEMDB_API_KEY"),
			Timeout:    envDuration("STORE_TIMEOUT", 5*time.Second),
			RetryCount: envInt("STORE_RETRY_COUNT", 2),
			RetryWait:  envDuration("STORE_RETRY_WAIT", 200*time.Millisecond),
		},
		Cache: CacheConfig{
			Enabled: envBool("CACHE_ENABLED", false),
			TTL:     envDuration("CACHE_TTL", 30*time.Second),
		},
		Kafka: KafkaConfig{
			Enabled:         envBool("KAFKA_ENABLED", false),
			Brokers:         envList("KAFKA_BROKERS"),
			TopicCreated:    envOrDefault("KAFKA_TOPIC_CREATED", "transcription.record.created"),
			TopicAttachment: envOrDefault("KAFKA_TOPIC_ATTACHMENT", "transcription.record.attachment"),
			Principal:       principal,
		},
		Observability: ObservabilityConfig{
			LogLevel:    envOrDefault("LOG_LEVEL", "info"),
			LogFormat:   envOrDefault("LOG_FORMAT", "json"),
			MetricsAddr: envOrDefault("METRICS_ADDR", ":9090"),
		},
	}
}

func envOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func envBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return def
}

func envDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}

func envList(key string) []string {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
