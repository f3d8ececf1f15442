// Package events provides event publishing functionality.
package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/segmentio/kafka-go"

	"transcription-record-service/internal/observability/metrics"
)

// Publisher publishes record lifecycle events to separate Kafka topics.
// Publishing is best effort: the record store is the source of truth, so a
// failed publish is logged and counted but never fails the originating
// request.
type Publisher struct {
	writerCreated    *kafka.Writer
	writerAttachment *kafka.Writer
	principal        string
	topicCreated     string
	topicAttachment  string
	enabled          bool
	metrics          *metrics.Metrics
}

// Config holds Kafka publisher configuration.
type Config struct {
	Brokers         []string
	TopicCreated    string
	TopicAttachment string
	Principal       string
	Enabled         bool
}

// New creates a Kafka event publisher with separate topics for record
// creation and attachment events.
func New(cfg *Config) *Publisher {
	m := metrics.DefaultMetrics

	if cfg == nil {
		log.Info().Msg("Kafka disabled (nil config), using log-only mode")
		return &Publisher{
			enabled: false,
			metrics: m,
		}
	}

	if !cfg.Enabled || len(cfg.Brokers) == 0 {
		log.Info().Msg("Kafka disabled, using log-only mode")
		return &Publisher{
			principal:       cfg.Principal,
			topicCreated:    cfg.TopicCreated,
			topicAttachment: cfg.TopicAttachment,
			enabled:         false,
			metrics:         m,
		}
	}

	// Longer dial timeout for DNS resolution in Kubernetes
	dialer := &kafka.Dialer{
		Timeout:   10 * time.Second,
		DualStack: true,
	}

	transport := &kafka.Transport{
		Dial: dialer.DialFunc,
	}

	writerCreated := &kafka.Writer{
		Addr:         kafka.TCP(cfg.Brokers...),
		Topic:        cfg.TopicCreated,
		Balancer:     &kafka.LeastBytes{},
		BatchTimeout: 10 * time.Millisecond,
		WriteTimeout: 10 * time.Second,
		RequiredAcks: kafka.RequireOne,
		Transport:    transport,
	}

	writerAttachment := &kafka.Writer{
		Addr:         kafka.TCP(cfg.Brokers...),
		Topic:        cfg.TopicAttachment,
		Balancer:     &kafka.LeastBytes{},
		BatchTimeout: 10 * time.Millisecond,
		WriteTimeout: 10 * time.Second,
		RequiredAcks: kafka.RequireOne,
		Transport:    transport,
	}

	log.Info().
		Strs("brokers", cfg.Brokers).
		Str("topicCreated", cfg.TopicCreated).
		Str("topicAttachment", cfg.TopicAttachment).
		Str("principal", cfg.Principal).
		Msg("Kafka publisher initialized")

	return &Publisher{
		writerCreated:    writerCreated,
		writerAttachment: writerAttachment,
		principal:        cfg.Principal,
		topicCreated:     cfg.TopicCreated,
		topicAttachment:  cfg.TopicAttachment,
		enabled:          true,
		metrics:          m,
	}
}

// PublishRecordCreated publishes a record-created event, keyed by callId.
func (p *Publisher) PublishRecordCreated(ctx context.Context, key string, event any) error {
	return p.publish(ctx, p.writerCreated, p.topicCreated, "created", key, event)
}

// PublishAttachment publishes a record-attachment event, keyed by callId.
func (p *Publisher) PublishAttachment(ctx context.Context, key string, event any) error {
	return p.publish(ctx, p.writerAttachment, p.topicAttachment, "attachment", key, event)
}

// publish is the internal method that writes to a specific Kafka writer.
func (p *Publisher) publish(ctx context.Context, writer *kafka.Writer, topic, eventType, key string, event any) error {
	start := time.Now()

	payload, err := json.Marshal(event)
	if err != nil {
		log.Error().Err(err).Str("topic", topic).Msg("Failed to marshal event")
		return err
	}

	log.Debug().
		Str("principal", p.principal).
		Str("topic", topic).
		Str("key", key).
		RawJSON("payload", payload).
		Msg("Publishing event")

	// If Kafka is disabled, just log
	if !p.enabled || writer == nil {
		p.metrics.RecordKafkaPublish(topic, eventType, nil, time.Since(start).Seconds())
		return nil
	}

	msg := kafka.Message{
		Key:   []byte(key),
		Value: payload,
		Headers: []kafka.Header{
			{Key: "eventId", Value: []byte(uuid.NewString())},
			{Key: "eventType", Value: []byte(topic)},
			{Key: "principal", Value: []byte(p.principal)},
		},
	}

	if err := writer.WriteMessages(ctx, msg); err != nil {
		log.Error().
			Err(err).
			Str("topic", topic).
			Str("key", key).
			Msg("Failed to write to Kafka")
		p.metrics.RecordKafkaPublish(topic, eventType, err, time.Since(start).Seconds())
		return err
	}

	p.metrics.RecordKafkaPublish(topic, eventType, nil, time.Since(start).Seconds())
	return nil
}

// Close closes both Kafka writers.
func (p *Publisher) Close() error {
	var err error
	if p.writerCreated != nil {
		if e := p.writerCreated.Close(); e != nil {
			log.Error().Err(e).Msg("Error closing created-events writer")
			err = e
		}
	}
	if p.writerAttachment != nil {
		if e := p.writerAttachment.Close(); e != nil {
			log.Error().Err(e).Msg("Error closing attachment-events writer")
			err = e
		}
	}
	return err
}
