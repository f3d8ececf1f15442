// Package metrics provides Prometheus metrics for observability.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "transcription_records"

// Metrics holds all Prometheus metrics for the service.
type Metrics struct {
	// Ingestion metrics
	RecordsCreated   prometheus.Counter
	IngestDuplicates prometheus.Counter
	InvalidPayloads  *prometheus.CounterVec

	// Attachment metrics
	AttachmentsPatched  prometheus.Counter
	AttachmentsOrphaned prometheus.Counter

	// Query metrics
	QueriesTotal *prometheus.CounterVec

	// Store metrics
	StoreOpsTotal  *prometheus.CounterVec
	StoreOpErrors  *prometheus.CounterVec
	StoreOpLatency *prometheus.HistogramVec

	// Kafka publish metrics
	KafkaPublishTotal   *prometheus.CounterVec
	KafkaPublishErrors  *prometheus.CounterVec
	KafkaPublishLatency *prometheus.HistogramVec

	// HTTP metrics
	HTTPRequestDuration *prometheus.HistogramVec
}

// DefaultMetrics is the global metrics instance.
var DefaultMetrics = NewMetrics()

// NewMetrics creates and registers all Prometheus metrics.
func NewMetrics() *Metrics {
	return &Metrics{
		// Ingestion metrics
		RecordsCreated: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "records_created_total",
			Help:      "Total number of transcription records created",
		}),
		IngestDuplicates: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "ingest_duplicates_total",
			Help:      "Total number of ingestion events rejected as duplicate callIds",
		}),
		InvalidPayloads: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "invalid_payloads_total",
			Help:      "Total number of payloads rejected by boundary validation",
		}, []string{"event"}),

		// Attachment metrics
		AttachmentsPatched: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "attachments_patched_total",
			Help:      "Total number of records patched with an object reference",
		}),
		AttachmentsOrphaned: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "attachments_orphaned_total",
			Help:      "Total number of attachment events for unknown callIds",
		}),

		// Query metrics
		QueriesTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "queries_total",
			Help:      "Total number of record queries served",
		}, []string{"scope"}),

		// Store metrics
		StoreOpsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "store_ops_total",
			Help:      "Total number of record store operations",
		}, []string{"op"}),
		StoreOpErrors: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "store_op_errors_total",
			Help:      "Total number of failed record store operations",
		}, []string{"op"}),
		StoreOpLatency: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "store_op_latency_seconds",
			Help:      "Record store operation latency in seconds",
			Buckets:   []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		}, []string{"op"}),

		// Kafka publish metrics
		KafkaPublishTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "kafka_publish_total",
			Help:      "Total number of Kafka messages published",
		}, []string{"topic", "event_type"}),
		KafkaPublishErrors: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "kafka_publish_errors_total",
			Help:      "Total number of Kafka publish errors",
		}, []string{"topic", "event_type"}),
		KafkaPublishLatency: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "kafka_publish_latency_seconds",
			Help:      "Kafka publish latency in seconds",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}, []string{"topic"}),

		// HTTP metrics
		HTTPRequestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		}, []string{"method", "route", "status"}),
	}
}

// RecordRecordCreated records a successful ingestion.
func (m *Metrics) RecordRecordCreated() {
	m.RecordsCreated.Inc()
}

// RecordDuplicateIngest records an ingestion rejected as a duplicate.
func (m *Metrics) RecordDuplicateIngest() {
	m.IngestDuplicates.Inc()
}

// RecordInvalidPayload records a payload rejected at the boundary.
func (m *Metrics) RecordInvalidPayload(event string) {
	m.InvalidPayloads.WithLabelValues(event).Inc()
}

// RecordAttachmentPatched records a successful attachment patch.
func (m *Metrics) RecordAttachmentPatched() {
	m.AttachmentsPatched.Inc()
}

// RecordOrphanAttachment records an attachment event for an unknown callId.
func (m *Metrics) RecordOrphanAttachment() {
	m.AttachmentsOrphaned.Inc()
}

// RecordQuery records a query served, scoped "all" or "participant".
func (m *Metrics) RecordQuery(scope string) {
	m.QueriesTotal.WithLabelValues(scope).Inc()
}

// RecordStoreOp records a store operation attempt.
func (m *Metrics) RecordStoreOp(op string, err error, latencySeconds float64) {
	m.StoreOpsTotal.WithLabelValues(op).Inc()
	m.StoreOpLatency.WithLabelValues(op).Observe(latencySeconds)
	if err != nil {
		m.StoreOpErrors.WithLabelValues(op).Inc()
	}
}

// RecordKafkaPublish records a Kafka publish attempt.
func (m *Metrics) RecordKafkaPublish(topic, eventType string, err error, latencySeconds float64) {
	m.KafkaPublishTotal.WithLabelValues(topic, eventType).Inc()
	m.KafkaPublishLatency.WithLabelValues(topic).Observe(latencySeconds)
	if err != nil {
		m.KafkaPublishErrors.WithLabelValues(topic, eventType).Inc()
	}
}

// RecordHTTPRequest records a completed HTTP request.
func (m *Metrics) RecordHTTPRequest(method, route, status string, durationSeconds float64) {
	m.HTTPRequestDuration.WithLabelValues(method, route, status).Observe(durationSeconds)
}
