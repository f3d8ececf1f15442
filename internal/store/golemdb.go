package store

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog/log"

	"transcription-record-service/internal/models"
	"transcription-record-service/internal/observability/metrics"
)

// GolemDBConfig holds connection settings for the entity store gateway.
type GolemDBConfig struct {
	BaseURL    string
	APIKey     string
	Timeout    time.Duration
	RetryCount int
	RetryWait  time.Duration
}

// GolemDB talks to the decentralized entity store over its HTTP gateway.
// Records are stored as entities keyed by callId, with participantId as an
// annotation the gateway can query on.
//
// The adapter owns the retry policy for transient connectivity failures;
// business validation stays with the caller. Every call carries the
// configured timeout, and timeouts surface as ErrUnavailable.
type GolemDB struct {
	client  *resty.Client
	metrics *metrics.Metrics
}

// gatewayError is the gateway's error envelope.
type gatewayError struct {
	Error string `json:"error"`
}

// entityList is the gateway's query response envelope.
type entityList struct {
	Entities []models.TranscriptionRecord `json:"entities"`
}

// NewGolemDB creates a gateway-backed store.
func NewGolemDB(cfg GolemDBConfig) *GolemDB {
	client := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetTimeout(cfg.Timeout).
		SetRetryCount(cfg.RetryCount).
		SetRetryWaitTime(cfg.RetryWait).
		SetRetryMaxWaitTime(10 * cfg.RetryWait).
		AddRetryCondition(func(r *resty.Response, err error) bool {
			if err != nil {
				return true
			}
			return r.StatusCode() >= http.StatusInternalServerError ||
				r.StatusCode() == http.StatusTooManyRequests
		})

	if cfg.APIKey != "" {
		client.SetHeader("Authorization", "Bearer "+cfg.APIKey)
	}

	log.Info().
		Str("baseURL", cfg.BaseURL).
		Dur("timeout", cfg.Timeout).
		Int("retryCount", cfg.RetryCount).
		Msg("GolemDB store adapter initialized")

	return &GolemDB{
		client:  client,
		metrics: metrics.DefaultMetrics,
	}
}

// Put inserts a new record entity. The gateway answers 409 when the
// callId is already present.
func (g *GolemDB) Put(ctx context.Context, record models.TranscriptionRecord) error {
	start := time.Now()
	resp, err := g.client.R().
		SetContext(ctx).
		SetBody(record).
		Post("/v1/entities")
	err = g.result("put", resp, err, map[int]error{
		http.StatusConflict: ErrDuplicateKey,
	})
	g.metrics.RecordStoreOp("put", err, time.Since(start).Seconds())
	return err
}

// Get fetches the record entity for callId.
func (g *GolemDB) Get(ctx context.Context, callID string) (models.TranscriptionRecord, error) {
	start := time.Now()
	var record models.TranscriptionRecord
	resp, err := g.client.R().
		SetContext(ctx).
		SetResult(&record).
		Get("/v1/entities/" + callID)
	err = g.result("get", resp, err, map[int]error{
		http.StatusNotFound: ErrNotFound,
	})
	g.metrics.RecordStoreOp("get", err, time.Since(start).Seconds())
	if err != nil {
		return models.TranscriptionRecord{}, err
	}
	return record, nil
}

// Patch applies a field-level update of s3Url to an existing entity. The
// gateway's PATCH is a native partial update, so concurrently written
// fields are never clobbered here.
func (g *GolemDB) Patch(ctx context.Context, callID, s3URL string) error {
	start := time.Now()
	resp, err := g.client.R().
		SetContext(ctx).
		SetBody(map[string]string{"s3Url": s3URL}).
		Patch("/v1/entities/" + callID)
	err = g.result("patch", resp, err, map[int]error{
		http.StatusNotFound: ErrNotFound,
	})
	g.metrics.RecordStoreOp("patch", err, time.Since(start).Seconds())
	return err
}

// ListAll queries every record entity.
func (g *GolemDB) ListAll(ctx context.Context) ([]models.TranscriptionRecord, error) {
	return g.list(ctx, "")
}

// ListByParticipant queries record entities by the participantId annotation.
func (g *GolemDB) ListByParticipant(ctx context.Context, participantID string) ([]models.TranscriptionRecord, error) {
	return g.list(ctx, participantID)
}

func (g *GolemDB) list(ctx context.Context, participantID string) ([]models.TranscriptionRecord, error) {
	start := time.Now()
	req := g.client.R().SetContext(ctx)
	if participantID != "" {
		req.SetQueryParam("participantId", participantID)
	}
	var result entityList
	resp, err := req.SetResult(&result).Get("/v1/entities")
	err = g.result("list", resp, err, nil)
	g.metrics.RecordStoreOp("list", err, time.Since(start).Seconds())
	if err != nil {
		return nil, err
	}

	records := result.Entities
	if records == nil {
		records = []models.TranscriptionRecord{}
	}
	// The gateway does not promise an order; enforce the contract locally.
	sortRecords(records)
	return records, nil
}

// Ping checks gateway connectivity for the readiness probe.
func (g *GolemDB) Ping(ctx context.Context) error {
	resp, err := g.client.R().SetContext(ctx).Get("/v1/health")
	return g.result("ping", resp, err, nil)
}

// result maps a gateway response to a typed store error. statusErrs maps
// specific status codes to sentinel errors; transport failures and 5xx/429
// responses become ErrUnavailable.
func (g *GolemDB) result(op string, resp *resty.Response, err error, statusErrs map[int]error) error {
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrUnavailable, op, err)
	}
	if resp.IsSuccess() {
		return nil
	}
	if mapped, ok := statusErrs[resp.StatusCode()]; ok {
		return mapped
	}
	if resp.StatusCode() >= http.StatusInternalServerError ||
		resp.StatusCode() == http.StatusTooManyRequests {
		return fmt.Errorf("%w: %s: gateway returned %d", ErrUnavailable, op, resp.StatusCode())
	}
	return fmt.Errorf("%s: unexpected gateway status %d: %s", op, resp.StatusCode(), gatewayMessage(resp))
}

func gatewayMessage(resp *resty.Response) string {
	var ge gatewayError
	if resp == nil {
		return ""
	}
	body := resp.Body()
	if len(body) == 0 {
		return ""
	}
	if err := json.Unmarshal(body, &ge); err == nil && ge.Error != "" {
		return ge.Error
	}
	return string(body)
}
