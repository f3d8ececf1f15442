// Package app wires the service components together.
package app

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"transcription-record-service/internal/config"
	"transcription-record-service/internal/events"
	"transcription-record-service/internal/observability/logging"
	"transcription-record-service/internal/service/records"
	"transcription-record-service/internal/store"
)

// Application holds process-wide state for the service. Components are
// constructed explicitly and passed down; nothing initializes itself
// through package-level globals.
type Application struct {
	StartupTime time.Time
	Logger      zerolog.Logger
	Cfg         *config.Config
	Store       store.Store
	Publisher   *events.Publisher
	Records     *records.Service
}

// New constructs the Application from the provided configuration.
func New(cfg *config.Config) (*Application, error) {
	logger := logging.WithComponent("application")

	st, err := newStore(cfg.Store)
	if err != nil {
		return nil, err
	}
	if cfg.Cache.Enabled {
		st = store.NewCached(st, cfg.Cache.TTL)
		logger.Info().Dur("ttl", cfg.Cache.TTL).Msg("Record cache enabled")
	}

	publisher := events.New(&events.Config{
		Enabled:         cfg.Kafka.Enabled,
		Brokers:         cfg.Kafka.Brokers,
		TopicCreated:    cfg.Kafka.TopicCreated,
		TopicAttachment: cfg.Kafka.TopicAttachment,
		Principal:       cfg.Kafka.Principal,
	})

	a := &Application{
		Logger:    logger,
		Cfg:       cfg,
		Store:     st,
		Publisher: publisher,
		Records:   records.New(st, publisher),
	}

	logger.Info().
		Str("storeBackend", cfg.Store.Backend).
		Msg("Transcription record service application created")
	return a, nil
}

func newStore(cfg config.StoreConfig) (store.Store, error) {
	switch cfg.Backend {
	case "golemdb":
		return store.NewGolemDB(store.GolemDBConfig{
			BaseURL:    cfg.BaseURL,
			APIKey:     cfg.APIKey,
			Timeout:    cfg.Timeout,
			RetryCount: cfg.RetryCount,
			RetryWait:  cfg.RetryWait,
		}), nil
	case "memory":
		return store.NewMemory(), nil
	default:
		return nil, fmt.Errorf("unknown store backend %q", cfg.Backend)
	}
}

// Start performs startup work required before serving traffic.
func (a *Application) Start() error {
	a.StartupTime = time.Now().UTC()
	a.Logger.Info().
		Time("startupTime", a.StartupTime).
		Msg("Transcription record service starting")
	return nil
}

// Ready reports whether the record store backend is reachable.
func (a *Application) Ready() bool {
	p, ok := a.Store.(store.Pinger)
	if !ok {
		return true
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	return p.Ping(ctx) == nil
}

// Shutdown performs a best-effort cleanup before process exit.
func (a *Application) Shutdown() {
	a.Logger.Info().Msg("Transcription record service shutting down")
	if err := a.Publisher.Close(); err != nil {
		a.Logger.Error().Err(err).Msg("Error closing event publisher")
	}
}
