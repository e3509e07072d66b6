package natsadapter

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/nats-io/nats.go"

	"github.com/samirrijal/standortcheck/internal/core/domain"
)

// Sink implements ports.DiagnosticSink using NATS JetStream. Every upstream
// degradation is published as one event so operators can replay the recent
// window after the fact.
type Sink struct {
	conn *nats.Conn
	js   nats.JetStreamContext
}

// NewSink connects to NATS, enables JetStream, and ensures the diagnostics
// stream exists.
func NewSink(url string) (*Sink, error) {
	conn, err := nats.Connect(url,
		nats.RetryOnFailedConnect(true),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(2*time.Second),
	)
	if err != nil {
		return nil, fmt.Errorf("nats connect: %w", err)
	}

	js, err := conn.JetStream()
	if err != nil {
		return nil, fmt.Errorf("jetstream: %w", err)
	}

	cfg := nats.StreamConfig{
		Name:      "DIAGNOSTICS",
		Subjects:  []string{"standortcheck.upstream.>"},
		Retention: nats.LimitsPolicy,
		MaxAge:    24 * time.Hour,
		Storage:   nats.FileStorage,
	}
	if _, err := js.AddStream(&cfg); err != nil {
		// Stream may already exist — try update
		if _, err := js.UpdateStream(&cfg); err != nil {
			return nil, fmt.Errorf("ensure stream %s: %w", cfg.Name, err)
		}
	}

	return &Sink{conn: conn, js: js}, nil
}

// PublishUpstreamEvent publishes one degradation event, keyed by dataset.
func (s *Sink) PublishUpstreamEvent(ctx context.Context, ev domain.UpstreamEvent) error {
	data, err := json.Marshal(ev)
	if err != nil {
		return err
	}
	_, err = s.js.Publish("standortcheck.upstream."+SubjectToken(ev.Dataset), data)
	return err
}

// Close drains and closes the connection.
func (s *Sink) Close() {
	_ = s.conn.Drain()
}

// SubjectToken maps a dataset name onto a single NATS subject token.
// Dataset names carry dots and may carry spaces; both are token separators
// or illegal in subjects.
func SubjectToken(dataset string) string {
	r := strings.NewReplacer(".", "_", " ", "_", "*", "_", ">", "_")
	return r.Replace(dataset)
}

// RawConn creates a plain NATS connection for subscribing (e.g. WebSocket relay).
func RawConn(url string) (*nats.Conn, error) {
	return nats.Connect(url,
		nats.RetryOnFailedConnect(true),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(2*time.Second),
	)
}
