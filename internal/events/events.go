// Package events announces job outcomes to other services.
package events

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/nats-io/nats.go"
)

// SubjectPrefix is followed by the job status, e.g. "docsplit.jobs.completed".
const SubjectPrefix = "docsplit.jobs."

// Event is published once per job when it reaches a terminal status.
type Event struct {
	JobID      string    `json:"job_id"`
	DocID      string    `json:"doc_id"`
	Status     string    `json:"status"`
	Title      string    `json:"title,omitempty"`
	Chunks     int       `json:"chunks"`
	Delivered  int       `json:"delivered"`
	Errors     []string  `json:"errors,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

// Publisher sends events. Implementations must be safe for concurrent use.
type Publisher interface {
	Publish(ctx context.Context, ev Event) error
}

// publishConn is the part of *nats.Conn the publisher needs.
type publishConn interface {
	Publish(subject string, data []byte) error
}

// NATSPublisher publishes events as JSON on SubjectPrefix + status.
type NATSPublisher struct {
	log *slog.Logger
	nc  publishConn
}

func NewNATSPublisher(log *slog.Logger, nc *nats.Conn) *NATSPublisher {
	return &NATSPublisher{log: log, nc: nc}
}

func (p *NATSPublisher) Publish(ctx context.Context, ev Event) error {
	if ev.Status == "" {
		return errors.New("event status required")
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if ev.OccurredAt.IsZero() {
		ev.OccurredAt = time.Now().UTC()
	}
	body, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}
	subject := SubjectPrefix + ev.Status
	if err := p.nc.Publish(subject, body); err != nil {
		return fmt.Errorf("publish %s: %w", subject, err)
	}
	p.log.Debug("event published", "subject", subject, "job_id", ev.JobID)
	return nil
}

// Connect dials NATS with reconnects enabled.
func Connect(url string, log *slog.Logger) (*nats.Conn, error) {
	nc, err := nats.Connect(url,
		nats.Name("docsplit"),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(2*time.Second),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			if err != nil {
				log.Warn("nats disconnected", "error", err)
			}
		}),
		nats.ReconnectHandler(func(c *nats.Conn) {
			log.Info("nats reconnected", "url", c.ConnectedUrl())
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("connect nats: %w", err)
	}
	return nc, nil
}

// Noop drops every event. Used when NATS is not configured.
type Noop struct{}

func (Noop) Publish(context.Context, Event) error { return nil }
