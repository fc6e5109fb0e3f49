package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/dgallion1/docsplit/internal/cache"
	"github.com/dgallion1/docsplit/internal/chunker"
	"github.com/dgallion1/docsplit/internal/config"
	"github.com/dgallion1/docsplit/internal/events"
	"github.com/dgallion1/docsplit/internal/indexsink"
	"github.com/nats-io/nats.go"
)

// deps bundles the runtime collaborators built from configuration.
type deps struct {
	Counter   chunker.Counter
	Sink      indexsink.Sink
	Publisher events.Publisher
	Cache     cache.Cache

	closers []func() error
}

func (d *deps) Close() error {
	var errs []error
	for i := len(d.closers) - 1; i >= 0; i-- {
		errs = append(errs, d.closers[i]())
	}
	return errors.Join(errs...)
}

// buildDeps wires optional collaborators. An unset address selects the no-op
// implementation; an unreachable Redis degrades to no caching.
func buildDeps(ctx context.Context, cfg config.Config, log *slog.Logger) (*deps, error) {
	d := &deps{}

	counter, err := chunker.CounterByName(cfg.Tokenizer)
	if err != nil {
		return nil, fmt.Errorf("tokenizer: %w", err)
	}
	d.Counter = counter

	d.Sink = buildSink(cfg, log, d)

	pub, err := buildPublisher(cfg, log, d)
	if err != nil {
		d.Close()
		return nil, err
	}
	d.Publisher = pub

	d.Cache = buildCache(ctx, cfg, log, d)
	return d, nil
}

func buildSink(cfg config.Config, log *slog.Logger, d *deps) indexsink.Sink {
	if cfg.IndexURL == "" {
		log.Warn("INDEX_URL not set; chunks will not be delivered")
		return indexsink.NoopSink{}
	}
	c := indexsink.NewClient(cfg.IndexURL, cfg.IndexAPIKey)
	d.closers = append(d.closers, func() error { c.Close(); return nil })
	log.Info("delivering chunks to index", "url", cfg.IndexURL)
	return c
}

func buildPublisher(cfg config.Config, log *slog.Logger, d *deps) (events.Publisher, error) {
	if cfg.NATSURL == "" {
		log.Info("NATS_URL not set; job events disabled")
		return events.Noop{}, nil
	}
	nc, err := events.Connect(cfg.NATSURL, log)
	if err != nil {
		return nil, err
	}
	d.closers = append(d.closers, func() error { return drain(nc) })
	log.Info("publishing job events", "url", cfg.NATSURL)
	return events.NewNATSPublisher(log, nc), nil
}

func drain(nc *nats.Conn) error {
	if err := nc.Drain(); err != nil {
		nc.Close()
		return err
	}
	return nil
}

func buildCache(ctx context.Context, cfg config.Config, log *slog.Logger, d *deps) cache.Cache {
	if cfg.RedisAddr == "" {
		return cache.NewNoOpCache()
	}
	rc, err := cache.NewRedisCache(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	if err != nil {
		log.Warn("redis unavailable; caching disabled", "addr", cfg.RedisAddr, "error", err)
		return cache.NewNoOpCache()
	}
	d.closers = append(d.closers, rc.Close)
	log.Info("caching chunk results", "addr", cfg.RedisAddr, "ttl", cfg.CacheTTL)
	return rc
}
