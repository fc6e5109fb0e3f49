package main

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dgallion1/docsplit/internal/api"
	"github.com/dgallion1/docsplit/internal/config"
	"github.com/dgallion1/docsplit/internal/logger"
	"github.com/dgallion1/docsplit/internal/pipeline"
	"github.com/dgallion1/docsplit/internal/stats"
	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"
)

func main() {
	// A missing .env is fine; the environment may already be set.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		slog.Default().Error("failed to load .env", "error", err)
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Default().Error("failed to load configuration", "error", err)
		os.Exit(1)
	}
	log := logger.New(cfg.LogLevel)
	if err := cfg.Validate(); err != nil {
		log.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	deps, err := buildDeps(ctx, cfg, log)
	if err != nil {
		log.Error("failed to build dependencies", "error", err)
		os.Exit(1)
	}
	defer deps.Close()

	rec := stats.NewRecorder(time.Hour)

	// Initialize pipeline.
	orch := pipeline.NewOrchestrator(cfg, deps.Counter, deps.Sink, deps.Publisher, rec, log)
	orch.Start(ctx)

	// Initialize HTTP server.
	srv := api.NewServer(orch, deps.Cache, rec, log, cfg)
	httpServer := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      srv,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("starting docsplit", "port", cfg.Port, "tokenizer", cfg.Tokenizer, "window_size", cfg.DefaultWindowSize)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutting down...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		err := httpServer.Shutdown(shutdownCtx)
		orch.Stop()
		return err
	})

	if err := g.Wait(); err != nil {
		log.Error("server error", "error", err)
		os.Exit(1)
	}
}
