package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/dgallion1/docsplit/internal/chunker"
	"github.com/dgallion1/docsplit/internal/doctree"
	"github.com/dgallion1/docsplit/internal/events"
	"github.com/dgallion1/docsplit/internal/indexsink"
	"github.com/dgallion1/docsplit/internal/markup"
	"github.com/dgallion1/docsplit/internal/parser"
	"github.com/dgallion1/docsplit/internal/stats"
	"golang.org/x/sync/errgroup"
)

// Worker processes a single document job.
type Worker struct {
	sink      indexsink.Sink
	publisher events.Publisher
	stats     *stats.Recorder
	log       *slog.Logger
	chunkCfg  chunker.Config

	maxConcurrentDeliver int
	batchSize            int

	backoff func(attempt int) time.Duration
}

func NewWorker(sink indexsink.Sink, pub events.Publisher, rec *stats.Recorder, log *slog.Logger, chunkCfg chunker.Config, maxDeliver, batchSize int) *Worker {
	return &Worker{
		sink:                 sink,
		publisher:            pub,
		stats:                rec,
		log:                  log,
		chunkCfg:             chunkCfg,
		maxConcurrentDeliver: max(maxDeliver, 1),
		batchSize:            max(batchSize, 1),
		backoff:              Backoff,
	}
}

// Process runs the full ingest pipeline for a job and publishes its outcome.
func (w *Worker) Process(ctx context.Context, job *Job) {
	log := w.log.With("job_id", job.ID, "doc_id", job.DocID)
	w.run(ctx, job, log)

	snap := job.Snapshot()
	ev := events.Event{
		JobID:     snap.ID,
		DocID:     snap.DocID,
		Status:    string(snap.Status),
		Title:     snap.Title,
		Chunks:    snap.Progress.TotalChunks,
		Delivered: snap.Progress.ChunksDelivered,
		Errors:    snap.Progress.Errors,
	}
	if err := w.publisher.Publish(ctx, ev); err != nil {
		log.Warn("publish event failed", "error", err)
	}
}

func (w *Worker) run(ctx context.Context, job *Job, log *slog.Logger) {
	// Phase 1: Parse
	job.SetStatus(StatusParsing, "parsing")
	p, err := parser.ForFile(job.Filename)
	if err != nil {
		log.Error("unsupported format", "error", err)
		job.AddError(err.Error())
		job.SetStatus(StatusFailed, "parsing")
		return
	}

	doc, err := p.Parse(bytes.NewReader(job.FileData()), job.Filename)
	if err != nil {
		log.Error("parse failed", "error", err)
		job.AddError(fmt.Sprintf("parse: %s", err))
		job.SetStatus(StatusFailed, "parsing")
		return
	}
	job.releaseFileData()
	if job.Title != "" {
		doc.Title = job.Title
	}
	job.SetTitle(doc.Title)
	job.SetContentHash(ContentHashHex([]byte(doc.Markdown)))

	// Phase 2: Chunk
	job.SetStatus(StatusChunking, "chunking")
	cfg := w.chunkCfg
	if job.WindowSize > 0 {
		cfg.WindowSize = job.WindowSize
	}
	cfg.Extra = map[string]string{"doc_id": job.DocID, "title": doc.Title}

	start := time.Now()
	chunks, err := chunker.RunDocument(doc, cfg)
	if err != nil {
		log.Error("chunking failed", "error", err)
		job.AddError(fmt.Sprintf("chunk: %s", err))
		job.SetStatus(StatusFailed, "chunking")
		return
	}
	w.recordRun(time.Since(start), chunks)
	markTableSections(doc.Markdown, chunks)
	job.SetChunks(chunks)
	log.Info("chunked document", "chunks", len(chunks), "pages", len(doc.PageMap))

	if len(chunks) == 0 {
		log.Warn("no chunks produced")
		job.SetStatus(StatusCompleted, "done")
		return
	}

	// Phase 3: Deliver batches with bounded concurrency.
	job.SetStatus(StatusDelivering, "delivering")
	var g errgroup.Group
	g.SetLimit(w.maxConcurrentDeliver)
	for first := 0; first < len(chunks); first += w.batchSize {
		batch := chunks[first:min(first+w.batchSize, len(chunks))]
		records := indexsink.Records(job.DocID, first, batch)
		g.Go(func() error {
			if err := w.deliver(ctx, job.DocID, records, log); err != nil {
				log.Error("delivery failed", "first_chunk", first, "error", err)
				job.AddError(fmt.Sprintf("chunks %d-%d: %s", first, first+len(records)-1, err))
				job.AddFailedBatch()
				return nil
			}
			job.AddDelivered(len(records))
			return nil
		})
	}
	g.Wait()

	snap := job.Snapshot()
	delivered := snap.Progress.ChunksDelivered
	log.Info("delivery complete", "delivered", delivered, "total", len(chunks))

	switch {
	case delivered == len(chunks):
		job.SetStatus(StatusCompleted, "done")
	case delivered > 0:
		job.SetStatus(StatusPartial, "done")
	default:
		job.SetStatus(StatusFailed, "delivering")
	}
}

// deliver sends one batch, retrying retryable failures with backoff.
func (w *Worker) deliver(ctx context.Context, docID string, records []indexsink.Record, log *slog.Logger) error {
	var lastErr error
	for attempt := range MaxRetries {
		lastErr = w.sink.PutChunks(ctx, docID, records)
		if lastErr == nil || !IsRetryable(lastErr) {
			return lastErr
		}
		log.Warn("retryable delivery error", "attempt", attempt, "error", lastErr)
		if attempt == MaxRetries-1 {
			break
		}
		select {
		case <-time.After(w.backoff(attempt)):
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return lastErr
}

func (w *Worker) recordRun(d time.Duration, chunks []doctree.Chunk) {
	if w.stats == nil {
		return
	}
	tokens := 0
	for _, c := range chunks {
		tokens += c.Metadata.TokenCount
	}
	w.stats.Record(stats.Run{Duration: d, Chunks: len(chunks), Tokens: tokens})
}

// markTableSections sets Extra["has_table"] on chunks whose section overlaps
// an inline <table> element.
func markTableSections(markdown string, chunks []doctree.Chunk) {
	tables := markup.Tables(markdown)
	if len(tables) == 0 {
		return
	}
	for i := range chunks {
		md := &chunks[i].Metadata
		for _, t := range tables {
			if t.StartOffset < md.SectionEndOffset && t.EndOffset > md.SectionStartOffset {
				if md.Extra == nil {
					md.Extra = map[string]string{}
				}
				md.Extra["has_table"] = "true"
				break
			}
		}
	}
}
