package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/dgallion1/docsplit/internal/cache"
	"github.com/dgallion1/docsplit/internal/chunker"
	"github.com/dgallion1/docsplit/internal/doctree"
	"github.com/dgallion1/docsplit/internal/stats"
)

type chunkRequest struct {
	Markdown          string                 `json:"markdown"`
	PageMap           []doctree.PageMapEntry `json:"page_map" validate:"dive"`
	WindowSize        *int                   `json:"window_size"`
	CodeAwareHeadings *bool                  `json:"code_aware_headings"`
}

type chunkResponse struct {
	Chunks []doctree.Chunk `json:"chunks"`
	Count  int             `json:"count"`
	Cached bool            `json:"cached"`
}

// handleChunk chunks a markdown document synchronously.
func (s *Server) handleChunk(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes)

	var req chunkRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			jsonError(w, "request body too large", http.StatusRequestEntityTooLarge)
			return
		}
		jsonError(w, "invalid json: "+err.Error(), http.StatusBadRequest)
		return
	}
	if err := s.validate.Struct(req); err != nil {
		jsonError(w, validationMessage(err), http.StatusBadRequest)
		return
	}

	cfg := s.orchestrator.ChunkConfig()
	if req.WindowSize != nil {
		cfg.WindowSize = *req.WindowSize
	}
	if req.CodeAwareHeadings != nil {
		cfg.CodeAwareHeadings = *req.CodeAwareHeadings
	}
	if err := cfg.Validate(); err != nil {
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}

	ctx := r.Context()
	key := cache.Key(cache.KeyInput{
		Markdown:          req.Markdown,
		PageMap:           req.PageMap,
		WindowSize:        cfg.WindowSize,
		CodeAwareHeadings: cfg.CodeAwareHeadings,
		Tokenizer:         s.cfg.Tokenizer,
	})
	cached, err := s.cache.Get(ctx, key)
	if err != nil {
		s.log.Warn("cache get failed", "error", err)
	}
	if cached != nil {
		writeJSON(w, http.StatusOK, chunkResponse{Chunks: cached, Count: len(cached), Cached: true})
		return
	}

	start := time.Now()
	chunks, err := chunker.Run(req.Markdown, req.PageMap, cfg)
	if err != nil {
		if errors.Is(err, chunker.ErrInvalidConfiguration) {
			jsonError(w, err.Error(), http.StatusBadRequest)
			return
		}
		s.log.Error("chunking failed", "error", err)
		jsonError(w, "chunking failed", http.StatusInternalServerError)
		return
	}
	if chunks == nil {
		chunks = []doctree.Chunk{}
	}
	s.recordRun(time.Since(start), chunks)

	if err := s.cache.Set(ctx, key, chunks, s.cfg.CacheTTL); err != nil {
		s.log.Warn("cache set failed", "error", err)
	}
	writeJSON(w, http.StatusOK, chunkResponse{Chunks: chunks, Count: len(chunks)})
}

func (s *Server) recordRun(d time.Duration, chunks []doctree.Chunk) {
	tokens := 0
	for _, c := range chunks {
		tokens += c.Metadata.TokenCount
	}
	s.stats.Record(stats.Run{Duration: d, Chunks: len(chunks), Tokens: tokens})
}
