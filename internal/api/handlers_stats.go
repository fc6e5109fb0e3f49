package api

import (
	"net/http"
)

func (s *Server) handleChunkingStats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"tokenizer":   s.cfg.Tokenizer,
		"window_size": s.cfg.DefaultWindowSize,
		"queue_depth": s.orchestrator.QueueDepth(),
		"stats":       s.stats.Snapshot(),
	})
}
