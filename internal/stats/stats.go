// Package stats keeps a rolling window of chunking runs for the stats endpoint.
package stats

import (
	"slices"
	"sync"
	"time"
)

// Run describes one chunking run.
type Run struct {
	Duration time.Duration
	Chunks   int
	Tokens   int
}

type sample struct {
	at time.Time
	Run
}

// Snapshot aggregates the runs still inside the window. Latencies are in
// milliseconds.
type Snapshot struct {
	Runs         int     `json:"runs"`
	TotalChunks  int     `json:"total_chunks"`
	TotalTokens  int     `json:"total_tokens"`
	ChunksPerRun float64 `json:"chunks_per_run"`
	MinMs        float64 `json:"min_ms"`
	MaxMs        float64 `json:"max_ms"`
	AvgMs        float64 `json:"avg_ms"`
	P50Ms        float64 `json:"p50_ms"`
	P95Ms        float64 `json:"p95_ms"`
	P99Ms        float64 `json:"p99_ms"`
}

// Recorder is safe for concurrent use by the API handlers and pipeline workers.
type Recorder struct {
	mu      sync.Mutex
	samples []sample
	maxAge  time.Duration
	now     func() time.Time
}

func NewRecorder(maxAge time.Duration) *Recorder {
	if maxAge <= 0 {
		maxAge = time.Hour
	}
	return &Recorder{
		samples: make([]sample, 0, 256),
		maxAge:  maxAge,
		now:     time.Now,
	}
}

func (r *Recorder) Record(run Run) {
	run.Duration = max(run.Duration, 0)

	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	r.pruneLocked(now)
	r.samples = append(r.samples, sample{at: now, Run: run})
}

func (r *Recorder) Snapshot() Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.pruneLocked(r.now())
	if len(r.samples) == 0 {
		return Snapshot{}
	}

	var snap Snapshot
	ms := make([]float64, 0, len(r.samples))
	var sum float64
	for _, s := range r.samples {
		v := float64(s.Duration) / float64(time.Millisecond)
		ms = append(ms, v)
		sum += v
		snap.TotalChunks += s.Chunks
		snap.TotalTokens += s.Tokens
	}
	slices.Sort(ms)

	snap.Runs = len(ms)
	snap.ChunksPerRun = float64(snap.TotalChunks) / float64(snap.Runs)
	snap.MinMs = ms[0]
	snap.MaxMs = ms[len(ms)-1]
	snap.AvgMs = sum / float64(len(ms))
	snap.P50Ms = percentile(ms, 50)
	snap.P95Ms = percentile(ms, 95)
	snap.P99Ms = percentile(ms, 99)
	return snap
}

func (r *Recorder) pruneLocked(now time.Time) {
	cutoff := now.Add(-r.maxAge)
	r.samples = slices.DeleteFunc(r.samples, func(s sample) bool {
		return s.at.Before(cutoff)
	})
}

// percentile interpolates linearly between the two nearest ranks.
func percentile(sorted []float64, pct float64) float64 {
	switch {
	case len(sorted) == 0:
		return 0
	case pct <= 0:
		return sorted[0]
	case pct >= 100:
		return sorted[len(sorted)-1]
	}

	index := float64(len(sorted)-1) * pct / 100
	lower := int(index)
	if lower+1 >= len(sorted) {
		return sorted[lower]
	}
	weight := index - float64(lower)
	return sorted[lower] + (sorted[lower+1]-sorted[lower])*weight
}
