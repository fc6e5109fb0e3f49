package stats

import (
	"math"
	"testing"
	"time"
)

func TestSnapshotPercentiles(t *testing.T) {
	r := NewRecorder(time.Hour)
	for i := 1; i <= 5; i++ {
		r.Record(Run{Duration: time.Duration(i*100) * time.Millisecond, Chunks: i, Tokens: i * 10})
	}

	snap := r.Snapshot()
	tests := []struct {
		name string
		got  float64
		want float64
	}{
		{"runs", float64(snap.Runs), 5},
		{"total_chunks", float64(snap.TotalChunks), 15},
		{"total_tokens", float64(snap.TotalTokens), 150},
		{"chunks_per_run", snap.ChunksPerRun, 3},
		{"min", snap.MinMs, 100},
		{"max", snap.MaxMs, 500},
		{"avg", snap.AvgMs, 300},
		{"p50", snap.P50Ms, 300},
		{"p95", snap.P95Ms, 480},
		{"p99", snap.P99Ms, 496},
	}
	for _, tt := range tests {
		if math.Abs(tt.got-tt.want) > 1e-9 {
			t.Errorf("%s: expected %v, got %v", tt.name, tt.want, tt.got)
		}
	}
}

func TestSnapshotPrunesExpiredRuns(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	r := NewRecorder(time.Minute)
	r.now = func() time.Time { return now }

	r.Record(Run{Duration: time.Second, Chunks: 1})
	now = now.Add(2 * time.Minute)

	if snap := r.Snapshot(); snap.Runs != 0 {
		t.Fatalf("expected runs=0 after prune, got %d", snap.Runs)
	}

	r.Record(Run{Duration: 200 * time.Millisecond, Chunks: 4})
	snap := r.Snapshot()
	if snap.Runs != 1 || snap.TotalChunks != 4 {
		t.Fatalf("expected one fresh run with 4 chunks, got %+v", snap)
	}
	if snap.MinMs != 200 || snap.MaxMs != 200 {
		t.Fatalf("expected min=max=200, got min=%v max=%v", snap.MinMs, snap.MaxMs)
	}
}

func TestRecordClampsNegativeDuration(t *testing.T) {
	r := NewRecorder(time.Hour)
	r.Record(Run{Duration: -10 * time.Millisecond})
	snap := r.Snapshot()
	if snap.Runs != 1 {
		t.Fatalf("expected runs=1, got %d", snap.Runs)
	}
	if snap.MinMs != 0 || snap.MaxMs != 0 {
		t.Fatalf("expected clamped duration=0, got min=%v max=%v", snap.MinMs, snap.MaxMs)
	}
}

func TestSnapshotEmpty(t *testing.T) {
	if snap := NewRecorder(0).Snapshot(); snap != (Snapshot{}) {
		t.Errorf("expected zero snapshot, got %+v", snap)
	}
}
