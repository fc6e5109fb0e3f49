package chunker

import (
	"errors"
	"strings"
	"testing"

	"github.com/dgallion1/docsplit/internal/doctree"
)

func TestSplit_ChunkCountIsCeil(t *testing.T) {
	tests := []struct {
		words, window, want int
	}{
		{0, 5, 0},
		{1, 5, 1},
		{5, 5, 1},
		{6, 5, 2},
		{10, 5, 2},
		{11, 5, 3},
		{7, 1, 7},
	}
	for _, tt := range tests {
		text := strings.TrimSpace(strings.Repeat("w ", tt.words))
		chunks, err := Split(text, doctree.Metadata{}, tt.window, nil)
		if err != nil {
			t.Fatalf("words=%d window=%d: unexpected error: %v", tt.words, tt.window, err)
		}
		if len(chunks) != tt.want {
			t.Errorf("words=%d window=%d: expected %d chunks, got %d", tt.words, tt.window, tt.want, len(chunks))
		}
	}
}

func TestSplit_ReconstructsTokenStream(t *testing.T) {
	text := "The quick  brown\tfox\n\njumps over the lazy dog again"
	chunks, err := Split(text, doctree.Metadata{}, 4, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var rebuilt []string
	next := 0
	for i, c := range chunks {
		if c.Metadata.ChunkStartToken != next {
			t.Errorf("chunk %d: expected start token %d, got %d", i, next, c.Metadata.ChunkStartToken)
		}
		words := strings.Fields(c.Content)
		if c.Metadata.ChunkEndToken-c.Metadata.ChunkStartToken != len(words) {
			t.Errorf("chunk %d: token range does not match content", i)
		}
		if i < len(chunks)-1 && len(words) != 4 {
			t.Errorf("chunk %d: expected full window, got %d words", i, len(words))
		}
		rebuilt = append(rebuilt, words...)
		next = c.Metadata.ChunkEndToken
	}
	if strings.Join(rebuilt, " ") != strings.Join(strings.Fields(text), " ") {
		t.Errorf("token stream not reconstructed: %q", strings.Join(rebuilt, " "))
	}
}

func TestSplit_MetadataNotShared(t *testing.T) {
	page := 4
	meta := doctree.Metadata{
		SectionHeading: "Results",
		SectionLevel:   2,
		PageNumber:     &page,
		Extra:          map[string]string{"source": "report.pdf"},
	}
	chunks, err := Split("a b c d e", meta, 2, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(chunks) != 3 {
		t.Fatalf("expected 3 chunks, got %d", len(chunks))
	}

	// Each chunk keeps its own token range rather than the last window's.
	wantRanges := [][2]int{{0, 2}, {2, 4}, {4, 5}}
	for i, r := range wantRanges {
		m := chunks[i].Metadata
		if m.ChunkStartToken != r[0] || m.ChunkEndToken != r[1] {
			t.Errorf("chunk %d: expected [%d,%d), got [%d,%d)", i, r[0], r[1], m.ChunkStartToken, m.ChunkEndToken)
		}
		if m.SectionHeading != "Results" || m.SectionLevel != 2 {
			t.Errorf("chunk %d: inherited fields lost: %+v", i, m)
		}
	}

	*chunks[0].Metadata.PageNumber = 99
	chunks[0].Metadata.Extra["source"] = "other"
	if *chunks[1].Metadata.PageNumber != 4 || chunks[1].Metadata.Extra["source"] != "report.pdf" {
		t.Error("expected chunks to own independent metadata")
	}
	if page != 4 || meta.Extra["source"] != "report.pdf" {
		t.Error("expected inherited metadata to be untouched")
	}
}

func TestSplit_InvalidWindow(t *testing.T) {
	for _, w := range []int{0, -1} {
		chunks, err := Split("a b c", doctree.Metadata{}, w, nil)
		if !errors.Is(err, ErrInvalidConfiguration) {
			t.Errorf("window=%d: expected ErrInvalidConfiguration, got %v", w, err)
		}
		if chunks != nil {
			t.Errorf("window=%d: expected no chunks", w)
		}
	}
}

func TestSplit_WhitespaceOnly(t *testing.T) {
	chunks, err := Split(" \n\t ", doctree.Metadata{}, 3, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(chunks) != 0 {
		t.Errorf("expected 0 chunks, got %d", len(chunks))
	}
}

func TestWordCount(t *testing.T) {
	tests := []struct {
		text string
		want int
	}{
		{"", 0},
		{"   ", 0},
		{"one", 1},
		{"one two\nthree\tfour", 4},
	}
	for _, tt := range tests {
		if got := WordCount(tt.text); got != tt.want {
			t.Errorf("WordCount(%q) = %d, want %d", tt.text, got, tt.want)
		}
	}
}

func TestCounterByName_Words(t *testing.T) {
	for _, name := range []string{"", "words"} {
		c, err := CounterByName(name)
		if err != nil {
			t.Fatalf("CounterByName(%q): unexpected error: %v", name, err)
		}
		if got := c("a b c"); got != 3 {
			t.Errorf("CounterByName(%q): expected 3, got %d", name, got)
		}
	}
}
