package parser

import (
	"strings"
	"testing"
)

func TestAnalyzeResultParser_Pages(t *testing.T) {
	input := `{
  "content": "# Intro\nhello\n# Part two\nworld",
  "pages": [
    {"pageNumber": 1, "spans": [{"offset": 0, "length": 14}]},
    {"pageNumber": 2, "spans": [{"offset": 14, "length": 16}]}
  ]
}`
	p := &AnalyzeResultParser{}
	doc, err := p.Parse(strings.NewReader(input), "scan.json")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if doc.Title != "Intro" {
		t.Errorf("expected title %q, got %q", "Intro", doc.Title)
	}
	if len(doc.PageMap) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(doc.PageMap))
	}
	if doc.PageMap[1].TagText != "Page 2 of 2" {
		t.Errorf("unexpected tag %q", doc.PageMap[1].TagText)
	}
	if doc.PageMap[1].StartOffset != 14 || doc.PageMap[1].EndOffset != 30 {
		t.Errorf("unexpected span [%d,%d)", doc.PageMap[1].StartOffset, doc.PageMap[1].EndOffset)
	}
}

func TestAnalyzeResultParser_Envelope(t *testing.T) {
	input := `{"status": "succeeded", "analyzeResult": {"content": "# A\nx", "pages": [{"pageNumber": 1, "spans": [{"offset": 0, "length": 5}]}]}}`
	p := &AnalyzeResultParser{}
	doc, err := p.Parse(strings.NewReader(input), "result.json")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if doc.Markdown != "# A\nx" {
		t.Errorf("unexpected content %q", doc.Markdown)
	}
	if len(doc.PageMap) != 1 || doc.PageMap[0].TagText != "Page 1 of 1" {
		t.Errorf("unexpected page map %+v", doc.PageMap)
	}
}

func TestAnalyzeResultParser_CodePointOffsets(t *testing.T) {
	// "é" is one code point but two bytes; "😀" is one code point, two UTF-16 units, four bytes.
	content := "é😀# H\nx"
	tests := []struct {
		indexType string
		offset    int
		wantByte  int
	}{
		{"unicodeCodePoint", 2, len("é😀")},
		{"", 1, len("é")},
		{"utf16CodeUnit", 3, len("é😀")},
		{"utf16CodeUnit", 100, len(content)},
	}
	for _, tt := range tests {
		conv, err := offsetConverter(content, tt.indexType)
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", tt.indexType, err)
		}
		if got := conv(tt.offset); got != tt.wantByte {
			t.Errorf("%s offset %d: expected byte %d, got %d", tt.indexType, tt.offset, tt.wantByte, got)
		}
	}
}

func TestAnalyzeResultParser_BadInput(t *testing.T) {
	p := &AnalyzeResultParser{}
	if _, err := p.Parse(strings.NewReader("{not json"), "bad.json"); err == nil {
		t.Error("expected error for malformed json")
	}
	if _, err := p.Parse(strings.NewReader(`{"content": "x", "stringIndexType": "bytes"}`), "bad.json"); err == nil {
		t.Error("expected error for unknown index type")
	}
	// Grapheme cluster offsets cannot be mapped rune by rune.
	if _, err := p.Parse(strings.NewReader(`{"content": "e\u0301", "stringIndexType": "textElements"}`), "bad.json"); err == nil {
		t.Error("expected error for textElements index type")
	}
}
