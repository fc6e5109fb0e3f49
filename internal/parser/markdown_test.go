package parser

import (
	"strings"
	"testing"
)

func TestMarkdownParser_PageMapFromComments(t *testing.T) {
	input := "# Annual Report\n\nIntro text.\n<!-- PageNumber=\"Page 1 of 2\" -->\n<!-- PageBreak -->\n\n## Revenue\n\nNumbers.\n<!-- PageNumber=\"Page 2 of 2\" -->\n"
	p := &MarkdownParser{}
	doc, err := p.Parse(strings.NewReader(input), "report.md")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if doc.Title != "Annual Report" {
		t.Errorf("expected title %q, got %q", "Annual Report", doc.Title)
	}
	if doc.Markdown != input {
		t.Error("expected markdown to be passed through unchanged")
	}
	if len(doc.PageMap) != 2 {
		t.Fatalf("expected 2 page map entries, got %d", len(doc.PageMap))
	}
	revenue := strings.Index(input, "## Revenue")
	second := doc.PageMap[1]
	if revenue < second.StartOffset || revenue >= second.EndOffset {
		t.Errorf("expected Revenue heading at %d inside page 2 [%d,%d)", revenue, second.StartOffset, second.EndOffset)
	}
}

func TestMarkdownParser_TitleFallsBackToFilename(t *testing.T) {
	tests := []struct {
		filename string
		want     string
	}{
		{"readme.md", "readme"},
		{"notes.markdown", "notes"},
		{"plain.MD", "plain"},
	}
	p := &MarkdownParser{}
	for _, tt := range tests {
		doc, err := p.Parse(strings.NewReader("text without headings"), tt.filename)
		if err != nil {
			t.Fatalf("unexpected error for %s: %v", tt.filename, err)
		}
		if doc.Title != tt.want {
			t.Errorf("filename=%q: expected title %q, got %q", tt.filename, tt.want, doc.Title)
		}
	}
}

func TestMarkdownParser_TitleWithInlineMarkup(t *testing.T) {
	p := &MarkdownParser{}
	doc, err := p.Parse(strings.NewReader("Preamble.\n\n## The *Big* `Plan`\n"), "x.md")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if doc.Title != "The Big Plan" {
		t.Errorf("expected %q, got %q", "The Big Plan", doc.Title)
	}
}

func TestMarkdownParser_EmptyInput(t *testing.T) {
	p := &MarkdownParser{}
	doc, err := p.Parse(strings.NewReader(""), "empty.md")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if doc.Markdown != "" || doc.PageMap != nil {
		t.Errorf("expected empty document, got %+v", doc)
	}
}
