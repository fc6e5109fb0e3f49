package parser

import (
	"io"
	"strings"

	"github.com/dgallion1/docsplit/internal/doctree"
	"github.com/dgallion1/docsplit/internal/markup"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// MarkdownParser handles markdown produced by the analysis step. The page map
// is read from the PageBreak/PageNumber comments embedded in the text.
type MarkdownParser struct{}

func (p *MarkdownParser) Parse(r io.Reader, filename string) (*doctree.Document, error) {
	src, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	md := string(src)

	title := firstHeading(src)
	if title == "" {
		title = trimExt(filename, ".md", ".markdown")
	}

	return &doctree.Document{
		Title:    title,
		Markdown: md,
		PageMap:  markup.PageMap(md),
	}, nil
}

// firstHeading returns the text of the first heading goldmark finds.
func firstHeading(src []byte) string {
	doc := goldmark.New().Parser().Parse(text.NewReader(src))
	for n := doc.FirstChild(); n != nil; n = n.NextSibling() {
		if h, ok := n.(*ast.Heading); ok {
			return strings.TrimSpace(inlineText(h, src))
		}
	}
	return ""
}

func inlineText(n ast.Node, src []byte) string {
	var b strings.Builder
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		if t, ok := c.(*ast.Text); ok {
			b.Write(t.Value(src))
			continue
		}
		b.WriteString(inlineText(c, src))
	}
	return b.String()
}
