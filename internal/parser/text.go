package parser

import (
	"io"
	"strings"

	"github.com/dgallion1/docsplit/internal/doctree"
)

// TextParser handles plain text exports. Form feeds separate pages, as
// pdftotext writes them; the text itself is passed through unchanged.
type TextParser struct{}

func (p *TextParser) Parse(r io.Reader, filename string) (*doctree.Document, error) {
	src, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	text := string(src)

	doc := &doctree.Document{
		Title:    trimExt(filename, ".txt"),
		Markdown: text,
	}
	if !strings.Contains(text, "\f") {
		return doc, nil
	}

	pages := strings.Split(text, "\f")
	start := 0
	for i, page := range pages {
		end := start + len(page)
		doc.PageMap = append(doc.PageMap, doctree.PageMapEntry{
			TagText:     pageTag(i+1, len(pages)),
			StartOffset: start,
			EndOffset:   end,
		})
		start = end + 1 // skip the form feed
	}
	return doc, nil
}
