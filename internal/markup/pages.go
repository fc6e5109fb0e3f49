package markup

import (
	"strings"

	"github.com/dgallion1/docsplit/internal/doctree"
)

const (
	pageBreakComment  = "PageBreak"
	pageNumberComment = "PageNumber="
)

// PageMap derives a page map from the page markers the analysis service
// writes into its markdown output:
//
//	<!-- PageNumber="Page 1 of 40" -->
//	<!-- PageBreak -->
//
// Page k spans from the end of break k-1 (or 0) to the start of break k (or
// the end of text). Its tag text is the first PageNumber comment inside it,
// or "" when the page has none. Text with neither marker has no page map.
func PageMap(text string) []doctree.PageMapEntry {
	var (
		entries []doctree.PageMapEntry
		start   int
		tagText string
		marked  bool
	)
	for _, c := range Comments(text) {
		inner := strings.TrimSpace(c.Inner)
		switch {
		case inner == pageBreakComment:
			entries = append(entries, doctree.PageMapEntry{
				TagText:     tagText,
				StartOffset: start,
				EndOffset:   c.StartOffset,
			})
			start = c.EndOffset
			tagText = ""
			marked = true
		case strings.HasPrefix(inner, pageNumberComment):
			if tagText == "" {
				tagText = c.Content
			}
			marked = true
		}
	}
	if !marked {
		return nil
	}
	return append(entries, doctree.PageMapEntry{
		TagText:     tagText,
		StartOffset: start,
		EndOffset:   len(text),
	})
}
