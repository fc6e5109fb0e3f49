package parser

import (
	"encoding/json"
	"fmt"
	"io"
	"unicode/utf16"
	"unicode/utf8"

	"github.com/dgallion1/docsplit/internal/doctree"
)

// AnalyzeResultParser reads the JSON result of a layout analysis run with
// markdown output: the whole document in "content", and per page the spans
// of content it covers. Either the bare result or the REST envelope with an
// "analyzeResult" field is accepted.
type AnalyzeResultParser struct{}

type analyzeResult struct {
	Content         string        `json:"content"`
	StringIndexType string        `json:"stringIndexType"`
	Pages           []analyzePage `json:"pages"`
}

type analyzePage struct {
	PageNumber int           `json:"pageNumber"`
	Spans      []analyzeSpan `json:"spans"`
}

type analyzeSpan struct {
	Offset int `json:"offset"`
	Length int `json:"length"`
}

func (p *AnalyzeResultParser) Parse(r io.Reader, filename string) (*doctree.Document, error) {
	var envelope struct {
		AnalyzeResult *analyzeResult `json:"analyzeResult"`
		analyzeResult
	}
	if err := json.NewDecoder(r).Decode(&envelope); err != nil {
		return nil, fmt.Errorf("decode analyze result: %w", err)
	}
	res := envelope.analyzeResult
	if envelope.AnalyzeResult != nil {
		res = *envelope.AnalyzeResult
	}

	toByte, err := offsetConverter(res.Content, res.StringIndexType)
	if err != nil {
		return nil, err
	}

	total := len(res.Pages)
	var pageMap []doctree.PageMapEntry
	for i, page := range res.Pages {
		n := page.PageNumber
		if n == 0 {
			n = i + 1
		}
		for _, s := range page.Spans {
			pageMap = append(pageMap, doctree.PageMapEntry{
				TagText:     pageTag(n, total),
				StartOffset: toByte(s.Offset),
				EndOffset:   toByte(s.Offset + s.Length),
			})
		}
	}

	title := firstHeading([]byte(res.Content))
	if title == "" {
		title = trimExt(filename, ".json")
	}
	return &doctree.Document{
		Title:    title,
		Markdown: res.Content,
		PageMap:  pageMap,
	}, nil
}

// offsetConverter maps offsets in the service's string index unit to byte
// offsets in content. Offsets past the end clamp to len(content).
// textElements (grapheme clusters) is rejected along with other unknown units.
func offsetConverter(content, indexType string) (func(int) int, error) {
	var width func(r rune) int
	switch indexType {
	case "", "unicodeCodePoint":
		width = func(rune) int { return 1 }
	case "utf16CodeUnit":
		width = func(r rune) int {
			if utf16.IsSurrogate(r) || r > 0xFFFF {
				return 2
			}
			return 1
		}
	default:
		return nil, fmt.Errorf("unsupported stringIndexType %q", indexType)
	}

	// starts[u] is the byte offset where unit u begins.
	starts := make([]int, 0, utf8.RuneCountInString(content)+1)
	for i, r := range content {
		for range width(r) {
			starts = append(starts, i)
		}
	}
	starts = append(starts, len(content))

	return func(unit int) int {
		switch {
		case unit <= 0:
			return 0
		case unit >= len(starts):
			return len(content)
		default:
			return starts[unit]
		}
	}, nil
}
