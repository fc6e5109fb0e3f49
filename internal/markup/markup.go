// Package markup finds the HTML fragments that document-analysis markdown
// carries inline (comments, tables, page markers) along with their byte
// offsets in the text.
package markup

import (
	"strings"

	"golang.org/x/net/html"
)

// Tag is one matched fragment. Content is the full match; Inner is the text
// between the opening and closing tags (empty for comments and void tags).
type Tag struct {
	Name        string `json:"name"`
	Content     string `json:"content"`
	Inner       string `json:"inner,omitempty"`
	StartOffset int    `json:"start_offset"`
	EndOffset   int    `json:"end_offset"`
}

// Void elements are matched as single tags rather than open/close pairs.
var voidTags = map[string]bool{
	"hr":  true,
	"img": true,
	"br":  true,
}

// token is a tokenizer token with the byte span it was read from.
type token struct {
	typ        html.TokenType
	data       string
	raw        string
	start, end int
}

// scan tokenizes text as HTML, keeping offsets. Markdown outside tags comes
// back as text tokens, so the spans tile the whole input.
func scan(text string, visit func(token) bool) {
	z := html.NewTokenizer(strings.NewReader(text))
	offset := 0
	for {
		tt := z.Next()
		if tt == html.ErrorToken {
			return
		}
		raw := string(z.Raw())
		tok := token{typ: tt, raw: raw, start: offset, end: offset + len(raw)}
		offset = tok.end

		switch tt {
		case html.StartTagToken, html.EndTagToken, html.SelfClosingTagToken:
			name, _ := z.TagName()
			tok.data = string(name)
		case html.CommentToken:
			tok.data = string(z.Text())
		}
		if !visit(tok) {
			return
		}
	}
}

// Comments returns every <!-- ... --> comment in text.
func Comments(text string) []Tag {
	var out []Tag
	scan(text, func(t token) bool {
		// The tokenizer also reports bogus "<!x" and "<?x" as comments.
		if t.typ == html.CommentToken && strings.HasPrefix(t.raw, "<!--") {
			out = append(out, Tag{
				Name:        "comment",
				Content:     t.raw,
				Inner:       t.data,
				StartOffset: t.start,
				EndOffset:   t.end,
			})
		}
		return true
	})
	return out
}

// Tags returns the spans of every name element in text. Elements do not nest:
// an opening tag seen while one is open is ignored, and the first closing
// tag ends the match. hr, img and br match as single tags.
func Tags(text, name string) []Tag {
	name = strings.ToLower(name)
	void := voidTags[name]

	var out []Tag
	open := -1
	innerStart := 0
	scan(text, func(t token) bool {
		if t.data != name {
			return true
		}
		switch {
		case void && (t.typ == html.StartTagToken || t.typ == html.SelfClosingTagToken):
			out = append(out, Tag{Name: name, Content: t.raw, StartOffset: t.start, EndOffset: t.end})
		case !void && t.typ == html.StartTagToken && open < 0:
			open = t.start
			innerStart = t.end
		case !void && t.typ == html.EndTagToken && open >= 0:
			out = append(out, Tag{
				Name:        name,
				Content:     text[open:t.end],
				Inner:       text[innerStart:t.start],
				StartOffset: open,
				EndOffset:   t.end,
			})
			open = -1
		}
		return true
	})
	return out
}

// Tables is Tags(text, "table").
func Tables(text string) []Tag {
	return Tags(text, "table")
}
