// Package segment partitions a markdown document into flat sections keyed by
// ATX headings.
package segment

import (
	"regexp"
	"strings"

	"github.com/dgallion1/docsplit/internal/doctree"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// One to six '#' at the start of a line, horizontal whitespace, heading text.
var atxHeading = regexp.MustCompile(`(?m)^(#{1,6})[ \t]+(.*)$`)

// Segment scans markdown for ATX headings and returns one section per
// heading, in document order. Each section runs to the next heading of any
// level, the last one to the end of the text. Text before the first heading
// belongs to no section.
func Segment(markdown string) []doctree.Section {
	return segment(markdown, nil)
}

// SegmentCodeAware is Segment, except heading markers inside fenced or
// indented code blocks are not treated as headings.
func SegmentCodeAware(markdown string) []doctree.Section {
	return segment(markdown, codeSpans(markdown))
}

func segment(markdown string, skip []span) []doctree.Section {
	matches := atxHeading.FindAllStringSubmatchIndex(markdown, -1)
	sections := make([]doctree.Section, 0, len(matches))
	for _, m := range matches {
		start := m[0]
		if inAny(skip, start) {
			continue
		}
		sections = append(sections, doctree.Section{
			Level:       m[3] - m[2],
			Heading:     strings.TrimSpace(markdown[m[4]:m[5]]),
			StartOffset: start,
		})
	}

	for i := range sections {
		if i+1 < len(sections) {
			sections[i].EndOffset = sections[i+1].StartOffset
		} else {
			sections[i].EndOffset = len(markdown)
		}
	}
	return sections
}

// Text returns the slice of markdown a section covers, heading line included.
func Text(markdown string, s doctree.Section) string {
	return markdown[s.StartOffset:s.EndOffset]
}

// Body returns the section text after its heading line.
func Body(markdown string, s doctree.Section) string {
	t := Text(markdown, s)
	nl := strings.IndexByte(t, '\n')
	if nl < 0 {
		return ""
	}
	return t[nl+1:]
}

type span struct{ start, stop int }

func inAny(spans []span, offset int) bool {
	for _, s := range spans {
		if offset >= s.start && offset < s.stop {
			return true
		}
	}
	return false
}

// codeSpans returns the byte ranges of code block bodies as goldmark sees them.
func codeSpans(markdown string) []span {
	src := []byte(markdown)
	doc := goldmark.New().Parser().Parse(text.NewReader(src))

	var spans []span
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch n.(type) {
		case *ast.FencedCodeBlock, *ast.CodeBlock:
			lines := n.Lines()
			if lines.Len() > 0 {
				first := lines.At(0)
				last := lines.At(lines.Len() - 1)
				// Widen to the line start so a '#' at column 0 is covered
				// even when the segment begins after padding.
				start := strings.LastIndexByte(markdown[:first.Start], '\n') + 1
				spans = append(spans, span{start: start, stop: last.Stop})
			}
			return ast.WalkSkipChildren, nil
		}
		return ast.WalkContinue, nil
	})
	return spans
}
