package parser

import (
	"fmt"
	"io"
	"strings"

	"github.com/dgallion1/docsplit/internal/doctree"
	"github.com/dgallion1/docsplit/internal/markup"
	"golang.org/x/net/html"
)

// HTMLParser converts an HTML page to markdown: h1-h6 become ATX headings,
// block text becomes paragraphs and tables become pipe tables. HTML has no
// pages, so the page map is empty.
type HTMLParser struct{}

func (p *HTMLParser) Parse(r io.Reader, filename string) (*doctree.Document, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}

	title := trimExt(filename, ".html", ".htm")
	if t := findTitle(doc); t != "" {
		title = t
	}

	var blocks []string
	emit := func(s string) {
		if s = strings.TrimSpace(s); s != "" {
			blocks = append(blocks, s)
		}
	}

	// Loose text accumulates until the next block boundary.
	var para strings.Builder
	flush := func() {
		emit(collapse(para.String()))
		para.Reset()
	}

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		switch n.Type {
		case html.TextNode:
			para.WriteString(n.Data)
			return
		case html.ElementNode:
			if level := headingLevel(n.Data); level > 0 {
				flush()
				if t := collapse(textContent(n)); t != "" {
					emit(strings.Repeat("#", level) + " " + t)
				}
				return
			}

			switch n.Data {
			case "script", "style", "nav", "footer", "header":
				return
			case "table":
				flush()
				emit(markup.TableFromNode(n).Markdown())
				return
			case "li":
				flush()
				emit("- " + collapse(textContent(n)))
				return
			case "p", "blockquote", "pre":
				flush()
				emit(collapse(textContent(n)))
				return
			case "br", "hr":
				flush()
				return
			}

			if blockTags[n.Data] {
				flush()
				defer flush()
			}
		}

		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}

	if body := findBody(doc); body != nil {
		walk(body)
	} else {
		walk(doc)
	}
	flush()

	md := strings.Join(blocks, "\n\n")
	if md != "" {
		md += "\n"
	}
	return &doctree.Document{Title: title, Markdown: md}, nil
}

// blockTags end the running paragraph on entry and exit.
var blockTags = map[string]bool{
	"div": true, "section": true, "article": true, "main": true, "aside": true,
	"ul": true, "ol": true, "dl": true, "dt": true, "dd": true,
	"figure": true, "figcaption": true, "form": true, "address": true,
	"td": true, "th": true, "tr": true,
}

func headingLevel(tag string) int {
	if len(tag) == 2 && tag[0] == 'h' && tag[1] >= '1' && tag[1] <= '6' {
		return int(tag[1] - '0')
	}
	return 0
}

func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func textContent(n *html.Node) string {
	var buf strings.Builder
	var extract func(*html.Node)
	extract = func(n *html.Node) {
		if n.Type == html.TextNode {
			buf.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			extract(c)
		}
	}
	extract(n)
	return strings.TrimSpace(buf.String())
}

func findTitle(n *html.Node) string {
	if n.Type == html.ElementNode && n.Data == "title" {
		return textContent(n)
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if t := findTitle(c); t != "" {
			return t
		}
	}
	return ""
}

func findBody(n *html.Node) *html.Node {
	if n.Type == html.ElementNode && n.Data == "body" {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if b := findBody(c); b != nil {
			return b
		}
	}
	return nil
}
