package markup

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/net/html"
)

const maxColspan = 1000

// ErrNoTable is returned when a fragment holds no <table> element.
var ErrNoTable = errors.New("no table element")

// Table is the cell text of an HTML table, row-major. Cells spanning several
// columns are repeated once per column.
type Table struct {
	Rows [][]string
}

// parseTable reads the first <table> in fragment.
func parseTable(fragment string) (Table, error) {
	doc, err := html.Parse(strings.NewReader(fragment))
	if err != nil {
		return Table{}, fmt.Errorf("parse table: %w", err)
	}
	tbl := findElement(doc, "table")
	if tbl == nil {
		return Table{}, ErrNoTable
	}
	return TableFromNode(tbl), nil
}

// TableFromNode collects the rows of an already parsed <table> element.
func TableFromNode(tbl *html.Node) Table {
	var t Table
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "tr" {
			t.Rows = append(t.Rows, rowCells(n))
			return
		}
		// Nested tables are flattened into their parent cell's text.
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(tbl)
	return t
}

// Columns is the width of the widest row.
func (t Table) Columns() int {
	n := 0
	for _, r := range t.Rows {
		n = max(n, len(r))
	}
	return n
}

// Markdown renders t as a pipe table, first row as the header.
func (t Table) Markdown() string {
	cols := t.Columns()
	if cols == 0 {
		return ""
	}

	var b strings.Builder
	writeRow := func(r []string) {
		b.WriteString("|")
		for i := range cols {
			cell := ""
			if i < len(r) {
				cell = strings.ReplaceAll(r[i], "|", `\|`)
			}
			b.WriteString(" " + cell + " |")
		}
		b.WriteString("\n")
	}

	writeRow(t.Rows[0])
	b.WriteString("|")
	for range cols {
		b.WriteString(" --- |")
	}
	b.WriteString("\n")
	for _, r := range t.Rows[1:] {
		writeRow(r)
	}
	return b.String()
}

func rowCells(tr *html.Node) []string {
	var cells []string
	for c := tr.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != html.ElementNode || (c.Data != "td" && c.Data != "th") {
			continue
		}
		text := strings.Join(strings.Fields(textContent(c)), " ")
		for range colspan(c) {
			cells = append(cells, text)
		}
	}
	return cells
}

func colspan(n *html.Node) int {
	for _, a := range n.Attr {
		if a.Key == "colspan" {
			if v, err := strconv.Atoi(a.Val); err == nil && v > 0 {
				return min(v, maxColspan)
			}
		}
	}
	return 1
}

func textContent(n *html.Node) string {
	var b strings.Builder
	var extract func(*html.Node)
	extract = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			extract(c)
		}
	}
	extract(n)
	return b.String()
}

func findElement(n *html.Node, tag string) *html.Node {
	if n.Type == html.ElementNode && n.Data == tag {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findElement(c, tag); found != nil {
			return found
		}
	}
	return nil
}
