package markup

import (
	"errors"
	"strings"
	"testing"
)

func TestComments_Offsets(t *testing.T) {
	text := "intro\n<!-- PageHeader=\"Report\" -->\nbody <!-- x -->"
	comments := Comments(text)
	if len(comments) != 2 {
		t.Fatalf("expected 2 comments, got %d", len(comments))
	}
	for i, c := range comments {
		if text[c.StartOffset:c.EndOffset] != c.Content {
			t.Errorf("comment %d: offsets [%d,%d) do not match content %q", i, c.StartOffset, c.EndOffset, c.Content)
		}
		if !strings.HasPrefix(c.Content, "<!--") || !strings.HasSuffix(c.Content, "-->") {
			t.Errorf("comment %d: unexpected content %q", i, c.Content)
		}
	}
	if got := strings.TrimSpace(comments[0].Inner); got != `PageHeader="Report"` {
		t.Errorf("unexpected inner text %q", got)
	}
}

func TestComments_MultiLine(t *testing.T) {
	text := "a <!--\nspans\nlines\n--> b"
	comments := Comments(text)
	if len(comments) != 1 {
		t.Fatalf("expected 1 comment, got %d", len(comments))
	}
	if comments[0].StartOffset != 2 || comments[0].EndOffset != len(text)-2 {
		t.Errorf("unexpected span [%d,%d)", comments[0].StartOffset, comments[0].EndOffset)
	}
}

func TestComments_IgnoresBogus(t *testing.T) {
	if got := Comments("x <!y> and <?php ?> and 3 < 4"); len(got) != 0 {
		t.Errorf("expected no comments, got %+v", got)
	}
}

func TestTags_Tables(t *testing.T) {
	text := "santo<table id='santo'><tr><td>Cell</td></tr></table><table>santo</table>"
	tables := Tables(text)
	if len(tables) != 2 {
		t.Fatalf("expected 2 tables, got %d", len(tables))
	}
	if tables[0].StartOffset != 5 {
		t.Errorf("expected first table at 5, got %d", tables[0].StartOffset)
	}
	if tables[0].Inner != "<tr><td>Cell</td></tr>" {
		t.Errorf("unexpected inner %q", tables[0].Inner)
	}
	if tables[1].Content != "<table>santo</table>" || tables[1].EndOffset != len(text) {
		t.Errorf("unexpected second table: %+v", tables[1])
	}
}

func TestTags_VoidElement(t *testing.T) {
	text := "santo<img id='santo' /> and <img src=x>"
	imgs := Tags(text, "img")
	if len(imgs) != 2 {
		t.Fatalf("expected 2 images, got %d", len(imgs))
	}
	if imgs[0].Content != "<img id='santo' />" {
		t.Errorf("unexpected content %q", imgs[0].Content)
	}
	if text[imgs[1].StartOffset:imgs[1].EndOffset] != "<img src=x>" {
		t.Errorf("unexpected span for second image")
	}
}

func TestPageMap_FromMarkers(t *testing.T) {
	page1 := "# Title\nFirst page text.\n<!-- PageNumber=\"Page 1 of 2\" -->\n"
	brk := "<!-- PageBreak -->"
	page2 := "\n## Next\nSecond page.\n<!-- PageNumber=\"Page 2 of 2\" -->\n"
	text := page1 + brk + page2

	entries := PageMap(text)
	if len(entries) != 2 {
		t.Fatalf("expected 2 pages, got %d", len(entries))
	}
	if entries[0].StartOffset != 0 || entries[0].EndOffset != len(page1) {
		t.Errorf("page 1: unexpected span [%d,%d)", entries[0].StartOffset, entries[0].EndOffset)
	}
	if entries[1].StartOffset != len(page1)+len(brk) || entries[1].EndOffset != len(text) {
		t.Errorf("page 2: unexpected span [%d,%d)", entries[1].StartOffset, entries[1].EndOffset)
	}
	if entries[0].TagText != `<!-- PageNumber="Page 1 of 2" -->` {
		t.Errorf("page 1: unexpected tag %q", entries[0].TagText)
	}
	if !strings.Contains(entries[1].TagText, "Page 2 of 2") {
		t.Errorf("page 2: unexpected tag %q", entries[1].TagText)
	}
}

func TestPageMap_BreakWithoutNumber(t *testing.T) {
	text := "one<!-- PageBreak -->two"
	entries := PageMap(text)
	if len(entries) != 2 {
		t.Fatalf("expected 2 pages, got %d", len(entries))
	}
	if entries[0].TagText != "" || entries[1].TagText != "" {
		t.Errorf("expected empty tag text, got %q and %q", entries[0].TagText, entries[1].TagText)
	}
	if entries[0].EndOffset != 3 || entries[1].StartOffset != len("one<!-- PageBreak -->") {
		t.Errorf("unexpected spans: %+v", entries)
	}
}

func TestPageMap_NoMarkers(t *testing.T) {
	if got := PageMap("# Plain\n<!-- note -->\ntext"); got != nil {
		t.Errorf("expected nil page map, got %+v", got)
	}
}

func TestParseTable_Markdown(t *testing.T) {
	tbl, err := parseTable(`<table><tr><th>Year</th><th>Revenue</th></tr>
<tr><td>2023</td><td>1 | 2</td></tr><tr><td colspan="2">Total</td></tr></table>`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(tbl.Rows) != 3 || tbl.Columns() != 2 {
		t.Fatalf("expected 3x2 table, got %d rows x %d cols", len(tbl.Rows), tbl.Columns())
	}
	if tbl.Rows[2][0] != "Total" || tbl.Rows[2][1] != "Total" {
		t.Errorf("expected colspan cell repeated, got %v", tbl.Rows[2])
	}

	want := "| Year | Revenue |\n| --- | --- |\n| 2023 | 1 \\| 2 |\n| Total | Total |\n"
	if got := tbl.Markdown(); got != want {
		t.Errorf("unexpected markdown:\n%s\nwant:\n%s", got, want)
	}
}

func TestParseTable_NoTable(t *testing.T) {
	_, err := parseTable("<p>nothing here</p>")
	if !errors.Is(err, ErrNoTable) {
		t.Errorf("expected ErrNoTable, got %v", err)
	}
}
