package pageindex

import (
	"strconv"
	"testing"

	"github.com/dgallion1/docsplit/internal/doctree"
)

func twoPages() []doctree.PageMapEntry {
	return []doctree.PageMapEntry{
		{TagText: "Page 1 of 2", StartOffset: 0, EndOffset: 10},
		{TagText: "Page 2 of 2", StartOffset: 10, EndOffset: 20},
	}
}

func TestLookup_HalfOpenBoundaries(t *testing.T) {
	idx := Build(twoPages())

	tests := []struct {
		offset int
		want   int
		ok     bool
	}{
		{0, 1, true},
		{9, 1, true},
		{10, 2, true},
		{19, 2, true},
		{20, 0, false},
		{25, 0, false},
		{-1, 0, false},
	}
	for _, tt := range tests {
		got, ok := idx.Lookup(tt.offset)
		if ok != tt.ok || got != tt.want {
			t.Errorf("Lookup(%d) = (%d, %v), want (%d, %v)", tt.offset, got, ok, tt.want, tt.ok)
		}
	}
}

func TestBuild_MalformedTagHasNoPage(t *testing.T) {
	idx := Build([]doctree.PageMapEntry{
		{TagText: `<!-- PageNumber="Page 3 of 40" -->`, StartOffset: 0, EndOffset: 5},
		{TagText: `<!-- PageHeader="Annual report" -->`, StartOffset: 5, EndOffset: 9},
	})

	ranges := idx.Ranges()
	if len(ranges) != 2 {
		t.Fatalf("expected 2 ranges, got %d", len(ranges))
	}
	if ranges[0].PageNumber == nil || *ranges[0].PageNumber != 3 {
		t.Errorf("expected page 3 for first range, got %v", ranges[0].PageNumber)
	}
	if ranges[1].PageNumber != nil {
		t.Errorf("expected nil page for unmatched tag, got %d", *ranges[1].PageNumber)
	}

	if _, ok := idx.Lookup(6); ok {
		t.Error("expected lookup inside an unnumbered range to report no page")
	}
}

func TestLookup_GapBetweenPages(t *testing.T) {
	idx := Build([]doctree.PageMapEntry{
		{TagText: "Page 1 of 2", StartOffset: 0, EndOffset: 34},
		{TagText: "Page 2 of 2", StartOffset: 100, EndOffset: 134},
	})
	if _, ok := idx.Lookup(50); ok {
		t.Error("expected no page for offset in gap")
	}
	if p, ok := idx.Lookup(100); !ok || p != 2 {
		t.Errorf("expected page 2 at offset 100, got (%d, %v)", p, ok)
	}
}

func TestLookup_OverlappingRangesFirstMatchWins(t *testing.T) {
	idx := Build([]doctree.PageMapEntry{
		{TagText: "Page 7 of 9", StartOffset: 0, EndOffset: 50},
		{TagText: "Page 8 of 9", StartOffset: 20, EndOffset: 60},
	})
	if p, ok := idx.Lookup(30); !ok || p != 7 {
		t.Errorf("expected first range (page 7) to win, got (%d, %v)", p, ok)
	}
	if p, ok := idx.Lookup(55); !ok || p != 8 {
		t.Errorf("expected page 8 at offset 55, got (%d, %v)", p, ok)
	}
}

func TestLookup_MonotonicWithinRange(t *testing.T) {
	var entries []doctree.PageMapEntry
	for i := 0; i < 200; i++ {
		entries = append(entries, doctree.PageMapEntry{
			TagText:     "Page " + strconv.Itoa(i+1) + " of 200",
			StartOffset: i * 100,
			EndOffset:   i*100 + 100,
		})
	}
	idx := Build(entries)

	for _, e := range entries {
		first, ok1 := idx.Lookup(e.StartOffset)
		last, ok2 := idx.Lookup(e.EndOffset - 1)
		if !ok1 || !ok2 || first != last {
			t.Fatalf("range [%d,%d): lookup(start)=%d lookup(end-1)=%d", e.StartOffset, e.EndOffset, first, last)
		}
	}
}

func TestLookup_EmptyIndex(t *testing.T) {
	idx := Build(nil)
	if idx.Len() != 0 {
		t.Errorf("expected empty index, got %d ranges", idx.Len())
	}
	if _, ok := idx.Lookup(0); ok {
		t.Error("expected no page from empty index")
	}
}

func TestRanges_ReturnsCopy(t *testing.T) {
	idx := Build(twoPages())
	r := idx.Ranges()
	*r[0].PageNumber = 99
	if p, _ := idx.Lookup(0); p != 1 {
		t.Errorf("mutating Ranges() result leaked into index: got page %d", p)
	}
}

func TestParsePageNumber_OverflowHasNoPage(t *testing.T) {
	if p := ParsePageNumber("Page 99999999999999999999999 of 3"); p != nil {
		t.Errorf("expected nil page for out-of-range number, got %d", *p)
	}
	if p := ParsePageNumber("Page 7 of 99999999999999999999999"); p == nil || *p != 7 {
		t.Errorf("expected page 7, got %v", p)
	}
}
