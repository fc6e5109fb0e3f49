// Package pageindex resolves byte offsets in a markdown document to the page
// of the source file they came from.
package pageindex

import (
	"regexp"
	"sort"
	"strconv"

	"github.com/dgallion1/docsplit/internal/doctree"
)

var pageMarker = regexp.MustCompile(`Page (\d+) of (\d+)`)

// Index is an ordered list of page ranges.
type Index struct {
	ranges []doctree.PageRange
	sorted bool // ascending and non-overlapping; enables binary search
}

// Build resolves every page map entry into a PageRange. Entries whose tag
// text has no "Page N of M" marker keep a nil page number.
func Build(entries []doctree.PageMapEntry) *Index {
	ranges := make([]doctree.PageRange, 0, len(entries))
	for _, e := range entries {
		ranges = append(ranges, doctree.PageRange{
			PageNumber:  ParsePageNumber(e.TagText),
			StartOffset: e.StartOffset,
			EndOffset:   e.EndOffset,
		})
	}
	return &Index{ranges: ranges, sorted: isSorted(ranges)}
}

// ParsePageNumber extracts N from the first "Page N of M" in tag.
func ParsePageNumber(tag string) *int {
	m := pageMarker.FindStringSubmatch(tag)
	if m == nil {
		return nil
	}
	// A digit run too long for int is treated like a malformed tag.
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return nil
	}
	return &n
}

// Ranges returns a copy of the resolved ranges in page map order.
func (idx *Index) Ranges() []doctree.PageRange {
	out := make([]doctree.PageRange, len(idx.ranges))
	for i, r := range idx.ranges {
		out[i] = r
		if r.PageNumber != nil {
			p := *r.PageNumber
			out[i].PageNumber = &p
		}
	}
	return out
}

// Len returns the number of ranges.
func (idx *Index) Len() int { return len(idx.ranges) }

// Lookup returns the page number of the first range containing offset.
// ok is false when no range contains it (before the first page, past the
// last, or in a gap) or when the containing range has no page number.
func (idx *Index) Lookup(offset int) (page int, ok bool) {
	r, found := idx.find(offset)
	if !found || r.PageNumber == nil {
		return 0, false
	}
	return *r.PageNumber, true
}

func (idx *Index) find(offset int) (doctree.PageRange, bool) {
	if !idx.sorted {
		// Overlapping or unordered input: first match in map order wins.
		for _, r := range idx.ranges {
			if r.Contains(offset) {
				return r, true
			}
		}
		return doctree.PageRange{}, false
	}

	i := sort.Search(len(idx.ranges), func(i int) bool {
		return idx.ranges[i].EndOffset > offset
	})
	if i < len(idx.ranges) && idx.ranges[i].Contains(offset) {
		return idx.ranges[i], true
	}
	return doctree.PageRange{}, false
}

func isSorted(ranges []doctree.PageRange) bool {
	for i, r := range ranges {
		if r.StartOffset > r.EndOffset {
			return false
		}
		if i > 0 && r.StartOffset < ranges[i-1].EndOffset {
			return false
		}
	}
	return true
}
