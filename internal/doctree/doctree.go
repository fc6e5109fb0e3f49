package doctree

import "maps"

// Document is a flattened markdown document together with the page map that
// ties byte ranges of Markdown back to pages of the source file.
type Document struct {
	Title    string         // From first heading or filename
	Markdown string         // Whole document as one markdown blob
	PageMap  []PageMapEntry // Ordered, as produced by the analysis step
}

// PageMapEntry is one raw page marker: free text containing "Page N of M"
// and the [StartOffset, EndOffset) range it covers.
type PageMapEntry struct {
	TagText     string `json:"tag_text"`
	StartOffset int    `json:"start_offset" validate:"gte=0"`
	EndOffset   int    `json:"end_offset" validate:"gtefield=StartOffset"`
}

// PageRange is a resolved page map entry. PageNumber is nil when the tag text
// carried no recognizable page marker.
type PageRange struct {
	PageNumber  *int `json:"page_number"`
	StartOffset int  `json:"start_offset"`
	EndOffset   int  `json:"end_offset"`
}

// Contains reports whether offset falls in the half-open range.
func (r PageRange) Contains(offset int) bool {
	return offset >= r.StartOffset && offset < r.EndOffset
}

// Section is the text between one ATX heading and the next heading of any level.
type Section struct {
	Level       int    `json:"level"`
	Heading     string `json:"heading"`
	StartOffset int    `json:"start_offset"`
	EndOffset   int    `json:"end_offset"`
}

// Metadata is the lineage attached to every chunk.
type Metadata struct {
	SectionHeading     string            `json:"section_heading"`
	SectionLevel       int               `json:"section_level"`
	PageNumber         *int              `json:"page_number"`
	SectionStartOffset int               `json:"section_start_offset"`
	SectionEndOffset   int               `json:"section_end_offset"`
	ChunkStartToken    int               `json:"chunk_start_token"`
	ChunkEndToken      int               `json:"chunk_end_token"`
	TokenCount         int               `json:"token_count"`
	Extra              map[string]string `json:"extra,omitempty"`
}

// Clone returns a deep copy. Chunks never share PageNumber or Extra.
func (m Metadata) Clone() Metadata {
	out := m
	if m.PageNumber != nil {
		p := *m.PageNumber
		out.PageNumber = &p
	}
	if m.Extra != nil {
		out.Extra = maps.Clone(m.Extra)
	}
	return out
}

// Chunk is a sized text segment with its lineage, ready for indexing.
type Chunk struct {
	Content  string   `json:"content"`
	Metadata Metadata `json:"metadata"`
}
