package chunker

import (
	"fmt"
	"maps"

	"github.com/dgallion1/docsplit/internal/doctree"
	"github.com/dgallion1/docsplit/internal/pageindex"
	"github.com/dgallion1/docsplit/internal/segment"
)

// DefaultWindowSize is the window used when callers take DefaultConfig.
const DefaultWindowSize = 50

// Config controls chunking behavior.
type Config struct {
	WindowSize        int               // Words per chunk. Must be positive.
	CountTokens       Counter           // Size estimate per chunk; nil means WordCount.
	CodeAwareHeadings bool              // Ignore '#' lines inside code blocks.
	Extra             map[string]string // Copied into every chunk's metadata.
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() Config {
	return Config{
		WindowSize:  DefaultWindowSize,
		CountTokens: WordCount,
	}
}

// Validate reports whether cfg can produce chunks.
func (c Config) Validate() error {
	if c.WindowSize <= 0 {
		return fmt.Errorf("%w: window size must be positive, got %d", ErrInvalidConfiguration, c.WindowSize)
	}
	return nil
}

// Run splits markdown into chunks: it resolves the page map once, segments
// the text on headings, looks up the page each section starts on, and splits
// every section body (the text below its heading line) into word windows.
// Chunks come back in document order.
//
// A document without headings yields no chunks and no error.
func Run(markdown string, pageMap []doctree.PageMapEntry, cfg Config) ([]doctree.Chunk, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	pages := pageindex.Build(pageMap)

	var sections []doctree.Section
	if cfg.CodeAwareHeadings {
		sections = segment.SegmentCodeAware(markdown)
	} else {
		sections = segment.Segment(markdown)
	}

	var chunks []doctree.Chunk
	for _, s := range sections {
		meta := doctree.Metadata{
			SectionHeading:     s.Heading,
			SectionLevel:       s.Level,
			SectionStartOffset: s.StartOffset,
			SectionEndOffset:   s.EndOffset,
		}
		if p, ok := pages.Lookup(s.StartOffset); ok {
			meta.PageNumber = &p
		}
		if len(cfg.Extra) > 0 {
			meta.Extra = maps.Clone(cfg.Extra)
		}

		part, err := Split(segment.Body(markdown, s), meta, cfg.WindowSize, cfg.CountTokens)
		if err != nil {
			return nil, fmt.Errorf("split section %q: %w", s.Heading, err)
		}
		chunks = append(chunks, part...)
	}
	return chunks, nil
}

// RunDocument is Run over a parsed Document.
func RunDocument(doc *doctree.Document, cfg Config) ([]doctree.Chunk, error) {
	return Run(doc.Markdown, doc.PageMap, cfg)
}
