package chunker

import (
	"errors"
	"fmt"
	"strings"

	"github.com/dgallion1/docsplit/internal/doctree"
)

// ErrInvalidConfiguration is returned before any splitting happens when the
// chunking parameters cannot produce chunks.
var ErrInvalidConfiguration = errors.New("invalid configuration")

// Split cuts sectionText into consecutive windows of windowSize words; the
// last window holds the remainder. Every chunk gets its own copy of meta with
// the chunk's token range and count filled in.
func Split(sectionText string, meta doctree.Metadata, windowSize int, count Counter) ([]doctree.Chunk, error) {
	if windowSize <= 0 {
		return nil, fmt.Errorf("%w: window size must be positive, got %d", ErrInvalidConfiguration, windowSize)
	}
	if count == nil {
		count = WordCount
	}

	words := Words(sectionText)
	if len(words) == 0 {
		return nil, nil
	}

	chunks := make([]doctree.Chunk, 0, (len(words)+windowSize-1)/windowSize)
	for start := 0; start < len(words); start += windowSize {
		end := min(start+windowSize, len(words))
		content := strings.Join(words[start:end], " ")

		m := meta.Clone()
		m.ChunkStartToken = start
		m.ChunkEndToken = end
		m.TokenCount = count(content)

		chunks = append(chunks, doctree.Chunk{Content: content, Metadata: m})
	}
	return chunks, nil
}
