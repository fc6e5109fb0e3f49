// Package indexsink delivers finished chunks to the downstream search index.
package indexsink

import (
	"context"
	"strconv"

	"github.com/dgallion1/docsplit/internal/doctree"
	"github.com/google/uuid"
)

// chunkNamespace scopes chunk IDs so they cannot collide with other SHA-1 UUIDs.
var chunkNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://docsplit.dev/chunks"))

// Record is one chunk as the index receives it.
type Record struct {
	ID       string           `json:"id"`
	DocID    string           `json:"doc_id"`
	Index    int              `json:"index"`
	Content  string           `json:"content"`
	Metadata doctree.Metadata `json:"metadata"`
}

// Sink accepts batches of records for a document. Redelivering a batch with
// the same IDs overwrites rather than duplicates.
type Sink interface {
	PutChunks(ctx context.Context, docID string, records []Record) error
}

// ChunkID is stable across runs for the same document and chunk position.
func ChunkID(docID string, index int) string {
	return uuid.NewSHA1(chunkNamespace, []byte(docID+"/"+strconv.Itoa(index))).String()
}

// Records wraps chunks for delivery, numbering them from first.
func Records(docID string, first int, chunks []doctree.Chunk) []Record {
	out := make([]Record, len(chunks))
	for i, c := range chunks {
		idx := first + i
		out[i] = Record{
			ID:       ChunkID(docID, idx),
			DocID:    docID,
			Index:    idx,
			Content:  c.Content,
			Metadata: c.Metadata.Clone(),
		}
	}
	return out
}
