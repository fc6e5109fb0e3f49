// Package cache stores chunking results for repeated identical requests.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"time"

	"github.com/dgallion1/docsplit/internal/doctree"
)

// Cache holds chunk lists by request key.
type Cache interface {
	// Get returns nil, nil on a miss.
	Get(ctx context.Context, key string) ([]doctree.Chunk, error)
	Set(ctx context.Context, key string, chunks []doctree.Chunk, ttl time.Duration) error
	Close() error
}

// KeyInput is everything that can change a chunking result.
type KeyInput struct {
	Markdown          string                 `json:"markdown"`
	PageMap           []doctree.PageMapEntry `json:"page_map"`
	WindowSize        int                    `json:"window_size"`
	CodeAwareHeadings bool                   `json:"code_aware_headings"`
	Tokenizer         string                 `json:"tokenizer"`
}

// Key is the hex SHA-256 of the JSON encoding of in.
func Key(in KeyInput) string {
	// Marshal cannot fail for these field types.
	data, _ := json.Marshal(in)
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
