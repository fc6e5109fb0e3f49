package cache

import (
	"context"
	"time"

	"github.com/dgallion1/docsplit/internal/doctree"
)

// NoOpCache always misses. Used when Redis is not configured or unreachable.
type NoOpCache struct{}

func NewNoOpCache() *NoOpCache {
	return &NoOpCache{}
}

func (c *NoOpCache) Get(context.Context, string) ([]doctree.Chunk, error) { return nil, nil }

func (c *NoOpCache) Set(context.Context, string, []doctree.Chunk, time.Duration) error { return nil }

func (c *NoOpCache) Close() error { return nil }
