package cache

import (
	"context"
	"time"

	"github.com/dgallion1/docsplit/internal/doctree"
	"github.com/stretchr/testify/mock"
)

// MockCache is a mock implementation of the Cache interface for testing.
type MockCache struct {
	mock.Mock
}

func (m *MockCache) Get(ctx context.Context, key string) ([]doctree.Chunk, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]doctree.Chunk), args.Error(1)
}

func (m *MockCache) Set(ctx context.Context, key string, chunks []doctree.Chunk, ttl time.Duration) error {
	args := m.Called(ctx, key, chunks, ttl)
	return args.Error(0)
}

func (m *MockCache) Close() error {
	args := m.Called()
	return args.Error(0)
}
