package indexsink

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockSink is a mock implementation of Sink for testing.
type MockSink struct {
	mock.Mock
}

func (m *MockSink) PutChunks(ctx context.Context, docID string, records []Record) error {
	args := m.Called(ctx, docID, records)
	return args.Error(0)
}
