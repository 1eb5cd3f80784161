package mocks

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/abhi-dhakar/edignite-sub001/domain"
)

// MockMediaStorage implements domain.MediaStorage interface for testing
type MockMediaStorage struct {
	UploadFunc func(ctx context.Context, data []byte, folder, filename, contentType string) (string, string, error)
	RemoveFunc func(ctx context.Context, publicID string) error

	counter atomic.Int64
}

// NewMockMediaStorage creates a new MockMediaStorage with default behaviors
func NewMockMediaStorage() *MockMediaStorage {
	return &MockMediaStorage{}
}

func (m *MockMediaStorage) Upload(ctx context.Context, data []byte, folder, filename, contentType string) (string, string, error) {
	if m.UploadFunc != nil {
		return m.UploadFunc(ctx, data, folder, filename, contentType)
	}
	// Default behavior: deterministic fake object keys
	id := fmt.Sprintf("%s/obj_%d", folder, m.counter.Add(1))
	return "https://media.test/" + id, id, nil
}

func (m *MockMediaStorage) Remove(ctx context.Context, publicID string) error {
	if m.RemoveFunc != nil {
		return m.RemoveFunc(ctx, publicID)
	}
	return nil
}

var _ domain.MediaStorage = (*MockMediaStorage)(nil)
