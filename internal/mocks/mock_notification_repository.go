package mocks

import (
	"context"

	"github.com/abhi-dhakar/edignite-sub001/domain"
)

// MockNotificationRepository implements domain.NotificationRepository interface for testing
type MockNotificationRepository struct {
	CreateFunc     func(ctx context.Context, n *domain.Notification) error
	ListByUserFunc func(ctx context.Context, userID uint) ([]domain.Notification, error)
	MarkReadFunc   func(ctx context.Context, id, userID uint) error
}

// NewMockNotificationRepository creates a new MockNotificationRepository with default behaviors
func NewMockNotificationRepository() *MockNotificationRepository {
	return &MockNotificationRepository{}
}

func (m *MockNotificationRepository) Create(ctx context.Context, n *domain.Notification) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, n)
	}
	return nil
}

func (m *MockNotificationRepository) ListByUser(ctx context.Context, userID uint) ([]domain.Notification, error) {
	if m.ListByUserFunc != nil {
		return m.ListByUserFunc(ctx, userID)
	}
	return []domain.Notification{}, nil
}

func (m *MockNotificationRepository) MarkRead(ctx context.Context, id, userID uint) error {
	if m.MarkReadFunc != nil {
		return m.MarkReadFunc(ctx, id, userID)
	}
	return nil
}

var _ domain.NotificationRepository = (*MockNotificationRepository)(nil)
