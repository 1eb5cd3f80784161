package mocks

import (
	"context"

	"github.com/abhi-dhakar/edignite-sub001/domain"
)

// MockDonationRepository implements domain.DonationRepository interface for testing
type MockDonationRepository struct {
	CreateFunc        func(ctx context.Context, d *domain.Donation) error
	FindByOrderIDFunc func(ctx context.Context, orderID string) (*domain.Donation, error)
	SettleFunc        func(ctx context.Context, orderID string, status domain.DonationStatus, transactionID string) error
	ListFunc          func(ctx context.Context) ([]domain.Donation, error)
	ListByUserFunc    func(ctx context.Context, userID uint) ([]domain.Donation, error)
}

// NewMockDonationRepository creates a new MockDonationRepository with default behaviors
func NewMockDonationRepository() *MockDonationRepository {
	return &MockDonationRepository{}
}

func (m *MockDonationRepository) Create(ctx context.Context, d *domain.Donation) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, d)
	}
	return nil
}

func (m *MockDonationRepository) FindByOrderID(ctx context.Context, orderID string) (*domain.Donation, error) {
	if m.FindByOrderIDFunc != nil {
		return m.FindByOrderIDFunc(ctx, orderID)
	}
	return nil, domain.ErrDonationNotFound
}

func (m *MockDonationRepository) Settle(ctx context.Context, orderID string, status domain.DonationStatus, transactionID string) error {
	if m.SettleFunc != nil {
		return m.SettleFunc(ctx, orderID, status, transactionID)
	}
	return nil
}

func (m *MockDonationRepository) List(ctx context.Context) ([]domain.Donation, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx)
	}
	return []domain.Donation{}, nil
}

func (m *MockDonationRepository) ListByUser(ctx context.Context, userID uint) ([]domain.Donation, error) {
	if m.ListByUserFunc != nil {
		return m.ListByUserFunc(ctx, userID)
	}
	return []domain.Donation{}, nil
}

var _ domain.DonationRepository = (*MockDonationRepository)(nil)
