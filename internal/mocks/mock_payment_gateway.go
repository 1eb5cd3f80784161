package mocks

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/abhi-dhakar/edignite-sub001/domain"
)

// MockPaymentGateway implements domain.PaymentGateway interface for testing
type MockPaymentGateway struct {
	CreateOrderFunc func(ctx context.Context, amount int64, currency, receipt string) (string, error)

	counter atomic.Int64
}

// NewMockPaymentGateway creates a new MockPaymentGateway with default behaviors
func NewMockPaymentGateway() *MockPaymentGateway {
	return &MockPaymentGateway{}
}

func (m *MockPaymentGateway) CreateOrder(ctx context.Context, amount int64, currency, receipt string) (string, error) {
	if m.CreateOrderFunc != nil {
		return m.CreateOrderFunc(ctx, amount, currency, receipt)
	}
	// Default behavior: sequential fake order ids
	return fmt.Sprintf("order_%d", m.counter.Add(1)), nil
}

var _ domain.PaymentGateway = (*MockPaymentGateway)(nil)
