package mocks

import (
	"context"

	"github.com/abhi-dhakar/edignite-sub001/domain"
)

// MockPaymentService implements domain.PaymentService interface for testing
type MockPaymentService struct {
	CreateOrderFunc   func(ctx context.Context, amount int64, currency, donorName, donorEmail string, userID *uint) (*domain.PaymentOrder, error)
	VerifyPaymentFunc func(ctx context.Context, orderID, paymentID, signature string) (*domain.Donation, error)
	HandleWebhookFunc func(ctx context.Context, rawBody []byte, signature string) error
}

// NewMockPaymentService creates a new MockPaymentService with default behaviors
func NewMockPaymentService() *MockPaymentService {
	return &MockPaymentService{}
}

func (m *MockPaymentService) CreateOrder(ctx context.Context, amount int64, currency, donorName, donorEmail string, userID *uint) (*domain.PaymentOrder, error) {
	if m.CreateOrderFunc != nil {
		return m.CreateOrderFunc(ctx, amount, currency, donorName, donorEmail, userID)
	}
	return &domain.PaymentOrder{OrderID: "order_1", Amount: amount, Currency: currency, KeyID: "rzp_test_key"}, nil
}

func (m *MockPaymentService) VerifyPayment(ctx context.Context, orderID, paymentID, signature string) (*domain.Donation, error) {
	if m.VerifyPaymentFunc != nil {
		return m.VerifyPaymentFunc(ctx, orderID, paymentID, signature)
	}
	return nil, domain.ErrSignatureMismatch
}

func (m *MockPaymentService) HandleWebhook(ctx context.Context, rawBody []byte, signature string) error {
	if m.HandleWebhookFunc != nil {
		return m.HandleWebhookFunc(ctx, rawBody, signature)
	}
	return nil
}

var _ domain.PaymentService = (*MockPaymentService)(nil)
