package mocks

import (
	"context"

	"github.com/abhi-dhakar/edignite-sub001/domain"
)

// MockOTPService implements domain.OTPService interface for testing
type MockOTPService struct {
	IssueFunc     func(ctx context.Context, email string, payload *domain.OTPPayload) (*domain.OTPTicket, error)
	ReissueFunc   func(ctx context.Context, email string) (*domain.OTPTicket, error)
	VerifyFunc    func(ctx context.Context, email, code string) (*domain.OTPPayload, error)
	ConsumeFunc   func(ctx context.Context, email string) error
	CanResendFunc func(ctx context.Context, email string) (bool, int64, error)
}

// NewMockOTPService creates a new MockOTPService with default behaviors
func NewMockOTPService() *MockOTPService {
	return &MockOTPService{}
}

func (m *MockOTPService) Issue(ctx context.Context, email string, payload *domain.OTPPayload) (*domain.OTPTicket, error) {
	if m.IssueFunc != nil {
		return m.IssueFunc(ctx, email, payload)
	}
	return &domain.OTPTicket{Email: email, Code: "123456"}, nil
}

func (m *MockOTPService) Reissue(ctx context.Context, email string) (*domain.OTPTicket, error) {
	if m.ReissueFunc != nil {
		return m.ReissueFunc(ctx, email)
	}
	return &domain.OTPTicket{Email: email, Code: "123456"}, nil
}

func (m *MockOTPService) Verify(ctx context.Context, email, code string) (*domain.OTPPayload, error) {
	if m.VerifyFunc != nil {
		return m.VerifyFunc(ctx, email, code)
	}
	return nil, domain.ErrOTPExpired
}

func (m *MockOTPService) Consume(ctx context.Context, email string) error {
	if m.ConsumeFunc != nil {
		return m.ConsumeFunc(ctx, email)
	}
	return nil
}

func (m *MockOTPService) CanResend(ctx context.Context, email string) (bool, int64, error) {
	if m.CanResendFunc != nil {
		return m.CanResendFunc(ctx, email)
	}
	return true, 0, nil
}

var _ domain.OTPService = (*MockOTPService)(nil)
