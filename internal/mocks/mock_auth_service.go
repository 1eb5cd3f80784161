package mocks

import (
	"context"

	"github.com/abhi-dhakar/edignite-sub001/domain"
)

// MockAuthService implements domain.AuthService interface for testing
type MockAuthService struct {
	BeginSignupFunc           func(ctx context.Context, name, email, password string, role domain.Role, phone string) (*domain.OTPTicket, error)
	CompleteSignupFunc        func(ctx context.Context, email, code string) (*domain.AuthResult, error)
	ResendOTPFunc             func(ctx context.Context, email string) (*domain.OTPTicket, error)
	BeginPasswordResetFunc    func(ctx context.Context, email string) (*domain.OTPTicket, error)
	VerifyResetOTPFunc        func(ctx context.Context, email, code string) error
	CompletePasswordResetFunc func(ctx context.Context, email, code, newPassword string) error
	LoginFunc                 func(ctx context.Context, email, password string) (*domain.AuthResult, error)
	RefreshTokenFunc          func(ctx context.Context, refreshToken string) (*domain.AuthResult, error)
	LogoutFunc                func(ctx context.Context, sessionID string) error
	GetUserProfileFunc        func(ctx context.Context, userID uint) (*domain.User, error)
}

// NewMockAuthService creates a new MockAuthService with default behaviors
func NewMockAuthService() *MockAuthService {
	return &MockAuthService{}
}

func (m *MockAuthService) BeginSignup(ctx context.Context, name, email, password string, role domain.Role, phone string) (*domain.OTPTicket, error) {
	if m.BeginSignupFunc != nil {
		return m.BeginSignupFunc(ctx, name, email, password, role, phone)
	}
	return &domain.OTPTicket{Email: email, Code: "123456"}, nil
}

func (m *MockAuthService) CompleteSignup(ctx context.Context, email, code string) (*domain.AuthResult, error) {
	if m.CompleteSignupFunc != nil {
		return m.CompleteSignupFunc(ctx, email, code)
	}
	return nil, domain.ErrOTPExpired
}

func (m *MockAuthService) ResendOTP(ctx context.Context, email string) (*domain.OTPTicket, error) {
	if m.ResendOTPFunc != nil {
		return m.ResendOTPFunc(ctx, email)
	}
	return &domain.OTPTicket{Email: email, Code: "123456"}, nil
}

func (m *MockAuthService) BeginPasswordReset(ctx context.Context, email string) (*domain.OTPTicket, error) {
	if m.BeginPasswordResetFunc != nil {
		return m.BeginPasswordResetFunc(ctx, email)
	}
	return &domain.OTPTicket{Email: email, Code: "123456"}, nil
}

func (m *MockAuthService) VerifyResetOTP(ctx context.Context, email, code string) error {
	if m.VerifyResetOTPFunc != nil {
		return m.VerifyResetOTPFunc(ctx, email, code)
	}
	return nil
}

func (m *MockAuthService) CompletePasswordReset(ctx context.Context, email, code, newPassword string) error {
	if m.CompletePasswordResetFunc != nil {
		return m.CompletePasswordResetFunc(ctx, email, code, newPassword)
	}
	return nil
}

func (m *MockAuthService) Login(ctx context.Context, email, password string) (*domain.AuthResult, error) {
	if m.LoginFunc != nil {
		return m.LoginFunc(ctx, email, password)
	}
	return nil, domain.ErrInvalidCredentials
}

func (m *MockAuthService) RefreshToken(ctx context.Context, refreshToken string) (*domain.AuthResult, error) {
	if m.RefreshTokenFunc != nil {
		return m.RefreshTokenFunc(ctx, refreshToken)
	}
	return nil, domain.ErrTokenInvalid
}

func (m *MockAuthService) Logout(ctx context.Context, sessionID string) error {
	if m.LogoutFunc != nil {
		return m.LogoutFunc(ctx, sessionID)
	}
	return nil
}

func (m *MockAuthService) GetUserProfile(ctx context.Context, userID uint) (*domain.User, error) {
	if m.GetUserProfileFunc != nil {
		return m.GetUserProfileFunc(ctx, userID)
	}
	return nil, domain.ErrUserNotFound
}

var _ domain.AuthService = (*MockAuthService)(nil)
