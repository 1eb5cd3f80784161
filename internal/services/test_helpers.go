package services

import (
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"github.com/abhi-dhakar/edignite-sub001/domain"
	"github.com/abhi-dhakar/edignite-sub001/internal/mocks"
)

// newTestRedis spins up an in-process Redis for a single test.
func newTestRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return mr, client
}

// testOTPConfig mirrors the production defaults: a 6-digit code valid for
// ten minutes, four attempts, one resend per minute.
func testOTPConfig() OTPConfig {
	return OTPConfig{
		Length:       6,
		TTL:          10 * time.Minute,
		MaxAttempts:  4,
		ResendWindow: 60 * time.Second,
	}
}

// createAuthServiceForTest builds an AuthService, substituting defaults for
// any nil collaborator.
func createAuthServiceForTest(t *testing.T,
	userRepo domain.UserRepository,
	sessionRepo domain.SessionRepository,
	passwordSvc domain.PasswordService,
	tokenSvc domain.TokenService,
	otpSvc domain.OTPService) domain.AuthService {
	t.Helper()

	if userRepo == nil {
		userRepo = mocks.NewMockUserRepository()
	}
	if sessionRepo == nil {
		sessionRepo = mocks.NewMockSessionRepository()
	}
	if passwordSvc == nil {
		passwordSvc = mocks.NewMockPasswordService()
	}
	if tokenSvc == nil {
		tokenSvc = mocks.NewMockTokenService()
	}
	if otpSvc == nil {
		otpSvc = mocks.NewMockOTPService()
	}

	return NewAuthService(userRepo, sessionRepo, passwordSvc, tokenSvc, otpSvc)
}

// pastTime is an already-elapsed deadline for expiry cases.
func pastTime() time.Time {
	return time.Now().Add(-time.Hour)
}

// createValidUser returns a donor account the way the signup flow writes it.
func createValidUser() *domain.User {
	return &domain.User{
		ID:           1,
		Name:         "Asha Kumari",
		Email:        "asha@example.com",
		PasswordHash: "hashed:password123",
		Role:         domain.RoleDonor,
		Phone:        "+911234567890",
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}
}
