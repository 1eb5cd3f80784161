package services

import (
	"context"
	"errors"
	"testing"

	"github.com/abhi-dhakar/edignite-sub001/domain"
	"github.com/abhi-dhakar/edignite-sub001/internal/mocks"
)

func TestAuthService_BeginSignup(t *testing.T) {
	t.Run("hashes password into ledger payload", func(t *testing.T) {
		otpSvc := mocks.NewMockOTPService()
		var issued *domain.OTPPayload
		otpSvc.IssueFunc = func(ctx context.Context, email string, payload *domain.OTPPayload) (*domain.OTPTicket, error) {
			issued = payload
			return &domain.OTPTicket{Email: email, Code: "123456"}, nil
		}
		svc := createAuthServiceForTest(t, nil, nil, nil, nil, otpSvc)

		_, err := svc.BeginSignup(context.Background(), "Asha Kumari", "asha@example.com", "password123", "", "+911234567890")
		if err != nil {
			t.Fatalf("BeginSignup: %v", err)
		}
		if issued == nil {
			t.Fatal("expected OTP to be issued")
		}
		if issued.Purpose != domain.OTPPurposeSignup {
			t.Errorf("payload purpose = %q, want signup", issued.Purpose)
		}
		if issued.PasswordHash != "hashed:password123" {
			t.Errorf("payload hash = %q, want hashed form", issued.PasswordHash)
		}
		if issued.Role != domain.RoleDonor {
			t.Errorf("payload role = %q, want default donor", issued.Role)
		}
	})

	t.Run("rejects duplicate email", func(t *testing.T) {
		userRepo := mocks.NewMockUserRepository()
		userRepo.FindByEmailFunc = func(ctx context.Context, email string) (*domain.User, error) {
			return createValidUser(), nil
		}
		svc := createAuthServiceForTest(t, userRepo, nil, nil, nil, nil)

		_, err := svc.BeginSignup(context.Background(), "Asha", "asha@example.com", "password123", "", "")
		if !errors.Is(err, domain.ErrUserAlreadyExists) {
			t.Errorf("BeginSignup = %v, want ErrUserAlreadyExists", err)
		}
	})

	t.Run("rejects admin and unknown roles", func(t *testing.T) {
		svc := createAuthServiceForTest(t, nil, nil, nil, nil, nil)

		for _, role := range []domain.Role{domain.RoleAdmin, "superuser"} {
			_, err := svc.BeginSignup(context.Background(), "X", "x@example.com", "password123", role, "")
			if !errors.Is(err, domain.ErrInvalidRole) {
				t.Errorf("BeginSignup(role=%q) = %v, want ErrInvalidRole", role, err)
			}
		}
	})
}

func TestAuthService_CompleteSignup(t *testing.T) {
	t.Run("creates account from payload and opens session", func(t *testing.T) {
		otpSvc := mocks.NewMockOTPService()
		otpSvc.VerifyFunc = func(ctx context.Context, email, code string) (*domain.OTPPayload, error) {
			return &domain.OTPPayload{
				Purpose:      domain.OTPPurposeSignup,
				Name:         "Asha Kumari",
				PasswordHash: "hashed:password123",
				Role:         domain.RoleVolunteer,
				Phone:        "+911234567890",
			}, nil
		}
		consumed := false
		otpSvc.ConsumeFunc = func(ctx context.Context, email string) error {
			consumed = true
			return nil
		}

		userRepo := mocks.NewMockUserRepository()
		var created *domain.User
		userRepo.CreateFunc = func(ctx context.Context, user *domain.User) error {
			user.ID = 7
			created = user
			return nil
		}

		svc := createAuthServiceForTest(t, userRepo, nil, nil, nil, otpSvc)

		result, err := svc.CompleteSignup(context.Background(), "asha@example.com", "123456")
		if err != nil {
			t.Fatalf("CompleteSignup: %v", err)
		}
		if created == nil || created.Role != domain.RoleVolunteer || created.Email != "asha@example.com" {
			t.Fatalf("created user = %+v, want volunteer asha@example.com", created)
		}
		if !consumed {
			t.Error("expected ledger entry to be consumed")
		}
		if result.AccessToken == "" || result.RefreshToken == "" || result.SessionID == "" {
			t.Errorf("expected session tokens, got %+v", result)
		}
	})

	t.Run("rejects a reset code", func(t *testing.T) {
		otpSvc := mocks.NewMockOTPService()
		otpSvc.VerifyFunc = func(ctx context.Context, email, code string) (*domain.OTPPayload, error) {
			return &domain.OTPPayload{Purpose: domain.OTPPurposePasswordReset}, nil
		}
		svc := createAuthServiceForTest(t, nil, nil, nil, nil, otpSvc)

		_, err := svc.CompleteSignup(context.Background(), "asha@example.com", "123456")
		if !errors.Is(err, domain.ErrOTPInvalid) {
			t.Errorf("CompleteSignup = %v, want ErrOTPInvalid", err)
		}
	})

	t.Run("propagates verification errors", func(t *testing.T) {
		otpSvc := mocks.NewMockOTPService()
		otpSvc.VerifyFunc = func(ctx context.Context, email, code string) (*domain.OTPPayload, error) {
			return nil, domain.ErrOTPMaxAttempts
		}
		svc := createAuthServiceForTest(t, nil, nil, nil, nil, otpSvc)

		_, err := svc.CompleteSignup(context.Background(), "asha@example.com", "123456")
		if !errors.Is(err, domain.ErrOTPMaxAttempts) {
			t.Errorf("CompleteSignup = %v, want ErrOTPMaxAttempts", err)
		}
	})
}

func TestAuthService_PasswordReset(t *testing.T) {
	t.Run("begin requires an existing account", func(t *testing.T) {
		svc := createAuthServiceForTest(t, nil, nil, nil, nil, nil)

		_, err := svc.BeginPasswordReset(context.Background(), "nobody@example.com")
		if !errors.Is(err, domain.ErrUserNotFound) {
			t.Errorf("BeginPasswordReset = %v, want ErrUserNotFound", err)
		}
	})

	t.Run("complete re-validates the code and updates the hash", func(t *testing.T) {
		otpSvc := mocks.NewMockOTPService()
		otpSvc.VerifyFunc = func(ctx context.Context, email, code string) (*domain.OTPPayload, error) {
			if code != "654321" {
				return nil, domain.ErrOTPInvalid
			}
			return &domain.OTPPayload{Purpose: domain.OTPPurposePasswordReset}, nil
		}

		userRepo := mocks.NewMockUserRepository()
		userRepo.FindByEmailFunc = func(ctx context.Context, email string) (*domain.User, error) {
			return createValidUser(), nil
		}
		var updatedHash string
		userRepo.UpdatePasswordFunc = func(ctx context.Context, userID uint, passwordHash string) error {
			updatedHash = passwordHash
			return nil
		}

		svc := createAuthServiceForTest(t, userRepo, nil, nil, nil, otpSvc)

		if err := svc.CompletePasswordReset(context.Background(), "asha@example.com", "000000", "newpassword"); !errors.Is(err, domain.ErrOTPInvalid) {
			t.Errorf("CompletePasswordReset with wrong code = %v, want ErrOTPInvalid", err)
		}
		if updatedHash != "" {
			t.Fatal("password must not change on a failed code")
		}

		if err := svc.CompletePasswordReset(context.Background(), "asha@example.com", "654321", "newpassword"); err != nil {
			t.Fatalf("CompletePasswordReset: %v", err)
		}
		if updatedHash != "hashed:newpassword" {
			t.Errorf("updated hash = %q, want hashed form of new password", updatedHash)
		}
	})

	t.Run("verify step rejects a signup code", func(t *testing.T) {
		otpSvc := mocks.NewMockOTPService()
		otpSvc.VerifyFunc = func(ctx context.Context, email, code string) (*domain.OTPPayload, error) {
			return &domain.OTPPayload{Purpose: domain.OTPPurposeSignup}, nil
		}
		svc := createAuthServiceForTest(t, nil, nil, nil, nil, otpSvc)

		if err := svc.VerifyResetOTP(context.Background(), "asha@example.com", "123456"); !errors.Is(err, domain.ErrOTPInvalid) {
			t.Errorf("VerifyResetOTP = %v, want ErrOTPInvalid", err)
		}
	})
}

func TestAuthService_Login(t *testing.T) {
	userRepo := mocks.NewMockUserRepository()
	userRepo.FindByEmailFunc = func(ctx context.Context, email string) (*domain.User, error) {
		if email == "asha@example.com" {
			return createValidUser(), nil
		}
		return nil, domain.ErrUserNotFound
	}
	svc := createAuthServiceForTest(t, userRepo, nil, nil, nil, nil)

	t.Run("valid credentials", func(t *testing.T) {
		result, err := svc.Login(context.Background(), "asha@example.com", "password123")
		if err != nil {
			t.Fatalf("Login: %v", err)
		}
		if result.User.Email != "asha@example.com" || result.AccessToken == "" {
			t.Errorf("unexpected result: %+v", result)
		}
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := svc.Login(context.Background(), "asha@example.com", "wrong")
		if !errors.Is(err, domain.ErrInvalidCredentials) {
			t.Errorf("Login = %v, want ErrInvalidCredentials", err)
		}
	})

	t.Run("unknown email maps to invalid credentials", func(t *testing.T) {
		_, err := svc.Login(context.Background(), "nobody@example.com", "password123")
		if !errors.Is(err, domain.ErrInvalidCredentials) {
			t.Errorf("Login = %v, want ErrInvalidCredentials", err)
		}
	})
}

func TestAuthService_RefreshToken(t *testing.T) {
	t.Run("expired session", func(t *testing.T) {
		tokenSvc := mocks.NewMockTokenService()
		tokenSvc.ValidateRefreshTokenFunc = func(token string) (*domain.TokenClaims, error) {
			return &domain.TokenClaims{UserID: 1, SessionID: "sess_x"}, nil
		}
		sessionRepo := mocks.NewMockSessionRepository()
		sessionRepo.FindByIDFunc = func(ctx context.Context, sessionID string) (*domain.Session, error) {
			return &domain.Session{ID: sessionID, UserID: 1, ExpiresAt: pastTime()}, nil
		}
		svc := createAuthServiceForTest(t, nil, sessionRepo, nil, tokenSvc, nil)

		_, err := svc.RefreshToken(context.Background(), "refresh-token")
		if !errors.Is(err, domain.ErrSessionExpired) {
			t.Errorf("RefreshToken = %v, want ErrSessionExpired", err)
		}
	})

	t.Run("invalid token", func(t *testing.T) {
		svc := createAuthServiceForTest(t, nil, nil, nil, nil, nil)

		_, err := svc.RefreshToken(context.Background(), "garbage")
		if !errors.Is(err, domain.ErrTokenInvalid) {
			t.Errorf("RefreshToken = %v, want ErrTokenInvalid", err)
		}
	})
}
