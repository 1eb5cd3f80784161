package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/abhi-dhakar/edignite-sub001/domain"
)

// AuthServiceImpl implements domain.AuthService. Signup and password reset
// are two-phase: Begin* writes an OTP ledger entry carrying the pending
// operation, Complete* verifies the code and applies it.
type AuthServiceImpl struct {
	userRepo    domain.UserRepository
	sessionRepo domain.SessionRepository
	passwordSvc domain.PasswordService
	tokenSvc    domain.TokenService
	otpSvc      domain.OTPService
}

// NewAuthService creates a new auth service
func NewAuthService(
	userRepo domain.UserRepository,
	sessionRepo domain.SessionRepository,
	passwordSvc domain.PasswordService,
	tokenSvc domain.TokenService,
	otpSvc domain.OTPService,
) domain.AuthService {
	return &AuthServiceImpl{
		userRepo:    userRepo,
		sessionRepo: sessionRepo,
		passwordSvc: passwordSvc,
		tokenSvc:    tokenSvc,
		otpSvc:      otpSvc,
	}
}

// BeginSignup implements domain.AuthService. The password is hashed before it
// enters the ledger; the plaintext never leaves this call.
func (s *AuthServiceImpl) BeginSignup(ctx context.Context, name, email, password string, role domain.Role, phone string) (*domain.OTPTicket, error) {
	if role == "" {
		role = domain.RoleDonor
	}
	if !domain.ValidRole(role) || role == domain.RoleAdmin {
		return nil, domain.ErrInvalidRole
	}

	existingUser, err := s.userRepo.FindByEmail(ctx, email)
	if err == nil && existingUser != nil {
		return nil, domain.ErrUserAlreadyExists
	}

	hashedPassword, err := s.passwordSvc.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	payload := &domain.OTPPayload{
		Purpose:      domain.OTPPurposeSignup,
		Name:         name,
		PasswordHash: hashedPassword,
		Role:         role,
		Phone:        phone,
	}

	ticket, err := s.otpSvc.Issue(ctx, email, payload)
	if err != nil {
		return nil, err
	}

	log.Printf("%s: email=%s", domain.SignupOTPRequestEvent, email)
	return ticket, nil
}

// CompleteSignup implements domain.AuthService. A valid code materializes the
// account from the stored payload, consumes the ledger entry and logs the
// new user in.
func (s *AuthServiceImpl) CompleteSignup(ctx context.Context, email, code string) (*domain.AuthResult, error) {
	payload, err := s.otpSvc.Verify(ctx, email, code)
	if err != nil {
		return nil, err
	}
	if payload.Purpose != domain.OTPPurposeSignup {
		return nil, domain.ErrOTPInvalid
	}

	user := &domain.User{
		Name:         payload.Name,
		Email:        email,
		PasswordHash: payload.PasswordHash,
		Role:         payload.Role,
		Phone:        payload.Phone,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	if err := s.otpSvc.Consume(ctx, email); err != nil {
		log.Printf("%s: email=%s error=%v", domain.SignupFailureEvent, email, err)
	}

	log.Printf("%s: user_id=%d email=%s", domain.SignupCompletedEvent, user.ID, email)
	return s.openSession(ctx, user)
}

// ResendOTP implements domain.AuthService. The new code replaces the old one
// and keeps the pending payload; the prior code no longer verifies.
func (s *AuthServiceImpl) ResendOTP(ctx context.Context, email string) (*domain.OTPTicket, error) {
	return s.otpSvc.Reissue(ctx, email)
}

// BeginPasswordReset implements domain.AuthService
func (s *AuthServiceImpl) BeginPasswordReset(ctx context.Context, email string) (*domain.OTPTicket, error) {
	if _, err := s.userRepo.FindByEmail(ctx, email); err != nil {
		return nil, err
	}

	ticket, err := s.otpSvc.Issue(ctx, email, &domain.OTPPayload{Purpose: domain.OTPPurposePasswordReset})
	if err != nil {
		return nil, err
	}

	log.Printf("%s: email=%s", domain.ResetOTPRequestEvent, email)
	return ticket, nil
}

// VerifyResetOTP implements domain.AuthService. The ledger entry survives a
// successful verification here; it stays valid until CompletePasswordReset.
func (s *AuthServiceImpl) VerifyResetOTP(ctx context.Context, email, code string) error {
	payload, err := s.otpSvc.Verify(ctx, email, code)
	if err != nil {
		return err
	}
	if payload.Purpose != domain.OTPPurposePasswordReset {
		return domain.ErrOTPInvalid
	}
	return nil
}

// CompletePasswordReset implements domain.AuthService. The code is
// re-validated against the ledger: if the entry expired or was replaced
// between the verify step and this one, the reset fails closed.
func (s *AuthServiceImpl) CompletePasswordReset(ctx context.Context, email, code, newPassword string) error {
	payload, err := s.otpSvc.Verify(ctx, email, code)
	if err != nil {
		return err
	}
	if payload.Purpose != domain.OTPPurposePasswordReset {
		return domain.ErrOTPInvalid
	}

	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return err
	}

	hashedPassword, err := s.passwordSvc.Hash(newPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	if err := s.userRepo.UpdatePassword(ctx, user.ID, hashedPassword); err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}

	if err := s.otpSvc.Consume(ctx, email); err != nil {
		log.Printf("otp consume after reset: email=%s error=%v", email, err)
	}

	log.Printf("%s: user_id=%d email=%s", domain.PasswordResetEvent, user.ID, email)
	return nil
}

// Login implements domain.AuthService
func (s *AuthServiceImpl) Login(ctx context.Context, email, password string) (*domain.AuthResult, error) {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return nil, domain.ErrInvalidCredentials
	}

	if !s.passwordSvc.Verify(user.PasswordHash, password) {
		log.Printf("%s: email=%s", domain.UserLoginFailureEvent, email)
		return nil, domain.ErrInvalidCredentials
	}

	result, err := s.openSession(ctx, user)
	if err != nil {
		return nil, err
	}

	log.Printf("%s: user_id=%d email=%s", domain.UserLoginEvent, user.ID, email)
	return result, nil
}

// RefreshToken implements domain.AuthService
func (s *AuthServiceImpl) RefreshToken(ctx context.Context, refreshToken string) (*domain.AuthResult, error) {
	claims, err := s.tokenSvc.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, domain.ErrTokenInvalid
	}

	session, err := s.sessionRepo.FindByID(ctx, claims.SessionID)
	if err != nil {
		return nil, domain.ErrSessionNotFound
	}

	if session.ExpiresAt.Before(time.Now()) {
		return nil, domain.ErrSessionExpired
	}

	user, err := s.userRepo.FindByID(ctx, claims.UserID)
	if err != nil {
		return nil, domain.ErrUserNotFound
	}

	accessToken, err := s.tokenSvc.GenerateAccessToken(user.ID, user.Role, session.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}

	return &domain.AuthResult{
		User:         user,
		AccessToken:  accessToken,
		RefreshToken: refreshToken, // Keep same refresh token
		SessionID:    session.ID,
		ExpiresIn:    15 * 60,
	}, nil
}

// Logout implements domain.AuthService
func (s *AuthServiceImpl) Logout(ctx context.Context, sessionID string) error {
	return s.sessionRepo.Delete(ctx, sessionID)
}

// GetUserProfile implements domain.AuthService
func (s *AuthServiceImpl) GetUserProfile(ctx context.Context, userID uint) (*domain.User, error) {
	return s.userRepo.FindByID(ctx, userID)
}

func (s *AuthServiceImpl) openSession(ctx context.Context, user *domain.User) (*domain.AuthResult, error) {
	session := &domain.Session{
		ID:        "sess_" + uuid.NewString(),
		UserID:    user.ID,
		ExpiresAt: time.Now().Add(7 * 24 * time.Hour),
		CreatedAt: time.Now(),
	}

	if err := s.sessionRepo.Create(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	accessToken, err := s.tokenSvc.GenerateAccessToken(user.ID, user.Role, session.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}

	refreshToken, err := s.tokenSvc.GenerateRefreshToken(user.ID, user.Role, session.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to generate refresh token: %w", err)
	}

	return &domain.AuthResult{
		User:         user,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		SessionID:    session.ID,
		ExpiresIn:    15 * 60,
	}, nil
}
