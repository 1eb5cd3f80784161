package services

import (
	"context"
	"crypto/rand"
	"encoding/json"
	"fmt"
	"math/big"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/abhi-dhakar/edignite-sub001/domain"
)

// OTPServiceImpl implements domain.OTPService using Redis persistence. The
// ledger is keyed by email: one live code per address, the latest Issue wins.
type OTPServiceImpl struct {
	notificationSvc domain.NotificationService
	redisClient     *redis.Client
	config          OTPConfig
}

type OTPConfig struct {
	Length       int
	TTL          time.Duration
	MaxAttempts  int
	ResendWindow time.Duration
}

// NewOTPService creates a new Redis-based OTP service
func NewOTPService(notificationSvc domain.NotificationService, redisClient *redis.Client, config OTPConfig) domain.OTPService {
	return &OTPServiceImpl{
		notificationSvc: notificationSvc,
		redisClient:     redisClient,
		config:          config,
	}
}

func otpKeys(email string) (code, attempts, payload, resend string) {
	return "otp:" + email, "otp:att:" + email, "otp:payload:" + email, "otp:res:" + email
}

// Issue implements domain.OTPService. It upserts the ledger entry for email,
// replacing any prior code and resetting the attempt counter and TTL, then
// delivers the code by email.
func (s *OTPServiceImpl) Issue(ctx context.Context, email string, payload *domain.OTPPayload) (*domain.OTPTicket, error) {
	codeKey, attemptsKey, payloadKey, resendKey := otpKeys(email)

	if canResend, waitTime, _ := s.CanResend(ctx, email); !canResend {
		return nil, fmt.Errorf("%w (%ds)", domain.ErrOTPResendWait, waitTime)
	}

	code, err := s.generateSecureCode()
	if err != nil {
		return nil, fmt.Errorf("failed to generate OTP code: %w", err)
	}

	payloadJSON, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal OTP payload: %w", err)
	}

	if err := s.redisClient.Set(ctx, codeKey, code, s.config.TTL).Err(); err != nil {
		return nil, fmt.Errorf("failed to store OTP in Redis: %w", err)
	}
	if err := s.redisClient.Set(ctx, attemptsKey, 0, s.config.TTL).Err(); err != nil {
		return nil, fmt.Errorf("failed to initialize attempts counter: %w", err)
	}
	if err := s.redisClient.Set(ctx, payloadKey, payloadJSON, s.config.TTL).Err(); err != nil {
		return nil, fmt.Errorf("failed to store OTP payload: %w", err)
	}
	if err := s.redisClient.Set(ctx, resendKey, 1, s.config.ResendWindow).Err(); err != nil {
		return nil, fmt.Errorf("failed to set resend throttle: %w", err)
	}

	ticket := &domain.OTPTicket{
		Email:     email,
		Code:      code,
		ExpiresAt: time.Now().Add(s.config.TTL),
		Attempts:  0,
	}

	subject := "Your Edignite verification code"
	body := fmt.Sprintf("Your verification code is: %s. Valid for %d minutes.", code, int(s.config.TTL.Minutes()))
	if err := s.notificationSvc.SendEmail(email, subject, body); err != nil {
		// Roll back the ledger entry if delivery fails
		s.redisClient.Del(ctx, codeKey, attemptsKey, payloadKey, resendKey)
		return nil, fmt.Errorf("failed to send OTP email: %w", err)
	}

	return ticket, nil
}

// Reissue implements domain.OTPService. It regenerates the code for an
// existing ledger entry, keeping the stored payload; resending for an email
// with no pending operation fails.
func (s *OTPServiceImpl) Reissue(ctx context.Context, email string) (*domain.OTPTicket, error) {
	_, _, payloadKey, _ := otpKeys(email)

	payloadJSON, err := s.redisClient.Get(ctx, payloadKey).Result()
	if err == redis.Nil {
		return nil, domain.ErrOTPExpired
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get OTP payload: %w", err)
	}

	var payload domain.OTPPayload
	if err := json.Unmarshal([]byte(payloadJSON), &payload); err != nil {
		return nil, fmt.Errorf("failed to unmarshal OTP payload: %w", err)
	}

	return s.Issue(ctx, email, &payload)
}

// Verify implements domain.OTPService. The attempt counter is incremented
// before the code comparison; hitting the ceiling deletes the entry and
// fails the call even when the submitted code is correct. On success the
// stored payload is returned and the entry is left for the caller to Consume.
func (s *OTPServiceImpl) Verify(ctx context.Context, email, code string) (*domain.OTPPayload, error) {
	codeKey, attemptsKey, payloadKey, _ := otpKeys(email)

	storedCode, err := s.redisClient.Get(ctx, codeKey).Result()
	if err == redis.Nil {
		s.redisClient.Del(ctx, attemptsKey, payloadKey)
		return nil, domain.ErrOTPExpired
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get OTP from Redis: %w", err)
	}

	attempts, err := s.redisClient.Incr(ctx, attemptsKey).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to increment attempts: %w", err)
	}

	if attempts >= int64(s.config.MaxAttempts) {
		s.redisClient.Del(ctx, codeKey, attemptsKey, payloadKey)
		return nil, domain.ErrOTPMaxAttempts
	}

	if storedCode != code {
		return nil, domain.ErrOTPInvalid
	}

	payloadJSON, err := s.redisClient.Get(ctx, payloadKey).Result()
	if err == redis.Nil {
		return nil, domain.ErrOTPExpired
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get OTP payload: %w", err)
	}

	var payload domain.OTPPayload
	if err := json.Unmarshal([]byte(payloadJSON), &payload); err != nil {
		return nil, fmt.Errorf("failed to unmarshal OTP payload: %w", err)
	}

	return &payload, nil
}

// Consume implements domain.OTPService, dropping the ledger entry after the
// pending operation has reached its terminal step.
func (s *OTPServiceImpl) Consume(ctx context.Context, email string) error {
	codeKey, attemptsKey, payloadKey, _ := otpKeys(email)
	return s.redisClient.Del(ctx, codeKey, attemptsKey, payloadKey).Err()
}

// CanResend implements domain.OTPService with Redis-based throttling
func (s *OTPServiceImpl) CanResend(ctx context.Context, email string) (bool, int64, error) {
	_, _, _, resendKey := otpKeys(email)

	ttl, err := s.redisClient.TTL(ctx, resendKey).Result()
	if err != nil {
		return false, 0, fmt.Errorf("failed to check resend TTL: %w", err)
	}

	// If TTL <= 0, key doesn't exist or has expired - can resend
	if ttl <= 0 {
		return true, 0, nil
	}

	return false, int64(ttl.Seconds()), nil
}

// generateSecureCode generates a cryptographically secure numeric code,
// zero-padded to the configured length.
func (s *OTPServiceImpl) generateSecureCode() (string, error) {
	digits := make([]byte, s.config.Length)

	for i := 0; i < s.config.Length; i++ {
		num, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			return "", fmt.Errorf("failed to generate random digit: %w", err)
		}
		digits[i] = byte('0' + num.Int64())
	}

	return string(digits), nil
}
