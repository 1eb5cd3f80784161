package domain

import "errors"

// Authentication errors
var (
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserAlreadyExists  = errors.New("user already exists")
	ErrInvalidRole        = errors.New("invalid role")
)

// OTP errors
var (
	ErrOTPExpired     = errors.New("otp expired or not found")
	ErrOTPInvalid     = errors.New("invalid verification code")
	ErrOTPMaxAttempts = errors.New("too many attempts - request a new code")
	ErrOTPResendWait  = errors.New("please wait before requesting a new code")
)

// Token errors
var (
	ErrTokenInvalid   = errors.New("invalid token")
	ErrTokenExpired   = errors.New("token has expired")
	ErrTokenMalformed = errors.New("malformed token")
)

// Session errors
var (
	ErrSessionNotFound = errors.New("session not found")
	ErrSessionExpired  = errors.New("session has expired")
)

// Payment errors
var (
	ErrInvalidAmount      = errors.New("donation amount must be positive")
	ErrDonationNotFound   = errors.New("donation not found")
	ErrSignatureMismatch  = errors.New("payment signature verification failed")
	ErrWebhookUnsigned    = errors.New("webhook signature verification failed")
	ErrGatewayUnavailable = errors.New("payment gateway request failed")
)

// Content errors
var (
	ErrEventNotFound     = errors.New("event not found")
	ErrEventFull         = errors.New("event is at capacity")
	ErrAlreadyRegistered = errors.New("already registered for this event")
	ErrStoryNotFound     = errors.New("story not found")
	ErrMediaNotFound     = errors.New("media not found")
	ErrProfileExists     = errors.New("volunteer profile already exists")
	ErrProfileNotFound   = errors.New("volunteer profile not found")

	ErrNotificationNotFound = errors.New("notification not found")
)

// Authorization errors
var (
	ErrUnauthorized     = errors.New("unauthorized access")
	ErrInsufficientRole = errors.New("insufficient role permissions")
)
