package domain

import (
	"errors"
	"fmt"
	"testing"
)

func TestOTPErrors(t *testing.T) {
	tests := []struct {
		name        string
		err         error
		expectedMsg string
	}{
		{
			name:        "ErrOTPExpired",
			err:         ErrOTPExpired,
			expectedMsg: "otp expired or not found",
		},
		{
			name:        "ErrOTPInvalid",
			err:         ErrOTPInvalid,
			expectedMsg: "invalid verification code",
		},
		{
			name:        "ErrOTPMaxAttempts",
			err:         ErrOTPMaxAttempts,
			expectedMsg: "too many attempts - request a new code",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.err.Error() != tt.expectedMsg {
				t.Errorf("error message = %q, want %q", tt.err.Error(), tt.expectedMsg)
			}
		})
	}
}

func TestPaymentErrorsAreSentinels(t *testing.T) {
	// Handlers map these with errors.Is after services wrap them; wrapping
	// must not break identity.
	wrapped := fmt.Errorf("settling order_1: %w", ErrSignatureMismatch)
	if !errors.Is(wrapped, ErrSignatureMismatch) {
		t.Error("wrapped ErrSignatureMismatch lost identity")
	}

	wrapped = fmt.Errorf("create order: %w", ErrInvalidAmount)
	if !errors.Is(wrapped, ErrInvalidAmount) {
		t.Error("wrapped ErrInvalidAmount lost identity")
	}

	if errors.Is(ErrSignatureMismatch, ErrWebhookUnsigned) {
		t.Error("distinct sentinels should not match each other")
	}
}
