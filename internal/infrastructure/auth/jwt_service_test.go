package auth

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/abhi-dhakar/edignite-sub001/domain"
)

func newTestJWTService(accessTTL, refreshTTL time.Duration) domain.TokenService {
	return NewJWTService("unit-test-secret", "edignite-test", accessTTL, refreshTTL)
}

func TestJWTService_RoundTrip(t *testing.T) {
	svc := newTestJWTService(15*time.Minute, 7*24*time.Hour)

	token, err := svc.GenerateAccessToken(42, domain.RoleDonor, "sess-1")
	if err != nil {
		t.Fatalf("GenerateAccessToken() error = %v", err)
	}
	if strings.Count(token, ".") != 2 {
		t.Fatalf("token is not a JWT: %q", token)
	}

	claims, err := svc.ValidateAccessToken(token)
	if err != nil {
		t.Fatalf("ValidateAccessToken() error = %v", err)
	}
	if claims.UserID != 42 {
		t.Errorf("UserID = %d, want 42", claims.UserID)
	}
	if claims.Role != domain.RoleDonor {
		t.Errorf("Role = %s, want %s", claims.Role, domain.RoleDonor)
	}
	if claims.SessionID != "sess-1" {
		t.Errorf("SessionID = %s, want sess-1", claims.SessionID)
	}
	if claims.ExpiresAt <= claims.IssuedAt {
		t.Errorf("exp %d should be after iat %d", claims.ExpiresAt, claims.IssuedAt)
	}
}

func TestJWTService_UniqueTokens(t *testing.T) {
	svc := newTestJWTService(15*time.Minute, 7*24*time.Hour)

	first, err := svc.GenerateAccessToken(1, domain.RoleAdmin, "sess-a")
	if err != nil {
		t.Fatalf("GenerateAccessToken() error = %v", err)
	}
	second, err := svc.GenerateAccessToken(1, domain.RoleAdmin, "sess-a")
	if err != nil {
		t.Fatalf("GenerateAccessToken() error = %v", err)
	}
	if first == second {
		t.Error("two tokens for the same identity should differ by jti")
	}
}

func TestJWTService_ExpiredToken(t *testing.T) {
	svc := newTestJWTService(-time.Minute, 7*24*time.Hour)

	token, err := svc.GenerateAccessToken(7, domain.RoleVolunteer, "sess-x")
	if err != nil {
		t.Fatalf("GenerateAccessToken() error = %v", err)
	}

	_, err = svc.ValidateAccessToken(token)
	if !errors.Is(err, domain.ErrTokenInvalid) && !errors.Is(err, domain.ErrTokenExpired) {
		t.Errorf("expected expired/invalid token error, got %v", err)
	}
}

func TestJWTService_WrongSecret(t *testing.T) {
	signer := NewJWTService("secret-a", "edignite-test", 15*time.Minute, time.Hour)
	verifier := NewJWTService("secret-b", "edignite-test", 15*time.Minute, time.Hour)

	token, err := signer.GenerateAccessToken(9, domain.RoleSponsor, "sess-9")
	if err != nil {
		t.Fatalf("GenerateAccessToken() error = %v", err)
	}

	if _, err := verifier.ValidateAccessToken(token); !errors.Is(err, domain.ErrTokenInvalid) {
		t.Errorf("expected ErrTokenInvalid across secrets, got %v", err)
	}
}

func TestJWTService_GarbageToken(t *testing.T) {
	svc := newTestJWTService(15*time.Minute, time.Hour)

	for _, tok := range []string{"", "not-a-token", "a.b.c"} {
		if _, err := svc.ValidateAccessToken(tok); !errors.Is(err, domain.ErrTokenInvalid) {
			t.Errorf("ValidateAccessToken(%q) = %v, want ErrTokenInvalid", tok, err)
		}
	}
}

func TestJWTService_RefreshTokenValidates(t *testing.T) {
	svc := newTestJWTService(15*time.Minute, 7*24*time.Hour)

	refresh, err := svc.GenerateRefreshToken(11, domain.RoleBeneficiary, "sess-r")
	if err != nil {
		t.Fatalf("GenerateRefreshToken() error = %v", err)
	}

	claims, err := svc.ValidateRefreshToken(refresh)
	if err != nil {
		t.Fatalf("ValidateRefreshToken() error = %v", err)
	}
	if claims.UserID != 11 || claims.SessionID != "sess-r" {
		t.Errorf("claims = %+v, want user 11 session sess-r", claims)
	}
}

func TestPasswordService_HashAndVerify(t *testing.T) {
	svc := NewPasswordService()

	hash, err := svc.Hash("s3curePassw0rd")
	if err != nil {
		t.Fatalf("Hash() error = %v", err)
	}
	if hash == "s3curePassw0rd" {
		t.Fatal("hash must not equal the plaintext")
	}
	if !strings.HasPrefix(hash, "$2") {
		t.Errorf("expected bcrypt hash, got %q", hash)
	}

	if !svc.Verify(hash, "s3curePassw0rd") {
		t.Error("Verify() should accept the original password")
	}
	if svc.Verify(hash, "wrongPassword") {
		t.Error("Verify() should reject a wrong password")
	}
	if svc.Verify("not-a-hash", "s3curePassw0rd") {
		t.Error("Verify() should reject a malformed stored hash")
	}
}

func TestPasswordService_HashesAreSalted(t *testing.T) {
	svc := NewPasswordService()

	first, err := svc.Hash("same-password")
	if err != nil {
		t.Fatalf("Hash() error = %v", err)
	}
	second, err := svc.Hash("same-password")
	if err != nil {
		t.Fatalf("Hash() error = %v", err)
	}
	if first == second {
		t.Error("two hashes of the same password should differ by salt")
	}
}
