package server

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

func newTestAuthenticator(t *testing.T, ttl time.Duration) *Authenticator {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(testPassword), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}
	return NewAuthenticator(string(hash), "test-secret", ttl)
}

func TestCheckPassword(t *testing.T) {
	auth := newTestAuthenticator(t, time.Minute)

	if !auth.CheckPassword(testPassword) {
		t.Error("CheckPassword rejected the correct password")
	}
	if auth.CheckPassword("wrong") {
		t.Error("CheckPassword accepted a wrong password")
	}
	if auth.CheckPassword("") {
		t.Error("CheckPassword accepted an empty password")
	}
}

func TestIssueAndValidateToken(t *testing.T) {
	auth := newTestAuthenticator(t, time.Minute)

	token, err := auth.IssueToken()
	if err != nil {
		t.Fatalf("IssueToken failed: %v", err)
	}
	if err := auth.ValidateToken(token); err != nil {
		t.Errorf("ValidateToken rejected a freshly issued token: %v", err)
	}
}

func TestValidateTokenWrongSecret(t *testing.T) {
	auth := newTestAuthenticator(t, time.Minute)
	other := NewAuthenticator(auth.passwordHash, "different-secret", time.Minute)

	token, err := auth.IssueToken()
	if err != nil {
		t.Fatalf("IssueToken failed: %v", err)
	}
	if err := other.ValidateToken(token); err == nil {
		t.Error("ValidateToken accepted a token signed with a different secret")
	}
}

func TestValidateTokenExpired(t *testing.T) {
	auth := newTestAuthenticator(t, -time.Minute)

	token, err := auth.IssueToken()
	if err != nil {
		t.Fatalf("IssueToken failed: %v", err)
	}
	if err := auth.ValidateToken(token); err == nil {
		t.Error("ValidateToken accepted an expired token")
	}
}

func TestValidateTokenWrongMethod(t *testing.T) {
	auth := newTestAuthenticator(t, time.Minute)

	// Only HS256 is accepted; a token signed with another HMAC method must
	// be rejected even when the key matches.
	claims := jwt.RegisteredClaims{
		Subject:   "condo-evaluator",
		IssuedAt:  jwt.NewNumericDate(time.Now()),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Minute)),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS384, claims).SignedString(auth.secret)
	if err != nil {
		t.Fatalf("failed to sign HS384 token: %v", err)
	}
	if err := auth.ValidateToken(token); err == nil {
		t.Error("ValidateToken accepted a token signed with HS384")
	}
}

func TestValidateTokenGarbage(t *testing.T) {
	auth := newTestAuthenticator(t, time.Minute)

	if err := auth.ValidateToken("garbage"); err == nil {
		t.Error("ValidateToken accepted a garbage token")
	}
}

func TestEnabled(t *testing.T) {
	if !newTestAuthenticator(t, time.Minute).Enabled() {
		t.Error("Enabled() = false for a fully configured authenticator")
	}
	if NewAuthenticator("", "secret", time.Minute).Enabled() {
		t.Error("Enabled() = true without a password hash")
	}
	if NewAuthenticator("hash", "", time.Minute).Enabled() {
		t.Error("Enabled() = true without a token secret")
	}
}
