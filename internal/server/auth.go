package server

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// Authenticator gates the API behind a single shared access password and
// issues short-lived session tokens. The password hash and token secret are
// caller-supplied configuration, never process-wide state.
type Authenticator struct {
	passwordHash string
	secret       []byte
	sessionTTL   time.Duration
}

// NewAuthenticator builds an Authenticator from a bcrypt password hash and
// an HMAC signing secret.
func NewAuthenticator(passwordHash, tokenSecret string, sessionTTL time.Duration) *Authenticator {
	return &Authenticator{
		passwordHash: passwordHash,
		secret:       []byte(tokenSecret),
		sessionTTL:   sessionTTL,
	}
}

// Enabled reports whether logins can actually be verified and signed.
func (a *Authenticator) Enabled() bool {
	return a.passwordHash != "" && len(a.secret) > 0
}

// CheckPassword compares the access password against the configured hash.
func (a *Authenticator) CheckPassword(password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(a.passwordHash), []byte(password)) == nil
}

// IssueToken signs a session token valid for the configured TTL.
func (a *Authenticator) IssueToken() (string, error) {
	claims := jwt.RegisteredClaims{
		Subject:   "condo-evaluator",
		IssuedAt:  jwt.NewNumericDate(time.Now()),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(a.sessionTTL)),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(a.secret)
}

// ValidateToken verifies a session token's signature and expiry.
func (a *Authenticator) ValidateToken(tokenStr string) error {
	token, err := jwt.ParseWithClaims(tokenStr, &jwt.RegisteredClaims{}, func(token *jwt.Token) (interface{}, error) {
		return a.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !token.Valid {
		return fmt.Errorf("invalid or expired token: %w", err)
	}
	return nil
}

// Middleware rejects requests without a valid Bearer session token. With no
// password hash or token secret configured there is no key material to
// verify against (an HMAC token signed with an empty key would pass), so the
// gated routes are unavailable entirely.
func (a *Authenticator) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodOptions {
			next.ServeHTTP(w, r)
			return
		}
		if !a.Enabled() {
			http.Error(w, "login is not configured", http.StatusServiceUnavailable)
			return
		}
		h := r.Header.Get("Authorization")
		if h == "" || !strings.HasPrefix(h, "Bearer ") {
			http.Error(w, "missing token", http.StatusUnauthorized)
			return
		}
		if err := a.ValidateToken(strings.TrimPrefix(h, "Bearer ")); err != nil {
			http.Error(w, "invalid token", http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}
