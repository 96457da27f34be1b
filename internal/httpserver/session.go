// internal/httpserver/session.go
//
// Round tokens.
// A client holds one round at a time. The round ID travels in an HS256 JWT,
// either as "Authorization: Bearer <token>" or in the scramble_round cookie.
// The signing key is derived from SESSION_SECRET with HKDF so the raw secret
// never signs anything directly.

package httpserver

import (
	"crypto/sha256"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/hkdf"
)

// CookieName is the cookie that carries the round token.
const CookieName = "scramble_round"

const keyInfo = "wordscramble round token v1"

var (
	// ErrNoToken means the request carried no round token.
	ErrNoToken = errors.New("session: no round token")
	// ErrBadToken means the token failed signature, expiry or claim checks.
	ErrBadToken = errors.New("session: invalid round token")
)

// roundClaims identifies the round a token was issued for.
type roundClaims struct {
	RoundID string `json:"rid"`
	jwt.RegisteredClaims
}

// Sessions issues and verifies round tokens.
type Sessions struct {
	key    []byte
	ttl    time.Duration
	secure bool
	now    func() time.Time
}

// NewSessions derives the signing key from secret. Tokens live for ttl.
// secure marks cookies Secure and SameSite=None for cross-site deployments.
func NewSessions(secret string, ttl time.Duration, secure bool) (*Sessions, error) {
	if secret == "" {
		return nil, errors.New("session: empty secret")
	}
	key := make([]byte, 32)
	if _, err := io.ReadFull(hkdf.New(sha256.New, []byte(secret), nil, []byte(keyInfo)), key); err != nil {
		return nil, fmt.Errorf("session: derive key: %w", err)
	}
	return &Sessions{key: key, ttl: ttl, secure: secure, now: time.Now}, nil
}

// Sign returns a token for roundID and its expiry.
func (s *Sessions) Sign(roundID string) (string, time.Time, error) {
	now := s.now()
	exp := now.Add(s.ttl)
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, roundClaims{
		RoundID: roundID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	})
	ss, err := t.SignedString(s.key)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("session: sign: %w", err)
	}
	return ss, exp, nil
}

// Verify checks tok and returns the round ID it names.
func (s *Sessions) Verify(tok string) (string, error) {
	var claims roundClaims
	_, err := jwt.ParseWithClaims(tok, &claims, func(*jwt.Token) (interface{}, error) {
		return s.key, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrBadToken, err)
	}
	if claims.RoundID == "" {
		return "", ErrBadToken
	}
	return claims.RoundID, nil
}

// FromRequest extracts and verifies the round token on r.
func (s *Sessions) FromRequest(r *http.Request) (string, error) {
	tok := bearerOrCookie(r)
	if tok == "" {
		return "", ErrNoToken
	}
	return s.Verify(tok)
}

// SetCookie writes the round token cookie.
func (s *Sessions) SetCookie(w http.ResponseWriter, token string, exp time.Time) {
	sameSite := http.SameSiteLaxMode
	if s.secure {
		sameSite = http.SameSiteNoneMode
	}
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: sameSite,
		Expires:  exp,
	})
}

// bearerOrCookie prefers the Authorization header over the cookie.
func bearerOrCookie(r *http.Request) string {
	if a := r.Header.Get("Authorization"); strings.HasPrefix(strings.ToLower(a), "bearer ") {
		return strings.TrimSpace(a[7:])
	}
	if c, err := r.Cookie(CookieName); err == nil {
		return c.Value
	}
	return ""
}
