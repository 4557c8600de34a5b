// Package token issues and verifies the signed bearer tokens used for
// authentication. Tokens are self-contained HS256 JWTs carrying the subject,
// the role claims embedded at issuance, and issued-at/expiry timestamps.
// Verification is a pure function of (token, key, clock); account freshness
// is the caller's concern.
package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// minKeyLen is the minimum signing-key length in bytes accepted for HS256.
const minKeyLen = 32

// Typed verification outcomes, checked in order: structure, signature, expiry.
var (
	ErrMalformed        = errors.New("malformed token")
	ErrSignatureInvalid = errors.New("invalid token signature")
	ErrExpired          = errors.New("token has expired")
)

// Claims is the verified content of a token.
type Claims struct {
	Subject   string
	Roles     []string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

type jwtClaims struct {
	Roles []string `json:"roles"`
	jwt.RegisteredClaims
}

// Manager signs and verifies tokens with a single symmetric key. The key is
// immutable after construction and safe to share across request handlers.
type Manager struct {
	key []byte
	ttl time.Duration
	now func() time.Time
}

// NewManager validates the key material and returns a Manager. A key shorter
// than 32 bytes is a configuration error and must abort startup.
func NewManager(key []byte, ttl time.Duration) (*Manager, error) {
	if len(key) < minKeyLen {
		return nil, fmt.Errorf("signing key must be at least %d bytes, got %d", minKeyLen, len(key))
	}
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &Manager{key: key, ttl: ttl, now: time.Now}, nil
}

// WithClock overrides the time source. Intended for tests.
func (m *Manager) WithClock(now func() time.Time) *Manager {
	m.now = now
	return m
}

// Issue builds and signs a token for the subject with the given role claims.
func (m *Manager) Issue(subject string, roles []string) (string, error) {
	if subject == "" {
		return "", errors.New("subject must not be empty")
	}

	now := m.now().UTC()
	claims := jwtClaims{
		Roles: roles,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
		},
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(m.key)
}

// Verify parses and validates a raw token. First failure wins: malformed
// structure, then signature mismatch, then expiry.
func (m *Manager) Verify(raw string) (*Claims, error) {
	var claims jwtClaims
	_, err := jwt.ParseWithClaims(raw, &claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return m.key, nil
	}, jwt.WithTimeFunc(m.now), jwt.WithExpirationRequired())
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenMalformed):
			return nil, ErrMalformed
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return nil, ErrSignatureInvalid
		case errors.Is(err, jwt.ErrTokenExpired):
			return nil, ErrExpired
		default:
			return nil, ErrMalformed
		}
	}

	out := &Claims{Subject: claims.Subject, Roles: claims.Roles}
	if claims.IssuedAt != nil {
		out.IssuedAt = claims.IssuedAt.Time
	}
	if claims.ExpiresAt != nil {
		out.ExpiresAt = claims.ExpiresAt.Time
	}
	return out, nil
}
