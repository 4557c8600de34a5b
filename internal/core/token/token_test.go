package token

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var testKey = []byte("0123456789abcdef0123456789abcdef")

func newTestManager(t *testing.T, ttl time.Duration) *Manager {
	t.Helper()
	m, err := NewManager(testKey, ttl)
	if err != nil {
		t.Fatalf("NewManager: %v", err)
	}
	return m
}

func TestNewManager_RejectsShortKey(t *testing.T) {
	if _, err := NewManager([]byte("too-short"), time.Hour); err == nil {
		t.Fatalf("expected error for short key")
	}
}

func TestIssueVerify_RoundTrip(t *testing.T) {
	m := newTestManager(t, time.Hour)

	signed, err := m.Issue("alice", []string{"ROLE_ADMIN", "ROLE_TEAM_MEMBER"})
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	claims, err := m.Verify(signed)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if claims.Subject != "alice" {
		t.Fatalf("subject = %q, want alice", claims.Subject)
	}
	if len(claims.Roles) != 2 || claims.Roles[0] != "ROLE_ADMIN" {
		t.Fatalf("unexpected roles: %v", claims.Roles)
	}
	if !claims.ExpiresAt.After(claims.IssuedAt) {
		t.Fatalf("expiry %v not after issued-at %v", claims.ExpiresAt, claims.IssuedAt)
	}
}

func TestIssue_EmptySubject(t *testing.T) {
	m := newTestManager(t, time.Hour)
	if _, err := m.Issue("", nil); err == nil {
		t.Fatalf("expected error for empty subject")
	}
}

func TestVerify_Expired(t *testing.T) {
	issued := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	m := newTestManager(t, time.Hour).WithClock(func() time.Time { return issued })

	signed, err := m.Issue("bob", []string{"ROLE_TEAM_MEMBER"})
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	// Advance past the TTL and verify with the same key.
	m.WithClock(func() time.Time { return issued.Add(2 * time.Hour) })
	if _, err := m.Verify(signed); !errors.Is(err, ErrExpired) {
		t.Fatalf("expected ErrExpired, got %v", err)
	}
}

func TestVerify_NotYetExpired(t *testing.T) {
	issued := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	m := newTestManager(t, time.Hour).WithClock(func() time.Time { return issued })

	signed, _ := m.Issue("bob", nil)

	m.WithClock(func() time.Time { return issued.Add(59 * time.Minute) })
	if _, err := m.Verify(signed); err != nil {
		t.Fatalf("expected success inside TTL, got %v", err)
	}
}

func TestVerify_WrongKey(t *testing.T) {
	other, err := NewManager([]byte("ffffffffffffffffffffffffffffffff"), time.Hour)
	if err != nil {
		t.Fatalf("NewManager: %v", err)
	}
	signed, err := other.Issue("carol", nil)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	m := newTestManager(t, time.Hour)
	if _, err := m.Verify(signed); !errors.Is(err, ErrSignatureInvalid) {
		t.Fatalf("expected ErrSignatureInvalid, got %v", err)
	}
}

func TestVerify_Malformed(t *testing.T) {
	m := newTestManager(t, time.Hour)
	for _, raw := range []string{"", "not-a-token", "a.b", "a.b.c.d"} {
		if _, err := m.Verify(raw); !errors.Is(err, ErrMalformed) {
			t.Fatalf("Verify(%q): expected ErrMalformed, got %v", raw, err)
		}
	}
}

func TestVerify_RejectsUnexpectedAlgorithm(t *testing.T) {
	// A token signed with "none" must never verify, even if unexpired.
	unsigned := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{
		"sub": "mallory",
		"exp": time.Now().Add(time.Hour).Unix(),
	})
	raw, err := unsigned.SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	m := newTestManager(t, time.Hour)
	if _, err := m.Verify(raw); !errors.Is(err, ErrSignatureInvalid) {
		t.Fatalf("expected ErrSignatureInvalid, got %v", err)
	}
}
