package auth

import (
	"errors"
	"strings"
	"testing"
	"time"
)

func TestHMACStrategyRoundTrip(t *testing.T) {
	s := NewHMACStrategy("secret", Options{TTL: time.Hour})

	token, err := s.IssueToken(42)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.Count(token, ".") != 2 {
		t.Fatalf("unexpected token shape %q", token)
	}

	userID, err := s.ParseToken(token)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if userID != 42 {
		t.Fatalf("expected user 42, got %d", userID)
	}
}

func TestHMACStrategyRejectsTamperedToken(t *testing.T) {
	s := NewHMACStrategy("secret", Options{TTL: time.Hour})
	token, _ := s.IssueToken(42)

	forged := strings.Replace(token, "42.", "43.", 1)
	if _, err := s.ParseToken(forged); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected invalid token error, got %v", err)
	}
}

func TestHMACStrategyRejectsWrongSecret(t *testing.T) {
	issuer := NewHMACStrategy("secret-a", Options{TTL: time.Hour})
	verifier := NewHMACStrategy("secret-b", Options{TTL: time.Hour})

	token, _ := issuer.IssueToken(42)
	if _, err := verifier.ParseToken(token); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected invalid token error, got %v", err)
	}
}

func TestHMACStrategyRejectsExpiredToken(t *testing.T) {
	s := NewHMACStrategy("secret", Options{TTL: -time.Minute})
	token, _ := s.IssueToken(42)

	if _, err := s.ParseToken(token); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected invalid token error, got %v", err)
	}
}

func TestHMACStrategyRejectsGarbage(t *testing.T) {
	s := NewHMACStrategy("secret", Options{})
	for _, token := range []string{"", ".", "42", "42.100", "a.b.c", "42.100.", "1.2.3.4"} {
		if _, err := s.ParseToken(token); !errors.Is(err, ErrInvalidToken) {
			t.Fatalf("expected invalid token error for %q, got %v", token, err)
		}
	}
}

func TestHMACStrategyName(t *testing.T) {
	if got := NewHMACStrategy("s", Options{}).Name(); got != "hmac" {
		t.Fatalf("unexpected name %q", got)
	}
}
