package service

import (
	"errors"
	"testing"
	"time"
)

const testSecret = "test-secret-key-that-is-at-least-256-bits-long-for-HS256"

func newTestTokenService() *TokenService {
	return NewTokenService(testSecret, time.Hour, 24*time.Hour)
}

func TestIssueAndExtractSubject(t *testing.T) {
	ts := newTestTokenService()

	token, err := ts.Issue("alice@example.com", nil)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if token == "" {
		t.Fatal("expected non-empty token")
	}

	subject, err := ts.ExtractSubject(token)
	if err != nil {
		t.Fatalf("extract subject: %v", err)
	}
	if subject != "alice@example.com" {
		t.Errorf("subject = %q, want alice@example.com", subject)
	}
}

func TestIssueWithExtraClaims(t *testing.T) {
	ts := newTestTokenService()

	token, err := ts.Issue("alice@example.com", map[string]any{"role": "USER"})
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	// registered claims win over extra claims on collision
	token2, err := ts.Issue("alice@example.com", map[string]any{"sub": "mallory@example.com"})
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	for _, tok := range []string{token, token2} {
		subject, err := ts.ExtractSubject(tok)
		if err != nil {
			t.Fatalf("extract subject: %v", err)
		}
		if subject != "alice@example.com" {
			t.Errorf("subject = %q, want alice@example.com", subject)
		}
	}
}

func TestVerifySubjectMismatch(t *testing.T) {
	ts := newTestTokenService()

	token, err := ts.Issue("alice@example.com", nil)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	if !ts.Verify(token, "alice@example.com") {
		t.Error("expected token to verify for its own subject")
	}
	if ts.Verify(token, "bob@example.com") {
		t.Error("token issued for alice must not verify for bob")
	}
}

func TestExpiredTokenFailsDistinctly(t *testing.T) {
	expired := NewTokenService(testSecret, -time.Minute, -time.Minute)

	token, err := expired.Issue("alice@example.com", nil)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	ts := newTestTokenService()
	_, err = ts.ExtractSubject(token)
	if !errors.Is(err, ErrTokenExpired) {
		t.Errorf("expected ErrTokenExpired, got %v", err)
	}
	if !ts.IsExpired(token) {
		t.Error("IsExpired should report true for an expired token")
	}
	if ts.Verify(token, "alice@example.com") {
		t.Error("expired token must not verify")
	}
}

func TestMalformedTokenFailsDistinctly(t *testing.T) {
	ts := newTestTokenService()

	for _, token := range []string{"", "garbage", "invalid.token.here"} {
		_, err := ts.ExtractSubject(token)
		if !errors.Is(err, ErrTokenMalformed) {
			t.Errorf("ExtractSubject(%q): expected ErrTokenMalformed, got %v", token, err)
		}
	}
}

func TestWrongSecretFailsDistinctly(t *testing.T) {
	other := NewTokenService("a-completely-different-secret-also-long-enough-for-HS256", time.Hour, 24*time.Hour)

	token, err := other.Issue("alice@example.com", nil)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	ts := newTestTokenService()
	_, err = ts.ExtractSubject(token)
	if !errors.Is(err, ErrTokenSignature) {
		t.Errorf("expected ErrTokenSignature, got %v", err)
	}
	if ts.Verify(token, "alice@example.com") {
		t.Error("token signed with a different secret must not verify")
	}
}

func TestRefreshTokenCarriesSameSubject(t *testing.T) {
	ts := newTestTokenService()

	refresh, err := ts.IssueRefresh("alice@example.com")
	if err != nil {
		t.Fatalf("issue refresh: %v", err)
	}

	subject, err := ts.ExtractSubject(refresh)
	if err != nil {
		t.Fatalf("extract subject: %v", err)
	}
	if subject != "alice@example.com" {
		t.Errorf("subject = %q, want alice@example.com", subject)
	}
	if ts.IsExpired(refresh) {
		t.Error("fresh refresh token must not be expired")
	}
}
