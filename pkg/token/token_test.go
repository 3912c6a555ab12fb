package token

import (
	"testing"
	"time"

	"advonex/pkg/utils"
)

func testManager(t *testing.T) *Manager {
	t.Helper()
	m, err := NewManager(utils.JWTConfig{
		AccessSecret:      "access-secret",
		AccessExpiryHours: 1,
		RefreshSecret:     "refresh-secret",
		RefreshExpiryDays: 7,
	})
	if err != nil {
		t.Fatalf("NewManager: %v", err)
	}
	return m
}

func TestNewManagerRequiresSecrets(t *testing.T) {
	if _, err := NewManager(utils.JWTConfig{RefreshSecret: "x"}); err == nil {
		t.Error("expected error without access secret")
	}
	if _, err := NewManager(utils.JWTConfig{AccessSecret: "x"}); err == nil {
		t.Error("expected error without refresh secret")
	}
}

func TestPairRoundTrip(t *testing.T) {
	m := testManager(t)

	pair, err := m.NewPair("user-1", []string{"LAWYER"}, "profile-1", "+15550001111", "a@b.com")
	if err != nil {
		t.Fatalf("NewPair: %v", err)
	}
	if pair.AccessToken == "" || pair.RefreshToken == "" {
		t.Fatal("expected both tokens")
	}
	if !pair.RefreshExpiresAt.After(pair.AccessExpiresAt) {
		t.Error("refresh token must outlive the access token")
	}

	claims, err := m.ParseAccess(pair.AccessToken)
	if err != nil {
		t.Fatalf("ParseAccess: %v", err)
	}
	if claims.Subject != "user-1" {
		t.Errorf("subject = %q, want user-1", claims.Subject)
	}
	if len(claims.Roles) != 1 || claims.Roles[0] != "LAWYER" {
		t.Errorf("roles = %v, want [LAWYER]", claims.Roles)
	}
	if claims.ProfileID != "profile-1" {
		t.Errorf("profileId = %q, want profile-1", claims.ProfileID)
	}
	if claims.Phone != "+15550001111" {
		t.Errorf("phone = %q", claims.Phone)
	}

	subject, err := m.ParseRefreshSubject(pair.RefreshToken)
	if err != nil {
		t.Fatalf("ParseRefreshSubject: %v", err)
	}
	if subject != "user-1" {
		t.Errorf("refresh subject = %q, want user-1", subject)
	}
}

func TestParseAccessRejectsWrongSecret(t *testing.T) {
	m := testManager(t)
	other, err := NewManager(utils.JWTConfig{
		AccessSecret:      "different",
		AccessExpiryHours: 1,
		RefreshSecret:     "also-different",
		RefreshExpiryDays: 7,
	})
	if err != nil {
		t.Fatalf("NewManager: %v", err)
	}

	pair, err := m.NewPair("user-1", nil, "", "", "")
	if err != nil {
		t.Fatalf("NewPair: %v", err)
	}

	if _, err := other.ParseAccess(pair.AccessToken); err == nil {
		t.Error("access token verified under the wrong secret")
	}
	if _, err := other.ParseRefreshSubject(pair.RefreshToken); err == nil {
		t.Error("refresh token verified under the wrong secret")
	}
}

func TestParseRefreshSubjectIgnoresExpiry(t *testing.T) {
	// A manager with a negative refresh TTL mints already-expired tokens
	m := testManager(t)
	m.refreshTTL = -time.Hour

	pair, err := m.NewPair("user-2", nil, "", "", "")
	if err != nil {
		t.Fatalf("NewPair: %v", err)
	}

	subject, err := m.ParseRefreshSubject(pair.RefreshToken)
	if err != nil {
		t.Fatalf("ParseRefreshSubject on expired token: %v", err)
	}
	if subject != "user-2" {
		t.Errorf("subject = %q, want user-2", subject)
	}
}

func TestRefreshTokenHashing(t *testing.T) {
	raw := "some.signed.jwt-that-is-much-longer-than-seventy-two-bytes-aaaaaaaaaaaaaaaaaaaaaaaa"

	hash, err := HashRefreshToken(raw)
	if err != nil {
		t.Fatalf("HashRefreshToken: %v", err)
	}
	if hash == raw {
		t.Error("hash must not equal the raw token")
	}

	if !CompareRefreshToken(hash, raw) {
		t.Error("matching token rejected")
	}
	if CompareRefreshToken(hash, raw+"x") {
		t.Error("non-matching token accepted")
	}
}
