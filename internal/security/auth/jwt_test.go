package auth

import (
	"testing"
	"time"
)

func TestAccessTokenRoundTrip(t *testing.T) {
	tm := NewTokenManager("access-secret", "refresh-secret", 0, 0)

	token, err := tm.GenerateAccessToken("laurenz", "laurenz@example.com")
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}
	if token == "" {
		t.Fatalf("expected non-empty token")
	}

	claims, err := tm.VerifyAccessToken(token)
	if err != nil {
		t.Fatalf("verify failed: %v", err)
	}
	if claims.Username != "laurenz" || claims.Email != "laurenz@example.com" {
		t.Fatalf("unexpected claims: %+v", claims)
	}
	if claims.ExpiresAt == nil || claims.IssuedAt == nil {
		t.Fatalf("expected iat and exp to be set")
	}
}

func TestTokenClassesUseDistinctSecrets(t *testing.T) {
	tm := NewTokenManager("access-secret", "refresh-secret", 0, 0)

	refresh, err := tm.GenerateRefreshToken("laurenz", "laurenz@example.com")
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}

	// A refresh token must not verify as an access token.
	if _, err := tm.VerifyAccessToken(refresh); err == nil {
		t.Fatalf("expected refresh token to fail access verification")
	}
	if _, err := tm.VerifyRefreshToken(refresh); err != nil {
		t.Fatalf("refresh verification failed: %v", err)
	}
}

func TestExpiredTokenRejected(t *testing.T) {
	tm := NewTokenManager("access-secret", "refresh-secret", -time.Minute, 0)

	token, err := tm.GenerateAccessToken("laurenz", "laurenz@example.com")
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}
	if _, err := tm.VerifyAccessToken(token); err == nil {
		t.Fatalf("expected expired token to be rejected")
	}
}

func TestTamperedTokenRejected(t *testing.T) {
	tm := NewTokenManager("access-secret", "refresh-secret", 0, 0)

	token, err := tm.GenerateAccessToken("laurenz", "laurenz@example.com")
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}

	tampered := token[:len(token)-2] + "xx"
	if _, err := tm.VerifyAccessToken(tampered); err == nil {
		t.Fatalf("expected tampered token to be rejected")
	}
}

func TestExtractToken(t *testing.T) {
	got, err := ExtractToken("Bearer abc.def.ghi")
	if err != nil {
		t.Fatalf("extract failed: %v", err)
	}
	if got != "abc.def.ghi" {
		t.Fatalf("got %q", got)
	}

	for _, header := range []string{"", "abc", "Basic abc", "Bearer a b"} {
		if _, err := ExtractToken(header); err == nil {
			t.Errorf("expected error for header %q", header)
		}
	}
}
