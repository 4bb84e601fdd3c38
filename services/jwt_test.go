package services

import (
	"testing"
	"time"

	"github.com/engineer-english/eigo_api/shared"
)

func newTestJWTService() *JWTService {
	return &JWTService{
		AccessTokenDuration: time.Hour,
		jwtSecretKey:        "test-secret",
	}
}

func TestJWTRoundTrip(t *testing.T) {
	svc := newTestJWTService()

	token, err := svc.ToJWT("user-123", shared.RoleAdmin)
	if err != nil {
		t.Fatalf("ToJWT error: %v", err)
	}

	userID, role, err := svc.VerifyJWTToken(token)
	if err != nil {
		t.Fatalf("VerifyJWTToken error: %v", err)
	}
	if userID != "user-123" {
		t.Fatalf("userID = %q, want user-123", userID)
	}
	if role != shared.RoleAdmin {
		t.Fatalf("role = %q, want %q", role, shared.RoleAdmin)
	}
}

func TestJWTRejectsWrongSecret(t *testing.T) {
	svc := newTestJWTService()
	token, err := svc.ToJWT("user-123", shared.RoleUser)
	if err != nil {
		t.Fatalf("ToJWT error: %v", err)
	}

	other := &JWTService{AccessTokenDuration: time.Hour, jwtSecretKey: "different-secret"}
	if _, _, err := other.VerifyJWTToken(token); err == nil {
		t.Fatal("expected verification to fail with a different secret")
	}
}

func TestJWTRejectsExpiredToken(t *testing.T) {
	svc := &JWTService{
		AccessTokenDuration: -time.Minute,
		jwtSecretKey:        "test-secret",
	}
	token, err := svc.ToJWT("user-123", shared.RoleUser)
	if err != nil {
		t.Fatalf("ToJWT error: %v", err)
	}

	if _, _, err := svc.VerifyJWTToken(token); err == nil {
		t.Fatal("expected expired token to be rejected")
	}
}

func TestJWTRejectsGarbage(t *testing.T) {
	svc := newTestJWTService()
	if _, _, err := svc.VerifyJWTToken("not-a-token"); err == nil {
		t.Fatal("expected garbage token to be rejected")
	}
}

func TestGenerateTokenPair(t *testing.T) {
	svc := newTestJWTService()

	pair, err := svc.GenerateTokenPair("user-123", shared.RoleUser)
	if err != nil {
		t.Fatalf("GenerateTokenPair error: %v", err)
	}
	if pair.AccessToken == "" {
		t.Fatal("empty access token")
	}
	if pair.ExpiresIn != int64(time.Hour.Seconds()) {
		t.Fatalf("expires_in = %d, want %d", pair.ExpiresIn, int64(time.Hour.Seconds()))
	}
}

func TestExtractTokenFromHeader(t *testing.T) {
	svc := newTestJWTService()

	token, err := svc.ExtractTokenFromHeader("Bearer abc.def.ghi")
	if err != nil {
		t.Fatalf("ExtractTokenFromHeader error: %v", err)
	}
	if token != "abc.def.ghi" {
		t.Fatalf("token = %q", token)
	}

	if _, err := svc.ExtractTokenFromHeader(""); err == nil {
		t.Fatal("expected error for missing header")
	}
	if _, err := svc.ExtractTokenFromHeader("Basic abc"); err == nil {
		t.Fatal("expected error for non-bearer header")
	}
}
