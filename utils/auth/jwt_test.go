package auth

import (
	"testing"
	"time"
)

func testManager() *JWTManager {
	return NewJWTManager(JWTConfig{
		Secret:        "test-secret-key",
		Expiry:        time.Hour,
		RefreshExpiry: 24 * time.Hour,
		Issuer:        "lms-test",
	})
}

func TestGenerateAndValidateAccessToken(t *testing.T) {
	m := testManager()

	token, jti, err := m.GenerateAccessToken(7, "registrar@campus.edu", "admin", 3)
	if err != nil {
		t.Fatalf("failed to generate token: %v", err)
	}
	if jti == "" {
		t.Fatal("expected non-empty JTI")
	}

	claims, err := m.ValidateToken(token)
	if err != nil {
		t.Fatalf("failed to validate token: %v", err)
	}

	if claims.UserID != 7 {
		t.Errorf("user id = %d, want 7", claims.UserID)
	}
	if claims.Email != "registrar@campus.edu" {
		t.Errorf("email = %s", claims.Email)
	}
	if claims.Role != "admin" {
		t.Errorf("role = %s", claims.Role)
	}
	if claims.TokenType != "access" {
		t.Errorf("token type = %s, want access", claims.TokenType)
	}
	if claims.TokenVersion != 3 {
		t.Errorf("token version = %d, want 3", claims.TokenVersion)
	}
	if claims.ID != jti {
		t.Errorf("claims JTI %s does not match returned JTI %s", claims.ID, jti)
	}
}

func TestRefreshTokenType(t *testing.T) {
	m := testManager()

	token, _, err := m.GenerateRefreshToken(7, "registrar@campus.edu", "admin", 0)
	if err != nil {
		t.Fatalf("failed to generate refresh token: %v", err)
	}

	claims, err := m.ValidateToken(token)
	if err != nil {
		t.Fatalf("failed to validate refresh token: %v", err)
	}
	if claims.TokenType != "refresh" {
		t.Errorf("token type = %s, want refresh", claims.TokenType)
	}
}

func TestValidateRejectsWrongSecret(t *testing.T) {
	m := testManager()
	other := NewJWTManager(JWTConfig{
		Secret:        "different-secret",
		Expiry:        time.Hour,
		RefreshExpiry: 24 * time.Hour,
		Issuer:        "lms-test",
	})

	token, _, err := m.GenerateAccessToken(1, "a@b.com", "student", 0)
	if err != nil {
		t.Fatalf("failed to generate token: %v", err)
	}

	if _, err := other.ValidateToken(token); err == nil {
		t.Error("token signed with another secret must be rejected")
	}
}

func TestValidateRejectsExpiredToken(t *testing.T) {
	m := NewJWTManager(JWTConfig{
		Secret:        "test-secret-key",
		Expiry:        -time.Minute,
		RefreshExpiry: -time.Minute,
		Issuer:        "lms-test",
	})

	token, _, err := m.GenerateAccessToken(1, "a@b.com", "student", 0)
	if err != nil {
		t.Fatalf("failed to generate token: %v", err)
	}

	if _, err := m.ValidateToken(token); err == nil {
		t.Error("expired token must be rejected")
	}
}

func TestGetJTI(t *testing.T) {
	m := testManager()

	token, jti, err := m.GenerateAccessToken(1, "a@b.com", "student", 0)
	if err != nil {
		t.Fatalf("failed to generate token: %v", err)
	}

	got, err := m.GetJTI(token)
	if err != nil {
		t.Fatalf("failed to extract JTI: %v", err)
	}
	if got != jti {
		t.Errorf("GetJTI = %s, want %s", got, jti)
	}
}
