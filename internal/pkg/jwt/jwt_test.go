package jwt

import (
	"errors"
	"testing"
)

const testSecret = "test-secret-key"

func TestAccessTokenRoundTrip(t *testing.T) {
	token, err := GenerateAccessToken(42, "EMP001", "Jane Doe", "admin", testSecret, 15)
	if err != nil {
		t.Fatalf("GenerateAccessToken failed: %v", err)
	}

	claims, err := ValidateAccessToken(token, testSecret)
	if err != nil {
		t.Fatalf("ValidateAccessToken failed: %v", err)
	}

	if claims.UserID != 42 {
		t.Errorf("expected user ID 42, got %d", claims.UserID)
	}
	if claims.EmployeeID != "EMP001" {
		t.Errorf("expected employee ID EMP001, got %s", claims.EmployeeID)
	}
	if claims.Role != "admin" {
		t.Errorf("expected role admin, got %s", claims.Role)
	}
}

func TestAccessTokenWrongSecret(t *testing.T) {
	token, err := GenerateAccessToken(1, "EMP001", "Jane Doe", "admin", testSecret, 15)
	if err != nil {
		t.Fatalf("GenerateAccessToken failed: %v", err)
	}

	if _, err := ValidateAccessToken(token, "other-secret"); !errors.Is(err, ErrTokenInvalid) {
		t.Errorf("expected ErrTokenInvalid, got %v", err)
	}
}

func TestAccessTokenExpired(t *testing.T) {
	token, err := GenerateAccessToken(1, "EMP001", "Jane Doe", "admin", testSecret, -1)
	if err != nil {
		t.Fatalf("GenerateAccessToken failed: %v", err)
	}

	if _, err := ValidateAccessToken(token, testSecret); !errors.Is(err, ErrTokenExpired) {
		t.Errorf("expected ErrTokenExpired, got %v", err)
	}
}

func TestRefreshTokenRoundTrip(t *testing.T) {
	token, err := GenerateRefreshToken(7, "token-id-1", testSecret, 7)
	if err != nil {
		t.Fatalf("GenerateRefreshToken failed: %v", err)
	}

	claims, err := ValidateRefreshToken(token, testSecret)
	if err != nil {
		t.Fatalf("ValidateRefreshToken failed: %v", err)
	}

	if claims.UserID != 7 {
		t.Errorf("expected user ID 7, got %d", claims.UserID)
	}
	if claims.TokenID != "token-id-1" {
		t.Errorf("expected token ID token-id-1, got %s", claims.TokenID)
	}
}

func TestRefreshTokenNotValidAsAccessToken(t *testing.T) {
	refresh, err := GenerateRefreshToken(7, "token-id-1", "refresh-secret", 7)
	if err != nil {
		t.Fatalf("GenerateRefreshToken failed: %v", err)
	}

	// Access validation uses a different secret, so a refresh token must fail.
	if _, err := ValidateAccessToken(refresh, testSecret); err == nil {
		t.Error("refresh token should not validate as an access token")
	}
}
