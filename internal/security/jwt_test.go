package security

import (
	"errors"
	"testing"
	"time"
)

func TestAccessTokenRoundTrip(t *testing.T) {
	token, errGenerate := GenerateAccessToken("secret", 42, "u@example.com", "user", time.Minute)
	if errGenerate != nil {
		t.Fatalf("generate: %v", errGenerate)
	}

	claims, errParse := ParseAccessToken("secret", token)
	if errParse != nil {
		t.Fatalf("parse: %v", errParse)
	}
	if claims.UserID != 42 || claims.Email != "u@example.com" || claims.Role != "user" {
		t.Fatalf("unexpected claims: %+v", claims)
	}
}

func TestAccessTokenWrongSecret(t *testing.T) {
	token, errGenerate := GenerateAccessToken("secret", 1, "u@example.com", "user", time.Minute)
	if errGenerate != nil {
		t.Fatalf("generate: %v", errGenerate)
	}
	if _, errParse := ParseAccessToken("other-secret", token); !errors.Is(errParse, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", errParse)
	}
}

func TestAccessTokenExpired(t *testing.T) {
	token, errGenerate := GenerateAccessToken("secret", 1, "u@example.com", "user", -time.Minute)
	if errGenerate != nil {
		t.Fatalf("generate: %v", errGenerate)
	}
	if _, errParse := ParseAccessToken("secret", token); !errors.Is(errParse, ErrExpiredToken) {
		t.Fatalf("expected ErrExpiredToken, got %v", errParse)
	}
}

func TestRefreshTokenRoundTrip(t *testing.T) {
	token, errGenerate := GenerateRefreshToken("secret", 7, time.Hour)
	if errGenerate != nil {
		t.Fatalf("generate: %v", errGenerate)
	}
	claims, errParse := ParseRefreshToken("secret", token)
	if errParse != nil {
		t.Fatalf("parse: %v", errParse)
	}
	if claims.UserID != 7 {
		t.Fatalf("unexpected claims: %+v", claims)
	}
}

func TestParseRefreshTokenGarbage(t *testing.T) {
	if _, errParse := ParseRefreshToken("secret", "garbage"); !errors.Is(errParse, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", errParse)
	}
}
