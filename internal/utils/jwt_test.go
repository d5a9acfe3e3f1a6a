package utils

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func TestNewAccessTokenClaims(t *testing.T) {
	at, err := NewAccessToken("secret", "alice", "CUSTOMER", 15)
	if err != nil {
		t.Fatalf("NewAccessToken: %v", err)
	}
	if at.Token == "" {
		t.Fatalf("expected non-empty token")
	}
	tok, err := jwt.Parse(at.Token, func(tk *jwt.Token) (interface{}, error) {
		return []byte("secret"), nil
	})
	if err != nil || !tok.Valid {
		t.Fatalf("parse token: %v", err)
	}
	claims, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		t.Fatalf("expected map claims")
	}
	if claims["sub"] != "alice" {
		t.Fatalf("expected sub=alice, got %v", claims["sub"])
	}
	if claims["role"] != "CUSTOMER" {
		t.Fatalf("expected role=CUSTOMER, got %v", claims["role"])
	}
	if !at.Exp.After(time.Now()) {
		t.Fatalf("expected expiry in the future")
	}
}

func TestRefreshTokenAndHash(t *testing.T) {
	rt, err := NewRefreshToken(7)
	if err != nil {
		t.Fatalf("NewRefreshToken: %v", err)
	}
	if len(rt.Raw) != 96 { // 48 random bytes hex encoded
		t.Fatalf("expected 96 hex chars, got %d", len(rt.Raw))
	}
	h1 := HashRefreshRaw(rt.Raw)
	h2 := HashRefreshRaw(rt.Raw)
	if h1 != h2 {
		t.Fatalf("hash must be deterministic")
	}
	if h1 == rt.Raw {
		t.Fatalf("hash must differ from raw token")
	}
	other, err := NewRefreshToken(7)
	if err != nil {
		t.Fatalf("NewRefreshToken: %v", err)
	}
	if HashRefreshRaw(other.Raw) == h1 {
		t.Fatalf("distinct tokens must hash differently")
	}
}
