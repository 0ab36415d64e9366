package auth

import (
	"testing"
	"time"
)

func TestTokenRoundTrip(t *testing.T) {
	issuer := NewTokenIssuer("test-secret", time.Hour)
	raw, err := issuer.Issue("uuuuuuuuuuuuuuuuuuuuuuuuuuuuuuuu", "ANALISTA")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	claims, err := issuer.Parse(raw)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if claims.UserID != "uuuuuuuuuuuuuuuuuuuuuuuuuuuuuuuu" || claims.Role != "ANALISTA" {
		t.Fatalf("claims=%+v", claims)
	}
}

func TestParse_WrongSecret(t *testing.T) {
	raw, _ := NewTokenIssuer("secret-a", time.Hour).Issue("u", "GESTOR")
	if _, err := NewTokenIssuer("secret-b", time.Hour).Parse(raw); err != ErrInvalidToken {
		t.Fatalf("want ErrInvalidToken, got %v", err)
	}
}

func TestParse_Expired(t *testing.T) {
	raw, _ := NewTokenIssuer("secret", -time.Minute).Issue("u", "GESTOR")
	if _, err := NewTokenIssuer("secret", -time.Minute).Parse(raw); err != ErrInvalidToken {
		t.Fatalf("want ErrInvalidToken, got %v", err)
	}
}

func TestPassword(t *testing.T) {
	hash, err := HashPassword("hunter2!")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if !CheckPassword(hash, "hunter2!") {
		t.Fatal("correct password rejected")
	}
	if CheckPassword(hash, "wrong") {
		t.Fatal("wrong password accepted")
	}
}
