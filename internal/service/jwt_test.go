package service

import (
	"strings"
	"testing"

	"billboard_compliance/internal/domain"
)

func TestJWTRoundtrip(t *testing.T) {
	InitJWT("test-secret")

	token, err := GenerateJWT(42, domain.RoleInspector)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	userID, role, err := ParseJWT(token)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if userID != 42 {
		t.Errorf("user id = %d, want 42", userID)
	}
	if role != domain.RoleInspector {
		t.Errorf("role = %s, want inspector", role)
	}
}

func TestJWTTampered(t *testing.T) {
	InitJWT("test-secret")

	token, err := GenerateJWT(1, domain.RoleCitizen)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	// flip a payload character
	parts := strings.Split(token, ".")
	payload := []byte(parts[1])
	if payload[0] == 'A' {
		payload[0] = 'B'
	} else {
		payload[0] = 'A'
	}
	parts[1] = string(payload)

	if _, _, err := ParseJWT(strings.Join(parts, ".")); err == nil {
		t.Fatal("expected tampered token to be rejected")
	}
}

func TestJWTWrongSecret(t *testing.T) {
	InitJWT("secret-one")
	token, err := GenerateJWT(1, domain.RoleCitizen)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	InitJWT("secret-two")
	if _, _, err := ParseJWT(token); err == nil {
		t.Fatal("expected token signed with a different secret to be rejected")
	}
}

func TestInitJWTEmptySecret(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic on empty secret")
		}
	}()
	InitJWT("")
}

func TestJWTGarbage(t *testing.T) {
	InitJWT("test-secret")
	if _, _, err := ParseJWT("not.a.token"); err == nil {
		t.Fatal("expected garbage token to be rejected")
	}
}
