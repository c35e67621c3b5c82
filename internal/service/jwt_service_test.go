package service

import (
	"errors"
	"strings"
	"testing"
	"time"

	"devconnector/internal/config"
)

func testJWTService(expirySeconds int64) *JWTService {
	return NewJWTService(config.JWTConfig{
		Secret: "test-secret-32-bytes-should-be-long-enough",
		Expiry: expirySeconds,
	})
}

func TestGenerateVerify_RoundTrip(t *testing.T) {
	svc := testJWTService(360000)

	token, err := svc.Generate("64f0c0ffee64f0c0ffee64f0")
	if err != nil {
		t.Fatalf("Generate error: %v", err)
	}

	userID, err := svc.Verify(token)
	if err != nil {
		t.Fatalf("Verify error: %v", err)
	}
	if userID != "64f0c0ffee64f0c0ffee64f0" {
		t.Fatalf("unexpected user id: got=%s", userID)
	}
}

func TestVerify_WrongSecretFails(t *testing.T) {
	token, err := testJWTService(360000).Generate("u1")
	if err != nil {
		t.Fatalf("Generate error: %v", err)
	}

	other := NewJWTService(config.JWTConfig{Secret: "different-secret-32-bytes-xxxxxxxxxx", Expiry: 360000})
	if _, err := other.Verify(token); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized with wrong secret, got %v", err)
	}
}

func TestVerify_Expired(t *testing.T) {
	svc := testJWTService(1)

	token, err := svc.Generate("u2")
	if err != nil {
		t.Fatalf("Generate error: %v", err)
	}

	time.Sleep(2 * time.Second)

	if _, err := svc.Verify(token); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized after expiry, got %v", err)
	}
}

func TestVerify_MalformedAndMissing(t *testing.T) {
	svc := testJWTService(360000)

	for _, token := range []string{"", "not.a.jwt", "a.b"} {
		if _, err := svc.Verify(token); !errors.Is(err, ErrUnauthorized) {
			t.Errorf("token %q: expected ErrUnauthorized, got %v", token, err)
		}
	}
}

func TestVerify_TamperedPayload(t *testing.T) {
	svc := testJWTService(360000)

	token, err := svc.Generate("victim")
	if err != nil {
		t.Fatalf("Generate error: %v", err)
	}

	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		t.Fatalf("unexpected token parts")
	}
	// Any change to the payload must break the signature.
	parts[1] = parts[1][:len(parts[1])-2] + "xx"
	tampered := strings.Join(parts, ".")

	if _, err := svc.Verify(tampered); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized for tampered token, got %v", err)
	}
}
