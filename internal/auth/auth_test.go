package auth

import (
	"strings"
	"testing"
	"time"
)

func TestHashAndVerifyPassword(t *testing.T) {
	hashed, err := HashPassword("hunter22")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if hashed == "hunter22" {
		t.Fatal("hash must not equal plaintext")
	}
	if !VerifyPassword("hunter22", hashed) {
		t.Error("correct password should verify")
	}
	if VerifyPassword("hunter23", hashed) {
		t.Error("wrong password should not verify")
	}
}

func TestHashPassword_LongInput(t *testing.T) {
	// bcrypt alone truncates at 72 bytes; the SHA-256 prehash must make
	// these two distinguishable.
	long := strings.Repeat("a", 80)
	hashed, err := HashPassword(long)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if VerifyPassword(long+"b", hashed) {
		t.Error("passwords differing past byte 72 must not both verify")
	}
}

func TestAccessToken_RoundTrip(t *testing.T) {
	token, err := CreateAccessToken("secret", 42, time.Minute)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	claims, err := ParseAccessToken("secret", token)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if claims.UserID != 42 {
		t.Errorf("UserID = %d, want 42", claims.UserID)
	}
}

func TestParseAccessToken_WrongSecret(t *testing.T) {
	token, err := CreateAccessToken("secret", 1, time.Minute)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := ParseAccessToken("other", token); err == nil {
		t.Error("token signed with a different secret should not parse")
	}
}

func TestParseAccessToken_Expired(t *testing.T) {
	token, err := CreateAccessToken("secret", 1, -time.Minute)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := ParseAccessToken("secret", token); err == nil {
		t.Error("expired token should not parse")
	}
}

func TestParseAccessToken_Garbage(t *testing.T) {
	if _, err := ParseAccessToken("secret", "not-a-token"); err == nil {
		t.Error("garbage should not parse")
	}
}
