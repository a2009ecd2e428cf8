package utils

import (
	"testing"
	"time"
)

func TestTokenRoundTrip(t *testing.T) {
	token, expiresAt, err := GenerateToken(42, "ada@example.com", "test-secret", time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken failed: %v", err)
	}
	if until := time.Until(expiresAt); until < 55*time.Minute || until > time.Hour {
		t.Errorf("Unexpected expiry %v from now", until)
	}

	userID, err := ParseToken(token, "test-secret")
	if err != nil {
		t.Fatalf("ParseToken failed: %v", err)
	}
	if userID != 42 {
		t.Errorf("Expected user 42, got %d", userID)
	}
}

func TestParseToken_WrongSecret(t *testing.T) {
	token, _, err := GenerateToken(42, "ada@example.com", "test-secret", time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken failed: %v", err)
	}

	if _, err := ParseToken(token, "other-secret"); err == nil {
		t.Error("Expected error for token signed with another secret")
	}
}

func TestParseToken_Expired(t *testing.T) {
	token, _, err := GenerateToken(42, "ada@example.com", "test-secret", -time.Minute)
	if err != nil {
		t.Fatalf("GenerateToken failed: %v", err)
	}

	if _, err := ParseToken(token, "test-secret"); err == nil {
		t.Error("Expected error for an expired token")
	}
}

func TestExtractBearerToken(t *testing.T) {
	tests := []struct {
		name   string
		header string
		want   string
	}{
		{"Valid", "Bearer abc.def.ghi", "abc.def.ghi"},
		{"Missing", "", ""},
		{"Wrong_Scheme", "Basic abc", ""},
		{"No_Token", "Bearer ", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExtractBearerToken(tt.header); got != tt.want {
				t.Errorf("Expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("correct-horse")
	if err != nil {
		t.Fatalf("HashPassword failed: %v", err)
	}
	if hash == "correct-horse" {
		t.Fatal("Expected a hash, got the plaintext back")
	}

	if !CheckPassword("correct-horse", hash) {
		t.Error("Expected matching password to verify")
	}
	if CheckPassword("wrong", hash) {
		t.Error("Expected mismatched password to fail")
	}
}
