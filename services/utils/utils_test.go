package utils

import "testing"

func TestPasswordResetTokenRoundTrip(t *testing.T) {
	token, err := GeneratePasswordResetToken("pat@example.com", "secret")
	if err != nil {
		t.Fatalf("GeneratePasswordResetToken error: %v", err)
	}

	claims, err := VerifyResetToken(token, "secret")
	if err != nil {
		t.Fatalf("VerifyResetToken error: %v", err)
	}
	if claims.Email != "pat@example.com" {
		t.Errorf("Email = %q, want pat@example.com", claims.Email)
	}
}

func TestResetTokenRejectsWrongSecret(t *testing.T) {
	token, err := GeneratePasswordResetToken("pat@example.com", "secret-a")
	if err != nil {
		t.Fatalf("GeneratePasswordResetToken error: %v", err)
	}
	if _, err := VerifyResetToken(token, "secret-b"); err == nil {
		t.Fatal("expected verification to fail with wrong secret")
	}
}

func TestGenerateTokenRequiresSecret(t *testing.T) {
	if _, err := GeneratePasswordResetToken("pat@example.com", ""); err == nil {
		t.Fatal("expected error for empty secret")
	}
}

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("correct horse battery")
	if err != nil {
		t.Fatalf("HashPassword error: %v", err)
	}
	if !CheckPasswordHash("correct horse battery", hash) {
		t.Error("expected matching password to verify")
	}
	if CheckPasswordHash("wrong password", hash) {
		t.Error("expected mismatched password to fail")
	}
}
