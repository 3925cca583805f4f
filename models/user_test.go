package models

import (
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestValidatePassword(t *testing.T) {
	if err := ValidatePassword("short"); err == nil {
		t.Error("expected error for password under 8 characters")
	}
	if err := ValidatePassword("thisoneislongenough"); err != nil {
		t.Errorf("unexpected error for valid password: %v", err)
	}
}

func TestValidateWhiteSpacesNormalizesEmail(t *testing.T) {
	request := &SignupRequest{Email: "  Pat@Example.COM  ", Password: "longenough1"}
	if err := ValidateWhiteSpaces(request); err != nil {
		t.Fatalf("ValidateWhiteSpaces error: %v", err)
	}
	if request.Email != "pat@example.com" {
		t.Errorf("Email = %q, want trimmed and lowered", request.Email)
	}
}

func TestVerifyPassword(t *testing.T) {
	hashed, err := bcrypt.GenerateFromPassword([]byte("longenough1"), bcrypt.DefaultCost)
	if err != nil {
		t.Fatalf("bcrypt error: %v", err)
	}
	user := &User{HashedPassword: string(hashed)}

	if err := user.VerifyPassword("longenough1"); err != nil {
		t.Errorf("expected matching password to verify: %v", err)
	}
	if err := user.VerifyPassword("different"); err == nil {
		t.Error("expected mismatched password to fail")
	}
}
