package auth_test

import (
	"strings"
	"testing"

	"github.com/naemfares/weathermail/internal/auth"
)

func TestHashPassword_VerifiesOriginal(t *testing.T) {
	hash, err := auth.HashPassword("securepassword")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !auth.CheckPassword("securepassword", hash) {
		t.Error("hash does not verify the original password")
	}
}

func TestHashPassword_NeverStoresPlaintext(t *testing.T) {
	hash, err := auth.HashPassword("securepassword")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.Contains(hash, "securepassword") {
		t.Error("hash contains the plaintext password")
	}
}

func TestCheckPassword_RejectsWrongPassword(t *testing.T) {
	hash, err := auth.HashPassword("securepassword")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if auth.CheckPassword("wrongpassword", hash) {
		t.Error("wrong password verified")
	}
}

func TestCheckPassword_RejectsMalformedHash(t *testing.T) {
	if auth.CheckPassword("securepassword", "not-a-bcrypt-hash") {
		t.Error("malformed hash verified")
	}
}
