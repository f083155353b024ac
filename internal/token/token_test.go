package token_test

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/naemfares/weathermail/internal/domain"
	"github.com/naemfares/weathermail/internal/token"
)

const testKey = "token-test-secret-at-least-32-chars!"

func TestIssue_ValidatesToSameEmail(t *testing.T) {
	iss := token.NewIssuer([]byte(testKey), 30*time.Minute)

	signed, err := iss.Issue("a@x.com")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	email, err := iss.Validate(signed)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if email != "a@x.com" {
		t.Errorf("email = %q, want %q", email, "a@x.com")
	}
}

func TestValidate_ExpiredToken_ReturnsErrTokenExpired(t *testing.T) {
	iss := token.NewIssuer([]byte(testKey), -time.Minute)

	signed, err := iss.Issue("a@x.com")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_, err = iss.Validate(signed)
	if !errors.Is(err, domain.ErrTokenExpired) {
		t.Errorf("want ErrTokenExpired, got %v", err)
	}
}

func TestValidate_Garbage_ReturnsErrTokenInvalid(t *testing.T) {
	iss := token.NewIssuer([]byte(testKey), 30*time.Minute)

	_, err := iss.Validate("not.a.jwt")
	if !errors.Is(err, domain.ErrTokenInvalid) {
		t.Errorf("want ErrTokenInvalid, got %v", err)
	}
}

func TestValidate_WrongKey_ReturnsErrTokenInvalid(t *testing.T) {
	other := token.NewIssuer([]byte("another-secret-also-32-chars-long!!!"), 30*time.Minute)
	signed, err := other.Issue("a@x.com")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	iss := token.NewIssuer([]byte(testKey), 30*time.Minute)
	_, err = iss.Validate(signed)
	if !errors.Is(err, domain.ErrTokenInvalid) {
		t.Errorf("want ErrTokenInvalid, got %v", err)
	}
}

func TestValidate_MissingSubject_ReturnsErrTokenInvalid(t *testing.T) {
	claims := jwt.MapClaims{
		"iat": time.Now().Unix(),
		"exp": time.Now().Add(time.Hour).Unix(),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testKey))
	if err != nil {
		t.Fatalf("sign jwt: %v", err)
	}

	iss := token.NewIssuer([]byte(testKey), 30*time.Minute)
	if _, err := iss.Validate(signed); !errors.Is(err, domain.ErrTokenInvalid) {
		t.Errorf("want ErrTokenInvalid, got %v", err)
	}
}
