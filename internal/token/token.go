package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/naemfares/weathermail/internal/domain"
)

// Issuer signs and validates the bearer tokens handed out on login.
// Tokens are HS256 JWTs carrying the user's email as subject; nothing is
// persisted, validity comes entirely from the signature and exp claim.
type Issuer struct {
	key []byte
	ttl time.Duration
}

func NewIssuer(key []byte, ttl time.Duration) *Issuer {
	return &Issuer{key: key, ttl: ttl}
}

func (i *Issuer) Issue(email string) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub": email,
		"iat": now.Unix(),
		"exp": now.Add(i.ttl).Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := t.SignedString(i.key)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Validate returns the subject email of a well-formed, unexpired token.
// Expiry is reported as domain.ErrTokenExpired; every other defect
// (signature, structure, missing subject) as domain.ErrTokenInvalid.
func (i *Issuer) Validate(raw string) (string, error) {
	t, err := jwt.Parse(raw, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return i.key, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", domain.ErrTokenExpired
		}
		return "", domain.ErrTokenInvalid
	}
	if !t.Valid {
		return "", domain.ErrTokenInvalid
	}

	claims, ok := t.Claims.(jwt.MapClaims)
	if !ok {
		return "", domain.ErrTokenInvalid
	}
	email, ok := claims["sub"].(string)
	if !ok || email == "" {
		return "", domain.ErrTokenInvalid
	}
	return email, nil
}
