package domain

import (
	"errors"
	"time"
)

var (
	ErrDuplicateEmail     = errors.New("email already registered")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTokenInvalid       = errors.New("token is invalid")
	ErrTokenExpired       = errors.New("token has expired")
	ErrProvider           = errors.New("weather provider failure")
	ErrDelivery           = errors.New("email delivery failure")
)

type User struct {
	ID           string
	FirstName    string
	LastName     string
	Email        string
	PasswordHash string
	City         string
	Subscribed   bool

	// RegisteredAt is set once at insert. LastNotifiedAt starts equal to it
	// and advances each time a forecast email goes out.
	RegisteredAt   time.Time
	LastNotifiedAt time.Time

	LastNotifyError *string // nil after a successful send

	UpdatedAt time.Time
}

// DueUser is a user claimed for notification. PrevNotifiedAt holds the
// last_notified_at value before the claim so a failed send can restore it.
type DueUser struct {
	ID             string
	Email          string
	City           string
	PrevNotifiedAt time.Time
}
