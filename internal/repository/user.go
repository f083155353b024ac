package repository

import (
	"context"
	"time"

	"github.com/naemfares/weathermail/internal/domain"
)

type UserRepository interface {
	// Create inserts the user. The email unique index closes the
	// check-then-write race: a concurrent duplicate surfaces as
	// domain.ErrDuplicateEmail, never as a second row.
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)

	// SetSubscribed flips the flag in place. All other fields are untouched.
	SetSubscribed(ctx context.Context, email string, subscribed bool) error
	ListSubscribed(ctx context.Context) ([]*domain.User, error)
	CountSubscribed(ctx context.Context) (int64, error)

	// ClaimDue atomically advances last_notified_at for up to limit
	// subscribed users due at cutoff and returns them along with the
	// previous timestamp. Concurrent callers never claim the same user.
	ClaimDue(ctx context.Context, cutoff time.Time, limit int) ([]*domain.DueUser, error)
	// CompleteNotify clears the failure note after a successful send.
	CompleteNotify(ctx context.Context, id string) error
	// FailNotify restores last_notified_at to prev so the user is due again
	// next cycle, and records the failure reason.
	FailNotify(ctx context.Context, id string, prev time.Time, reason string) error
}
