package usecase

import (
	"context"

	"github.com/naemfares/weathermail/internal/repository"
)

type SubscriptionUsecase struct {
	users repository.UserRepository
}

func NewSubscriptionUsecase(users repository.UserRepository) *SubscriptionUsecase {
	return &SubscriptionUsecase{users: users}
}

// Unsubscribe flips subscribed off for the user. The record itself is
// untouched — name, city and timestamps survive, and a later resubscribe
// restores delivery without re-registration.
func (u *SubscriptionUsecase) Unsubscribe(ctx context.Context, email string) error {
	return u.users.SetSubscribed(ctx, email, false)
}

func (u *SubscriptionUsecase) Resubscribe(ctx context.Context, email string) error {
	return u.users.SetSubscribed(ctx, email, true)
}
