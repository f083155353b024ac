package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/naemfares/weathermail/internal/domain"
	"github.com/naemfares/weathermail/internal/usecase"
)

func TestUnsubscribe_FlipsFlagOff(t *testing.T) {
	var gotEmail string
	var gotSubscribed bool
	repo := &fakeUserRepo{
		setSubscribed: func(_ context.Context, email string, subscribed bool) error {
			gotEmail, gotSubscribed = email, subscribed
			return nil
		},
	}

	if err := usecase.NewSubscriptionUsecase(repo).Unsubscribe(context.Background(), "a@x.com"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotEmail != "a@x.com" || gotSubscribed {
		t.Errorf("SetSubscribed(%q, %v), want (a@x.com, false)", gotEmail, gotSubscribed)
	}
}

func TestResubscribe_FlipsFlagOn(t *testing.T) {
	var gotSubscribed bool
	repo := &fakeUserRepo{
		setSubscribed: func(_ context.Context, _ string, subscribed bool) error {
			gotSubscribed = subscribed
			return nil
		},
	}

	if err := usecase.NewSubscriptionUsecase(repo).Resubscribe(context.Background(), "a@x.com"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !gotSubscribed {
		t.Error("want SetSubscribed(..., true)")
	}
}

func TestUnsubscribe_UnknownUser_PropagatesErrUserNotFound(t *testing.T) {
	repo := &fakeUserRepo{
		setSubscribed: func(_ context.Context, _ string, _ bool) error {
			return domain.ErrUserNotFound
		},
	}

	err := usecase.NewSubscriptionUsecase(repo).Unsubscribe(context.Background(), "nobody@x.com")
	if !errors.Is(err, domain.ErrUserNotFound) {
		t.Errorf("want ErrUserNotFound, got %v", err)
	}
}
