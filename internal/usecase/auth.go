package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/naemfares/weathermail/internal/auth"
	"github.com/naemfares/weathermail/internal/domain"
	"github.com/naemfares/weathermail/internal/repository"
	"github.com/naemfares/weathermail/internal/token"
)

type AuthUsecase struct {
	users  repository.UserRepository
	tokens *token.Issuer
}

func NewAuthUsecase(users repository.UserRepository, tokens *token.Issuer) *AuthUsecase {
	return &AuthUsecase{users: users, tokens: tokens}
}

type RegisterInput struct {
	FirstName string
	LastName  string
	Email     string
	Password  string
	City      string
}

// Register hashes the password and inserts the user. New users start
// subscribed; the duplicate-email check happens in the store's insert,
// not here, so concurrent registrations cannot slip past it.
func (u *AuthUsecase) Register(ctx context.Context, input RegisterInput) (*domain.User, error) {
	hash, err := auth.HashPassword(input.Password)
	if err != nil {
		return nil, fmt.Errorf("register: %w", err)
	}

	created, err := u.users.Create(ctx, &domain.User{
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		Email:        input.Email,
		PasswordHash: hash,
		City:         input.City,
	})
	if err != nil {
		if errors.Is(err, domain.ErrDuplicateEmail) {
			return nil, domain.ErrDuplicateEmail
		}
		return nil, fmt.Errorf("create user: %w", err)
	}
	return created, nil
}

// Login verifies the credentials and returns a signed bearer token.
// Unknown email and wrong password are indistinguishable to the caller.
func (u *AuthUsecase) Login(ctx context.Context, email, password string) (string, error) {
	user, err := u.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return "", domain.ErrInvalidCredentials
		}
		return "", fmt.Errorf("find user: %w", err)
	}

	if !auth.CheckPassword(password, user.PasswordHash) {
		return "", domain.ErrInvalidCredentials
	}

	signed, err := u.tokens.Issue(user.Email)
	if err != nil {
		return "", fmt.Errorf("issue token: %w", err)
	}
	return signed, nil
}

func (u *AuthUsecase) CurrentUser(ctx context.Context, email string) (*domain.User, error) {
	user, err := u.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return user, nil
}
