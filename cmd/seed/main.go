// seed registers a handful of demo users in the local dev database and
// backdates their last_notified_at so the notifier picks them up on its
// next cycle. Run: go run ./cmd/seed
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/naemfares/weathermail/internal/auth"
	"github.com/naemfares/weathermail/internal/domain"
	"github.com/naemfares/weathermail/internal/infrastructure/postgres"
)

type seedUser struct {
	firstName string
	lastName  string
	email     string
	city      string
}

var users = []seedUser{
	{"John", "Doe", "john@test.local", "Berlin"},
	{"Jane", "Roe", "jane@test.local", "Paris"},
	{"Ola", "Nordmann", "ola@test.local", "Oslo"},
	{"Mario", "Rossi", "mario@test.local", "Rome"},
}

const seedPassword = "securepassword"

func main() {
	ctx := context.Background()

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		log.Fatal("DATABASE_URL is not set")
	}

	pool, err := postgres.NewPool(ctx, dbURL)
	if err != nil {
		log.Fatalf("db connect: %v", err)
	}
	defer pool.Close()

	repo := postgres.NewUserRepository(pool)

	hash, err := auth.HashPassword(seedPassword)
	if err != nil {
		log.Fatalf("hash password: %v", err)
	}

	var created, skipped int
	for _, su := range users {
		_, err := repo.Create(ctx, &domain.User{
			FirstName:    su.firstName,
			LastName:     su.lastName,
			Email:        su.email,
			PasswordHash: hash,
			City:         su.city,
		})
		switch {
		case errors.Is(err, domain.ErrDuplicateEmail):
			skipped++
		case err != nil:
			log.Fatalf("create %s: %v", su.email, err)
		default:
			created++
		}
	}

	// Make every seeded user immediately due.
	if _, err := pool.Exec(ctx,
		`UPDATE users SET last_notified_at = NOW() - INTERVAL '15 days'
		 WHERE email LIKE '%@test.local'`); err != nil {
		log.Fatalf("backdate users: %v", err)
	}

	subscribed, err := repo.ListSubscribed(ctx)
	if err != nil {
		log.Fatalf("list subscribed: %v", err)
	}

	fmt.Println("Seed complete")
	fmt.Println()
	fmt.Printf("  Users created: %d  (skipped %d already existing)\n", created, skipped)
	fmt.Printf("  Password:      %s\n", seedPassword)
	fmt.Println()
	fmt.Println("  Subscribed users:")
	for _, u := range subscribed {
		fmt.Printf("    %-22s %-8s last notified %s\n", u.Email, u.City, u.LastNotifiedAt.Format("2006-01-02"))
	}
	fmt.Println()
	fmt.Println("How to test:")
	fmt.Println()
	fmt.Println("  curl -s -X POST http://localhost:8080/token \\")
	fmt.Println("    -d 'username=john@test.local' -d 'password=securepassword'")
	fmt.Println()
	fmt.Println("  export JWT=eyJ...")
	fmt.Println("  curl -s http://localhost:8080/me -H \"Authorization: Bearer $JWT\"")
	fmt.Println()
	fmt.Println("  Then start ./cmd/notifier — all seeded users are due, so with")
	fmt.Println("  ENV=local the forecast emails show up in the notifier log.")
}
