package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/naemfares/weathermail/internal/domain"
)

type UserRepository struct {
	pool *pgxpool.Pool
}

func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

const userColumns = `id, first_name, last_name, email, password_hash, city,
	subscribed, registered_at, last_notified_at, last_notify_error, updated_at`

func (r *UserRepository) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	query := `
		INSERT INTO users (first_name, last_name, email, password_hash, city)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING ` + userColumns

	row := r.pool.QueryRow(ctx, query,
		user.FirstName,
		user.LastName,
		user.Email,
		user.PasswordHash,
		user.City,
	)

	created, err := scanUser(row)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, domain.ErrDuplicateEmail
		}
		return nil, err
	}
	return created, nil
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`

	row := r.pool.QueryRow(ctx, query, email)
	return scanUser(row)
}

func (r *UserRepository) SetSubscribed(ctx context.Context, email string, subscribed bool) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE users SET subscribed = $2, updated_at = NOW() WHERE email = $1`,
		email, subscribed)
	if err != nil {
		return fmt.Errorf("set subscribed: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

func (r *UserRepository) ListSubscribed(ctx context.Context) ([]*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE subscribed ORDER BY registered_at ASC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list subscribed: %w", err)
	}
	defer rows.Close()

	var users []*domain.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

func (r *UserRepository) CountSubscribed(ctx context.Context) (int64, error) {
	var n int64
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM users WHERE subscribed`).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count subscribed: %w", err)
	}
	return n, nil
}

// ClaimDue marks users as notified before the email is actually sent.
// FOR UPDATE SKIP LOCKED means overlapping notifier runs partition the due
// set instead of double-claiming; advancing last_notified_at inside the same
// statement takes the user out of the due set atomically. The pre-claim
// timestamp is returned so FailNotify can put a failed user back.
func (r *UserRepository) ClaimDue(ctx context.Context, cutoff time.Time, limit int) ([]*domain.DueUser, error) {
	query := `
		UPDATE users u
		SET    last_notified_at = NOW(),
		       updated_at       = NOW()
		FROM (
			SELECT id, email, city, last_notified_at
			FROM users
			WHERE  subscribed
			  AND  last_notified_at <= $1
			ORDER BY last_notified_at ASC
			LIMIT $2
			FOR UPDATE SKIP LOCKED
		) due
		WHERE u.id = due.id
		RETURNING u.id, due.email, due.city, due.last_notified_at`

	rows, err := r.pool.Query(ctx, query, cutoff, limit)
	if err != nil {
		return nil, fmt.Errorf("claim due users: %w", err)
	}
	defer rows.Close()

	var claimed []*domain.DueUser
	for rows.Next() {
		var d domain.DueUser
		if err := rows.Scan(&d.ID, &d.Email, &d.City, &d.PrevNotifiedAt); err != nil {
			return nil, fmt.Errorf("scan due user: %w", err)
		}
		claimed = append(claimed, &d)
	}
	return claimed, rows.Err()
}

func (r *UserRepository) CompleteNotify(ctx context.Context, id string) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE users SET last_notify_error = NULL, updated_at = NOW() WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("complete notify: %w", err)
	}
	return nil
}

func (r *UserRepository) FailNotify(ctx context.Context, id string, prev time.Time, reason string) error {
	// Guarded so a revert racing an unsubscribe/resubscribe never moves the
	// timestamp backwards past a newer claim.
	_, err := r.pool.Exec(ctx, `
		UPDATE users
		SET    last_notified_at  = $2,
		       last_notify_error = $3,
		       updated_at        = NOW()
		WHERE  id = $1 AND last_notified_at > $2`,
		id, prev, reason)
	if err != nil {
		return fmt.Errorf("fail notify: %w", err)
	}
	return nil
}

// pgx.Row and pgx.Rows both implement this.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (*domain.User, error) {
	var u domain.User
	err := row.Scan(
		&u.ID, &u.FirstName, &u.LastName, &u.Email, &u.PasswordHash, &u.City,
		&u.Subscribed, &u.RegisteredAt, &u.LastNotifiedAt, &u.LastNotifyError, &u.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("scan user: %w", err)
	}
	return &u, nil
}
