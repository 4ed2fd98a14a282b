// Package postgres provides the PostgreSQL implementation of the
// subscribers repository.
package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/mkraev/launchlist/internal/domain"
	"github.com/mkraev/launchlist/internal/subscribers"
)

// pgUniqueViolation is the SQLSTATE code for unique constraint violations.
const pgUniqueViolation = "23505"

// Repository implements subscribers.Repository using PostgreSQL.
type Repository struct {
	db *pgxpool.Pool
}

// NewRepository creates a new PostgreSQL repository.
func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

// Create inserts a subscriber row. The partial unique indexes on the table
// are the authoritative duplicate check: a unique violation maps to
// ErrAlreadySubscribed.
func (r *Repository) Create(ctx context.Context, sub *domain.Subscriber) error {
	query := `
		INSERT INTO subscribers (email, phone, phone_e164, opted_out, is_active)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`
	err := r.db.QueryRow(ctx, query,
		sub.Email,
		sub.Phone,
		sub.PhoneE164,
		sub.OptedOut,
		sub.IsActive,
	).Scan(&sub.ID, &sub.CreatedAt)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return subscribers.ErrAlreadySubscribed
		}
		return fmt.Errorf("create subscriber: %w", err)
	}
	return nil
}

// CountActive returns the number of active subscribers.
func (r *Repository) CountActive(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM subscribers WHERE is_active`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count active subscribers: %w", err)
	}
	return count, nil
}

// DeactivateByEmail clears is_active for all active rows with the email.
func (r *Repository) DeactivateByEmail(ctx context.Context, email string) error {
	query := `
		UPDATE subscribers
		SET is_active = FALSE
		WHERE is_active AND lower(email) = lower($1)
	`
	result, err := r.db.Exec(ctx, query, email)
	if err != nil {
		return fmt.Errorf("deactivate subscriber: %w", err)
	}

	if result.RowsAffected() == 0 {
		return subscribers.ErrNotSubscribed
	}
	return nil
}

// SetOptOut updates the opted_out flag for every row with the number.
func (r *Repository) SetOptOut(ctx context.Context, phoneE164 string, optedOut bool) (int64, error) {
	query := `
		UPDATE subscribers
		SET opted_out = $2
		WHERE phone_e164 = $1
	`
	result, err := r.db.Exec(ctx, query, phoneE164, optedOut)
	if err != nil {
		return 0, fmt.Errorf("set opt-out: %w", err)
	}
	return result.RowsAffected(), nil
}
