package subscribers

import (
	"context"

	"github.com/mkraev/launchlist/internal/domain"
)

// Repository defines storage operations for subscribers.
type Repository interface {
	// Create inserts a subscriber and fills in ID and CreatedAt.
	// Returns ErrAlreadySubscribed when a unique constraint on the
	// contact details is violated.
	Create(ctx context.Context, sub *domain.Subscriber) error

	// CountActive returns the number of active subscribers.
	CountActive(ctx context.Context) (int64, error)

	// DeactivateByEmail clears is_active for all active rows with the
	// given email. Returns ErrNotSubscribed when no row matched.
	DeactivateByEmail(ctx context.Context, email string) error

	// SetOptOut sets the opted_out flag for every row with the given
	// E.164 number and returns how many rows were updated.
	SetOptOut(ctx context.Context, phoneE164 string, optedOut bool) (int64, error)
}
