package subscribers

import "errors"

// Validation errors.
var (
	ErrNoContactMethod = errors.New("no contact method provided")
	ErrInvalidEmail    = errors.New("invalid email address")
	ErrInvalidPhone    = errors.New("invalid phone number")
)

// State errors.
var (
	ErrAlreadySubscribed = errors.New("already subscribed")
	ErrNotSubscribed     = errors.New("subscriber not found")
)
