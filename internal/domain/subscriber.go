// Package domain contains entities shared between feature packages.
package domain

import "time"

// ContactMethod describes which contact details a subscriber signed up with.
type ContactMethod string

const (
	ContactMethodEmail ContactMethod = "email"
	ContactMethodPhone ContactMethod = "phone"
	ContactMethodBoth  ContactMethod = "both"
)

// Subscriber is a single waitlist signup. Rows are never deleted by the
// service: unsubscribe clears IsActive, inbound STOP/START replies toggle
// OptedOut.
type Subscriber struct {
	ID        int64     `json:"id"`
	Email     *string   `json:"email,omitempty"`
	Phone     *string   `json:"phone,omitempty"`
	PhoneE164 *string   `json:"phone_e164,omitempty"`
	OptedOut  bool      `json:"opted_out"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}

// ContactMethod reports which contact fields are set.
func (s *Subscriber) ContactMethod() ContactMethod {
	switch {
	case s.Email != nil && s.PhoneE164 != nil:
		return ContactMethodBoth
	case s.PhoneE164 != nil:
		return ContactMethodPhone
	default:
		return ContactMethodEmail
	}
}
