package subscribers

import (
	"regexp"
	"strings"

	"github.com/nyaruka/phonenumbers"
)

// maxEmailLength is the RFC 5321 ceiling for a full address.
const maxEmailLength = 254

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// ValidateEmail checks an address for RFC-shaped syntax and length.
func ValidateEmail(email string) error {
	if email == "" || len(email) > maxEmailLength || !emailPattern.MatchString(email) {
		return ErrInvalidEmail
	}
	return nil
}

// NormalizePhone parses a raw phone string, assuming defaultRegion for
// numbers without a country code, and returns the canonical E.164 form.
// A string that cannot be normalized is rejected, never silently dropped.
func NormalizePhone(raw, defaultRegion string) (string, error) {
	num, err := phonenumbers.Parse(strings.TrimSpace(raw), defaultRegion)
	if err != nil {
		return "", ErrInvalidPhone
	}
	if !phonenumbers.IsValidNumber(num) {
		return "", ErrInvalidPhone
	}
	return phonenumbers.Format(num, phonenumbers.E164), nil
}
