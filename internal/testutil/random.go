package testutil

import (
	"fmt"
	"sync/atomic"

	"github.com/google/uuid"
)

var phoneCounter atomic.Int64

// RandomEmail returns a unique email address for test fixtures.
func RandomEmail(prefix string) string {
	return fmt.Sprintf("%s-%s@example.com", prefix, uuid.NewString()[:8])
}

// RandomPhone returns a unique US number from the fictional 555-01xx block,
// in E.164 form.
func RandomPhone() string {
	n := phoneCounter.Add(1) % 100
	return fmt.Sprintf("+1212555%04d", 100+n)
}
