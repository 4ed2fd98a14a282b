// Package sms defines the outbound text-messaging abstraction and the
// webhook reply format shared by provider implementations.
package sms

import "context"

// Sender delivers a single outbound text message.
type Sender interface {
	Send(ctx context.Context, to, body string) error
}
