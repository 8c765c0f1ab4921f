// Package sms dispatches text messages through an external messaging
// provider. Delivery cannot be retracted once dispatched and no retry loop
// exists here; callers trigger a fresh issuance on failure.
package sms

import "context"

// Sender sends one SMS and returns the provider's message id.
type Sender interface {
	Send(ctx context.Context, to, message string) (messageID string, err error)
}
