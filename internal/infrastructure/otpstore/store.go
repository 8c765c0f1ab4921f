// Package otpstore holds short-lived one-time codes keyed by normalized phone
// number. Two backends exist: an in-process map for single-instance
// deployments and Redis for multi-instance deployments. Codes do not survive
// a restart of their backend; outstanding codes are silently invalidated,
// which is accepted behavior.
package otpstore

import (
	"context"
	"time"
)

// Entry is one pending verification code.
type Entry struct {
	Code     string    `json:"code"`
	IssuedAt time.Time `json:"issued_at"`
}

// Store is the expiring key-value contract shared by all backends.
//
// Set unconditionally overwrites any pending entry for the identifier, so at
// most one live code exists per identifier and re-issuance invalidates the
// previous code (last write wins under concurrent issuance).
//
// Get returns (entry, true) only while the entry is within its validity
// window; an expired entry is removed as a side effect of the read and
// reported absent.
//
// Delete removes an entry unconditionally and reports whether one existed.
type Store interface {
	Set(ctx context.Context, identifier string, e Entry) error
	Get(ctx context.Context, identifier string) (Entry, bool, error)
	Delete(ctx context.Context, identifier string) (bool, error)
}
