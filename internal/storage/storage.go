// Package storage defines the access-record persistence interface. Recording
// is strictly accounting: a store failure must never fail the relay itself.
package storage

import (
	"context"
	"time"
)

// AccessRecord is one proxied request: which capability key was exercised,
// what the backend answered, and how long the round trip took.
type AccessRecord struct {
	ID            string
	CapabilityKey string
	Resource      string
	BackendStatus int
	Duration      time.Duration
	CreatedAt     time.Time
}

// AccessStore persists access records. Implementations must be safe for
// concurrent writers.
type AccessStore interface {
	RecordAccess(ctx context.Context, rec *AccessRecord) error
	RecentAccesses(ctx context.Context, limit int) ([]*AccessRecord, error)
	Close() error
}
