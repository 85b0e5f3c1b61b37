package ports

import (
	"context"
	"time"
)

// StoredResponse is a completed HTTP response kept for Idempotency-Key replay.
// Pending marks a reservation whose request is still running.
type StoredResponse struct {
	Status      int    `json:"status,omitempty"`
	ContentType string `json:"content_type,omitempty"`
	Body        []byte `json:"body,omitempty"`
	Pending     bool   `json:"pending,omitempty"`
}

// IdempotencyStore reports found=false, err=nil for an unknown key.
//
// Reserve claims a key atomically; only the caller that gets true may run
// the request. Save replaces the reservation with the final response and
// Release drops it so the key can be retried.
type IdempotencyStore interface {
	Reserve(ctx context.Context, key string, ttl time.Duration) (bool, error)
	Load(ctx context.Context, key string) (resp StoredResponse, found bool, err error)
	Save(ctx context.Context, key string, resp StoredResponse, ttl time.Duration) error
	Release(ctx context.Context, key string) error
}
