package shared

import (
	"context"
	"time"
)

// IdempotencyStore remembers processed webhook deliveries so that provider
// retries are acknowledged without being applied twice.
type IdempotencyStore interface {
	// MarkProcessed marks a key as processed with a TTL.
	// Returns true if the key was newly marked, false if it was already processed.
	MarkProcessed(ctx context.Context, key string, ttl time.Duration) (bool, error)

	// Forget removes a mark, used when processing failed after the key was claimed
	// so that the provider's retry is not swallowed.
	Forget(ctx context.Context, key string) error

	// Close releases resources held by the store
	Close() error
}
