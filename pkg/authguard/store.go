package authguard

import (
	"context"
	"time"
)

// Store is the counter storage backend.
type Store interface {
	// Incr atomically increments the counter, starting the expiry window
	// on first increment, and returns the new value.
	Incr(ctx context.Context, key string, window time.Duration) (int64, error)

	// Get returns the current counter value; zero when absent or expired.
	Get(ctx context.Context, key string) (int64, error)

	// Delete removes the counter. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error
}
