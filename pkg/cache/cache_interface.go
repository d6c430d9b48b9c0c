package cache

import (
	"context"
	"time"
)

// Counter is the small key/value surface the application needs from Redis:
// expiring counters for failed-login tracking plus a liveness probe.
// It allows swapping the implementation (Redis, in-memory for tests).
type Counter interface {
	// Increment bumps key by one inside a window and returns the new value.
	// A missing key starts at 0. The window TTL is set in the same atomic
	// step whenever the key has none, so a counter can never outlive it.
	Increment(ctx context.Context, key string, window time.Duration) (int64, error)

	// Get returns the current value of key; found = false when it is absent.
	Get(ctx context.Context, key string) (value int64, found bool, err error)

	// Delete removes keys.
	Delete(ctx context.Context, keys ...string) error

	// Ping checks the connection.
	Ping(ctx context.Context) error
}
