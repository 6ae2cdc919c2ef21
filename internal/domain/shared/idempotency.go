package shared

import (
	"context"
	"time"
)

// IdempotencyStore remembers request keys so a retried write is not applied twice
type IdempotencyStore interface {
	// MarkProcessed records the key for ttl.
	// Returns true if the key was newly recorded, false if it was already present.
	MarkProcessed(ctx context.Context, key string, ttl time.Duration) (bool, error)

	// IsProcessed reports whether the key is currently recorded
	IsProcessed(ctx context.Context, key string) (bool, error)

	// Forget removes the key so the request may be retried
	Forget(ctx context.Context, key string) error

	// Close releases resources held by the store
	Close() error
}
