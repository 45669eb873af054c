// Package cache defines the explicit cache used by the stores.
//
// Mutating operations never patch cached values in place: writers call
// Invalidate and the next read repopulates from the backing store.
package cache

import (
	"context"
	"time"
)

// Cache stores serialized list results keyed by entity and user
// (e.g. "jobdescs:<userID>").
type Cache interface {
	// Get returns the cached value for key, or ok false on a miss.
	Get(ctx context.Context, key string) (value []byte, ok bool)
	// Set stores value under key until ttl elapses.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration)
	// Invalidate drops key so the next Get misses.
	Invalidate(ctx context.Context, key string)
}
