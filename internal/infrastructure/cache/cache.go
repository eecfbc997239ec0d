package cache

import (
	"context"
	"time"
)

// Cache is the byte-level cache the report service reads through. Values
// are opaque (the caller does its own JSON encoding) so one implementation
// serves every read model.
type Cache interface {
	// Get returns the cached value and whether the key was present
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value with a TTL
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Delete removes a key; deleting a missing key is not an error
	Delete(ctx context.Context, keys ...string) error
}
