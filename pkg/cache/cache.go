// Package cache provides a small key/value cache for rendered artifacts,
// plus the retry helpers shared by the remote persistence backends.
//
// Keys are produced by a [Keyer] so that the same document content and
// render options always map to the same entry. [FileCache] serves the CLI;
// [NullCache] disables caching.
package cache

import (
	"context"
	"time"
)

// Cache stores opaque byte values under string keys.
type Cache interface {
	// Get returns the value for key and whether it was found.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl of zero never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases resources held by the cache.
	Close() error
}
