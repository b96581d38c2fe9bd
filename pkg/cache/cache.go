// Package cache stores generated output between runs.
//
// Generating a unit is cheap, but a symbol file with many units is
// regenerated on every invocation of the CLI. Output is keyed by the hash of
// the symbol file plus the unit's options (see [Keyer]), so an unchanged file
// is served entirely from the cache.
//
// Three backends are provided:
//   - [NullCache] never stores anything (caching disabled)
//   - [FileCache] stores entries under a local directory (CLI default)
//   - [RedisCache] shares entries between machines
package cache

import (
	"context"
	"time"
)

// Cache is a byte-oriented key/value store with optional expiry.
type Cache interface {
	// Get returns the value for key. A missing or expired entry is a miss,
	// not an error.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl of zero never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases the backend's resources.
	Close() error
}
