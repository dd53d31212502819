// Package cache stores rendered artifacts between runs.
//
// # Backends
//
//   - FileCache: one JSON file per entry under a directory, for the CLI
//   - RedisCache: a shared Redis instance, for the HTTP server
//   - NullCache: stores nothing, for --no-cache and tests
//
// # Keys
//
// Keys are built by a Keyer from the hash of the document bytes and the
// options that influence the output, so editing a document or changing
// the paper never serves stale pages:
//
//	k := cache.NewDefaultKeyer()
//	key := k.ArtifactKey(cache.Hash(src), cache.ArtifactKeyOpts{Format: "png", Page: 2})
//
// A ScopedKeyer prefixes every key, which keeps several servers sharing one
// Redis instance apart.
package cache

import (
	"context"
	"time"
)

// Cache is a byte store with optional expiry.
type Cache interface {
	// Get returns the value under key and whether it was present.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores data under key. A ttl of zero never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
	// Close releases the backend.
	Close() error
}
