// Package cache stores rendered decks so unchanged input is not rendered
// twice.
//
// Three backends implement [Cache]:
//   - [NullCache] never stores anything (--no-cache)
//   - [FileCache] keeps entries under the user cache directory
//   - [RedisCache] shares entries between machines through Redis
//
// Keys come from a [Keyer]. They are derived from content hashes of the deck
// and the rendering configuration, so an entry can never go stale; TTLs only
// bound disk and memory usage.
package cache

import (
	"context"
	"time"
)

// Cache is a byte store keyed by string.
type Cache interface {
	// Get returns the stored value and whether it was found. A missing or
	// expired entry is a miss, not an error.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl of zero means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// Time-to-live for each kind of entry.
const (
	TTLArtifact = 7 * 24 * time.Hour
	TTLOutline  = 7 * 24 * time.Hour
)
