// Package cache provides byte-level caching for generated diagram
// documents. Layout is the expensive step of generation, so the CLI
// caches positioned documents keyed by a hash of the source text and
// the layout parameters that shaped the result.
//
// Two implementations exist: [FileCache] for persistent CLI usage and
// [NullCache] for disabling caching entirely. Both satisfy [Cache].
package cache

import (
	"context"
	"time"
)

// TTLDocument is how long cached positioned documents stay valid.
// Generation is deterministic, so the TTL exists only to bound disk
// usage, not to guard against staleness.
const TTLDocument = 7 * 24 * time.Hour

// Cache is the storage contract for cached documents. Get reports a
// miss with a false second return, never an error; errors are reserved
// for storage failures.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// DocumentKeyOpts captures every layout parameter that changes the
// generated document. Two generations with equal source hashes and
// equal opts produce byte-identical documents, which is what makes the
// cache safe.
type DocumentKeyOpts struct {
	Strategy string
	Width    float64
	Height   float64
	Seed     int64
}

// Keyer builds cache keys for diagram artifacts.
type Keyer interface {
	DocumentKey(sourceHash string, opts DocumentKeyOpts) string
}

// DefaultKeyer builds versioned keys. The embedded version constant
// invalidates old entries whenever the document format or the layout
// semantics change.
type DefaultKeyer struct{}

// Key format version. Bump when the cached payload shape changes.
const keyVersion = "v1"

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() Keyer {
	return &DefaultKeyer{}
}

// DocumentKey generates a key for positioned-document caching.
func (DefaultKeyer) DocumentKey(sourceHash string, opts DocumentKeyOpts) string {
	return hashKey("doc:"+keyVersion, sourceHash, opts)
}

// ScopedKeyer wraps a Keyer with a prefix so runs whose output depends
// on state outside DocumentKeyOpts, such as layout tuning overrides,
// never collide with default-config entries in the same cache.
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer that prepends prefix to every key.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{inner: inner, prefix: prefix}
}

// DocumentKey generates a prefixed document key.
func (k *ScopedKeyer) DocumentKey(sourceHash string, opts DocumentKeyOpts) string {
	return k.prefix + k.inner.DocumentKey(sourceHash, opts)
}
