// Package cache provides a byte-oriented LRU cache for immutable blobs,
// sized in bytes and optionally charged against a resource.Controller's
// memory budget. Its main consumer is blobstore.NewCachedStore, which
// keeps hot codebook blobs in memory across loads.
package cache

import "context"

// Key identifies a cached blob.
type Key struct {
	// Store distinguishes key spaces when several stores share one cache.
	Store string
	// Name is the blob name within the store.
	Name string
}

// BlobCache is a byte-oriented cache for immutable blobs.
// Returned slices must be treated as read-only.
type BlobCache interface {
	// Get returns a cached blob. ok=false if missing.
	Get(ctx context.Context, key Key) (b []byte, ok bool)
	// Set caches a blob. Implementations may copy or retain; caller must
	// treat b as immutable.
	Set(ctx context.Context, key Key, b []byte)
	// Invalidate removes entries matching the predicate.
	Invalidate(predicate func(key Key) bool)
	// Close releases any resources.
	Close() error
	// Stats returns cache statistics.
	Stats() (hits, misses int64)
}
