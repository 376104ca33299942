package blobstore

import (
	"context"
	"io"

	"github.com/hupe1980/colorquant/cache"
)

// CachedStore wraps a BlobStore with a read-through blob cache. Opens are
// served from memory when the blob is cached; writes and deletes
// invalidate the cached entry. Intended for small, frequently reloaded
// blobs such as codebooks.
type CachedStore struct {
	inner BlobStore
	cache cache.BlobCache
	name  string
}

// NewCachedStore wraps inner with the given cache. name scopes the cache
// keys so several stores can share one cache.
func NewCachedStore(inner BlobStore, c cache.BlobCache, name string) *CachedStore {
	return &CachedStore{
		inner: inner,
		cache: c,
		name:  name,
	}
}

func (s *CachedStore) key(name string) cache.Key {
	return cache.Key{Store: s.name, Name: name}
}

// Open opens a blob, serving from the cache when possible. On a miss the
// whole blob is read through and cached.
func (s *CachedStore) Open(ctx context.Context, name string) (Blob, error) {
	if data, ok := s.cache.Get(ctx, s.key(name)); ok {
		return &memoryBlob{data: data}, nil
	}

	blob, err := s.inner.Open(ctx, name)
	if err != nil {
		return nil, err
	}
	defer blob.Close()

	data := make([]byte, blob.Size())
	if _, err := io.ReadFull(io.NewSectionReader(blob, 0, blob.Size()), data); err != nil {
		return nil, err
	}

	s.cache.Set(ctx, s.key(name), data)
	return &memoryBlob{data: data}, nil
}

// Create passes through to the inner store and invalidates the entry on
// close so the next Open sees the new content.
func (s *CachedStore) Create(ctx context.Context, name string) (WritableBlob, error) {
	w, err := s.inner.Create(ctx, name)
	if err != nil {
		return nil, err
	}
	return &invalidatingBlob{WritableBlob: w, store: s, name: name}, nil
}

// Put writes through to the inner store and caches the new content.
func (s *CachedStore) Put(ctx context.Context, name string, data []byte) error {
	if err := s.inner.Put(ctx, name, data); err != nil {
		return err
	}

	copied := make([]byte, len(data))
	copy(copied, data)
	s.cache.Set(ctx, s.key(name), copied)
	return nil
}

// Delete removes a blob and drops it from the cache.
func (s *CachedStore) Delete(ctx context.Context, name string) error {
	if err := s.inner.Delete(ctx, name); err != nil {
		return err
	}

	key := s.key(name)
	s.cache.Invalidate(func(k cache.Key) bool { return k == key })
	return nil
}

// List passes through to the inner store.
func (s *CachedStore) List(ctx context.Context, prefix string) ([]string, error) {
	return s.inner.List(ctx, prefix)
}

type invalidatingBlob struct {
	WritableBlob
	store *CachedStore
	name  string
}

func (b *invalidatingBlob) Close() error {
	err := b.WritableBlob.Close()

	key := b.store.key(b.name)
	b.store.cache.Invalidate(func(k cache.Key) bool { return k == key })
	return err
}
