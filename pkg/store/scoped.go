package store

import (
	"context"
	"time"
)

// ScopedStore wraps a Store with a key prefix for per-visitor isolation.
//
// Example usage:
//
//	// One namespace per browser session
//	visitor := store.Scoped(shared, "session:"+sessionID+":")
//	visitor.Set(ctx, "theme", []byte("dark"), ttl)   // writes "session:<id>:theme"
type ScopedStore struct {
	inner  Store
	prefix string
}

// Scoped returns a store that prefixes every key. A nil inner store is
// replaced with a NullStore.
func Scoped(inner Store, prefix string) *ScopedStore {
	if inner == nil {
		inner = NewNullStore()
	}
	return &ScopedStore{inner: inner, prefix: prefix}
}

// Prefix returns the key prefix.
func (s *ScopedStore) Prefix() string { return s.prefix }

func (s *ScopedStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	return s.inner.Get(ctx, s.prefix+key)
}

func (s *ScopedStore) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	return s.inner.Set(ctx, s.prefix+key, data, ttl)
}

func (s *ScopedStore) Delete(ctx context.Context, key string) error {
	return s.inner.Delete(ctx, s.prefix+key)
}

// Close does not close the inner store; it is shared by every scope.
func (s *ScopedStore) Close() error { return nil }

var _ Store = (*ScopedStore)(nil)
