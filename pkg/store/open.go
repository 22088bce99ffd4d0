package store

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/pandalearn/pandalearn/pkg/observability"
)

// Backend names accepted by Open.
const (
	BackendNone   = "none"
	BackendMemory = "memory"
	BackendFile   = "file"
	BackendRedis  = "redis"
)

// Options selects and configures a backend.
type Options struct {
	Backend string

	// Dir is the FileStore directory.
	Dir string

	Redis RedisOptions
}

// Open builds the backend named by opts.Backend and wraps it with
// observability hooks.
func Open(ctx context.Context, opts Options) (Store, error) {
	backend := strings.ToLower(strings.TrimSpace(opts.Backend))
	var (
		s   Store
		err error
	)
	switch backend {
	case BackendNone, "":
		backend = BackendNone
		s = NewNullStore()
	case BackendMemory:
		s = NewMemoryStore()
	case BackendFile:
		if opts.Dir == "" {
			return nil, fmt.Errorf("file store: directory is required")
		}
		s, err = NewFileStore(opts.Dir)
	case BackendRedis:
		s, err = NewRedisStore(ctx, opts.Redis)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, opts.Backend)
	}
	if err != nil {
		return nil, err
	}
	return Instrument(backend, s), nil
}

// instrumented reports every operation to the registered store hooks.
type instrumented struct {
	backend string
	inner   Store
}

// Instrument wraps s so its operations are reported to observability.Store().
func Instrument(backend string, s Store) Store {
	return &instrumented{backend: backend, inner: s}
}

func (i *instrumented) Get(ctx context.Context, key string) ([]byte, bool, error) {
	data, ok, err := i.inner.Get(ctx, key)
	hooks := observability.Store()
	switch {
	case err != nil:
		hooks.OnError(ctx, i.backend, "get", err)
	case ok:
		hooks.OnHit(ctx, i.backend)
	default:
		hooks.OnMiss(ctx, i.backend)
	}
	return data, ok, err
}

func (i *instrumented) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	err := i.inner.Set(ctx, key, data, ttl)
	if err != nil {
		observability.Store().OnError(ctx, i.backend, "set", err)
		return err
	}
	observability.Store().OnSet(ctx, i.backend, len(data))
	return nil
}

func (i *instrumented) Delete(ctx context.Context, key string) error {
	err := i.inner.Delete(ctx, key)
	if err != nil {
		observability.Store().OnError(ctx, i.backend, "delete", err)
	}
	return err
}

func (i *instrumented) Close() error { return i.inner.Close() }

// Unwrap returns the wrapped backend.
func (i *instrumented) Unwrap() Store { return i.inner }
