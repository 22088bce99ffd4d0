package store

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/pandalearn/pandalearn/pkg/observability"
)

func TestNullStore(t *testing.T) {
	ctx := context.Background()
	s := NewNullStore()
	defer s.Close()

	// Get always returns miss
	data, hit, err := s.Get(ctx, "theme")
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if hit {
		t.Error("NullStore.Get should always return miss")
	}
	if data != nil {
		t.Error("NullStore.Get should return nil data")
	}

	// Set does nothing (no error)
	if err := s.Set(ctx, "theme", []byte("dark"), time.Hour); err != nil {
		t.Errorf("Set error: %v", err)
	}

	// Still a miss after Set
	_, hit, _ = s.Get(ctx, "theme")
	if hit {
		t.Error("NullStore should not store data")
	}

	// Delete does nothing (no error)
	if err := s.Delete(ctx, "theme"); err != nil {
		t.Errorf("Delete error: %v", err)
	}
}

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	if err := s.Set(ctx, "theme", []byte("dark"), 0); err != nil {
		t.Fatalf("Set error: %v", err)
	}
	data, hit, err := s.Get(ctx, "theme")
	if err != nil || !hit {
		t.Fatalf("Get = %q, %v, %v; want hit", data, hit, err)
	}
	if string(data) != "dark" {
		t.Errorf("Get = %q, want %q", data, "dark")
	}

	// Returned slices are copies
	data[0] = 'X'
	again, _, _ := s.Get(ctx, "theme")
	if string(again) != "dark" {
		t.Errorf("stored value was mutated through returned slice: %q", again)
	}

	if err := s.Delete(ctx, "theme"); err != nil {
		t.Fatalf("Delete error: %v", err)
	}
	if _, hit, _ := s.Get(ctx, "theme"); hit {
		t.Error("Get after Delete should miss")
	}
}

func TestMemoryStoreExpiry(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return now }

	if err := s.Set(ctx, "theme", []byte("light"), time.Minute); err != nil {
		t.Fatalf("Set error: %v", err)
	}
	if _, hit, _ := s.Get(ctx, "theme"); !hit {
		t.Fatal("entry should be live before its TTL")
	}

	now = now.Add(2 * time.Minute)
	if _, hit, _ := s.Get(ctx, "theme"); hit {
		t.Error("entry should expire after its TTL")
	}
	if s.Len() != 0 {
		t.Errorf("expired entry should be evicted, Len = %d", s.Len())
	}
}

func TestFileStore(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	s, err := NewFileStore(dir)
	if err != nil {
		t.Fatalf("NewFileStore error: %v", err)
	}

	if _, hit, err := s.Get(ctx, "theme"); hit || err != nil {
		t.Fatalf("empty store Get = %v, %v; want miss", hit, err)
	}

	if err := s.Set(ctx, "theme", []byte("dark"), 0); err != nil {
		t.Fatalf("Set error: %v", err)
	}
	data, hit, err := s.Get(ctx, "theme")
	if err != nil || !hit || string(data) != "dark" {
		t.Fatalf("Get = %q, %v, %v; want dark hit", data, hit, err)
	}

	// Overwrite keeps a single entry
	if err := s.Set(ctx, "theme", []byte("light"), 0); err != nil {
		t.Fatalf("Set error: %v", err)
	}
	data, _, _ = s.Get(ctx, "theme")
	if string(data) != "light" {
		t.Errorf("Get after overwrite = %q, want light", data)
	}

	// Entry lives in a hash-sharded subdirectory
	path := s.Path("theme")
	if filepath.Dir(filepath.Dir(path)) != dir {
		t.Errorf("entry path %q should be two levels below %q", path, dir)
	}

	if err := s.Delete(ctx, "theme"); err != nil {
		t.Fatalf("Delete error: %v", err)
	}
	if err := s.Delete(ctx, "theme"); err != nil {
		t.Errorf("deleting a missing key should not fail: %v", err)
	}
}

func TestFileStoreInvalidEntryIsMiss(t *testing.T) {
	ctx := context.Background()
	s, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStore error: %v", err)
	}

	path := s.Path("theme")
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("{not json"), 0o600); err != nil {
		t.Fatal(err)
	}

	if _, hit, err := s.Get(ctx, "theme"); hit || err != nil {
		t.Errorf("corrupt entry Get = %v, %v; want miss without error", hit, err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("corrupt entry should be removed")
	}
}

func TestFileStoreExpiredEntry(t *testing.T) {
	ctx := context.Background()
	s, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStore error: %v", err)
	}
	path := s.Path("theme")
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		t.Fatal(err)
	}
	expired := `{"data":"ZGFyaw==","expires_at":"2001-01-01T00:00:00Z"}`
	if err := os.WriteFile(path, []byte(expired), 0o600); err != nil {
		t.Fatal(err)
	}

	if _, hit, _ := s.Get(ctx, "theme"); hit {
		t.Error("expired entry should be a miss")
	}
}

func TestScoped(t *testing.T) {
	ctx := context.Background()
	inner := NewMemoryStore()
	a := Scoped(inner, "session:a:")
	b := Scoped(inner, "session:b:")

	if err := a.Set(ctx, "theme", []byte("dark"), 0); err != nil {
		t.Fatal(err)
	}
	if _, hit, _ := b.Get(ctx, "theme"); hit {
		t.Error("scopes should not see each other's keys")
	}
	if data, hit, _ := inner.Get(ctx, "session:a:theme"); !hit || string(data) != "dark" {
		t.Errorf("inner key = %q, %v; want prefixed dark entry", data, hit)
	}

	if err := a.Delete(ctx, "theme"); err != nil {
		t.Fatal(err)
	}
	if inner.Len() != 0 {
		t.Error("scoped Delete should remove the prefixed key")
	}
}

func TestScopedNilInner(t *testing.T) {
	s := Scoped(nil, "prefix:")
	if _, hit, err := s.Get(context.Background(), "theme"); hit || err != nil {
		t.Errorf("nil inner should behave like NullStore, got %v, %v", hit, err)
	}
}

func TestOpen(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		opts    Options
		wantErr error
	}{
		{name: "empty means none", opts: Options{}},
		{name: "none", opts: Options{Backend: "none"}},
		{name: "memory", opts: Options{Backend: "memory"}},
		{name: "file", opts: Options{Backend: "FILE", Dir: t.TempDir()}},
		{name: "unknown", opts: Options{Backend: "etcd"}, wantErr: ErrUnknownBackend},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := Open(ctx, tt.opts)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Open error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Open error: %v", err)
			}
			defer s.Close()
			if err := s.Set(ctx, "k", []byte("v"), 0); err != nil {
				t.Errorf("Set error: %v", err)
			}
		})
	}
}

func TestOpenFileRequiresDir(t *testing.T) {
	if _, err := Open(context.Background(), Options{Backend: BackendFile}); err == nil {
		t.Error("file backend without a directory should fail")
	}
}

type recordingHooks struct {
	observability.NoopStoreHooks
	hits, misses, sets, errs int
}

func (r *recordingHooks) OnHit(context.Context, string)                  { r.hits++ }
func (r *recordingHooks) OnMiss(context.Context, string)                 { r.misses++ }
func (r *recordingHooks) OnSet(context.Context, string, int)             { r.sets++ }
func (r *recordingHooks) OnError(context.Context, string, string, error) { r.errs++ }

type failingStore struct{ *NullStore }

func (failingStore) Set(context.Context, string, []byte, time.Duration) error {
	return errors.New("read-only")
}

func TestInstrumentReportsHooks(t *testing.T) {
	observability.Reset()
	defer observability.Reset()
	hooks := &recordingHooks{}
	observability.SetStoreHooks(hooks)

	ctx := context.Background()
	s := Instrument(BackendMemory, NewMemoryStore())
	_, _, _ = s.Get(ctx, "theme")
	_ = s.Set(ctx, "theme", []byte("dark"), 0)
	_, _, _ = s.Get(ctx, "theme")

	f := Instrument("broken", failingStore{&NullStore{}})
	_ = f.Set(ctx, "theme", []byte("dark"), 0)

	if hooks.misses != 1 || hooks.sets != 1 || hooks.hits != 1 || hooks.errs != 1 {
		t.Errorf("hooks = %+v, want 1 miss, 1 set, 1 hit, 1 error", *hooks)
	}
}

func TestRetryableError(t *testing.T) {
	// Retryable(nil) returns nil
	if Retryable(nil) != nil {
		t.Error("Retryable(nil) should return nil")
	}

	// Non-nil error is wrapped
	err := Retryable(ErrUnavailable)
	if err == nil {
		t.Fatal("Retryable should return wrapped error")
	}
	if !IsRetryable(err) {
		t.Error("IsRetryable should return true for wrapped error")
	}

	// Error message is preserved
	if err.Error() != ErrUnavailable.Error() {
		t.Errorf("Error message should be preserved: %s", err.Error())
	}

	// Non-wrapped errors are not retryable
	if IsRetryable(ErrUnknownBackend) {
		t.Error("IsRetryable should return false for unwrapped error")
	}
}

func TestRetryWithBackoff(t *testing.T) {
	restore := retryDelay
	retryDelay = time.Millisecond
	defer func() { retryDelay = restore }()

	ctx := context.Background()

	// Success on first try
	calls := 0
	err := RetryWithBackoff(ctx, func() error {
		calls++
		return nil
	})
	if err != nil {
		t.Errorf("Should succeed: %v", err)
	}
	if calls != 1 {
		t.Errorf("Should call once: %d", calls)
	}

	// Non-retryable error stops immediately
	calls = 0
	err = RetryWithBackoff(ctx, func() error {
		calls++
		return ErrUnknownBackend
	})
	if err != ErrUnknownBackend {
		t.Errorf("Should return non-retryable error: %v", err)
	}
	if calls != 1 {
		t.Errorf("Should not retry non-retryable error: %d", calls)
	}

	// Retryable error triggers retries
	calls = 0
	err = RetryWithBackoff(ctx, func() error {
		calls++
		if calls < 2 {
			return Retryable(ErrUnavailable)
		}
		return nil
	})
	if err != nil {
		t.Errorf("Should succeed after retry: %v", err)
	}
	if calls != 2 {
		t.Errorf("Should retry once: %d", calls)
	}
}

func TestRetryWithBackoffContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel() // Cancel immediately

	err := RetryWithBackoff(ctx, func() error {
		return Retryable(ErrUnavailable)
	})
	if err != context.Canceled {
		t.Errorf("Should return context error: %v", err)
	}
}
