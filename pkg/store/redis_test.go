package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
)

func TestRedisStore(t *testing.T) {
	mr := miniredis.RunT(t)
	ctx := context.Background()

	s, err := NewRedisStore(ctx, RedisOptions{Addr: mr.Addr(), Prefix: "pandalearn:"})
	if err != nil {
		t.Fatalf("NewRedisStore error: %v", err)
	}
	defer s.Close()

	if _, hit, err := s.Get(ctx, "theme"); hit || err != nil {
		t.Fatalf("empty Get = %v, %v; want miss", hit, err)
	}

	if err := s.Set(ctx, "theme", []byte("dark"), time.Hour); err != nil {
		t.Fatalf("Set error: %v", err)
	}
	if got, err := mr.Get("pandalearn:theme"); err != nil || got != "dark" {
		t.Fatalf("redis key = %q, %v; want prefixed dark", got, err)
	}

	data, hit, err := s.Get(ctx, "theme")
	if err != nil || !hit || string(data) != "dark" {
		t.Fatalf("Get = %q, %v, %v; want dark hit", data, hit, err)
	}

	mr.FastForward(2 * time.Hour)
	if _, hit, _ := s.Get(ctx, "theme"); hit {
		t.Error("entry should expire with its TTL")
	}

	if err := s.Set(ctx, "theme", []byte("light"), 0); err != nil {
		t.Fatal(err)
	}
	if err := s.Delete(ctx, "theme"); err != nil {
		t.Fatalf("Delete error: %v", err)
	}
	if mr.Exists("pandalearn:theme") {
		t.Error("Delete should remove the key")
	}
}

func TestNewRedisStoreRequiresAddr(t *testing.T) {
	_, err := NewRedisStore(context.Background(), RedisOptions{})
	if !errors.Is(err, ErrUnavailable) {
		t.Errorf("error = %v, want ErrUnavailable", err)
	}
}

func TestOpenRedis(t *testing.T) {
	mr := miniredis.RunT(t)
	s, err := Open(context.Background(), Options{Backend: BackendRedis, Redis: RedisOptions{Addr: mr.Addr()}})
	if err != nil {
		t.Fatalf("Open error: %v", err)
	}
	defer s.Close()

	if err := s.Set(context.Background(), "theme", []byte("dark"), 0); err != nil {
		t.Fatal(err)
	}
	if !mr.Exists("theme") {
		t.Error("Open(redis) should write through to redis")
	}
}
