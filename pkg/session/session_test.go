package session

import (
	"errors"
	"strings"
	"testing"
	"time"
)

func TestNew(t *testing.T) {
	a := New(time.Hour)
	b := New(time.Hour)

	if a.ID == b.ID {
		t.Error("session IDs should be unique")
	}
	if _, err := Parse(a.ID, time.Hour); err != nil {
		t.Errorf("generated ID should parse: %v", err)
	}
	if a.IsExpired() {
		t.Error("new session should not be expired")
	}
	if !a.ExpiresAt.After(a.CreatedAt) {
		t.Error("ExpiresAt should be after CreatedAt")
	}
}

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		id      string
		wantErr bool
	}{
		{"valid", "3f2b8c1e-9a4d-4c6f-8e21-5b7a0d9c4e13", false},
		{"empty", "", true},
		{"key injection", "3f2b8c1e-9a4d-4c6f-8e21-5b7a0d9c4e13:other", true},
		{"garbage", "not-a-session", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sess, err := Parse(tt.id, time.Hour)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Parse(%q) error = %v, wantErr %v", tt.id, err, tt.wantErr)
			}
			if err != nil {
				if !errors.Is(err, ErrInvalidID) {
					t.Errorf("error should wrap ErrInvalidID: %v", err)
				}
				return
			}
			if sess.ID != tt.id {
				t.Errorf("ID = %q, want %q", sess.ID, tt.id)
			}
		})
	}
}

func TestIsExpired(t *testing.T) {
	s := &Session{ExpiresAt: time.Now().Add(-time.Minute)}
	if !s.IsExpired() {
		t.Error("session in the past should be expired")
	}
}

func TestKeyPrefix(t *testing.T) {
	s := New(time.Hour)
	prefix := s.KeyPrefix()
	if !strings.HasPrefix(prefix, "session:") || !strings.HasSuffix(prefix, ":") {
		t.Errorf("KeyPrefix = %q", prefix)
	}
	if !strings.Contains(prefix, s.ID) {
		t.Error("KeyPrefix should contain the ID")
	}

	var nilSession *Session
	if nilSession.KeyPrefix() != "" {
		t.Error("nil session should have an empty prefix")
	}
}
