// Package session identifies anonymous visitors of the lesson site.
//
// A visitor session is nothing more than a random UUID carried in a cookie.
// It namespaces the visitor's entries in the shared preference store, so two
// browsers never see each other's theme:
//
//	sess := session.New(session.DefaultTTL)
//	prefs := store.Scoped(shared, sess.KeyPrefix())
//	prefs.Set(ctx, "theme", []byte("dark"), session.DefaultTTL)  // "session:<id>:theme"
//
// IDs read back from a request are validated with [Parse] before they reach
// a storage key.
package session

import (
	"errors"
	"time"

	"github.com/google/uuid"

	perrors "github.com/pandalearn/pandalearn/pkg/errors"
)

// Sentinel errors for session operations.
var (
	// ErrInvalidID is returned when a session ID is not a canonical UUID.
	ErrInvalidID = errors.New("invalid session id")
)

// Default durations.
const (
	// DefaultTTL is how long a visitor keeps their session and preferences.
	DefaultTTL = 365 * 24 * time.Hour
)

// Session is an anonymous visitor.
type Session struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// New creates a session with a fresh random ID.
func New(ttl time.Duration) *Session {
	now := time.Now()
	return &Session{
		ID:        uuid.NewString(),
		CreatedAt: now,
		ExpiresAt: now.Add(ttl),
	}
}

// Parse rebuilds a session from an ID taken from a cookie. The expiry is
// renewed from now.
func Parse(id string, ttl time.Duration) (*Session, error) {
	if err := perrors.ValidateSessionID(id); err != nil {
		return nil, perrors.Wrap(perrors.ErrCodeInvalidInput, ErrInvalidID, "%s", perrors.UserMessage(err))
	}
	now := time.Now()
	return &Session{ID: id, CreatedAt: now, ExpiresAt: now.Add(ttl)}, nil
}

// IsExpired returns true if the session has expired.
func (s *Session) IsExpired() bool {
	return time.Now().After(s.ExpiresAt)
}

// KeyPrefix returns the storage namespace of the session.
// Format: "session:{id}:".
func (s *Session) KeyPrefix() string {
	if s == nil || s.ID == "" {
		return ""
	}
	return "session:" + s.ID + ":"
}
