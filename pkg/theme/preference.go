package theme

import (
	"errors"
	"strings"

	perrors "github.com/pandalearn/pandalearn/pkg/errors"
)

// Key is the storage key the preference is persisted under.
const Key = "theme"

// Preference is the visitor's theme. The zero value is Unset.
type Preference string

const (
	Unset Preference = ""
	Light Preference = "light"
	Dark  Preference = "dark"
)

// ErrInvalidPreference is returned when a value is neither "light" nor "dark".
var ErrInvalidPreference = errors.New("invalid theme preference")

// Parse converts user input into a resolved Preference. Surrounding
// whitespace and case are ignored.
func Parse(s string) (Preference, error) {
	switch Preference(strings.ToLower(strings.TrimSpace(s))) {
	case Light:
		return Light, nil
	case Dark:
		return Dark, nil
	}
	return Unset, perrors.Wrap(perrors.ErrCodeInvalidTheme, ErrInvalidPreference, "%q is not light or dark", s)
}

// parseStored accepts only the exact strings the manager writes. Anything
// else is treated as absent.
func parseStored(data []byte) (Preference, bool) {
	switch p := Preference(data); p {
	case Light, Dark:
		return p, true
	}
	return Unset, false
}

// FromDark maps the OS "prefers dark" boolean to a Preference.
func FromDark(dark bool) Preference {
	if dark {
		return Dark
	}
	return Light
}

func (p Preference) String() string {
	if p == Unset {
		return "unset"
	}
	return string(p)
}

// Resolved reports whether p is Light or Dark.
func (p Preference) Resolved() bool {
	return p == Light || p == Dark
}

// IsDark reports whether p is Dark.
func (p Preference) IsDark() bool { return p == Dark }

// Opposite returns the other resolved value. Unset flips to Dark, since an
// unresolved theme is rendered as Light.
func (p Preference) Opposite() Preference {
	if p == Dark {
		return Light
	}
	return Dark
}
