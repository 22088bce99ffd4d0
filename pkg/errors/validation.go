package errors

import (
	"regexp"
	"strings"
	"unicode"
)

// keyRegex matches lesson identifiers: lowercase slugs such as "header" or
// "common-attributes".
var keyRegex = regexp.MustCompile(`^[a-z0-9]([a-z0-9-]*[a-z0-9])?$`)

// ValidateKey validates a topic or example identifier before it is used in a
// lookup or a storage key.
//
// The validation rules are intentionally conservative:
//   - No empty keys
//   - Maximum length of 64 characters
//   - No control characters or path separators
//   - Lowercase letters, digits and inner dashes only
func ValidateKey(key string) error {
	if key == "" {
		return New(ErrCodeInvalidKey, "key cannot be empty")
	}

	if len(key) > 64 {
		return New(ErrCodeInvalidKey, "key too long (max 64 characters)")
	}

	for _, r := range key {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidKey, "key contains invalid control characters")
		}
	}

	if strings.ContainsAny(key, "/\\.") {
		return New(ErrCodeInvalidKey, "key cannot contain path separators or dots: %q", key)
	}

	if !keyRegex.MatchString(key) {
		return New(ErrCodeInvalidKey, "invalid key: %q", key)
	}

	return nil
}

// sessionIDRegex matches canonical lowercase UUID strings.
var sessionIDRegex = regexp.MustCompile(`^[0-9a-f]{8}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{12}$`)

// ValidateSessionID validates a visitor session identifier taken from a
// cookie. Session IDs end up inside storage keys, so anything that is not a
// canonical UUID is rejected.
func ValidateSessionID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidInput, "session id cannot be empty")
	}
	if !sessionIDRegex.MatchString(id) {
		return New(ErrCodeInvalidInput, "malformed session id")
	}
	return nil
}
