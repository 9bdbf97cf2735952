package errors

import (
	"regexp"
	"strings"
	"unicode"
)

// tagNameRegex matches HTML element names: a letter followed by letters,
// digits or hyphens (custom elements).
var tagNameRegex = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9-]*$`)

// ValidateTagName validates an element name configured for a rendering role.
// The role is only used to build the message.
//
// The validation rules are intentionally conservative:
//   - No empty names
//   - No whitespace, quotes or angle brackets
//   - Maximum length of 64 characters
func ValidateTagName(role, name string) error {
	if name == "" {
		return New(ErrCodeInvalidConfig, "tag for role %q cannot be empty", role)
	}

	if len(name) > 64 {
		return New(ErrCodeInvalidConfig, "tag for role %q too long (max 64 characters)", role)
	}

	if !tagNameRegex.MatchString(name) {
		return New(ErrCodeInvalidConfig, "invalid tag %q for role %q", name, role)
	}

	return nil
}

// ValidateCacheURL validates a remote cache URL.
// Only redis:// and rediss:// are understood.
func ValidateCacheURL(rawURL string) error {
	if rawURL == "" {
		return New(ErrCodeInvalidInput, "cache URL cannot be empty")
	}

	for _, r := range rawURL {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "cache URL contains invalid characters")
		}
	}

	if !strings.HasPrefix(rawURL, "redis://") && !strings.HasPrefix(rawURL, "rediss://") {
		return New(ErrCodeInvalidInput, "cache URL must use redis or rediss scheme")
	}

	return nil
}
