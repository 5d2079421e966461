package validation

import (
	"net/mail"
	"regexp"
	"strings"
)

// unsafeFilenameChars matches everything that is not kept in object keys.
var unsafeFilenameChars = regexp.MustCompile(`[^a-zA-Z0-9._-]`)

// ValidateEmail checks if a string is a plausible email address.
func ValidateEmail(addr string) bool {
	addr = strings.TrimSpace(addr)
	if addr == "" {
		return false
	}
	parsed, err := mail.ParseAddress(addr)
	if err != nil {
		return false
	}
	// Reject "Name <addr>" forms; the form collects bare addresses.
	return parsed.Address == addr
}

// SafeFilename replaces any character outside [a-zA-Z0-9._-] with an
// underscore so user-supplied names are safe to use in object storage keys.
func SafeFilename(name string) string {
	return unsafeFilenameChars.ReplaceAllString(name, "_")
}

// SafeName sanitizes a free-text name for use in a storage path, falling
// back to the given default when the input is empty.
func SafeName(name, fallback string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		name = fallback
	}
	return unsafeFilenameChars.ReplaceAllString(name, "_")
}
