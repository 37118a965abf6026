package errors

import (
	"regexp"
	"strings"
	"unicode"
)

// ValidateObjectName validates a scene object or group name for safety and
// correctness. Names flow into host commands and placement files, so the
// rules are intentionally conservative:
//   - No empty names
//   - No control characters or null bytes
//   - No path separators
//   - Maximum length of 256 characters
//
// Host-specific naming rules are enforced separately by NodeName.
func ValidateObjectName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidName, "object name cannot be empty")
	}

	if len(name) > 256 {
		return New(ErrCodeInvalidName, "object name too long (max 256 characters)")
	}

	// Check for control characters and null bytes
	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidName, "object name contains invalid control characters")
		}
	}

	dangerousPatterns := []string{
		"..",   // Parent directory
		"/",    // Path separator
		"\x00", // Null byte
		"\\",   // Backslash (Windows path)
	}

	for _, pattern := range dangerousPatterns {
		if strings.Contains(name, pattern) {
			return New(ErrCodeInvalidName, "object name contains invalid characters: %q", pattern)
		}
	}

	return nil
}

// nodeNameRegex matches valid scene node names: a leading letter or
// underscore followed by letters, digits, or underscores, with optional
// namespace segments separated by colons.
var nodeNameRegex = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*(:[A-Za-z_][A-Za-z0-9_]*)*$`)

// NodeName validates a name against scene node naming rules.
// Most DCC hosts reject names that start with a digit or contain
// punctuation other than underscores and namespace colons.
func NodeName(name string) error {
	if err := ValidateObjectName(name); err != nil {
		return err
	}

	if !nodeNameRegex.MatchString(name) {
		return New(ErrCodeInvalidName, "invalid node name: %q", name)
	}

	return nil
}

// ValidateFilename validates an output filename for safety.
// It ensures the filename is a simple basename without path components.
func ValidateFilename(filename string) error {
	if filename == "" {
		return New(ErrCodeInvalidInput, "filename cannot be empty")
	}

	// Must be a simple filename, not a path
	if strings.ContainsAny(filename, "/\\") {
		return New(ErrCodeInvalidInput, "filename cannot contain path separators")
	}

	if strings.HasPrefix(filename, ".") {
		return New(ErrCodeInvalidInput, "filename cannot be a hidden file")
	}

	return nil
}
