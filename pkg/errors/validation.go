package errors

import (
	"strings"
	"unicode"
)

// Limits applied to user-supplied node fields.
const (
	MaxNodeIDLength = 128
	MaxTitleLength  = 512
	MaxLabelLength  = 256
	MaxURLLength    = 2048
	maxPathLength   = 500
)

// ValidateNodeID validates a node identifier supplied by a caller.
// Identifiers are opaque strings, but they must be non-empty, reasonably
// short and free of control characters since they end up in SVG attributes
// and URL paths.
func ValidateNodeID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidInput, "node id cannot be empty")
	}
	if len(id) > MaxNodeIDLength {
		return New(ErrCodeInvalidInput, "node id too long (max %d characters)", MaxNodeIDLength)
	}
	if hasControl(id) {
		return New(ErrCodeInvalidInput, "node id contains invalid control characters")
	}
	if strings.Contains(id, "/") {
		return New(ErrCodeInvalidInput, "node id cannot contain '/'")
	}
	return nil
}

// ValidateTitle validates a node title. Titles are required when a node is
// created or edited; surrounding whitespace is not significant.
func ValidateTitle(title string) error {
	t := strings.TrimSpace(title)
	if t == "" {
		return New(ErrCodeInvalidInput, "title cannot be empty")
	}
	if len(t) > MaxTitleLength {
		return New(ErrCodeInvalidInput, "title too long (max %d characters)", MaxTitleLength)
	}
	if hasControl(strings.ReplaceAll(t, "\t", " ")) {
		return New(ErrCodeInvalidInput, "title contains invalid control characters")
	}
	return nil
}

// ValidateLabel validates an optional edge or link label.
func ValidateLabel(label string) error {
	if len(label) > MaxLabelLength {
		return New(ErrCodeInvalidInput, "label too long (max %d characters)", MaxLabelLength)
	}
	if hasControl(label) {
		return New(ErrCodeInvalidInput, "label contains invalid control characters")
	}
	return nil
}

// ValidateURL validates a URL string for safety.
// It ensures the URL has a safe scheme (http or https).
func ValidateURL(rawURL string) error {
	if rawURL == "" {
		return New(ErrCodeInvalidInput, "URL cannot be empty")
	}
	if len(rawURL) > MaxURLLength {
		return New(ErrCodeInvalidInput, "URL too long (max %d characters)", MaxURLLength)
	}

	// Simple scheme validation without full URL parsing
	if !strings.HasPrefix(rawURL, "http://") && !strings.HasPrefix(rawURL, "https://") {
		return New(ErrCodeInvalidInput, "URL must use http or https scheme")
	}
	if strings.ContainsAny(rawURL, " \"<>") {
		return New(ErrCodeInvalidInput, "URL contains invalid characters")
	}

	return nil
}

// ValidateOptionalURL is ValidateURL but accepts the empty string.
func ValidateOptionalURL(rawURL string) error {
	if rawURL == "" {
		return nil
	}
	return ValidateURL(rawURL)
}

// ValidateDocumentName validates the name a document is stored under.
// Names become file names, SQL keys and Redis keys, so they are restricted to
// a conservative character set.
func ValidateDocumentName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidInput, "document name cannot be empty")
	}
	if len(name) > MaxNodeIDLength {
		return New(ErrCodeInvalidInput, "document name too long (max %d characters)", MaxNodeIDLength)
	}
	if strings.HasPrefix(name, ".") {
		return New(ErrCodeInvalidInput, "document name cannot start with '.'")
	}
	for _, r := range name {
		if !(unicode.IsLetter(r) || unicode.IsDigit(r) || r == '-' || r == '_' || r == '.') {
			return New(ErrCodeInvalidInput, "document name contains invalid character %q", r)
		}
	}
	return nil
}

// ValidatePath validates a relative file path supplied over the API.
// It prevents path traversal attacks and ensures reasonable path length.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
//   - No absolute paths (must be relative)
//   - No path traversal sequences (..)
//   - No backslashes (Windows-style paths)
func ValidatePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	if hasControl(path) {
		return New(ErrCodeInvalidPath, "path contains invalid characters")
	}

	if strings.HasPrefix(path, "/") {
		return New(ErrCodeInvalidPath, "path must be relative (cannot start with /)")
	}

	if strings.Contains(path, "..") {
		return New(ErrCodeInvalidPath, "path cannot contain path traversal sequences (..)")
	}

	if strings.Contains(path, "\\") {
		return New(ErrCodeInvalidPath, "path cannot contain backslashes")
	}

	return nil
}

func hasControl(s string) bool {
	for _, r := range s {
		if r == '\x00' || unicode.IsControl(r) {
			return true
		}
	}
	return false
}
