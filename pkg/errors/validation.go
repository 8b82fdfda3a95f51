package errors

import (
	"strings"
	"unicode"
)

// maxNameLength bounds room and invigilator names.
const maxNameLength = 128

// ValidateName validates a room or invigilator name. Names are free text but
// must be printable: they end up in document headers, tables and filenames.
//
// The validation rules are:
//   - No empty or whitespace-only names
//   - No control characters (including newlines)
//   - Maximum length of 128 characters
func ValidateName(kind, name string) error {
	if strings.TrimSpace(name) == "" {
		return New(ErrCodeInvalidInput, "%s name cannot be empty", kind)
	}

	if len(name) > maxNameLength {
		return New(ErrCodeInvalidInput, "%s name too long (max %d characters)", kind, maxNameLength)
	}

	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "%s name %q contains control characters", kind, name)
		}
	}

	return nil
}

// ValidateOutputPath validates a file path supplied for writing artifacts.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
//   - No path traversal sequences (..)
func ValidateOutputPath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidInput, "output path cannot be empty")
	}

	const maxPathLength = 500
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidInput, "output path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "output path contains invalid characters")
		}
	}

	for _, part := range strings.FieldsFunc(path, func(r rune) bool { return r == '/' || r == '\\' }) {
		if part == ".." {
			return New(ErrCodeInvalidInput, "output path cannot contain path traversal sequences (..)")
		}
	}

	return nil
}
