package errors

import (
	"regexp"
	"strings"
	"unicode"
)

// maxNameLength bounds template and section names.
const maxNameLength = 120

// ValidateID validates a template or section identifier.
// IDs end up in file names and store keys, so they are restricted to
// letters, digits, dash and underscore.
func ValidateID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidID, "id cannot be empty")
	}
	if len(id) > 64 {
		return New(ErrCodeInvalidID, "id too long (max 64 characters)")
	}
	if !idRegex.MatchString(id) {
		return New(ErrCodeInvalidID, "id contains invalid characters: %q", id)
	}
	return nil
}

var idRegex = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9_-]*$`)

// ValidateTemplateName validates a human-readable template name.
//
// The validation rules are intentionally conservative:
//   - No empty or whitespace-only names
//   - No control characters
//   - Maximum length of 120 characters
func ValidateTemplateName(name string) error {
	if strings.TrimSpace(name) == "" {
		return New(ErrCodeInvalidTemplate, "template name cannot be empty")
	}

	if len(name) > maxNameLength {
		return New(ErrCodeInvalidTemplate, "template name too long (max %d characters)", maxNameLength)
	}

	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidTemplate, "template name contains invalid control characters")
		}
	}

	return nil
}

// colorRegex matches #rgb and #rrggbb hex colors.
var colorRegex = regexp.MustCompile(`^#([0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

// ValidateColor validates a hex color. The empty string means "inherit" and is accepted.
func ValidateColor(c string) error {
	if c == "" {
		return nil
	}
	if !colorRegex.MatchString(c) {
		return New(ErrCodeInvalidSection, "invalid color %q (want #rgb or #rrggbb)", c)
	}
	return nil
}

// ValidatePath validates a file path used for import and export.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 4096 characters
//   - No null bytes or control characters
func ValidatePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidInput, "path cannot be empty")
	}

	const maxPathLength = 4096
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidInput, "path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "path contains invalid characters")
		}
	}

	return nil
}
