package application

import (
	"fmt"
	"path/filepath"
	"strings"
)

// ValidateRequired checks if a string field is non-empty (after trimming whitespace).
// Returns a ValidationError if the field is empty.
func ValidateRequired(fieldName, value string) error {
	if strings.TrimSpace(value) == "" {
		displayName := formatFieldName(fieldName)
		return &ValidationError{
			Field:   fieldName,
			Message: fmt.Sprintf("%s is required", displayName),
		}
	}
	return nil
}

// formatFieldName converts camelCase field names to space-separated words
// for more readable error messages (e.g., "newPath" -> "new path")
func formatFieldName(fieldName string) string {
	replacements := map[string]string{
		"path":     "path",
		"newPath":  "new path",
		"newName":  "new name",
		"dir":      "directory",
		"category": "category",
		"ide":      "IDE command",
		"paths":    "at least one path",
	}

	if formatted, ok := replacements[fieldName]; ok {
		return formatted
	}

	return fieldName
}

// NormalizePath trims and cleans a project path and makes it absolute.
// Returns a ValidationError if the path is empty or names no directory.
func NormalizePath(fieldName, path string) (string, error) {
	if err := ValidateRequired(fieldName, path); err != nil {
		return "", err
	}

	abs, err := filepath.Abs(filepath.Clean(strings.TrimSpace(path)))
	if err != nil {
		return "", &ValidationError{
			Field:   fieldName,
			Message: fmt.Sprintf("cannot resolve %s: %v", path, err),
		}
	}

	if abs == string(filepath.Separator) {
		return "", &ValidationError{
			Field:   fieldName,
			Message: "filesystem root cannot be a project",
		}
	}
	return abs, nil
}
