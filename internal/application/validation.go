package application

import (
	"fmt"
	"strings"

	"nuttxconf/internal/domain"
)

// ValidateRequired checks if a string field is non-empty (after trimming whitespace).
// Returns a ValidationError if the field is empty.
func ValidateRequired(fieldName, value string) error {
	if strings.TrimSpace(value) == "" {
		return &ValidationError{
			Field:   fieldName,
			Message: fmt.Sprintf("%s is required", formatFieldName(fieldName)),
		}
	}
	return nil
}

// formatFieldName converts camelCase field names to space-separated words
// for more readable error messages (e.g., "scriptPath" -> "script path")
func formatFieldName(fieldName string) string {
	replacements := map[string]string{
		"scriptPath":    "script path",
		"workspaceRoot": "workspace root",
		"candidate":     "configuration",
		"board":         "board",
		"conf":          "configuration name",
	}

	if formatted, ok := replacements[fieldName]; ok {
		return formatted
	}
	return fieldName
}

// ValidateCandidate checks that a candidate splits into a non-empty board and conf
func ValidateCandidate(c domain.Candidate) (board, conf string, err error) {
	board, conf, err = c.Split()
	if err != nil {
		return "", "", &InvalidCandidateError{Candidate: string(c)}
	}
	if strings.TrimSpace(board) == "" || strings.TrimSpace(conf) == "" {
		return "", "", &InvalidCandidateError{Candidate: string(c)}
	}
	return board, conf, nil
}

// ValidationError represents a validation failure with details
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}
