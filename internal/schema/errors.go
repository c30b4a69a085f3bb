// Package schema validates client payloads against the insert shapes of
// tokens and token transfers.
package schema

import (
	"fmt"
	"strings"
)

// Issue codes reported in FieldError.Code.
const (
	CodeInvalidType = "invalid_type"
	CodeInvalidJSON = "invalid_json"
	CodeTooBig      = "too_big"
	CodeTooSmall    = "too_small"
)

// FieldError describes a single problem with one input field.
type FieldError struct {
	Code     string   `json:"code"`
	Path     []string `json:"path"`
	Message  string   `json:"message"`
	Expected string   `json:"expected,omitempty"`
	Received string   `json:"received,omitempty"`
}

// ValidationError carries every field-level problem found in a payload.
type ValidationError struct {
	Issues []FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Issues))
	for _, issue := range e.Issues {
		parts = append(parts, fmt.Sprintf("%s: %s", strings.Join(issue.Path, "."), issue.Message))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// HasField reports whether any issue points at the given top-level field.
func (e *ValidationError) HasField(field string) bool {
	for _, issue := range e.Issues {
		if len(issue.Path) > 0 && issue.Path[0] == field {
			return true
		}
	}
	return false
}
