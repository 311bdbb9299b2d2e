package api

import "fmt"

// FieldError is a single field-level rejection returned by the platform.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Error carries the server-supplied failure message and, when present,
// a per-field error map. Transport failures are returned as plain
// wrapped errors, not *Error.
type Error struct {
	StatusCode int
	Message    string
	Fields     map[string]string
}

func (e *Error) Error() string {
	if e.Message != "" {
		return e.Message
	}

	return fmt.Sprintf("request failed with status %d", e.StatusCode)
}

// FieldMessage returns the error for a named field, or "".
func (e *Error) FieldMessage(field string) string {
	return e.Fields[field]
}
