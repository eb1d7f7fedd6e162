package rest

import (
	"fmt"
	"time"
)

type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// parseOptionalDate accepts an untyped JSON value that must be a YYYY-MM-DD
// string or absent.
func parseOptionalDate(field string, raw interface{}) (*time.Time, error) {
	if raw == nil {
		return nil, nil
	}
	s, ok := raw.(string)
	if !ok {
		return nil, &ValidationError{Field: field, Message: "must be YYYY-MM-DD or empty"}
	}
	if s == "" {
		return nil, nil
	}
	parsed, err := time.Parse("2006-01-02", s)
	if err != nil {
		return nil, &ValidationError{Field: field, Message: "must be YYYY-MM-DD or empty"}
	}
	return &parsed, nil
}
