package domain

import (
	"errors"
	"strings"
)

// FieldProblem is one rejected field of a record.
type FieldProblem struct {
	Field   string
	Message string
}

// ValidationError is returned by shape constructors when field data is
// rejected. Problems keep the order in which fields were checked.
type ValidationError struct {
	Shape    string
	Problems []FieldProblem
}

func (e *ValidationError) Error() string {
	if e == nil {
		return "<nil>"
	}
	parts := make([]string, 0, len(e.Problems))
	for _, p := range e.Problems {
		if p.Field == "" {
			parts = append(parts, p.Message)
			continue
		}
		parts = append(parts, p.Field+": "+p.Message)
	}
	if len(parts) == 0 {
		return e.Shape + ": invalid"
	}
	return e.Shape + ": " + strings.Join(parts, "; ")
}

// Add records a problem for field.
func (e *ValidationError) Add(field, msg string) {
	e.Problems = append(e.Problems, FieldProblem{Field: field, Message: msg})
}

// Err returns e when it holds problems, nil otherwise.
func (e *ValidationError) Err() error {
	if e == nil || len(e.Problems) == 0 {
		return nil
	}
	return e
}

// IsValidation reports whether err carries a *ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
