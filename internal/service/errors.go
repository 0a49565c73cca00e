package service

import (
	"errors"
	"fmt"
	"strings"

	"github.com/salesdesk/salesdesk/internal/repository"
)

// ErrNotFound is returned when the requested record does not exist
var ErrNotFound = repository.ErrNotFound

// FieldError is a single rejected field
type FieldError struct {
	Field   string
	Message string
}

func (e FieldError) String() string {
	return fmt.Sprintf("field %s: %s", e.Field, e.Message)
}

// ValidationError carries every field rejected in a payload
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	return "validation failed: " + strings.Join(e.Messages(), "; ")
}

// Messages renders the field errors as "field X: message" strings
func (e *ValidationError) Messages() []string {
	msgs := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		msgs = append(msgs, f.String())
	}
	return msgs
}

// IsNotFound reports whether err means the record does not exist
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

func validationError(fields []FieldError) error {
	if len(fields) == 0 {
		return nil
	}
	return &ValidationError{Fields: fields}
}
