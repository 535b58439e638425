package domain

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNotFound is returned when no video has the requested id
	ErrNotFound = errors.New("video not found")

	// ErrMalformedBody is returned when a request body is not valid JSON
	ErrMalformedBody = errors.New("malformed JSON body")
)

// FieldError describes a single violated field constraint
type FieldError struct {
	Message string `json:"message"`
	Field   string `json:"field"`
}

// Violations is an ordered list of field errors
type Violations []FieldError

// Add appends the standard "Invalid <field> field" entry
func (v *Violations) Add(field string) {
	*v = append(*v, FieldError{
		Message: fmt.Sprintf("Invalid %s field", field),
		Field:   field,
	})
}

// Err returns a *ValidationError when v is non-empty, otherwise nil
func (v Violations) Err() error {
	if len(v) == 0 {
		return nil
	}
	return &ValidationError{Errors: v}
}

// ValidationError rejects a whole request because of one or more violations
type ValidationError struct {
	Errors Violations
}

// Error implements error
func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed: %s", strings.Join(e.Fields(), ", "))
}

// Fields returns the field names in order, including repeats
func (e *ValidationError) Fields() []string {
	fields := make([]string, len(e.Errors))
	for i, fe := range e.Errors {
		fields[i] = fe.Field
	}
	return fields
}
