package pipeline

import (
	"errors"
	"strings"
)

// ErrSchema matches every *SchemaError via errors.Is.
var ErrSchema = errors.New("input schema invalid")

// SchemaError reports required columns absent from the input header.
type SchemaError struct {
	Missing []string
}

func (e *SchemaError) Error() string {
	return "missing required columns: " + strings.Join(e.Missing, ", ")
}

// Is lets callers test for ErrSchema without a type assertion.
func (e *SchemaError) Is(target error) bool {
	return target == ErrSchema
}
