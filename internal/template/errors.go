package template

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for the template package.
var (
	// ErrInvalidConfig indicates the package configuration is invalid.
	ErrInvalidConfig = errors.New("template: invalid package configuration")

	// ErrTemplateNotFound indicates no template description exists in the project.
	ErrTemplateNotFound = errors.New("template: template description not found")
)

// ValidationError represents a single invalid field.
type ValidationError struct {
	Field   string
	Message string
}

// Error implements the error interface.
func (e ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("field %q: %s", e.Field, e.Message)
}

// ValidationErrors is a collection of validation errors.
type ValidationErrors struct {
	Errors []ValidationError
}

// Error implements the error interface.
func (e *ValidationErrors) Error() string {
	if len(e.Errors) == 0 {
		return "validation: no errors"
	}
	msgs := make([]string, len(e.Errors))
	for i, err := range e.Errors {
		msgs[i] = err.Error()
	}
	return fmt.Sprintf("invalid package configuration (%d error(s)): %s", len(e.Errors), strings.Join(msgs, "; "))
}

// Is makes every ValidationErrors match ErrInvalidConfig.
func (e *ValidationErrors) Is(target error) bool {
	return target == ErrInvalidConfig
}
