package services

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	ErrNotFound        = errors.New("entity not found")
	ErrForbidden       = errors.New("operation not permitted")
	ErrUnauthenticated = errors.New("authentication required")
	ErrSelfFollow      = errors.New("cannot follow yourself")
	ErrInternal        = errors.New("internal error")
)

// ValidationError carries field-level messages so the delivery boundary can
// redisplay the form with them.
type ValidationError struct {
	Fields map[string]string
}

func newValidationError(field, message string) *ValidationError {
	return &ValidationError{Fields: map[string]string{field: message}}
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for field, msg := range e.Fields {
		parts = append(parts, fmt.Sprintf("%s: %s", field, msg))
	}
	sort.Strings(parts)
	return "validation failed: " + strings.Join(parts, "; ")
}
