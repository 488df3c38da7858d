package service

import (
	"errors"
	"sort"
	"strings"
)

var (
	ErrDuplicateCredential = errors.New("a user with this username or email already exists")
	ErrInvalidCredentials  = errors.New("invalid login credentials")
	ErrTaskNotFound        = errors.New("task not found")
	ErrForbidden           = errors.New("task belongs to another user")
)

// ValidationError reports malformed input, keyed by JSON field name.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = k + ": " + e.Fields[k]
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func newValidationError(field, msg string) *ValidationError {
	return &ValidationError{Fields: map[string]string{field: msg}}
}
