package guard

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// ValidationError reports a parameter rejected before any request was made.
type ValidationError struct {
	// Field is the name of the invalid parameter
	Field string

	// Message describes what is invalid about the parameter
	Message string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error for field %q: %s", e.Field, e.Message)
}

func invalid(field, format string, args ...any) *ValidationError {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}

// Positive requires v > 0.
func Positive(field string, v int) error {
	if v <= 0 {
		return invalid(field, "must be positive, got %d", v)
	}
	return nil
}

// Range requires lo <= v <= hi.
func Range(field string, v, lo, hi int) error {
	if v < lo || v > hi {
		return invalid(field, "must be between %d and %d, got %d", lo, hi, v)
	}
	return nil
}

// NotBlank requires s to contain something other than whitespace.
func NotBlank(field, s string) error {
	if strings.TrimSpace(s) == "" {
		return invalid(field, "must not be blank")
	}
	return nil
}

// MinLength requires s to have at least n characters after trimming.
func MinLength(field, s string, n int) error {
	if got := utf8.RuneCountInString(strings.TrimSpace(s)); got < n {
		return invalid(field, "must be at least %d characters, got %d", n, got)
	}
	return nil
}

// OneOf requires s to be one of allowed. Comparison is case-insensitive.
func OneOf(field, s string, allowed ...string) error {
	for _, a := range allowed {
		if strings.EqualFold(s, a) {
			return nil
		}
	}
	return invalid(field, "must be one of [%s], got %q", strings.Join(allowed, ", "), s)
}

// First returns the first non-nil error, so a set of checks reads as one
// expression.
func First(errs ...error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}
