package validation

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel kinds for field validation failures. Every *FieldError unwraps
// to exactly one of these, so callers branch with errors.Is.
var (
	ErrEmptyValue    = errors.New("empty value")
	ErrDuplicateName = errors.New("duplicate name")
	ErrFormat        = errors.New("invalid format")
	ErrClickbait     = errors.New("clickbait")
	ErrTooShort      = errors.New("too short")
	ErrTooLong       = errors.New("too long")
	ErrInvalidEnum   = errors.New("not an allowed value")
)

var kindNames = []struct {
	kind error
	name string
}{
	{ErrEmptyValue, "empty_value"},
	{ErrDuplicateName, "duplicate_name"},
	{ErrFormat, "format"},
	{ErrClickbait, "clickbait"},
	{ErrTooShort, "too_short"},
	{ErrTooLong, "too_long"},
	{ErrInvalidEnum, "invalid_enum"},
}

// FieldError is a rejected assignment of a single field.
type FieldError struct {
	Entity  string
	Field   string
	Kind    error
	Message string
	// Allowed lists the accepted values for ErrInvalidEnum.
	Allowed []string
	// Match is the offending fragment for ErrClickbait.
	Match string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s.%s: %s", e.Entity, e.Field, e.Message)
}

// Unwrap returns the sentinel kind for errors.Is() support.
func (e *FieldError) Unwrap() error {
	return e.Kind
}

func newFieldError(entity, field string, kind error, format string, args ...any) *FieldError {
	return &FieldError{
		Entity:  entity,
		Field:   field,
		Kind:    kind,
		Message: fmt.Sprintf(format, args...),
	}
}

// AsFieldError extracts the *FieldError carried by err, if any.
func AsFieldError(err error) (*FieldError, bool) {
	var fe *FieldError
	if errors.As(err, &fe) {
		return fe, true
	}
	return nil, false
}

// IsValidationError reports whether err is a field validation failure.
func IsValidationError(err error) bool {
	_, ok := AsFieldError(err)
	return ok
}

// KindName returns a stable snake_case label for the kind carried by err,
// or "" when err is not a validation failure.
func KindName(err error) string {
	for _, k := range kindNames {
		if errors.Is(err, k.kind) {
			return k.name
		}
	}
	return ""
}

func joinAllowed(values []string) string {
	return strings.Join(values, ", ")
}
