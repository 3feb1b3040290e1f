// Package validation enforces the field rules for authors and posts.
// Validators return the accepted value unchanged or a *FieldError.
package validation

import (
	"context"
	"fmt"
	"regexp"
	"strings"
)

// Entity and field names used in FieldError.
const (
	EntityAuthor = "author"

	FieldName        = "name"
	FieldPhoneNumber = "phone_number"
)

var phoneNumberRegex = regexp.MustCompile(`^[0-9]{10}$`)

// NameLookup finds the id of the persisted author holding a name.
// Implementations must query storage on every call.
type NameLookup interface {
	FindIDByName(ctx context.Context, name string) (id uint, found bool, err error)
}

// NameLookupFunc adapts a plain function to NameLookup.
type NameLookupFunc func(ctx context.Context, name string) (uint, bool, error)

// FindIDByName calls f.
func (f NameLookupFunc) FindIDByName(ctx context.Context, name string) (uint, bool, error) {
	return f(ctx, name)
}

// AuthorValidator validates author fields. The zero value is not usable;
// build one with NewAuthorValidator.
type AuthorValidator struct {
	names NameLookup
}

// NewAuthorValidator returns a validator that checks name uniqueness against names.
func NewAuthorValidator(names NameLookup) *AuthorValidator {
	return &AuthorValidator{names: names}
}

// ValidateName checks that candidate is non-blank and not held by another
// author. currentID is the id of the record being mutated (0 when unsaved);
// a match on currentID is the record itself and is accepted.
//
// Whitespace is only trimmed for the blank check; the candidate is returned
// as given.
func (v *AuthorValidator) ValidateName(ctx context.Context, candidate string, currentID uint) (string, error) {
	if _, err := ValidateNameFormat(candidate); err != nil {
		return "", err
	}

	id, found, err := v.names.FindIDByName(ctx, candidate)
	if err != nil {
		return "", fmt.Errorf("check author name uniqueness: %w", err)
	}
	if found && id != currentID {
		return "", NewDuplicateNameError()
	}

	return candidate, nil
}

// NewDuplicateNameError is the failure reported when a name is already taken,
// whether detected by lookup or by the unique index.
func NewDuplicateNameError() *FieldError {
	return newFieldError(EntityAuthor, FieldName, ErrDuplicateName, "author name must be unique")
}

// ValidateNameFormat runs the name checks that need no storage access.
func ValidateNameFormat(candidate string) (string, error) {
	if strings.TrimSpace(candidate) == "" {
		return "", newFieldError(EntityAuthor, FieldName, ErrEmptyValue, "author must have a name")
	}
	return candidate, nil
}

// ValidatePhoneNumber is the method form of the package-level ValidatePhoneNumber.
func (v *AuthorValidator) ValidatePhoneNumber(candidate string) (string, error) {
	return ValidatePhoneNumber(candidate)
}

// ValidatePhoneNumber accepts exactly ten ASCII digits with nothing around them.
func ValidatePhoneNumber(candidate string) (string, error) {
	if !phoneNumberRegex.MatchString(candidate) {
		return "", newFieldError(EntityAuthor, FieldPhoneNumber, ErrFormat, "phone number must be exactly 10 digits")
	}
	return candidate, nil
}
