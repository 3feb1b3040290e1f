package validation

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memoryNames is an in-memory NameLookup keyed by name.
type memoryNames struct {
	byName map[string]uint
	calls  int
}

func (m *memoryNames) FindIDByName(_ context.Context, name string) (uint, bool, error) {
	m.calls++
	id, ok := m.byName[name]
	return id, ok, nil
}

func TestAuthorValidator_ValidateName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		candidate string
		currentID uint
		wantKind  error
	}{
		{"New unique name", "John Smith", 0, nil},
		{"Empty", "", 0, ErrEmptyValue},
		{"Whitespace only", " \t\n ", 0, ErrEmptyValue},
		{"Taken by another author", "Jane Doe", 0, ErrDuplicateName},
		{"Taken by another saved author", "Jane Doe", 2, ErrDuplicateName},
		{"Own unchanged name", "Jane Doe", 1, nil},
		{"Case differs", "jane doe", 0, nil},
		{"Surrounding whitespace kept distinct", " Jane Doe ", 0, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			v := NewAuthorValidator(&memoryNames{byName: map[string]uint{"Jane Doe": 1}})

			got, err := v.ValidateName(context.Background(), tt.candidate, tt.currentID)
			if tt.wantKind != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.wantKind)
				assert.Empty(t, got)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.candidate, got)
		})
	}
}

func TestAuthorValidator_ValidateName_SkipsLookupWhenBlank(t *testing.T) {
	t.Parallel()

	names := &memoryNames{byName: map[string]uint{}}
	v := NewAuthorValidator(names)

	_, err := v.ValidateName(context.Background(), "   ", 0)
	assert.ErrorIs(t, err, ErrEmptyValue)
	assert.Zero(t, names.calls)
}

func TestAuthorValidator_ValidateName_QueriesEveryCall(t *testing.T) {
	t.Parallel()

	names := &memoryNames{byName: map[string]uint{}}
	v := NewAuthorValidator(names)

	for range 3 {
		_, err := v.ValidateName(context.Background(), "Jane Doe", 0)
		require.NoError(t, err)
	}
	assert.Equal(t, 3, names.calls)
}

func TestAuthorValidator_ValidateName_LookupError(t *testing.T) {
	t.Parallel()

	boom := errors.New("connection refused")
	v := NewAuthorValidator(NameLookupFunc(func(context.Context, string) (uint, bool, error) {
		return 0, false, boom
	}))

	_, err := v.ValidateName(context.Background(), "Jane Doe", 0)
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	assert.False(t, IsValidationError(err))
}

func TestValidatePhoneNumber(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		phone   string
		wantErr bool
	}{
		{"Ten digits", "5551234567", false},
		{"Leading zeros", "0012345678", false},
		{"Too short", "123", true},
		{"Nine digits", "555123456", true},
		{"Eleven digits", "55512345678", true},
		{"Dashes", "555-123-4567", true},
		{"Spaces", "555 123 4567", true},
		{"Country code", "+15551234567", true},
		{"Trailing newline", "5551234567\n", true},
		{"Letters", "55512345ab", true},
		{"Full width digits", "５５５１２３４５６７", true},
		{"Empty", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := ValidatePhoneNumber(tt.phone)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrFormat)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.phone, got)
		})
	}
}

func TestFieldError(t *testing.T) {
	t.Parallel()

	_, err := ValidatePhoneNumber("123")
	fe, ok := AsFieldError(err)
	require.True(t, ok)
	assert.Equal(t, EntityAuthor, fe.Entity)
	assert.Equal(t, FieldPhoneNumber, fe.Field)
	assert.Equal(t, "author.phone_number: phone number must be exactly 10 digits", err.Error())
	assert.Equal(t, "format", KindName(err))
	assert.Equal(t, "", KindName(errors.New("other")))
}
