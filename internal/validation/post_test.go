package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateTitle(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		title     string
		wantKind  error
		wantMatch string
	}{
		{"Plain title", "Guide to Gardening", nil, ""},
		{"Empty", "", ErrEmptyValue, ""},
		{"Whitespace", "   ", ErrEmptyValue, ""},
		{"Secret", "The secret of bread", ErrClickbait, "secret"},
		{"Secret uppercase", "THE SECRET", ErrClickbait, "secret"},
		{"Secretive is not secret", "A secretive cat", nil, ""},
		{"Secrets is not secret", "Trade secrets explained", nil, ""},
		{"You won't believe", "You won't believe this", ErrClickbait, "you won't believe"},
		{"You wont believe", "you wont believe this", ErrClickbait, "you wont believe"},
		{"Amazing", "5 Amazing Tips", ErrClickbait, "amazing"},
		{"Amazingly is fine", "Amazingly ordinary", nil, ""},
		{"Shocking", "Shocking results", ErrClickbait, "shocking"},
		{"Top N", "Top 10 recipes", ErrClickbait, "top 10"},
		{"Top N mid-title", "Our top 3 picks", ErrClickbait, "top 3"},
		{"Top without number", "Top chefs", nil, ""},
		{"Stop 5 is not top 5", "Bus stop 5 schedule", nil, ""},
		{"Top N followed by letters", "Top 10x engineers", nil, ""},
		{"Accented continuation is not secret", "O secretário da escola", nil, ""},
		{"Accented prefix is not secret", "ésecret plans", nil, ""},
		{"Accented word after amazing", "amazingé things", nil, ""},
		{"Secret beside punctuation", "(secret) menu", ErrClickbait, "secret"},
		{"Secret among accented words", "café secret à Paris", ErrClickbait, "secret"},
		{"Top fullwidth digit", "Top ３ picks", ErrClickbait, "top ３"},
		{"Top arabic-indic digits", "top ١٠ ideas", ErrClickbait, "top ١٠"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := ValidateTitle(tt.title)
			if tt.wantKind != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.wantKind)
				if tt.wantMatch != "" {
					fe, ok := AsFieldError(err)
					require.True(t, ok)
					assert.Equal(t, tt.wantMatch, fe.Match)
				}
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.title, got, "casing must be preserved")
		})
	}
}

func TestValidateContent(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
		wantErr bool
	}{
		{"Empty", "", true},
		{"Short", strings.Repeat("a", 100), true},
		{"One under", strings.Repeat("a", 249), true},
		{"Exactly minimum", strings.Repeat("a", 250), false},
		{"Long", strings.Repeat("a", 300), false},
		{"Padding does not count", "  " + strings.Repeat("a", 249) + "\n\n", true},
		{"Multibyte counted as characters", strings.Repeat("é", 250), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := ValidateContent(tt.content)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrTooShort)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.content, got)
		})
	}
}

func TestValidateContent_KeepsWhitespace(t *testing.T) {
	t.Parallel()

	content := "\n" + strings.Repeat("b", 260) + "  "
	got, err := ValidateContent(content)
	require.NoError(t, err)
	assert.Equal(t, content, got)
}

func TestValidateSummary(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		summary string
		wantErr bool
	}{
		{"Absent", "", false},
		{"Short", "A quick overview.", false},
		{"Exactly maximum", strings.Repeat("s", 250), false},
		{"One over", strings.Repeat("s", 251), true},
		{"Padding does not count", "   " + strings.Repeat("s", 250) + "   ", false},
		{"Whitespace only", "    ", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := ValidateSummary(tt.summary)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrTooLong)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.summary, got)
		})
	}
}

func TestValidateCategory(t *testing.T) {
	t.Parallel()

	for _, c := range Categories() {
		t.Run("Accepts "+c, func(t *testing.T) {
			t.Parallel()
			got, err := ValidateCategory(c)
			require.NoError(t, err)
			assert.Equal(t, c, got)
		})
	}

	tests := []struct {
		name     string
		category string
		wantErr  bool
	}{
		{"Absent", "", false},
		{"Unknown", "Sports", true},
		{"Lowercase", "technology", true},
		{"Padded", " Health", true},
		{"Non Fiction without hyphen", "Non Fiction", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := ValidateCategory(tt.category)
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, ErrInvalidEnum)
			fe, ok := AsFieldError(err)
			require.True(t, ok)
			assert.Equal(t, Categories(), fe.Allowed)
			assert.Contains(t, fe.Message, "Technology, Lifestyle, Education, Health, Finance, Non-Fiction")
		})
	}
}

func TestCategories_ReturnsCopy(t *testing.T) {
	t.Parallel()

	c := Categories()
	c[0] = "Sports"
	assert.Equal(t, CategoryTechnology, Categories()[0])
}

func TestPostValidator_MethodsMatchFunctions(t *testing.T) {
	t.Parallel()

	var v PostValidator
	_, err := v.ValidateTitle("Top 5 things")
	assert.ErrorIs(t, err, ErrClickbait)
	_, err = v.ValidateContent("short")
	assert.ErrorIs(t, err, ErrTooShort)
	_, err = v.ValidateSummary(strings.Repeat("x", 300))
	assert.ErrorIs(t, err, ErrTooLong)
	_, err = v.ValidateCategory("Sports")
	assert.ErrorIs(t, err, ErrInvalidEnum)
}
