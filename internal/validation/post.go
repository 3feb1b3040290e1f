package validation

import (
	"regexp"
	"slices"
	"strings"
	"unicode/utf8"
)

const (
	EntityPost = "post"

	FieldTitle    = "title"
	FieldContent  = "content"
	FieldSummary  = "summary"
	FieldCategory = "category"
)

// Length bounds, counted in runes after trimming surrounding whitespace.
const (
	MinContentLength = 250
	MaxSummaryLength = 250
)

// Post categories.
const (
	CategoryTechnology = "Technology"
	CategoryLifestyle  = "Lifestyle"
	CategoryEducation  = "Education"
	CategoryHealth     = "Health"
	CategoryFinance    = "Finance"
	CategoryNonFiction = "Non-Fiction"
)

var categories = []string{
	CategoryTechnology,
	CategoryLifestyle,
	CategoryEducation,
	CategoryHealth,
	CategoryFinance,
	CategoryNonFiction,
}

// RE2's \b only knows ASCII word characters, so the boundaries are spelled
// out over Unicode letters and numbers.
const (
	wordStart = `(?:^|[^\p{L}\p{N}_])`
	wordEnd   = `(?:[^\p{L}\p{N}_]|$)`
)

func wordPattern(expr string) *regexp.Regexp {
	return regexp.MustCompile(wordStart + "(" + expr + ")" + wordEnd)
}

// Matched against the lowercased title, anywhere in the string.
var clickbaitPatterns = []*regexp.Regexp{
	wordPattern(`secret`),
	wordPattern(`you won'?t believe`),
	wordPattern(`amazing`),
	wordPattern(`shocking`),
	wordPattern(`top \p{Nd}+`),
}

// Categories returns the accepted post categories in display order.
func Categories() []string {
	return slices.Clone(categories)
}

// PostValidator validates post fields. It holds no state; the zero value is ready to use.
type PostValidator struct{}

// ValidateTitle is the method form of ValidateTitle.
func (PostValidator) ValidateTitle(candidate string) (string, error) {
	return ValidateTitle(candidate)
}

// ValidateContent is the method form of ValidateContent.
func (PostValidator) ValidateContent(candidate string) (string, error) {
	return ValidateContent(candidate)
}

// ValidateSummary is the method form of ValidateSummary.
func (PostValidator) ValidateSummary(candidate string) (string, error) {
	return ValidateSummary(candidate)
}

// ValidateCategory is the method form of ValidateCategory.
func (PostValidator) ValidateCategory(candidate string) (string, error) {
	return ValidateCategory(candidate)
}

// ValidateTitle rejects blank titles and titles matching a clickbait
// pattern. The original casing is returned.
func ValidateTitle(candidate string) (string, error) {
	if strings.TrimSpace(candidate) == "" {
		return "", newFieldError(EntityPost, FieldTitle, ErrEmptyValue, "post must have a title")
	}

	normalized := strings.ToLower(candidate)
	for _, pattern := range clickbaitPatterns {
		if m := pattern.FindStringSubmatch(normalized); m != nil {
			fe := newFieldError(EntityPost, FieldTitle, ErrClickbait, "post title cannot be clickbait")
			fe.Match = m[1]
			return "", fe
		}
	}

	return candidate, nil
}

// ValidateContent requires at least MinContentLength characters once trimmed.
func ValidateContent(candidate string) (string, error) {
	if trimmedLen(candidate) < MinContentLength {
		return "", newFieldError(EntityPost, FieldContent, ErrTooShort,
			"post content must be at least %d characters", MinContentLength)
	}
	return candidate, nil
}

// ValidateSummary accepts an empty summary and otherwise caps it at
// MaxSummaryLength characters once trimmed.
func ValidateSummary(candidate string) (string, error) {
	if candidate == "" {
		return candidate, nil
	}
	if trimmedLen(candidate) > MaxSummaryLength {
		return "", newFieldError(EntityPost, FieldSummary, ErrTooLong,
			"summary must be no longer than %d characters", MaxSummaryLength)
	}
	return candidate, nil
}

// ValidateCategory accepts an empty category or an exact, case-sensitive
// member of Categories.
func ValidateCategory(candidate string) (string, error) {
	if candidate == "" || slices.Contains(categories, candidate) {
		return candidate, nil
	}
	fe := newFieldError(EntityPost, FieldCategory, ErrInvalidEnum,
		"category must be one of the following: %s", joinAllowed(categories))
	fe.Allowed = Categories()
	return "", fe
}

func trimmedLen(s string) int {
	return utf8.RuneCountInString(strings.TrimSpace(s))
}
