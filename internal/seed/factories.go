// Package seed provides helpers to create demo data for the application
// database. Every record goes through the same validators as user input.
package seed

import (
	"strings"

	"inkwell/internal/service"
	"inkwell/internal/validation"

	"github.com/brianvoe/gofakeit/v6"
)

const maxTitleAttempts = 10

// Factory builds valid author and post inputs from fake data.
type Factory struct {
	faker *gofakeit.Faker
}

// NewFactory returns a Factory. A zero seed picks a random one.
func NewFactory(seed int64) *Factory {
	return &Factory{faker: gofakeit.New(seed)}
}

// AuthorInput returns a fresh author with a ten-digit phone number. Names
// are realistic and may repeat; callers handle duplicates.
func (f *Factory) AuthorInput() service.CreateAuthorInput {
	return service.CreateAuthorInput{
		Name:        f.faker.Name(),
		PhoneNumber: f.faker.DigitN(10),
	}
}

// PostInput returns a post for authorID (nil for an unowned post).
func (f *Factory) PostInput(authorID *uint) service.CreatePostInput {
	return service.CreatePostInput{
		Title:    f.title(),
		Content:  f.content(),
		Summary:  f.summary(),
		Category: f.faker.RandomString(validation.Categories()),
		AuthorID: authorID,
	}
}

func (f *Factory) title() string {
	for i := 0; i < maxTitleAttempts; i++ {
		candidate := strings.TrimSuffix(f.faker.Sentence(f.faker.Number(3, 7)), ".")
		if _, err := validation.ValidateTitle(candidate); err == nil {
			return candidate
		}
	}
	return "Notes on " + f.faker.Noun()
}

func (f *Factory) content() string {
	var b strings.Builder
	for b.Len() < validation.MinContentLength {
		if b.Len() > 0 {
			b.WriteString("\n\n")
		}
		b.WriteString(f.faker.Paragraph(1, 5, 12, " "))
	}
	return b.String()
}

func (f *Factory) summary() string {
	s := f.faker.Sentence(f.faker.Number(6, 20))
	runes := []rune(s)
	if len(runes) > validation.MaxSummaryLength {
		s = strings.TrimSpace(string(runes[:validation.MaxSummaryLength]))
	}
	return s
}
