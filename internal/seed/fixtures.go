package seed

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed fixtures/blog.yml
var defaultFixtures []byte

// Fixtures is a hand-written data set loaded from YAML.
type Fixtures struct {
	Authors []AuthorFixture `yaml:"authors"`
	// Posts without an author.
	Posts []PostFixture `yaml:"posts"`
}

type AuthorFixture struct {
	Name        string        `yaml:"name"`
	PhoneNumber string        `yaml:"phone_number"`
	Posts       []PostFixture `yaml:"posts"`
}

type PostFixture struct {
	Title    string `yaml:"title"`
	Content  string `yaml:"content"`
	Summary  string `yaml:"summary"`
	Category string `yaml:"category"`
}

// LoadFixtures decodes fixtures from r. Unknown keys are rejected.
func LoadFixtures(r io.Reader) (*Fixtures, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var fx Fixtures
	if err := dec.Decode(&fx); err != nil {
		if errors.Is(err, io.EOF) {
			return &fx, nil
		}
		return nil, fmt.Errorf("decode fixtures: %w", err)
	}
	return &fx, nil
}

// LoadFixturesFile reads fixtures from path.
func LoadFixturesFile(path string) (*Fixtures, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open fixtures: %w", err)
	}
	defer f.Close()
	return LoadFixtures(f)
}

// DefaultFixtures returns the built-in demo data set.
func DefaultFixtures() (*Fixtures, error) {
	return LoadFixtures(bytes.NewReader(defaultFixtures))
}
