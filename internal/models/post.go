package models

import (
	"errors"
	"fmt"
	"time"

	"inkwell/internal/validation"
)

// Post represents a blog post, optionally owned by an Author.
//
// Title, Content, Summary and Category must only be assigned through the
// setters (or NewPost) so every assignment is validated.
type Post struct {
	ID       uint    `gorm:"primaryKey" json:"id"`
	Title    string  `gorm:"not null" json:"title"`
	Content  string  `gorm:"type:text;not null" json:"content"`
	Summary  string  `gorm:"type:text;not null;default:''" json:"summary,omitempty"`
	Category string  `gorm:"size:32;not null;default:''" json:"category,omitempty"`
	AuthorID *uint   `gorm:"index" json:"author_id,omitempty"`
	// The foreign key constraint is declared on Author.Posts.
	Author    *Author    `gorm:"foreignKey:AuthorID" json:"author,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt *time.Time `gorm:"autoUpdateTime:false" json:"updated_at,omitempty"`
}

// TableName specifies the table name for GORM.
func (Post) TableName() string {
	return "posts"
}

// PostFields carries the caller-supplied values for a new post.
type PostFields struct {
	Title    string
	Content  string
	Summary  string
	Category string
	AuthorID *uint
}

// NewPost builds an unsaved post, validating each field in declaration
// order and stopping at the first rejection.
func NewPost(f PostFields) (*Post, error) {
	p := &Post{}
	if err := p.SetTitle(f.Title); err != nil {
		return nil, err
	}
	if err := p.SetContent(f.Content); err != nil {
		return nil, err
	}
	if err := p.SetSummary(f.Summary); err != nil {
		return nil, err
	}
	if err := p.SetCategory(f.Category); err != nil {
		return nil, err
	}
	p.SetAuthorID(f.AuthorID)
	return p, nil
}

// SetTitle validates and assigns the title.
func (p *Post) SetTitle(title string) error {
	accepted, err := validation.ValidateTitle(title)
	if err != nil {
		return err
	}
	p.Title = accepted
	return nil
}

// SetContent validates and assigns the content.
func (p *Post) SetContent(content string) error {
	accepted, err := validation.ValidateContent(content)
	if err != nil {
		return err
	}
	p.Content = accepted
	return nil
}

// SetSummary validates and assigns the summary; "" clears it.
func (p *Post) SetSummary(summary string) error {
	accepted, err := validation.ValidateSummary(summary)
	if err != nil {
		return err
	}
	p.Summary = accepted
	return nil
}

// SetCategory validates and assigns the category; "" clears it.
func (p *Post) SetCategory(category string) error {
	accepted, err := validation.ValidateCategory(category)
	if err != nil {
		return err
	}
	p.Category = accepted
	return nil
}

// SetAuthorID points the post at an author, or detaches it when id is nil.
// Existence is enforced by the foreign key when the post is written.
func (p *Post) SetAuthorID(id *uint) {
	if id == nil {
		p.AuthorID = nil
	} else {
		v := *id
		p.AuthorID = &v
	}
	p.Author = nil
}

// Validate re-checks every field rule and reports all failures.
func (p *Post) Validate() error {
	var errs []error
	if _, err := validation.ValidateTitle(p.Title); err != nil {
		errs = append(errs, err)
	}
	if _, err := validation.ValidateContent(p.Content); err != nil {
		errs = append(errs, err)
	}
	if _, err := validation.ValidateSummary(p.Summary); err != nil {
		errs = append(errs, err)
	}
	if _, err := validation.ValidateCategory(p.Category); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

func (p *Post) String() string {
	return fmt.Sprintf("<Post id=%d title=%s>", p.ID, p.Title)
}
