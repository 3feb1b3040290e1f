// Package models contains data structures for the application's domain models.
package models

import (
	"context"
	"errors"
	"fmt"
	"time"

	"inkwell/internal/validation"
)

// Author represents a blog author.
//
// Name and PhoneNumber must only be assigned through SetName and
// SetPhoneNumber (or NewAuthor) so every assignment is validated.
type Author struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	Name        string     `gorm:"not null;uniqueIndex:idx_authors_name" json:"name"`
	PhoneNumber string     `gorm:"size:10;not null" json:"phone_number"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   *time.Time `gorm:"autoUpdateTime:false" json:"updated_at,omitempty"`
	// Posts is a derived view populated by preloading; it is never written through.
	Posts []Post `gorm:"foreignKey:AuthorID;constraint:OnDelete:SET NULL" json:"posts,omitempty"`
}

// TableName specifies the table name for GORM.
func (Author) TableName() string {
	return "authors"
}

// NewAuthor builds an unsaved author, validating each field in turn.
func NewAuthor(ctx context.Context, v *validation.AuthorValidator, name, phoneNumber string) (*Author, error) {
	a := &Author{}
	if err := a.SetName(ctx, v, name); err != nil {
		return nil, err
	}
	if err := a.SetPhoneNumber(phoneNumber); err != nil {
		return nil, err
	}
	return a, nil
}

// SetName validates name against the author table and assigns it. The
// author's own id is exempt from the uniqueness check.
func (a *Author) SetName(ctx context.Context, v *validation.AuthorValidator, name string) error {
	accepted, err := v.ValidateName(ctx, name, a.ID)
	if err != nil {
		return err
	}
	a.Name = accepted
	return nil
}

// SetPhoneNumber validates and assigns the phone number.
func (a *Author) SetPhoneNumber(phoneNumber string) error {
	accepted, err := validation.ValidatePhoneNumber(phoneNumber)
	if err != nil {
		return err
	}
	a.PhoneNumber = accepted
	return nil
}

// Validate re-checks the rules that need no storage access. Uniqueness is
// left to SetName and the unique index.
func (a *Author) Validate() error {
	var errs []error
	if _, err := validation.ValidateNameFormat(a.Name); err != nil {
		errs = append(errs, err)
	}
	if _, err := validation.ValidatePhoneNumber(a.PhoneNumber); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

func (a *Author) String() string {
	return fmt.Sprintf("<Author id=%d name=%s>", a.ID, a.Name)
}
