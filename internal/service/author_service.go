package service

import (
	"context"
	"log/slog"

	"inkwell/internal/locks"
	"inkwell/internal/models"
	"inkwell/internal/observability"
	"inkwell/internal/repository"
	"inkwell/internal/validation"

	"go.opentelemetry.io/otel/attribute"
)

// AuthorService creates and mutates authors. Writes that claim a name hold
// the per-name lock from validation through persistence.
type AuthorService struct {
	authors   repository.AuthorRepository
	validator *validation.AuthorValidator
	locker    locks.Locker
}

type CreateAuthorInput struct {
	Name        string
	PhoneNumber string
}

// UpdateAuthorInput changes only the fields that are non-nil.
type UpdateAuthorInput struct {
	AuthorID    uint
	Name        *string
	PhoneNumber *string
}

func NewAuthorService(authors repository.AuthorRepository, locker locks.Locker) *AuthorService {
	return &AuthorService{
		authors:   authors,
		validator: validation.NewAuthorValidator(authors),
		locker:    locker,
	}
}

func nameLockKey(name string) string {
	return "author-name:" + name
}

func (s *AuthorService) lockName(ctx context.Context, name string) (locks.Unlock, error) {
	unlock, err := s.locker.Lock(ctx, nameLockKey(name))
	if err != nil {
		observability.Logger.WarnContext(ctx, "Failed to acquire author name lock",
			slog.String("error", err.Error()),
		)
		return nil, err
	}
	return unlock, nil
}

func releaseName(ctx context.Context, unlock locks.Unlock) {
	if err := unlock(context.WithoutCancel(ctx)); err != nil {
		observability.Logger.WarnContext(ctx, "Failed to release author name lock",
			slog.String("error", err.Error()),
		)
	}
}

func (s *AuthorService) CreateAuthor(ctx context.Context, in CreateAuthorInput) (author *models.Author, err error) {
	ctx = observability.EnsureCorrelationID(ctx)
	span, ctx := observability.NewSpan(ctx, "AuthorService.CreateAuthor")
	defer func() { endSpan(span, err) }()

	if _, err := validation.ValidateNameFormat(in.Name); err != nil {
		recordRejections(err)
		return nil, err
	}

	unlock, err := s.lockName(ctx, in.Name)
	if err != nil {
		return nil, err
	}
	defer releaseName(ctx, unlock)

	author, err = models.NewAuthor(ctx, s.validator, in.Name, in.PhoneNumber)
	if err != nil {
		recordRejections(err)
		return nil, err
	}

	if err := s.authors.Create(ctx, author); err != nil {
		recordRejections(err)
		return nil, err
	}

	span.AddAttributes(attribute.Int64("author.id", int64(author.ID)))
	return author, nil
}

// UpdateAuthor applies the requested changes to an existing author. A
// failed field leaves the stored author unchanged.
func (s *AuthorService) UpdateAuthor(ctx context.Context, in UpdateAuthorInput) (author *models.Author, err error) {
	ctx = observability.EnsureCorrelationID(ctx)
	span, ctx := observability.NewSpan(ctx, "AuthorService.UpdateAuthor",
		attribute.Int64("author.id", int64(in.AuthorID)),
	)
	defer func() { endSpan(span, err) }()

	if in.Name != nil {
		if _, err := validation.ValidateNameFormat(*in.Name); err != nil {
			recordRejections(err)
			return nil, err
		}
		unlock, err := s.lockName(ctx, *in.Name)
		if err != nil {
			return nil, err
		}
		defer releaseName(ctx, unlock)
	}

	author, err = s.authors.GetByID(ctx, in.AuthorID)
	if err != nil {
		return nil, err
	}

	if in.Name != nil {
		if err := author.SetName(ctx, s.validator, *in.Name); err != nil {
			recordRejections(err)
			return nil, err
		}
	}
	if in.PhoneNumber != nil {
		if err := author.SetPhoneNumber(*in.PhoneNumber); err != nil {
			recordRejections(err)
			return nil, err
		}
	}

	if err := s.authors.Update(ctx, author); err != nil {
		recordRejections(err)
		return nil, err
	}
	return author, nil
}

func (s *AuthorService) GetAuthor(ctx context.Context, id uint) (*models.Author, error) {
	return s.authors.GetByID(ctx, id)
}

func (s *AuthorService) GetAuthorByName(ctx context.Context, name string) (*models.Author, error) {
	return s.authors.GetByName(ctx, name)
}

func (s *AuthorService) ListAuthors(ctx context.Context, limit, offset int) ([]models.Author, error) {
	return s.authors.List(ctx, limit, offset)
}

// AuthorPosts returns the author's posts, oldest first.
func (s *AuthorService) AuthorPosts(ctx context.Context, id uint) ([]models.Post, error) {
	author, err := s.authors.GetWithPosts(ctx, id)
	if err != nil {
		return nil, err
	}
	return author.Posts, nil
}

// DeleteAuthor removes the author; their posts are kept without an author.
func (s *AuthorService) DeleteAuthor(ctx context.Context, id uint) (err error) {
	ctx = observability.EnsureCorrelationID(ctx)
	span, ctx := observability.NewSpan(ctx, "AuthorService.DeleteAuthor",
		attribute.Int64("author.id", int64(id)),
	)
	defer func() { endSpan(span, err) }()

	return s.authors.Delete(ctx, id)
}
