package service

import (
	"context"

	"inkwell/internal/models"
	"inkwell/internal/observability"
	"inkwell/internal/repository"

	"go.opentelemetry.io/otel/attribute"
)

type PostService struct {
	posts   repository.PostRepository
	authors repository.AuthorRepository
}

type CreatePostInput struct {
	Title    string
	Content  string
	Summary  string
	Category string
	AuthorID *uint
}

// UpdatePostInput changes only the fields that are non-nil. ClearAuthor
// detaches the post from its author and takes precedence over AuthorID.
type UpdatePostInput struct {
	PostID      uint
	Title       *string
	Content     *string
	Summary     *string
	Category    *string
	AuthorID    *uint
	ClearAuthor bool
}

func NewPostService(posts repository.PostRepository, authors repository.AuthorRepository) *PostService {
	return &PostService{
		posts:   posts,
		authors: authors,
	}
}

func (s *PostService) CreatePost(ctx context.Context, in CreatePostInput) (post *models.Post, err error) {
	ctx = observability.EnsureCorrelationID(ctx)
	span, ctx := observability.NewSpan(ctx, "PostService.CreatePost")
	defer func() { endSpan(span, err) }()

	post, err = models.NewPost(models.PostFields{
		Title:    in.Title,
		Content:  in.Content,
		Summary:  in.Summary,
		Category: in.Category,
		AuthorID: in.AuthorID,
	})
	if err != nil {
		recordRejections(err)
		return nil, err
	}

	if err := s.posts.Create(ctx, post); err != nil {
		recordRejections(err)
		return nil, err
	}

	span.AddAttributes(attribute.Int64("post.id", int64(post.ID)))
	return post, nil
}

// UpdatePost applies the requested changes in field order and stops at the
// first rejection, leaving the stored post unchanged.
func (s *PostService) UpdatePost(ctx context.Context, in UpdatePostInput) (post *models.Post, err error) {
	ctx = observability.EnsureCorrelationID(ctx)
	span, ctx := observability.NewSpan(ctx, "PostService.UpdatePost",
		attribute.Int64("post.id", int64(in.PostID)),
	)
	defer func() { endSpan(span, err) }()

	post, err = s.posts.GetByID(ctx, in.PostID)
	if err != nil {
		return nil, err
	}

	setters := []struct {
		value *string
		set   func(string) error
	}{
		{in.Title, post.SetTitle},
		{in.Content, post.SetContent},
		{in.Summary, post.SetSummary},
		{in.Category, post.SetCategory},
	}
	for _, f := range setters {
		if f.value == nil {
			continue
		}
		if err := f.set(*f.value); err != nil {
			recordRejections(err)
			return nil, err
		}
	}

	switch {
	case in.ClearAuthor:
		post.SetAuthorID(nil)
	case in.AuthorID != nil:
		post.SetAuthorID(in.AuthorID)
	}

	if err := s.posts.Update(ctx, post); err != nil {
		recordRejections(err)
		return nil, err
	}
	return post, nil
}

func (s *PostService) GetPost(ctx context.Context, id uint) (*models.Post, error) {
	return s.posts.GetByID(ctx, id)
}

func (s *PostService) DeletePost(ctx context.Context, id uint) (err error) {
	ctx = observability.EnsureCorrelationID(ctx)
	span, ctx := observability.NewSpan(ctx, "PostService.DeletePost",
		attribute.Int64("post.id", int64(id)),
	)
	defer func() { endSpan(span, err) }()

	return s.posts.Delete(ctx, id)
}

// ListPostsByAuthor pages through an existing author's posts.
func (s *PostService) ListPostsByAuthor(ctx context.Context, authorID uint, limit, offset int) ([]models.Post, error) {
	if _, err := s.authors.GetByID(ctx, authorID); err != nil {
		return nil, err
	}
	return s.posts.ListByAuthor(ctx, authorID, limit, offset)
}
