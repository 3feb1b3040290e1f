package seed

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"inkwell/internal/models"
	"inkwell/internal/observability"
	"inkwell/internal/service"
	"inkwell/internal/validation"

	"gorm.io/gorm"
)

const maxNameAttempts = 5

// Options configuration for the seeder
type Options struct {
	NumAuthors     int
	PostsPerAuthor int
	UnownedPosts   int
}

// Summary counts the records a seeding run created.
type Summary struct {
	Authors int
	Posts   int
}

// Seeder writes demo data through the author and post services.
type Seeder struct {
	db      *gorm.DB
	authors *service.AuthorService
	posts   *service.PostService
}

// NewSeeder creates a new Seeder instance.
func NewSeeder(db *gorm.DB, authors *service.AuthorService, posts *service.PostService) *Seeder {
	return &Seeder{db: db, authors: authors, posts: posts}
}

// ClearAll removes every post and author.
func (s *Seeder) ClearAll(ctx context.Context) error {
	tx := s.db.WithContext(ctx).Session(&gorm.Session{AllowGlobalUpdate: true})
	if err := tx.Delete(&models.Post{}).Error; err != nil {
		return fmt.Errorf("clear posts: %w", err)
	}
	if err := tx.Delete(&models.Author{}).Error; err != nil {
		return fmt.Errorf("clear authors: %w", err)
	}
	observability.Logger.InfoContext(ctx, "Cleared authors and posts")
	return nil
}

// SeedRandom creates opts.NumAuthors authors with generated data, each with
// opts.PostsPerAuthor posts, plus opts.UnownedPosts posts without an author.
func (s *Seeder) SeedRandom(ctx context.Context, f *Factory, opts Options) (Summary, error) {
	var sum Summary

	for i := 0; i < opts.NumAuthors; i++ {
		author, err := s.createRandomAuthor(ctx, f)
		if err != nil {
			return sum, err
		}
		sum.Authors++

		for j := 0; j < opts.PostsPerAuthor; j++ {
			if _, err := s.posts.CreatePost(ctx, f.PostInput(&author.ID)); err != nil {
				return sum, fmt.Errorf("create post for author %d: %w", author.ID, err)
			}
			sum.Posts++
		}
	}

	for i := 0; i < opts.UnownedPosts; i++ {
		if _, err := s.posts.CreatePost(ctx, f.PostInput(nil)); err != nil {
			return sum, fmt.Errorf("create unowned post: %w", err)
		}
		sum.Posts++
	}

	observability.Logger.InfoContext(ctx, "Seeded random data",
		slog.Int("authors", sum.Authors),
		slog.Int("posts", sum.Posts),
	)
	return sum, nil
}

// createRandomAuthor retries with a new fake name when one is already taken.
func (s *Seeder) createRandomAuthor(ctx context.Context, f *Factory) (*models.Author, error) {
	var lastErr error
	for attempt := 0; attempt < maxNameAttempts; attempt++ {
		author, err := s.authors.CreateAuthor(ctx, f.AuthorInput())
		if err == nil {
			return author, nil
		}
		if !errors.Is(err, validation.ErrDuplicateName) {
			return nil, fmt.Errorf("create author: %w", err)
		}
		lastErr = err
	}
	return nil, fmt.Errorf("create author after %d attempts: %w", maxNameAttempts, lastErr)
}

// ApplyFixtures creates the fixture authors and posts. Authors that already
// exist by name are reused and posts they already have by title are skipped,
// so applying the same fixtures twice is a no-op.
func (s *Seeder) ApplyFixtures(ctx context.Context, fx *Fixtures) (Summary, error) {
	var sum Summary

	for _, af := range fx.Authors {
		author, created, err := s.ensureAuthor(ctx, af)
		if err != nil {
			return sum, err
		}
		if created {
			sum.Authors++
		}

		existing, err := s.authors.AuthorPosts(ctx, author.ID)
		if err != nil {
			return sum, err
		}
		titles := make(map[string]bool, len(existing))
		for _, p := range existing {
			titles[p.Title] = true
		}

		for _, pf := range af.Posts {
			if titles[pf.Title] {
				continue
			}
			if _, err := s.posts.CreatePost(ctx, pf.input(&author.ID)); err != nil {
				return sum, fmt.Errorf("fixture post %q: %w", pf.Title, err)
			}
			sum.Posts++
		}
	}

	for _, pf := range fx.Posts {
		var count int64
		if err := s.db.WithContext(ctx).Model(&models.Post{}).
			Where("author_id IS NULL AND title = ?", pf.Title).
			Count(&count).Error; err != nil {
			return sum, fmt.Errorf("check fixture post %q: %w", pf.Title, err)
		}
		if count > 0 {
			continue
		}
		if _, err := s.posts.CreatePost(ctx, pf.input(nil)); err != nil {
			return sum, fmt.Errorf("fixture post %q: %w", pf.Title, err)
		}
		sum.Posts++
	}

	return sum, nil
}

func (s *Seeder) ensureAuthor(ctx context.Context, af AuthorFixture) (*models.Author, bool, error) {
	author, err := s.authors.GetAuthorByName(ctx, af.Name)
	if err == nil {
		return author, false, nil
	}
	if !models.IsNotFound(err) {
		return nil, false, err
	}

	author, err = s.authors.CreateAuthor(ctx, service.CreateAuthorInput{
		Name:        af.Name,
		PhoneNumber: af.PhoneNumber,
	})
	if err != nil {
		return nil, false, fmt.Errorf("fixture author %q: %w", af.Name, err)
	}
	return author, true, nil
}

func (pf PostFixture) input(authorID *uint) service.CreatePostInput {
	return service.CreatePostInput{
		Title:    pf.Title,
		Content:  pf.Content,
		Summary:  pf.Summary,
		Category: pf.Category,
		AuthorID: authorID,
	}
}
