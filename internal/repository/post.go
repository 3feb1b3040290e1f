package repository

import (
	"context"
	"errors"
	"time"

	"inkwell/internal/database"
	"inkwell/internal/models"
	"inkwell/internal/observability"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// PostRepository defines the interface for post data operations
type PostRepository interface {
	Create(ctx context.Context, post *models.Post) error
	GetByID(ctx context.Context, id uint) (*models.Post, error)
	Update(ctx context.Context, post *models.Post) error
	Delete(ctx context.Context, id uint) error
	ListByAuthor(ctx context.Context, authorID uint, limit, offset int) ([]models.Post, error)
}

type postRepository struct {
	db  *gorm.DB
	log *observability.RepoLogger
}

// NewPostRepository creates a new post repository
func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{
		db:  db,
		log: observability.NewRepoLogger("posts"),
	}
}

func (r *postRepository) Create(ctx context.Context, post *models.Post) error {
	if err := post.Validate(); err != nil {
		return err
	}
	defer observability.TrackQuery("create", "posts")()

	post.UpdatedAt = nil
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(post).Error; err != nil {
		return r.translate(ctx, err, post, "create")
	}

	r.log.LogCreate(ctx, map[string]any{"post_id": post.ID, "author_id": post.AuthorID})
	return nil
}

func (r *postRepository) GetByID(ctx context.Context, id uint) (*models.Post, error) {
	defer observability.TrackQuery("get_by_id", "posts")()

	var post models.Post
	if err := r.db.WithContext(ctx).Preload("Author").First(&post, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Post", id)
		}
		return nil, models.NewInternalError(err)
	}

	r.log.LogRead(ctx, map[string]any{"post_id": id})
	return &post, nil
}

// Update writes every mutable column and stamps updated_at.
func (r *postRepository) Update(ctx context.Context, post *models.Post) error {
	if err := post.Validate(); err != nil {
		return err
	}
	defer observability.TrackQuery("update", "posts")()

	now := time.Now()
	result := r.db.WithContext(ctx).
		Model(&models.Post{}).
		Where("id = ?", post.ID).
		Updates(map[string]any{
			"title":      post.Title,
			"content":    post.Content,
			"summary":    post.Summary,
			"category":   post.Category,
			"author_id":  post.AuthorID,
			"updated_at": now,
		})
	if result.Error != nil {
		return r.translate(ctx, result.Error, post, "update")
	}
	if result.RowsAffected == 0 {
		return models.NewNotFoundError("Post", post.ID)
	}

	post.UpdatedAt = &now
	r.log.LogUpdate(ctx, map[string]any{"post_id": post.ID})
	return nil
}

func (r *postRepository) Delete(ctx context.Context, id uint) error {
	defer observability.TrackQuery("delete", "posts")()

	result := r.db.WithContext(ctx).Delete(&models.Post{}, id)
	if result.Error != nil {
		r.log.LogError(ctx, result.Error, "delete")
		return models.NewInternalError(result.Error)
	}
	if result.RowsAffected == 0 {
		return models.NewNotFoundError("Post", id)
	}

	r.log.LogDelete(ctx, map[string]any{"post_id": id})
	return nil
}

func (r *postRepository) ListByAuthor(ctx context.Context, authorID uint, limit, offset int) ([]models.Post, error) {
	defer observability.TrackQuery("list_by_author", "posts")()

	var posts []models.Post
	err := r.db.WithContext(ctx).
		Where("author_id = ?", authorID).
		Order("created_at ASC").
		Order("id ASC").
		Limit(clampLimit(limit)).
		Offset(max(offset, 0)).
		Find(&posts).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return posts, nil
}

// translate maps a foreign key failure to a not-found error for the referenced author.
func (r *postRepository) translate(ctx context.Context, err error, post *models.Post, operation string) error {
	if database.IsForeignKeyViolation(err) && post.AuthorID != nil {
		return models.NewNotFoundError("Author", *post.AuthorID)
	}
	if database.IsCheckViolation(err) {
		return constraintConflict("post", err)
	}
	r.log.LogError(ctx, err, operation)
	return models.NewInternalError(err)
}
