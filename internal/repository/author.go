// Package repository implements the data access layer for the application.
package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"inkwell/internal/database"
	"inkwell/internal/models"
	"inkwell/internal/observability"
	"inkwell/internal/validation"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const (
	maxListLimit     = 100
	defaultListLimit = 20
)

// AuthorRepository defines persistence operations for authors.
// It doubles as the validation.NameLookup used by the name validator.
type AuthorRepository interface {
	validation.NameLookup
	Create(ctx context.Context, author *models.Author) error
	GetByID(ctx context.Context, id uint) (*models.Author, error)
	GetByName(ctx context.Context, name string) (*models.Author, error)
	GetWithPosts(ctx context.Context, id uint) (*models.Author, error)
	Update(ctx context.Context, author *models.Author) error
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, limit, offset int) ([]models.Author, error)
}

type authorRepository struct {
	db  *gorm.DB
	log *observability.RepoLogger
}

// NewAuthorRepository returns a new AuthorRepository implementation.
func NewAuthorRepository(db *gorm.DB) AuthorRepository {
	return &authorRepository{
		db:  db,
		log: observability.NewRepoLogger("authors"),
	}
}

// FindIDByName reads storage on every call; results are never cached.
func (r *authorRepository) FindIDByName(ctx context.Context, name string) (uint, bool, error) {
	defer observability.TrackQuery("find_id_by_name", "authors")()

	var author models.Author
	err := r.db.WithContext(ctx).Select("id").Where("name = ?", name).Take(&author).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, false, nil
	}
	if err != nil {
		r.log.LogError(ctx, err, "find_id_by_name")
		return 0, false, models.NewInternalError(err)
	}
	return author.ID, true, nil
}

func (r *authorRepository) Create(ctx context.Context, author *models.Author) error {
	if err := author.Validate(); err != nil {
		return err
	}
	defer observability.TrackQuery("create", "authors")()

	author.UpdatedAt = nil
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(author).Error; err != nil {
		return r.translate(ctx, err, "create")
	}

	r.log.LogCreate(ctx, map[string]any{"author_id": author.ID})
	return nil
}

func (r *authorRepository) GetByID(ctx context.Context, id uint) (*models.Author, error) {
	defer observability.TrackQuery("get_by_id", "authors")()

	var author models.Author
	if err := r.db.WithContext(ctx).First(&author, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Author", id)
		}
		return nil, models.NewInternalError(err)
	}

	r.log.LogRead(ctx, map[string]any{"author_id": id})
	return &author, nil
}

func (r *authorRepository) GetByName(ctx context.Context, name string) (*models.Author, error) {
	defer observability.TrackQuery("get_by_name", "authors")()

	var author models.Author
	if err := r.db.WithContext(ctx).Where("name = ?", name).Take(&author).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Author", name)
		}
		return nil, models.NewInternalError(err)
	}
	return &author, nil
}

func (r *authorRepository) GetWithPosts(ctx context.Context, id uint) (*models.Author, error) {
	defer observability.TrackQuery("get_with_posts", "authors")()

	var author models.Author
	err := r.db.WithContext(ctx).
		Preload("Posts", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC").Order("id ASC")
		}).
		First(&author, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Author", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &author, nil
}

// Update writes the author's name and phone number and stamps updated_at.
func (r *authorRepository) Update(ctx context.Context, author *models.Author) error {
	if err := author.Validate(); err != nil {
		return err
	}
	defer observability.TrackQuery("update", "authors")()

	now := time.Now()
	result := r.db.WithContext(ctx).
		Model(&models.Author{}).
		Where("id = ?", author.ID).
		Updates(map[string]any{
			"name":         author.Name,
			"phone_number": author.PhoneNumber,
			"updated_at":   now,
		})
	if result.Error != nil {
		return r.translate(ctx, result.Error, "update")
	}
	if result.RowsAffected == 0 {
		return models.NewNotFoundError("Author", author.ID)
	}

	author.UpdatedAt = &now
	r.log.LogUpdate(ctx, map[string]any{"author_id": author.ID})
	return nil
}

// Delete removes the author. Their posts remain with author_id cleared.
func (r *authorRepository) Delete(ctx context.Context, id uint) error {
	defer observability.TrackQuery("delete", "authors")()

	result := r.db.WithContext(ctx).Delete(&models.Author{}, id)
	if result.Error != nil {
		r.log.LogError(ctx, result.Error, "delete")
		return models.NewInternalError(result.Error)
	}
	if result.RowsAffected == 0 {
		return models.NewNotFoundError("Author", id)
	}

	r.log.LogDelete(ctx, map[string]any{"author_id": id})
	return nil
}

func (r *authorRepository) List(ctx context.Context, limit, offset int) ([]models.Author, error) {
	defer observability.TrackQuery("list", "authors")()

	var authors []models.Author
	err := r.db.WithContext(ctx).
		Order("id ASC").
		Limit(clampLimit(limit)).
		Offset(max(offset, 0)).
		Find(&authors).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return authors, nil
}

func (r *authorRepository) translate(ctx context.Context, err error, operation string) error {
	if database.IsUniqueViolation(err) {
		return validation.NewDuplicateNameError()
	}
	if database.IsCheckViolation(err) {
		return constraintConflict("author", err)
	}
	r.log.LogError(ctx, err, operation)
	return models.NewInternalError(err)
}

// constraintConflict reports a write that passed validation but was refused
// by a storage CHECK constraint.
func constraintConflict(entity string, err error) *models.AppError {
	name := database.ConstraintName(err)
	if name == "" {
		name = "check constraint"
	}
	return models.NewConflictError(fmt.Sprintf("%s violates %s", entity, name), err)
}

func clampLimit(limit int) int {
	if limit <= 0 {
		return defaultListLimit
	}
	return min(limit, maxListLimit)
}
