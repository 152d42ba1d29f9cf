package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"prompthub/internal/models"
)

// CommentRepository defines the interface for comment data access.
type CommentRepository interface {
	Create(ctx context.Context, comment *models.Comment) error
	GetByID(ctx context.Context, promptID, commentID uint) (*models.Comment, error)
	ListByPrompt(ctx context.Context, promptID uint) ([]models.Comment, error)
	Delete(ctx context.Context, commentID uint) error
}

type commentRepository struct {
	db *gorm.DB
}

// NewCommentRepository creates a new comment repository instance.
func NewCommentRepository(db *gorm.DB) CommentRepository {
	return &commentRepository{db: db}
}

func (r *commentRepository) Create(ctx context.Context, comment *models.Comment) error {
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(comment).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

// GetByID scopes the lookup to the prompt so a comment id from another
// prompt cannot be addressed through the wrong URL.
func (r *commentRepository) GetByID(ctx context.Context, promptID, commentID uint) (*models.Comment, error) {
	var comment models.Comment
	err := r.db.WithContext(ctx).
		Where("id = ? AND prompt_id = ?", commentID, promptID).
		First(&comment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Comment", commentID)
		}
		return nil, models.NewInternalError(err)
	}
	return &comment, nil
}

// ListByPrompt returns comments in insertion order with partial author rows.
func (r *commentRepository) ListByPrompt(ctx context.Context, promptID uint) ([]models.Comment, error) {
	comments := []models.Comment{}
	err := r.db.WithContext(ctx).
		Where("prompt_id = ?", promptID).
		Order("created_at ASC, id ASC").
		Preload("User", func(db *gorm.DB) *gorm.DB {
			return db.Select("id", "username", "avatar")
		}).
		Find(&comments).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return comments, nil
}

// Delete removes the comment permanently. Comments have no soft-delete
// lifecycle of their own.
func (r *commentRepository) Delete(ctx context.Context, commentID uint) error {
	if err := r.db.WithContext(ctx).Delete(&models.Comment{}, commentID).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}
