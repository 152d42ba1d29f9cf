package service

import (
	"context"
	"strings"

	"prompthub/internal/models"
	"prompthub/internal/repository"
)

// CommentService handles comment business logic.
type CommentService struct {
	comments repository.CommentRepository
	prompts  repository.PromptRepository
}

// NewCommentService creates a new comment service instance.
func NewCommentService(comments repository.CommentRepository, prompts repository.PromptRepository) *CommentService {
	return &CommentService{comments: comments, prompts: prompts}
}

// Add attaches a comment to a prompt and returns the prompt's full comment
// list. Commenting on a soft-deleted prompt is allowed; discussion threads
// survive the delete/restore cycle.
func (s *CommentService) Add(ctx context.Context, userID, promptID uint, content string) ([]models.Comment, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, models.NewValidationError("Content is required")
	}

	if _, err := s.prompts.GetByID(ctx, promptID, true); err != nil {
		return nil, err
	}

	comment := &models.Comment{
		PromptID: promptID,
		UserID:   userID,
		Content:  content,
	}
	if err := s.comments.Create(ctx, comment); err != nil {
		return nil, err
	}
	return s.comments.ListByPrompt(ctx, promptID)
}

// Delete removes a comment. The comment author and the prompt owner may
// delete; anyone else is forbidden. Returns the remaining comments.
func (s *CommentService) Delete(ctx context.Context, userID, promptID, commentID uint) ([]models.Comment, error) {
	prompt, err := s.prompts.GetByID(ctx, promptID, true)
	if err != nil {
		return nil, err
	}
	comment, err := s.comments.GetByID(ctx, promptID, commentID)
	if err != nil {
		return nil, err
	}
	if comment.UserID != userID && prompt.UserID != userID {
		return nil, models.NewForbiddenError("You can only delete your own comments")
	}

	if err := s.comments.Delete(ctx, commentID); err != nil {
		return nil, err
	}
	return s.comments.ListByPrompt(ctx, promptID)
}

// List returns a prompt's comments in insertion order.
func (s *CommentService) List(ctx context.Context, promptID uint) ([]models.Comment, error) {
	if _, err := s.prompts.GetByID(ctx, promptID, true); err != nil {
		return nil, err
	}
	return s.comments.ListByPrompt(ctx, promptID)
}
