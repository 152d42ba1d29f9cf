// Package service contains the business logic layer. Services validate
// input, enforce ownership and lifecycle rules, and orchestrate the
// repositories; handlers above them only translate HTTP.
package service

import (
	"context"
	"strings"
	"time"

	"prompthub/internal/models"
	"prompthub/internal/repository"
)

// CreatePromptInput carries the fields a user may set when sharing a prompt.
type CreatePromptInput struct {
	Title    string          `json:"title"`
	Content  string          `json:"content"`
	Category models.Category `json:"category"`
	Purpose  models.Purpose  `json:"purpose"`
	Service  models.Service  `json:"service"`
	Model    string          `json:"model"`
	Tags     []string        `json:"tags"`
}

// UpdatePromptInput carries a partial update. Nil pointers mean "leave as is".
type UpdatePromptInput struct {
	Title     *string          `json:"title"`
	Content   *string          `json:"content"`
	Category  *models.Category `json:"category"`
	Purpose   *models.Purpose  `json:"purpose"`
	Service   *models.Service  `json:"service"`
	Model     *string          `json:"model"`
	Tags      *[]string        `json:"tags"`
	IsDeleted *bool            `json:"isDeleted"`
}

// ListPromptsInput mirrors the list endpoint's query parameters.
type ListPromptsInput struct {
	Category    string
	Purpose     string
	Search      string
	Sort        string
	Limit       int
	ShowDeleted bool
}

// PromptService handles prompt business logic.
type PromptService struct {
	prompts repository.PromptRepository
	users   repository.UserRepository
}

// NewPromptService creates a new prompt service instance.
func NewPromptService(prompts repository.PromptRepository, users repository.UserRepository) *PromptService {
	return &PromptService{prompts: prompts, users: users}
}

// Create validates and stores a new prompt for the given author.
// An empty service defaults to the catch-all vendor.
func (s *PromptService) Create(ctx context.Context, userID uint, input CreatePromptInput) (*models.Prompt, error) {
	title := strings.TrimSpace(input.Title)
	content := strings.TrimSpace(input.Content)
	if title == "" {
		return nil, models.NewValidationError("Title is required")
	}
	if content == "" {
		return nil, models.NewValidationError("Content is required")
	}
	if input.Category == "" {
		return nil, models.NewValidationError("Category is required")
	}
	if !input.Category.Valid() {
		return nil, models.NewValidationError("Invalid category")
	}
	if input.Purpose == "" {
		return nil, models.NewValidationError("Purpose is required")
	}
	if !input.Purpose.Valid() {
		return nil, models.NewValidationError("Invalid purpose")
	}

	svc := input.Service
	if svc == "" {
		svc = models.ServiceOtherVendor
	}
	if !svc.Valid() {
		return nil, models.NewValidationError("Invalid service")
	}

	tags := input.Tags
	if tags == nil {
		tags = []string{}
	}

	prompt := &models.Prompt{
		Title:    title,
		Content:  content,
		UserID:   userID,
		Category: input.Category,
		Purpose:  input.Purpose,
		Service:  svc,
		Model:    strings.TrimSpace(input.Model),
		Tags:     tags,
	}
	if err := s.prompts.Create(ctx, prompt); err != nil {
		return nil, err
	}
	return s.prompts.GetDetail(ctx, prompt.ID, false)
}

// Update applies a partial update to a prompt owned by userID. Setting
// isDeleted through an update follows the same lifecycle rules as the
// dedicated delete and restore operations.
func (s *PromptService) Update(ctx context.Context, userID, promptID uint, input UpdatePromptInput) (*models.Prompt, error) {
	prompt, err := s.prompts.GetByID(ctx, promptID, true)
	if err != nil {
		return nil, err
	}
	if prompt.UserID != userID {
		return nil, models.NewForbiddenError("You can only edit your own prompts")
	}

	if input.Title != nil {
		title := strings.TrimSpace(*input.Title)
		if title == "" {
			return nil, models.NewValidationError("Title is required")
		}
		prompt.Title = title
	}
	if input.Content != nil {
		content := strings.TrimSpace(*input.Content)
		if content == "" {
			return nil, models.NewValidationError("Content is required")
		}
		prompt.Content = content
	}
	if input.Category != nil {
		if !input.Category.Valid() {
			return nil, models.NewValidationError("Invalid category")
		}
		prompt.Category = *input.Category
	}
	if input.Purpose != nil {
		if !input.Purpose.Valid() {
			return nil, models.NewValidationError("Invalid purpose")
		}
		prompt.Purpose = *input.Purpose
	}
	if input.Service != nil {
		svc := *input.Service
		if svc == "" {
			svc = models.ServiceOtherVendor
		}
		if !svc.Valid() {
			return nil, models.NewValidationError("Invalid service")
		}
		prompt.Service = svc
	}
	if input.Model != nil {
		prompt.Model = strings.TrimSpace(*input.Model)
	}
	if input.Tags != nil {
		tags := *input.Tags
		if tags == nil {
			tags = []string{}
		}
		prompt.Tags = tags
	}
	if input.IsDeleted != nil {
		if *input.IsDeleted {
			if !prompt.IsDeleted {
				now := time.Now()
				prompt.IsDeleted = true
				prompt.DeletedAt = &now
			}
		} else {
			prompt.IsDeleted = false
			prompt.DeletedAt = nil
		}
	}

	if err := s.prompts.Update(ctx, prompt); err != nil {
		return nil, err
	}
	return s.prompts.GetDetail(ctx, prompt.ID, true)
}

// SoftDelete marks a prompt deleted without touching likes, bookmarks, or
// comments, so a restore brings the full document back.
func (s *PromptService) SoftDelete(ctx context.Context, userID, promptID uint) (*models.Prompt, error) {
	prompt, err := s.prompts.GetByID(ctx, promptID, true)
	if err != nil {
		return nil, err
	}
	if prompt.UserID != userID {
		return nil, models.NewForbiddenError("You can only delete your own prompts")
	}
	if prompt.IsDeleted {
		return prompt, nil
	}

	now := time.Now()
	prompt.IsDeleted = true
	prompt.DeletedAt = &now
	if err := s.prompts.Update(ctx, prompt); err != nil {
		return nil, err
	}
	return prompt, nil
}

// Restore reverses a soft delete. Restoring a live prompt is an invalid
// state transition, not a no-op.
func (s *PromptService) Restore(ctx context.Context, userID, promptID uint) (*models.Prompt, error) {
	prompt, err := s.prompts.GetByID(ctx, promptID, true)
	if err != nil {
		return nil, err
	}
	if prompt.UserID != userID {
		return nil, models.NewForbiddenError("You can only restore your own prompts")
	}
	if !prompt.IsDeleted {
		return nil, models.NewInvalidStateError("Prompt is not deleted")
	}

	prompt.IsDeleted = false
	prompt.DeletedAt = nil
	if err := s.prompts.Update(ctx, prompt); err != nil {
		return nil, err
	}
	return prompt, nil
}

// List returns prompts matching the filter.
func (s *PromptService) List(ctx context.Context, input ListPromptsInput) ([]models.Prompt, error) {
	filter := repository.PromptListFilter{
		Search:         strings.TrimSpace(input.Search),
		Sort:           input.Sort,
		Limit:          input.Limit,
		IncludeDeleted: input.ShowDeleted,
	}
	if input.Category != "" {
		cat := models.Category(input.Category)
		if !cat.Valid() {
			return nil, models.NewValidationError("Invalid category")
		}
		filter.Category = cat
	}
	if input.Purpose != "" {
		pur := models.Purpose(input.Purpose)
		if !pur.Valid() {
			return nil, models.NewValidationError("Invalid purpose")
		}
		filter.Purpose = pur
	}
	switch input.Sort {
	case "", repository.SortLatest, repository.SortPopular, repository.SortTrending, repository.SortFeatured:
	default:
		return nil, models.NewValidationError("Invalid sort")
	}
	return s.prompts.List(ctx, filter)
}

// Get returns the full prompt document. Soft-deleted prompts read as missing
// unless showDeleted is set.
func (s *PromptService) Get(ctx context.Context, promptID uint, showDeleted bool) (*models.Prompt, error) {
	return s.prompts.GetDetail(ctx, promptID, showDeleted)
}

// ToggleLike likes the prompt if the user has not liked it, unlikes it
// otherwise, and returns the resulting like set. Soft-deleted prompts can
// still be liked; engagement survives the delete/restore cycle.
func (s *PromptService) ToggleLike(ctx context.Context, userID, promptID uint) ([]uint, error) {
	if _, err := s.prompts.GetByID(ctx, promptID, true); err != nil {
		return nil, err
	}
	liked, err := s.prompts.IsLiked(ctx, userID, promptID)
	if err != nil {
		return nil, err
	}
	if liked {
		err = s.prompts.Unlike(ctx, userID, promptID)
	} else {
		err = s.prompts.Like(ctx, userID, promptID)
	}
	if err != nil {
		return nil, err
	}
	return s.prompts.LikeUserIDs(ctx, promptID)
}

// IncrementUsage records one use of the prompt and returns the new count.
func (s *PromptService) IncrementUsage(ctx context.Context, promptID uint) (int, error) {
	return s.prompts.IncrementUsage(ctx, promptID)
}

// ListSaved returns the caller's bookmarked prompts, including ones that
// have since been soft-deleted.
func (s *PromptService) ListSaved(ctx context.Context, userID uint) ([]models.Prompt, error) {
	ids, err := s.users.SavedPromptIDs(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.prompts.ListByIDs(ctx, ids)
}

// ListFollowing returns the feed of prompts authored by users the caller
// follows. Like the saved collection, the feed keeps soft-deleted prompts.
func (s *PromptService) ListFollowing(ctx context.Context, userID uint) ([]models.Prompt, error) {
	ids, err := s.users.FollowingIDs(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.prompts.ListByUserIDs(ctx, ids)
}
