package service

import (
	"context"
	"strings"

	"prompthub/internal/models"
	"prompthub/internal/repository"
	"prompthub/internal/validation"
)

// UpdateProfileInput carries a partial profile update.
type UpdateProfileInput struct {
	Username *string `json:"username"`
	Bio      *string `json:"bio"`
	Avatar   *string `json:"avatar"`
}

// FollowResult is the state of the follow edge after a toggle: the caller's
// following set and the target's follower set.
type FollowResult struct {
	Following []uint `json:"following"`
	Followers []uint `json:"followers"`
}

// UserService handles user directory business logic.
type UserService struct {
	users   repository.UserRepository
	prompts repository.PromptRepository
}

// NewUserService creates a new user service instance.
func NewUserService(users repository.UserRepository, prompts repository.PromptRepository) *UserService {
	return &UserService{users: users, prompts: prompts}
}

// GetProfile returns a user's enriched document. Callers decide whether to
// sanitize it for public consumption.
func (s *UserService) GetProfile(ctx context.Context, userID uint) (*models.User, error) {
	return s.users.GetByID(ctx, userID)
}

// UpdateProfile applies a partial update to the caller's own profile.
// A username change must not collide with another account.
func (s *UserService) UpdateProfile(ctx context.Context, userID uint, input UpdateProfileInput) (*models.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if input.Username != nil {
		username := strings.TrimSpace(*input.Username)
		if err := validation.ValidateUsername(username); err != nil {
			return nil, models.NewValidationError(err.Error())
		}
		if username != user.Username {
			existing, err := s.users.GetByUsername(ctx, username)
			if err != nil {
				return nil, err
			}
			if existing != nil {
				return nil, models.NewConflictError("Username is already taken")
			}
			user.Username = username
		}
	}
	if input.Bio != nil {
		user.Bio = strings.TrimSpace(*input.Bio)
	}
	if input.Avatar != nil {
		user.Avatar = strings.TrimSpace(*input.Avatar)
	}

	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}
	return s.users.GetByID(ctx, userID)
}

// ToggleFollow follows the target if not already followed, unfollows
// otherwise, and returns both sides of the edge: the caller's following set
// and the target's followers. Both derive from the single edge row, so the
// two id sets can never disagree.
func (s *UserService) ToggleFollow(ctx context.Context, userID, targetID uint) (*FollowResult, error) {
	if userID == targetID {
		return nil, models.NewValidationError("You cannot follow yourself")
	}
	if _, err := s.users.GetByID(ctx, targetID); err != nil {
		return nil, err
	}

	following, err := s.users.IsFollowing(ctx, userID, targetID)
	if err != nil {
		return nil, err
	}
	if following {
		err = s.users.Unfollow(ctx, userID, targetID)
	} else {
		err = s.users.Follow(ctx, userID, targetID)
	}
	if err != nil {
		return nil, err
	}

	followingIDs, err := s.users.FollowingIDs(ctx, userID)
	if err != nil {
		return nil, err
	}
	followerIDs, err := s.users.FollowerIDs(ctx, targetID)
	if err != nil {
		return nil, err
	}
	return &FollowResult{Following: followingIDs, Followers: followerIDs}, nil
}

// ToggleSave bookmarks the prompt if not saved, removes the bookmark
// otherwise, and returns the caller's saved set.
func (s *UserService) ToggleSave(ctx context.Context, userID, promptID uint) ([]uint, error) {
	if _, err := s.prompts.GetByID(ctx, promptID, true); err != nil {
		return nil, err
	}

	saved, err := s.users.IsSaved(ctx, userID, promptID)
	if err != nil {
		return nil, err
	}
	if saved {
		err = s.users.UnsavePrompt(ctx, userID, promptID)
	} else {
		err = s.users.SavePrompt(ctx, userID, promptID)
	}
	if err != nil {
		return nil, err
	}
	return s.users.SavedPromptIDs(ctx, userID)
}
