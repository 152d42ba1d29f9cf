// Package repository contains the data-access layer. Repositories translate
// GORM errors into the application's error taxonomy and never leak *gorm.DB
// to callers above them.
package repository

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"prompthub/internal/models"
)

// UserRepository defines the interface for user data access.
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	Update(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id uint) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)

	IsFollowing(ctx context.Context, followerID, followeeID uint) (bool, error)
	Follow(ctx context.Context, followerID, followeeID uint) error
	Unfollow(ctx context.Context, followerID, followeeID uint) error
	FollowingIDs(ctx context.Context, userID uint) ([]uint, error)
	FollowerIDs(ctx context.Context, userID uint) ([]uint, error)

	IsSaved(ctx context.Context, userID, promptID uint) (bool, error)
	SavePrompt(ctx context.Context, userID, promptID uint) error
	UnsavePrompt(ctx context.Context, userID, promptID uint) error
	SavedPromptIDs(ctx context.Context, userID uint) ([]uint, error)
}

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new user repository instance.
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *userRepository) Update(ctx context.Context, user *models.User) error {
	// Omit associations so computed id sets never turn into writes.
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Save(user).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

// GetByID loads a user together with the computed id sets the document shape
// of the API expects: authored prompts, bookmarks, and both sides of the
// follow graph. Soft-deleted prompts stay in the authored set so they remain
// discoverable for restore.
func (r *userRepository) GetByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("User", id)
		}
		return nil, models.NewInternalError(err)
	}

	promptIDs := []uint{}
	if err := r.db.WithContext(ctx).Model(&models.Prompt{}).
		Where("user_id = ?", id).
		Order("id ASC").
		Pluck("id", &promptIDs).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	user.PromptIDs = promptIDs

	saved, err := r.SavedPromptIDs(ctx, id)
	if err != nil {
		return nil, err
	}
	user.SavedPromptIDs = saved

	following, err := r.FollowingIDs(ctx, id)
	if err != nil {
		return nil, err
	}
	user.FollowingIDs = following

	followers, err := r.FollowerIDs(ctx, id)
	if err != nil {
		return nil, err
	}
	user.FollowerIDs = followers

	return &user, nil
}

// GetByEmail matches case-insensitively; emails are stored lower-cased but
// the lookup lowers its input as well so callers need not care.
// Returns (nil, nil) when no user exists so callers can branch without
// unwrapping errors.
func (r *userRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).
		Where("email = ?", strings.ToLower(strings.TrimSpace(email))).
		First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, models.NewInternalError(err)
	}
	return &user, nil
}

// GetByUsername returns (nil, nil) when no user exists.
func (r *userRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).Where("username = ?", username).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, models.NewInternalError(err)
	}
	return &user, nil
}

func (r *userRepository) IsFollowing(ctx context.Context, followerID, followeeID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Follow{}).
		Where("follower_id = ? AND followee_id = ?", followerID, followeeID).
		Count(&count).Error
	if err != nil {
		return false, models.NewInternalError(err)
	}
	return count > 0, nil
}

// Follow inserts the edge; a concurrent duplicate insert is absorbed by the
// unique pair index, keeping the toggle idempotent.
func (r *userRepository) Follow(ctx context.Context, followerID, followeeID uint) error {
	edge := models.Follow{FollowerID: followerID, FolloweeID: followeeID}
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&edge).Error
	if err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *userRepository) Unfollow(ctx context.Context, followerID, followeeID uint) error {
	err := r.db.WithContext(ctx).
		Where("follower_id = ? AND followee_id = ?", followerID, followeeID).
		Delete(&models.Follow{}).Error
	if err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *userRepository) FollowingIDs(ctx context.Context, userID uint) ([]uint, error) {
	ids := []uint{}
	err := r.db.WithContext(ctx).Model(&models.Follow{}).
		Where("follower_id = ?", userID).
		Order("id ASC").
		Pluck("followee_id", &ids).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return ids, nil
}

func (r *userRepository) FollowerIDs(ctx context.Context, userID uint) ([]uint, error) {
	ids := []uint{}
	err := r.db.WithContext(ctx).Model(&models.Follow{}).
		Where("followee_id = ?", userID).
		Order("id ASC").
		Pluck("follower_id", &ids).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return ids, nil
}

func (r *userRepository) IsSaved(ctx context.Context, userID, promptID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.SavedPrompt{}).
		Where("user_id = ? AND prompt_id = ?", userID, promptID).
		Count(&count).Error
	if err != nil {
		return false, models.NewInternalError(err)
	}
	return count > 0, nil
}

func (r *userRepository) SavePrompt(ctx context.Context, userID, promptID uint) error {
	row := models.SavedPrompt{UserID: userID, PromptID: promptID}
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&row).Error
	if err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *userRepository) UnsavePrompt(ctx context.Context, userID, promptID uint) error {
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND prompt_id = ?", userID, promptID).
		Delete(&models.SavedPrompt{}).Error
	if err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

// SavedPromptIDs keeps deleted prompts in the set; bookmarks survive soft
// deletion so a later restore brings the prompt back to its savers.
func (r *userRepository) SavedPromptIDs(ctx context.Context, userID uint) ([]uint, error) {
	ids := []uint{}
	err := r.db.WithContext(ctx).Model(&models.SavedPrompt{}).
		Where("user_id = ?", userID).
		Order("id ASC").
		Pluck("prompt_id", &ids).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return ids, nil
}
