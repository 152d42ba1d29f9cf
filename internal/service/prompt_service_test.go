package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"prompthub/internal/models"
	"prompthub/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// promptRepoStub is a stub for repository.PromptRepository.
type promptRepoStub struct {
	createFn         func(context.Context, *models.Prompt) error
	updateFn         func(context.Context, *models.Prompt) error
	getByIDFn        func(context.Context, uint, bool) (*models.Prompt, error)
	getDetailFn      func(context.Context, uint, bool) (*models.Prompt, error)
	listFn           func(context.Context, repository.PromptListFilter) ([]models.Prompt, error)
	listByUserIDsFn  func(context.Context, []uint) ([]models.Prompt, error)
	listByIDsFn      func(context.Context, []uint) ([]models.Prompt, error)
	isLikedFn        func(context.Context, uint, uint) (bool, error)
	likeFn           func(context.Context, uint, uint) error
	unlikeFn         func(context.Context, uint, uint) error
	likeUserIDsFn    func(context.Context, uint) ([]uint, error)
	incrementUsageFn func(context.Context, uint) (int, error)
}

func (s *promptRepoStub) Create(ctx context.Context, p *models.Prompt) error { return s.createFn(ctx, p) }
func (s *promptRepoStub) Update(ctx context.Context, p *models.Prompt) error { return s.updateFn(ctx, p) }
func (s *promptRepoStub) GetByID(ctx context.Context, id uint, includeDeleted bool) (*models.Prompt, error) {
	return s.getByIDFn(ctx, id, includeDeleted)
}
func (s *promptRepoStub) GetDetail(ctx context.Context, id uint, includeDeleted bool) (*models.Prompt, error) {
	return s.getDetailFn(ctx, id, includeDeleted)
}
func (s *promptRepoStub) List(ctx context.Context, f repository.PromptListFilter) ([]models.Prompt, error) {
	return s.listFn(ctx, f)
}
func (s *promptRepoStub) ListByUserIDs(ctx context.Context, ids []uint) ([]models.Prompt, error) {
	return s.listByUserIDsFn(ctx, ids)
}
func (s *promptRepoStub) ListByIDs(ctx context.Context, ids []uint) ([]models.Prompt, error) {
	return s.listByIDsFn(ctx, ids)
}
func (s *promptRepoStub) IsLiked(ctx context.Context, userID, promptID uint) (bool, error) {
	return s.isLikedFn(ctx, userID, promptID)
}
func (s *promptRepoStub) Like(ctx context.Context, userID, promptID uint) error {
	return s.likeFn(ctx, userID, promptID)
}
func (s *promptRepoStub) Unlike(ctx context.Context, userID, promptID uint) error {
	return s.unlikeFn(ctx, userID, promptID)
}
func (s *promptRepoStub) LikeUserIDs(ctx context.Context, promptID uint) ([]uint, error) {
	return s.likeUserIDsFn(ctx, promptID)
}
func (s *promptRepoStub) IncrementUsage(ctx context.Context, promptID uint) (int, error) {
	return s.incrementUsageFn(ctx, promptID)
}

func noopPromptRepo() *promptRepoStub {
	return &promptRepoStub{
		createFn:  func(_ context.Context, _ *models.Prompt) error { return nil },
		updateFn:  func(_ context.Context, _ *models.Prompt) error { return nil },
		getByIDFn: func(_ context.Context, _ uint, _ bool) (*models.Prompt, error) { return &models.Prompt{}, nil },
		getDetailFn: func(_ context.Context, _ uint, _ bool) (*models.Prompt, error) {
			return &models.Prompt{}, nil
		},
		listFn: func(_ context.Context, _ repository.PromptListFilter) ([]models.Prompt, error) {
			return nil, nil
		},
		listByUserIDsFn:  func(_ context.Context, _ []uint) ([]models.Prompt, error) { return nil, nil },
		listByIDsFn:      func(_ context.Context, _ []uint) ([]models.Prompt, error) { return nil, nil },
		isLikedFn:        func(_ context.Context, _, _ uint) (bool, error) { return false, nil },
		likeFn:           func(_ context.Context, _, _ uint) error { return nil },
		unlikeFn:         func(_ context.Context, _, _ uint) error { return nil },
		likeUserIDsFn:    func(_ context.Context, _ uint) ([]uint, error) { return nil, nil },
		incrementUsageFn: func(_ context.Context, _ uint) (int, error) { return 1, nil },
	}
}

// userRepoStub is a stub for repository.UserRepository.
type userRepoStub struct {
	createFn         func(context.Context, *models.User) error
	updateFn         func(context.Context, *models.User) error
	getByIDFn        func(context.Context, uint) (*models.User, error)
	getByEmailFn     func(context.Context, string) (*models.User, error)
	getByUsernameFn  func(context.Context, string) (*models.User, error)
	isFollowingFn    func(context.Context, uint, uint) (bool, error)
	followFn         func(context.Context, uint, uint) error
	unfollowFn       func(context.Context, uint, uint) error
	followingIDsFn   func(context.Context, uint) ([]uint, error)
	followerIDsFn    func(context.Context, uint) ([]uint, error)
	isSavedFn        func(context.Context, uint, uint) (bool, error)
	savePromptFn     func(context.Context, uint, uint) error
	unsavePromptFn   func(context.Context, uint, uint) error
	savedPromptIDsFn func(context.Context, uint) ([]uint, error)
}

func (s *userRepoStub) Create(ctx context.Context, u *models.User) error { return s.createFn(ctx, u) }
func (s *userRepoStub) Update(ctx context.Context, u *models.User) error { return s.updateFn(ctx, u) }
func (s *userRepoStub) GetByID(ctx context.Context, id uint) (*models.User, error) {
	return s.getByIDFn(ctx, id)
}
func (s *userRepoStub) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.getByEmailFn(ctx, email)
}
func (s *userRepoStub) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	return s.getByUsernameFn(ctx, username)
}
func (s *userRepoStub) IsFollowing(ctx context.Context, followerID, followeeID uint) (bool, error) {
	return s.isFollowingFn(ctx, followerID, followeeID)
}
func (s *userRepoStub) Follow(ctx context.Context, followerID, followeeID uint) error {
	return s.followFn(ctx, followerID, followeeID)
}
func (s *userRepoStub) Unfollow(ctx context.Context, followerID, followeeID uint) error {
	return s.unfollowFn(ctx, followerID, followeeID)
}
func (s *userRepoStub) FollowingIDs(ctx context.Context, userID uint) ([]uint, error) {
	return s.followingIDsFn(ctx, userID)
}
func (s *userRepoStub) FollowerIDs(ctx context.Context, userID uint) ([]uint, error) {
	return s.followerIDsFn(ctx, userID)
}
func (s *userRepoStub) IsSaved(ctx context.Context, userID, promptID uint) (bool, error) {
	return s.isSavedFn(ctx, userID, promptID)
}
func (s *userRepoStub) SavePrompt(ctx context.Context, userID, promptID uint) error {
	return s.savePromptFn(ctx, userID, promptID)
}
func (s *userRepoStub) UnsavePrompt(ctx context.Context, userID, promptID uint) error {
	return s.unsavePromptFn(ctx, userID, promptID)
}
func (s *userRepoStub) SavedPromptIDs(ctx context.Context, userID uint) ([]uint, error) {
	return s.savedPromptIDsFn(ctx, userID)
}

func noopUserRepo() *userRepoStub {
	return &userRepoStub{
		createFn:         func(_ context.Context, _ *models.User) error { return nil },
		updateFn:         func(_ context.Context, _ *models.User) error { return nil },
		getByIDFn:        func(_ context.Context, _ uint) (*models.User, error) { return &models.User{}, nil },
		getByEmailFn:     func(_ context.Context, _ string) (*models.User, error) { return nil, nil },
		getByUsernameFn:  func(_ context.Context, _ string) (*models.User, error) { return nil, nil },
		isFollowingFn:    func(_ context.Context, _, _ uint) (bool, error) { return false, nil },
		followFn:         func(_ context.Context, _, _ uint) error { return nil },
		unfollowFn:       func(_ context.Context, _, _ uint) error { return nil },
		followingIDsFn:   func(_ context.Context, _ uint) ([]uint, error) { return []uint{}, nil },
		followerIDsFn:    func(_ context.Context, _ uint) ([]uint, error) { return []uint{}, nil },
		isSavedFn:        func(_ context.Context, _, _ uint) (bool, error) { return false, nil },
		savePromptFn:     func(_ context.Context, _, _ uint) error { return nil },
		unsavePromptFn:   func(_ context.Context, _, _ uint) error { return nil },
		savedPromptIDsFn: func(_ context.Context, _ uint) ([]uint, error) { return []uint{}, nil },
	}
}

// assertAppError asserts that err is an AppError with the given code.
func assertAppError(t *testing.T, err error, code string) {
	t.Helper()
	require.Error(t, err)
	var appErr *models.AppError
	require.True(t, errors.As(err, &appErr), "expected AppError, got %T: %v", err, err)
	assert.Equal(t, code, appErr.Code)
}

func TestPromptService_Create_Validation(t *testing.T) {
	t.Parallel()

	svc := NewPromptService(noopPromptRepo(), noopUserRepo())
	ctx := context.Background()

	valid := CreatePromptInput{
		Title:    "Summarizer",
		Content:  "Summarize {{text}} in three sentences.",
		Category: models.CategoryBusiness,
		Purpose:  models.PurposeSummary,
	}

	tests := []struct {
		name   string
		mutate func(*CreatePromptInput)
	}{
		{"empty title", func(in *CreatePromptInput) { in.Title = "  " }},
		{"empty content", func(in *CreatePromptInput) { in.Content = "" }},
		{"missing category", func(in *CreatePromptInput) { in.Category = "" }},
		{"unknown category", func(in *CreatePromptInput) { in.Category = "cooking" }},
		{"missing purpose", func(in *CreatePromptInput) { in.Purpose = "" }},
		{"unknown purpose", func(in *CreatePromptInput) { in.Purpose = "juggling" }},
		{"unknown service", func(in *CreatePromptInput) { in.Service = "AcmeAI" }},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			input := valid
			tc.mutate(&input)
			_, err := svc.Create(ctx, 1, input)
			assertAppError(t, err, models.CodeValidation)
		})
	}
}

func TestPromptService_Create_Defaults(t *testing.T) {
	t.Parallel()

	var created *models.Prompt
	repo := noopPromptRepo()
	repo.createFn = func(_ context.Context, p *models.Prompt) error {
		created = p
		return nil
	}
	svc := NewPromptService(repo, noopUserRepo())

	_, err := svc.Create(context.Background(), 7, CreatePromptInput{
		Title:    "Refactorer",
		Content:  "Refactor the following code.",
		Category: models.CategoryTechnical,
		Purpose:  models.PurposeCoding,
	})
	require.NoError(t, err)
	require.NotNil(t, created)
	assert.Equal(t, uint(7), created.UserID)
	assert.Equal(t, models.ServiceOtherVendor, created.Service)
	assert.NotNil(t, created.Tags, "tags default to an empty slice, not null")
	assert.False(t, created.IsDeleted)
	assert.Nil(t, created.DeletedAt)
}

func TestPromptService_Update_Ownership(t *testing.T) {
	t.Parallel()

	repo := noopPromptRepo()
	repo.getByIDFn = func(_ context.Context, _ uint, _ bool) (*models.Prompt, error) {
		return &models.Prompt{ID: 1, UserID: 10}, nil
	}
	svc := NewPromptService(repo, noopUserRepo())

	title := "new title"
	_, err := svc.Update(context.Background(), 1, 1, UpdatePromptInput{Title: &title})
	assertAppError(t, err, models.CodeForbidden)
}

func TestPromptService_Update_IsDeletedTransitions(t *testing.T) {
	t.Parallel()

	t.Run("true sets deleted state", func(t *testing.T) {
		t.Parallel()
		var saved *models.Prompt
		repo := noopPromptRepo()
		repo.getByIDFn = func(_ context.Context, _ uint, _ bool) (*models.Prompt, error) {
			return &models.Prompt{ID: 1, UserID: 1}, nil
		}
		repo.updateFn = func(_ context.Context, p *models.Prompt) error {
			saved = p
			return nil
		}
		svc := NewPromptService(repo, noopUserRepo())

		deleted := true
		_, err := svc.Update(context.Background(), 1, 1, UpdatePromptInput{IsDeleted: &deleted})
		require.NoError(t, err)
		require.NotNil(t, saved)
		assert.True(t, saved.IsDeleted)
		assert.NotNil(t, saved.DeletedAt)
	})

	t.Run("false clears deleted state", func(t *testing.T) {
		t.Parallel()
		now := time.Now()
		var saved *models.Prompt
		repo := noopPromptRepo()
		repo.getByIDFn = func(_ context.Context, _ uint, _ bool) (*models.Prompt, error) {
			return &models.Prompt{ID: 1, UserID: 1, IsDeleted: true, DeletedAt: &now}, nil
		}
		repo.updateFn = func(_ context.Context, p *models.Prompt) error {
			saved = p
			return nil
		}
		svc := NewPromptService(repo, noopUserRepo())

		deleted := false
		_, err := svc.Update(context.Background(), 1, 1, UpdatePromptInput{IsDeleted: &deleted})
		require.NoError(t, err)
		require.NotNil(t, saved)
		assert.False(t, saved.IsDeleted)
		assert.Nil(t, saved.DeletedAt)
	})
}

func TestPromptService_SoftDelete(t *testing.T) {
	t.Parallel()

	t.Run("owner deletes", func(t *testing.T) {
		t.Parallel()
		repo := noopPromptRepo()
		repo.getByIDFn = func(_ context.Context, _ uint, _ bool) (*models.Prompt, error) {
			return &models.Prompt{ID: 1, UserID: 1}, nil
		}
		svc := NewPromptService(repo, noopUserRepo())

		prompt, err := svc.SoftDelete(context.Background(), 1, 1)
		require.NoError(t, err)
		assert.True(t, prompt.IsDeleted)
		require.NotNil(t, prompt.DeletedAt)
		assert.WithinDuration(t, time.Now(), *prompt.DeletedAt, time.Minute)
	})

	t.Run("non-owner is forbidden", func(t *testing.T) {
		t.Parallel()
		repo := noopPromptRepo()
		repo.getByIDFn = func(_ context.Context, _ uint, _ bool) (*models.Prompt, error) {
			return &models.Prompt{ID: 1, UserID: 99}, nil
		}
		svc := NewPromptService(repo, noopUserRepo())

		_, err := svc.SoftDelete(context.Background(), 1, 1)
		assertAppError(t, err, models.CodeForbidden)
	})

	t.Run("already deleted is a no-op", func(t *testing.T) {
		t.Parallel()
		now := time.Now()
		updates := 0
		repo := noopPromptRepo()
		repo.getByIDFn = func(_ context.Context, _ uint, _ bool) (*models.Prompt, error) {
			return &models.Prompt{ID: 1, UserID: 1, IsDeleted: true, DeletedAt: &now}, nil
		}
		repo.updateFn = func(_ context.Context, _ *models.Prompt) error {
			updates++
			return nil
		}
		svc := NewPromptService(repo, noopUserRepo())

		prompt, err := svc.SoftDelete(context.Background(), 1, 1)
		require.NoError(t, err)
		assert.True(t, prompt.IsDeleted)
		assert.Equal(t, 0, updates)
	})
}

func TestPromptService_Restore(t *testing.T) {
	t.Parallel()

	t.Run("restores a deleted prompt", func(t *testing.T) {
		t.Parallel()
		now := time.Now()
		repo := noopPromptRepo()
		repo.getByIDFn = func(_ context.Context, _ uint, _ bool) (*models.Prompt, error) {
			return &models.Prompt{ID: 1, UserID: 1, IsDeleted: true, DeletedAt: &now}, nil
		}
		svc := NewPromptService(repo, noopUserRepo())

		prompt, err := svc.Restore(context.Background(), 1, 1)
		require.NoError(t, err)
		assert.False(t, prompt.IsDeleted)
		assert.Nil(t, prompt.DeletedAt)
	})

	t.Run("restoring a live prompt is invalid state", func(t *testing.T) {
		t.Parallel()
		repo := noopPromptRepo()
		repo.getByIDFn = func(_ context.Context, _ uint, _ bool) (*models.Prompt, error) {
			return &models.Prompt{ID: 1, UserID: 1}, nil
		}
		svc := NewPromptService(repo, noopUserRepo())

		_, err := svc.Restore(context.Background(), 1, 1)
		assertAppError(t, err, models.CodeInvalidState)
	})

	t.Run("non-owner is forbidden", func(t *testing.T) {
		t.Parallel()
		now := time.Now()
		repo := noopPromptRepo()
		repo.getByIDFn = func(_ context.Context, _ uint, _ bool) (*models.Prompt, error) {
			return &models.Prompt{ID: 1, UserID: 42, IsDeleted: true, DeletedAt: &now}, nil
		}
		svc := NewPromptService(repo, noopUserRepo())

		_, err := svc.Restore(context.Background(), 1, 1)
		assertAppError(t, err, models.CodeForbidden)
	})
}

func TestPromptService_List_Validation(t *testing.T) {
	t.Parallel()

	svc := NewPromptService(noopPromptRepo(), noopUserRepo())
	ctx := context.Background()

	_, err := svc.List(ctx, ListPromptsInput{Category: "nonsense"})
	assertAppError(t, err, models.CodeValidation)

	_, err = svc.List(ctx, ListPromptsInput{Purpose: "nonsense"})
	assertAppError(t, err, models.CodeValidation)

	_, err = svc.List(ctx, ListPromptsInput{Sort: "alphabetical"})
	assertAppError(t, err, models.CodeValidation)
}

func TestPromptService_ToggleLike(t *testing.T) {
	t.Parallel()

	t.Run("likes when not yet liked", func(t *testing.T) {
		t.Parallel()
		liked, unliked := false, false
		repo := noopPromptRepo()
		repo.likeFn = func(_ context.Context, _, _ uint) error { liked = true; return nil }
		repo.unlikeFn = func(_ context.Context, _, _ uint) error { unliked = true; return nil }
		repo.likeUserIDsFn = func(_ context.Context, _ uint) ([]uint, error) { return []uint{1}, nil }
		svc := NewPromptService(repo, noopUserRepo())

		ids, err := svc.ToggleLike(context.Background(), 1, 5)
		require.NoError(t, err)
		assert.True(t, liked)
		assert.False(t, unliked)
		assert.Equal(t, []uint{1}, ids)
	})

	t.Run("unlikes when already liked", func(t *testing.T) {
		t.Parallel()
		liked, unliked := false, false
		repo := noopPromptRepo()
		repo.isLikedFn = func(_ context.Context, _, _ uint) (bool, error) { return true, nil }
		repo.likeFn = func(_ context.Context, _, _ uint) error { liked = true; return nil }
		repo.unlikeFn = func(_ context.Context, _, _ uint) error { unliked = true; return nil }
		repo.likeUserIDsFn = func(_ context.Context, _ uint) ([]uint, error) { return []uint{}, nil }
		svc := NewPromptService(repo, noopUserRepo())

		ids, err := svc.ToggleLike(context.Background(), 1, 5)
		require.NoError(t, err)
		assert.False(t, liked)
		assert.True(t, unliked)
		assert.Empty(t, ids)
	})

	t.Run("missing prompt is not found", func(t *testing.T) {
		t.Parallel()
		repo := noopPromptRepo()
		repo.getByIDFn = func(_ context.Context, id uint, _ bool) (*models.Prompt, error) {
			return nil, models.NewNotFoundError("Prompt", id)
		}
		svc := NewPromptService(repo, noopUserRepo())

		_, err := svc.ToggleLike(context.Background(), 1, 5)
		assertAppError(t, err, models.CodeNotFound)
	})

	t.Run("soft-deleted prompts can still be liked", func(t *testing.T) {
		t.Parallel()
		var includeDeleted bool
		repo := noopPromptRepo()
		repo.getByIDFn = func(_ context.Context, id uint, inc bool) (*models.Prompt, error) {
			includeDeleted = inc
			return &models.Prompt{ID: id, IsDeleted: true}, nil
		}
		repo.likeUserIDsFn = func(_ context.Context, _ uint) ([]uint, error) { return []uint{1}, nil }
		svc := NewPromptService(repo, noopUserRepo())

		ids, err := svc.ToggleLike(context.Background(), 1, 5)
		require.NoError(t, err)
		assert.True(t, includeDeleted, "existence check must see deleted prompts")
		assert.Equal(t, []uint{1}, ids)
	})
}

func TestPromptService_ListSaved_UsesBookmarkSet(t *testing.T) {
	t.Parallel()

	users := noopUserRepo()
	users.savedPromptIDsFn = func(_ context.Context, _ uint) ([]uint, error) { return []uint{3, 8}, nil }

	var requested []uint
	repo := noopPromptRepo()
	repo.listByIDsFn = func(_ context.Context, ids []uint) ([]models.Prompt, error) {
		requested = ids
		return []models.Prompt{{ID: 8}, {ID: 3}}, nil
	}
	svc := NewPromptService(repo, users)

	prompts, err := svc.ListSaved(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, []uint{3, 8}, requested)
	assert.Len(t, prompts, 2)
}
