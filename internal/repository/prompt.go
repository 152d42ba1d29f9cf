package repository

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"prompthub/internal/models"
)

// PromptListFilter narrows and orders the prompt listing.
// Zero values mean "no constraint".
type PromptListFilter struct {
	Category       models.Category
	Purpose        models.Purpose
	Search         string
	Sort           string
	Limit          int
	IncludeDeleted bool
}

// Sort modes accepted by List.
const (
	SortLatest   = "latest"
	SortPopular  = "popular"
	SortTrending = "trending"
	SortFeatured = "featured"
)

// PromptRepository defines the interface for prompt data access.
type PromptRepository interface {
	Create(ctx context.Context, prompt *models.Prompt) error
	Update(ctx context.Context, prompt *models.Prompt) error
	// GetByID loads the bare row without associations, for mutation paths.
	GetByID(ctx context.Context, id uint, includeDeleted bool) (*models.Prompt, error)
	// GetDetail loads the full document: author, comments, like set.
	GetDetail(ctx context.Context, id uint, includeDeleted bool) (*models.Prompt, error)
	List(ctx context.Context, filter PromptListFilter) ([]models.Prompt, error)
	ListByUserIDs(ctx context.Context, userIDs []uint) ([]models.Prompt, error)
	ListByIDs(ctx context.Context, ids []uint) ([]models.Prompt, error)

	IsLiked(ctx context.Context, userID, promptID uint) (bool, error)
	Like(ctx context.Context, userID, promptID uint) error
	Unlike(ctx context.Context, userID, promptID uint) error
	LikeUserIDs(ctx context.Context, promptID uint) ([]uint, error)

	IncrementUsage(ctx context.Context, promptID uint) (int, error)
}

type promptRepository struct {
	db *gorm.DB
}

// NewPromptRepository creates a new prompt repository instance.
func NewPromptRepository(db *gorm.DB) PromptRepository {
	return &promptRepository{db: db}
}

func (r *promptRepository) Create(ctx context.Context, prompt *models.Prompt) error {
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(prompt).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *promptRepository) Update(ctx context.Context, prompt *models.Prompt) error {
	// Save without associations so embedded comments and the computed like
	// set never get upserted alongside the row.
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Save(prompt).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *promptRepository) GetByID(ctx context.Context, id uint, includeDeleted bool) (*models.Prompt, error) {
	var prompt models.Prompt
	if err := r.db.WithContext(ctx).First(&prompt, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Prompt", id)
		}
		return nil, models.NewInternalError(err)
	}
	if prompt.IsDeleted && !includeDeleted {
		return nil, models.NewNotFoundError("Prompt", id)
	}
	return &prompt, nil
}

func (r *promptRepository) GetDetail(ctx context.Context, id uint, includeDeleted bool) (*models.Prompt, error) {
	var prompt models.Prompt
	err := r.db.WithContext(ctx).
		Preload("User", func(db *gorm.DB) *gorm.DB {
			return db.Select("id", "username", "avatar")
		}).
		Preload("Comments", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC, id ASC")
		}).
		Preload("Comments.User", func(db *gorm.DB) *gorm.DB {
			return db.Select("id", "username", "avatar")
		}).
		First(&prompt, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Prompt", id)
		}
		return nil, models.NewInternalError(err)
	}
	if prompt.IsDeleted && !includeDeleted {
		return nil, models.NewNotFoundError("Prompt", id)
	}

	likes, err := r.LikeUserIDs(ctx, id)
	if err != nil {
		return nil, err
	}
	prompt.LikeIDs = likes

	return &prompt, nil
}

// List applies the filter and sort mode, then enriches the rows with their
// like sets and comments in two batched queries.
func (r *promptRepository) List(ctx context.Context, filter PromptListFilter) ([]models.Prompt, error) {
	query := r.db.WithContext(ctx).Model(&models.Prompt{})

	if !filter.IncludeDeleted {
		query = query.Where("is_deleted = ?", false)
	}
	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}
	if filter.Purpose != "" {
		query = query.Where("purpose = ?", filter.Purpose)
	}
	if filter.Search != "" {
		// LOWER + LIKE keeps the search portable across postgres and sqlite.
		pattern := "%" + strings.ToLower(filter.Search) + "%"
		query = query.Where(
			"LOWER(title) LIKE ? OR LOWER(content) LIKE ? OR LOWER(tags) LIKE ?",
			pattern, pattern, pattern,
		)
	}

	switch filter.Sort {
	case SortPopular:
		query = query.Order("usage_count DESC, created_at DESC")
	case SortTrending:
		query = query.Order("(SELECT COUNT(*) FROM likes WHERE likes.prompt_id = prompts.id) DESC, created_at DESC")
	case SortFeatured:
		query = query.Where("is_featured = ?", true).Order("created_at DESC")
	default:
		query = query.Order("created_at DESC, id DESC")
	}

	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}

	prompts := []models.Prompt{}
	if err := query.
		Preload("User", func(db *gorm.DB) *gorm.DB {
			return db.Select("id", "username", "avatar")
		}).
		Find(&prompts).Error; err != nil {
		return nil, models.NewInternalError(err)
	}

	if err := r.attachEngagement(ctx, prompts); err != nil {
		return nil, err
	}
	return prompts, nil
}

// ListByUserIDs returns the prompts authored by any of the given users,
// newest first. Used for the following feed; deleted prompts are kept, the
// same visibility rule the saved collection follows.
func (r *promptRepository) ListByUserIDs(ctx context.Context, userIDs []uint) ([]models.Prompt, error) {
	prompts := []models.Prompt{}
	if len(userIDs) == 0 {
		return prompts, nil
	}
	err := r.db.WithContext(ctx).
		Where("user_id IN ?", userIDs).
		Order("created_at DESC, id DESC").
		Preload("User", func(db *gorm.DB) *gorm.DB {
			return db.Select("id", "username", "avatar")
		}).
		Find(&prompts).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	if err := r.attachEngagement(ctx, prompts); err != nil {
		return nil, err
	}
	return prompts, nil
}

// ListByIDs returns the prompts with the given ids, newest first. Deleted
// prompts are kept so saved collections do not silently shrink.
func (r *promptRepository) ListByIDs(ctx context.Context, ids []uint) ([]models.Prompt, error) {
	prompts := []models.Prompt{}
	if len(ids) == 0 {
		return prompts, nil
	}
	err := r.db.WithContext(ctx).
		Where("id IN ?", ids).
		Order("created_at DESC, id DESC").
		Preload("User", func(db *gorm.DB) *gorm.DB {
			return db.Select("id", "username", "avatar")
		}).
		Find(&prompts).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	if err := r.attachEngagement(ctx, prompts); err != nil {
		return nil, err
	}
	return prompts, nil
}

// attachEngagement fills LikeIDs and Comments for a page of prompts with one
// query per association instead of one per row.
func (r *promptRepository) attachEngagement(ctx context.Context, prompts []models.Prompt) error {
	if len(prompts) == 0 {
		return nil
	}
	ids := make([]uint, 0, len(prompts))
	for i := range prompts {
		ids = append(ids, prompts[i].ID)
	}

	var likes []models.Like
	if err := r.db.WithContext(ctx).
		Where("prompt_id IN ?", ids).
		Order("id ASC").
		Find(&likes).Error; err != nil {
		return models.NewInternalError(err)
	}
	likesByPrompt := make(map[uint][]uint, len(prompts))
	for _, l := range likes {
		likesByPrompt[l.PromptID] = append(likesByPrompt[l.PromptID], l.UserID)
	}

	var comments []models.Comment
	if err := r.db.WithContext(ctx).
		Where("prompt_id IN ?", ids).
		Order("created_at ASC, id ASC").
		Preload("User", func(db *gorm.DB) *gorm.DB {
			return db.Select("id", "username", "avatar")
		}).
		Find(&comments).Error; err != nil {
		return models.NewInternalError(err)
	}
	commentsByPrompt := make(map[uint][]models.Comment, len(prompts))
	for _, cm := range comments {
		commentsByPrompt[cm.PromptID] = append(commentsByPrompt[cm.PromptID], cm)
	}

	for i := range prompts {
		p := &prompts[i]
		if ls, ok := likesByPrompt[p.ID]; ok {
			p.LikeIDs = ls
		} else {
			p.LikeIDs = []uint{}
		}
		if cs, ok := commentsByPrompt[p.ID]; ok {
			p.Comments = cs
		} else {
			p.Comments = []models.Comment{}
		}
	}
	return nil
}

func (r *promptRepository) IsLiked(ctx context.Context, userID, promptID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Like{}).
		Where("user_id = ? AND prompt_id = ?", userID, promptID).
		Count(&count).Error
	if err != nil {
		return false, models.NewInternalError(err)
	}
	return count > 0, nil
}

// Like inserts the row; the unique pair index absorbs a concurrent duplicate
// so the toggle stays single-row atomic.
func (r *promptRepository) Like(ctx context.Context, userID, promptID uint) error {
	like := models.Like{UserID: userID, PromptID: promptID}
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&like).Error
	if err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *promptRepository) Unlike(ctx context.Context, userID, promptID uint) error {
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND prompt_id = ?", userID, promptID).
		Delete(&models.Like{}).Error
	if err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *promptRepository) LikeUserIDs(ctx context.Context, promptID uint) ([]uint, error) {
	ids := []uint{}
	err := r.db.WithContext(ctx).Model(&models.Like{}).
		Where("prompt_id = ?", promptID).
		Order("id ASC").
		Pluck("user_id", &ids).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return ids, nil
}

// IncrementUsage bumps the counter in a single UPDATE so concurrent uses
// never lose increments, then reads the new value back. Soft-deleted prompts
// still count uses.
func (r *promptRepository) IncrementUsage(ctx context.Context, promptID uint) (int, error) {
	res := r.db.WithContext(ctx).Model(&models.Prompt{}).
		Where("id = ?", promptID).
		UpdateColumn("usage_count", gorm.Expr("usage_count + 1"))
	if res.Error != nil {
		return 0, models.NewInternalError(res.Error)
	}
	if res.RowsAffected == 0 {
		return 0, models.NewNotFoundError("Prompt", promptID)
	}

	var count int
	err := r.db.WithContext(ctx).Model(&models.Prompt{}).
		Where("id = ?", promptID).
		Pluck("usage_count", &count).Error
	if err != nil {
		return 0, models.NewInternalError(err)
	}
	return count, nil
}
