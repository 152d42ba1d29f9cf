// Package seed creates demo data for development databases. It is never run
// automatically; use cmd/seed.
package seed

import (
	"fmt"
	"log"
	"math/rand"
	"strings"
	"time"

	"prompthub/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Options controls how much demo data Run creates.
type Options struct {
	Users            int
	PromptsPerUser   int
	MaxLikesPerUser  int
	MaxSavesPerUser  int
	MaxFollowsEach   int
	CommentsOnShared int
	Password         string
}

// DefaultOptions returns a small but lively data set.
func DefaultOptions() Options {
	return Options{
		Users:            12,
		PromptsPerUser:   4,
		MaxLikesPerUser:  8,
		MaxSavesPerUser:  5,
		MaxFollowsEach:   4,
		CommentsOnShared: 30,
		Password:         "secret1",
	}
}

var demoTags = []string{
	"writing", "code-review", "sql", "marketing", "email", "brainstorm",
	"translation", "study", "image", "summary", "refactoring", "interview",
}

// Run populates the database with demo users, prompts, and engagement.
// All demo accounts share the same password for easy local login.
func Run(db *gorm.DB, opts Options) error {
	gofakeit.Seed(time.Now().UnixNano())
	r := rand.New(rand.NewSource(time.Now().UnixNano()))

	hash, err := bcrypt.GenerateFromPassword([]byte(opts.Password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash seed password: %w", err)
	}

	users := make([]*models.User, 0, opts.Users)
	for i := 0; i < opts.Users; i++ {
		username := fmt.Sprintf("%s%d", strings.ToLower(gofakeit.Username()), i)
		user := &models.User{
			Username: username,
			Email:    strings.ToLower(fmt.Sprintf("%s@example.com", username)),
			Password: string(hash),
			Bio:      gofakeit.Sentence(8),
			Avatar:   fmt.Sprintf("https://i.pravatar.cc/150?u=%s", username),
			Role:     models.RoleUser,
		}
		if err := db.Create(user).Error; err != nil {
			return fmt.Errorf("create user %s: %w", username, err)
		}
		users = append(users, user)
	}
	log.Printf("seeded %d users", len(users))

	categories := models.Categories()
	purposes := models.Purposes()

	prompts := make([]*models.Prompt, 0, opts.Users*opts.PromptsPerUser)
	for _, user := range users {
		for i := 0; i < opts.PromptsPerUser; i++ {
			prompt := &models.Prompt{
				Title:    gofakeit.Sentence(4),
				Content:  fmt.Sprintf("%s\n\n{{input}}\n\n%s", gofakeit.Sentence(10), gofakeit.Sentence(12)),
				UserID:   user.ID,
				Category: categories[r.Intn(len(categories))],
				Purpose:  purposes[r.Intn(len(purposes))],
				Service:  models.ServiceOtherVendor,
				Model:    gofakeit.AppName(),
				Tags:     pickTags(r),
				// spread creation over the past quarter
				CreatedAt:  time.Now().Add(-time.Duration(r.Intn(90*24)) * time.Hour),
				UsageCount: r.Intn(200),
				IsFeatured: r.Intn(10) == 0,
			}
			if err := db.Create(prompt).Error; err != nil {
				return fmt.Errorf("create prompt for %s: %w", user.Username, err)
			}
			prompts = append(prompts, prompt)
		}
	}
	log.Printf("seeded %d prompts", len(prompts))

	for _, user := range users {
		for i := 0; i < r.Intn(opts.MaxLikesPerUser+1); i++ {
			target := prompts[r.Intn(len(prompts))]
			like := models.Like{UserID: user.ID, PromptID: target.ID}
			if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&like).Error; err != nil {
				return fmt.Errorf("create like: %w", err)
			}
		}
		for i := 0; i < r.Intn(opts.MaxSavesPerUser+1); i++ {
			target := prompts[r.Intn(len(prompts))]
			save := models.SavedPrompt{UserID: user.ID, PromptID: target.ID}
			if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&save).Error; err != nil {
				return fmt.Errorf("create save: %w", err)
			}
		}
		for i := 0; i < r.Intn(opts.MaxFollowsEach+1); i++ {
			target := users[r.Intn(len(users))]
			if target.ID == user.ID {
				continue
			}
			follow := models.Follow{FollowerID: user.ID, FolloweeID: target.ID}
			if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&follow).Error; err != nil {
				return fmt.Errorf("create follow: %w", err)
			}
		}
	}

	for i := 0; i < opts.CommentsOnShared; i++ {
		author := users[r.Intn(len(users))]
		target := prompts[r.Intn(len(prompts))]
		comment := models.Comment{
			PromptID: target.ID,
			UserID:   author.ID,
			Content:  gofakeit.Sentence(r.Intn(12) + 3),
		}
		if err := db.Create(&comment).Error; err != nil {
			return fmt.Errorf("create comment: %w", err)
		}
	}
	log.Printf("seeded engagement: likes, saves, follows, %d comments", opts.CommentsOnShared)

	return nil
}

func pickTags(r *rand.Rand) []string {
	n := r.Intn(4)
	tags := make([]string, 0, n)
	seen := map[string]bool{}
	for len(tags) < n {
		tag := demoTags[r.Intn(len(demoTags))]
		if !seen[tag] {
			seen[tag] = true
			tags = append(tags, tag)
		}
	}
	return tags
}
