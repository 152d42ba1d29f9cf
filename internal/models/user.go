// Package models contains data structures for the application's domain models.
package models

import (
	"time"
)

// Role is the closed set of account roles.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// Valid reports whether the role is one of the permitted values.
func (r Role) Valid() bool {
	switch r {
	case RoleUser, RoleAdmin:
		return true
	}
	return false
}

// User represents an account in the PromptHub application.
//
// Email is normalized to lower case before storage so uniqueness is
// case-insensitive. Password always holds a bcrypt hash and is never
// serialized. The id-set fields mirror the document shape of the public API
// and are computed at read time, not persisted.
type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Username  string    `gorm:"uniqueIndex;not null" json:"username"`
	Email     string    `gorm:"uniqueIndex;not null" json:"email,omitempty"`
	Password  string    `gorm:"not null" json:"-"`
	Bio       string    `json:"bio"`
	Avatar    string    `json:"avatar"`
	Role      Role      `gorm:"not null" json:"role"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	// Computed id sets (authored prompts, bookmarks, follow graph).
	PromptIDs      []uint `gorm:"-" json:"prompts"`
	SavedPromptIDs []uint `gorm:"-" json:"savedPrompts"`
	FollowingIDs   []uint `gorm:"-" json:"following"`
	FollowerIDs    []uint `gorm:"-" json:"followers"`
}

// Sanitize strips fields that must not appear in public profile responses.
func (u *User) Sanitize() {
	u.Email = ""
}

// Follow is a one-way edge in the follow graph. A row existing means
// FollowerID follows FolloweeID; both directions of the spec's two-sided
// relationship are derived from this single row.
type Follow struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	FollowerID uint      `gorm:"not null;uniqueIndex:idx_follow_pair" json:"followerId"`
	FolloweeID uint      `gorm:"not null;uniqueIndex:idx_follow_pair" json:"followeeId"`
	CreatedAt  time.Time `json:"createdAt"`
}

// SavedPrompt is a user's bookmark on a prompt.
// The combination of UserID and PromptID must be unique.
type SavedPrompt struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_save_user_prompt" json:"userId"`
	PromptID  uint      `gorm:"not null;uniqueIndex:idx_save_user_prompt" json:"promptId"`
	CreatedAt time.Time `json:"createdAt"`
}
