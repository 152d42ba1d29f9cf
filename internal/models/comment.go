package models

import (
	"time"
)

// Comment represents a comment on a prompt. Comments are returned embedded in
// prompt documents, ordered by insertion (created_at, id ascending).
type Comment struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	PromptID  uint      `gorm:"not null;index" json:"promptId"`
	UserID    uint      `gorm:"not null" json:"userId"`
	Content   string    `gorm:"not null" json:"content"`
	User      *User     `gorm:"foreignKey:UserID" json:"user,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
