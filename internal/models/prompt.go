package models

import (
	"time"
)

// Category is the closed set of prompt categories.
type Category string

const (
	CategoryCreative  Category = "クリエイティブ"
	CategoryBusiness  Category = "ビジネス"
	CategoryEducation Category = "教育"
	CategoryTechnical Category = "テクニカル"
	CategoryAnalysis  Category = "データ分析"
	CategoryOther     Category = "その他"
)

// Categories lists every permitted category value.
func Categories() []Category {
	return []Category{
		CategoryCreative, CategoryBusiness, CategoryEducation,
		CategoryTechnical, CategoryAnalysis, CategoryOther,
	}
}

// Valid reports whether the category is one of the permitted values.
func (c Category) Valid() bool {
	switch c {
	case CategoryCreative, CategoryBusiness, CategoryEducation,
		CategoryTechnical, CategoryAnalysis, CategoryOther:
		return true
	}
	return false
}

// Purpose is the closed set of prompt purposes.
type Purpose string

const (
	PurposeWriting  Purpose = "文章生成"
	PurposeCoding   Purpose = "コード作成"
	PurposeAnalysis Purpose = "データ分析"
	PurposeImage    Purpose = "画像生成"
	PurposeSummary  Purpose = "要約"
	PurposeIdeation Purpose = "アイデア出し"
	PurposeLearning Purpose = "学習支援"
	PurposeOtherUse Purpose = "その他"
)

// Purposes lists every permitted purpose value.
func Purposes() []Purpose {
	return []Purpose{
		PurposeWriting, PurposeCoding, PurposeAnalysis, PurposeImage,
		PurposeSummary, PurposeIdeation, PurposeLearning, PurposeOtherUse,
	}
}

// Valid reports whether the purpose is one of the permitted values.
func (p Purpose) Valid() bool {
	switch p {
	case PurposeWriting, PurposeCoding, PurposeAnalysis, PurposeImage,
		PurposeSummary, PurposeIdeation, PurposeLearning, PurposeOtherUse:
		return true
	}
	return false
}

// Service is the closed set of AI services a prompt may target.
type Service string

const (
	ServiceOpenAI      Service = "OpenAI"
	ServiceAnthropic   Service = "Anthropic"
	ServiceGoogle      Service = "Google"
	ServiceMicrosoft   Service = "Microsoft"
	ServiceStabilityAI Service = "Stability AI"
	ServiceMidjourney  Service = "Midjourney"
	ServiceOtherVendor Service = "その他"
)

// Valid reports whether the service is one of the permitted values.
func (s Service) Valid() bool {
	switch s {
	case ServiceOpenAI, ServiceAnthropic, ServiceGoogle, ServiceMicrosoft,
		ServiceStabilityAI, ServiceMidjourney, ServiceOtherVendor:
		return true
	}
	return false
}

// Prompt represents a shared prompt document.
//
// Soft deletion is explicit application state: IsDeleted and DeletedAt are
// toggled by the delete/restore operations and DeletedAt is non-nil exactly
// when IsDeleted is true. Prompt body text may contain placeholder tokens
// such as {{variable}}; the store treats them as opaque.
type Prompt struct {
	ID         uint       `gorm:"primaryKey" json:"id"`
	Title      string     `gorm:"not null" json:"title"`
	Content    string     `gorm:"not null" json:"content"`
	UserID     uint       `gorm:"not null;index" json:"userId"`
	User       *User      `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Category   Category   `gorm:"not null" json:"category"`
	Purpose    Purpose    `gorm:"not null" json:"purpose"`
	Service    Service    `json:"service"`
	Model      string     `json:"model"`
	Tags       []string   `gorm:"serializer:json;type:text" json:"tags"`
	Comments   []Comment  `gorm:"foreignKey:PromptID" json:"comments"`
	UsageCount int        `gorm:"not null;default:0" json:"usageCount"`
	IsFeatured bool       `gorm:"not null;default:false" json:"isFeatured"`
	IsDeleted  bool       `gorm:"not null;default:false;index" json:"isDeleted"`
	DeletedAt  *time.Time `json:"deletedAt"`
	CreatedAt  time.Time  `json:"createdAt"`
	UpdatedAt  time.Time  `json:"updatedAt"`

	// LikeIDs holds the ids of users who liked this prompt (computed).
	LikeIDs []uint `gorm:"-" json:"likes"`
}

// Like represents a user's like on a prompt.
// The combination of UserID and PromptID must be unique.
type Like struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_like_user_prompt" json:"userId"`
	PromptID  uint      `gorm:"not null;uniqueIndex:idx_like_user_prompt" json:"promptId"`
	CreatedAt time.Time `json:"createdAt"`
}
