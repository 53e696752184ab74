package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/angelmondragon/storefront-backend/pkg/enums"
	"github.com/angelmondragon/storefront-backend/pkg/types"
)

// Blog is a storefront article. Localized fields are flattened into
// <field>_en columns.
type Blog struct {
	ID              uuid.UUID        `gorm:"column:id;type:uuid;primaryKey"`
	Title           types.Localized  `gorm:"embedded;embeddedPrefix:title_"`
	Slug            string           `gorm:"column:slug;not null;uniqueIndex:blogs_slug_key"`
	Content         types.Localized  `gorm:"embedded;embeddedPrefix:content_"`
	Excerpt         types.Localized  `gorm:"embedded;embeddedPrefix:excerpt_"`
	FeaturedImage   string           `gorm:"column:featured_image;not null"`
	AuthorID        *uuid.UUID       `gorm:"column:author_id;type:uuid"`
	Author          *Admin           `gorm:"foreignKey:AuthorID"`
	Tags            []BlogTag        `gorm:"foreignKey:BlogID;constraint:OnDelete:CASCADE"`
	Status          enums.BlogStatus `gorm:"column:status;not null"`
	PublishedAt     *time.Time       `gorm:"column:published_at"`
	MetaTitle       types.Localized  `gorm:"embedded;embeddedPrefix:meta_title_"`
	MetaDescription types.Localized  `gorm:"embedded;embeddedPrefix:meta_description_"`
	MetaKeywords    types.StringList `gorm:"column:meta_keywords;type:jsonb;not null"`
	Featured        bool             `gorm:"column:featured;not null"`
	Views           int64            `gorm:"column:views;not null"`
	ReadingTime     int              `gorm:"column:reading_time;not null"`
	CreatedAt       time.Time        `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt       time.Time        `gorm:"column:updated_at;autoUpdateTime"`
}

func (b *Blog) BeforeCreate(*gorm.DB) error {
	ensureID(&b.ID)
	return nil
}

// TagNames returns the tags in their stored order.
func (b Blog) TagNames() []string {
	names := make([]string, 0, len(b.Tags))
	for _, tag := range b.Tags {
		names = append(names, tag.Tag)
	}
	return names
}

// BlogTag is one entry of a blog's ordered tag list.
type BlogTag struct {
	BlogID   uuid.UUID `gorm:"column:blog_id;type:uuid;primaryKey"`
	Position int       `gorm:"column:position;primaryKey;autoIncrement:false"`
	Tag      string    `gorm:"column:tag;not null;index:blog_tags_tag_idx"`
}
