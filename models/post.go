package models

import (
	"time"
)

// DefaultAuthor is used when a post is created without an explicit author.
const DefaultAuthor = "Javier Morales"

// Post represents a database-backed blog post with its tag associations
type Post struct {
	ID          uint       `json:"id" db:"id" gorm:"primaryKey"`
	Slug        string     `json:"slug" db:"slug" gorm:"type:text;not null;uniqueIndex"`
	Title       string     `json:"title" db:"title" gorm:"type:text;not null"`
	Description string     `json:"description,omitempty" db:"description" gorm:"type:text"`
	Content     string     `json:"content" db:"content" gorm:"type:text;not null"`
	Featured    bool       `json:"featured" db:"featured" gorm:"not null;default:false"`
	Published   bool       `json:"published" db:"published" gorm:"not null;default:false"`
	PublishedAt *time.Time `json:"published_at,omitempty" db:"published_at" gorm:"type:timestamp"`
	ReadingTime int        `json:"reading_time" db:"reading_time" gorm:"not null;default:1"`
	CoverImage  string     `json:"cover_image,omitempty" db:"cover_image" gorm:"type:text"`
	Author      string     `json:"author" db:"author" gorm:"type:text;not null"`
	CreatedAt   time.Time  `json:"created_at" db:"created_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt   time.Time  `json:"updated_at" db:"updated_at"`
	Tags        []Tag      `json:"tags" gorm:"many2many:post_tags;constraint:OnDelete:CASCADE"`
}

// SortDate is the timestamp listings are ordered by: published_at when the
// post has one, created_at otherwise.
func (p Post) SortDate() time.Time {
	if p.PublishedAt != nil {
		return *p.PublishedAt
	}
	return p.CreatedAt
}
