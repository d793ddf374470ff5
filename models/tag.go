package models

// DefaultTagColor is used when a tag is created without an explicit color.
const DefaultTagColor = "#6366f1"

// Tag is a label attached to database-backed posts, many-to-many
type Tag struct {
	ID          uint   `json:"id" db:"id" gorm:"primaryKey"`
	Name        string `json:"name" db:"name" gorm:"type:text;not null;uniqueIndex"`
	Slug        string `json:"slug" db:"slug" gorm:"type:text;not null;uniqueIndex"`
	Description string `json:"description,omitempty" db:"description" gorm:"type:text"`
	Color       string `json:"color" db:"color" gorm:"type:text;not null"`
}
