package models

import "time"

// FilePost is a post parsed from a markdown document on disk. File-backed
// posts are read-only: they have no database id and cannot be mutated
// through the API.
type FilePost struct {
	Slug        string    `json:"slug"`
	Title       string    `json:"title"`
	Date        time.Time `json:"date"`
	Description string    `json:"description,omitempty"`
	Tags        []string  `json:"tags"`
	Featured    bool      `json:"featured"`
	Draft       bool      `json:"draft"`
	Content     string    `json:"content"`
}
