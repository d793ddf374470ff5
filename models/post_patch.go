package models

import (
	"time"

	"github.com/jmorales/portfolio-backend/meta"
)

// PostPatch is a sparse update for a Post: only non-nil fields are applied.
// Using one optional per mutable column keeps "apply only what was sent"
// enforced by the type system instead of runtime key inspection.
type PostPatch struct {
	Slug        *string    `json:"slug,omitempty"`
	Title       *string    `json:"title,omitempty"`
	Description *string    `json:"description,omitempty"`
	Content     *string    `json:"content,omitempty"`
	Featured    *bool      `json:"featured,omitempty"`
	Published   *bool      `json:"published,omitempty"`
	PublishedAt *time.Time `json:"published_at,omitempty"`
	CoverImage  *string    `json:"cover_image,omitempty"`
	Author      *string    `json:"author,omitempty"`
	Tags        *[]string  `json:"tags,omitempty"`
}

// IsEmpty reports whether the patch carries no field at all.
func (p PostPatch) IsEmpty() bool {
	return p.Slug == nil && p.Title == nil && p.Description == nil &&
		p.Content == nil && p.Featured == nil && p.Published == nil &&
		p.PublishedAt == nil && p.CoverImage == nil && p.Author == nil &&
		p.Tags == nil
}

// Apply writes the present fields onto post. Reading time is recomputed
// whenever content is part of the patch. published_at is stamped with now
// the first time published flips to true, unless the patch sets it
// explicitly; an explicit published_at always wins.
func (p PostPatch) Apply(post *Post, now time.Time) {
	if p.Slug != nil {
		post.Slug = *p.Slug
	}
	if p.Title != nil {
		post.Title = *p.Title
	}
	if p.Description != nil {
		post.Description = *p.Description
	}
	if p.Content != nil {
		post.Content = *p.Content
		post.ReadingTime = meta.EstimateReadingTime(*p.Content)
	}
	if p.Featured != nil {
		post.Featured = *p.Featured
	}
	if p.Published != nil {
		post.Published = *p.Published
		if *p.Published && post.PublishedAt == nil && p.PublishedAt == nil {
			post.PublishedAt = &now
		}
	}
	if p.PublishedAt != nil {
		post.PublishedAt = p.PublishedAt
	}
	if p.CoverImage != nil {
		post.CoverImage = *p.CoverImage
	}
	if p.Author != nil {
		post.Author = *p.Author
	}
}
